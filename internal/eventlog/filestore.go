package eventlog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Mavwarf/appicon/internal/paths"
)

// FileStore implements Store using a flat log file, one line per record.
type FileStore struct {
	path string
}

// NewFileStore returns a FileStore that reads and writes the given log file.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// openLog opens (or creates) the log file for appending, creating the
// parent directory if needed.
func (f *FileStore) openLog() (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(f.path), paths.DirPerm); err != nil {
		return nil, err
	}
	return os.OpenFile(f.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, paths.FilePerm)
}

func (f *FileStore) Log(r Record) error {
	file, err := f.openLog()
	if err != nil {
		return err
	}
	defer file.Close()
	_, err = fmt.Fprintln(file, FormatLine(time.Now(), r))
	return err
}

func (f *FileStore) Entries(days int) ([]Entry, error) {
	content, err := f.ReadContent()
	if err != nil {
		return nil, err
	}
	entries := ParseEntries(content)
	if days <= 0 {
		return entries, nil
	}

	cutoff := DayCutoff(days)
	var filtered []Entry
	for _, e := range entries {
		if !e.Time.In(cutoff.Location()).Before(cutoff) {
			filtered = append(filtered, e)
		}
	}
	return filtered, nil
}

func (f *FileStore) ReadContent() (string, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}
	return string(data), nil
}

// Clean drops lines older than the last N days. Lines without a parseable
// timestamp are kept.
func (f *FileStore) Clean(days int) (int, error) {
	content, err := f.ReadContent()
	if err != nil || content == "" {
		return 0, err
	}

	cutoff := DayCutoff(days)
	var kept []string
	removed := 0
	for _, line := range strings.Split(strings.TrimRight(content, "\n"), "\n") {
		if ts, ok := ExtractTimestamp(line); ok && ts.Before(cutoff) {
			removed++
			continue
		}
		kept = append(kept, line)
	}
	if removed == 0 {
		return 0, nil
	}
	if len(kept) == 0 {
		_ = os.Remove(f.path)
		return removed, nil
	}
	if err := paths.AtomicWrite(f.path, []byte(strings.Join(kept, "\n")+"\n")); err != nil {
		return 0, err
	}
	return removed, nil
}

func (f *FileStore) Clear() error {
	err := os.Remove(f.path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (f *FileStore) Path() string {
	return f.path
}

// Close is a no-op; the file is opened per write.
func (f *FileStore) Close() error { return nil }
