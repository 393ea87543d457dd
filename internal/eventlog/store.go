package eventlog

import (
	"fmt"
	"path/filepath"

	"github.com/Mavwarf/appicon/internal/paths"
)

// File identifies which of the two icon files a record is about.
type File string

const (
	FileRaster File = "raster"
	FileIcon   File = "icon"
)

// Action says what Ensure did with a file.
type Action string

const (
	ActionGenerated Action = "generated"
	ActionReused    Action = "reused"
)

// Record is one history line: a file that was generated or found in place.
type Record struct {
	File   File
	Action Action
	Path   string
	Size   int    // side length in pixels
	Bytes  int    // file length
	Digest string // hex BLAKE3, empty when not computed
}

// Store abstracts generation history storage. FileStore keeps a flat log
// file; SQLiteStore keeps an events table.
type Store interface {
	// Write
	Log(r Record) error

	// Read
	Entries(days int) ([]Entry, error) // parsed entries, 0 = all
	ReadContent() (string, error)      // raw log text

	// Maintenance
	Clean(days int) (int, error) // remove old entries, return removed count
	Clear() error                // delete all data

	// Metadata
	Path() string
	Close() error
}

// Open returns the store selected by storage ("file", "sqlite", or "" for
// file) rooted in dir.
func Open(storage, dir string) (Store, error) {
	switch storage {
	case "", "file":
		return NewFileStore(filepath.Join(dir, paths.LogFileName)), nil
	case "sqlite":
		return NewSQLiteStore(filepath.Join(dir, paths.DBFileName))
	default:
		return nil, fmt.Errorf("eventlog: unknown storage %q", storage)
	}
}
