package eventlog

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Entry is a single parsed history entry.
type Entry struct {
	Time time.Time
	Record
}

// FormatLine renders r as one flat-log line. Paths are %q-quoted so that
// spaces survive parsing.
func FormatLine(ts time.Time, r Record) string {
	line := fmt.Sprintf("%s  file=%s  action=%s  path=%q  size=%d  bytes=%d",
		ts.Format(time.RFC3339), r.File, r.Action, r.Path, r.Size, r.Bytes)
	if r.Digest != "" {
		line += "  digest=" + r.Digest
	}
	return line
}

// ParseEntries parses log content line by line. Malformed lines are
// silently skipped.
func ParseEntries(content string) []Entry {
	var entries []Entry
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		ts, ok := ExtractTimestamp(line)
		if !ok {
			continue
		}
		file := extractField(line, "file")
		action := extractField(line, "action")
		if file == "" || action == "" {
			continue
		}
		e := Entry{Time: ts}
		e.File = File(file)
		e.Action = Action(action)
		e.Digest = extractField(line, "digest")
		e.Size, _ = strconv.Atoi(extractField(line, "size"))
		e.Bytes, _ = strconv.Atoi(extractField(line, "bytes"))
		if i := strings.Index(line, "path="); i >= 0 {
			e.Path = extractQuoted(line[i+len("path="):])
		}
		entries = append(entries, e)
	}
	return entries
}

// ExtractTimestamp parses the RFC3339 timestamp at the start of a log line
// (everything before the first "  " double-space separator). Returns the
// parsed time and true on success, or zero time and false on failure.
func ExtractTimestamp(line string) (time.Time, bool) {
	tsEnd := strings.Index(line, "  ")
	if tsEnd < 0 {
		return time.Time{}, false
	}
	ts, err := time.Parse(time.RFC3339, line[:tsEnd])
	if err != nil {
		return time.Time{}, false
	}
	return ts, true
}

// DayCutoff returns local midnight at the start of the window covering
// the last N calendar days, today included.
func DayCutoff(days int) time.Time {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return today.AddDate(0, 0, -(days - 1))
}

// extractField returns the value after "key=" in a space-separated line.
// Returns "" if not found.
func extractField(line, key string) string {
	prefix := key + "="
	for _, field := range strings.Fields(line) {
		if strings.HasPrefix(field, prefix) {
			return field[len(prefix):]
		}
	}
	return ""
}

// extractQuoted extracts a Go %q-encoded string from the start of s.
// It finds the matching closing quote (respecting backslash escapes),
// then uses strconv.Unquote to decode the value. Returns "" on failure.
func extractQuoted(s string) string {
	if len(s) == 0 || s[0] != '"' {
		return ""
	}
	for i := 1; i < len(s); i++ {
		if s[i] == '\\' {
			i++ // skip escaped character
			continue
		}
		if s[i] == '"' {
			text, err := strconv.Unquote(s[:i+1])
			if err != nil {
				return ""
			}
			return text
		}
	}
	return ""
}
