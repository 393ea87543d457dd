// Package iconcache creates the application icon files on first run.
//
// Ensure is gated on file existence only. A file already on disk is never
// rewritten or validated, so a truncated file left by an interrupted run
// is reused as is; delete it to regenerate. There is no locking either:
// two processes racing on an empty directory both write, and the last
// rename wins. Callers are expected to run Ensure once at startup before
// anything reads the files.
package iconcache

import (
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/zeebo/blake3"

	"github.com/Mavwarf/appicon/internal/eventlog"
	"github.com/Mavwarf/appicon/internal/ico"
	"github.com/Mavwarf/appicon/internal/paths"
	"github.com/Mavwarf/appicon/internal/pattern"
	"github.com/Mavwarf/appicon/internal/pngenc"
)

// IOError reports a filesystem failure during Ensure. Files written
// earlier in the same call stay on disk.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("iconcache: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// Cache describes the two icon files in Dir. Use New for defaults.
type Cache struct {
	Dir        string
	Size       int
	RasterName string
	IconName   string
	Palette    pattern.Palette
	Encoder    *pngenc.Encoder // nil = pngenc defaults

	// Store receives one record per generated or reused file. Optional;
	// failures are logged, never returned.
	Store eventlog.Store
	// Announce is called for each generated file. Optional; failures are
	// logged, never returned.
	Announce func(eventlog.Record) error
	Logger   *slog.Logger
}

// Result holds the absolute paths of both files and what this call did.
type Result struct {
	RasterPath      string
	IconPath        string
	RasterGenerated bool
	IconGenerated   bool
}

// New returns a Cache for dir with the default size, names and palette.
func New(dir string) *Cache {
	return &Cache{
		Dir:        dir,
		Size:       pattern.DefaultSize,
		RasterName: paths.RasterFileName,
		IconName:   paths.IconFileName,
		Palette:    pattern.DefaultPalette(),
	}
}

// Ensure creates the default icon files in baseDir if they are missing and
// returns their absolute paths. A size of 0 means pattern.DefaultSize;
// negative sizes are rejected.
func Ensure(baseDir string, size int) (rasterPath, iconPath string, err error) {
	c := New(baseDir)
	if size != 0 {
		c.Size = size
	}
	res, err := c.Ensure()
	return res.RasterPath, res.IconPath, err
}

// Ensure writes each missing file and leaves existing ones untouched. The
// raster is handled first because the icon embeds its exact bytes; an
// existing raster is read back and wrapped unchanged.
//
// Errors are *pngenc.EncodingError or *IOError. The returned Result carries
// the paths and whatever was generated before the failure.
func (c *Cache) Ensure() (Result, error) {
	log := c.logger()

	if err := pngenc.CheckSize(c.Size); err != nil {
		return Result{}, err
	}
	dir, err := filepath.Abs(c.Dir)
	if err != nil {
		return Result{}, &IOError{Op: "resolve", Path: c.Dir, Err: err}
	}
	res := Result{
		RasterPath: filepath.Join(dir, nameOr(c.RasterName, paths.RasterFileName)),
		IconPath:   filepath.Join(dir, nameOr(c.IconName, paths.IconFileName)),
	}

	rasterExists, err := paths.Exists(res.RasterPath)
	if err != nil {
		return res, &IOError{Op: "stat", Path: res.RasterPath, Err: err}
	}
	iconExists, err := paths.Exists(res.IconPath)
	if err != nil {
		return res, &IOError{Op: "stat", Path: res.IconPath, Err: err}
	}
	if rasterExists && iconExists {
		log.Debug("icon files present", "raster", res.RasterPath, "icon", res.IconPath)
		return res, nil
	}

	if err := os.MkdirAll(dir, paths.DirPerm); err != nil {
		return res, &IOError{Op: "mkdir", Path: dir, Err: err}
	}
	if err := paths.Writable(dir); err != nil {
		return res, &IOError{Op: "access", Path: dir, Err: err}
	}

	var raster []byte
	if rasterExists {
		raster, err = os.ReadFile(res.RasterPath)
		if err != nil {
			return res, &IOError{Op: "read", Path: res.RasterPath, Err: err}
		}
		c.record(eventlog.FileRaster, eventlog.ActionReused, res.RasterPath, raster)
	} else {
		raster, err = c.encoder().Encode(pattern.Generator{Size: c.Size, Palette: c.Palette}, c.Size)
		if err != nil {
			return res, err
		}
		if err := paths.AtomicWrite(res.RasterPath, raster); err != nil {
			return res, &IOError{Op: "write", Path: res.RasterPath, Err: err}
		}
		res.RasterGenerated = true
		c.record(eventlog.FileRaster, eventlog.ActionGenerated, res.RasterPath, raster)
	}

	if !iconExists {
		icon := ico.Wrap(raster, c.Size)
		if err := paths.AtomicWrite(res.IconPath, icon); err != nil {
			return res, &IOError{Op: "write", Path: res.IconPath, Err: err}
		}
		res.IconGenerated = true
		c.record(eventlog.FileIcon, eventlog.ActionGenerated, res.IconPath, icon)
	}
	return res, nil
}

// record logs r to slog, the history store and, for generated files, the
// announcer.
func (c *Cache) record(file eventlog.File, action eventlog.Action, path string, data []byte) {
	r := eventlog.Record{
		File:   file,
		Action: action,
		Path:   path,
		Size:   c.Size,
		Bytes:  len(data),
		Digest: Digest(data),
	}
	log := c.logger()
	log.Info("icon file "+string(action), "file", file, "path", path, "bytes", r.Bytes)

	if c.Store != nil {
		if err := c.Store.Log(r); err != nil {
			log.Warn("history write failed", "path", c.Store.Path(), "error", err)
		}
	}
	if c.Announce != nil && action == eventlog.ActionGenerated {
		if err := c.Announce(r); err != nil {
			log.Warn("announce failed", "file", file, "error", err)
		}
	}
}

func (c *Cache) encoder() *pngenc.Encoder {
	if c.Encoder != nil {
		return c.Encoder
	}
	return &pngenc.Encoder{}
}

func (c *Cache) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.New(slog.DiscardHandler)
}

// Digest returns the hex BLAKE3-256 of data.
func Digest(data []byte) string {
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func nameOr(name, def string) string {
	if name == "" {
		return def
	}
	return name
}
