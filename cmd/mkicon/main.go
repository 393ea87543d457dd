// mkicon creates the application icon files (PNG + ICO) if they are missing
// and prints their absolute paths.
//
// Usage:
//
//	mkicon [flags]
//	mkicon history [--days N]
//	mkicon history clean [--days N]
//	mkicon history clear
//	mkicon history export
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/Mavwarf/appicon/internal/config"
	"github.com/Mavwarf/appicon/internal/eventlog"
	"github.com/Mavwarf/appicon/internal/iconcache"
	"github.com/Mavwarf/appicon/internal/mqtt"
	"github.com/Mavwarf/appicon/internal/pattern"
	"github.com/Mavwarf/appicon/internal/pngenc"
	"github.com/Mavwarf/appicon/internal/preview"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

// Exit codes.
const (
	exitOK       = 0
	exitUsage    = 1
	exitEncoding = 2
	exitIO       = 3
)

const defaultPreviewWidth = 64

type options struct {
	configPath string
	dir        string
	size       int
	sizeSet    bool
	rasterName string
	iconName   string
	preview    bool
	noLog      bool
	verbose    bool
	version    bool
	help       bool
	days       int
	history    bool
	historyCmd string // "", "clean", "clear" or "export"
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, flagSet, err := parseArgs(args, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		fmt.Fprintf(stderr, "Run 'mkicon --help' for usage.\n")
		return exitUsage
	}
	switch {
	case opts.help:
		printUsage(stderr, flagSet)
		return exitOK
	case opts.version:
		fmt.Fprintf(stdout, "mkicon %s (built %s)\n", version, buildDate)
		return exitOK
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}

	level := slog.LevelWarn
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	switch {
	case opts.history:
		err = history(cfg, opts, stdout)
	case opts.preview:
		err = showPreview(cfg, stdout)
	default:
		err = ensure(cfg, opts.noLog, logger, stdout)
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCode(err)
	}
	return exitOK
}

func parseArgs(args []string, stderr io.Writer) (options, *pflag.FlagSet, error) {
	var opts options
	if len(args) > 0 && args[0] == "history" {
		opts.history = true
		args = args[1:]
		if len(args) > 0 {
			switch args[0] {
			case "clean", "clear", "export":
				opts.historyCmd = args[0]
				args = args[1:]
			}
		}
	}

	flagSet := pflag.NewFlagSet("mkicon", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.StringVarP(&opts.configPath, "config", "c", "", "path to appicon-config.json")
	flagSet.StringVarP(&opts.dir, "dir", "d", "", "directory for the icon files (default: <data dir>/icons)")
	flagSet.IntVarP(&opts.size, "size", "s", pattern.DefaultSize, "icon side length in pixels")
	flagSet.StringVar(&opts.rasterName, "raster-name", "", "PNG file name (default icon.png)")
	flagSet.StringVar(&opts.iconName, "icon-name", "", "ICO file name (default icon.ico)")
	flagSet.BoolVarP(&opts.preview, "preview", "p", false, "draw the icon in the terminal instead of writing files")
	flagSet.BoolVar(&opts.noLog, "no-log", false, "do not record generation history")
	flagSet.BoolVarP(&opts.verbose, "verbose", "v", false, "log debug output to stderr")
	flagSet.BoolVarP(&opts.version, "version", "V", false, "print version and exit")
	flagSet.BoolVarP(&opts.help, "help", "h", false, "show help")
	flagSet.IntVar(&opts.days, "days", 0, "history: only show (clean: only keep) the last N days (0 = all)")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			opts.help = true
			return opts, flagSet, nil
		}
		return opts, flagSet, err
	}
	if rest := flagSet.Args(); len(rest) > 0 {
		return opts, flagSet, fmt.Errorf("unexpected argument: %s", rest[0])
	}
	opts.sizeSet = flagSet.Changed("size")
	if opts.days < 0 {
		return opts, flagSet, fmt.Errorf("--days must not be negative")
	}
	return opts, flagSet, nil
}

// loadConfig reads the config file (defaults when none exists) and applies
// command-line overrides.
func loadConfig(opts options) (config.Config, error) {
	cfg, err := config.LoadOrDefault(opts.configPath)
	if err != nil {
		return cfg, err
	}
	if opts.dir != "" {
		cfg.Icon.Dir = opts.dir
	}
	if opts.sizeSet {
		cfg.Icon.Size = opts.size
	}
	if opts.rasterName != "" {
		cfg.Icon.RasterName = opts.rasterName
	}
	if opts.iconName != "" {
		cfg.Icon.IconName = opts.iconName
	}
	return cfg, config.Validate(cfg)
}

// newCache builds an iconcache.Cache from cfg. The returned store may be
// nil and must be closed by the caller otherwise.
func newCache(cfg config.Config, noLog bool, logger *slog.Logger) (*iconcache.Cache, eventlog.Store, error) {
	palette, err := cfg.Icon.ResolvedPalette()
	if err != nil {
		return nil, nil, err
	}
	dir := cfg.Icon.ResolvedDir()
	c := iconcache.New(dir)
	c.Size = cfg.Icon.Size
	c.RasterName = cfg.Icon.RasterName
	c.IconName = cfg.Icon.IconName
	c.Palette = palette
	c.Logger = logger

	var store eventlog.Store
	if cfg.Options.Log && !noLog {
		store, err = eventlog.Open(cfg.Options.Storage, cfg.Options.ResolvedHistoryDir())
		if err != nil {
			// History is best-effort; icons are still produced.
			logger.Warn("history unavailable", "error", err)
		} else {
			c.Store = store
		}
	}

	if m := cfg.Options.MQTT; m.Broker != "" {
		mo := mqtt.Options{
			Broker:   m.Broker,
			ClientID: m.ClientID,
			Topic:    m.Topic,
			Username: m.Username,
			Password: m.Password,
			QoS:      m.QoS,
			Retain:   m.Retain,
		}
		c.Announce = func(r eventlog.Record) error {
			return mqtt.Announce(mo, mqtt.Event{
				File:   string(r.File),
				Path:   r.Path,
				Size:   r.Size,
				Bytes:  r.Bytes,
				Digest: r.Digest,
				Time:   time.Now().UTC(),
			})
		}
	}
	return c, store, nil
}

func ensure(cfg config.Config, noLog bool, logger *slog.Logger, stdout io.Writer) error {
	c, store, err := newCache(cfg, noLog, logger)
	if err != nil {
		return err
	}
	if store != nil {
		defer store.Close()
	}
	res, err := c.Ensure()
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, res.RasterPath)
	fmt.Fprintln(stdout, res.IconPath)
	return nil
}

func showPreview(cfg config.Config, stdout io.Writer) error {
	palette, err := cfg.Icon.ResolvedPalette()
	if err != nil {
		return err
	}
	width := defaultPreviewWidth
	if f, ok := stdout.(*os.File); ok {
		fd := int(f.Fd())
		if !term.IsTerminal(fd) {
			return fmt.Errorf("--preview needs a terminal on stdout")
		}
		if cols, _, err := term.GetSize(fd); err == nil && cols > 0 {
			width = cols
		}
	}
	return preview.Render(stdout, pattern.Generator{Size: cfg.Icon.Size, Palette: palette}, width)
}

func history(cfg config.Config, opts options, stdout io.Writer) error {
	store, err := eventlog.Open(cfg.Options.Storage, cfg.Options.ResolvedHistoryDir())
	if err != nil {
		return err
	}
	defer store.Close()

	switch opts.historyCmd {
	case "clear":
		return historyClear(store, stdout)
	case "clean":
		if opts.days == 0 {
			return historyClear(store, stdout)
		}
		n, err := store.Clean(opts.days)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Removed %d entries older than %d days.\n", n, opts.days)
		return nil
	case "export":
		content, err := store.ReadContent()
		if err != nil {
			return err
		}
		fmt.Fprint(stdout, content)
		return nil
	}

	entries, err := store.Entries(opts.days)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintf(stdout, "No history in %s\n", store.Path())
		return nil
	}
	for _, e := range entries {
		fmt.Fprintf(stdout, "%s  %-9s  %-6s  %4dpx  %7d bytes  %s\n",
			e.Time.Local().Format("2006-01-02 15:04:05"), e.Action, e.File, e.Size, e.Bytes, e.Path)
	}
	return nil
}

func historyClear(store eventlog.Store, stdout io.Writer) error {
	if err := store.Clear(); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "History cleared: %s\n", store.Path())
	return nil
}

// exitCode maps Ensure's error taxonomy onto process exit codes.
func exitCode(err error) int {
	var encErr *pngenc.EncodingError
	var ioErr *iconcache.IOError
	switch {
	case errors.As(err, &encErr):
		return exitEncoding
	case errors.As(err, &ioErr):
		return exitIO
	default:
		return exitUsage
	}
}

func printUsage(w io.Writer, flagSet *pflag.FlagSet) {
	fmt.Fprintf(w, `mkicon - create the application icon files on first run

Writes a PNG and an ICO (embedding that PNG) into the icon directory if
they do not exist yet, then prints both absolute paths. Existing files
are never touched; delete them to regenerate.

History is kept in the app data directory, not next to the icons.

Usage:
  mkicon [flags]
  mkicon history [--days N]          list generated and reused files
  mkicon history clean [--days N]    drop entries older than N days (0 = all)
  mkicon history clear               delete all history
  mkicon history export              print the raw history log

Flags:
%s
Exit codes: 0 ok, 1 usage/config, 2 encoding error, 3 I/O error.
`, flagSet.FlagUsages())
}
