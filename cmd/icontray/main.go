// icontray shows the generated application icon in the system tray. It
// runs the same first-run check as mkicon, then loads the file the
// platform's tray expects: the ICO on Windows, the PNG elsewhere.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"github.com/spf13/pflag"

	"github.com/Mavwarf/appicon/internal/config"
	"github.com/Mavwarf/appicon/internal/eventlog"
	"github.com/Mavwarf/appicon/internal/iconcache"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "icontray: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	var configPath string
	flagSet := pflag.NewFlagSet("icontray", pflag.ContinueOnError)
	flagSet.StringVarP(&configPath, "config", "c", "", "path to appicon-config.json")
	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return err
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	res, err := ensureIcons(cfg, logger)
	if err != nil {
		return err
	}

	iconPath := trayIconPath(res, runtime.GOOS)
	icon, err := os.ReadFile(iconPath)
	if err != nil {
		return fmt.Errorf("reading tray icon: %w", err)
	}

	runTray(icon, iconPath)
	return nil
}

func ensureIcons(cfg config.Config, logger *slog.Logger) (iconcache.Result, error) {
	palette, err := cfg.Icon.ResolvedPalette()
	if err != nil {
		return iconcache.Result{}, err
	}
	dir := cfg.Icon.ResolvedDir()
	c := iconcache.New(dir)
	c.Size = cfg.Icon.Size
	c.RasterName = cfg.Icon.RasterName
	c.IconName = cfg.Icon.IconName
	c.Palette = palette
	c.Logger = logger

	if cfg.Options.Log {
		store, err := eventlog.Open(cfg.Options.Storage, cfg.Options.ResolvedHistoryDir())
		if err != nil {
			logger.Warn("history unavailable", "error", err)
		} else {
			defer store.Close()
			c.Store = store
		}
	}
	return c.Ensure()
}

// trayIconPath picks the file the tray implementation on goos can load.
// Windows LoadImage(IMAGE_ICON) requires ICO; the others take PNG.
func trayIconPath(res iconcache.Result, goos string) string {
	if goos == "windows" {
		return res.IconPath
	}
	return res.RasterPath
}
