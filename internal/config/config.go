package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/tidwall/jsonc"

	"github.com/Mavwarf/appicon/internal/paths"
	"github.com/Mavwarf/appicon/internal/pattern"
	"github.com/Mavwarf/appicon/internal/pngenc"
)

// DefaultTopic is the MQTT topic generation events are published to.
const DefaultTopic = "appicon/generated"

// DefaultClientID is the MQTT client ID used when none is configured.
const DefaultClientID = "appicon"

// PaletteOverrides holds optional "#rrggbb" colours. Empty fields keep the
// default colour.
type PaletteOverrides struct {
	Background string `json:"background,omitempty"`
	Border     string `json:"border,omitempty"`
	AccentA    string `json:"accent_a,omitempty"`
	AccentB    string `json:"accent_b,omitempty"`
}

// IconOptions describes where the icon files live and how they look.
type IconOptions struct {
	Dir        string           `json:"dir,omitempty"` // "" = paths.IconDir()
	Size       int              `json:"size,omitempty"`
	RasterName string           `json:"raster_name,omitempty"`
	IconName   string           `json:"icon_name,omitempty"`
	Palette    PaletteOverrides `json:"palette,omitempty"`
}

// MQTT holds broker settings for generation announcements. An empty
// Broker disables publishing.
type MQTT struct {
	Broker   string `json:"broker,omitempty"`
	Topic    string `json:"topic,omitempty"`
	ClientID string `json:"client_id,omitempty"`
	Username string `json:"username,omitempty"`
	Password string `json:"password,omitempty"`
	QoS      byte   `json:"qos,omitempty"`
	Retain   bool   `json:"retain,omitempty"`
}

// Options holds global settings parsed from the "config" key.
type Options struct {
	Log        bool   `json:"log"`
	Storage    string `json:"storage,omitempty"`     // "file" | "sqlite"
	HistoryDir string `json:"history_dir,omitempty"` // "" = paths.DataDir()
	MQTT       MQTT   `json:"mqtt,omitempty"`
}

// Config holds the top-level configuration.
type Config struct {
	Icon    IconOptions `json:"icon"`
	Options Options     `json:"config"`
}

// Default returns the configuration used when no file is found.
func Default() Config {
	var c Config
	c.setDefaults()
	return c
}

func (c *Config) setDefaults() {
	c.Icon.Size = pattern.DefaultSize
	c.Icon.RasterName = paths.RasterFileName
	c.Icon.IconName = paths.IconFileName
	c.Options.Log = true
	c.Options.Storage = "file"
	c.Options.MQTT.Topic = DefaultTopic
	c.Options.MQTT.ClientID = DefaultClientID
}

// UnmarshalJSON sets defaults then decodes the JSON structure.
// Go's json.Unmarshal merges into existing struct fields, so only
// values present in JSON override the defaults.
func (c *Config) UnmarshalJSON(data []byte) error {
	c.setDefaults()
	type Alias Config
	return json.Unmarshal(data, (*Alias)(c))
}

// ResolvedDir returns the icon directory, defaulting to paths.IconDir().
func (o IconOptions) ResolvedDir() string {
	if o.Dir != "" {
		return o.Dir
	}
	return paths.IconDir()
}

// ResolvedHistoryDir returns the history directory, defaulting to
// paths.DataDir(), the parent of the default icon directory.
func (o Options) ResolvedHistoryDir() string {
	if o.HistoryDir != "" {
		return o.HistoryDir
	}
	return paths.DataDir()
}

// ResolvedPalette returns the default palette with any overrides applied.
func (o IconOptions) ResolvedPalette() (pattern.Palette, error) {
	p := pattern.DefaultPalette()
	for _, f := range []struct {
		name string
		hex  string
		dst  *pattern.RGB
	}{
		{"background", o.Palette.Background, &p.Background},
		{"border", o.Palette.Border, &p.Border},
		{"accent_a", o.Palette.AccentA, &p.AccentA},
		{"accent_b", o.Palette.AccentB, &p.AccentB},
	} {
		if f.hex == "" {
			continue
		}
		c, err := pattern.ParseRGB(f.hex)
		if err != nil {
			return pattern.Palette{}, fmt.Errorf("palette %s: %w", f.name, err)
		}
		*f.dst = c
	}
	return p, nil
}

// Validate checks a loaded config for values Ensure cannot work with.
func Validate(cfg Config) error {
	var errs []error
	if cfg.Icon.Size <= 0 || cfg.Icon.Size > pngenc.MaxSize {
		errs = append(errs, fmt.Errorf("icon size %d out of range [1, %d]", cfg.Icon.Size, pngenc.MaxSize))
	}
	for _, n := range []struct{ key, val string }{
		{"raster_name", cfg.Icon.RasterName},
		{"icon_name", cfg.Icon.IconName},
	} {
		if n.val == "" {
			errs = append(errs, fmt.Errorf("%s must not be empty", n.key))
		} else if strings.ContainsAny(n.val, `/\`) || n.val == "." || n.val == ".." {
			errs = append(errs, fmt.Errorf("%s %q must be a plain file name", n.key, n.val))
		}
	}
	if cfg.Icon.RasterName != "" && cfg.Icon.RasterName == cfg.Icon.IconName {
		errs = append(errs, fmt.Errorf("raster_name and icon_name are both %q", cfg.Icon.RasterName))
	}
	if _, err := cfg.Icon.ResolvedPalette(); err != nil {
		errs = append(errs, err)
	}
	switch cfg.Options.Storage {
	case "", "file", "sqlite":
	default:
		errs = append(errs, fmt.Errorf("unknown storage %q (want \"file\" or \"sqlite\")", cfg.Options.Storage))
	}
	if cfg.Options.MQTT.QoS > 2 {
		errs = append(errs, fmt.Errorf("mqtt qos %d out of range [0, 2]", cfg.Options.MQTT.QoS))
	}
	return errors.Join(errs...)
}

// Load reads and parses a config file. It tries, in order:
//  1. explicitPath (if non-empty)
//  2. appicon-config.json next to the running binary
//  3. ~/.config/appicon/appicon-config.json
func Load(explicitPath string) (Config, error) {
	p, err := FindPath(explicitPath)
	if err != nil {
		return Config{}, err
	}
	return readConfig(p)
}

// LoadOrDefault is Load, except that a missing config file yields Default().
// An explicit path that does not exist is still an error.
func LoadOrDefault(explicitPath string) (Config, error) {
	cfg, err := Load(explicitPath)
	if errors.Is(err, ErrNotFound) {
		return Default(), nil
	}
	return cfg, err
}

// ErrNotFound is returned by FindPath when no config file exists in any
// of the default locations.
var ErrNotFound = errors.New("no " + paths.ConfigFileName + " found (use --config to specify a path)")

// FindPath returns the config file Load would read.
func FindPath(explicitPath string) (string, error) {
	if explicitPath != "" {
		if _, err := os.Stat(explicitPath); err != nil {
			return "", fmt.Errorf("config %s: %w", explicitPath, err)
		}
		return explicitPath, nil
	}

	// Next to binary
	exe, err := os.Executable()
	if err == nil {
		p := filepath.Join(filepath.Dir(exe), paths.ConfigFileName)
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}

	// User config directory
	home, err := os.UserHomeDir()
	if err == nil {
		var p string
		if runtime.GOOS == "windows" {
			p = filepath.Join(home, "AppData", "Roaming", paths.AppDirName, paths.ConfigFileName)
		} else {
			p = filepath.Join(home, ".config", paths.AppDirName, paths.ConfigFileName)
		}
		if _, err := os.Stat(p); err == nil {
			return p, nil
		} else if !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("config %s: %w", p, err)
		}
	}

	return "", ErrNotFound
}

func readConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := json.Unmarshal(jsonc.ToJSON(data), &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}
