package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	toml "github.com/naoina/toml"

	"github.com/aetherspritee/kibun/src/journal"
	"github.com/aetherspritee/kibun/src/ui"
)

// Environment variables that override the config file.
const (
	EnvConfig    = "KIBUN_CONFIG"
	EnvStorePath = "KIBUN_STORE_PATH"
	EnvLogLevel  = "KIBUN_LOG_LEVEL"
	EnvLogFile   = "KIBUN_LOG_FILE"
)

type General struct {
	StorePath      string `toml:"store_path"`
	Width          int    `toml:"width"`
	MaxColumnWidth int    `toml:"max_column_width"`
	LogLevel       string `toml:"log_level"`
	LogFile        string `toml:"log_file"`
}

type Colors struct {
	Border   string `toml:"border"`
	Title    string `toml:"title"`
	MoodLow  string `toml:"mood_low"`
	MoodHigh string `toml:"mood_high"`
	Error    string `toml:"error"`
	Warn     string `toml:"warn"`
	Success  string `toml:"success"`
}

type Config struct {
	General General `toml:"general"`
	Colors  Colors  `toml:"colors"`

	// file the config was read from, empty when running on defaults
	Source string `toml:"-"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	p := ui.DefaultPalette()
	return Config{
		General: General{
			StorePath:      journal.DefaultPath,
			Width:          ui.DefaultWidth,
			MaxColumnWidth: ui.DefaultMaxColumnWidth,
			LogLevel:       "warn",
		},
		Colors: Colors{
			Border:   p.Border,
			Title:    p.Title,
			MoodLow:  p.MoodLow,
			MoodHigh: p.MoodHigh,
			Error:    p.Error,
			Warn:     p.Warn,
			Success:  p.Success,
		},
	}
}

// Palette converts the colour section for the renderer.
func (c Config) Palette() ui.Palette {
	return ui.Palette{
		Border:   c.Colors.Border,
		Title:    c.Colors.Title,
		MoodLow:  c.Colors.MoodLow,
		MoodHigh: c.Colors.MoodHigh,
		Error:    c.Colors.Error,
		Warn:     c.Colors.Warn,
		Success:  c.Colors.Success,
	}
}

// LoadDotEnv loads .env.local and then .env from the working directory and
// returns the files it read. godotenv never overwrites variables that are
// already set, so the OS environment wins over .env.local, which wins over .env.
func LoadDotEnv() ([]string, error) {
	var loaded []string
	for _, f := range []string{".env.local", ".env"} {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return loaded, fmt.Errorf("load %s: %w", f, err)
		}
		loaded = append(loaded, f)
	}
	return loaded, nil
}

// Path returns the config file to read, or "" if none exists.
// KIBUN_CONFIG is returned even when missing so that a typo is reported.
func Path() (string, error) {
	if p := strings.TrimSpace(os.Getenv(EnvConfig)); p != "" {
		return p, nil
	}

	candidates := []string{"config.toml"}
	if xdg := strings.TrimSpace(os.Getenv("XDG_CONFIG_HOME")); xdg != "" {
		candidates = append(candidates, filepath.Join(xdg, "kibun", "config.toml"))
	} else if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, ".config", "kibun", "config.toml"))
	}

	for _, c := range candidates {
		info, err := os.Stat(c)
		if err == nil && !info.IsDir() {
			return c, nil
		}
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("config path: %w", err)
		}
	}
	return "", nil
}

// Load resolves the config file, decodes it over the defaults and applies
// environment overrides.
func Load() (Config, error) {
	path, err := Path()
	if err != nil {
		return Default(), err
	}

	cfg := Default()
	if path != "" {
		cfg, err = ReadFile(path)
		if err != nil {
			return Default(), err
		}
	}
	cfg = ApplyEnv(cfg)
	return Normalize(cfg), nil
}

// ReadFile decodes a TOML file on top of the defaults.
func ReadFile(path string) (Config, error) {
	cfg := Default()
	f, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	defer f.Close()

	if err := toml.NewDecoder(f).Decode(&cfg); err != nil {
		return Default(), fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.Source = path
	return Normalize(cfg), nil
}

// ApplyEnv overrides file values with any KIBUN_* variables that are set.
func ApplyEnv(cfg Config) Config {
	if v, ok := lookup(EnvStorePath); ok {
		cfg.General.StorePath = v
	}
	if v, ok := lookup(EnvLogLevel); ok {
		cfg.General.LogLevel = v
	}
	if v, ok := lookup(EnvLogFile); ok {
		cfg.General.LogFile = v
	}
	return cfg
}

func lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

// Normalize trims values and puts defaults back where a value is unusable.
func Normalize(cfg Config) Config {
	def := Default()
	g := &cfg.General
	g.StorePath = strings.TrimSpace(g.StorePath)
	if g.StorePath == "" {
		g.StorePath = def.General.StorePath
	}
	if g.Width <= 0 {
		g.Width = def.General.Width
	}
	if g.MaxColumnWidth <= 0 {
		g.MaxColumnWidth = def.General.MaxColumnWidth
	}
	g.LogLevel = strings.ToLower(strings.TrimSpace(g.LogLevel))
	if g.LogLevel == "" {
		g.LogLevel = def.General.LogLevel
	}
	g.LogFile = strings.TrimSpace(g.LogFile)
	return cfg
}

// String is a one-line summary for debug logs.
func (c Config) String() string {
	src := c.Source
	if src == "" {
		src = "defaults"
	}
	return "config(" + src + ") store=" + c.General.StorePath +
		" width=" + strconv.Itoa(c.General.Width) +
		" log=" + c.General.LogLevel
}
