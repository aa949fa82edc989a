// Package config resolves scout settings from defaults, a YAML file, .env
// files and SCOUT_* environment variables, in increasing precedence.
// Command-line flags are applied on top by the CLI.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"unicode/utf8"

	"github.com/joho/godotenv"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/roach88/scout/internal/analytics"
	"github.com/roach88/scout/internal/exchange"
	"github.com/roach88/scout/internal/store"
)

// DefaultFile is the config file read when no path is given.
const DefaultFile = "scout.yaml"

// DefaultDatabase is the SQLite file used when none is configured.
const DefaultDatabase = "scout.db"

// DefaultLocale formats numbers for display when no locale is configured.
const DefaultLocale = "en"

// Environment variables overriding file settings.
const (
	EnvDatabase    = "SCOUT_DB"
	EnvSeparator   = "SCOUT_SEPARATOR"
	EnvUIDAttempts = "SCOUT_UID_ATTEMPTS"
	EnvWinRule     = "SCOUT_WIN_RULE"
	EnvQRScale     = "SCOUT_QR_SCALE"
	EnvLocale      = "SCOUT_LOCALE"
)

// Config holds every tunable setting.
type Config struct {
	Database    string `yaml:"database"`
	Separator   string `yaml:"separator"`
	UIDAttempts int    `yaml:"uid_attempts"`
	WinRule     string `yaml:"win_rule"`
	QRScale     int    `yaml:"qr_scale"`
	Locale      string `yaml:"locale"` // BCP 47 tag, e.g. "de" or "fr-CA"
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Database:    DefaultDatabase,
		Separator:   string(exchange.DefaultSeparator),
		UIDAttempts: store.DefaultUIDAttempts,
		WinRule:     string(analytics.DefaultRule),
		QRScale:     exchange.DefaultQRScale,
		Locale:      DefaultLocale,
	}
}

// Load resolves the full configuration.
//
// If path is empty, DefaultFile is read when present and silently skipped
// otherwise; an explicit path must exist. A .env file in the working
// directory is loaded into the environment first, without overriding
// variables that are already set.
func Load(path string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}
	if err := cfg.mergeFile(path); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return Config{}, err
		}
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// mergeFile overlays the settings present in a YAML file.
func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overlays SCOUT_* variables found through lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvDatabase); ok && v != "" {
		c.Database = v
	}
	if v, ok := lookup(EnvSeparator); ok && v != "" {
		c.Separator = v
	}
	if v, ok := lookup(EnvWinRule); ok && v != "" {
		c.WinRule = v
	}
	if v, ok := lookup(EnvLocale); ok && v != "" {
		c.Locale = v
	}

	ints := []struct {
		name string
		dst  *int
	}{
		{EnvUIDAttempts, &c.UIDAttempts},
		{EnvQRScale, &c.QRScale},
	}
	for _, e := range ints {
		v, ok := lookup(e.name)
		if !ok || v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", e.name, err)
		}
		*e.dst = n
	}
	return nil
}

// Validate checks every setting.
func (c Config) Validate() error {
	if c.Database == "" {
		return fmt.Errorf("database is required")
	}

	if utf8.RuneCountInString(c.Separator) != 1 {
		return fmt.Errorf("separator must be a single character, got %q", c.Separator)
	}
	switch c.SeparatorRune() {
	case '"', '\r', '\n', utf8.RuneError:
		return fmt.Errorf("separator %q cannot be used in CSV", c.Separator)
	}

	if c.UIDAttempts < 1 {
		return fmt.Errorf("uid_attempts must be positive, got %d", c.UIDAttempts)
	}
	if c.QRScale < 1 {
		return fmt.Errorf("qr_scale must be positive, got %d", c.QRScale)
	}
	if _, err := analytics.ParseRule(c.WinRule); err != nil {
		return err
	}
	if _, err := language.Parse(c.Locale); err != nil {
		return fmt.Errorf("invalid locale %q: %w", c.Locale, err)
	}
	return nil
}

// SeparatorRune returns the CSV separator as a rune.
func (c Config) SeparatorRune() rune {
	r, _ := utf8.DecodeRuneInString(c.Separator)
	return r
}

// Rule returns the configured win rule, DefaultRule if it is invalid.
func (c Config) Rule() analytics.Rule {
	rule, err := analytics.ParseRule(c.WinRule)
	if err != nil {
		return analytics.DefaultRule
	}
	return rule
}

// Language returns the configured display locale, English if it is invalid.
func (c Config) Language() language.Tag {
	tag, err := language.Parse(c.Locale)
	if err != nil {
		return language.English
	}
	return tag
}
