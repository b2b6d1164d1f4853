package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/elliotchen37/rmxlrc/internal/http"
	"github.com/elliotchen37/rmxlrc/internal/model"
)

// Settings holds all configuration options.
type Settings struct {
	// Provider
	Token string `toml:"token"`

	// Output
	Format      string `toml:"format"` // lrc, srt
	Synced      bool   `toml:"synced"`
	OutputDir   string `toml:"output_dir"`
	EmbedLyrics bool   `toml:"embed_lyrics"`

	// Batch pacing
	PaceSeconds int `toml:"pace_seconds"`
	Concurrency int `toml:"concurrency"`

	// Network
	TimeoutSeconds int     `toml:"timeout_seconds"`
	MaxRetries     int     `toml:"max_retries"`
	RetryCooldown  float64 `toml:"retry_cooldown"`
	RetryExponent  float64 `toml:"retry_exponent"`

	// Cache; empty CacheDir and Redis.Addr disable caching
	CacheDir      string        `toml:"cache_dir"`
	CacheTTLHours int           `toml:"cache_ttl_hours"`
	Redis         RedisSettings `toml:"redis"`
}

// RedisSettings configures the optional Redis document cache.
type RedisSettings struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	return &Settings{
		Format:         "lrc",
		Synced:         true,
		OutputDir:      "",
		EmbedLyrics:    false,
		PaceSeconds:    30,
		Concurrency:    1,
		TimeoutSeconds: 15,
		MaxRetries:     3,
		RetryCooldown:  0.5,
		RetryExponent:  2.0,
		CacheTTLHours:  24 * 7,
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/rmxlrc/config.toml, falling back
// to ~/.config/rmxlrc/config.toml.
func DefaultPath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "rmxlrc", "config.toml")
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "rmxlrc.toml"
	}
	return filepath.Join(homeDir, ".config", "rmxlrc", "config.toml")
}

// Load reads settings from a TOML file. A missing file yields defaults.
func Load(path string) (*Settings, error) {
	settings := DefaultSettings()

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return settings, nil
		}
		return nil, err
	}

	meta, err := toml.DecodeFile(path, settings)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("parse %s: unknown key %q", path, undecoded[0].String())
	}

	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return settings, nil
}

// Save writes settings to a TOML file, creating parent directories.
func (s *Settings) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(s); err != nil {
		return err
	}

	return os.WriteFile(path, buf.Bytes(), 0600)
}

// Validate checks value ranges.
func (s *Settings) Validate() error {
	if _, err := model.ParseFormat(s.Format); err != nil {
		return err
	}
	if s.PaceSeconds < 0 {
		return errors.New("pace_seconds must not be negative")
	}
	if s.Concurrency < 1 {
		return errors.New("concurrency must be at least 1")
	}
	if s.TimeoutSeconds < 1 {
		return errors.New("timeout_seconds must be at least 1")
	}
	if s.MaxRetries < 1 {
		return errors.New("max_retries must be at least 1")
	}
	if s.RetryCooldown < 0 || s.RetryExponent < 1 {
		return errors.New("retry_cooldown must be >= 0 and retry_exponent >= 1")
	}
	return nil
}

// OutputFormat returns the parsed Format, defaulting to LRC.
func (s *Settings) OutputFormat() model.Format {
	f, _ := model.ParseFormat(s.Format)
	return f
}

// Pace returns the delay between sequential lookups.
func (s *Settings) Pace() time.Duration {
	return time.Duration(s.PaceSeconds) * time.Second
}

// Timeout returns the per-request timeout.
func (s *Settings) Timeout() time.Duration {
	return time.Duration(s.TimeoutSeconds) * time.Second
}

// CacheTTL returns how long cached documents stay valid. Zero means forever.
func (s *Settings) CacheTTL() time.Duration {
	return time.Duration(s.CacheTTLHours) * time.Hour
}

// ToRetryPolicy converts settings to an http.RetryPolicy.
func (s *Settings) ToRetryPolicy() http.RetryPolicy {
	return http.RetryPolicy{
		MaxAttempts: s.MaxRetries,
		Cooldown:    s.RetryCooldown,
		Exponent:    s.RetryExponent,
	}
}
