package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const appName = "top2000"

// EnvAPIURL overrides api.base_url when set (directly or through a .env file).
const EnvAPIURL = "TOP2000_API_URL"

// Search entity names accepted in search.entities.
const (
	EntitySongs   = "songs"
	EntityArtists = "artists"
)

// Debounce window accepted for search.debounce_ms.
const (
	MinDebounce = 250 * time.Millisecond
	MaxDebounce = 300 * time.Millisecond
)

type Config struct {
	API    APIConfig    `koanf:"api"`
	Search SearchConfig `koanf:"search"`
	Chart  ChartConfig  `koanf:"chart"`
	Log    LogConfig    `koanf:"log"`
	UI     UIConfig     `koanf:"ui"`
}

// UIConfig holds display settings.
type UIConfig struct {
	Icons string `koanf:"icons"` // "nerd", "unicode" or "none" (default: "unicode")
}

// APIConfig holds the REST API connection settings.
type APIConfig struct {
	BaseURL        string  `koanf:"base_url"`        // e.g., "https://top2000.example.com"
	TimeoutSeconds int     `koanf:"timeout_seconds"` // HTTP client timeout (default: 30)
	RateLimit      float64 `koanf:"rate_limit"`      // requests per second (default: 10)
	Retries        int     `koanf:"retries"`         // retries on 5xx / network errors (default: 2)
	UserAgent      string  `koanf:"user_agent"`
}

// SearchConfig holds the incremental search settings.
type SearchConfig struct {
	Entities          []string `koanf:"entities"`            // "songs", "artists" (default: both)
	MinQueryLength    *int     `koanf:"min_query_length"`    // default: 2
	DebounceMs        int      `koanf:"debounce_ms"`         // 250-300 (default: 300)
	Limit             int      `koanf:"limit"`               // suggestions shown (default: 5)
	ExpandArtistSongs *bool    `koanf:"expand_artist_songs"` // pull in songs of matched artists (default: true)
	MaxExpand         int      `koanf:"max_expand"`          // artists expanded per query (default: 2)
	RequestTimeoutMs  int      `koanf:"request_timeout_ms"`  // per resolution (default: 5000)
	CacheSize         int      `koanf:"cache_size"`          // cached responses (default: 128, negative disables)
	CacheTTLSeconds   int      `koanf:"cache_ttl_seconds"`   // default: 60
}

// ChartConfig holds chart browsing settings.
type ChartConfig struct {
	DefaultYear int `koanf:"default_year"` // default: 2024
	FirstYear   int `koanf:"first_year"`   // default: 2000
	LastYear    int `koanf:"last_year"`    // default: 2024
}

// LogConfig holds diagnostics settings.
type LogConfig struct {
	Level string `koanf:"level"` // "debug", "info", "warn", "error" (default: "info")
	File  string `koanf:"file"`  // default: $XDG_STATE_HOME/top2000/top2000.log
}

func Load() (*Config, error) {
	k := koanf.New(".")

	for _, path := range getConfigPaths() {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, fmt.Errorf("load %s: %w", path, err)
			}
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	// .env is optional; a missing file is not an error
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	if url := os.Getenv(EnvAPIURL); url != "" {
		cfg.API.BaseURL = url
	}

	cfg.API.BaseURL = strings.TrimSuffix(cfg.API.BaseURL, "/")

	if cfg.Log.File != "" {
		cfg.Log.File = expandPath(cfg.Log.File)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate rejects settings that cannot be corrected by defaults.
func (c *Config) Validate() error {
	for _, e := range c.Search.Entities {
		if e != EntitySongs && e != EntityArtists {
			return fmt.Errorf("search.entities: unknown entity %q", e)
		}
	}
	if c.Search.DebounceMs != 0 {
		d := time.Duration(c.Search.DebounceMs) * time.Millisecond
		if d < MinDebounce || d > MaxDebounce {
			return fmt.Errorf("search.debounce_ms: %d outside %d-%d",
				c.Search.DebounceMs, MinDebounce.Milliseconds(), MaxDebounce.Milliseconds())
		}
	}
	return nil
}

func getConfigPaths() []string {
	return []string{
		// 1. $XDG_CONFIG_HOME/top2000/config.toml
		filepath.Join(xdg.ConfigHome, appName, "config.toml"),
		// 2. ./config.toml (pwd, highest priority)
		"config.toml",
	}
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// HasAPIConfig returns true if an API base URL is configured.
func (c *Config) HasAPIConfig() bool {
	return c.API.BaseURL != ""
}

// GetAPIConfig returns the API configuration with defaults applied.
func (c *Config) GetAPIConfig() APIConfig {
	cfg := c.API
	if cfg.TimeoutSeconds <= 0 {
		cfg.TimeoutSeconds = 30
	}
	if cfg.RateLimit <= 0 {
		cfg.RateLimit = 10
	}
	if cfg.Retries < 0 || cfg.Retries > 5 {
		cfg.Retries = 2
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "top2000/0.1 (https://github.com/llehouerou/top2000)"
	}
	return cfg
}

// Timeout returns the HTTP client timeout.
func (a APIConfig) Timeout() time.Duration {
	return time.Duration(a.TimeoutSeconds) * time.Second
}

// GetSearchConfig returns the search configuration with defaults applied.
func (c *Config) GetSearchConfig() SearchConfig {
	cfg := c.Search
	if len(cfg.Entities) == 0 {
		cfg.Entities = []string{EntitySongs, EntityArtists}
	}
	if cfg.MinQueryLength == nil || *cfg.MinQueryLength < 0 {
		minLen := 2
		cfg.MinQueryLength = &minLen
	}
	if cfg.DebounceMs <= 0 {
		cfg.DebounceMs = int(MaxDebounce.Milliseconds())
	}
	if cfg.Limit <= 0 {
		cfg.Limit = 5
	}
	if cfg.ExpandArtistSongs == nil {
		expand := true
		cfg.ExpandArtistSongs = &expand
	}
	if cfg.MaxExpand <= 0 {
		cfg.MaxExpand = 2
	}
	if cfg.RequestTimeoutMs <= 0 {
		cfg.RequestTimeoutMs = 5000
	}
	if cfg.CacheSize == 0 {
		cfg.CacheSize = 128
	}
	if cfg.CacheTTLSeconds <= 0 {
		cfg.CacheTTLSeconds = 60
	}
	return cfg
}

// Debounce returns the quiet period before a query is resolved.
func (s SearchConfig) Debounce() time.Duration {
	return time.Duration(s.DebounceMs) * time.Millisecond
}

// RequestTimeout returns the deadline applied to one resolution.
func (s SearchConfig) RequestTimeout() time.Duration {
	return time.Duration(s.RequestTimeoutMs) * time.Millisecond
}

// CacheTTL returns how long a search response stays cached.
func (s SearchConfig) CacheTTL() time.Duration {
	return time.Duration(s.CacheTTLSeconds) * time.Second
}

// SearchesSongs reports whether the song axis is enabled.
func (s SearchConfig) SearchesSongs() bool {
	return slices.Contains(s.Entities, EntitySongs)
}

// SearchesArtists reports whether the artist axis is enabled.
func (s SearchConfig) SearchesArtists() bool {
	return slices.Contains(s.Entities, EntityArtists)
}

// GetChartConfig returns the chart configuration with defaults applied.
func (c *Config) GetChartConfig() ChartConfig {
	cfg := c.Chart
	if cfg.FirstYear <= 0 {
		cfg.FirstYear = 2000
	}
	if cfg.LastYear <= 0 || cfg.LastYear < cfg.FirstYear {
		cfg.LastYear = 2024
	}
	if cfg.DefaultYear < cfg.FirstYear || cfg.DefaultYear > cfg.LastYear {
		cfg.DefaultYear = cfg.LastYear
	}
	return cfg
}

// GetLogConfig returns the log configuration with defaults applied.
func (c *Config) GetLogConfig() LogConfig {
	cfg := c.Log
	switch strings.ToLower(cfg.Level) {
	case "debug", "info", "warn", "error":
		cfg.Level = strings.ToLower(cfg.Level)
	default:
		cfg.Level = "info"
	}
	return cfg
}
