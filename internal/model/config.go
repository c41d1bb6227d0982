package model

import "time"

// Config is the complete runtime configuration, loadable from YAML via
// viper and overridable by flags and CHINTAISCAN_* environment
// variables.
type Config struct {
	Sources []SourceConfig `yaml:"sources" mapstructure:"sources"`
	HTTP    HTTPConfig     `yaml:"http" mapstructure:"http"`
	Geocode GeocodeConfig  `yaml:"geocode" mapstructure:"geocode"`
	Store   StoreConfig    `yaml:"store" mapstructure:"store"`
}

// SourceConfig describes one listing site to page through. Header
// policy is per source: a non-empty UserAgent is sent with every
// request, an empty one leaves the Go default in place.
type SourceConfig struct {
	Name      Source `yaml:"name" mapstructure:"name"`
	BaseURL   string `yaml:"base_url" mapstructure:"base_url"` // printf template with one %d page slot
	MaxPages  int    `yaml:"max_pages" mapstructure:"max_pages"`
	UserAgent string `yaml:"user_agent,omitempty" mapstructure:"user_agent"`
}

// HTTPConfig carries fetch settings shared by both sources.
type HTTPConfig struct {
	Timeout       time.Duration `yaml:"timeout" mapstructure:"timeout"`
	MaxBodyBytes  int64         `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
	RespectRobots bool          `yaml:"respect_robots" mapstructure:"respect_robots"`
}

// GeocodeConfig configures the Nominatim-compatible resolver and the
// retry/pacing policy around it.
type GeocodeConfig struct {
	BaseURL           string        `yaml:"base_url" mapstructure:"base_url"`
	UserAgent         string        `yaml:"user_agent" mapstructure:"user_agent"`
	Timeout           time.Duration `yaml:"timeout" mapstructure:"timeout"`
	Retries           int           `yaml:"retries" mapstructure:"retries"`
	RetryDelay        time.Duration `yaml:"retry_delay" mapstructure:"retry_delay"`
	RequestsPerSecond float64       `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	CacheTTL          time.Duration `yaml:"cache_ttl" mapstructure:"cache_ttl"`
}

// StoreConfig names the SQLite database and output table.
type StoreConfig struct {
	Path  string `yaml:"path" mapstructure:"path"`
	Table string `yaml:"table" mapstructure:"table"`
}

const spoofedUA = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// DefaultConfig returns the built-in configuration: five pages of
// Minato-ku listings from each site, Nominatim with its mandated one
// request per second, SQLite output in the working directory.
func DefaultConfig() *Config {
	return &Config{
		Sources: []SourceConfig{
			{
				Name:      SourceHomes,
				BaseURL:   "https://www.homes.co.jp/chintai/tokyo/minato-city/list/?page=%d",
				MaxPages:  5,
				UserAgent: spoofedUA,
			},
			{
				Name:     SourceSuumo,
				BaseURL:  "https://suumo.jp/chintai/tokyo/sc_minato/?page=%d",
				MaxPages: 5,
			},
		},
		HTTP: HTTPConfig{
			Timeout:       30 * time.Second,
			MaxBodyBytes:  4_000_000,
			RespectRobots: true,
		},
		Geocode: GeocodeConfig{
			BaseURL:           "https://nominatim.openstreetmap.org",
			UserAgent:         "chintaiscan/0.1 (+https://github.com/yokomichi/chintaiscan)",
			Timeout:           10 * time.Second,
			Retries:           3,
			RetryDelay:        time.Second,
			RequestsPerSecond: 1,
			CacheTTL:          time.Hour,
		},
		Store: StoreConfig{
			Path:  "chintai.db",
			Table: "properties",
		},
	}
}
