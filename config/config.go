package config

import (
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration so YAML values like "15m" parse.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Config holds all configuration for marketbrief.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Market   MarketConfig   `yaml:"market"`
	News     NewsConfig     `yaml:"news"`
	Retrieve RetrieveConfig `yaml:"retrieve"`
	Brief    BriefConfig    `yaml:"brief"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// MarketConfig holds market-data configuration.
type MarketConfig struct {
	Range     string   `yaml:"range"`    // chart range, e.g. "1mo"
	Interval  string   `yaml:"interval"` // bar interval, e.g. "1d"
	Timeout   Duration `yaml:"timeout"`
	CachePath string   `yaml:"cache_path"`
	CacheTTL  Duration `yaml:"cache_ttl"`
	AUM       float64  `yaml:"aum"` // assets under management, for exposure values
}

// NewsConfig holds news-fetch configuration.
type NewsConfig struct {
	Timeout   Duration `yaml:"timeout"`
	UserAgent string   `yaml:"user_agent"`
	CacheSize int      `yaml:"cache_size"`
	CacheTTL  Duration `yaml:"cache_ttl"`
	Includes  []string `yaml:"includes"` // globs for the local article source
}

// RetrieveConfig holds retrieval configuration.
type RetrieveConfig struct {
	TopK int `yaml:"top_k"`
}

// BriefConfig holds brief-writer configuration.
type BriefConfig struct {
	Writer    string `yaml:"writer"` // "template" or "chat"
	Model     string `yaml:"model"`
	BaseURL   string `yaml:"base_url"`
	APIKeyEnv string `yaml:"api_key_env"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr: ":8080",
		},
		Market: MarketConfig{
			Range:     "1mo",
			Interval:  "1d",
			Timeout:   Duration(15 * time.Second),
			CachePath: "",
			CacheTTL:  Duration(15 * time.Minute),
			AUM:       1_000_000,
		},
		News: NewsConfig{
			Timeout:   Duration(20 * time.Second),
			UserAgent: "marketbrief/1.0",
			CacheSize: 100,
			CacheTTL:  Duration(5 * time.Minute),
			Includes:  []string{"**/*.json", "**/*.txt", "**/*.md"},
		},
		Retrieve: RetrieveConfig{
			TopK: 3,
		},
		Brief: BriefConfig{
			Writer:    "template",
			Model:     "gpt-4o-mini",
			APIKeyEnv: "OPENAI_API_KEY",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from a YAML file, falling back to defaults when
// the file does not exist.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromDir loads configuration from a directory, looking for
// marketbrief.yaml, then .marketbrief/config.yaml.
func LoadFromDir(dir string) (*Config, error) {
	path := filepath.Join(dir, "marketbrief.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	path = filepath.Join(dir, ".marketbrief", "config.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	return DefaultConfig(), nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// QuoteCachePath returns the quote-cache location, defaulting next to the config.
func (c *Config) QuoteCachePath(dir string) string {
	if c.Market.CachePath != "" {
		return c.Market.CachePath
	}
	return filepath.Join(dir, ".marketbrief", "quotes.db")
}

// EnsureStateDir ensures the .marketbrief directory exists.
func EnsureStateDir(dir string) error {
	return os.MkdirAll(filepath.Join(dir, ".marketbrief"), 0755)
}
