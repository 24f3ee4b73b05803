package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/creasty/defaults"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/psm5556/Crisis-Alert/internal/services/signals"
	"github.com/psm5556/Crisis-Alert/pkg/logger"
	"github.com/psm5556/Crisis-Alert/pkg/util"
)

type Config struct {
	Environment string        `yaml:"environment" default:"development"`
	Log         logger.Config `yaml:"log"`
	Server      struct {
		Port            int           `yaml:"port" default:"8080"`
		ReadTimeout     time.Duration `yaml:"read_timeout" default:"10s"`
		WriteTimeout    time.Duration `yaml:"write_timeout" default:"30s"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout" default:"10s"`
		SlowRequest     time.Duration `yaml:"slow_request" default:"2s"`
	} `yaml:"server"`
	Metrics struct {
		Enabled bool   `yaml:"enabled" default:"true"`
		Path    string `yaml:"path" default:"/metrics"`
	} `yaml:"metrics"`
	FRED struct {
		APIKey    string        `yaml:"api_key"`
		BaseURL   string        `yaml:"base_url" default:"https://api.stlouisfed.org"`
		Timeout   time.Duration `yaml:"timeout" default:"15s"`
		RateLimit int           `yaml:"rate_limit" default:"2"` // requests per second
	} `yaml:"fred"`
	Series struct {
		Start       string `yaml:"start" default:"2020-01-01"`
		Rate        string `yaml:"rate" default:"SOFR"`
		SpreadLong  string `yaml:"spread_long" default:"GS10"`
		SpreadShort string `yaml:"spread_short" default:"GS2"`
	} `yaml:"series"`
	Activity struct {
		PrimarySeries string    `yaml:"primary_series" default:"NAPM"`
		ScrapeURL     string    `yaml:"scrape_url" default:"https://www.ismworld.org/supply-management-news-and-reports/reports/ism-report-on-business/"`
		UserAgent     string    `yaml:"user_agent" default:"Mozilla/5.0 (compatible; crisis-alert/1.0)"`
		MaxPageBytes  int64     `yaml:"max_page_bytes" default:"4194304"`
		Selectors     []string  `yaml:"selectors"`
		TrendTemplate []float64 `yaml:"trend_template"`
		BackupSeries  []float64 `yaml:"backup_series"`
	} `yaml:"activity"`
	Thresholds signals.Thresholds `yaml:"thresholds"`
	Cache      struct {
		Backend string `yaml:"backend" default:"memory"` // memory, redis, layered
		Redis   struct {
			Host     string `yaml:"host" default:"localhost"`
			Port     int    `yaml:"port" default:"6379"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
			Prefix   string `yaml:"prefix" default:"crisis"`
		} `yaml:"redis"`
		MemoryMaxSize int `yaml:"memory_max_size" default:"256"`
		TTL           struct {
			Rate     time.Duration `yaml:"rate" default:"1h"`
			Activity time.Duration `yaml:"activity" default:"15m"`
			Spread   time.Duration `yaml:"spread" default:"1h"`
		} `yaml:"ttl"`
	} `yaml:"cache"`
	Scheduler struct {
		Enabled  bool   `yaml:"enabled"`
		Schedule string `yaml:"schedule" default:"@every 15m"`
	} `yaml:"scheduler"`
	Refresh struct {
		Burst     int     `yaml:"burst" default:"2"`
		PerMinute float64 `yaml:"per_minute" default:"6"`
	} `yaml:"refresh"`
}

// Default returns a configuration with every default applied.
func Default() *Config {
	var c Config
	if err := defaults.Set(&c); err != nil {
		// only reachable with a malformed default tag
		panic(fmt.Sprintf("config defaults: %v", err))
	}
	return &c
}

// Load reads and parses a YAML configuration file on top of the defaults.
func Load(path string) (*Config, error) {
	c := Default()

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	// decoding over the defaults keeps every key the file leaves out
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

// LoadWithEnv loads an optional .env file, the YAML config, and then applies
// environment overrides. A missing YAML file falls back to defaults.
func LoadWithEnv(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	c, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		c = Default()
	} else if err != nil {
		return nil, err
	}

	if v := os.Getenv("FRED_API_KEY"); v != "" {
		c.FRED.APIKey = v
	}
	if v := os.Getenv("CACHE_BACKEND"); v != "" {
		c.Cache.Backend = v
	}
	if v := os.Getenv("REDIS_HOST"); v != "" {
		c.Cache.Redis.Host = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		c.Cache.Redis.Password = v
	}
	if v := os.Getenv("SERVER_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("SERVER_PORT: %w", err)
		}
		c.Server.Port = port
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

// StartDate parses Series.Start as a calendar date or an RFC3339 timestamp.
func (c *Config) StartDate() (time.Time, error) {
	t, ok := util.ParseTime(c.Series.Start)
	if !ok {
		return time.Time{}, fmt.Errorf("series.start: cannot parse %q, want %s", c.Series.Start, util.DateLayout)
	}
	return t.UTC(), nil
}

// Validate checks if the configuration is valid. The FRED key is not
// required here: without it every fetch reports an auth failure and the
// activity index still resolves from its fallbacks.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	switch c.Cache.Backend {
	case "memory", "redis", "layered":
	default:
		return fmt.Errorf("cache.backend must be 'memory', 'redis' or 'layered', got '%s'", c.Cache.Backend)
	}
	if c.Series.Rate == "" || c.Series.SpreadLong == "" || c.Series.SpreadShort == "" {
		return fmt.Errorf("series identifiers cannot be empty")
	}
	if _, err := c.StartDate(); err != nil {
		return err
	}
	if c.FRED.RateLimit <= 0 {
		return fmt.Errorf("fred.rate_limit must be positive")
	}
	if err := c.Thresholds.Validate(); err != nil {
		return fmt.Errorf("thresholds: %w", err)
	}
	return nil
}
