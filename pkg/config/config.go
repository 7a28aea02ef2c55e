package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"ecogrid/pkg/util"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment"`
	Server      struct {
		Port            int           `yaml:"port"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`
	Metrics struct {
		Enabled bool   `yaml:"enabled"`
		Path    string `yaml:"path"`
	} `yaml:"metrics"`
	Grid struct {
		Region          string        `yaml:"region"`
		BaseURL         string        `yaml:"base_url"`
		ProxyURL        string        `yaml:"proxy_url"`
		FetchTimeout    time.Duration `yaml:"fetch_timeout"`
		CacheKey        string        `yaml:"cache_key"`
		LiveTTL         time.Duration `yaml:"live_ttl"`
		SyntheticTTL    time.Duration `yaml:"synthetic_ttl"`
		PollingInterval time.Duration `yaml:"polling_interval"`
	} `yaml:"grid"`
	Cache struct {
		Redis struct {
			Enabled  bool   `yaml:"enabled"`
			Host     string `yaml:"host"`
			Port     int    `yaml:"port"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
			Prefix   string `yaml:"prefix"`
		} `yaml:"redis"`
		MemoryMaxSize int `yaml:"memory_max_size"`
	} `yaml:"cache"`
	Events struct {
		Backend string `yaml:"backend"` // clickhouse or memory
		Kafka   struct {
			Enabled      bool          `yaml:"enabled"`
			Brokers      []string      `yaml:"brokers"`
			Topic        string        `yaml:"topic"`
			RequiredAcks int           `yaml:"required_acks"`
			Compression  string        `yaml:"compression"`
			MaxAttempts  int           `yaml:"max_attempts"`
			Linger       time.Duration `yaml:"linger"`
			WriteTimeout time.Duration `yaml:"write_timeout"`
			ReadTimeout  time.Duration `yaml:"read_timeout"`
		} `yaml:"kafka"`
		ClickHouse struct {
			Host         string        `yaml:"host"`
			Port         int           `yaml:"port"`
			Database     string        `yaml:"database"`
			User         string        `yaml:"user"`
			Password     string        `yaml:"password"`
			UseHTTP      bool          `yaml:"use_http"`
			DialTimeout  time.Duration `yaml:"dial_timeout"`
			ReadTimeout  time.Duration `yaml:"read_timeout"`
			WriteTimeout time.Duration `yaml:"write_timeout"`
		} `yaml:"clickhouse"`
	} `yaml:"events"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
		Output string `yaml:"output"`
	} `yaml:"log"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	c.applyDefaults()

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("GRID_BASE_URL"); v != "" {
		c.Grid.BaseURL = v
	}
	if v := os.Getenv("GRID_PROXY_URL"); v != "" {
		c.Grid.ProxyURL = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		host, port := splitHostPort(v, c.Cache.Redis.Port)
		c.Cache.Redis.Host = host
		c.Cache.Redis.Port = port
		c.Cache.Redis.Enabled = true
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Events.Kafka.Brokers = strings.Split(v, ",")
		c.Events.Kafka.Enabled = true
	}
	if v := os.Getenv("EVENTS_BACKEND"); v != "" {
		c.Events.Backend = v
	}

	return c, nil
}

func (c *Config) applyDefaults() {
	if c.Grid.Region == "" {
		c.Grid.Region = "Portugal (Mainland)"
	}
	if c.Grid.FetchTimeout == 0 {
		c.Grid.FetchTimeout = 8 * time.Second
	}
	if c.Grid.CacheKey == "" {
		c.Grid.CacheKey = "grid_daily"
	}
	if c.Grid.LiveTTL == 0 {
		c.Grid.LiveTTL = 30 * time.Minute
	}
	if c.Grid.SyntheticTTL == 0 {
		c.Grid.SyntheticTTL = 5 * time.Minute
	}
	if c.Grid.PollingInterval == 0 {
		c.Grid.PollingInterval = 15 * time.Minute
	}
	if c.Events.Backend == "" {
		c.Events.Backend = "memory"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "console"
	}
	if c.Log.Output == "" {
		c.Log.Output = "stdout"
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.Grid.BaseURL == "" {
		return fmt.Errorf("grid.base_url is required")
	}
	if c.Events.Backend != "memory" && c.Events.Backend != "clickhouse" {
		return fmt.Errorf("events.backend must be 'memory' or 'clickhouse', got '%s'", c.Events.Backend)
	}
	if c.Events.Backend == "clickhouse" && c.Events.ClickHouse.Host == "" {
		return fmt.Errorf("events.clickhouse.host is required for clickhouse backend")
	}
	if c.Events.Kafka.Enabled && len(c.Events.Kafka.Brokers) == 0 {
		return fmt.Errorf("events.kafka.brokers cannot be empty when kafka is enabled")
	}
	return nil
}

func splitHostPort(addr string, defPort int) (string, int) {
	host := addr
	port := defPort
	if i := strings.LastIndex(addr, ":"); i > 0 {
		host = addr[:i]
		port = util.ParseIntDefault(addr[i+1:], defPort)
	}
	return host, port
}
