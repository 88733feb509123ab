package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`

	Exchange struct {
		RESTEndpoint string `yaml:"rest_endpoint"`
		TimeoutSec   int    `yaml:"timeout_sec"`
	} `yaml:"exchange"`

	Cache struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		TTLSec   int    `yaml:"ttl_sec"`
	} `yaml:"cache"`

	Indicators struct {
		TopCount  int      `yaml:"top_count"`
		SMAPeriod int      `yaml:"sma_period"`
		RSIPeriod int      `yaml:"rsi_period"`
		Exclude   []string `yaml:"exclude"`
	} `yaml:"indicators"`

	Auth struct {
		Secret      string `yaml:"secret"`
		TokenTTLMin int    `yaml:"token_ttl_min"`
		DBPath      string `yaml:"db_path"`
	} `yaml:"auth"`

	Logging struct {
		Level string `yaml:"level"`
	} `yaml:"logging"`
}

func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyDefaults()

	// Secrets may come from the environment instead of the file.
	if v := os.Getenv("SECRET_KEY"); v != "" {
		cfg.Auth.Secret = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Cache.Addr = v
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8000
	}
	if c.Exchange.RESTEndpoint == "" {
		c.Exchange.RESTEndpoint = "https://api.binance.com"
	}
	if c.Exchange.TimeoutSec == 0 {
		c.Exchange.TimeoutSec = 10
	}
	if c.Cache.Addr == "" {
		c.Cache.Addr = "localhost:6379"
	}
	if c.Cache.TTLSec == 0 {
		c.Cache.TTLSec = 1800
	}
	if c.Indicators.TopCount == 0 {
		c.Indicators.TopCount = 20
	}
	if c.Indicators.SMAPeriod == 0 {
		c.Indicators.SMAPeriod = 20
	}
	if c.Indicators.RSIPeriod == 0 {
		c.Indicators.RSIPeriod = 14
	}
	if c.Auth.TokenTTLMin == 0 {
		c.Auth.TokenTTLMin = 30
	}
	if c.Auth.DBPath == "" {
		c.Auth.DBPath = "users.db"
	}
	if c.Auth.Secret == "" {
		c.Auth.Secret = "your_secret_key"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
}

func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Cache.TTLSec) * time.Second
}

func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.Auth.TokenTTLMin) * time.Minute
}

func (c *Config) ExchangeTimeout() time.Duration {
	return time.Duration(c.Exchange.TimeoutSec) * time.Second
}
