// Package config loads the storefront settings. Values are resolved in order:
// built-in defaults, the yaml file, a .env file, then environment variables.
// Command line flags are applied on top by the caller.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/matst80/slask-catalog/pkg/marketplace"
)

type ExportConfig struct {
	OutDir     string `yaml:"outDir"`
	ImageDir   string `yaml:"imageDir"`
	Thumbnails bool   `yaml:"thumbnails"`
	ThumbSize  int    `yaml:"thumbSize"`
	Workers    int    `yaml:"workers"`
}

type Config struct {
	CatalogFile   string `yaml:"catalogFile"`
	ListenAddress string `yaml:"listenAddress"`
	DebugAddress  string `yaml:"debugAddress"`
	BasePath      string `yaml:"basePath"`
	PageStep      int    `yaml:"pageStep"`
	LogLevel      string `yaml:"logLevel"`

	RedisUrl      string `yaml:"redisUrl"`
	RedisPassword string `yaml:"redisPassword"`
	RabbitUrl     string `yaml:"rabbitUrl"`

	ContactEmail string                 `yaml:"contactEmail"`
	Marketplaces []marketplace.Template `yaml:"marketplaces"`
	// Sections overrides the initial open state of sidebar sections by
	// facet name.
	Sections map[string]bool `yaml:"sections"`
	Export   ExportConfig    `yaml:"export"`
}

func Default() *Config {
	return &Config{
		CatalogFile:   "data/catalog.json",
		ListenAddress: ":8080",
		DebugAddress:  ":8081",
		BasePath:      "",
		PageStep:      24,
		LogLevel:      "info",
		ContactEmail:  "hello@example.com",
		Marketplaces:  []marketplace.Template{},
		Sections:      map[string]bool{},
		Export: ExportConfig{
			OutDir:    "out",
			ImageDir:  "public/catalog",
			ThumbSize: 480,
			Workers:   8,
		},
	}
}

// Load reads configFile when it exists (a missing file is not an error),
// then envFile and the environment.
func Load(configFile, envFile string) (*Config, error) {
	cfg := Default()
	if configFile != "" {
		data, err := os.ReadFile(configFile)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse %s: %w", configFile, err)
			}
		case errors.Is(err, fs.ErrNotExist):
		default:
			return nil, err
		}
	}
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", envFile, err)
		}
	}
	cfg.applyEnv(os.LookupEnv)
	return cfg, cfg.Validate()
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) {
	str := func(target *string, key string) {
		if v, ok := lookup(key); ok && v != "" {
			*target = v
		}
	}
	str(&c.CatalogFile, "CATALOG_FILE")
	str(&c.ListenAddress, "LISTEN_ADDRESS")
	str(&c.DebugAddress, "DEBUG_ADDRESS")
	str(&c.BasePath, "BASE_PATH")
	str(&c.LogLevel, "LOG_LEVEL")
	str(&c.RedisUrl, "REDIS_URL")
	str(&c.RedisPassword, "REDIS_PASSWORD")
	str(&c.RabbitUrl, "RABBIT_URL")
	str(&c.ContactEmail, "CONTACT_EMAIL")
	str(&c.Export.OutDir, "EXPORT_DIR")
	if v, ok := lookup("PAGE_STEP"); ok {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.PageStep = n
		}
	}
}

func (c *Config) Validate() error {
	if c.CatalogFile == "" {
		return errors.New("no catalog file configured")
	}
	if c.PageStep <= 0 {
		return fmt.Errorf("page step must be positive, got %d", c.PageStep)
	}
	for _, m := range c.Marketplaces {
		known := false
		for _, k := range marketplace.Markets {
			if m.Market == k {
				known = true
			}
		}
		if !known {
			return fmt.Errorf("unknown marketplace %q", m.Market)
		}
	}
	return nil
}
