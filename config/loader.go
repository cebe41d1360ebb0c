package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// DefaultPaths are tried in order by LoadAppConfig when no path is given.
var DefaultPaths = []string{"config.yml", "config.yaml", "config.toml"}

// Default returns the St Catharines Transit settings.
func Default() AppConfig {
	return AppConfig{
		GTFS: GTFSConfig{
			Path:      "input/gtfs.zip",
			TimeoutMS: 30000,
		},
		Agency: AgencyConfig{
			AgencySubstring:      "St. Catharines Transit Commission",
			ForeignRoutePrefixes: []string{"Niagara Region Transit", "NRT "},
			IgnoreStopPattern:    `(?i)^(S_FE|NF|PC|WE)`,
		},
		Services: ServicesConfig{
			LookaheadDays: 60,
		},
		Output: OutputConfig{
			Dir:    "output",
			Format: "json",
		},
	}
}

// LoadAppConfig reads the first existing file among paths (DefaultPaths when
// empty), applies STC_* environment overrides and validates the result.
// Files ending in .toml are decoded as TOML, everything else as YAML.
func LoadAppConfig(paths ...string) (*AppConfig, error) {
	if len(paths) == 0 {
		paths = DefaultPaths
	}
	var (
		data []byte
		path string
		err  error
	)
	for _, p := range paths {
		data, err = os.ReadFile(p)
		if err == nil {
			path = p
			break
		}
	}
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&cfg); err != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
	} else if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate %s: %w", path, err)
	}
	return &cfg, nil
}

// ApplyEnv loads .env when present and overrides fields from STC_* variables.
func (c *AppConfig) ApplyEnv() {
	_ = godotenv.Load()

	if v := os.Getenv("STC_GTFS_PATH"); v != "" {
		c.GTFS.Path = v
	}
	if v := os.Getenv("STC_GTFS_URL"); v != "" {
		c.GTFS.StaticURL = v
	}
	if v := os.Getenv("STC_OUTPUT_DIR"); v != "" {
		c.Output.Dir = v
	}
	if v := os.Getenv("STC_OUTPUT_PREFIX"); v != "" {
		c.Output.Prefix = v
	}
	if v := os.Getenv("STC_OUTPUT_FORMAT"); v != "" {
		c.Output.Format = v
	}
	if v := os.Getenv("STC_SERVICES_TODAY"); v != "" {
		c.Services.Today = v
	}
}

// Validate checks the struct tags of every section.
func (c *AppConfig) Validate() error {
	v := validator.New()
	for _, section := range []any{c.Agency, c.Services, c.Output, c.Normalizer} {
		if err := v.Struct(section); err != nil {
			return err
		}
	}
	// feeds are optional; if present validate each, otherwise the top-level gtfs block
	if len(c.Feeds) == 0 {
		return v.Struct(c.GTFS)
	}
	for _, f := range c.Feeds {
		if err := v.Struct(f); err != nil {
			return err
		}
	}
	return nil
}

// SelectFeed chooses a feed by name; fallback to first; if none, use top-level GTFS.
func (c *AppConfig) SelectFeed(name string) GTFSConfig {
	if name != "" {
		for _, f := range c.Feeds {
			if f.Name == name {
				return f.GTFS
			}
		}
	}
	if len(c.Feeds) > 0 {
		return c.Feeds[0].GTFS
	}
	return c.GTFS
}
