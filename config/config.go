package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/ygoas29/fieldway/core/metrics"
	"github.com/ygoas29/fieldway/core/schedule"
	"github.com/ygoas29/fieldway/infra/cache"
	"github.com/ygoas29/fieldway/infra/mqtt"
	"github.com/ygoas29/fieldway/infra/provider"
)

// EventsConfig controls outbound event publishing.
type EventsConfig struct {
	// Enabled switches MQTT forwarding of engine events on.
	Enabled bool        `json:"enabled"`
	MQTT    mqtt.Config `json:"mqtt"`
}

// CacheConfig selects the travel cache backend.
type CacheConfig struct {
	// Backend is "memory" or "redis".
	Backend string       `json:"backend"`
	Redis   cache.Config `json:"redis"`
}

// SetDefaults applies sane defaults.
func (c *CacheConfig) SetDefaults() {
	if c.Backend == "" {
		c.Backend = "memory"
	}
}

// Validate checks the backend selection.
func (c CacheConfig) Validate() error {
	if c.Backend != "memory" && c.Backend != "redis" {
		return fmt.Errorf("unknown cache backend %s", c.Backend)
	}
	return nil
}

// Config is the root application configuration.
type Config struct {
	// Fixture is the path of the YAML file with vendors, services and
	// calendar entries.
	Fixture  string          `json:"fixture"`
	Engine   schedule.Config `json:"engine"`
	Metrics  metrics.Config  `json:"metrics"`
	Provider provider.Config `json:"provider"`
	Cache    CacheConfig     `json:"cache"`
	Events   EventsConfig    `json:"events"`
}

// Load reads the configuration file, applies FW_ environment overrides and
// validates the result.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	// Optional environment overrides, e.g. FW_CACHE__BACKEND=redis.
	if err := k.Load(env.Provider("FW_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "fw_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.Engine.SetDefaults()
	cfg.Metrics.SetDefaults()
	cfg.Cache.SetDefaults()
	if err := cfg.Engine.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Cache.Validate(); err != nil {
		return nil, err
	}
	if cfg.Fixture == "" {
		return nil, fmt.Errorf("fixture path is required")
	}
	return &cfg, nil
}
