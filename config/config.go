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

	"github.com/kochimetro/induction/core/metrics"
	"github.com/kochimetro/induction/core/planner"
	"github.com/kochimetro/induction/infra/mqtt"
)

// Config aggregates all service settings.
type Config struct {
	Planner planner.Config `json:"planner"`
	HTTP    HTTPConfig     `json:"http"`
	MQTT    mqtt.Config    `json:"mqtt"`
	Metrics metrics.Config `json:"metrics"`
}

// HTTPConfig defines the planner API listener.
type HTTPConfig struct {
	Addr string `json:"addr"`
}

// SetDefaults applies sane defaults.
func (c *HTTPConfig) SetDefaults() {
	if c.Addr == "" {
		c.Addr = ":8080"
	}
}

// Load reads the configuration file and applies environment overrides with
// the KMI_ prefix (KMI_PLANNER__SERVICE_TARGET=15 overrides
// planner.service_target).
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
	if err := k.Load(env.Provider("KMI_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "kmi_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.Planner.SetDefaults()
	cfg.HTTP.SetDefaults()
	cfg.MQTT.SetDefaults()
	cfg.Metrics.SetDefaults()
	if err := cfg.Planner.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.MQTT.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
