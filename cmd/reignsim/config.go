package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the sim runner's settings. All fields have usable defaults;
// a YAML file overrides them.
type Config struct {
	Seed      int64    `yaml:"seed"`
	MaxTurns  int      `yaml:"max_turns"`
	MapRadius int      `yaml:"map_radius"`
	Tribes    []string `yaml:"tribes"`
	DBPath    string   `yaml:"db"`
}

// DefaultConfig returns the built-in settings: a two-tribe game on a small map.
func DefaultConfig() Config {
	return Config{
		Seed:      42,
		MaxTurns:  60,
		MapRadius: 12,
		Tribes:    []string{"valdari", "korevash"},
		DBPath:    "data/hexreign.db",
	}
}

// LoadConfig reads settings from a YAML file over the defaults. A missing
// file is not an error; the defaults apply.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}
