// Package config loads the module's runtime configuration from YAML,
// following the nested-struct/yaml-tag convention SPEC_FULL.md §10.2
// grounds on the browser-automation example's MCP server config loader.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"visaexpert/internal/driver"
)

// DialogueConfig exposes the question-scoring weights spec.md §4.3.1
// calls out as implementer-configurable.
type DialogueConfig struct {
	PriorityGroups  map[string]int `yaml:"priority_groups"`
	SharedGoalBonus int            `yaml:"shared_goal_bonus"`
	DerivableBonus  int            `yaml:"derivable_bonus"`
	BasicBonus      int            `yaml:"basic_bonus"`
	ShortFactBonus  int            `yaml:"short_fact_bonus"`
	ShortFactMaxLen int            `yaml:"short_fact_max_len"`
}

// Weights converts the loaded config into the driver's ScoringWeights.
func (d DialogueConfig) Weights() driver.ScoringWeights {
	return driver.ScoringWeights{
		GoalPriority:    d.PriorityGroups,
		SharedGoalBonus: d.SharedGoalBonus,
		DerivableBonus:  d.DerivableBonus,
		BasicBonus:      d.BasicBonus,
		ShortFactBonus:  d.ShortFactBonus,
		ShortFactMaxLen: d.ShortFactMaxLen,
	}
}

// ServerConfig holds the listen address for a network transport (§11.3).
// The `serve` command speaks MCP over stdio and does not read ListenAddr.
type ServerConfig struct {
	ListenAddr string `yaml:"listen_addr"`
}

// PersistenceConfig configures the audit sink (§11.2). An empty DSN
// selects audit.NoopSink.
type PersistenceConfig struct {
	SQLiteDSN string `yaml:"sqlite_dsn"`
}

// Config is the top-level configuration document.
type Config struct {
	Dialogue    DialogueConfig    `yaml:"dialogue"`
	Server      ServerConfig      `yaml:"server"`
	Persistence PersistenceConfig `yaml:"persistence"`
}

// Default returns the configuration used when no file is supplied,
// matching spec.md §4.3.1's own defaults and the bundled rule base's
// E > L > B priority ordering.
func Default() Config {
	weights := driver.DefaultScoringWeights()
	return Config{
		Dialogue: DialogueConfig{
			PriorityGroups: map[string]int{
				"E-visa eligible": 50,
				"L-visa eligible": 30,
				"B-visa eligible": 10,
			},
			SharedGoalBonus: weights.SharedGoalBonus,
			DerivableBonus:  weights.DerivableBonus,
			BasicBonus:      weights.BasicBonus,
			ShortFactBonus:  weights.ShortFactBonus,
			ShortFactMaxLen: weights.ShortFactMaxLen,
		},
		Server: ServerConfig{ListenAddr: ":8090"},
	}
}

// Load reads path and overlays it onto Default(). A missing path is not
// an error: it simply returns the defaults, so `visaexpert serve` works
// with zero configuration.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}
