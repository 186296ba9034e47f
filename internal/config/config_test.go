package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"visaexpert/internal/config"
)

func TestLoadMissingPathReturnsDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.NoError(t, err)
	assert.Equal(t, config.Default().Dialogue, cfg.Dialogue)
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoadOverlaysFileOntoDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "visaexpert.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
dialogue:
  shared_goal_bonus: 99
server:
  listen_addr: ":9999"
`), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 99, cfg.Dialogue.SharedGoalBonus)
	assert.Equal(t, ":9999", cfg.Server.ListenAddr)
	assert.Equal(t, config.Default().Dialogue.DerivableBonus, cfg.Dialogue.DerivableBonus)
}

func TestDialogueConfigWeightsConversion(t *testing.T) {
	d := config.Default().Dialogue
	w := d.Weights()
	assert.Equal(t, d.SharedGoalBonus, w.SharedGoalBonus)
	assert.Equal(t, d.PriorityGroups, w.GoalPriority)
}
