package rulebase_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"visaexpert/internal/rulebase"
)

func writeJSON(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "engine.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadTeacherJSONAdaptsWireFormat(t *testing.T) {
	path := writeJSON(t, `{
		"facts": [
			{"name": "treaty_country", "semantic_value": "is a treaty country"},
			{"name": "qualifying_enterprise", "semantic_value": "enterprise qualifies"},
			{"name": "E-visa eligible", "semantic_value": "eligible for E visa"}
		],
		"rules": [
			{"name": "e-rule", "conditionals": ["treaty_country", "qualifying_enterprise"], "derivation": "E-visa eligible"}
		]
	}`)

	m, err := rulebase.LoadTeacherJSON(path, []string{"E-visa eligible"})
	require.NoError(t, err)

	r, ok := m.Rule(1)
	require.True(t, ok)
	assert.Equal(t, "e-rule", r.Name)
	assert.Equal(t, rulebase.KindInitial, r.Kind, "derivation matching a goal becomes KindInitial")
	assert.Equal(t, []string{"treaty_country", "qualifying_enterprise"}, r.ConditionFacts())
	assert.Equal(t, []rulebase.Action{{Fact: "E-visa eligible", Value: true}}, r.Actions)
}

func TestLoadTeacherJSONIntermediateWhenDerivationIsNotGoal(t *testing.T) {
	path := writeJSON(t, `{
		"facts": [
			{"name": "a"}, {"name": "b"}
		],
		"rules": [
			{"name": "r1", "conditionals": ["a"], "derivation": "b"}
		]
	}`)
	m, err := rulebase.LoadTeacherJSON(path, []string{"some-other-goal"})
	require.NoError(t, err)
	r, _ := m.Rule(1)
	assert.Equal(t, rulebase.KindIntermediate, r.Kind)
}

func TestLoadTeacherJSONRejectsUnknownConditionFact(t *testing.T) {
	path := writeJSON(t, `{
		"facts": [{"name": "b"}],
		"rules": [{"name": "r1", "conditionals": ["a"], "derivation": "b"}]
	}`)
	_, err := rulebase.LoadTeacherJSON(path, nil)
	assert.ErrorContains(t, err, "unknown fact")
}

func TestLoadTeacherJSONRejectsDoubledFact(t *testing.T) {
	path := writeJSON(t, `{
		"facts": [{"name": "a"}, {"name": "a"}],
		"rules": []
	}`)
	_, err := rulebase.LoadTeacherJSON(path, nil)
	assert.ErrorContains(t, err, "doubled fact")
}

func TestLoadTeacherJSONRejectsDoubledRuleName(t *testing.T) {
	path := writeJSON(t, `{
		"facts": [{"name": "a"}, {"name": "b"}],
		"rules": [
			{"name": "dup", "conditionals": ["a"], "derivation": "b"},
			{"name": "dup", "conditionals": ["a"], "derivation": "b"}
		]
	}`)
	_, err := rulebase.LoadTeacherJSON(path, nil)
	assert.ErrorContains(t, err, "doubled rule")
}
