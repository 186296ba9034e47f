package rulebase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"visaexpert/internal/coreerr"
	"visaexpert/internal/rulebase"
)

func TestStoreCreateAssignsVersionOne(t *testing.T) {
	store := rulebase.NewStore(rulebase.NewModel(sampleRules()))
	created, err := store.Create(&rulebase.Rule{
		ID:         10,
		Name:       "new rule",
		Conditions: []rulebase.Condition{{Fact: "e"}},
		Actions:    []rulebase.Action{{Fact: "goal2", Value: true}},
		Enabled:    true,
		Version:    99, // caller-supplied version must be ignored
	})
	require.NoError(t, err)
	assert.Equal(t, 1, created.Version)
	assert.True(t, store.Current().IsDerivable("goal2"))
}

func TestStoreCreateRejectsDuplicateID(t *testing.T) {
	store := rulebase.NewStore(rulebase.NewModel(sampleRules()))
	_, err := store.Create(&rulebase.Rule{ID: 1, Conditions: []rulebase.Condition{{Fact: "x"}}, Actions: []rulebase.Action{{Fact: "y", Value: true}}})
	assert.True(t, coreerr.Of(err, coreerr.KindConflict))
}

func TestStorePutOptimisticConcurrency(t *testing.T) {
	store := rulebase.NewStore(rulebase.NewModel(sampleRules()))

	edit := &rulebase.Rule{
		ID:         2,
		Name:       "r2 edited",
		Conditions: []rulebase.Condition{{Fact: "c"}},
		Actions:    []rulebase.Action{{Fact: "b", Value: false}},
		Enabled:    true,
	}
	updated, err := store.Put(edit, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, updated.Version)

	// A stale expectedVersion now fails.
	_, err = store.Put(edit, 1)
	assert.True(t, coreerr.Of(err, coreerr.KindConflict))
}

func TestStorePutUnknownRule(t *testing.T) {
	store := rulebase.NewStore(rulebase.NewModel(sampleRules()))
	_, err := store.Put(&rulebase.Rule{ID: 999}, 1)
	assert.True(t, coreerr.Of(err, coreerr.KindNotFound))
}

func TestStoreDeleteRebuildsIndices(t *testing.T) {
	store := rulebase.NewStore(rulebase.NewModel(sampleRules()))
	require.NoError(t, store.Delete(3))

	_, ok := store.Current().Rule(3)
	assert.False(t, ok)
	// rule 3 was the disabled alt-branch for "b"; deleting it should leave
	// rule 2 as the only (now sole) deriving rule.
	assert.Equal(t, []int{2}, store.Current().DerivingRules("b"))
}

func TestStoreDeleteUnknownRule(t *testing.T) {
	store := rulebase.NewStore(rulebase.NewModel(sampleRules()))
	err := store.Delete(999)
	assert.True(t, coreerr.Of(err, coreerr.KindNotFound))
}

func TestStoreEditsDoNotAffectAlreadyHeldModelPointer(t *testing.T) {
	store := rulebase.NewStore(rulebase.NewModel(sampleRules()))
	held := store.Current() // simulates a session snapshot taken at Start()

	_, err := store.Create(&rulebase.Rule{
		ID:         11,
		Conditions: []rulebase.Condition{{Fact: "z"}},
		Actions:    []rulebase.Action{{Fact: "new-goal", Value: true}},
		Enabled:    true,
	})
	require.NoError(t, err)

	assert.False(t, held.IsDerivable("new-goal"), "a session's held Model must not see edits made after it started")
	assert.True(t, store.Current().IsDerivable("new-goal"))
}
