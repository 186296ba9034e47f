package session_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"visaexpert/internal/coreerr"
	"visaexpert/internal/driver"
	"visaexpert/internal/history"
	"visaexpert/internal/rulebase"
	"visaexpert/internal/session"
)

// TestMain ensures no goroutines leak across session store construction
// and discard.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func testModel() *rulebase.Model {
	return rulebase.NewModel([]*rulebase.Rule{
		{ID: 1, Conditions: []rulebase.Condition{{Fact: "a"}}, Actions: []rulebase.Action{{Fact: "goal", Value: true}}, Enabled: true},
	})
}

func TestStartReturnsIDAndFirstQuestion(t *testing.T) {
	store := session.NewStore(nil, nil)
	id, question, has := store.Start([]string{"goal"}, testModel(), driver.DefaultScoringWeights())

	require.NotEmpty(t, id)
	assert.True(t, has)
	assert.Equal(t, "a", question)
}

func TestAnswerUnknownSessionIsNotFound(t *testing.T) {
	store := session.NewStore(nil, nil)
	_, err := store.Answer("does-not-exist", "a", history.AnswerYes)
	require.Error(t, err)
	assert.True(t, coreerr.Of(err, coreerr.KindNotFound))
}

func TestAnswerThenUndoRoundTrips(t *testing.T) {
	store := session.NewStore(nil, nil)
	id, _, _ := store.Start([]string{"goal"}, testModel(), driver.DefaultScoringWeights())

	result, err := store.Answer(id, "a", history.AnswerYes)
	require.NoError(t, err)
	assert.Contains(t, result.FiredRules, 1)

	view, err := store.WorkingMemoryView(id)
	require.NoError(t, err)
	assert.True(t, view.Hypotheses["goal"])

	undone, err := store.Undo(id)
	require.NoError(t, err)
	assert.True(t, undone.Undone)

	view, err = store.WorkingMemoryView(id)
	require.NoError(t, err)
	assert.Empty(t, view.Hypotheses)
}

func TestRulesViewReportsEveryRuleStatus(t *testing.T) {
	store := session.NewStore(nil, nil)
	id, _, _ := store.Start([]string{"goal"}, testModel(), driver.DefaultScoringWeights())

	statuses, err := store.RulesView(id)
	require.NoError(t, err)
	require.Contains(t, statuses, 1)
}

func TestDiscardRemovesSession(t *testing.T) {
	store := session.NewStore(nil, nil)
	id, _, _ := store.Start([]string{"goal"}, testModel(), driver.DefaultScoringWeights())

	store.Discard(id)
	_, err := store.Answer(id, "a", history.AnswerYes)
	assert.Error(t, err)
}

// Concurrent requests against distinct sessions must not corrupt each
// other's working memory (spec.md §5: different sessions are independent
// and may be processed in parallel).
func TestConcurrentSessionsAreIndependent(t *testing.T) {
	store := session.NewStore(nil, nil)

	var wg sync.WaitGroup
	ids := make([]string, 8)
	for i := range ids {
		id, _, _ := store.Start([]string{"goal"}, testModel(), driver.DefaultScoringWeights())
		ids[i] = id
	}

	for _, id := range ids {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			_, err := store.Answer(id, "a", history.AnswerYes)
			assert.NoError(t, err)
		}(id)
	}
	wg.Wait()

	for _, id := range ids {
		view, err := store.WorkingMemoryView(id)
		require.NoError(t, err)
		assert.True(t, view.Hypotheses["goal"])
	}
}
