package memory_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"visaexpert/internal/memory"
)

func TestSetFindingAndSetHypothesisAreMutuallyExclusive(t *testing.T) {
	wm := memory.New()

	wm.SetHypothesis("f", true)
	wm.SetFinding("f", false)
	_, inHyp := wm.Hypotheses["f"]
	assert.False(t, inHyp, "SetFinding must evict any stale Hypotheses entry for the same fact (I1)")
	v, known := wm.Value("f")
	assert.True(t, known)
	assert.False(t, v)

	wm.SetHypothesis("f", true)
	_, inFindings := wm.Findings["f"]
	assert.False(t, inFindings, "SetHypothesis must evict any stale Findings entry for the same fact (I1)")
}

func TestValueChecksFindingsBeforeHypotheses(t *testing.T) {
	wm := memory.New()
	wm.SetFinding("f", true)
	v, known := wm.Value("f")
	require.True(t, known)
	assert.True(t, v)

	// A raw write bypassing SetHypothesis puts "f" in both maps; Value
	// must still report the Findings entry.
	wm.Hypotheses["f"] = false
	v, known = wm.Value("f")
	require.True(t, known)
	assert.True(t, v)

	_, known = wm.Value("unasked")
	assert.False(t, known)
}

func TestSkipAndIsSkipped(t *testing.T) {
	wm := memory.New()
	assert.False(t, wm.IsSkipped("f"))
	wm.Skip("f")
	assert.True(t, wm.IsSkipped("f"))
}

func TestStatusDefaultsToNotEvaluated(t *testing.T) {
	wm := memory.New()
	assert.Equal(t, memory.StatusNotEvaluated, wm.Status(1))
	wm.SetStatus(1, memory.StatusSkipped)
	assert.Equal(t, memory.StatusSkipped, wm.Status(1))
}

func TestFireSetsStatusAndJoinsConflictSet(t *testing.T) {
	wm := memory.New()
	wm.Fire(5)
	assert.Equal(t, memory.StatusFired, wm.Status(5))
	_, inSet := wm.ConflictSet[5]
	assert.True(t, inSet)
}

func TestCloneIsDeepAndIndependent(t *testing.T) {
	wm := memory.New()
	wm.SetFinding("f", true)
	wm.SetHypothesis("g", false)
	wm.Fire(1)
	wm.Skip("h")
	wm.AskedDerivableFacts["g"] = struct{}{}

	clone := wm.Clone()
	if diff := cmp.Diff(wm.Findings, clone.Findings); diff != "" {
		t.Errorf("clone findings mismatch (-orig +clone):\n%s", diff)
	}

	clone.SetFinding("f", false)
	clone.Skip("new-skip")
	v, _ := wm.Value("f")
	assert.True(t, v, "mutating a clone must not affect the original")
	assert.False(t, wm.IsSkipped("new-skip"))
}

func TestRestoreReplacesContentsButKeepsIdentity(t *testing.T) {
	wm := memory.New()
	wm.SetFinding("f", true)
	snapshot := wm.Clone()

	wm.SetFinding("f", false)
	wm.SetFinding("g", true)

	wmPtrBefore := wm
	wm.Restore(snapshot)
	assert.Same(t, wmPtrBefore, wm, "Restore must not change the WorkingMemory's identity")

	v, _ := wm.Value("f")
	assert.True(t, v)
	_, hasG := wm.Value("g")
	assert.False(t, hasG, "g was never in the snapshot taken before it was set")
}
