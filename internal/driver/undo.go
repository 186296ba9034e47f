package driver

import (
	"visaexpert/internal/history"
	"visaexpert/internal/memory"
	"visaexpert/internal/rulebase"
)

// UndoResult is what Undo returns to the session layer (spec.md §6's
// undo() output): the next question (if any) after restoring, and
// whether the stack had anything to undo at all.
type UndoResult struct {
	NextQuestion    string
	HasNextQuestion bool
	Undone          bool
}

// Undo pops the most recent history entry and restores working memory
// element-wise (I5). An empty stack is a no-op, not an error (spec.md
// §4.5): callers see Undone == false and should report "nothing to undo".
func Undo(model *rulebase.Model, goals []string, wm *memory.WorkingMemory, hist *history.Stack, weights ScoringWeights) UndoResult {
	entry, ok := hist.Pop()
	if !ok {
		return UndoResult{}
	}
	wm.Restore(entry.Snapshot)
	nextFact, hasNext := NextQuestion(model, goals, wm, weights)
	return UndoResult{NextQuestion: nextFact, HasNextQuestion: hasNext, Undone: true}
}
