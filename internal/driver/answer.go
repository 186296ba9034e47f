// Package driver implements the Inference Driver (component D): question
// selection, answer processing (including the "unknown" branch's detail
// questions), cascade invalidation, and undo.
package driver

import (
	"sort"

	"visaexpert/internal/coreerr"
	"visaexpert/internal/evaluator"
	"visaexpert/internal/history"
	"visaexpert/internal/memory"
	"visaexpert/internal/rulebase"
)

// AnswerResult is what Answer returns to the session layer (spec.md §6's
// answer() output).
type AnswerResult struct {
	FiredRules            []int
	DerivedFacts          []string
	DetailQuestionsNeeded bool
	DetailQuestions       []string
	NextQuestion          string
	HasNextQuestion       bool
	// GoalMap is populated only when HasNextQuestion is false — the
	// dialogue has reached its terminal state (spec.md §6's terminal
	// result).
	GoalMap map[string]bool
}

// Answer processes one (fact, answer) pair against wm per spec.md §4.3.2,
// pushing a pre-answer snapshot onto hist for every branch that actually
// stores a value (yes, no, and unknown-on-basic, which coerces to false).
// The unknown-on-derivable branch stores nothing and pushes nothing: there
// is nothing for undo to reverse.
func Answer(model *rulebase.Model, goals []string, wm *memory.WorkingMemory, hist *history.Stack, weights ScoringWeights, fact string, answer history.Answer) (*AnswerResult, error) {
	switch answer {
	case history.AnswerYes, history.AnswerNo, history.AnswerUnknown:
	default:
		return nil, coreerr.BadInput("unrecognized answer %q (want yes, no, or unknown)", answer)
	}

	derivable := model.IsDerivable(fact)

	if answer == history.AnswerUnknown && derivable {
		return &AnswerResult{
			DetailQuestionsNeeded: true,
			DetailQuestions:       detailQuestions(model, wm, fact),
		}, nil
	}

	hist.Push(fact, answer, wm.Clone())

	switch answer {
	case history.AnswerYes:
		if derivable {
			wm.SetHypothesis(fact, true)
			wm.AskedDerivableFacts[fact] = struct{}{}
			skipDetailQuestions(model, wm, fact)
		} else {
			wm.SetFinding(fact, true)
		}
	case history.AnswerNo:
		if derivable {
			wm.SetHypothesis(fact, false)
			wm.AskedDerivableFacts[fact] = struct{}{}
		} else {
			wm.SetFinding(fact, false)
		}
		CascadeInvalidate(model, wm, fact)
	case history.AnswerUnknown:
		// Basic fact: "unknown" collapses to false, then cascades exactly
		// like an explicit "no" (spec.md §4.3.2, §9 design notes).
		wm.SetFinding(fact, false)
		CascadeInvalidate(model, wm, fact)
	}

	fired := evaluator.EvaluateToFixpoint(model, wm)

	nextFact, hasNext := NextQuestion(model, goals, wm, weights)
	result := &AnswerResult{
		FiredRules:      fired,
		DerivedFacts:    sortedKeys(wm.Hypotheses),
		NextQuestion:    nextFact,
		HasNextQuestion: hasNext,
	}
	if !hasNext {
		result.GoalMap = GoalMap(goals, wm)
	}
	return result, nil
}

// detailQuestions returns the basic condition facts across every rule that
// derives fact, minus facts already known or skipped (spec.md §4.3.2,
// unknown-on-derivable branch).
func detailQuestions(model *rulebase.Model, wm *memory.WorkingMemory, fact string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, id := range model.DerivingRulesEnabled(fact) {
		r, _ := model.Rule(id)
		for _, c := range r.Conditions {
			if !model.IsBasic(c.Fact) {
				continue
			}
			if _, known := wm.Value(c.Fact); known {
				continue
			}
			if wm.IsSkipped(c.Fact) {
				continue
			}
			if _, dup := seen[c.Fact]; dup {
				continue
			}
			seen[c.Fact] = struct{}{}
			out = append(out, c.Fact)
		}
	}
	sort.Strings(out)
	return out
}

// skipDetailQuestions adds every basic condition fact of fact's deriving
// rules to skipped_facts: the user has asserted the conclusion directly,
// so the details behind it are unnecessary (spec.md §4.3.2, yes branch).
func skipDetailQuestions(model *rulebase.Model, wm *memory.WorkingMemory, fact string) {
	for _, id := range model.DerivingRulesEnabled(fact) {
		r, _ := model.Rule(id)
		for _, c := range r.Conditions {
			if model.IsBasic(c.Fact) {
				wm.Skip(c.Fact)
			}
		}
	}
}

func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
