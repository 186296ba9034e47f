// Package evaluator implements the Rule Evaluator (component C): given a
// Model and a WorkingMemory, it fires every rule whose conditions hold and
// cascades newly-derived hypotheses to a fixpoint.
package evaluator

import (
	"visaexpert/internal/memory"
	"visaexpert/internal/rulebase"
)

// conditionState is the per-condition classification evaluate uses to
// decide a rule's fate.
type conditionState int

const (
	satisfied conditionState = iota
	violated
	pendingUnknown
)

func classify(wm *memory.WorkingMemory, fact string) conditionState {
	if wm.IsSkipped(fact) {
		return satisfied
	}
	v, known := wm.Value(fact)
	if !known {
		return pendingUnknown
	}
	if v {
		return satisfied
	}
	return violated
}

// EvaluateToFixpoint sweeps model's enabled rules in ascending id order,
// firing every rule whose conditions are all satisfied and marking skipped
// every rule with a violated condition, restarting the sweep whenever a
// rule fired, was newly skipped, or a derivable fact became unprovable
// (because any of those can unblock or prune others). It returns the ids
// of rules that fired during this call, in the order they fired.
func EvaluateToFixpoint(model *rulebase.Model, wm *memory.WorkingMemory) []int {
	var fired []int
	for {
		progressed := false
		for _, id := range model.OrderedEnabledIDs() {
			if wm.Status(id) == memory.StatusFired || wm.Status(id) == memory.StatusSkipped {
				continue
			}
			r, _ := model.Rule(id)

			anyViolated := false
			anyUnknown := false
			for _, c := range r.Conditions {
				switch classify(wm, c.Fact) {
				case violated:
					anyViolated = true
				case pendingUnknown:
					anyUnknown = true
				}
			}

			switch {
			case anyViolated:
				wm.SetStatus(id, memory.StatusSkipped)
				for _, c := range r.Conditions {
					if _, known := wm.Value(c.Fact); !known {
						wm.Skip(c.Fact)
					}
				}
				progressed = true
			case !anyUnknown:
				for _, a := range r.Actions {
					wm.SetHypothesis(a.Fact, a.Value)
				}
				wm.Fire(id)
				fired = append(fired, id)
				progressed = true
			}
		}
		if markUnprovableFacts(model, wm) {
			progressed = true
		}
		if !progressed {
			return fired
		}
	}
}

// markUnprovableFacts implements the "transitively invalidated by a
// skipped parent" half of invariant I4: once every enabled rule that could
// derive a fact has been skipped, that fact can never become true, so it
// is forced false, which in turn lets classify (and a later sweep) skip
// whatever rule depends on it — the same mechanism spec.md §8 Scenario 2
// describes as "rule 1 skipped via cascade" when its premise
// `applicant_meets_e_manager` loses both of its deriving rules. A fact
// already known, or already in skipped_facts (pruned rather than
// disproved), is left alone.
func markUnprovableFacts(model *rulebase.Model, wm *memory.WorkingMemory) bool {
	progressed := false
	for _, fact := range model.AllFacts() {
		if !model.IsDerivable(fact) {
			continue
		}
		if _, known := wm.Value(fact); known {
			continue
		}
		if wm.IsSkipped(fact) {
			continue
		}
		deriving := model.DerivingRulesEnabled(fact)
		if len(deriving) == 0 {
			continue
		}
		allSkipped := true
		for _, id := range deriving {
			if wm.Status(id) != memory.StatusSkipped {
				allSkipped = false
				break
			}
		}
		if allSkipped {
			wm.SetHypothesis(fact, false)
			progressed = true
		}
	}
	return progressed
}
