package driver

import (
	"visaexpert/internal/memory"
	"visaexpert/internal/rulebase"
)

// CascadeInvalidate implements §4.4: when fact becomes known-false, every
// rule that has it as a condition can no longer fire. It's an explicit
// worklist rather than recursion (per the Design Notes' warning about
// unbounded recursion on a cyclic rule graph) — the visited set is
// strictly growing and bounded by the number of facts, so it always
// terminates even if the rule base has a cycle the validator hasn't
// caught yet.
func CascadeInvalidate(model *rulebase.Model, wm *memory.WorkingMemory, fact string) {
	worklist := []string{fact}
	visited := make(map[string]struct{})

	for len(worklist) > 0 {
		f := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]

		if _, seen := visited[f]; seen {
			continue
		}
		visited[f] = struct{}{}

		for _, ruleID := range model.DependentRules(f) {
			r, ok := model.Rule(ruleID)
			if !ok || !r.Enabled {
				continue
			}
			status := wm.Status(ruleID)
			if status == memory.StatusFired || status == memory.StatusSkipped {
				continue
			}
			wm.SetStatus(ruleID, memory.StatusSkipped)

			for _, a := range r.Actions {
				if _, known := wm.Hypotheses[a.Fact]; known {
					wm.SetHypothesis(a.Fact, false)
					worklist = append(worklist, a.Fact)
				}
			}
		}
	}
}
