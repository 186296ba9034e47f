package driver

import "visaexpert/internal/memory"

// GoalMap builds spec.md §6's terminal result: true iff the goal is in
// hypotheses or findings with value true, false otherwise (including
// "never answered").
func GoalMap(goals []string, wm *memory.WorkingMemory) map[string]bool {
	out := make(map[string]bool, len(goals))
	for _, g := range goals {
		v, _ := wm.Value(g)
		out[g] = v
	}
	return out
}
