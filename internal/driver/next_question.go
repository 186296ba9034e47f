package driver

import (
	"math"
	"sort"

	"visaexpert/internal/memory"
	"visaexpert/internal/rulebase"
)

// factsForGoal implements the backward DFS of spec.md §4.3.1 step 1: the
// set of facts reachable from goal through the deriving-rules index,
// following the minimum-condition-count rule at each derivable step (ties
// broken by the lowest rule id, which falls out of scanning an
// ascending-id rule list with a strict less-than). A visited set guards
// against cycles in the rule graph (the validator flags those separately,
// but the driver must never loop regardless).
func factsForGoal(model *rulebase.Model, goal string, wm *memory.WorkingMemory) map[string]struct{} {
	visited := make(map[string]struct{})
	needed := make(map[string]struct{})

	var visit func(fact string)
	visit = func(fact string) {
		if _, seen := visited[fact]; seen {
			return
		}
		visited[fact] = struct{}{}

		if _, known := wm.Value(fact); known {
			return
		}

		deriving := model.DerivingRulesEnabled(fact)
		if len(deriving) == 0 {
			needed[fact] = struct{}{}
			return
		}

		// A derivable intermediate is itself askable (§4.3.2): asking it
		// directly can prune the whole sub-tree below it. The goal at the
		// root of the search is not a candidate.
		if fact != goal {
			needed[fact] = struct{}{}
		}

		var chosen *rulebase.Rule
		for _, id := range deriving {
			r, _ := model.Rule(id)
			if chosen == nil || len(r.Conditions) < len(chosen.Conditions) {
				chosen = r
			}
		}
		for _, c := range chosen.Conditions {
			visit(c.Fact)
		}
	}

	visit(goal)
	return needed
}

// NextQuestion selects the next fact to ask per spec.md §4.3.1. It returns
// ("", false) when the candidate pool is empty — the dialogue is
// complete.
func NextQuestion(model *rulebase.Model, goals []string, wm *memory.WorkingMemory, weights ScoringWeights) (string, bool) {
	goalFactSets := make(map[string]map[string]struct{})
	pool := make(map[string]struct{})

	for _, g := range goals {
		if _, known := wm.Value(g); known {
			continue
		}
		fs := factsForGoal(model, g, wm)
		goalFactSets[g] = fs
		for f := range fs {
			pool[f] = struct{}{}
		}
	}

	candidates := make([]string, 0, len(pool))
	for f := range pool {
		if _, known := wm.Value(f); known {
			continue
		}
		if wm.IsSkipped(f) {
			continue
		}
		candidates = append(candidates, f)
	}
	if len(candidates) == 0 {
		return "", false
	}
	sort.Strings(candidates)

	bestFact := ""
	bestScore := math.MinInt
	for _, f := range candidates {
		score := scoreFact(f, goalFactSets, model, weights)
		if score > bestScore {
			bestScore = score
			bestFact = f
		}
	}
	return bestFact, true
}

func scoreFact(fact string, goalFactSets map[string]map[string]struct{}, model *rulebase.Model, weights ScoringWeights) int {
	score := 0
	groupBonus := 0
	shared := 0
	for goal, facts := range goalFactSets {
		if _, ok := facts[fact]; !ok {
			continue
		}
		shared++
		if p := weights.GoalPriority[goal]; p > groupBonus {
			groupBonus = p
		}
	}
	score += groupBonus
	score += shared * weights.SharedGoalBonus

	if model.IsDerivable(fact) {
		score += weights.DerivableBonus
	} else {
		score += weights.BasicBonus
	}

	if len(fact) <= weights.ShortFactMaxLen {
		score += weights.ShortFactBonus
	}
	return score
}
