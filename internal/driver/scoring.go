package driver

// ScoringWeights configures the §4.3.1 question-selection heuristic. The
// spec calls out the visa-priority grouping and the "easy question" length
// proxy as values implementers should expose as configuration rather than
// hard-code; GoalPriority plays that role for the grouping, the rest for
// the per-fact bonuses.
type ScoringWeights struct {
	// GoalPriority maps a goal fact name to its priority-group bonus. The
	// bundled rule base uses 50/30/10 for E/L/B, matching spec.md's
	// "E > L > B" default; a goal absent from this map contributes 0.
	GoalPriority map[string]int
	// SharedGoalBonus is added per goal-set a candidate fact appears in.
	SharedGoalBonus int
	// DerivableBonus/BasicBonus reward asking a derivable fact directly
	// (it can prune whole sub-trees) over a basic leaf.
	DerivableBonus int
	BasicBonus     int
	// ShortFactBonus is added when a fact's name is at most
	// ShortFactMaxLen characters, a proxy for "easy question".
	ShortFactBonus  int
	ShortFactMaxLen int
}

// DefaultScoringWeights reproduces the constants spec.md §4.3.1 names.
func DefaultScoringWeights() ScoringWeights {
	return ScoringWeights{
		GoalPriority:    map[string]int{},
		SharedGoalBonus: 10,
		DerivableBonus:  50,
		BasicBonus:      30,
		ShortFactBonus:  30,
		ShortFactMaxLen: 30,
	}
}
