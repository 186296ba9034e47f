package validator

import (
	"fmt"

	"visaexpert/internal/rulebase"
)

// DetectOrphanedFacts reports facts that only ever appear as an action —
// never as a condition — unless the fact is an explicit goal (spec.md
// §4.6.4).
func DetectOrphanedFacts(model *rulebase.Model, goals []string) []Finding {
	goalSet := make(map[string]struct{}, len(goals))
	for _, g := range goals {
		goalSet[g] = struct{}{}
	}

	var out []Finding
	for _, fact := range model.AllFacts() {
		if _, isGoal := goalSet[fact]; isGoal {
			continue
		}
		deriving := model.DerivingRules(fact)
		dependent := model.DependentRules(fact)
		if len(deriving) == 0 || len(dependent) > 0 {
			continue
		}
		out = append(out, Finding{
			Type:     "orphaned_fact",
			Severity: SeverityLow,
			Fact:     fact,
			RuleIDs:  append([]int(nil), deriving...),
			Message:  fmt.Sprintf("fact %q is derived but never used as a condition", fact),
		})
	}
	return out
}
