package validator

import (
	"fmt"

	"visaexpert/internal/rulebase"
)

// DetectUnreachableRules reports every rule with a condition fact that is
// derivable but whose every deriving rule is disabled — the rule can
// never fire (spec.md §4.6.2).
func DetectUnreachableRules(model *rulebase.Model) []Finding {
	var out []Finding

	for _, r := range model.Rules() {
		var impossible []string
		for _, c := range r.Conditions {
			if !model.IsDerivable(c.Fact) {
				continue
			}
			if allDisabled(model, c.Fact) {
				impossible = append(impossible, c.Fact)
			}
		}
		if len(impossible) == 0 {
			continue
		}
		out = append(out, Finding{
			Type:     "unreachable",
			Severity: SeverityMedium,
			RuleIDs:  []int{r.ID},
			Message:  fmt.Sprintf("rule %d (%s) can never fire: %v can never become true", r.ID, r.Name, impossible),
		})
	}
	return out
}

func allDisabled(model *rulebase.Model, fact string) bool {
	deriving := model.DerivingRules(fact)
	if len(deriving) == 0 {
		return false
	}
	for _, id := range deriving {
		r, ok := model.Rule(id)
		if ok && r.Enabled {
			return false
		}
	}
	return true
}
