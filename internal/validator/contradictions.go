package validator

import (
	"fmt"

	"visaexpert/internal/rulebase"
)

// DetectContradictions reports, for every fact derived by two or more
// rules, any pair of those rules that share an identical condition-fact
// set but assign different values to the fact (spec.md §4.6.1).
func DetectContradictions(model *rulebase.Model) []Finding {
	var out []Finding

	for _, fact := range model.AllFacts() {
		ruleIDs := model.DerivingRules(fact)
		if len(ruleIDs) < 2 {
			continue
		}
		for i := 0; i < len(ruleIDs); i++ {
			for j := i + 1; j < len(ruleIDs); j++ {
				r1, _ := model.Rule(ruleIDs[i])
				r2, _ := model.Rule(ruleIDs[j])
				if !sameConditionSet(r1, r2) {
					continue
				}
				v1, ok1 := actionValue(r1, fact)
				v2, ok2 := actionValue(r2, fact)
				if !ok1 || !ok2 || v1 == v2 {
					continue
				}
				out = append(out, Finding{
					Type:     "contradiction",
					Severity: SeverityHigh,
					RuleIDs:  []int{r1.ID, r2.ID},
					Fact:     fact,
					Message:  fmt.Sprintf("rules %d and %d have identical conditions but assign different values to %q", r1.ID, r2.ID, fact),
				})
			}
		}
	}
	return out
}

func sameConditionSet(a, b *rulebase.Rule) bool {
	if len(a.Conditions) != len(b.Conditions) {
		return false
	}
	set := make(map[string]struct{}, len(a.Conditions))
	for _, c := range a.Conditions {
		set[c.Fact] = struct{}{}
	}
	for _, c := range b.Conditions {
		if _, ok := set[c.Fact]; !ok {
			return false
		}
	}
	return true
}

func actionValue(r *rulebase.Rule, fact string) (bool, bool) {
	for _, a := range r.Actions {
		if a.Fact == fact {
			return a.Value, true
		}
	}
	return false, false
}
