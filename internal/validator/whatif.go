package validator

import "visaexpert/internal/rulebase"

// WhatIfResult is the response to test_rule_modification (spec.md §4.6):
// the full report plus its pass/fail verdict.
type WhatIfResult struct {
	Report  Report
	IsValid bool
}

// TestRuleModification provisionally substitutes candidate into model's
// rule set (by id — an existing id replaces that rule, a new id is
// appended), rebuilds indices, and runs every check against the
// candidate model. Because rulebase.Model is immutable and NewModel
// always builds from cloned rules, this never touches model itself: a
// candidate model is built from a fresh rule slice and discarded after
// the checks run, so there is nothing to roll back and nothing can leak
// into the live rule base regardless of what the checks find.
func TestRuleModification(model *rulebase.Model, candidate *rulebase.Rule, goals []string) WhatIfResult {
	rules := model.Rules()
	replaced := false
	for i, r := range rules {
		if r.ID == candidate.ID {
			rules[i] = candidate
			replaced = true
			break
		}
	}
	if !replaced {
		rules = append(rules, candidate)
	}

	candidateModel := rulebase.NewModel(rules)
	report := ValidateAll(candidateModel, goals)
	return WhatIfResult{Report: report, IsValid: report.IsValid()}
}
