package rulebase

import (
	"encoding/json"
	"fmt"
	"os"
)

// teacherFact and teacherRule mirror the wire format the original
// forward/backward engine read: a flat JSON document with a "facts" map
// and a "rules" list where each rule names its conditionals and a single
// derivation by fact name.
type teacherFact struct {
	Name          string `json:"name"`
	SemanticValue string `json:"semantic_value"`
}

type teacherRule struct {
	Name         string   `json:"name"`
	Conditionals []string `json:"conditionals"`
	Derivation   string   `json:"derivation"`
}

type teacherDocument struct {
	Facts []*teacherFact `json:"facts"`
	Rules []*teacherRule `json:"rules"`
}

// LoadTeacherJSON adapts a rule base authored in the original engine's JSON
// format into the richer Model: every rule becomes a single-action,
// all-AND-conditions Rule, ids are assigned by document order starting at
// 1, and a rule's Kind is Initial when its derivation is one of goals
// (rather than a condition consumed by some other rule), Intermediate
// otherwise. Every fact not present in "facts" is rejected, matching the
// original loader's own validation.
func LoadTeacherJSON(path string, goals []string) (*Model, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("rulebase: read %s: %w", path, err)
	}
	var doc teacherDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("rulebase: parse %s: %w", path, err)
	}

	known := make(map[string]struct{}, len(doc.Facts))
	for _, f := range doc.Facts {
		if _, dup := known[f.Name]; dup {
			return nil, fmt.Errorf("rulebase: doubled fact %q", f.Name)
		}
		known[f.Name] = struct{}{}
	}

	isGoal := make(map[string]struct{}, len(goals))
	for _, g := range goals {
		isGoal[g] = struct{}{}
	}

	rules := make([]*Rule, 0, len(doc.Rules))
	seenRuleName := make(map[string]struct{}, len(doc.Rules))
	for i, tr := range doc.Rules {
		if _, dup := seenRuleName[tr.Name]; dup {
			return nil, fmt.Errorf("rulebase: doubled rule %q", tr.Name)
		}
		seenRuleName[tr.Name] = struct{}{}

		for _, c := range tr.Conditionals {
			if _, ok := known[c]; !ok {
				return nil, fmt.Errorf("rulebase: unknown fact %q in rule %q", c, tr.Name)
			}
		}
		if _, ok := known[tr.Derivation]; !ok {
			return nil, fmt.Errorf("rulebase: unknown fact %q in rule %q", tr.Derivation, tr.Name)
		}

		kind := KindIntermediate
		if _, ok := isGoal[tr.Derivation]; ok {
			kind = KindInitial
		}

		conditions := make([]Condition, len(tr.Conditionals))
		for j, c := range tr.Conditionals {
			conditions[j] = Condition{Fact: c, Connector: "AND"}
		}

		rules = append(rules, &Rule{
			ID:         i + 1,
			Name:       tr.Name,
			Tag:        "",
			Kind:       kind,
			Conditions: conditions,
			Actions:    []Action{{Fact: tr.Derivation, Value: true}},
			Enabled:    true,
			Version:    1,
		})
	}

	return buildFromParsed(rules)
}
