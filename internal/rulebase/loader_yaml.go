package rulebase

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// yamlFile is the on-disk shape of data/rulebase.yaml.
type yamlFile struct {
	Rules []*Rule `yaml:"rules"`
}

// LoadYAML reads a rule base from a YAML file in the native wire format
// (one document, a top-level "rules" list with the Rule struct's own
// tags). Version defaults to 1 when omitted; enabled has no implicit
// default and must be spelled out per rule (a bare bool can't tell "false"
// from "absent").
func LoadYAML(path string) (*Model, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("rulebase: read %s: %w", path, err)
	}
	var doc yamlFile
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("rulebase: parse %s: %w", path, err)
	}
	return buildFromParsed(doc.Rules)
}

func buildFromParsed(rules []*Rule) (*Model, error) {
	seen := make(map[int]struct{}, len(rules))
	for _, r := range rules {
		if _, dup := seen[r.ID]; dup {
			return nil, fmt.Errorf("rulebase: duplicate rule id %d", r.ID)
		}
		seen[r.ID] = struct{}{}
		if r.Version == 0 {
			r.Version = 1
		}
		if r.Kind == "" {
			r.Kind = KindIntermediate
		}
		for _, c := range r.Conditions {
			if c.Fact == "" {
				return nil, fmt.Errorf("rulebase: rule %d has an empty condition fact", r.ID)
			}
		}
		if len(r.Actions) == 0 {
			return nil, fmt.Errorf("rulebase: rule %d has no actions", r.ID)
		}
	}
	return NewModel(rules), nil
}
