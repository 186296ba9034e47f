// Package rulebase holds the immutable representation of a rule base (the
// Rule & Fact Model, component A): rules, conditions, actions, and the two
// indices the rest of the core relies on — fact to deriving rules, and fact
// to dependent rules.
package rulebase

import "sort"

// Kind distinguishes a rule that concludes a top-level goal from one that
// concludes an intermediate fact consumed by other rules.
type Kind string

const (
	KindInitial      Kind = "initial"
	KindIntermediate Kind = "intermediate"
)

// Condition is one conjunct of a rule's premise. Connector is carried for
// provenance only: the rule base models OR-branches as separate rules, so
// every condition list is evaluated as a conjunction regardless of the tag
// recorded here.
type Condition struct {
	Fact      string `yaml:"fact" json:"fact"`
	Connector string `yaml:"connector,omitempty" json:"connector,omitempty"`
}

// Action assigns a boolean value to a fact when its owning rule fires.
type Action struct {
	Fact  string `yaml:"fact" json:"fact"`
	Value bool   `yaml:"value" json:"value"`
}

// Rule is one production: a conjunction of Conditions implying one or more
// Actions. Version supports optimistic concurrency on admin edits (§5).
type Rule struct {
	ID         int         `yaml:"id" json:"id"`
	Name       string      `yaml:"name" json:"name"`
	Tag        string      `yaml:"tag" json:"tag"`
	Kind       Kind        `yaml:"kind" json:"kind"`
	Conditions []Condition `yaml:"conditions" json:"conditions"`
	Actions    []Action    `yaml:"actions" json:"actions"`
	Enabled    bool        `yaml:"enabled" json:"enabled"`
	Version    int         `yaml:"version" json:"version"`
}

// ConditionFacts returns the fact names of r's conditions, in order.
func (r *Rule) ConditionFacts() []string {
	facts := make([]string, len(r.Conditions))
	for i, c := range r.Conditions {
		facts[i] = c.Fact
	}
	return facts
}

// Clone returns a deep copy of r, so callers can mutate it (e.g. to build a
// candidate edit) without touching the stored rule.
func (r *Rule) Clone() *Rule {
	cp := *r
	cp.Conditions = append([]Condition(nil), r.Conditions...)
	cp.Actions = append([]Action(nil), r.Actions...)
	return &cp
}

// Model is a built index over a fixed set of rules. It is immutable once
// built; edits go through Store, which builds a fresh Model.
type Model struct {
	rules          map[int]*Rule
	order          []int // rule ids in ascending order, cached for deterministic sweeps
	derivingRules  map[string][]int
	dependentRules map[string][]int
}

// NewModel builds a Model from a flat rule list. Rules are cloned so the
// Model owns its own copies.
func NewModel(rules []*Rule) *Model {
	m := &Model{
		rules:          make(map[int]*Rule, len(rules)),
		derivingRules:  make(map[string][]int),
		dependentRules: make(map[string][]int),
	}
	for _, r := range rules {
		m.rules[r.ID] = r.Clone()
	}
	m.order = make([]int, 0, len(m.rules))
	for id := range m.rules {
		m.order = append(m.order, id)
	}
	sort.Ints(m.order)

	for _, id := range m.order {
		r := m.rules[id]
		// Indices cover every rule, enabled or not: basic/derivable
		// classification is a pure function of the rule base (§4.1), and the
		// validator's unreachability check needs to see deriving rules that
		// are all disabled. Evaluation itself skips disabled rules (see
		// OrderedEnabledIDs / DerivingRulesEnabled).
		for _, a := range r.Actions {
			m.derivingRules[a.Fact] = append(m.derivingRules[a.Fact], id)
		}
		for _, c := range r.Conditions {
			m.dependentRules[c.Fact] = append(m.dependentRules[c.Fact], id)
		}
	}
	for fact := range m.derivingRules {
		sort.Ints(m.derivingRules[fact])
	}
	for fact := range m.dependentRules {
		sort.Ints(m.dependentRules[fact])
	}
	return m
}

// Rule returns the rule with the given id, and whether it exists.
func (m *Model) Rule(id int) (*Rule, bool) {
	r, ok := m.rules[id]
	return r, ok
}

// Rules returns every rule (enabled or not) in ascending id order.
func (m *Model) Rules() []*Rule {
	out := make([]*Rule, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.rules[id])
	}
	return out
}

// OrderedEnabledIDs returns enabled rule ids in ascending order, the sweep
// order the evaluator ties-break on.
func (m *Model) OrderedEnabledIDs() []int {
	out := make([]int, 0, len(m.order))
	for _, id := range m.order {
		if m.rules[id].Enabled {
			out = append(out, id)
		}
	}
	return out
}

// DerivingRules returns every rule id (enabled or not) whose action list
// contains fact, ascending.
func (m *Model) DerivingRules(fact string) []int {
	return m.derivingRules[fact]
}

// DependentRules returns every rule id (enabled or not) whose condition list
// contains fact, ascending.
func (m *Model) DependentRules(fact string) []int {
	return m.dependentRules[fact]
}

// DerivingRulesEnabled is DerivingRules filtered to enabled rules, the view
// backward chaining and the evaluator actually reason over.
func (m *Model) DerivingRulesEnabled(fact string) []int {
	all := m.derivingRules[fact]
	out := make([]int, 0, len(all))
	for _, id := range all {
		if m.rules[id].Enabled {
			out = append(out, id)
		}
	}
	return out
}

// IsDerivable reports whether fact is concluded by at least one rule's
// action list, enabled or not.
func (m *Model) IsDerivable(fact string) bool {
	return len(m.derivingRules[fact]) > 0
}

// IsBasic is the complement of IsDerivable.
func (m *Model) IsBasic(fact string) bool {
	return !m.IsDerivable(fact)
}

// AllFacts returns every fact name mentioned by any rule's conditions or
// actions, used by the validator's orphan check.
func (m *Model) AllFacts() []string {
	seen := make(map[string]struct{})
	for _, id := range m.order {
		r := m.rules[id]
		for _, c := range r.Conditions {
			seen[c.Fact] = struct{}{}
		}
		for _, a := range r.Actions {
			seen[a.Fact] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for f := range seen {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}
