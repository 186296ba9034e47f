package rulebase

import (
	"sync"

	"visaexpert/internal/coreerr"
)

// Store is the admin-surface collaborator from spec.md §6: CRUD on rules
// with optimistic concurrency via Rule.Version. Edits rebuild the index
// atomically and swap in a fresh Model; sessions already running keep the
// *Model they were handed at Start and are unaffected until they're
// restarted against Current() (see DESIGN.md for the rationale).
type Store struct {
	mu      sync.RWMutex
	current *Model
}

// NewStore wraps an initial Model for admin editing.
func NewStore(initial *Model) *Store {
	return &Store{current: initial}
}

// Current returns the latest Model snapshot. Safe for concurrent use; the
// returned Model is itself immutable.
func (s *Store) Current() *Model {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Get returns a clone of the rule with the given id from the current
// model, for display or as the basis of an edit.
func (s *Store) Get(id int) (*Rule, error) {
	m := s.Current()
	r, ok := m.Rule(id)
	if !ok {
		return nil, coreerr.NotFound("no rule with id %d", id)
	}
	return r.Clone(), nil
}

// Create adds a brand-new rule (Version is forced to 1 regardless of what
// the caller supplied) and rebuilds indices.
func (s *Store) Create(rule *Rule) (*Rule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.current.Rule(rule.ID); exists {
		return nil, coreerr.Conflict("rule id %d already exists", rule.ID)
	}
	created := rule.Clone()
	created.Version = 1
	rules := append(s.current.Rules(), created)
	s.current = NewModel(rules)
	return created.Clone(), nil
}

// Put replaces the rule with edit.ID, requiring expectedVersion to match
// the stored version (optimistic concurrency, §5). On success the stored
// version is bumped and indices are rebuilt.
func (s *Store) Put(edit *Rule, expectedVersion int) (*Rule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, exists := s.current.Rule(edit.ID)
	if !exists {
		return nil, coreerr.NotFound("no rule with id %d", edit.ID)
	}
	if stored.Version != expectedVersion {
		return nil, coreerr.Conflict("rule %d is at version %d, not %d", edit.ID, stored.Version, expectedVersion)
	}

	updated := edit.Clone()
	updated.Version = stored.Version + 1

	rules := s.current.Rules()
	for i, r := range rules {
		if r.ID == edit.ID {
			rules[i] = updated
			break
		}
	}
	s.current = NewModel(rules)
	return updated.Clone(), nil
}

// Delete removes a rule by id and rebuilds indices.
func (s *Store) Delete(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.current.Rule(id); !exists {
		return coreerr.NotFound("no rule with id %d", id)
	}
	rules := make([]*Rule, 0, len(s.current.order))
	for _, r := range s.current.Rules() {
		if r.ID != id {
			rules = append(rules, r)
		}
	}
	s.current = NewModel(rules)
	return nil
}
