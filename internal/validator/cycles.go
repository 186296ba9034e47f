package validator

import (
	"fmt"
	"sort"
	"strings"

	"visaexpert/internal/rulebase"
)

type edgeKey struct {
	from, to string
}

// DetectCircularReferences builds a directed graph with an edge
// fact_a -> fact_b whenever some enabled rule has fact_a as a condition
// and fact_b as an action, then reports every elementary cycle it finds
// via DFS, along with the rule ids that close each cycle (spec.md
// §4.6.3).
func DetectCircularReferences(model *rulebase.Model) []Finding {
	edges := make(map[string][]string)
	closers := make(map[edgeKey][]int)

	for _, r := range model.Rules() {
		if !r.Enabled {
			continue
		}
		for _, c := range r.Conditions {
			for _, a := range r.Actions {
				edges[c.Fact] = append(edges[c.Fact], a.Fact)
				key := edgeKey{c.Fact, a.Fact}
				closers[key] = append(closers[key], r.ID)
			}
		}
	}

	var out []Finding
	reported := make(map[string]struct{})

	var path []string
	onPath := make(map[string]int)
	done := make(map[string]struct{})

	var dfs func(fact string)
	dfs = func(fact string) {
		path = append(path, fact)
		onPath[fact] = len(path) - 1

		for _, next := range edges[fact] {
			if idx, inPath := onPath[next]; inPath {
				cycle := append([]string(nil), path[idx:]...)
				sig := cycleSignature(cycle)
				if _, dup := reported[sig]; !dup {
					reported[sig] = struct{}{}
					out = append(out, Finding{
						Type:     "circular_reference",
						Severity: SeverityHigh,
						Cycle:    cycle,
						RuleIDs:  closingRules(cycle, closers),
						Message:  fmt.Sprintf("circular reference: %s → %s", strings.Join(cycle, " → "), cycle[0]),
					})
				}
				continue
			}
			if _, seen := done[next]; seen {
				continue
			}
			dfs(next)
		}

		delete(onPath, fact)
		path = path[:len(path)-1]
		done[fact] = struct{}{}
	}

	for _, f := range model.AllFacts() {
		if _, seen := done[f]; seen {
			continue
		}
		dfs(f)
	}
	return out
}

// cycleSignature picks a canonical rotation of cycle so the same cycle
// discovered from different starting facts dedupes to one Finding.
func cycleSignature(cycle []string) string {
	best := ""
	for start := range cycle {
		rotated := append(append([]string(nil), cycle[start:]...), cycle[:start]...)
		s := strings.Join(rotated, "\x00")
		if best == "" || s < best {
			best = s
		}
	}
	return best
}

func closingRules(cycle []string, closers map[edgeKey][]int) []int {
	seen := make(map[int]struct{})
	var out []int
	for i := range cycle {
		from := cycle[i]
		to := cycle[(i+1)%len(cycle)]
		for _, id := range closers[edgeKey{from, to}] {
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	sort.Ints(out)
	return out
}
