// Package audit provides an optional, append-only record of session
// activity: starts, answers, and completions. It exists alongside the
// in-memory session store (SPEC_FULL.md §11.2) purely for operational
// visibility — nothing in the inference algorithm reads it back.
package audit

// Sink receives a best-effort narration of session activity. Every method
// is fire-and-forget: a failing sink must never fail the request that
// triggered it, so implementations log their own errors instead of
// returning them.
type Sink interface {
	RecordSessionStarted(sessionID string, goals []string)
	RecordAnswer(sessionID, fact, answer string, firedRules []int)
	RecordSessionCompleted(sessionID string, goalMap map[string]bool)
	Close() error
}

// NoopSink discards everything. It is the Store's default when no sink is
// configured.
type NoopSink struct{}

func (NoopSink) RecordSessionStarted(string, []string)           {}
func (NoopSink) RecordAnswer(string, string, string, []int)      {}
func (NoopSink) RecordSessionCompleted(string, map[string]bool)  {}
func (NoopSink) Close() error                                    { return nil }
