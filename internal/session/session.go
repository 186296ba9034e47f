// Package session implements the core's exported surface (spec.md §6):
// start/answer/undo/rules_view/working_memory_view over a registry of
// per-session working memory. Different sessions are independent and may
// run in parallel (spec.md §5); each individual session serializes its own
// operations with a per-session mutex so answer/undo/view calls against
// the same session id observe strict program order.
package session

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"visaexpert/internal/audit"
	"visaexpert/internal/coreerr"
	"visaexpert/internal/driver"
	"visaexpert/internal/history"
	"visaexpert/internal/memory"
	"visaexpert/internal/rulebase"

	"sync"
)

// session holds one dialogue's private state. Model is the rule-base
// snapshot the session started against; a later admin edit rebuilds the
// Store's Current() model but does not reach into already-running
// sessions (see rulebase.Store's doc comment and DESIGN.md).
type session struct {
	mu        sync.Mutex
	id        string
	goals     []string
	model     *rulebase.Model
	wm        *memory.WorkingMemory
	hist      *history.Stack
	weights   driver.ScoringWeights
	startedAt time.Time
}

// WorkingMemoryView is a read-only copy of a session's working memory for
// display (spec.md §6's working_memory_view output).
type WorkingMemoryView struct {
	Findings    map[string]bool
	Hypotheses  map[string]bool
	ConflictSet []int
	RuleStatus  map[int]memory.RuleStatus
}

// Store is the session registry: a concurrency-safe map from session id to
// session, plus the logger and audit sink every operation reports through.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*session
	logger   *zap.Logger
	sink     audit.Sink
}

// NewStore constructs an empty session registry. A nil logger or sink
// falls back to zap.NewNop() / audit.NoopSink{}.
func NewStore(logger *zap.Logger, sink audit.Sink) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	if sink == nil {
		sink = audit.NoopSink{}
	}
	return &Store{
		sessions: make(map[string]*session),
		logger:   logger,
		sink:     sink,
	}
}

// Start creates a new session over model for the given goals and returns
// its id plus the first question, if any.
func (s *Store) Start(goals []string, model *rulebase.Model, weights driver.ScoringWeights) (id string, nextQuestion string, hasQuestion bool) {
	sess := &session{
		id:        uuid.NewString(),
		goals:     append([]string(nil), goals...),
		model:     model,
		wm:        memory.New(),
		hist:      history.NewStack(),
		weights:   weights,
		startedAt: time.Now(),
	}

	s.mu.Lock()
	s.sessions[sess.id] = sess
	s.mu.Unlock()

	nextQuestion, hasQuestion = driver.NextQuestion(sess.model, sess.goals, sess.wm, sess.weights)
	s.logger.Info("session started", zap.String("session_id", sess.id), zap.Strings("goals", goals))
	s.sink.RecordSessionStarted(sess.id, goals)
	return sess.id, nextQuestion, hasQuestion
}

func (s *Store) lookup(id string) (*session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, coreerr.NotFound("no session %q", id)
	}
	return sess, nil
}

// Answer applies one (fact, answer) pair to the named session. The
// session lock is held only across the core computation; the audit sink
// is invoked after it's released, per spec.md §5's "must not hold the
// session lock" rule for external I/O.
func (s *Store) Answer(id, fact string, answer history.Answer) (*driver.AnswerResult, error) {
	sess, err := s.lookup(id)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	result, err := driver.Answer(sess.model, sess.goals, sess.wm, sess.hist, sess.weights, fact, answer)
	sess.mu.Unlock()
	if err != nil {
		return nil, err
	}

	s.logger.Debug("answer processed",
		zap.String("session_id", id),
		zap.String("fact", fact),
		zap.String("answer", string(answer)),
		zap.Ints("fired_rules", result.FiredRules),
		zap.Bool("detail_questions_needed", result.DetailQuestionsNeeded))
	s.sink.RecordAnswer(id, fact, string(answer), result.FiredRules)
	if result.GoalMap != nil {
		s.sink.RecordSessionCompleted(id, result.GoalMap)
	}
	return result, nil
}

// Undo pops the named session's most recent answer.
func (s *Store) Undo(id string) (driver.UndoResult, error) {
	sess, err := s.lookup(id)
	if err != nil {
		return driver.UndoResult{}, err
	}

	sess.mu.Lock()
	result := driver.Undo(sess.model, sess.goals, sess.wm, sess.hist, sess.weights)
	sess.mu.Unlock()

	s.logger.Debug("undo", zap.String("session_id", id), zap.Bool("undone", result.Undone))
	return result, nil
}

// RulesView returns the current status of every rule in the session's
// model (spec.md §6's rules_view output).
func (s *Store) RulesView(id string) (map[int]memory.RuleStatus, error) {
	sess, err := s.lookup(id)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	out := make(map[int]memory.RuleStatus, len(sess.model.Rules()))
	for _, r := range sess.model.Rules() {
		out[r.ID] = sess.wm.Status(r.ID)
	}
	return out, nil
}

// WorkingMemoryView returns a read-only copy of a session's findings,
// hypotheses, conflict set and rule statuses.
func (s *Store) WorkingMemoryView(id string) (WorkingMemoryView, error) {
	sess, err := s.lookup(id)
	if err != nil {
		return WorkingMemoryView{}, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	view := WorkingMemoryView{
		Findings:   make(map[string]bool, len(sess.wm.Findings)),
		Hypotheses: make(map[string]bool, len(sess.wm.Hypotheses)),
		RuleStatus: make(map[int]memory.RuleStatus, len(sess.wm.RuleStatus)),
	}
	for k, v := range sess.wm.Findings {
		view.Findings[k] = v
	}
	for k, v := range sess.wm.Hypotheses {
		view.Hypotheses[k] = v
	}
	for k, v := range sess.wm.RuleStatus {
		view.RuleStatus[k] = v
	}
	view.ConflictSet = make([]int, 0, len(sess.wm.ConflictSet))
	for id := range sess.wm.ConflictSet {
		view.ConflictSet = append(view.ConflictSet, id)
	}
	sort.Ints(view.ConflictSet)
	return view, nil
}

// Discard drops a session. It is the only supported cancellation
// mechanism (spec.md §5): there is nothing to suspend mid-algorithm.
func (s *Store) Discard(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
	s.logger.Info("session discarded", zap.String("session_id", id))
}
