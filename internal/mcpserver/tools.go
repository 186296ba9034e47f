package mcpserver

import (
	"context"
	"fmt"

	"visaexpert/internal/coreerr"
	"visaexpert/internal/driver"
	"visaexpert/internal/history"
	"visaexpert/internal/rulebase"
	"visaexpert/internal/session"
)

func stringArg(args map[string]interface{}, key string) (string, error) {
	v, ok := args[key]
	if !ok {
		return "", coreerr.BadInput("missing argument %q", key)
	}
	s, ok := v.(string)
	if !ok {
		return "", coreerr.BadInput("argument %q must be a string", key)
	}
	return s, nil
}

func stringSliceArg(args map[string]interface{}, key string) ([]string, error) {
	v, ok := args[key]
	if !ok {
		return nil, coreerr.BadInput("missing argument %q", key)
	}
	raw, ok := v.([]interface{})
	if !ok {
		return nil, coreerr.BadInput("argument %q must be an array of strings", key)
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		s, ok := item.(string)
		if !ok {
			return nil, coreerr.BadInput("argument %q must be an array of strings", key)
		}
		out = append(out, s)
	}
	return out, nil
}

type startTool struct {
	sessions  *session.Store
	rulebases *rulebase.Store
	weights   driver.ScoringWeights
}

func (t *startTool) Name() string        { return "start" }
func (t *startTool) Description() string { return "Start a new eligibility consultation over one or more visa goals." }
func (t *startTool) InputSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"goals": map[string]interface{}{
				"type":        "array",
				"items":       map[string]interface{}{"type": "string"},
				"description": "Goal facts to evaluate, e.g. [\"E-visa eligible\"]",
			},
		},
		"required": []string{"goals"},
	}
}

func (t *startTool) Execute(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	goals, err := stringSliceArg(args, "goals")
	if err != nil {
		return nil, err
	}
	model := t.rulebases.Current()
	id, nextQuestion, hasQuestion := t.sessions.Start(goals, model, t.weights)
	return map[string]interface{}{
		"session_id":        id,
		"next_question":     nextQuestion,
		"has_next_question": hasQuestion,
	}, nil
}

type answerTool struct {
	sessions *session.Store
}

func (t *answerTool) Name() string        { return "answer" }
func (t *answerTool) Description() string { return "Answer a fact within a session: yes, no, or unknown." }
func (t *answerTool) InputSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"session_id": map[string]interface{}{"type": "string"},
			"fact":       map[string]interface{}{"type": "string"},
			"answer":     map[string]interface{}{"type": "string", "enum": []string{"yes", "no", "unknown"}},
		},
		"required": []string{"session_id", "fact", "answer"},
	}
}

func (t *answerTool) Execute(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	id, err := stringArg(args, "session_id")
	if err != nil {
		return nil, err
	}
	fact, err := stringArg(args, "fact")
	if err != nil {
		return nil, err
	}
	answerStr, err := stringArg(args, "answer")
	if err != nil {
		return nil, err
	}
	result, err := t.sessions.Answer(id, fact, history.Answer(answerStr))
	if err != nil {
		return nil, err
	}
	return result, nil
}

type undoTool struct {
	sessions *session.Store
}

func (t *undoTool) Name() string        { return "undo" }
func (t *undoTool) Description() string { return "Undo the most recent answer in a session." }
func (t *undoTool) InputSchema() map[string]interface{} {
	return map[string]interface{}{
		"type":       "object",
		"properties": map[string]interface{}{"session_id": map[string]interface{}{"type": "string"}},
		"required":   []string{"session_id"},
	}
}

func (t *undoTool) Execute(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	id, err := stringArg(args, "session_id")
	if err != nil {
		return nil, err
	}
	result, err := t.sessions.Undo(id)
	if err != nil {
		return nil, err
	}
	return result, nil
}

type rulesViewTool struct {
	sessions *session.Store
}

func (t *rulesViewTool) Name() string        { return "rules_view" }
func (t *rulesViewTool) Description() string { return "Report the current status of every rule in a session." }
func (t *rulesViewTool) InputSchema() map[string]interface{} {
	return map[string]interface{}{
		"type":       "object",
		"properties": map[string]interface{}{"session_id": map[string]interface{}{"type": "string"}},
		"required":   []string{"session_id"},
	}
}

func (t *rulesViewTool) Execute(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	id, err := stringArg(args, "session_id")
	if err != nil {
		return nil, err
	}
	view, err := t.sessions.RulesView(id)
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(view))
	for ruleID, status := range view {
		out[fmt.Sprintf("%d", ruleID)] = string(status)
	}
	return out, nil
}

type workingMemoryViewTool struct {
	sessions *session.Store
}

func (t *workingMemoryViewTool) Name() string { return "working_memory_view" }
func (t *workingMemoryViewTool) Description() string {
	return "Report a session's findings, hypotheses, conflict set, and rule statuses."
}
func (t *workingMemoryViewTool) InputSchema() map[string]interface{} {
	return map[string]interface{}{
		"type":       "object",
		"properties": map[string]interface{}{"session_id": map[string]interface{}{"type": "string"}},
		"required":   []string{"session_id"},
	}
}

func (t *workingMemoryViewTool) Execute(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	id, err := stringArg(args, "session_id")
	if err != nil {
		return nil, err
	}
	view, err := t.sessions.WorkingMemoryView(id)
	if err != nil {
		return nil, err
	}
	return view, nil
}
