// Package mcpserver exposes the session API (spec.md §6) over the Model
// Context Protocol, using the same NewMCPServer/registerAllTools/Tool
// pattern as the browser-automation example's internal/mcp package
// (SPEC_FULL.md §11.3). It is a thin adapter: every tool delegates
// straight to internal/session: all inference logic lives there.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/mark3labs/mcp-go/mcp"
	mcpgoserver "github.com/mark3labs/mcp-go/server"

	"visaexpert/internal/driver"
	"visaexpert/internal/rulebase"
	"visaexpert/internal/session"
)

// Tool describes the contract every session operation implements.
type Tool interface {
	Name() string
	Description() string
	InputSchema() map[string]interface{}
	Execute(ctx context.Context, args map[string]interface{}) (interface{}, error)
}

// Server wires the MCP runtime to a session store and the rule-base
// store its "start" tool reads from.
type Server struct {
	sessions  *session.Store
	rulebases *rulebase.Store
	weights   driver.ScoringWeights
	tools     map[string]Tool
	mcpServer *mcpgoserver.MCPServer
}

// NewServer constructs the visa-expert MCP server and registers its five
// tools: start, answer, undo, rules_view, working_memory_view. weights is
// the same §4.3.1 question-scoring configuration the `consult` CLI path
// uses, so the MCP surface and the stdin/stdout surface pick the same
// next question given the same working memory.
func NewServer(name, version string, sessions *session.Store, rulebases *rulebase.Store, weights driver.ScoringWeights) *Server {
	mcpSrv := mcpgoserver.NewMCPServer(
		name, version,
		mcpgoserver.WithToolCapabilities(true),
		mcpgoserver.WithLogging(),
		mcpgoserver.WithRecovery(),
	)

	s := &Server{
		sessions:  sessions,
		rulebases: rulebases,
		weights:   weights,
		tools:     make(map[string]Tool),
		mcpServer: mcpSrv,
	}
	s.registerAllTools()
	return s
}

func (s *Server) registerAllTools() {
	s.registerTool(&startTool{sessions: s.sessions, rulebases: s.rulebases, weights: s.weights})
	s.registerTool(&answerTool{sessions: s.sessions})
	s.registerTool(&undoTool{sessions: s.sessions})
	s.registerTool(&rulesViewTool{sessions: s.sessions})
	s.registerTool(&workingMemoryViewTool{sessions: s.sessions})
}

func (s *Server) registerTool(tool Tool) {
	s.tools[tool.Name()] = tool

	schema, err := json.Marshal(tool.InputSchema())
	if err != nil {
		schema = json.RawMessage(`{"type":"object"}`)
	}

	mcpTool := mcp.NewToolWithRawSchema(tool.Name(), tool.Description(), schema)
	s.mcpServer.AddTool(mcpTool, s.wrapTool(tool))
}

func (s *Server) wrapTool(tool Tool) mcpgoserver.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		if args == nil {
			args = map[string]interface{}{}
		}

		result, err := tool.Execute(ctx, args)
		if err != nil {
			return &mcp.CallToolResult{
				Content: []mcp.Content{mcp.NewTextContent(fmt.Sprintf("tool %s failed: %v", tool.Name(), err))},
				IsError: true,
			}, nil
		}

		payload, marshalErr := json.Marshal(result)
		if marshalErr != nil {
			payload = []byte(fmt.Sprintf(`{"error":"tool %s returned non-serializable payload"}`, tool.Name()))
		}
		return &mcp.CallToolResult{
			Content: []mcp.Content{mcp.NewTextContent(string(payload))},
			IsError: false,
		}, nil
	}
}

// ExecuteTool runs a tool directly, bypassing the MCP transport, through
// the same Execute path stdio agents get.
func (s *Server) ExecuteTool(name string, args map[string]interface{}) (interface{}, error) {
	tool, ok := s.tools[name]
	if !ok {
		return nil, fmt.Errorf("tool not found: %s", name)
	}
	return tool.Execute(context.Background(), args)
}

// Start runs the server over stdio, the default transport MCP-speaking
// CLI agents expect.
func (s *Server) Start(ctx context.Context, stdin io.Reader, stdout io.Writer) error {
	stdio := mcpgoserver.NewStdioServer(s.mcpServer)
	return stdio.Listen(ctx, stdin, stdout)
}
