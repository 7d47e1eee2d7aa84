// Package mcp exposes the auditor over the Model Context Protocol so agent
// tooling can run audits and inspect the palette classifier directly.
package mcp

import (
	"context"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"annolint/internal/check"
	"annolint/internal/logging"
	"annolint/internal/task"
)

// TaskSource supplies the tasks to audit, typically backed by the platform
// client or the local task cache.
type TaskSource interface {
	FetchTasks(ctx context.Context, project string, limit int) ([]task.Task, error)
}

// TaskSourceFunc adapts a function to TaskSource.
type TaskSourceFunc func(ctx context.Context, project string, limit int) ([]task.Task, error)

// FetchTasks implements TaskSource.
func (f TaskSourceFunc) FetchTasks(ctx context.Context, project string, limit int) ([]task.Task, error) {
	return f(ctx, project, limit)
}

// Server wraps the MCP SDK server with the audit tools.
type Server struct {
	MCPServer *sdkmcp.Server

	source    TaskSource
	evaluator *check.Evaluator
}

// NewServer creates an MCP server whose audit_tasks tool fetches work from
// source and evaluates it with ev.
func NewServer(source TaskSource, ev *check.Evaluator, version string) *Server {
	s := &Server{source: source, evaluator: ev}
	s.MCPServer = sdkmcp.NewServer(
		&sdkmcp.Implementation{Name: "annolint", Version: version},
		nil,
	)
	s.registerTools()
	return s
}

// Run serves MCP over the given transport until ctx is cancelled.
func (s *Server) Run(ctx context.Context, transport sdkmcp.Transport) error {
	logging.New("mcp").Info("starting annolint MCP server")
	return s.MCPServer.Run(ctx, transport)
}

func (s *Server) registerTools() {
	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "audit_tasks",
		Description: "Fetch a project's annotation tasks and run the quality checks. Returns the full issue report.",
	}, s.handleAuditTasks)

	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "classify_color",
		Description: "Classify an RGB color to the nearest entry of the audit palette (white, red, green, blue).",
	}, s.handleClassifyColor)
}

// --- Tool input/output types ---

type auditTasksInput struct {
	Project string `json:"project" jsonschema:"platform project to audit"`
	Limit   int    `json:"limit,omitempty" jsonschema:"max tasks to fetch (0 = all)"`
}

type auditTasksOutput struct {
	Tasks  int          `json:"tasks"`
	Report check.Report `json:"report"`
}

type classifyColorInput struct {
	R uint8 `json:"r" jsonschema:"red channel 0-255"`
	G uint8 `json:"g" jsonschema:"green channel 0-255"`
	B uint8 `json:"b" jsonschema:"blue channel 0-255"`
}

type classifyColorOutput struct {
	Name string `json:"name"`
}

func (s *Server) handleAuditTasks(ctx context.Context, _ *sdkmcp.CallToolRequest, input auditTasksInput) (*sdkmcp.CallToolResult, auditTasksOutput, error) {
	if input.Project == "" {
		return nil, auditTasksOutput{}, fmt.Errorf("project is required")
	}

	tasks, err := s.source.FetchTasks(ctx, input.Project, input.Limit)
	if err != nil {
		return nil, auditTasksOutput{}, fmt.Errorf("fetch tasks: %w", err)
	}

	report, err := s.evaluator.Evaluate(ctx, tasks)
	if err != nil {
		return nil, auditTasksOutput{}, fmt.Errorf("audit: %w", err)
	}

	return nil, auditTasksOutput{Tasks: len(tasks), Report: *report}, nil
}

func (s *Server) handleClassifyColor(ctx context.Context, _ *sdkmcp.CallToolRequest, input classifyColorInput) (*sdkmcp.CallToolResult, classifyColorOutput, error) {
	name := check.ClosestColor(check.DefaultPalette(), check.RGB{R: input.R, G: input.G, B: input.B})
	return nil, classifyColorOutput{Name: name}, nil
}
