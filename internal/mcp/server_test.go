package mcp_test

import (
	"context"
	"encoding/json"
	"testing"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"annolint/internal/check"
	"annolint/internal/imagery"
	mcpserver "annolint/internal/mcp"
	"annolint/internal/task"
)

func fixtureSource() mcpserver.TaskSource {
	return mcpserver.TaskSourceFunc(func(ctx context.Context, project string, limit int) ([]task.Task, error) {
		return []task.Task{{
			ID:       "task-1",
			ImageURL: "http://img.example/1.png",
			Annotations: []task.Annotation{{
				ID: "a", Label: "car", Width: 3, Height: 3,
				Attributes: task.Attributes{Occlusion: "0%", BackgroundColor: "yellow"},
			}},
		}}, nil
	})
}

func connectInMemory(t *testing.T, ctx context.Context, srv *mcpserver.Server) *sdkmcp.ClientSession {
	t.Helper()
	t1, t2 := sdkmcp.NewInMemoryTransports()
	serverSession, err := srv.MCPServer.Connect(ctx, t1, nil)
	if err != nil {
		t.Fatalf("server.Connect: %v", err)
	}
	t.Cleanup(func() { serverSession.Close() })

	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "test-client", Version: "v0.0.1"}, nil)
	session, err := client.Connect(ctx, t2, nil)
	if err != nil {
		t.Fatalf("client.Connect: %v", err)
	}
	t.Cleanup(func() { session.Close() })
	return session
}

func callTool(t *testing.T, ctx context.Context, session *sdkmcp.ClientSession, name string, args map[string]any) map[string]any {
	t.Helper()
	res, err := session.CallTool(ctx, &sdkmcp.CallToolParams{Name: name, Arguments: args})
	if err != nil {
		t.Fatalf("CallTool(%s): %v", name, err)
	}
	if res.IsError {
		t.Fatalf("CallTool(%s) returned tool error: %+v", name, res.Content)
	}

	out, err := json.Marshal(res.StructuredContent)
	if err != nil {
		t.Fatalf("marshal structured content: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(out, &m); err != nil {
		t.Fatalf("unmarshal structured content: %v", err)
	}
	return m
}

func newTestServer() *mcpserver.Server {
	ev := check.NewDefaultEvaluator(&imagery.StubSource{})
	return mcpserver.NewServer(fixtureSource(), ev, "test")
}

func TestAuditTasks_ReturnsReport(t *testing.T) {
	ctx := context.Background()
	session := connectInMemory(t, ctx, newTestServer())

	out := callTool(t, ctx, session, "audit_tasks", map[string]any{"project": "traffic"})

	if got := out["tasks"].(float64); got != 1 {
		t.Errorf("tasks: got %v want 1", got)
	}
	rep := out["report"].(map[string]any)
	if got := rep["count"].(float64); got != 1 {
		t.Errorf("report.count: got %v want 1", got)
	}
	flagged := rep["flagged"].([]any)
	first := flagged[0].(map[string]any)
	if first["type"] != "stray_click" {
		t.Errorf("issue type: got %v want stray_click", first["type"])
	}
}

func TestAuditTasks_RequiresProject(t *testing.T) {
	ctx := context.Background()
	session := connectInMemory(t, ctx, newTestServer())

	res, err := session.CallTool(ctx, &sdkmcp.CallToolParams{
		Name:      "audit_tasks",
		Arguments: map[string]any{},
	})
	if err == nil && (res == nil || !res.IsError) {
		t.Fatal("expected error for missing project")
	}
}

func TestClassifyColor(t *testing.T) {
	ctx := context.Background()
	session := connectInMemory(t, ctx, newTestServer())

	out := callTool(t, ctx, session, "classify_color", map[string]any{"r": 200, "g": 30, "b": 30})
	if out["name"] != "red" {
		t.Errorf("name: got %v want red", out["name"])
	}
}
