package main

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"annolint/internal/mcp"
	"annolint/internal/task"
)

var serveFlags struct {
	apiBase    string
	apiKeyPath string
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the auditor as an MCP server over stdio",
	Long: `Expose the audit tools over the Model Context Protocol on stdin/stdout,
for use from agent tooling. The audit_tasks tool fetches a project's
completed tasks from the platform and returns the issue report.`,
	RunE: runServe,
}

func init() {
	f := serveCmd.Flags()
	f.StringVar(&serveFlags.apiBase, "api-base-url", "", "Platform API endpoint (default: $ANNOLINT_API_URL)")
	f.StringVar(&serveFlags.apiKeyPath, "api-key", "", "Path to the platform API key file")
}

func runServe(cmd *cobra.Command, _ []string) error {
	client, err := newPlatformClient(resolveBaseURL(serveFlags.apiBase), serveFlags.apiKeyPath)
	if err != nil {
		return err
	}

	source := mcp.TaskSourceFunc(func(ctx context.Context, project string, limit int) ([]task.Task, error) {
		return fetchPlatformTasks(ctx, client, project, limit)
	})
	srv := mcp.NewServer(source, newEvaluator(cfg.OcclusionThreshold, cfg.DoubleCount), version)
	return srv.Run(cmd.Context(), &sdkmcp.StdioTransport{})
}
