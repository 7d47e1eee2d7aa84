package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"annolint/internal/logging"
)

var fetchFlags struct {
	project    string
	limit      int
	apiBase    string
	apiKeyPath string
	dbPath     string
}

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch a project's tasks from the platform and cache them locally",
	RunE:  runFetch,
}

func init() {
	f := fetchCmd.Flags()
	f.StringVar(&fetchFlags.project, "project", "", "Platform project to fetch (default: $ANNOLINT_PROJECT)")
	f.IntVar(&fetchFlags.limit, "limit", 0, "Max tasks to fetch (0 = all)")
	f.StringVar(&fetchFlags.apiBase, "api-base-url", "", "Platform API endpoint (default: $ANNOLINT_API_URL)")
	f.StringVar(&fetchFlags.apiKeyPath, "api-key", "", "Path to the platform API key file")
	f.StringVar(&fetchFlags.dbPath, "db", "", "Task cache DB path (default from config)")
}

func runFetch(cmd *cobra.Command, _ []string) error {
	log := logging.New("fetch")

	project := resolveProject(fetchFlags.project)
	if project == "" {
		return fmt.Errorf("--project is required (or set $ANNOLINT_PROJECT)")
	}

	client, err := newPlatformClient(resolveBaseURL(fetchFlags.apiBase), fetchFlags.apiKeyPath)
	if err != nil {
		return err
	}

	tasks, err := fetchPlatformTasks(cmd.Context(), client, project, fetchFlags.limit)
	if err != nil {
		return fmt.Errorf("fetch tasks: %w", err)
	}

	st, err := openStore(fetchFlags.dbPath)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.SaveBatch(project, tasks); err != nil {
		return fmt.Errorf("cache batch: %w", err)
	}

	log.Info("batch cached", "project", project, "tasks", len(tasks))
	fmt.Fprintf(cmd.OutOrStdout(), "Cached %d tasks for project %q\n", len(tasks), project)
	return nil
}
