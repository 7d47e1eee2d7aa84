package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"annolint/internal/logging"
	"annolint/internal/report"
	"annolint/internal/task"
)

var auditFlags struct {
	project     string
	file        string
	cached      bool
	limit       int
	threshold   float64
	doubleCount bool
	markdown    bool
	outputPath  string
	apiBase     string
	apiKeyPath  string
	dbPath      string
}

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Run the quality checks over a batch of annotation tasks",
	Long: `Audit a batch of annotation tasks and print the flagged issues.

Tasks come from one of three sources, in priority order:
  --file=tasks.json    a local JSON dump
  --cached             the locally cached batch for --project
  --project=<name>     a fresh fetch from the platform

The platform API key is read from the key file (first line). The endpoint
defaults to the public API and can be overridden with --api-base-url or
$ANNOLINT_API_URL.`,
	RunE: runAudit,
}

func init() {
	f := auditCmd.Flags()
	f.StringVar(&auditFlags.project, "project", "", "Platform project to audit (default: $ANNOLINT_PROJECT)")
	f.StringVar(&auditFlags.file, "file", "", "Audit a local JSON task dump instead of fetching")
	f.BoolVar(&auditFlags.cached, "cached", false, "Audit the locally cached batch for the project")
	f.IntVar(&auditFlags.limit, "limit", 0, "Max tasks to fetch (0 = all)")
	f.Float64Var(&auditFlags.threshold, "threshold", 0, "Occlusion percentage threshold (default from config)")
	f.BoolVar(&auditFlags.doubleCount, "double-count", false, "Legacy mode: flag each overlapping pair in both directions")
	f.BoolVar(&auditFlags.markdown, "markdown", false, "Render the issue table as Markdown")
	f.StringVarP(&auditFlags.outputPath, "output", "o", "", "Write the report as JSON to this path")
	f.StringVar(&auditFlags.apiBase, "api-base-url", "", "Platform API endpoint (default: $ANNOLINT_API_URL)")
	f.StringVar(&auditFlags.apiKeyPath, "api-key", "", "Path to the platform API key file")
	f.StringVar(&auditFlags.dbPath, "db", "", "Task cache DB path (default from config)")
}

func runAudit(cmd *cobra.Command, _ []string) error {
	log := logging.New("audit")
	ctx := cmd.Context()

	threshold := auditFlags.threshold
	if threshold == 0 {
		threshold = cfg.OcclusionThreshold
	}
	doubleCount := auditFlags.doubleCount || cfg.DoubleCount

	var (
		tasks []task.Task
		err   error
	)
	switch {
	case auditFlags.file != "":
		tasks, err = loadTasksFile(auditFlags.file)
	case auditFlags.cached:
		tasks, err = loadCachedTasks()
	default:
		project := resolveProject(auditFlags.project)
		if project == "" {
			return fmt.Errorf("a task source is required: --file, --cached, or --project (or $ANNOLINT_PROJECT)")
		}
		client, cerr := newPlatformClient(resolveBaseURL(auditFlags.apiBase), auditFlags.apiKeyPath)
		if cerr != nil {
			return cerr
		}
		tasks, err = fetchPlatformTasks(ctx, client, project, auditFlags.limit)
	}
	if err != nil {
		return err
	}

	log.Info("auditing batch", "tasks", len(tasks))

	ev := newEvaluator(threshold, doubleCount)
	rep, err := ev.Evaluate(ctx, tasks)
	if err != nil {
		return fmt.Errorf("audit aborted: %w", err)
	}

	mode := report.ASCII
	if auditFlags.markdown {
		mode = report.Markdown
	}
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, report.Summary(rep))
	if table := report.Render(rep, mode); table != "" {
		fmt.Fprintln(out)
		fmt.Fprintln(out, table)
	}

	if auditFlags.outputPath != "" {
		data, err := json.MarshalIndent(rep, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal report: %w", err)
		}
		if err := os.WriteFile(auditFlags.outputPath, append(data, '\n'), 0o644); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
		log.Info("report written", "path", auditFlags.outputPath)
	}
	return nil
}

func loadCachedTasks() ([]task.Task, error) {
	project := resolveProject(auditFlags.project)
	if project == "" {
		return nil, fmt.Errorf("--cached requires --project (or $ANNOLINT_PROJECT)")
	}
	st, err := openStore(auditFlags.dbPath)
	if err != nil {
		return nil, err
	}
	defer st.Close()
	tasks, err := st.GetBatch(project)
	if err != nil {
		return nil, fmt.Errorf("cached batch for %q: %w (run 'annolint fetch' first)", project, err)
	}
	return tasks, nil
}
