package main

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var tasksFlags struct {
	dbPath string
}

var tasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "List the locally cached task batches",
	RunE:  runTasks,
}

func init() {
	tasksCmd.Flags().StringVar(&tasksFlags.dbPath, "db", "", "Task cache DB path (default from config)")
}

func runTasks(cmd *cobra.Command, _ []string) error {
	st, err := openStore(tasksFlags.dbPath)
	if err != nil {
		return err
	}
	defer st.Close()

	batches, err := st.ListBatches()
	if err != nil {
		return fmt.Errorf("list batches: %w", err)
	}
	if len(batches) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No cached batches. Run 'annolint fetch' first.")
		return nil
	}

	w := table.NewWriter()
	w.SetStyle(table.StyleLight)
	w.AppendHeader(table.Row{"Project", "Tasks", "Fetched"})
	for _, b := range batches {
		w.AppendRow(table.Row{b.Project, b.Tasks, b.FetchedAt.Format("2006-01-02 15:04:05 MST")})
	}
	fmt.Fprintln(cmd.OutOrStdout(), w.Render())
	return nil
}
