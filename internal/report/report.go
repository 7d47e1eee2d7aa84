// Package report renders a check report for humans. Serialization for
// machines is plain JSON on the check.Report value itself.
package report

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"annolint/internal/check"
)

// Mode controls the output format.
type Mode int

const (
	ASCII    Mode = iota // Fixed-width terminal tables
	Markdown             // GitHub-flavoured Markdown tables
)

// Summary returns the one-line header for a report.
func Summary(r *check.Report) string {
	names := make([]string, 0, len(r.Types))
	for _, t := range r.Types {
		names = append(names, string(t))
	}
	return fmt.Sprintf("Found %d potential issues of types: [%s]",
		r.Count, strings.Join(names, ", "))
}

// Render returns the flagged issues as a table in the given mode.
// An empty report renders as an empty string.
func Render(r *check.Report, m Mode) string {
	if len(r.Flagged) == 0 {
		return ""
	}

	w := table.NewWriter()
	if m == ASCII {
		w.SetStyle(table.StyleLight)
	}
	w.AppendHeader(table.Row{"Type", "Severity", "Annotations", "Task", "Explanation"})
	for _, is := range r.Flagged {
		w.AppendRow(table.Row{
			string(is.Type),
			is.Severity,
			strings.Join(is.Annotations, ", "),
			is.TaskID,
			is.Explanation,
		})
	}
	w.AppendFooter(table.Row{"total", r.Count, "", "", ""})
	w.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 5, WidthMax: 60},
	})

	if m == Markdown {
		return w.RenderMarkdown()
	}
	return w.Render()
}
