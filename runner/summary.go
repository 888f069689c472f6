package runner

import (
	"io"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
)

// PrintSummary renders one row per ASIN and a total line
func PrintSummary(w io.Writer, results []Result) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"ASIN", "Domain", "Mock", "Reviews", "Time", "Status"})

	total := 0
	for _, res := range results {
		total += res.Records
		t.AppendRow(table.Row{res.ASIN, res.DomainCode, res.Mock, res.Records, res.Duration.Round(time.Millisecond), res.Status()})
	}
	t.AppendFooter(table.Row{"", "", "", total, "", ""})

	t.SetStyle(table.StyleRounded)
	t.Render()
}
