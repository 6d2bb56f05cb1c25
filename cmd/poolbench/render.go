package main

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/utkarsh5026/objectpool/benchmarks"
)

var (
	bold  = color.New(color.Bold)
	green = color.New(color.FgGreen)
	cyan  = color.New(color.FgCyan)
)

// renderReport writes the ranked results table followed by a short footer.
func renderReport(w io.Writer, report *benchmarks.Report) error {
	if len(report.Rows) == 0 {
		return fmt.Errorf("no variants were benchmarked")
	}

	printSectionHeader(w, "OBJECT POOL COMPARISON",
		fmt.Sprintf("size=%d  repeat=%d  workers=%d  pinned=%v",
			report.Config.Size, report.Repeats, report.Config.Workers, report.Config.Pin),
		"Times are summed over all repeats (lower is better)")

	header := []any{"Rank", "Variant"}
	for _, phase := range benchmarks.Phases {
		header = append(header, phase)
	}
	header = append(header, "Total", "vs Fastest")

	table := tablewriter.NewWriter(w)
	table.Header(header...)

	fastest := report.Fastest()
	for _, row := range report.Rows {
		cells := []any{rankIcon(row.Rank), row.Variant}
		for _, phase := range benchmarks.Phases {
			cells = append(cells, formatDuration(row.Phases[phase]))
		}
		cells = append(cells, formatDuration(row.Total), vsFastest(row.Total, fastest, row.Rank))
		_ = table.Append(cells...)
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("rendering results table: %w", err)
	}

	fmt.Fprintln(w)
	colorPrintf(w, green, "✅ Fastest: %s (%s)\n", report.Rows[0].Variant, formatDuration(fastest))
	return nil
}

func renderList(w io.Writer, names []string) {
	colorPrintLn(w, bold, "Available pool variants:")
	for _, name := range names {
		colorPrintf(w, cyan, "  - %s\n", name)
	}
}

func rankIcon(rank int) string {
	switch rank {
	case 1:
		return "🥇"
	case 2:
		return "🥈"
	case 3:
		return "🥉"
	default:
		return fmt.Sprintf("%d", rank)
	}
}

func vsFastest(total, fastest time.Duration, rank int) string {
	if rank == 1 || fastest <= 0 {
		return "baseline"
	}
	return fmt.Sprintf("%.2fx", float64(total)/float64(fastest))
}

// formatDuration formats a duration in the most appropriate unit
func formatDuration(d time.Duration) string {
	ns := d.Nanoseconds()

	switch {
	case ns == 0:
		return "0"
	case ns < 1000:
		return fmt.Sprintf("%dns", ns)
	case ns < 1_000_000:
		return fmt.Sprintf("%.1fµs", float64(ns)/1000.0)
	case ns < 1_000_000_000:
		return fmt.Sprintf("%.2fms", float64(ns)/1_000_000.0)
	default:
		return fmt.Sprintf("%.2fs", float64(ns)/1_000_000_000.0)
	}
}

func printSectionHeader(w io.Writer, title string, descriptions ...string) {
	fmt.Fprintln(w)
	colorPrintLn(w, bold, "═══════════════════════════════════════════════════════════")
	colorPrintLn(w, bold, title)
	colorPrintLn(w, bold, "═══════════════════════════════════════════════════════════")
	for _, desc := range descriptions {
		fmt.Fprintln(w, desc)
	}
	fmt.Fprintln(w)
}

func colorPrintLn(w io.Writer, c *color.Color, a ...any) {
	_, _ = c.Fprintln(w, a...)
}

func colorPrintf(w io.Writer, c *color.Color, format string, a ...any) {
	_, _ = c.Fprintf(w, format, a...)
}
