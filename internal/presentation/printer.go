package presentation

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"phorg/internal/domain"
	appErrors "phorg/internal/errors"
)

var (
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#E85D75")).Bold(true)
	movedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#85DCB0"))
)

// Printer renders a run as plain lines, for pipes and --plain.
type Printer struct {
	Writer  io.Writer
	Verbose bool
	// Root is trimmed from printed target paths.
	Root string
}

func (p Printer) PrintStart(dryRun bool) {
	if dryRun {
		fmt.Fprintln(p.Writer, "Organizing your library (dry run, nothing will be moved)...")
		return
	}
	fmt.Fprintln(p.Writer, "Organizing your library...")
}

// PrintResult prints a highlighted warning for every invalid or failed entry
// and, in verbose mode, one line per moved file.
func (p Printer) PrintResult(result domain.Result) {
	if result.Err != nil {
		fmt.Fprintln(p.Writer, warningStyle.Render(appErrors.UserMessage(result.Err)))
		return
	}
	if !p.Verbose {
		return
	}
	fmt.Fprintln(p.Writer, movedStyle.Render(fmt.Sprintf("%s -> %s", result.Name, p.relative(result.TargetPath))))
}

func (p Printer) PrintProgress(current, total int) {
	if !p.Verbose || total == 0 {
		return
	}
	fmt.Fprintf(p.Writer, "[%d/%d]\n", current, total)
}

func (p Printer) PrintSummary(report domain.Report) {
	movedLabel := "Moved"
	if report.DryRun {
		movedLabel = "Would move"
	}
	rows := [][]string{
		{movedLabel, strconv.Itoa(report.Moved)},
		{"Invalid", strconv.Itoa(report.Invalid)},
		{"Failed", strconv.Itoa(report.Failed)},
		{"Ignored", strconv.Itoa(report.Ignored)},
	}
	fmt.Fprintln(p.Writer)
	fmt.Fprintln(p.Writer, renderTable([]string{"Result", "Files"}, rows))

	problems := report.Problems()
	if len(problems) == 0 {
		return
	}
	fmt.Fprintln(p.Writer)
	fmt.Fprintln(p.Writer, "Left untouched:")
	for _, res := range problems {
		fmt.Fprintf(p.Writer, "- %s\n", res.Name)
	}
}

func (p Printer) relative(path string) string {
	if p.Root == "" {
		return path
	}
	rel, err := filepath.Rel(p.Root, path)
	if err != nil {
		return path
	}
	return rel
}

func renderTable(headers []string, rows [][]string) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, len(headers))
		for i := range headers {
			if i < len(row) {
				r[i] = row[i]
			}
		}
		tw.AppendRow(r)
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft},
		{Number: 2, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})
	return tw.Render()
}
