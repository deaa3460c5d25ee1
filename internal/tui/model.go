package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"phorg/internal/domain"
	appErrors "phorg/internal/errors"
)

// Phase represents the current state of the TUI
type Phase int

const (
	PhaseOrganizing Phase = iota
	PhaseDone
	PhaseError
)

// Messages sent by the organizer goroutine.
type (
	ProgressMsg struct {
		Current int
		Total   int
	}
	ResultMsg struct {
		Result domain.Result
	}
	DoneMsg struct {
		Report domain.Report
	}
	ErrorMsg struct {
		Err error
	}
	tickMsg time.Time
)

// maxWarnings is how many warnings stay on screen; older ones scroll away.
const maxWarnings = 8

type Config struct {
	LibraryDir string
	DryRun     bool
	Verbose    bool
	// Cancel stops the organizer when the user quits early.
	Cancel func()
}

type Model struct {
	config      Config
	Phase       Phase
	Report      domain.Report
	spinner     spinner.Model
	progress    progress.Model
	current     int
	total       int
	currentFile string
	warnings    []string
	warnCount   int
	Err         error
	Quitting    bool
	width       int
}

func NewModel(cfg Config) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle

	p := progress.New(
		progress.WithDefaultGradient(),
		progress.WithWidth(50),
		progress.WithoutPercentage(),
	)

	return Model{
		config:   cfg,
		Phase:    PhaseOrganizing,
		spinner:  s,
		progress: p,
		width:    80,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, tickCmd())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.progress.Width = min(msg.Width-20, 60)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			if m.Phase == PhaseOrganizing && m.config.Cancel != nil {
				m.config.Cancel()
			}
			m.Quitting = true
			return m, tea.Quit
		case "enter":
			if m.Phase == PhaseDone || m.Phase == PhaseError {
				return m, tea.Quit
			}
		}

	case ProgressMsg:
		m.current = msg.Current
		m.total = msg.Total
		return m, nil

	case ResultMsg:
		m.currentFile = msg.Result.Name
		if msg.Result.Err != nil {
			m.warnCount++
			m.warnings = append(m.warnings, appErrors.UserMessage(msg.Result.Err))
			if len(m.warnings) > maxWarnings {
				m.warnings = m.warnings[len(m.warnings)-maxWarnings:]
			}
		}
		return m, nil

	case DoneMsg:
		m.Phase = PhaseDone
		m.Report = msg.Report
		return m, nil

	case ErrorMsg:
		m.Phase = PhaseError
		m.Err = msg.Err
		return m, nil

	case spinner.TickMsg:
		if m.Phase == PhaseOrganizing {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		return m, cmd

	case tickMsg:
		if m.Phase == PhaseOrganizing {
			var cmds []tea.Cmd
			if m.total > 0 {
				cmds = append(cmds, m.progress.SetPercent(m.percent()))
			}
			cmds = append(cmds, tickCmd())
			return m, tea.Batch(cmds...)
		}
	}

	return m, nil
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Millisecond*100, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) percent() float64 {
	if m.total == 0 {
		return 0
	}
	return float64(m.current) / float64(m.total)
}

func (m Model) View() string {
	if m.Quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")

	switch m.Phase {
	case PhaseOrganizing:
		b.WriteString(m.renderProgress())
	case PhaseDone:
		b.WriteString(m.renderSummary())
	case PhaseError:
		b.WriteString(m.renderError())
	}

	if len(m.warnings) > 0 && m.Phase != PhaseError {
		b.WriteString("\n")
		b.WriteString(m.renderWarnings())
	}

	b.WriteString("\n")
	b.WriteString(m.renderHelp())

	return b.String()
}

func (m Model) renderHeader() string {
	title := titleStyle.Render("📷 Phorg")
	subtitle := subtitleStyle.Render("Photos and videos, filed by the day they were taken")

	lines := []string{
		title,
		subtitle,
		"",
		dimStyle.Render(fmt.Sprintf("%s Library: %s", iconFolder, shortenPath(m.config.LibraryDir))),
	}
	if m.config.DryRun {
		lines = append(lines, warningStyle.Render("Dry run: nothing will be moved"))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) renderProgress() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("%s Organizing your library...\n\n", m.spinner.View()))
	if m.total == 0 {
		return b.String()
	}

	percent := m.percent()
	b.WriteString(fmt.Sprintf("  %s\n", m.progress.ViewAs(percent)))
	b.WriteString(fmt.Sprintf("  %s %s\n",
		countStyle.Render(fmt.Sprintf("%d/%d", m.current, m.total)),
		dimStyle.Render(fmt.Sprintf("(%.0f%%)", percent*100)),
	))

	if m.currentFile != "" {
		b.WriteString(fmt.Sprintf("\n  %s %s\n", iconArrow, fileNameStyle.Render(m.currentFile)))
	}
	return b.String()
}

func (m Model) renderSummary() string {
	var b strings.Builder

	b.WriteString(sectionStyle.Render("Summary"))
	b.WriteString("\n\n")

	movedLabel := "Moved:"
	if m.Report.DryRun {
		movedLabel = "Would move:"
	}
	b.WriteString(fmt.Sprintf("  %s  %s\n", statLabelStyle.Render(movedLabel), successStyle.Render(fmt.Sprintf("%s %d", iconSuccess, m.Report.Moved))))
	b.WriteString(fmt.Sprintf("  %s  %s\n", statLabelStyle.Render("Invalid:"), warningStyle.Render(fmt.Sprintf("%s %d", iconWarning, m.Report.Invalid))))
	b.WriteString(fmt.Sprintf("  %s  %s\n", statLabelStyle.Render("Failed:"), warningStyle.Render(fmt.Sprintf("%s %d", iconWarning, m.Report.Failed))))
	b.WriteString(fmt.Sprintf("  %s  %s\n", statLabelStyle.Render("Ignored:"), dimStyle.Render(fmt.Sprintf("%d", m.Report.Ignored))))
	b.WriteString(fmt.Sprintf("  %s  %s\n", statLabelStyle.Render("Total:"), statValueStyle.Render(fmt.Sprintf("%d entries", m.Report.Moved+m.Report.Invalid+m.Report.Failed+m.Report.Ignored))))

	if m.Report.DryRun {
		b.WriteString("\n")
		b.WriteString(highlightBoxStyle.Render("🔍 Dry Run - No files were moved"))
	}
	return b.String()
}

func (m Model) renderWarnings() string {
	var b strings.Builder
	b.WriteString(warningStyle.Render(fmt.Sprintf("%s Left untouched (%d)", iconWarning, m.warnCount)))
	b.WriteString("\n")
	if hidden := m.warnCount - len(m.warnings); hidden > 0 {
		b.WriteString(dimStyle.Render(fmt.Sprintf("  ... %d earlier", hidden)))
		b.WriteString("\n")
	}
	for _, w := range m.warnings {
		b.WriteString(fmt.Sprintf("  %s\n", errorStyle.Render(w)))
	}
	return b.String()
}

func (m Model) renderError() string {
	icon := errorStyle.Render(iconError)
	msg := errorStyle.Render(fmt.Sprintf("Error: %s", appErrors.UserMessage(m.Err)))

	return highlightBoxStyle.
		BorderForeground(errorColor).
		Render(fmt.Sprintf("%s %s", icon, msg))
}

func (m Model) renderHelp() string {
	var help string
	switch m.Phase {
	case PhaseOrganizing:
		help = "Press q to stop after the current file"
	case PhaseDone:
		help = "Press Enter to exit"
	case PhaseError:
		help = "Press Enter or q to exit"
	}
	return helpStyle.Render(help)
}

// shortenPath replaces the home directory prefix with ~ for display
func shortenPath(path string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	if rel, err := filepath.Rel(home, path); err == nil && !strings.HasPrefix(rel, "..") {
		return filepath.Join("~", rel)
	}
	return path
}
