package controller

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	m "truthcheck.dev/pkg/truthcheck/internal/model"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1).Border(lipgloss.RoundedBorder())
	footerStyle = lipgloss.NewStyle().Faint(true)
)

// TUI shows stored reports in a scrollable Bubble Tea viewer. Progress
// output during a run is delegated to SimpleUI.
type TUI struct {
	*SimpleUI

	input  io.Reader
	output io.Writer
}

// NewTUI creates a TUI reading keys from input and drawing to output.
func NewTUI(simple *SimpleUI, input io.Reader, output io.Writer) *TUI {
	return &TUI{SimpleUI: simple, input: input, output: output}
}

// ShowReport opens the report viewer and blocks until the user quits.
func (t *TUI) ShowReport(ctx context.Context, report m.Report) error {
	program := tea.NewProgram(
		newReportModel(report),
		tea.WithContext(ctx),
		tea.WithInput(t.input),
		tea.WithOutput(t.output),
		tea.WithAltScreen(),
	)

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("report viewer: %w", err)
	}

	return nil
}

// reportModel is the Bubble Tea model of the report viewer.
type reportModel struct {
	title    string
	content  string
	viewport viewport.Model
	ready    bool
	quitting bool
}

func newReportModel(report m.Report) reportModel {
	var b strings.Builder

	b.WriteString(reportHeader(report))

	if len(report.SceneDiffs) == 0 {
		b.WriteString("No scenegraph differences detected.\n")
	} else {
		b.WriteString(renderDiffTable(report.SceneDiffs))
	}

	fmt.Fprintf(&b, "\n%s\n%s\n", scoreLine(report, ""), verdictLine(report.Verdict))

	return reportModel{
		title:   "truthcheck report " + report.Verdict.Status.String(),
		content: b.String(),
	}
}

func (rm reportModel) Init() tea.Cmd {
	return nil
}

func (rm reportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		height := max(1, msg.Height-rm.chromeHeight())

		if !rm.ready {
			rm.viewport = viewport.New(msg.Width, height)
			rm.viewport.SetContent(rm.content)
			rm.ready = true
		} else {
			rm.viewport.Width = msg.Width
			rm.viewport.Height = height
		}

		return rm, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			rm.quitting = true
			return rm, tea.Quit
		}
	}

	var cmd tea.Cmd

	rm.viewport, cmd = rm.viewport.Update(msg)

	return rm, cmd
}

func (rm reportModel) chromeHeight() int {
	return lipgloss.Height(rm.headerView()) + lipgloss.Height(rm.footerView())
}

func (rm reportModel) headerView() string {
	return titleStyle.Render(rm.title)
}

func (rm reportModel) footerView() string {
	return footerStyle.Render(fmt.Sprintf("↑/↓ scroll • q quit • %3.f%%", rm.viewport.ScrollPercent()*100))
}

func (rm reportModel) View() string {
	if rm.quitting {
		return ""
	}

	if !rm.ready {
		return "loading report..."
	}

	return rm.headerView() + "\n" + rm.viewport.View() + "\n" + rm.footerView()
}
