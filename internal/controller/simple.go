package controller

import (
	"bytes"
	"context"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	m "truthcheck.dev/pkg/truthcheck/internal/model"
)

var (
	passStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))
	failStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1"))
	stepStyle = lipgloss.NewStyle().Faint(true)
)

// SimpleUI writes plain progress lines and tables to the command output.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// DisplayStep announces a pipeline stage.
func (s *SimpleUI) DisplayStep(ctx context.Context, step Step) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("%s\n", stepStyle.Render("» "+string(step)))
}

// DisplayDiffs prints the structural differences as a table.
func (s *SimpleUI) DisplayDiffs(ctx context.Context, diffs m.DiffSet) {
	if err := ctx.Err(); err != nil {
		return
	}

	if len(diffs) == 0 {
		s.printf("No scenegraph differences detected.\n")
		return
	}

	s.printf("\n%s", renderDiffTable(diffs))
}

// DisplaySummary prints the score line and the verdict.
func (s *SimpleUI) DisplaySummary(ctx context.Context, report m.Report, htmlReport m.Path) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("%s\n", scoreLine(report, htmlReport))
	s.printf("%s\n", verdictLine(report.Verdict))
}

// ShowReport prints a stored report.
func (s *SimpleUI) ShowReport(ctx context.Context, report m.Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("%s", reportHeader(report))

	if len(report.SceneDiffs) == 0 {
		s.printf("No scenegraph differences detected.\n")
	} else {
		s.printf("%s", renderDiffTable(report.SceneDiffs))
	}

	s.printf("\n%s\n%s\n", scoreLine(report, ""), verdictLine(report.Verdict))

	return nil
}

func reportHeader(report m.Report) string {
	return fmt.Sprintf("Review: %s\nFinal:  %s\nRun:    %s\n\n", report.ReviewStage, report.FinalStage, report.RunID)
}

func scoreLine(report m.Report, htmlReport m.Path) string {
	line := fmt.Sprintf("SSIM=%.4f", report.Similarity)

	if report.FixedSimilarity != nil {
		line += fmt.Sprintf("  fixed=%.4f", *report.FixedSimilarity)
	}

	if htmlReport != "" {
		line += fmt.Sprintf("  report=%s", htmlReport)
	}

	renderer := "no"
	if report.RendererAvailable {
		renderer = "yes"
	}

	return line + "  usdrecord=" + renderer
}

func verdictLine(verdict m.Verdict) string {
	if !verdict.Passed {
		return failStyle.Render(fmt.Sprintf("Result: %s (%s)", verdict.Status, verdict.Reason))
	}

	return passStyle.Render("Result: " + verdict.Status.String())
}

func renderDiffTable(diffs m.DiffSet) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Prim", "Property", "Review", "Final"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)

	for _, d := range diffs {
		for _, kind := range d.Kinds() {
			delta := d.Deltas[kind]
			table.Append([]string{string(d.Path), kind.String(), delta.A.String(), delta.B.String()})
		}
	}

	table.SetFooter([]string{fmt.Sprintf("%d prim(s)", len(diffs)), fmt.Sprintf("%d delta(s)", diffs.DeltaCount()), "", ""})
	table.Render()

	return tableBuffer.String()
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}
