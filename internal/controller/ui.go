// Package controller provides console output for truth-check runs.
package controller

import (
	"context"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	m "truthcheck.dev/pkg/truthcheck/internal/model"
)

// Step names a pipeline stage announced to the user.
type Step string

// Pipeline steps in execution order.
const (
	StepRenderReview Step = "render review"
	StepRenderFinal  Step = "render final"
	StepScore        Step = "score renders"
	StepSnapshot     Step = "snapshot scenes"
	StepDiff         Step = "diff scenes"
	StepFix          Step = "author fix layer"
	StepRenderFixed  Step = "render fixed"
	StepReport       Step = "write report"
)

// UI reports progress and results of a check run.
type UI interface {
	DisplayStep(ctx context.Context, step Step)
	DisplayDiffs(ctx context.Context, diffs m.DiffSet)
	DisplaySummary(ctx context.Context, report m.Report, htmlReport m.Path)
	// ShowReport presents a stored report; interactive implementations block
	// until the user closes it.
	ShowReport(ctx context.Context, report m.Report) error
}

// NewUI picks the interactive viewer on a terminal and plain output otherwise.
func NewUI(cmd *cobra.Command, tty bool) UI {
	simple := NewSimpleUI(cmd)
	if !tty {
		return simple
	}

	return NewTUI(simple, os.Stdin, cmd.OutOrStdout())
}

// IsTTY reports whether w is an interactive terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
