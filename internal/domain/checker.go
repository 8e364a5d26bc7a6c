package domain

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"truthcheck.dev/pkg/truthcheck/internal/adapter"
	"truthcheck.dev/pkg/truthcheck/internal/controller"
	m "truthcheck.dev/pkg/truthcheck/internal/model"
)

// CheckArgs contains the arguments of one truth-check run.
type CheckArgs struct {
	Review       m.Path
	Final        m.Path
	SessionLayer m.Path
	Workspace    m.Workspace
	Render       m.RenderParams
	Threshold    float64
	ApplyFix     bool
	PassIfFixed  bool
	OpenReport   bool
	ReportFormat m.ReportFormat
}

// Checker runs the full review-versus-final comparison.
type Checker interface {
	// Check renders, scores, diffs, optionally fixes, decides and reports.
	// It returns *model.RenderError, *model.LoadError or *model.WriteError
	// when the run cannot be evaluated; no report is written in that case.
	Check(ctx context.Context, args CheckArgs) (m.Report, error)
}

type checker struct {
	renderer  adapter.Renderer
	scorer    adapter.Scorer
	extractor Extractor
	artifacts adapter.ArtifactStore
	reports   adapter.ReportStore
	opener    adapter.ReportOpener
	ui        controller.UI
	newRunID  func() string
}

// NewChecker creates a Checker with the provided collaborators.
func NewChecker(
	renderer adapter.Renderer,
	scorer adapter.Scorer,
	extractor Extractor,
	artifacts adapter.ArtifactStore,
	reports adapter.ReportStore,
	opener adapter.ReportOpener,
	ui controller.UI,
) Checker {
	return &checker{
		renderer:  renderer,
		scorer:    scorer,
		extractor: extractor,
		artifacts: artifacts,
		reports:   reports,
		opener:    opener,
		ui:        ui,
		newRunID:  uuid.NewString,
	}
}

func (c *checker) Check(ctx context.Context, args CheckArgs) (m.Report, error) {
	ws := args.Workspace

	if err := c.artifacts.EnsureDir(ws.OutputDir); err != nil {
		return m.Report{}, fmt.Errorf("prepare output directory: %w", err)
	}

	c.ui.DisplayStep(ctx, controller.StepRenderReview)

	if err := c.renderer.Render(args.Review, args.SessionLayer, ws.ReviewImage(), args.Render); err != nil {
		return m.Report{}, fmt.Errorf("render review: %w", err)
	}

	c.ui.DisplayStep(ctx, controller.StepRenderFinal)

	if err := c.renderer.Render(args.Final, args.SessionLayer, ws.FinalImage(), args.Render); err != nil {
		return m.Report{}, fmt.Errorf("render final: %w", err)
	}

	c.ui.DisplayStep(ctx, controller.StepScore)

	diffImage := m.DiffImage(ws.FinalImage())

	score, err := c.scorer.Score(ws.ReviewImage(), ws.FinalImage(), diffImage)
	if err != nil {
		return m.Report{}, fmt.Errorf("score final render: %w", err)
	}

	c.ui.DisplayStep(ctx, controller.StepSnapshot)

	review, err := c.extractor.Extract(args.Review)
	if err != nil {
		return m.Report{}, fmt.Errorf("snapshot review: %w", err)
	}

	final, err := c.extractor.Extract(args.Final)
	if err != nil {
		return m.Report{}, fmt.Errorf("snapshot final: %w", err)
	}

	c.ui.DisplayStep(ctx, controller.StepDiff)

	diffs := Diff(review, final)
	onlyReview, onlyFinal := Unmatched(review, final)

	slog.Info("scene diff", "diffs", len(diffs), "deltas", diffs.DeltaCount(),
		"review_only", onlyReview, "final_only", onlyFinal)

	c.ui.DisplayDiffs(ctx, diffs)

	report := m.Report{
		RunID:             c.newRunID(),
		ReviewStage:       args.Review,
		FinalStage:        args.Final,
		ReviewImage:       ws.ReviewImage(),
		FinalImage:        ws.FinalImage(),
		DiffImage:         diffImage,
		Similarity:        score,
		RendererAvailable: c.renderer.Available(),
		SceneDiffs:        diffs,
		Render:            args.Render,
		Threshold:         args.Threshold,
		SessionLayer:      args.SessionLayer,
		PassIfFixed:       args.PassIfFixed,
	}

	if args.ApplyFix && len(diffs) > 0 {
		if err := c.applyFix(ctx, args, diffs, &report); err != nil {
			return m.Report{}, err
		}
	}

	verdictArgs := VerdictArgs{
		RawScore:    score,
		DiffCount:   len(diffs),
		FixedScore:  report.FixedSimilarity,
		Threshold:   args.Threshold,
		PassIfFixed: args.PassIfFixed,
	}
	report.Verdict = Decide(verdictArgs)
	report.FixedOK = verdictArgs.FixedOK()

	c.ui.DisplayStep(ctx, controller.StepReport)

	files, err := c.reports.SaveReport(ws, args.ReportFormat, report)
	if err != nil {
		return m.Report{}, fmt.Errorf("save report: %w", err)
	}

	c.ui.DisplaySummary(ctx, report, files.HTML)

	if args.OpenReport {
		if err := c.opener.Open(files.HTML); err != nil {
			slog.Warn("could not open report", "path", files.HTML, "error", err)
		}
	}

	return report, nil
}

// applyFix authors the corrective layer, stacks it with the session layer,
// re-renders the final stage through it and scores the result.
func (c *checker) applyFix(ctx context.Context, args CheckArgs, diffs m.DiffSet, report *m.Report) error {
	ws := args.Workspace

	c.ui.DisplayStep(ctx, controller.StepFix)

	layer := Synthesize(ws.FixLayer(), diffs)
	if layer.Empty() {
		slog.Info("no restatable differences, skipping fix", "diffs", len(diffs))
		return nil
	}

	if err := c.artifacts.WriteLayer(layer.Path, layer.Text); err != nil {
		return fmt.Errorf("write fix layer: %w", err)
	}

	composition, err := Compose(args.SessionLayer, layer.Path, ws.Composition())
	if err != nil {
		return &m.WriteError{Path: ws.Composition(), Err: err}
	}

	if err := c.artifacts.WriteLayer(composition.Path, RenderComposition(composition)); err != nil {
		return fmt.Errorf("write composition: %w", err)
	}

	c.ui.DisplayStep(ctx, controller.StepRenderFixed)

	if err := c.renderer.Render(args.Final, composition.Path, ws.FixedImage(), args.Render); err != nil {
		return fmt.Errorf("render fixed: %w", err)
	}

	fixedDiff := m.DiffImage(ws.FixedImage())

	fixedScore, err := c.scorer.Score(ws.ReviewImage(), ws.FixedImage(), fixedDiff)
	if err != nil {
		return fmt.Errorf("score fixed render: %w", err)
	}

	slog.Info("fix applied", "layer", layer.Path, "blocks", layer.Blocks, "fixed_ssim", fixedScore)

	report.FixLayer = layer.Path
	report.Composition = composition.Path
	report.FixedImage = ws.FixedImage()
	report.FixedDiffImage = fixedDiff
	report.FixedSimilarity = &fixedScore

	return nil
}
