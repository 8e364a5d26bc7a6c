package adapter

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	m "truthcheck.dev/pkg/truthcheck/internal/model"
)

type failingArtifacts struct {
	LocalArtifactStore
	failOn m.Path
}

func (f *failingArtifacts) WriteLayer(path m.Path, text string) error {
	if path == f.failOn {
		return &m.WriteError{Path: path, Err: errors.New("disk full")}
	}

	return f.LocalArtifactStore.WriteLayer(path, text)
}

func sampleReport(ws m.Workspace) m.Report {
	fixed := 0.998

	return m.Report{
		RunID:             "run-1",
		ReviewStage:       "review.usda",
		FinalStage:        "final.usda",
		ReviewImage:       ws.ReviewImage(),
		FinalImage:        ws.FinalImage(),
		DiffImage:         m.DiffImage(ws.FinalImage()),
		Similarity:        0.81,
		RendererAvailable: true,
		SceneDiffs: m.DiffSet{
			{
				Path: "/World/Chair",
				Deltas: map[m.DeltaKind]m.AttributeDelta{
					m.DeltaMaterial: {
						Kind: m.DeltaMaterial,
						A:    m.AttributeValue{Token: "/World/Looks/Mat1"},
						B:    m.AttributeValue{Token: "/World/Looks/Mat2"},
					},
					m.DeltaVariants: {
						Kind: m.DeltaVariants,
						A:    m.AttributeValue{Variants: m.VariantSelections{"look": "red"}},
						B:    m.AttributeValue{Variants: m.VariantSelections{"look": "blue"}},
					},
				},
			},
		},
		Render:          m.RenderParams{Renderer: "Storm", Width: 640, Camera: "/World/Cam", ColorCorrection: "sRGB", Complexity: "medium"},
		Threshold:       0.95,
		FixedImage:      ws.FixedImage(),
		FixedDiffImage:  m.DiffImage(ws.FixedImage()),
		FixedSimilarity: &fixed,
		FixLayer:        ws.FixLayer(),
		Composition:     ws.Composition(),
		PassIfFixed:     true,
		FixedOK:         true,
		Verdict: m.Verdict{
			Passed:     true,
			Status:     m.PassFixed,
			Reason:     "fixed render within threshold",
			RawScore:   0.81,
			FixedScore: &fixed,
		},
	}
}

func TestLocalReportStore_RoundTrip(t *testing.T) {
	for _, format := range []m.ReportFormat{m.ReportJSON, m.ReportYAML} {
		t.Run(string(format), func(t *testing.T) {
			ws := m.NewWorkspace(m.Path(filepath.Join(t.TempDir(), "out")))
			store := NewReportStore(NewLocalArtifactStore())
			report := sampleReport(ws)

			files, err := store.SaveReport(ws, format, report)
			require.NoError(t, err)
			assert.Equal(t, ws.Report(format), files.Data)
			assert.Equal(t, ws.HTMLReport(), files.HTML)
			assert.FileExists(t, string(files.Data))
			assert.FileExists(t, string(files.HTML))
			assert.FileExists(t, string(files.Markdown))

			loaded, err := store.LoadReport(ws)
			require.NoError(t, err)
			assert.Equal(t, report, loaded)
		})
	}
}

func TestLocalReportStore_JSONKeys(t *testing.T) {
	ws := m.NewWorkspace(m.Path(t.TempDir()))
	store := NewReportStore(NewLocalArtifactStore())

	_, err := store.SaveReport(ws, m.ReportJSON, sampleReport(ws))
	require.NoError(t, err)

	data, err := os.ReadFile(string(ws.Report(m.ReportJSON)))
	require.NoError(t, err)

	for _, key := range []string{`"ssim": 0.81`, `"usdrecord": true`, `"scene_diffs"`, `"material"`, `"fixed_ssim": 0.998`, `"status": "PASS (fixed)"`} {
		assert.Contains(t, string(data), key)
	}
}

func TestLocalReportStore_HTMLPage(t *testing.T) {
	ws := m.NewWorkspace(m.Path(t.TempDir()))
	store := NewReportStore(NewLocalArtifactStore())

	files, err := store.SaveReport(ws, m.ReportJSON, sampleReport(ws))
	require.NoError(t, err)

	data, err := os.ReadFile(string(files.HTML))
	require.NoError(t, err)

	page := string(data)
	assert.Contains(t, page, `src="review.png"`)
	assert.Contains(t, page, `src="final.diff.png"`)
	assert.Contains(t, page, `src="final_fixed.png"`)
	assert.Contains(t, page, "<code>/World/Chair</code>")
	assert.Contains(t, page, "<code>/World/Looks/Mat2</code>")
	assert.Contains(t, page, "<code>{look=blue}</code>")
	assert.Contains(t, page, "Fixed SSIM: <b>0.9980</b>")
	assert.Contains(t, page, "PASS (fixed)")
}

func TestLocalReportStore_MarkdownSummary(t *testing.T) {
	ws := m.NewWorkspace(m.Path(t.TempDir()))
	store := NewReportStore(NewLocalArtifactStore())

	files, err := store.SaveReport(ws, m.ReportJSON, sampleReport(ws))
	require.NoError(t, err)
	assert.Equal(t, ws.MarkdownReport(), files.Markdown)

	data, err := os.ReadFile(string(files.Markdown))
	require.NoError(t, err)

	summary := string(data)
	assert.Contains(t, summary, "# USD Truth-Checker")
	assert.Contains(t, summary, "Scene Differences")
	assert.Contains(t, summary, "/World/Chair")
	assert.Contains(t, summary, "PASS (fixed)")
	assert.NotContains(t, summary, "<style>")
	assert.NotContains(t, summary, "border-collapse")
}

func TestLocalReportStore_HTMLWithoutDiffs(t *testing.T) {
	ws := m.NewWorkspace(m.Path(t.TempDir()))
	store := NewReportStore(NewLocalArtifactStore())

	report := m.Report{Similarity: 1, Threshold: 0.95, Verdict: m.Verdict{Passed: true, Status: m.Pass}}

	files, err := store.SaveReport(ws, m.ReportJSON, report)
	require.NoError(t, err)

	data, err := os.ReadFile(string(files.HTML))
	require.NoError(t, err)
	assert.Contains(t, string(data), "No scenegraph differences detected.")
	assert.NotContains(t, string(data), "Fixed SSIM")
}

func TestLocalReportStore_Failures(t *testing.T) {
	ws := m.NewWorkspace(m.Path(t.TempDir()))

	var writeErr *m.WriteError

	_, err := NewReportStore(NewLocalArtifactStore()).SaveReport(ws, "toml", m.Report{})
	require.ErrorAs(t, err, &writeErr)
	assert.Equal(t, ws.Report("toml"), writeErr.Path)

	for _, failOn := range []m.Path{ws.HTMLReport(), ws.MarkdownReport()} {
		store := NewReportStore(&failingArtifacts{failOn: failOn})
		_, err = store.SaveReport(ws, m.ReportJSON, m.Report{})
		require.ErrorAs(t, err, &writeErr)
		assert.Equal(t, failOn, writeErr.Path)
	}
}

func TestLocalReportStore_LoadMissing(t *testing.T) {
	ws := m.NewWorkspace(m.Path(t.TempDir()))

	_, err := NewReportStore(NewLocalArtifactStore()).LoadReport(ws)
	require.ErrorIs(t, err, fs.ErrNotExist)

	require.NoError(t, os.WriteFile(string(ws.Report(m.ReportJSON)), []byte("{"), 0o644))

	_, err = NewReportStore(NewLocalArtifactStore()).LoadReport(ws)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode")
}
