package controller

import (
	"bytes"
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	m "truthcheck.dev/pkg/truthcheck/internal/model"
)

func sampleReport() m.Report {
	return m.Report{
		RunID:       "run-7",
		ReviewStage: "review.usda",
		FinalStage:  "final.usda",
		Similarity:  0.97,
		SceneDiffs:  chairDiffs(),
		Verdict:     m.Verdict{Status: m.Fail, Reason: "structural differences"},
	}
}

func TestReportModel_LoadingUntilSized(t *testing.T) {
	rm := newReportModel(sampleReport())

	assert.Nil(t, rm.Init())
	assert.Equal(t, "loading report...", rm.View())
	assert.Equal(t, "truthcheck report FAIL", rm.title)
	assert.Contains(t, rm.content, "Run:    run-7")
	assert.Contains(t, rm.content, "/World/Chair")
}

func TestReportModel_WindowSize(t *testing.T) {
	model, cmd := newReportModel(sampleReport()).Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.Nil(t, cmd)

	rm, ok := model.(reportModel)
	require.True(t, ok)
	assert.True(t, rm.ready)
	assert.Equal(t, 120, rm.viewport.Width)
	assert.Equal(t, 40-rm.chromeHeight(), rm.viewport.Height)

	view := rm.View()
	assert.Contains(t, view, "truthcheck report FAIL")
	assert.Contains(t, view, "Review: review.usda")
	assert.Contains(t, view, "q quit")

	model, _ = rm.Update(tea.WindowSizeMsg{Width: 80, Height: 2})
	rm = model.(reportModel)
	assert.Equal(t, 80, rm.viewport.Width)
	assert.Equal(t, 1, rm.viewport.Height)
}

func TestReportModel_Quit(t *testing.T) {
	for _, key := range []tea.KeyMsg{
		{Type: tea.KeyRunes, Runes: []rune("q")},
		{Type: tea.KeyEsc},
		{Type: tea.KeyCtrlC},
	} {
		t.Run(key.String(), func(t *testing.T) {
			model, cmd := newReportModel(sampleReport()).Update(key)
			require.NotNil(t, cmd)
			assert.IsType(t, tea.QuitMsg{}, cmd())
			assert.Empty(t, model.View())
		})
	}
}

func TestTUI_ShowReport(t *testing.T) {
	var out bytes.Buffer

	ui, _ := newTestSimpleUI()
	tui := NewTUI(ui, strings.NewReader("q"), &out)

	require.NoError(t, tui.ShowReport(context.Background(), sampleReport()))
}
