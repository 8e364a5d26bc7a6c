package adapter

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
	m "truthcheck.dev/pkg/truthcheck/internal/model"
)

// ReportFiles are the paths a saved report was written to.
type ReportFiles struct {
	Data     m.Path
	HTML     m.Path
	Markdown m.Path
}

// ReportStore persists and reloads check reports.
type ReportStore interface {
	SaveReport(ws m.Workspace, format m.ReportFormat, report m.Report) (ReportFiles, error)
	LoadReport(ws m.Workspace) (m.Report, error)
}

// LocalReportStore writes reports into the workspace output directory.
type LocalReportStore struct {
	artifacts ArtifactStore
}

// NewReportStore constructs a LocalReportStore backed by artifacts.
func NewReportStore(artifacts ArtifactStore) *LocalReportStore {
	return &LocalReportStore{artifacts: artifacts}
}

// SaveReport writes the structured report and the HTML page.
func (s *LocalReportStore) SaveReport(ws m.Workspace, format m.ReportFormat, report m.Report) (ReportFiles, error) {
	files := ReportFiles{Data: ws.Report(format), HTML: ws.HTMLReport(), Markdown: ws.MarkdownReport()}

	data, err := encodeReport(format, report)
	if err != nil {
		return ReportFiles{}, &m.WriteError{Path: files.Data, Err: err}
	}

	if err := s.artifacts.WriteLayer(files.Data, string(data)); err != nil {
		return ReportFiles{}, err
	}

	page, err := renderHTMLReport(files.HTML, report)
	if err != nil {
		return ReportFiles{}, &m.WriteError{Path: files.HTML, Err: err}
	}

	if err := s.artifacts.WriteLayer(files.HTML, page); err != nil {
		return ReportFiles{}, err
	}

	summary, err := renderMarkdownReport(page)
	if err != nil {
		return ReportFiles{}, &m.WriteError{Path: files.Markdown, Err: err}
	}

	if err := s.artifacts.WriteLayer(files.Markdown, summary); err != nil {
		return ReportFiles{}, err
	}

	slog.Info("saved report", "data", files.Data, "html", files.HTML, "markdown", files.Markdown)

	return files, nil
}

func encodeReport(format m.ReportFormat, report m.Report) ([]byte, error) {
	switch format {
	case m.ReportYAML:
		var buf bytes.Buffer

		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)

		if err := enc.Encode(report); err != nil {
			return nil, fmt.Errorf("encode yaml report: %w", err)
		}

		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("encode yaml report: %w", err)
		}

		return buf.Bytes(), nil
	case m.ReportJSON, "":
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encode json report: %w", err)
		}

		return append(data, '\n'), nil
	default:
		return nil, fmt.Errorf("unknown report format %q", format)
	}
}

// LoadReport reads the most recent structured report, JSON first.
func (s *LocalReportStore) LoadReport(ws m.Workspace) (m.Report, error) {
	var report m.Report

	data, err := os.ReadFile(string(ws.Report(m.ReportJSON)))
	if err == nil {
		if err := json.Unmarshal(data, &report); err != nil {
			return m.Report{}, fmt.Errorf("decode %s: %w", ws.Report(m.ReportJSON), err)
		}

		return report, nil
	}

	if !errors.Is(err, fs.ErrNotExist) {
		return m.Report{}, fmt.Errorf("read report: %w", err)
	}

	data, err = os.ReadFile(string(ws.Report(m.ReportYAML)))
	if err != nil {
		return m.Report{}, fmt.Errorf("read report: %w", err)
	}

	if err := yaml.Unmarshal(data, &report); err != nil {
		return m.Report{}, fmt.Errorf("decode %s: %w", ws.Report(m.ReportYAML), err)
	}

	return report, nil
}
