package model

import "path/filepath"

// ReportFormat selects the structured report encoding.
type ReportFormat string

const (
	// ReportJSON writes report.json.
	ReportJSON ReportFormat = "json"
	// ReportYAML writes report.yaml.
	ReportYAML ReportFormat = "yaml"
)

// Workspace carries the artifact locations of one run. It is passed
// explicitly to every component that reads or writes artifacts.
type Workspace struct {
	OutputDir Path
}

// NewWorkspace returns a workspace rooted at dir.
func NewWorkspace(dir Path) Workspace {
	return Workspace{OutputDir: dir}
}

func (w Workspace) join(name string) Path {
	return Path(filepath.Join(string(w.OutputDir), name))
}

// ReviewImage is the render of the review revision.
func (w Workspace) ReviewImage() Path { return w.join("review.png") }

// FinalImage is the render of the final revision.
func (w Workspace) FinalImage() Path { return w.join("final.png") }

// FixedImage is the render of the final revision with the fix composition applied.
func (w Workspace) FixedImage() Path { return w.join("final_fixed.png") }

// FixLayer is the synthesized corrective override layer.
func (w Workspace) FixLayer() Path { return w.join("truth_fix.usda") }

// Composition is the composition root stacking the fix and session layers.
func (w Workspace) Composition() Path { return w.join("session_combo.usda") }

// Report is the structured report in the given format.
func (w Workspace) Report(format ReportFormat) Path {
	if format == ReportYAML {
		return w.join("report.yaml")
	}

	return w.join("report.json")
}

// HTMLReport is the human-readable report page.
func (w Workspace) HTMLReport() Path { return w.join("report.html") }

// MarkdownReport is the report page converted for CI job summaries.
func (w Workspace) MarkdownReport() Path { return w.join("report.md") }

// DiffImage returns the per-pixel difference map written next to image.
func DiffImage(image Path) Path {
	s := string(image)
	ext := filepath.Ext(s)

	return Path(s[:len(s)-len(ext)] + ".diff.png")
}
