package adapter

import (
	"bytes"
	"fmt"
	"html/template"
	"path/filepath"

	m "truthcheck.dev/pkg/truthcheck/internal/model"
)

const htmlReportTemplate = `<!doctype html>
<meta charset="utf-8">
<title>truthcheck report</title>
<style>
  body{font:14px/1.4 system-ui,Segoe UI,Arial;margin:24px}
  header{display:flex;gap:24px;align-items:center;margin-bottom:16px}
  img.thumb{height:180px;border:1px solid #ddd;border-radius:8px}
  table{border-collapse:collapse;width:100%;margin-top:16px}
  th,td{border:1px solid #e5e5e5;padding:8px;text-align:left}
  th{background:#fafafa}
  code{background:#f6f8fa;padding:2px 6px;border-radius:6px}
  .ok{color:#0a7d00}.bad{color:#b00020}
</style>
<header>
  <div>
    <h1 style="margin:0">USD Truth-Checker</h1>
    <div>Review: <code>{{ .Report.ReviewStage }}</code></div>
    <div>Final: <code>{{ .Report.FinalStage }}</code></div>
    <div>SSIM: <b>{{ printf "%.4f" .Report.Similarity }}</b>
      {{ if ge .Report.Similarity .Report.Threshold }}<span class="ok">PASS</span>{{ else }}<span class="bad">LOW</span>{{ end }}
      (threshold {{ printf "%.2f" .Report.Threshold }})</div>
    {{ with .FixedSimilarity }}<div>Fixed SSIM: <b>{{ . }}</b></div>{{ end }}
    <div>Result: <b class="{{ if .Report.Verdict.Passed }}ok{{ else }}bad{{ end }}">{{ .Report.Verdict.Status }}</b> {{ .Report.Verdict.Reason }}</div>
    <div>Renderer: <code>{{ .Report.Render.Renderer }}</code> width {{ .Report.Render.Width }}
      camera <code>{{ .Report.Render.Camera }}</code></div>
  </div>
  <div>
    <img class="thumb" src="{{ .ReviewImage }}" title="review">
    <img class="thumb" src="{{ .FinalImage }}" title="final">
    <img class="thumb" src="{{ .DiffImage }}" title="diff">
    {{ if .FixedImage }}<img class="thumb" src="{{ .FixedImage }}" title="fixed">{{ end }}
  </div>
</header>

<h2>Scene Differences</h2>
{{ if not .Report.SceneDiffs }}
  <p>No scenegraph differences detected.</p>
{{ else }}
<table>
  <tr><th>Prim</th><th>Property</th><th>Review</th><th>Final</th></tr>
  {{ range .Rows }}
  <tr>
    <td><code>{{ .Path }}</code></td>
    <td>{{ .Kind }}</td>
    <td><code>{{ .A }}</code></td>
    <td><code>{{ .B }}</code></td>
  </tr>
  {{ end }}
</table>
{{ end }}
{{ with .Report.FixLayer }}<p>Fix layer: <code>{{ . }}</code></p>{{ end }}
`

var htmlReport = template.Must(template.New("report").Parse(htmlReportTemplate))

type htmlRow struct {
	Path m.NodePath
	Kind m.DeltaKind
	A, B string
}

type htmlReportData struct {
	Report      m.Report
	ReviewImage string
	FinalImage  string
	DiffImage   string
	FixedImage  string
	Rows        []htmlRow

	FixedSimilarity string
}

// diffRows flattens a diff set into one row per delta in fixed kind order.
func diffRows(diffs m.DiffSet) []htmlRow {
	var rows []htmlRow

	for _, d := range diffs {
		for _, kind := range d.Kinds() {
			delta := d.Deltas[kind]
			rows = append(rows, htmlRow{Path: d.Path, Kind: kind, A: delta.A.String(), B: delta.B.String()})
		}
	}

	return rows
}

func renderHTMLReport(htmlPath m.Path, report m.Report) (string, error) {
	base := filepath.Dir(string(htmlPath))
	data := htmlReportData{
		Report:      report,
		ReviewImage: relativeTo(base, report.ReviewImage),
		FinalImage:  relativeTo(base, report.FinalImage),
		DiffImage:   relativeTo(base, report.DiffImage),
		FixedImage:  relativeTo(base, report.FixedImage),
		Rows:        diffRows(report.SceneDiffs),
	}

	if report.FixedSimilarity != nil {
		data.FixedSimilarity = fmt.Sprintf("%.4f", *report.FixedSimilarity)
	}

	var buf bytes.Buffer
	if err := htmlReport.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render html report: %w", err)
	}

	return buf.String(), nil
}

// relativeTo expresses p relative to base so the page works when moved with its images.
func relativeTo(base string, p m.Path) string {
	if p == "" {
		return ""
	}

	rel, err := filepath.Rel(base, string(p))
	if err != nil {
		return string(p)
	}

	return filepath.ToSlash(rel)
}
