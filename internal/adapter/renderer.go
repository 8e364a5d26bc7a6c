package adapter

import (
	"bytes"
	"log/slog"
	"os/exec"
	"strconv"
	"strings"

	m "truthcheck.dev/pkg/truthcheck/internal/model"
)

// Renderer abstracts the external rasterizer.
type Renderer interface {
	// Render draws stage (with an optional session layer) into outImage.
	// Failures are reported as *model.RenderError.
	Render(stage, sessionLayer, outImage m.Path, params m.RenderParams) error
	// Available reports whether the renderer can be invoked at all.
	Available() bool
}

// usdrecordNames are the executable names tried, in order.
var usdrecordNames = []string{"usdrecord", "usdrecord.exe", "usdrecord.cmd"}

// USDRecordRenderer renders stages with the usdrecord command-line tool.
// Invocations run to completion: no timeout, cancellation or retry.
type USDRecordRenderer struct {
	lookPath func(string) (string, error)
}

// NewUSDRecordRenderer constructs a renderer resolving usdrecord from PATH.
func NewUSDRecordRenderer() *USDRecordRenderer {
	return &USDRecordRenderer{lookPath: exec.LookPath}
}

// Executable returns the resolved usdrecord path, or "" if none is found.
func (r *USDRecordRenderer) Executable() string {
	for _, name := range usdrecordNames {
		if p, err := r.lookPath(name); err == nil {
			return p
		}
	}

	return ""
}

// Available reports whether usdrecord is on PATH.
func (r *USDRecordRenderer) Available() bool {
	return r.Executable() != ""
}

// Render runs usdrecord for stage and writes outImage.
func (r *USDRecordRenderer) Render(stage, sessionLayer, outImage m.Path, params m.RenderParams) error {
	exe := r.Executable()
	if exe == "" {
		return &m.RenderError{Stage: stage, Output: outImage, Err: m.ErrRendererUnavailable}
	}

	args := usdrecordArgs(stage, sessionLayer, outImage, params)
	cmd := exec.Command(exe, args...)

	var stdout, stderr bytes.Buffer

	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	slog.Info("rendering stage", "stage", stage, "output", outImage, "args", strings.Join(args, " "))

	if err := cmd.Run(); err != nil {
		slog.Error("render failed", "stage", stage, "error", err, "stderr", stderr.String())

		return &m.RenderError{Stage: stage, Output: outImage, Stderr: stderr.String(), Err: err}
	}

	slog.Debug("render finished", "stage", stage, "stdout", stdout.String())

	return nil
}

func usdrecordArgs(stage, sessionLayer, outImage m.Path, params m.RenderParams) []string {
	var args []string

	if params.Renderer != "" {
		args = append(args, "--renderer", params.Renderer)
	}

	if sessionLayer != "" {
		args = append(args, "--sessionLayer", string(sessionLayer))
	}

	if params.ColorCorrection != "" {
		args = append(args, "--colorCorrectionMode", params.ColorCorrection)
	}

	if params.Complexity != "" {
		args = append(args, "--complexity", params.Complexity)
	}

	if params.Camera != "" {
		args = append(args, "--camera", params.Camera)
	}

	return append(args,
		"--imageWidth", strconv.Itoa(params.Width),
		"--defaultTime",
		string(stage),
		string(outImage),
	)
}
