package model

import (
	"errors"
	"fmt"
)

// ErrRendererUnavailable is returned when no renderer executable can be found.
var ErrRendererUnavailable = errors.New("renderer executable not found")

// LoadError reports a scene revision that could not be opened or parsed.
type LoadError struct {
	Path Path
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load scene %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// RenderError reports a failed external render.
type RenderError struct {
	Stage  Path
	Output Path
	Stderr string
	Err    error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render %s -> %s: %v", e.Stage, e.Output, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }

// WriteError reports an artifact that could not be persisted.
type WriteError struct {
	Path Path
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }
