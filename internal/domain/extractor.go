// Package domain implements the truth-check pipeline: snapshot extraction,
// structural diffing, override synthesis, layer composition and verdicts.
package domain

import (
	"errors"
	"log/slog"

	"truthcheck.dev/pkg/truthcheck/internal/adapter"
	m "truthcheck.dev/pkg/truthcheck/internal/model"
)

// Extractor captures the semantic state of a scene revision.
type Extractor interface {
	Extract(path m.Path) (m.Snapshot, error)
}

type extractor struct {
	loader adapter.SceneLoader
}

// NewExtractor creates an Extractor reading scenes through loader.
func NewExtractor(loader adapter.SceneLoader) Extractor {
	return &extractor{loader: loader}
}

// Extract opens the scene at path and walks it depth-first in pre-order,
// capturing every imageable prim. Load failures surface as *model.LoadError
// and no partial snapshot is returned.
func (e *extractor) Extract(path m.Path) (m.Snapshot, error) {
	scene, err := e.loader.Open(path)
	if err != nil {
		var loadErr *m.LoadError
		if errors.As(err, &loadErr) {
			return m.Snapshot{}, err
		}

		return m.Snapshot{}, &m.LoadError{Path: path, Err: err}
	}

	var entries []m.NodeEntry

	var walk func(prims []adapter.Prim)
	walk = func(prims []adapter.Prim) {
		for _, prim := range prims {
			if prim.IsImageable() {
				entries = append(entries, m.NodeEntry{Path: prim.Path(), State: probe(prim)})
			}

			walk(prim.Children())
		}
	}
	walk(scene.Roots())

	slog.Debug("extracted snapshot", "path", path, "nodes", len(entries))

	return m.NewSnapshot(entries), nil
}

func probe(prim adapter.Prim) m.NodeState {
	state := m.NodeState{Visibility: m.VisibilityInherited}

	if targets := prim.MaterialBindingTargets(); len(targets) > 0 {
		state.Material = targets[0]
	}

	if token, ok := prim.Visibility(); ok && token != "" {
		state.Visibility = token
	}

	for _, set := range prim.VariantSetNames() {
		if selection := prim.VariantSelection(set); selection != "" {
			if state.Variants == nil {
				state.Variants = m.VariantSelections{}
			}

			state.Variants[set] = selection
		}
	}

	return state
}
