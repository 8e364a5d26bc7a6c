// Package adapter contains the infrastructure collaborators of the truth-check
// pipeline: scene loading, rendering, image scoring and artifact storage.
package adapter

import (
	m "truthcheck.dev/pkg/truthcheck/internal/model"
)

// SceneLoader opens a scene revision for inspection.
type SceneLoader interface {
	// Open loads the scene at path. Failures are reported as *model.LoadError.
	Open(path m.Path) (Scene, error)
}

// Scene is a loaded scene hierarchy.
type Scene interface {
	// Roots returns the traversable root prims in authored order.
	Roots() []Prim
}

// Prim exposes the capability probes the snapshot extractor relies on.
//
//nolint:interfacebloat // One probe per captured attribute.
type Prim interface {
	Path() m.NodePath
	// Children returns traversable children in native order.
	Children() []Prim
	// IsImageable reports whether the prim has a visual capability.
	IsImageable() bool
	// Visibility returns the authored visibility token and whether one exists.
	Visibility() (string, bool)
	// MaterialBindingTargets returns the direct material:binding targets.
	MaterialBindingTargets() []m.NodePath
	// VariantSetNames returns the declared variant sets.
	VariantSetNames() []string
	// VariantSelection returns the selection for a set, or "" if none.
	VariantSelection(set string) string
}
