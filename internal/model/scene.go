// Package model defines the data structures shared by the truth-check pipeline.
package model

import (
	"maps"
	"slices"
	"strings"
)

// Path represents a file system path.
type Path string

// NodePath identifies a scene node by its slash-separated hierarchy path,
// e.g. "/World/Geom/Floor".
type NodePath string

// Segments returns the non-empty path segments, outermost first.
func (p NodePath) Segments() []string {
	parts := strings.Split(string(p), "/")
	segments := make([]string, 0, len(parts))

	for _, part := range parts {
		if part != "" {
			segments = append(segments, part)
		}
	}

	return segments
}

// VisibilityInherited is the visibility token reported for nodes without an
// authored opinion.
const VisibilityInherited = "inherited"

// VariantSelections maps a variant set name to its active selection.
type VariantSelections map[string]string

// Equal reports whether both mappings hold the same keys and values.
// A nil mapping equals an empty one.
func (v VariantSelections) Equal(other VariantSelections) bool {
	return maps.Equal(v, other)
}

// Keys returns the variant set names in sorted order.
func (v VariantSelections) Keys() []string {
	return slices.Sorted(maps.Keys(v))
}

// Clone returns an independent copy; nil stays nil.
func (v VariantSelections) Clone() VariantSelections {
	if v == nil {
		return nil
	}

	return maps.Clone(v)
}

// NodeState is the semantic state captured for one visually-capable node.
type NodeState struct {
	// Material is the first direct material-binding target; empty means unbound.
	Material   NodePath          `json:"material,omitempty" yaml:"material,omitempty"`
	Visibility string            `json:"visibility" yaml:"visibility"`
	Variants   VariantSelections `json:"variants,omitempty" yaml:"variants,omitempty"`
}

// HasMaterial reports whether the node carries a direct material binding.
func (s NodeState) HasMaterial() bool {
	return s.Material != ""
}

// NodeEntry pairs a node path with its state, in traversal order.
type NodeEntry struct {
	Path  NodePath
	State NodeState
}

// Snapshot is an immutable, ordered NodePath -> NodeState mapping captured
// from one scene revision.
type Snapshot struct {
	order  []NodePath
	states map[NodePath]NodeState
}

// NewSnapshot builds a snapshot from entries in traversal order. The first
// entry for a duplicated path wins; variant maps are copied.
func NewSnapshot(entries []NodeEntry) Snapshot {
	snap := Snapshot{
		order:  make([]NodePath, 0, len(entries)),
		states: make(map[NodePath]NodeState, len(entries)),
	}

	for _, entry := range entries {
		if _, seen := snap.states[entry.Path]; seen {
			continue
		}

		state := entry.State
		state.Variants = state.Variants.Clone()
		snap.order = append(snap.order, entry.Path)
		snap.states[entry.Path] = state
	}

	return snap
}

// Len returns the number of captured nodes.
func (s Snapshot) Len() int {
	return len(s.order)
}

// Paths returns the captured node paths in traversal order.
func (s Snapshot) Paths() []NodePath {
	return slices.Clone(s.order)
}

// State returns the captured state for path.
func (s Snapshot) State(path NodePath) (NodeState, bool) {
	state, ok := s.states[path]
	if !ok {
		return NodeState{}, false
	}

	state.Variants = state.Variants.Clone()

	return state, true
}

// Entries returns the snapshot content in traversal order.
func (s Snapshot) Entries() []NodeEntry {
	entries := make([]NodeEntry, 0, len(s.order))
	for _, path := range s.order {
		state, _ := s.State(path)
		entries = append(entries, NodeEntry{Path: path, State: state})
	}

	return entries
}
