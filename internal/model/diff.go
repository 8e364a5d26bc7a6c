package model

import (
	"fmt"
	"strings"
)

// DeltaKind enumerates the node attributes the differ compares.
type DeltaKind int

const (
	// DeltaMaterial is a direct material-binding mismatch.
	DeltaMaterial DeltaKind = iota
	// DeltaVisibility is a resolved visibility token mismatch.
	DeltaVisibility
	// DeltaVariants is a mismatch anywhere in the variant selection mapping.
	DeltaVariants
)

// DeltaKinds lists every kind in emission order.
var DeltaKinds = []DeltaKind{DeltaMaterial, DeltaVisibility, DeltaVariants}

func (k DeltaKind) String() string {
	switch k {
	case DeltaMaterial:
		return "material"
	case DeltaVisibility:
		return "visibility"
	case DeltaVariants:
		return "variants"
	default:
		return "unknown"
	}
}

// MarshalText lets DeltaKind serve as a JSON/YAML map key.
func (k DeltaKind) MarshalText() ([]byte, error) {
	if k < DeltaMaterial || k > DeltaVariants {
		return nil, fmt.Errorf("unknown delta kind %d", int(k))
	}

	return []byte(k.String()), nil
}

// UnmarshalText parses the text form produced by MarshalText.
func (k *DeltaKind) UnmarshalText(text []byte) error {
	for _, kind := range DeltaKinds {
		if kind.String() == string(text) {
			*k = kind
			return nil
		}
	}

	return fmt.Errorf("unknown delta kind %q", string(text))
}

// AttributeValue holds one side of a delta. Token carries the material
// target or visibility token; Variants carries the full selection mapping.
type AttributeValue struct {
	Token    string            `json:"token,omitempty" yaml:"token,omitempty"`
	Variants VariantSelections `json:"variants,omitempty" yaml:"variants,omitempty"`
}

func (v AttributeValue) String() string {
	if v.Variants == nil {
		return v.Token
	}

	pairs := make([]string, 0, len(v.Variants))
	for _, name := range v.Variants.Keys() {
		pairs = append(pairs, name+"="+v.Variants[name])
	}

	return "{" + strings.Join(pairs, ", ") + "}"
}

// AttributeDelta records a mismatch between review (A) and final (B).
type AttributeDelta struct {
	Kind DeltaKind      `json:"kind" yaml:"kind"`
	A    AttributeValue `json:"a" yaml:"a"`
	B    AttributeValue `json:"b" yaml:"b"`
}

// PathDiff lists the deltas found for one node present in both snapshots.
type PathDiff struct {
	Path   NodePath                     `json:"path" yaml:"path"`
	Deltas map[DeltaKind]AttributeDelta `json:"diff" yaml:"diff"`
}

// Delta returns the delta of the given kind, if any.
func (d PathDiff) Delta(kind DeltaKind) (AttributeDelta, bool) {
	delta, ok := d.Deltas[kind]
	return delta, ok
}

// Kinds returns the kinds present in this diff in fixed emission order.
func (d PathDiff) Kinds() []DeltaKind {
	kinds := make([]DeltaKind, 0, len(d.Deltas))
	for _, kind := range DeltaKinds {
		if _, ok := d.Deltas[kind]; ok {
			kinds = append(kinds, kind)
		}
	}

	return kinds
}

// DiffSet is the ordered set of path diffs, in review traversal order.
type DiffSet []PathDiff

// DeltaCount returns the total number of attribute deltas across all paths.
func (s DiffSet) DeltaCount() int {
	total := 0
	for _, d := range s {
		total += len(d.Deltas)
	}

	return total
}
