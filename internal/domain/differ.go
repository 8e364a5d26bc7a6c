package domain

import (
	m "truthcheck.dev/pkg/truthcheck/internal/model"
)

// Diff compares review snapshot a (authoritative) with final snapshot b.
//
// Only paths present in both snapshots are compared; nodes added to or
// removed from the final revision are not reported and therefore cannot be
// fixed. An empty result means the revisions are structurally equivalent.
func Diff(a, b m.Snapshot) m.DiffSet {
	diffs := m.DiffSet{}

	for _, path := range a.Paths() {
		stateA, _ := a.State(path)

		stateB, ok := b.State(path)
		if !ok {
			continue
		}

		deltas := map[m.DeltaKind]m.AttributeDelta{}

		if stateA.Material != stateB.Material {
			deltas[m.DeltaMaterial] = m.AttributeDelta{
				Kind: m.DeltaMaterial,
				A:    m.AttributeValue{Token: string(stateA.Material)},
				B:    m.AttributeValue{Token: string(stateB.Material)},
			}
		}

		if stateA.Visibility != stateB.Visibility {
			deltas[m.DeltaVisibility] = m.AttributeDelta{
				Kind: m.DeltaVisibility,
				A:    m.AttributeValue{Token: stateA.Visibility},
				B:    m.AttributeValue{Token: stateB.Visibility},
			}
		}

		if !stateA.Variants.Equal(stateB.Variants) {
			deltas[m.DeltaVariants] = m.AttributeDelta{
				Kind: m.DeltaVariants,
				A:    m.AttributeValue{Variants: nonNil(stateA.Variants)},
				B:    m.AttributeValue{Variants: nonNil(stateB.Variants)},
			}
		}

		if len(deltas) > 0 {
			diffs = append(diffs, m.PathDiff{Path: path, Deltas: deltas})
		}
	}

	return diffs
}

// Unmatched counts the paths of each snapshot missing from the other.
func Unmatched(a, b m.Snapshot) (onlyA, onlyB int) {
	for _, path := range a.Paths() {
		if _, ok := b.State(path); !ok {
			onlyA++
		}
	}

	for _, path := range b.Paths() {
		if _, ok := a.State(path); !ok {
			onlyB++
		}
	}

	return onlyA, onlyB
}

func nonNil(v m.VariantSelections) m.VariantSelections {
	if v == nil {
		return m.VariantSelections{}
	}

	return v
}
