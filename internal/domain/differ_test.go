package domain

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	m "truthcheck.dev/pkg/truthcheck/internal/model"
)

func snapshot(entries ...m.NodeEntry) m.Snapshot {
	return m.NewSnapshot(entries)
}

func node(path m.NodePath, material m.NodePath, visibility string, variants m.VariantSelections) m.NodeEntry {
	return m.NodeEntry{Path: path, State: m.NodeState{Material: material, Visibility: visibility, Variants: variants}}
}

func TestDiff(t *testing.T) {
	tests := []struct {
		name string
		a, b m.Snapshot
		want m.DiffSet
	}{
		{
			name: "identical snapshots",
			a:    snapshot(node("/A", "/Mat1", m.VisibilityInherited, nil)),
			b:    snapshot(node("/A", "/Mat1", m.VisibilityInherited, nil)),
			want: m.DiffSet{},
		},
		{
			name: "visibility change",
			a:    snapshot(node("/A", "", m.VisibilityInherited, nil)),
			b:    snapshot(node("/A", "", "invisible", nil)),
			want: m.DiffSet{{
				Path: "/A",
				Deltas: map[m.DeltaKind]m.AttributeDelta{
					m.DeltaVisibility: {
						Kind: m.DeltaVisibility,
						A:    m.AttributeValue{Token: m.VisibilityInherited},
						B:    m.AttributeValue{Token: "invisible"},
					},
				},
			}},
		},
		{
			name: "material rebound",
			a:    snapshot(node("/A", "/Mat1", m.VisibilityInherited, nil)),
			b:    snapshot(node("/A", "/Mat2", m.VisibilityInherited, nil)),
			want: m.DiffSet{{
				Path: "/A",
				Deltas: map[m.DeltaKind]m.AttributeDelta{
					m.DeltaMaterial: {
						Kind: m.DeltaMaterial,
						A:    m.AttributeValue{Token: "/Mat1"},
						B:    m.AttributeValue{Token: "/Mat2"},
					},
				},
			}},
		},
		{
			name: "variant mapping compared as a whole",
			a:    snapshot(node("/A", "", m.VisibilityInherited, m.VariantSelections{"look": "red", "lod": "high"})),
			b:    snapshot(node("/A", "", m.VisibilityInherited, m.VariantSelections{"look": "blue"})),
			want: m.DiffSet{{
				Path: "/A",
				Deltas: map[m.DeltaKind]m.AttributeDelta{
					m.DeltaVariants: {
						Kind: m.DeltaVariants,
						A:    m.AttributeValue{Variants: m.VariantSelections{"look": "red", "lod": "high"}},
						B:    m.AttributeValue{Variants: m.VariantSelections{"look": "blue"}},
					},
				},
			}},
		},
		{
			name: "variants removed on final side",
			a:    snapshot(node("/A", "", m.VisibilityInherited, m.VariantSelections{"look": "red"})),
			b:    snapshot(node("/A", "", m.VisibilityInherited, nil)),
			want: m.DiffSet{{
				Path: "/A",
				Deltas: map[m.DeltaKind]m.AttributeDelta{
					m.DeltaVariants: {
						Kind: m.DeltaVariants,
						A:    m.AttributeValue{Variants: m.VariantSelections{"look": "red"}},
						B:    m.AttributeValue{Variants: m.VariantSelections{}},
					},
				},
			}},
		},
		{
			name: "path only in final is skipped",
			a:    snapshot(node("/A", "", m.VisibilityInherited, nil)),
			b: snapshot(
				node("/A", "", m.VisibilityInherited, nil),
				node("/B", "/Mat1", "invisible", nil),
			),
			want: m.DiffSet{},
		},
		{
			name: "path only in review is skipped",
			a: snapshot(
				node("/A", "", m.VisibilityInherited, nil),
				node("/Gone", "", m.VisibilityInherited, nil),
			),
			b:    snapshot(node("/A", "", m.VisibilityInherited, nil)),
			want: m.DiffSet{},
		},
		{
			name: "all three kinds on one path in review order",
			a: snapshot(
				node("/World", "", m.VisibilityInherited, nil),
				node("/World/Chair", "/Mat1", m.VisibilityInherited, m.VariantSelections{"look": "red"}),
			),
			b: snapshot(
				node("/World/Chair", "/Mat2", "invisible", m.VariantSelections{"look": "blue"}),
				node("/World", "", "invisible", nil),
			),
			want: m.DiffSet{
				{
					Path: "/World",
					Deltas: map[m.DeltaKind]m.AttributeDelta{
						m.DeltaVisibility: {
							Kind: m.DeltaVisibility,
							A:    m.AttributeValue{Token: m.VisibilityInherited},
							B:    m.AttributeValue{Token: "invisible"},
						},
					},
				},
				{
					Path: "/World/Chair",
					Deltas: map[m.DeltaKind]m.AttributeDelta{
						m.DeltaMaterial: {
							Kind: m.DeltaMaterial,
							A:    m.AttributeValue{Token: "/Mat1"},
							B:    m.AttributeValue{Token: "/Mat2"},
						},
						m.DeltaVisibility: {
							Kind: m.DeltaVisibility,
							A:    m.AttributeValue{Token: m.VisibilityInherited},
							B:    m.AttributeValue{Token: "invisible"},
						},
						m.DeltaVariants: {
							Kind: m.DeltaVariants,
							A:    m.AttributeValue{Variants: m.VariantSelections{"look": "red"}},
							B:    m.AttributeValue{Variants: m.VariantSelections{"look": "blue"}},
						},
					},
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Diff(tt.a, tt.b)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Diff() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDiff_EmptyIffEquivalent(t *testing.T) {
	a := snapshot(
		node("/A", "/Mat1", m.VisibilityInherited, m.VariantSelections{"look": "red"}),
		node("/A/B", "", "invisible", nil),
	)
	b := snapshot(
		node("/A/B", "", "invisible", m.VariantSelections{}),
		node("/A", "/Mat1", m.VisibilityInherited, m.VariantSelections{"look": "red"}),
	)

	assert.Empty(t, Diff(a, b))
	assert.Empty(t, Diff(b, a))
	assert.NotNil(t, Diff(m.Snapshot{}, m.Snapshot{}))
}

func TestUnmatched(t *testing.T) {
	a := snapshot(node("/A", "", m.VisibilityInherited, nil), node("/Gone", "", m.VisibilityInherited, nil))
	b := snapshot(node("/A", "", m.VisibilityInherited, nil), node("/B", "", m.VisibilityInherited, nil), node("/C", "", m.VisibilityInherited, nil))

	onlyA, onlyB := Unmatched(a, b)
	assert.Equal(t, 1, onlyA)
	assert.Equal(t, 2, onlyB)
}
