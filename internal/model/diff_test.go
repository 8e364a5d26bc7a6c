package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeltaKind_String(t *testing.T) {
	assert.Equal(t, "material", DeltaMaterial.String())
	assert.Equal(t, "visibility", DeltaVisibility.String())
	assert.Equal(t, "variants", DeltaVariants.String())
	assert.Equal(t, "unknown", DeltaKind(42).String())
}

func TestDeltaKind_Text(t *testing.T) {
	for _, kind := range DeltaKinds {
		text, err := kind.MarshalText()
		require.NoError(t, err)

		var parsed DeltaKind
		require.NoError(t, parsed.UnmarshalText(text))
		assert.Equal(t, kind, parsed)
	}

	_, err := DeltaKind(-1).MarshalText()
	require.Error(t, err)

	var parsed DeltaKind
	require.Error(t, parsed.UnmarshalText([]byte("transform")))
}

func TestPathDiff_JSONKeysUseKindNames(t *testing.T) {
	d := PathDiff{
		Path: "/A",
		Deltas: map[DeltaKind]AttributeDelta{
			DeltaVisibility: {
				Kind: DeltaVisibility,
				A:    AttributeValue{Token: VisibilityInherited},
				B:    AttributeValue{Token: "invisible"},
			},
		},
	}

	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"path":"/A","diff":{"visibility":{"kind":"visibility","a":{"token":"inherited"},"b":{"token":"invisible"}}}}`,
		string(data))
}

func TestPathDiff_KindsInFixedOrder(t *testing.T) {
	d := PathDiff{Deltas: map[DeltaKind]AttributeDelta{
		DeltaVariants:   {Kind: DeltaVariants},
		DeltaMaterial:   {Kind: DeltaMaterial},
		DeltaVisibility: {Kind: DeltaVisibility},
	}}

	assert.Equal(t, []DeltaKind{DeltaMaterial, DeltaVisibility, DeltaVariants}, d.Kinds())

	_, ok := PathDiff{}.Delta(DeltaMaterial)
	assert.False(t, ok)
}

func TestAttributeValue_String(t *testing.T) {
	assert.Equal(t, "/Mat1", AttributeValue{Token: "/Mat1"}.String())
	assert.Equal(t, "{}", AttributeValue{Variants: VariantSelections{}}.String())
	assert.Equal(t, "{lod=high, look=red}", AttributeValue{Variants: VariantSelections{"look": "red", "lod": "high"}}.String())
}

func TestDiffSet_DeltaCount(t *testing.T) {
	set := DiffSet{
		{Path: "/A", Deltas: map[DeltaKind]AttributeDelta{DeltaMaterial: {}, DeltaVisibility: {}}},
		{Path: "/B", Deltas: map[DeltaKind]AttributeDelta{DeltaVariants: {}}},
	}

	assert.Equal(t, 3, set.DeltaCount())
	assert.Equal(t, 0, DiffSet{}.DeltaCount())
}
