package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	m "truthcheck.dev/pkg/truthcheck/internal/model"
)

func visibilityDiff(path m.NodePath, a, b string) m.PathDiff {
	return m.PathDiff{Path: path, Deltas: map[m.DeltaKind]m.AttributeDelta{
		m.DeltaVisibility: {Kind: m.DeltaVisibility, A: m.AttributeValue{Token: a}, B: m.AttributeValue{Token: b}},
	}}
}

func materialDiff(path m.NodePath, a, b string) m.PathDiff {
	return m.PathDiff{Path: path, Deltas: map[m.DeltaKind]m.AttributeDelta{
		m.DeltaMaterial: {Kind: m.DeltaMaterial, A: m.AttributeValue{Token: a}, B: m.AttributeValue{Token: b}},
	}}
}

func TestSynthesize_Visibility(t *testing.T) {
	layer := Synthesize("out/truth_fix.usda", m.DiffSet{visibilityDiff("/A", m.VisibilityInherited, "invisible")})

	want := "#usda 1.0\n(\n)\n" +
		"\n" +
		"def \"A\"\n" +
		"{\n" +
		"    uniform token visibility = \"inherited\"\n" +
		"}\n"

	assert.Equal(t, want, layer.Text)
	assert.Equal(t, m.Path("out/truth_fix.usda"), layer.Path)
	assert.Equal(t, 1, layer.Blocks)
}

func TestSynthesize_MaterialNested(t *testing.T) {
	layer := Synthesize("fix.usda", m.DiffSet{materialDiff("/World/Geom/Chair", "/World/Looks/Mat1", "/World/Looks/Mat2")})

	want := "#usda 1.0\n(\n)\n" +
		"\n" +
		"def \"World\"\n" +
		"{\n" +
		"    over \"Geom\"\n" +
		"    {\n" +
		"        over \"Chair\" (\n" +
		"            prepend apiSchemas = [\"MaterialBindingAPI\"]\n" +
		"        )\n" +
		"        {\n" +
		"            rel material:binding = </World/Looks/Mat1>\n" +
		"        }\n" +
		"    }\n" +
		"}\n"

	assert.Equal(t, want, layer.Text)
}

func TestSynthesize_AllKindsInFixedOrder(t *testing.T) {
	d := m.PathDiff{Path: "/A", Deltas: map[m.DeltaKind]m.AttributeDelta{
		m.DeltaVariants: {
			Kind: m.DeltaVariants,
			A:    m.AttributeValue{Variants: m.VariantSelections{"look": "red", "lod": "high"}},
			B:    m.AttributeValue{Variants: m.VariantSelections{}},
		},
		m.DeltaMaterial:   {Kind: m.DeltaMaterial, A: m.AttributeValue{Token: "/Mat1"}, B: m.AttributeValue{Token: "/Mat2"}},
		m.DeltaVisibility: {Kind: m.DeltaVisibility, A: m.AttributeValue{Token: "invisible"}, B: m.AttributeValue{Token: m.VisibilityInherited}},
	}}

	layer := Synthesize("fix.usda", m.DiffSet{d})

	want := "#usda 1.0\n(\n)\n" +
		"\n" +
		"def \"A\" (\n" +
		"    prepend apiSchemas = [\"MaterialBindingAPI\"]\n" +
		"    variants = {\n" +
		"        string lod = \"high\"\n" +
		"        string look = \"red\"\n" +
		"    }\n" +
		")\n" +
		"{\n" +
		"    uniform token visibility = \"invisible\"\n" +
		"    rel material:binding = </Mat1>\n" +
		"}\n"

	assert.Equal(t, want, layer.Text)
}

func TestSynthesize_EmptyVisibilityDefaultsToInherited(t *testing.T) {
	layer := Synthesize("fix.usda", m.DiffSet{visibilityDiff("/A", "", "invisible")})
	assert.Contains(t, layer.Text, `uniform token visibility = "inherited"`)
}

func TestSynthesize_EmptyAuthoritativeValuesContributeNoBlock(t *testing.T) {
	d := m.PathDiff{Path: "/A", Deltas: map[m.DeltaKind]m.AttributeDelta{
		m.DeltaMaterial: {Kind: m.DeltaMaterial, A: m.AttributeValue{}, B: m.AttributeValue{Token: "/Mat2"}},
		m.DeltaVariants: {
			Kind: m.DeltaVariants,
			A:    m.AttributeValue{Variants: m.VariantSelections{}},
			B:    m.AttributeValue{Variants: m.VariantSelections{"look": "red"}},
		},
	}}

	layer := Synthesize("fix.usda", m.DiffSet{d})

	assert.Equal(t, "#usda 1.0\n(\n)\n", layer.Text)
	assert.True(t, layer.Empty())
}

func TestSynthesize_BlocksSeparatedByBlankLine(t *testing.T) {
	layer := Synthesize("fix.usda", m.DiffSet{
		visibilityDiff("/A", m.VisibilityInherited, "invisible"),
		materialDiff("/B", "", "/Mat2"),
		visibilityDiff("/C", "invisible", m.VisibilityInherited),
	})

	assert.Equal(t, 2, layer.Blocks)
	assert.Contains(t, layer.Text, "}\n\ndef \"C\"\n")
	assert.NotContains(t, layer.Text, "\"B\"")
	assert.True(t, strings.HasSuffix(layer.Text, "}\n"))
	assert.False(t, strings.HasSuffix(layer.Text, "\n\n"))
}

func TestSynthesize_Deterministic(t *testing.T) {
	diffs := m.DiffSet{
		{Path: "/World/Chair", Deltas: map[m.DeltaKind]m.AttributeDelta{
			m.DeltaVariants: {
				Kind: m.DeltaVariants,
				A:    m.AttributeValue{Variants: m.VariantSelections{"c": "3", "a": "1", "b": "2", "d": "4"}},
			},
			m.DeltaMaterial: {Kind: m.DeltaMaterial, A: m.AttributeValue{Token: "/Mat1"}},
		}},
		visibilityDiff("/World/Table", "invisible", m.VisibilityInherited),
	}

	first := Synthesize("fix.usda", diffs)
	for range 20 {
		assert.Equal(t, first, Synthesize("fix.usda", diffs))
	}
}

func TestSynthesize_NoDiffs(t *testing.T) {
	layer := Synthesize("fix.usda", m.DiffSet{})
	assert.Equal(t, "#usda 1.0\n(\n)\n", layer.Text)
	assert.Equal(t, 0, layer.Blocks)
}

func TestBlock_RenderSiblings(t *testing.T) {
	root := &Block{
		Kind: Def,
		Name: "World",
		Body: []string{`uniform token visibility = "inherited"`},
		Children: []*Block{
			{Kind: Over, Name: "A", Body: []string{"x"}},
			{Kind: Over, Name: "B"},
		},
	}

	var sb strings.Builder
	root.Render(&sb, 0)

	want := "def \"World\"\n" +
		"{\n" +
		"    uniform token visibility = \"inherited\"\n" +
		"\n" +
		"    over \"A\"\n" +
		"    {\n" +
		"        x\n" +
		"    }\n" +
		"\n" +
		"    over \"B\"\n" +
		"    {\n" +
		"    }\n" +
		"}\n"

	assert.Equal(t, want, sb.String())
	assert.Equal(t, "def", Def.String())
	assert.Equal(t, "over", Over.String())
}
