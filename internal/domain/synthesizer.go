package domain

import (
	"fmt"
	"strings"

	m "truthcheck.dev/pkg/truthcheck/internal/model"
)

const (
	layerHeader = "#usda 1.0\n(\n)\n"
	indentUnit  = "    "
)

// BlockKind is the specifier of a declaration block.
type BlockKind int

const (
	// Def defines the prim, creating it if the target composition lacks it.
	Def BlockKind = iota
	// Over only overrides opinions on a prim assumed to exist.
	Over
)

func (k BlockKind) String() string {
	if k == Over {
		return "over"
	}

	return "def"
}

// Block is one nested declaration of an override layer.
type Block struct {
	Kind     BlockKind
	Name     string
	Metadata []string // lines inside the (...) section, already indented relative to it
	Body     []string // property lines
	Children []*Block
}

// Render serializes the block and its children at the given depth.
func (b *Block) Render(sb *strings.Builder, depth int) {
	indent := strings.Repeat(indentUnit, depth)

	fmt.Fprintf(sb, "%s%s %q", indent, b.Kind, b.Name)

	if len(b.Metadata) > 0 {
		sb.WriteString(" (\n")

		for _, line := range b.Metadata {
			sb.WriteString(indent + indentUnit + line + "\n")
		}

		sb.WriteString(indent + ")")
	}

	sb.WriteString("\n" + indent + "{\n")

	for _, line := range b.Body {
		sb.WriteString(indent + indentUnit + line + "\n")
	}

	for i, child := range b.Children {
		if i > 0 || len(b.Body) > 0 {
			sb.WriteString("\n")
		}

		child.Render(sb, depth+1)
	}

	sb.WriteString(indent + "}\n")
}

// chain nests one block per path segment: the outermost segment is a def,
// inner segments are overs, and leaf receives the statements.
func chain(segments []string, leaf *Block) *Block {
	leaf.Name = segments[len(segments)-1]
	leaf.Kind = Over

	node := leaf
	for i := len(segments) - 2; i >= 0; i-- {
		node = &Block{Kind: Over, Name: segments[i], Children: []*Block{node}}
	}

	node.Kind = Def

	return node
}

// restatement builds the leaf block restating the review-side values of d,
// or nil when there is nothing to restate. Statement order is fixed:
// visibility, material, variants.
func restatement(d m.PathDiff) *Block {
	leaf := &Block{}

	if delta, ok := d.Delta(m.DeltaVisibility); ok {
		token := delta.A.Token
		if token == "" {
			token = m.VisibilityInherited
		}

		leaf.Body = append(leaf.Body, fmt.Sprintf("uniform token visibility = %q", token))
	}

	if delta, ok := d.Delta(m.DeltaMaterial); ok && delta.A.Token != "" {
		leaf.Metadata = append(leaf.Metadata, `prepend apiSchemas = ["MaterialBindingAPI"]`)
		leaf.Body = append(leaf.Body, fmt.Sprintf("rel material:binding = <%s>", delta.A.Token))
	}

	if delta, ok := d.Delta(m.DeltaVariants); ok && len(delta.A.Variants) > 0 {
		leaf.Metadata = append(leaf.Metadata, "variants = {")
		for _, set := range delta.A.Variants.Keys() {
			leaf.Metadata = append(leaf.Metadata, fmt.Sprintf("%sstring %s = %q", indentUnit, set, delta.A.Variants[set]))
		}

		leaf.Metadata = append(leaf.Metadata, "}")
	}

	if len(leaf.Body) == 0 && len(leaf.Metadata) == 0 {
		return nil
	}

	return leaf
}

// Synthesize turns diffs into an override layer restating the review values
// for every differing path. It is a pure function of its input.
//
// A binding that is absent on the review side cannot be restated, so
// material deltas toward "no binding" produce no statement.
func Synthesize(path m.Path, diffs m.DiffSet) m.OverrideLayer {
	chains := make([]string, 0, len(diffs))

	for _, d := range diffs {
		segments := d.Path.Segments()
		if len(segments) == 0 {
			continue
		}

		leaf := restatement(d)
		if leaf == nil {
			continue
		}

		var sb strings.Builder
		chain(segments, leaf).Render(&sb, 0)
		chains = append(chains, strings.TrimSuffix(sb.String(), "\n"))
	}

	text := layerHeader
	if len(chains) > 0 {
		text += "\n" + strings.Join(chains, "\n\n") + "\n"
	}

	return m.OverrideLayer{Path: path, Text: text, Blocks: len(chains)}
}
