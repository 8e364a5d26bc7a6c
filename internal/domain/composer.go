package domain

import (
	"fmt"
	"path/filepath"
	"strings"

	m "truthcheck.dev/pkg/truthcheck/internal/model"
)

// Compose stacks the fix layer over an optional existing session layer in a
// new composition root at out. Sub-layers are listed strongest first, so the
// fix layer wins wherever both restate an attribute. Asset paths are
// anchored relative to out; referenced layers are not checked for existence.
func Compose(existing, fix, out m.Path) (m.Composition, error) {
	layers := make([]m.Path, 0, 2)

	anchored, err := anchor(fix, out)
	if err != nil {
		return m.Composition{}, err
	}

	layers = append(layers, anchored)

	if existing != "" {
		anchored, err := anchor(existing, out)
		if err != nil {
			return m.Composition{}, err
		}

		layers = append(layers, anchored)
	}

	return m.Composition{Path: out, Layers: layers}, nil
}

// anchor rewrites layer as a path relative to the directory of root.
func anchor(layer, root m.Path) (m.Path, error) {
	absLayer, err := filepath.Abs(string(layer))
	if err != nil {
		return "", fmt.Errorf("resolve layer %s: %w", layer, err)
	}

	absRoot, err := filepath.Abs(string(root))
	if err != nil {
		return "", fmt.Errorf("resolve composition %s: %w", root, err)
	}

	rel, err := filepath.Rel(filepath.Dir(absRoot), absLayer)
	if err != nil {
		return m.Path(filepath.ToSlash(absLayer)), nil //nolint:nilerr // different volumes keep the absolute path
	}

	return m.Path(filepath.ToSlash(rel)), nil
}

// RenderComposition serializes c as a layer whose only content is its
// sub-layer list.
func RenderComposition(c m.Composition) string {
	refs := make([]string, 0, len(c.Layers))
	for _, layer := range c.Layers {
		refs = append(refs, "@"+string(layer)+"@")
	}

	return "#usda 1.0\n(\n    subLayers = [\n        " +
		strings.Join(refs, ",\n        ") +
		"\n    ]\n)\n"
}
