package model

// OverrideLayer is a synthesized corrective layer and the path it belongs at.
type OverrideLayer struct {
	Path   Path
	Text   string
	Blocks int // number of top-level override chains in Text
}

// Empty reports whether the layer restates nothing.
func (l OverrideLayer) Empty() bool {
	return l.Blocks == 0
}

// Composition is a composition root listing sub-layers, strongest first.
type Composition struct {
	Path   Path
	Layers []Path
}
