package adapter

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path"
	"slices"

	m "truthcheck.dev/pkg/truthcheck/internal/model"
)

var (
	errCrateUnsupported = errors.New("binary crate layers are not supported; flatten to ASCII with usdcat")
	errNotUSDA          = errors.New("not an ASCII USD layer (missing #usda header)")
)

// imageableTypes lists the schema types that carry a visual capability
// (UsdGeomImageable and its descendants).
var imageableTypes = map[string]bool{
	"Xform": true, "Scope": true, "Camera": true,
	"Mesh": true, "TetMesh": true,
	"Cube": true, "Sphere": true, "Cylinder": true, "Cylinder_1": true,
	"Cone": true, "Capsule": true, "Capsule_1": true, "Plane": true,
	"Points": true, "BasisCurves": true, "NurbsCurves": true, "HermiteCurves": true,
	"NurbsPatch": true, "PointInstancer": true, "Volume": true,
	"SkelRoot": true, "Skeleton": true,
	"DistantLight": true, "DomeLight": true, "DomeLight_1": true, "SphereLight": true,
	"RectLight": true, "DiskLight": true, "CylinderLight": true, "GeometryLight": true,
	"PortalLight": true,
}

// USDALoader reads ASCII USD layers (.usda, or .usd files with an ASCII
// header). Each file is treated as a single flattened layer: sub-layers,
// references and payloads are not composed, selected variants are.
type USDALoader struct{}

// NewUSDALoader constructs a USDALoader.
func NewUSDALoader() *USDALoader {
	return &USDALoader{}
}

// Open parses the layer at p into a traversable scene.
func (l *USDALoader) Open(p m.Path) (Scene, error) {
	data, err := os.ReadFile(string(p))
	if err != nil {
		return nil, &m.LoadError{Path: p, Err: err}
	}

	scene, err := ParseUSDA(data)
	if err != nil {
		return nil, &m.LoadError{Path: p, Err: err}
	}

	slog.Debug("loaded scene", "path", p, "roots", len(scene.Roots()))

	return scene, nil
}

// ParseUSDA parses ASCII USD text into a scene.
func ParseUSDA(data []byte) (Scene, error) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))

	switch {
	case bytes.HasPrefix(data, []byte("PXR-USDC")):
		return nil, errCrateUnsupported
	case !bytes.HasPrefix(data, []byte("#usda")):
		return nil, errNotUSDA
	}

	specs, err := newUSDAParser(string(data)).parseLayer()
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}

	return &usdaScene{roots: buildPrims("", specs)}, nil
}

type usdaScene struct {
	roots []Prim
}

func (s *usdaScene) Roots() []Prim {
	return s.roots
}

// buildPrims turns specs into prims, keeping only those the default
// traversal visits: defined, active, non-abstract.
func buildPrims(parent m.NodePath, specs []*primSpec) []Prim {
	prims := make([]Prim, 0, len(specs))

	for _, spec := range specs {
		composeVariants(spec)

		if spec.specifier != "def" || !spec.active {
			continue
		}

		primPath := m.NodePath(string(parent) + "/" + spec.name)
		prims = append(prims, &usdaPrim{
			path:     primPath,
			spec:     spec,
			children: buildPrims(primPath, spec.children),
		})
	}

	return prims
}

// composeVariants folds the selected variant of every declared set into the
// prim as weaker opinions. Variants may declare further sets.
func composeVariants(spec *primSpec) {
	done := map[string]bool{}

	for {
		pending := ""

		for _, set := range spec.variantSets {
			if !done[set] {
				pending = set
				break
			}
		}

		if pending == "" {
			return
		}

		done[pending] = true

		if body := spec.variantBodies[pending][spec.selections[pending]]; body != nil {
			mergeWeaker(spec, body)
		}
	}
}

func mergeWeaker(strong, weak *primSpec) {
	if strong.typeName == "" {
		strong.typeName = weak.typeName
	}

	if strong.specifier == "over" && weak.specifier == "def" {
		strong.specifier = "def"
	}

	if !strong.activeSet && weak.activeSet {
		strong.active, strong.activeSet = weak.active, true
	}

	if !strong.hasVisibility && weak.hasVisibility {
		strong.visibility, strong.hasVisibility = weak.visibility, true
	}

	if !strong.hasBinding && weak.hasBinding {
		strong.bindingTargets, strong.hasBinding = weak.bindingTargets, true
	}

	for set, selection := range weak.selections {
		if _, ok := strong.selections[set]; !ok {
			strong.selections[set] = selection
		}
	}

	for _, set := range weak.variantSets {
		strong.declareVariantSet(set)

		if strong.variantBodies[set] == nil {
			strong.variantBodies[set] = weak.variantBodies[set]
		}
	}

	for _, weakChild := range weak.children {
		if existing := strong.child(weakChild.name); existing != nil {
			mergeWeaker(existing, weakChild)
			continue
		}

		strong.children = append(strong.children, weakChild)
	}
}

type usdaPrim struct {
	path     m.NodePath
	spec     *primSpec
	children []Prim
}

func (p *usdaPrim) Path() m.NodePath  { return p.path }
func (p *usdaPrim) Children() []Prim  { return p.children }
func (p *usdaPrim) IsImageable() bool { return imageableTypes[p.spec.typeName] }

func (p *usdaPrim) Visibility() (string, bool) {
	return p.spec.visibility, p.spec.hasVisibility
}

func (p *usdaPrim) MaterialBindingTargets() []m.NodePath {
	targets := make([]m.NodePath, 0, len(p.spec.bindingTargets))
	for _, target := range p.spec.bindingTargets {
		targets = append(targets, resolveTarget(p.path, target))
	}

	return targets
}

func (p *usdaPrim) VariantSetNames() []string {
	return slices.Clone(p.spec.variantSets)
}

func (p *usdaPrim) VariantSelection(set string) string {
	return p.spec.selections[set]
}

// resolveTarget anchors a relative target path at the owning prim.
func resolveTarget(owner m.NodePath, target string) m.NodePath {
	if path.IsAbs(target) {
		return m.NodePath(path.Clean(target))
	}

	return m.NodePath(path.Join(string(owner), target))
}
