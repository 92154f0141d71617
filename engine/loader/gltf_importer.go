package loader

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/Carmen-Shannon/oxy-fabric/common"
	"github.com/Carmen-Shannon/oxy-fabric/engine/scene"
)

// gltfImporterImpl is the implementation of the gltfImporter interface.
type gltfImporterImpl struct {
	decode TextureDecoder
	logger *slog.Logger
}

// gltfImporter builds a scene graph from a glTF/GLB source.
type gltfImporter interface {
	// Import parses the file at path and builds its scene graph.
	//
	// Parameters:
	//   - path: path to the glTF or GLB file
	//
	// Returns:
	//   - scene.Node: the root of the imported graph
	//   - error: error if parsing or import fails
	Import(path string) (scene.Node, error)

	// ImportReader parses glTF data from a reader and builds its scene graph.
	//
	// Parameters:
	//   - name: name given to the root node
	//   - r: reader containing glTF JSON or GLB data
	//   - isGLB: true if the data is in GLB format
	//   - baseDir: directory used to resolve external resources
	//
	// Returns:
	//   - scene.Node: the root of the imported graph
	//   - error: error if parsing or import fails
	ImportReader(name string, r io.Reader, isGLB bool, baseDir string) (scene.Node, error)
}

var _ gltfImporter = &gltfImporterImpl{}

// newGLTFImporter creates a new importer.
//
// Parameters:
//   - decode: decoder for embedded base color maps, or nil to skip them
//   - logger: logger for non-fatal problems
//
// Returns:
//   - gltfImporter: the importer
func newGLTFImporter(decode TextureDecoder, logger *slog.Logger) gltfImporter {
	return &gltfImporterImpl{decode: decode, logger: logger}
}

func (imp *gltfImporterImpl) Import(path string) (scene.Node, error) {
	parser := newGLTFParser()
	if err := parser.Parse(path); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return imp.importFromParser(parser, path)
}

func (imp *gltfImporterImpl) ImportReader(name string, r io.Reader, isGLB bool, baseDir string) (scene.Node, error) {
	parser := newGLTFParser()
	if err := parser.ParseReader(r, isGLB, baseDir); err != nil {
		return nil, fmt.Errorf("failed to parse from reader: %w", err)
	}
	return imp.importFromParser(parser, name)
}

// importFromParser extracts materials once per document index, then builds nodes for the selected scene.
// Materials are shared by identity across every primitive that references the same index.
func (imp *gltfImporterImpl) importFromParser(parser gltfParser, fallbackPath string) (scene.Node, error) {
	doc := parser.Document()
	if doc == nil {
		return nil, fmt.Errorf("no document after parsing")
	}

	materials, err := newGLTFMaterialExtractor(parser, imp.decode, imp.logger).ExtractAllMaterials()
	if err != nil {
		return nil, fmt.Errorf("material extraction failed: %w", err)
	}
	surfaces := newGLTFSurfaceExtractor(parser, materials)

	root := scene.NewNode(scene.WithName(gltfExtractModelName(doc, fallbackPath)))

	building := make(map[int]bool)
	var build func(idx int) (scene.Node, error)
	build = func(idx int) (scene.Node, error) {
		if idx < 0 || idx >= len(doc.Nodes) {
			return nil, fmt.Errorf("node %d: %w", idx, errOutOfRange)
		}
		if building[idx] {
			return nil, fmt.Errorf("node %d: cycle in node hierarchy", idx)
		}
		building[idx] = true
		defer delete(building, idx)

		gn := &doc.Nodes[idx]
		n := scene.NewNode(scene.WithName(gn.Name), scene.WithLocalMatrix(gltfNodeMatrix(gn)))
		if gn.Mesh != nil {
			s, err := surfaces.ExtractSurface(*gn.Mesh)
			if err != nil {
				return nil, err
			}
			n.SetSurface(s)
		}
		for _, c := range gn.Children {
			child, err := build(c)
			if err != nil {
				return nil, err
			}
			n.AddChild(child)
		}
		return n, nil
	}

	for _, idx := range gltfRootNodes(doc) {
		n, err := build(idx)
		if err != nil {
			return nil, fmt.Errorf("node import failed: %w", err)
		}
		root.AddChild(n)
	}

	return root, nil
}

// --- Helper Functions ---

// gltfRootNodes returns the root nodes of the default scene. Files without scenes use every node that is
// not a child of another node.
func gltfRootNodes(doc *gltfDocument) []int {
	if len(doc.Scenes) > 0 {
		sceneIndex := 0
		if doc.Scene != nil && *doc.Scene >= 0 && *doc.Scene < len(doc.Scenes) {
			sceneIndex = *doc.Scene
		}
		return doc.Scenes[sceneIndex].Nodes
	}

	isChild := make([]bool, len(doc.Nodes))
	for _, n := range doc.Nodes {
		for _, c := range n.Children {
			if c >= 0 && c < len(isChild) {
				isChild[c] = true
			}
		}
	}
	var roots []int
	for i, child := range isChild {
		if !child {
			roots = append(roots, i)
		}
	}
	return roots
}

// gltfNodeMatrix returns the local transform of a node from its matrix or its TRS components.
func gltfNodeMatrix(n *gltfNode) [16]float32 {
	if n.Matrix != nil {
		return *n.Matrix
	}

	t := [3]float32{0, 0, 0}
	r := [4]float32{0, 0, 0, 1}
	s := [3]float32{1, 1, 1}
	if n.Translation != nil {
		t = *n.Translation
	}
	if n.Rotation != nil {
		r = *n.Rotation
	}
	if n.Scale != nil {
		s = *n.Scale
	}

	var m [16]float32
	common.ComposeTRS(m[:], t, r, s)
	return m
}

// gltfExtractModelName derives a model name from the default scene or a file path fallback.
func gltfExtractModelName(doc *gltfDocument, fallbackPath string) string {
	if doc.Scene != nil && *doc.Scene >= 0 && *doc.Scene < len(doc.Scenes) {
		if name := doc.Scenes[*doc.Scene].Name; name != "" {
			return name
		}
	}

	if fallbackPath != "" {
		base := filepath.Base(fallbackPath)
		return strings.TrimSuffix(base, filepath.Ext(base))
	}

	return "unnamed_model"
}
