package loader

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-fabric/common"
	"github.com/Carmen-Shannon/oxy-fabric/engine/material"
	"github.com/Carmen-Shannon/oxy-fabric/engine/scene"
)

// gltfSurfaceExtractorImpl is the implementation of the gltfSurfaceExtractor interface.
type gltfSurfaceExtractorImpl struct {
	parser    gltfParser
	materials []material.Material
	fallback  material.Material
	cache     map[int]*scene.Surface
}

// gltfSurfaceExtractor turns glTF meshes into scene surfaces. Every primitive contributes one material reference,
// so a mesh with several primitives becomes a multi-material surface.
type gltfSurfaceExtractor interface {
	// ExtractSurface returns the surface of a mesh. Repeated calls for the same mesh return the same surface.
	//
	// Parameters:
	//   - meshIndex: the index of the mesh in the document
	//
	// Returns:
	//   - *scene.Surface: the surface with material references and local bounds
	//   - error: error if the mesh or its position data is invalid
	ExtractSurface(meshIndex int) (*scene.Surface, error)
}

var _ gltfSurfaceExtractor = &gltfSurfaceExtractorImpl{}

// newGLTFSurfaceExtractor creates a surface extractor that resolves material indices against materials.
//
// Parameters:
//   - parser: the parser containing a loaded document
//   - materials: the extracted materials in document order
//
// Returns:
//   - gltfSurfaceExtractor: the surface extractor
func newGLTFSurfaceExtractor(parser gltfParser, materials []material.Material) gltfSurfaceExtractor {
	return &gltfSurfaceExtractorImpl{
		parser:    parser,
		materials: materials,
		cache:     make(map[int]*scene.Surface),
	}
}

func (e *gltfSurfaceExtractorImpl) ExtractSurface(meshIndex int) (*scene.Surface, error) {
	if s, ok := e.cache[meshIndex]; ok {
		return s, nil
	}

	doc := e.parser.Document()
	if meshIndex < 0 || meshIndex >= len(doc.Meshes) {
		return nil, fmt.Errorf("mesh %d: %w", meshIndex, errOutOfRange)
	}
	mesh := &doc.Meshes[meshIndex]

	surface := &scene.Surface{
		Materials: make([]material.Material, 0, len(mesh.Primitives)),
		Bounds:    common.EmptyBounds(),
	}
	for i := range mesh.Primitives {
		prim := &mesh.Primitives[i]

		mat, err := e.primitiveMaterial(prim)
		if err != nil {
			return nil, fmt.Errorf("mesh %q primitive %d: %w", mesh.Name, i, err)
		}
		surface.Materials = append(surface.Materials, mat)

		b, err := e.primitiveBounds(prim)
		if err != nil {
			return nil, fmt.Errorf("mesh %q primitive %d: %w", mesh.Name, i, err)
		}
		surface.Bounds = surface.Bounds.Union(b)
	}

	e.cache[meshIndex] = surface
	return surface, nil
}

// primitiveMaterial resolves the material of a primitive. Primitives without one share a single default
// standard material, as glTF prescribes.
func (e *gltfSurfaceExtractorImpl) primitiveMaterial(prim *gltfPrimitive) (material.Material, error) {
	if prim.Material == nil {
		if e.fallback == nil {
			e.fallback = material.NewMaterial()
		}
		return e.fallback, nil
	}
	idx := *prim.Material
	if idx < 0 || idx >= len(e.materials) {
		return nil, fmt.Errorf("material %d: %w", idx, errOutOfRange)
	}
	return e.materials[idx], nil
}

// primitiveBounds returns the local bounds of a primitive from its POSITION accessor. The accessor min/max
// are used when present, otherwise the positions are scanned.
func (e *gltfSurfaceExtractorImpl) primitiveBounds(prim *gltfPrimitive) (common.Bounds, error) {
	posIndex, ok := prim.Attributes[gltfAttributePosition]
	if !ok {
		return common.EmptyBounds(), nil
	}

	doc := e.parser.Document()
	if posIndex < 0 || posIndex >= len(doc.Accessors) {
		return common.Bounds{}, fmt.Errorf("accessor %d: %w", posIndex, errOutOfRange)
	}

	acc := &doc.Accessors[posIndex]
	if len(acc.Min) == 3 && len(acc.Max) == 3 {
		return common.Bounds{
			Min: [3]float32{acc.Min[0], acc.Min[1], acc.Min[2]},
			Max: [3]float32{acc.Max[0], acc.Max[1], acc.Max[2]},
		}, nil
	}

	positions, err := e.parser.ReadVec3Accessor(posIndex)
	if err != nil {
		return common.Bounds{}, err
	}
	b := common.EmptyBounds()
	for _, p := range positions {
		b = b.Expand(p)
	}
	return b, nil
}
