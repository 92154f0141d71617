package loader

import (
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/Carmen-Shannon/oxy-fabric/engine/material"
	"github.com/Carmen-Shannon/oxy-fabric/engine/texture"

	"github.com/cogentcore/webgpu/wgpu"
)

// TextureDecoder turns the encoded bytes of an embedded or referenced image into RGBA pixels.
type TextureDecoder func(data []byte) (*image.RGBA, error)

// gltfMaterialExtractorImpl is the implementation of the gltfMaterialExtractor interface.
type gltfMaterialExtractorImpl struct {
	parser gltfParser
	decode TextureDecoder
	logger *slog.Logger
}

// gltfMaterialExtractor converts glTF materials into engine materials.
type gltfMaterialExtractor interface {
	// ExtractMaterial extracts a single material by index, including its base color map when a decoder is set.
	//
	// Parameters:
	//   - materialIndex: the index of the material in the document
	//
	// Returns:
	//   - material.Material: the extracted material
	//   - error: error if extraction fails
	ExtractMaterial(materialIndex int) (material.Material, error)

	// ExtractAllMaterials extracts all materials from the document, in document order.
	//
	// Returns:
	//   - []material.Material: all extracted materials
	//   - error: error if extraction fails
	ExtractAllMaterials() ([]material.Material, error)
}

var _ gltfMaterialExtractor = &gltfMaterialExtractorImpl{}

// newGLTFMaterialExtractor creates a new material extractor for a parsed document.
//
// Parameters:
//   - parser: the parser containing a loaded document
//   - decode: decoder for base color maps, or nil to skip maps
//   - logger: logger for non-fatal map problems
//
// Returns:
//   - gltfMaterialExtractor: the material extractor
func newGLTFMaterialExtractor(parser gltfParser, decode TextureDecoder, logger *slog.Logger) gltfMaterialExtractor {
	return &gltfMaterialExtractorImpl{parser: parser, decode: decode, logger: logger}
}

func (e *gltfMaterialExtractorImpl) ExtractMaterial(materialIndex int) (material.Material, error) {
	doc := e.parser.Document()
	if doc == nil {
		return nil, fmt.Errorf("no document loaded")
	}
	if materialIndex < 0 || materialIndex >= len(doc.Materials) {
		return nil, fmt.Errorf("material %d: %w", materialIndex, errOutOfRange)
	}

	mat := &doc.Materials[materialIndex]

	// glTF defaults: white, fully metallic, fully rough.
	options := []material.MaterialBuilderOption{
		material.WithName(mat.Name),
		material.WithKind(gltfMaterialKind(mat)),
	}

	if pbr := mat.PbrMetallicRoughness; pbr != nil {
		if pbr.BaseColorFactor != nil {
			options = append(options, material.WithBaseColor(*pbr.BaseColorFactor))
		}
		if pbr.MetallicFactor != nil {
			options = append(options, material.WithMetalness(*pbr.MetallicFactor))
		}
		if pbr.RoughnessFactor != nil {
			options = append(options, material.WithRoughness(*pbr.RoughnessFactor))
		}

		if pbr.BaseColorTexture != nil && e.decode != nil {
			tex, err := e.loadTexture(pbr.BaseColorTexture.Index)
			if err != nil {
				e.logger.Warn("skipping base color map", "material", mat.Name, "error", err)
			} else if tex != nil {
				options = append(options, material.WithMap(tex))
			}
		}
	}

	return material.NewMaterial(options...), nil
}

func (e *gltfMaterialExtractorImpl) ExtractAllMaterials() ([]material.Material, error) {
	doc := e.parser.Document()
	if doc == nil {
		return nil, fmt.Errorf("no document loaded")
	}

	materials := make([]material.Material, len(doc.Materials))
	for i := range doc.Materials {
		mat, err := e.ExtractMaterial(i)
		if err != nil {
			return nil, fmt.Errorf("material %d: %w", i, err)
		}
		materials[i] = mat
	}
	return materials, nil
}

// gltfMaterialKind maps material extensions to a shading model. Unlit wins over everything else.
func gltfMaterialKind(mat *gltfMaterial) material.Kind {
	if _, ok := mat.Extensions[gltfExtUnlit]; ok {
		return material.KindBasic
	}
	for _, ext := range gltfPhysicalExtensions {
		if _, ok := mat.Extensions[ext]; ok {
			return material.KindPhysical
		}
	}
	return material.KindStandard
}

// loadTexture resolves a glTF texture index into a decoded base color map.
// Returns nil without error when the texture has no image source.
func (e *gltfMaterialExtractorImpl) loadTexture(textureIndex int) (texture.Texture, error) {
	doc := e.parser.Document()
	if textureIndex < 0 || textureIndex >= len(doc.Textures) {
		return nil, fmt.Errorf("texture %d: %w", textureIndex, errOutOfRange)
	}

	tex := &doc.Textures[textureIndex]
	if tex.Source == nil {
		return nil, nil
	}

	imageIndex := *tex.Source
	if imageIndex < 0 || imageIndex >= len(doc.Images) {
		return nil, fmt.Errorf("image %d: %w", imageIndex, errOutOfRange)
	}
	img := &doc.Images[imageIndex]

	data, err := e.readImage(img)
	if err != nil {
		return nil, err
	}

	rgba, err := e.decode(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %d: %w", imageIndex, err)
	}

	// Base color maps are authored in sRGB; glTF samplers default to repeat.
	wrapS, wrapT := wgpu.AddressModeRepeat, wgpu.AddressModeRepeat
	if tex.Sampler != nil && *tex.Sampler >= 0 && *tex.Sampler < len(doc.Samplers) {
		s := &doc.Samplers[*tex.Sampler]
		if s.WrapS != nil {
			wrapS = gltfWrapToAddressMode(*s.WrapS)
		}
		if s.WrapT != nil {
			wrapT = gltfWrapToAddressMode(*s.WrapT)
		}
	}

	name := img.Name
	if name == "" && !strings.HasPrefix(img.URI, "data:") {
		name = filepath.Base(img.URI)
	}

	return texture.NewTexture(rgba,
		texture.WithName(name),
		texture.WithColorSpace(texture.ColorSpaceSRGB),
		texture.WithWrap(wrapS, wrapT),
	), nil
}

// readImage returns the encoded bytes of an image from a buffer view, a data URI, or an external file.
func (e *gltfMaterialExtractorImpl) readImage(img *gltfImage) ([]byte, error) {
	// Case 1: Image embedded in a buffer view (common in GLB)
	if img.BufferView != nil {
		data, err := e.parser.ReadBufferView(*img.BufferView)
		if err != nil {
			return nil, fmt.Errorf("failed to read image buffer view: %w", err)
		}
		return data, nil
	}

	// Case 2: Data URI (base64 encoded inline)
	if strings.HasPrefix(img.URI, "data:") {
		data, _, err := decodeDataURI(img.URI)
		if err != nil {
			return nil, fmt.Errorf("failed to decode image data URI: %w", err)
		}
		return data, nil
	}

	// Case 3: External file reference
	if img.URI != "" {
		data, err := os.ReadFile(filepath.Join(e.parser.BaseDir(), img.URI))
		if err != nil {
			return nil, fmt.Errorf("failed to read image %q: %w", img.URI, err)
		}
		return data, nil
	}

	return nil, fmt.Errorf("image %q has no source", img.Name)
}

// gltfWrapToAddressMode converts a glTF wrap mode constant to a wgpu AddressMode.
//
// Parameters:
//   - wrap: the glTF wrap mode constant
//
// Returns:
//   - wgpu.AddressMode: the corresponding wgpu address mode
func gltfWrapToAddressMode(wrap int) wgpu.AddressMode {
	switch wrap {
	case gltfWrapClampToEdge:
		return wgpu.AddressModeClampToEdge
	case gltfWrapMirroredRepeat:
		return wgpu.AddressModeMirrorRepeat
	default:
		return wgpu.AddressModeRepeat
	}
}
