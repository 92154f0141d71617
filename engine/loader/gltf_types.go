package loader

import (
	"encoding/json"
)

// glTF 2.0 document structures, limited to what the preview needs: the node hierarchy, meshes and
// their material references, position accessors for bounds, and materials with their base color maps.
// Reference: https://registry.khronos.org/glTF/specs/2.0/glTF-2.0.html

// gltfDocument is the root object of a glTF file.
type gltfDocument struct {
	// Asset carries metadata about the glTF asset (required).
	Asset gltfAsset `json:"asset"`

	// Scene is the index of the default scene.
	Scene *int `json:"scene,omitempty"`

	// Scenes lists all scenes in the file.
	Scenes []gltfScene `json:"scenes,omitempty"`

	// Nodes lists all nodes in the file.
	Nodes []gltfNode `json:"nodes,omitempty"`

	// Meshes lists all meshes in the file.
	Meshes []gltfMesh `json:"meshes,omitempty"`

	// Accessors lists all accessors in the file.
	Accessors []gltfAccessor `json:"accessors,omitempty"`

	// BufferViews lists all buffer views in the file.
	BufferViews []gltfBufferView `json:"bufferViews,omitempty"`

	// Buffers lists all buffers in the file.
	Buffers []gltfBuffer `json:"buffers,omitempty"`

	// Materials lists all materials in the file.
	Materials []gltfMaterial `json:"materials,omitempty"`

	// Textures lists all textures in the file.
	Textures []gltfTexture `json:"textures,omitempty"`

	// Images lists all images in the file.
	Images []gltfImage `json:"images,omitempty"`

	// Samplers lists all samplers in the file.
	Samplers []gltfSampler `json:"samplers,omitempty"`

	// ExtensionsUsed names the extensions used anywhere in the file.
	ExtensionsUsed []string `json:"extensionsUsed,omitempty"`
}

// gltfAsset contains metadata about the glTF asset.
type gltfAsset struct {
	// Version is the glTF version (must be "2.0").
	Version string `json:"version"`

	// Generator is the tool that produced the file.
	Generator string `json:"generator,omitempty"`
}

// gltfScene is a set of root nodes.
type gltfScene struct {
	Name string `json:"name,omitempty"`

	Nodes []int `json:"nodes,omitempty"`
}

// gltfNode is a node in the hierarchy. A node carries either Matrix or any of Translation/Rotation/Scale.
type gltfNode struct {
	Name string `json:"name,omitempty"`

	Children []int `json:"children,omitempty"`

	Mesh *int `json:"mesh,omitempty"`

	Matrix *[16]float32 `json:"matrix,omitempty"`

	Translation *[3]float32 `json:"translation,omitempty"`

	// Rotation is a unit quaternion (x, y, z, w).
	Rotation *[4]float32 `json:"rotation,omitempty"`

	Scale *[3]float32 `json:"scale,omitempty"`
}

// gltfMesh is a set of primitives rendered together.
type gltfMesh struct {
	Name string `json:"name,omitempty"`

	Primitives []gltfPrimitive `json:"primitives"`
}

// gltfPrimitive is geometry rendered with a single material.
type gltfPrimitive struct {
	// Attributes maps attribute semantics (POSITION, NORMAL, ...) to accessor indices.
	Attributes map[string]int `json:"attributes"`

	Indices *int `json:"indices,omitempty"`

	Material *int `json:"material,omitempty"`

	Mode *int `json:"mode,omitempty"`
}

const (
	gltfAttributePosition = "POSITION"
)

// gltfAccessor is a typed view into a buffer view.
type gltfAccessor struct {
	BufferView *int `json:"bufferView,omitempty"`

	ByteOffset int `json:"byteOffset,omitempty"`

	ComponentType int `json:"componentType"`

	Count int `json:"count"`

	Type string `json:"type"`

	// Max and Min are the per-component bounds; required for POSITION accessors.
	Max []float32 `json:"max,omitempty"`

	Min []float32 `json:"min,omitempty"`
}

const (
	gltfComponentTypeByte          = 5120
	gltfComponentTypeUnsignedByte  = 5121
	gltfComponentTypeShort         = 5122
	gltfComponentTypeUnsignedShort = 5123
	gltfComponentTypeUnsignedInt   = 5125
	gltfComponentTypeFloat         = 5126
)

const (
	gltfAccessorTypeScalar = "SCALAR"
	gltfAccessorTypeVec2   = "VEC2"
	gltfAccessorTypeVec3   = "VEC3"
	gltfAccessorTypeVec4   = "VEC4"
	gltfAccessorTypeMat4   = "MAT4"
)

// gltfBufferView is a slice of a buffer.
type gltfBufferView struct {
	Buffer int `json:"buffer"`

	ByteOffset int `json:"byteOffset,omitempty"`

	ByteLength int `json:"byteLength"`

	ByteStride *int `json:"byteStride,omitempty"`
}

// gltfBuffer is binary data, from a URI or the GLB BIN chunk.
type gltfBuffer struct {
	URI string `json:"uri,omitempty"`

	ByteLength int `json:"byteLength"`

	// Data holds the loaded bytes (not part of JSON).
	Data []byte `json:"-"`
}

// gltfMaterial is a material definition. Extensions decide the shading model of the engine material.
type gltfMaterial struct {
	Name string `json:"name,omitempty"`

	PbrMetallicRoughness *gltfPbrMetallicRoughness `json:"pbrMetallicRoughness,omitempty"`

	Extensions map[string]json.RawMessage `json:"extensions,omitempty"`
}

// gltfPbrMetallicRoughness holds the metallic/roughness PBR parameters.
type gltfPbrMetallicRoughness struct {
	BaseColorFactor *[4]float32 `json:"baseColorFactor,omitempty"`

	BaseColorTexture *gltfTextureInfo `json:"baseColorTexture,omitempty"`

	MetallicFactor *float32 `json:"metallicFactor,omitempty"`

	RoughnessFactor *float32 `json:"roughnessFactor,omitempty"`
}

// gltfTextureInfo references a texture from a material.
type gltfTextureInfo struct {
	Index int `json:"index"`

	TexCoord int `json:"texCoord,omitempty"`
}

// gltfTexture pairs an image source with a sampler.
type gltfTexture struct {
	Sampler *int `json:"sampler,omitempty"`

	Source *int `json:"source,omitempty"`
}

// gltfImage is image data, embedded in a buffer view, a data URI, or an external file.
type gltfImage struct {
	Name string `json:"name,omitempty"`

	URI string `json:"uri,omitempty"`

	MimeType string `json:"mimeType,omitempty"`

	BufferView *int `json:"bufferView,omitempty"`
}

// gltfSampler holds texture filtering and wrapping.
type gltfSampler struct {
	MagFilter *int `json:"magFilter,omitempty"`

	MinFilter *int `json:"minFilter,omitempty"`

	WrapS *int `json:"wrapS,omitempty"`

	WrapT *int `json:"wrapT,omitempty"`
}

const (
	gltfWrapClampToEdge    = 33071
	gltfWrapMirroredRepeat = 33648
	gltfWrapRepeat         = 10497
)

// Material extensions that change the shading model.
const (
	gltfExtUnlit = "KHR_materials_unlit"
)

// gltfPhysicalExtensions are the material extensions that need a physical (beyond metallic/roughness) material.
var gltfPhysicalExtensions = []string{
	"KHR_materials_sheen",
	"KHR_materials_clearcoat",
	"KHR_materials_transmission",
	"KHR_materials_specular",
	"KHR_materials_ior",
	"KHR_materials_volume",
	"KHR_materials_iridescence",
}

// --- GLB Binary Format ---

// gltfGLBHeader is the 12-byte header of a GLB file.
type gltfGLBHeader struct {
	Magic   uint32 // Must be 0x46546C67 ("glTF" in ASCII)
	Version uint32 // Must be 2
	Length  uint32 // Total file length
}

// gltfGLBChunkHeader is the 8-byte header of each GLB chunk.
type gltfGLBChunkHeader struct {
	ChunkLength uint32
	ChunkType   uint32 // 0x4E4F534A for JSON, 0x004E4942 for BIN
}

const (
	gltfGLBMagic     = 0x46546C67 // "glTF" in little-endian ASCII
	gltfGLBVersion   = 2
	gltfGLBChunkJSON = 0x4E4F534A // "JSON" in little-endian ASCII
	gltfGLBChunkBIN  = 0x004E4942 // "BIN\0" in little-endian ASCII
)
