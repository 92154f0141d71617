package material

import (
	"github.com/Carmen-Shannon/oxy-fabric/engine/texture"
)

// Kind is the shading model of a material.
type Kind int

const (
	// KindUnknown is a material whose shading model could not be determined.
	KindUnknown Kind = iota
	// KindBasic is an unlit material. It has no metalness or roughness.
	KindBasic
	// KindStandard is a metallic/roughness PBR material.
	KindStandard
	// KindPhysical is a PBR material using extensions beyond metallic/roughness (sheen, clearcoat, ...).
	KindPhysical
)

// String returns the shading model name as printed in diagnostics.
func (k Kind) String() string {
	switch k {
	case KindBasic:
		return "MeshBasicMaterial"
	case KindStandard:
		return "MeshStandardMaterial"
	case KindPhysical:
		return "MeshPhysicalMaterial"
	default:
		return "UnknownMaterial"
	}
}

// Texturable reports whether materials of this kind carry a base color map and PBR shading parameters.
func (k Kind) Texturable() bool {
	return k == KindStandard || k == KindPhysical
}

// Material is the shading description attached to a surface. Identity is the interface value itself:
// two surfaces share a material when they hold the same Material.
type Material interface {
	// Name retrieves the author-given name of the material. It may be empty.
	//
	// Returns:
	//   - string: the name of the material
	Name() string

	// SetName renames the material. Groupings derived from names are not updated until the next classification.
	//
	// Parameters:
	//   - name: the new name
	SetName(name string)

	// Kind retrieves the shading model of the material.
	//
	// Returns:
	//   - Kind: the shading model
	Kind() Kind

	// BaseColor retrieves the albedo RGBA color of the material.
	//
	// Returns:
	//   - [4]float32: the base color as RGBA values
	BaseColor() [4]float32

	// SupportsTexturing reports whether the material implements StandardMaterial.
	//
	// Returns:
	//   - bool: true for standard and physical materials
	SupportsTexturing() bool
}

// StandardMaterial is the capability of a material to display a bound map and expose metalness and roughness.
// Only standard and physical materials implement it.
type StandardMaterial interface {
	Material

	// Metalness retrieves the metalness factor (0 = dielectric, 1 = metal).
	//
	// Returns:
	//   - float32: the metalness factor
	Metalness() float32

	// SetMetalness sets the metalness factor.
	//
	// Parameters:
	//   - v: the metalness factor
	SetMetalness(v float32)

	// Roughness retrieves the roughness factor (0 = smooth, 1 = rough).
	//
	// Returns:
	//   - float32: the roughness factor
	Roughness() float32

	// SetRoughness sets the roughness factor.
	//
	// Parameters:
	//   - v: the roughness factor
	SetRoughness(v float32)

	// Map retrieves the bound base color map, or nil.
	//
	// Returns:
	//   - texture.Texture: the bound map
	Map() texture.Texture

	// SetMap binds tex as the base color map. The new map is retained and the previous one released.
	// Binding the map that is already bound is a no-op for reference counts.
	//
	// Parameters:
	//   - tex: the map to bind, or nil to unbind
	SetMap(tex texture.Texture)

	// NeedsUpdate reports whether the shading state changed since the renderer last consumed it.
	//
	// Returns:
	//   - bool: true when the shader program must be refreshed
	NeedsUpdate() bool

	// MarkNeedsUpdate flags the material for a shading-state refresh.
	MarkNeedsUpdate()

	// ClearNeedsUpdate is called by the consumer after refreshing the shading state.
	ClearNeedsUpdate()
}

// AsStandard returns m as a StandardMaterial when it supports texturing.
//
// Parameters:
//   - m: the material to check
//
// Returns:
//   - StandardMaterial: the capability view of m
//   - bool: false when m is nil or does not support texturing
func AsStandard(m Material) (StandardMaterial, bool) {
	if m == nil || !m.SupportsTexturing() {
		return nil, false
	}
	sm, ok := m.(StandardMaterial)
	return sm, ok
}

// material is the implementation of the Material interface for non-texturable kinds.
type material struct {
	name      string
	kind      Kind
	baseColor [4]float32
	metalness float32
	roughness float32
	texMap    texture.Texture
}

// standardMaterial is the implementation of StandardMaterial.
type standardMaterial struct {
	*material
	needsUpdate bool
}

var (
	_ Material         = &material{}
	_ StandardMaterial = &standardMaterial{}
)

// NewMaterial creates a new Material configured with the provided options. The concrete type depends on the kind:
// standard and physical kinds return a StandardMaterial, every other kind a plain Material.
// Defaults follow glTF: standard kind, white base color, metalness 1 and roughness 1.
//
// Parameters:
//   - options: variadic list of MaterialBuilderOption functions to configure the material
//
// Returns:
//   - Material: a new Material instance
func NewMaterial(options ...MaterialBuilderOption) Material {
	m := &material{
		kind:      KindStandard,
		baseColor: [4]float32{1, 1, 1, 1},
		metalness: 1.0,
		roughness: 1.0,
	}
	for _, opt := range options {
		opt(m)
	}
	if !m.kind.Texturable() {
		m.texMap = nil
		return m
	}
	sm := &standardMaterial{material: m, needsUpdate: true}
	if m.texMap != nil {
		m.texMap.Retain()
	}
	return sm
}

func (m *material) Name() string {
	return m.name
}

func (m *material) SetName(name string) {
	m.name = name
}

func (m *material) Kind() Kind {
	return m.kind
}

func (m *material) BaseColor() [4]float32 {
	return m.baseColor
}

func (m *material) SupportsTexturing() bool {
	return false
}

func (m *standardMaterial) SupportsTexturing() bool {
	return true
}

func (m *standardMaterial) Metalness() float32 {
	return m.metalness
}

func (m *standardMaterial) SetMetalness(v float32) {
	m.metalness = v
}

func (m *standardMaterial) Roughness() float32 {
	return m.roughness
}

func (m *standardMaterial) SetRoughness(v float32) {
	m.roughness = v
}

func (m *standardMaterial) Map() texture.Texture {
	return m.texMap
}

func (m *standardMaterial) SetMap(tex texture.Texture) {
	if m.texMap == tex {
		return
	}
	if tex != nil {
		tex.Retain()
	}
	if m.texMap != nil {
		m.texMap.Release()
	}
	m.texMap = tex
}

func (m *standardMaterial) NeedsUpdate() bool {
	return m.needsUpdate
}

func (m *standardMaterial) MarkNeedsUpdate() {
	m.needsUpdate = true
}

func (m *standardMaterial) ClearNeedsUpdate() {
	m.needsUpdate = false
}
