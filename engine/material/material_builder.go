package material

import (
	"github.com/Carmen-Shannon/oxy-fabric/engine/texture"
)

// MaterialBuilderOption is a function that configures a material instance during construction.
type MaterialBuilderOption func(*material)

// WithName is an option builder that sets the name of the material.
//
// Parameters:
//   - name: the identifier for the material
//
// Returns:
//   - MaterialBuilderOption: a function that applies the name option to a material
func WithName(name string) MaterialBuilderOption {
	return func(m *material) {
		m.name = name
	}
}

// WithKind is an option builder that sets the shading model of the material.
//
// Parameters:
//   - kind: the shading model
//
// Returns:
//   - MaterialBuilderOption: a function that applies the kind option to a material
func WithKind(kind Kind) MaterialBuilderOption {
	return func(m *material) {
		m.kind = kind
	}
}

// WithBaseColor is an option builder that sets the albedo RGBA color of the material.
//
// Parameters:
//   - color: the base color as RGBA float32 values
//
// Returns:
//   - MaterialBuilderOption: a function that applies the base color option to a material
func WithBaseColor(color [4]float32) MaterialBuilderOption {
	return func(m *material) {
		m.baseColor = color
	}
}

// WithHexColor is an option builder that sets an opaque base color from a 0xRRGGBB value.
//
// Parameters:
//   - hex: the color as 0xRRGGBB
//
// Returns:
//   - MaterialBuilderOption: a function that applies the base color option to a material
func WithHexColor(hex uint32) MaterialBuilderOption {
	return func(m *material) {
		m.baseColor = [4]float32{
			float32((hex>>16)&0xff) / 255,
			float32((hex>>8)&0xff) / 255,
			float32(hex&0xff) / 255,
			1,
		}
	}
}

// WithMetalness is an option builder that sets the metalness factor of the material.
//
// Parameters:
//   - metalness: the metalness factor (0.0 = dielectric, 1.0 = metal)
//
// Returns:
//   - MaterialBuilderOption: a function that applies the metalness option to a material
func WithMetalness(metalness float32) MaterialBuilderOption {
	return func(m *material) {
		m.metalness = metalness
	}
}

// WithRoughness is an option builder that sets the roughness factor of the material.
//
// Parameters:
//   - roughness: the roughness factor (0.0 = smooth, 1.0 = rough)
//
// Returns:
//   - MaterialBuilderOption: a function that applies the roughness option to a material
func WithRoughness(roughness float32) MaterialBuilderOption {
	return func(m *material) {
		m.roughness = roughness
	}
}

// WithMap is an option builder that binds an initial base color map, such as one embedded in the model file.
// Ignored for kinds that do not support texturing.
//
// Parameters:
//   - tex: the map
//
// Returns:
//   - MaterialBuilderOption: a function that applies the map option to a material
func WithMap(tex texture.Texture) MaterialBuilderOption {
	return func(m *material) {
		m.texMap = tex
	}
}
