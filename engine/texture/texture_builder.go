package texture

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// TextureBuilderOption is a function that configures a texture instance during construction.
type TextureBuilderOption func(*texture)

// WithName sets the identifier of the texture.
//
// Parameters:
//   - name: the texture name
//
// Returns:
//   - TextureBuilderOption: a function that applies the name option to a texture
func WithName(name string) TextureBuilderOption {
	return func(t *texture) {
		t.name = name
	}
}

// WithColorSpace sets the color space of the texture.
//
// Parameters:
//   - cs: the color space
//
// Returns:
//   - TextureBuilderOption: a function that applies the color space option to a texture
func WithColorSpace(cs ColorSpace) TextureBuilderOption {
	return func(t *texture) {
		t.colorSpace = cs
	}
}

// WithWrap sets the horizontal and vertical address modes.
//
// Parameters:
//   - s: horizontal wrap mode
//   - tt: vertical wrap mode
//
// Returns:
//   - TextureBuilderOption: a function that applies the wrap option to a texture
func WithWrap(s, tt wgpu.AddressMode) TextureBuilderOption {
	return func(t *texture) {
		t.wrapS = s
		t.wrapT = tt
	}
}

// WithAnisotropy sets the anisotropic filtering level.
//
// Parameters:
//   - level: the anisotropy level
//
// Returns:
//   - TextureBuilderOption: a function that applies the anisotropy option to a texture
func WithAnisotropy(level uint16) TextureBuilderOption {
	return func(t *texture) {
		t.anisotropy = max(level, 1)
	}
}
