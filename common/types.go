// package common contains plain types shared across the preview engine. They are not interface-wrapped structs, just plain structs that
// express commonly used data-types.
package common

import (
	"github.com/chewxy/math32"
	"github.com/cogentcore/webgpu/wgpu"
)

// TextureStagingData holds RGBA pixel data for a texture pending GPU upload.
// A renderer consumes this when the bound map of a material changes.
type TextureStagingData struct {
	// Pixels is the RGBA pixel data, 4 bytes per pixel, row-major.
	Pixels []byte
	// Width is the width of the texture in pixels.
	Width uint32
	// Height is the height of the texture in pixels.
	Height uint32
	// Format is the GPU texture format the pixels should be uploaded as. sRGB textures use TextureFormatRGBA8UnormSrgb.
	Format wgpu.TextureFormat
}

// SamplerStagingData holds the configuration for a sampler pending GPU creation.
type SamplerStagingData struct {
	// AddressModeU, AddressModeV, AddressModeW specify the addressing mode for texture coordinates outside the [0, 1] range.
	AddressModeU, AddressModeV, AddressModeW wgpu.AddressMode
	// MagFilter and MinFilter specify the filtering mode for magnification and minification.
	MagFilter, MinFilter wgpu.FilterMode
	// MipmapFilter specifies the filtering mode for mipmap level selection.
	MipmapFilter wgpu.MipmapFilterMode
	// LodMinClamp and LodMaxClamp specify the minimum and maximum level of detail for mipmapping.
	LodMinClamp, LodMaxClamp float32
	// MaxAnisotropy specifies the maximum anisotropy level for anisotropic filtering.
	MaxAnisotropy uint16
}

// UVTransform is the texture-space transform applied to a bound map: uniform or per-axis repeat,
// a rotation in radians and the pivot the rotation is applied around.
type UVTransform struct {
	// Repeat is the tiling factor along U and V.
	Repeat [2]float32
	// Rotation is the rotation of the texture coordinates in radians.
	Rotation float32
	// Center is the pivot for Rotation in UV space.
	Center [2]float32
}

// Matrix3 returns the column-major 3x3 UV matrix for the transform. The rotation pivots on Center,
// so a rotated map spins in place instead of around the UV origin.
//
// Returns:
//   - [9]float32: the column-major UV matrix
func (t UVTransform) Matrix3() [9]float32 {
	c, s := math32.Cos(t.Rotation), math32.Sin(t.Rotation)
	sx, sy := t.Repeat[0], t.Repeat[1]
	cx, cy := t.Center[0], t.Center[1]
	return [9]float32{
		sx * c, -sy * s, 0,
		sx * s, sy * c, 0,
		-sx*(c*cx+s*cy) + cx, -sy*(-s*cx+c*cy) + cy, 1,
	}
}
