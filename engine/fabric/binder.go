package fabric

import (
	"github.com/Carmen-Shannon/oxy-fabric/engine/material"
	"github.com/Carmen-Shannon/oxy-fabric/engine/texture"
	"github.com/cogentcore/webgpu/wgpu"
)

const (
	// MaxMetalness is the highest metalness left on a material after a bind.
	MaxMetalness float32 = 0.15
	// MinRoughness is the lowest roughness left on a material after a bind.
	MinRoughness float32 = 0.6
)

// NormalizeTexture prepares an uploaded texture for fabric display: sRGB color, repeat wrapping on both
// axes, the given anisotropy and a centered pivot.
//
// Parameters:
//   - tex: the texture
//   - anisotropy: the anisotropic filtering level
func NormalizeTexture(tex texture.Texture, anisotropy uint16) {
	tex.SetColorSpace(texture.ColorSpaceSRGB)
	tex.SetWrap(wgpu.AddressModeRepeat, wgpu.AddressModeRepeat)
	tex.SetAnisotropy(anisotropy)
	tex.SetCenter(0.5, 0.5)
	tex.MarkNeedsUpdate()
}

// Bind assigns tex to every material of the group key in c, clamps metalness and roughness toward a
// matte look, then re-applies tiling to every bound texture. The group is resolved before anything is
// touched: a *GroupEmptyError leaves every material unchanged.
//
// Parameters:
//   - c: the classification
//   - key: the target group, ALL for the whole garment
//   - tex: the decoded texture
//   - t: the current tiling
//   - anisotropy: the anisotropic filtering level
//
// Returns:
//   - []material.StandardMaterial: the materials that received tex
//   - error: *GroupEmptyError when the group has no members
func Bind(c *Classification, key string, tex texture.Texture, t Tiling, anisotropy uint16) ([]material.StandardMaterial, error) {
	targets, err := c.Resolve(key)
	if err != nil {
		return nil, err
	}

	NormalizeTexture(tex, anisotropy)
	for _, m := range targets {
		m.SetMap(tex)
		m.MarkNeedsUpdate()
		if m.Metalness() > MaxMetalness {
			m.SetMetalness(MaxMetalness)
		}
		if m.Roughness() < MinRoughness {
			m.SetRoughness(MinRoughness)
		}
	}

	ApplyTiling(c, t)
	return targets, nil
}
