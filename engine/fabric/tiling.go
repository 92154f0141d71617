package fabric

import (
	"fmt"
	"math"

	"github.com/Carmen-Shannon/oxy-fabric/engine/texture"
)

// Tiling is the repeat factor and rotation shared by every bound texture.
type Tiling struct {
	// Repeat is applied uniformly to both texture axes.
	Repeat float32
	// RotationDegrees rotates the texture around its center.
	RotationDegrees float32
}

// DefaultTiling is one repeat with no rotation.
func DefaultTiling() Tiling {
	return Tiling{Repeat: 1}
}

// Radians returns the rotation in radians.
func (t Tiling) Radians() float32 {
	return t.RotationDegrees * math.Pi / 180
}

// Valid reports whether the repeat factor is positive and both values are finite.
//
// Returns:
//   - error: ErrInvalidTiling when the tiling cannot be applied
func (t Tiling) Valid() error {
	r, d := float64(t.Repeat), float64(t.RotationDegrees)
	if math.IsNaN(r) || math.IsInf(r, 0) || r <= 0 {
		return fmt.Errorf("%w: repeat %v", ErrInvalidTiling, t.Repeat)
	}
	if math.IsNaN(d) || math.IsInf(d, 0) {
		return fmt.Errorf("%w: rotation %v", ErrInvalidTiling, t.RotationDegrees)
	}
	return nil
}

// ApplyTiling re-applies t to every texture bound on a material of c, across ALL and every named group.
// A texture shared by several materials is updated once. Materials without a map are left alone.
// Calling it again with the same tiling leaves the same state.
//
// Parameters:
//   - c: the classification, may be nil
//   - t: the tiling
//
// Returns:
//   - int: the number of distinct textures updated
func ApplyTiling(c *Classification, t Tiling) int {
	if c == nil {
		return 0
	}

	seen := make(map[texture.Texture]struct{})
	rad := t.Radians()
	for _, m := range c.Union() {
		tex := m.Map()
		if tex == nil {
			continue
		}
		if _, ok := seen[tex]; ok {
			continue
		}
		seen[tex] = struct{}{}

		tex.SetRepeat(t.Repeat, t.Repeat)
		tex.SetRotation(rad)
		tex.SetCenter(0.5, 0.5)
		tex.MarkNeedsUpdate()
	}
	return len(seen)
}
