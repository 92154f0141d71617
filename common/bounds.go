package common

import (
	"github.com/chewxy/math32"
)

// Bounds is an axis-aligned bounding box. The zero value is not empty; use EmptyBounds
// to start a box that is grown with Expand or Union.
type Bounds struct {
	// Min is the lowest corner.
	Min [3]float32
	// Max is the highest corner.
	Max [3]float32
}

// EmptyBounds returns an inverted box that contains nothing. Expanding it by any point yields
// a degenerate box around that point.
//
// Returns:
//   - Bounds: the empty box
func EmptyBounds() Bounds {
	inf := math32.Inf(1)
	return Bounds{
		Min: [3]float32{inf, inf, inf},
		Max: [3]float32{-inf, -inf, -inf},
	}
}

// IsEmpty reports whether the box contains no points.
func (b Bounds) IsEmpty() bool {
	return b.Max[0] < b.Min[0] || b.Max[1] < b.Min[1] || b.Max[2] < b.Min[2]
}

// Expand grows the box to include p.
//
// Parameters:
//   - p: the point to include
//
// Returns:
//   - Bounds: the grown box
func (b Bounds) Expand(p [3]float32) Bounds {
	for i := 0; i < 3; i++ {
		b.Min[i] = math32.Min(b.Min[i], p[i])
		b.Max[i] = math32.Max(b.Max[i], p[i])
	}
	return b
}

// Union returns the smallest box containing both b and o. Empty boxes are ignored.
//
// Parameters:
//   - o: the other box
//
// Returns:
//   - Bounds: the combined box
func (b Bounds) Union(o Bounds) Bounds {
	if o.IsEmpty() {
		return b
	}
	if b.IsEmpty() {
		return o
	}
	return b.Expand(o.Min).Expand(o.Max)
}

// Center returns the midpoint of the box.
func (b Bounds) Center() [3]float32 {
	return Scale3(Add3(b.Min, b.Max), 0.5)
}

// Diagonal returns the length of the box diagonal, the "size" a camera fit is based on.
// Empty boxes have a diagonal of 0.
func (b Bounds) Diagonal() float32 {
	if b.IsEmpty() {
		return 0
	}
	return Length3(Sub3(b.Max, b.Min))
}

// Transform returns the axis-aligned box enclosing the eight corners of b after applying m.
//
// Parameters:
//   - m: column-major 4x4 matrix
//
// Returns:
//   - Bounds: the transformed box
func (b Bounds) Transform(m []float32) Bounds {
	if b.IsEmpty() {
		return b
	}
	out := EmptyBounds()
	for i := 0; i < 8; i++ {
		corner := [3]float32{b.Min[0], b.Min[1], b.Min[2]}
		if i&1 != 0 {
			corner[0] = b.Max[0]
		}
		if i&2 != 0 {
			corner[1] = b.Max[1]
		}
		if i&4 != 0 {
			corner[2] = b.Max[2]
		}
		out = out.Expand(TransformPoint(m, corner))
	}
	return out
}
