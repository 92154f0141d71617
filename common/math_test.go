package common

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
)

func TestComposeTRSRotatesAroundY(t *testing.T) {
	// 90 degrees around +Y maps +X onto -Z.
	half := math32.Pi / 4
	q := [4]float32{0, math32.Sin(half), 0, math32.Cos(half)}
	m := make([]float32, 16)
	ComposeTRS(m, [3]float32{0, 1, 0}, q, [3]float32{1, 1, 1})

	p := TransformPoint(m, [3]float32{1, 0, 0})
	assert.InDeltaSlice(t, []float32{0, 1, -1}, p[:], 1e-6)
}

func TestMul4Identity(t *testing.T) {
	id := make([]float32, 16)
	Identity(id)
	m := make([]float32, 16)
	ComposeTRS(m, [3]float32{1, 2, 3}, [4]float32{0, 0, 0, 1}, [3]float32{4, 5, 6})

	out := make([]float32, 16)
	Mul4(out, id, m)
	assert.Equal(t, m, out)
}

func TestUVTransformIdentity(t *testing.T) {
	uv := UVTransform{Repeat: [2]float32{1, 1}, Center: [2]float32{0.5, 0.5}}
	m := uv.Matrix3()
	assert.InDeltaSlice(t, []float32{1, 0, 0, 0, 1, 0, 0, 0, 1}, m[:], 1e-6)
}

func TestUVTransformKeepsCenterFixed(t *testing.T) {
	uv := UVTransform{Repeat: [2]float32{3, 3}, Rotation: math32.Pi / 4, Center: [2]float32{0.5, 0.5}}
	m := uv.Matrix3()

	// The pivot maps to itself for any repeat and rotation.
	u := m[0]*0.5 + m[3]*0.5 + m[6]
	v := m[1]*0.5 + m[4]*0.5 + m[7]
	assert.InDelta(t, 0.5, u, 1e-5)
	assert.InDelta(t, 0.5, v, 1e-5)
}

func TestCoalesce(t *testing.T) {
	assert.Equal(t, 3, Coalesce(0, 0, 3, 4))
	assert.Equal(t, "", Coalesce[string]())
}
