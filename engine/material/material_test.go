package material

import (
	"image"
	"testing"

	"github.com/Carmen-Shannon/oxy-fabric/engine/texture"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMaterialKinds(t *testing.T) {
	std := NewMaterial(WithName("fabric_a_top"))
	assert.True(t, std.SupportsTexturing())
	_, ok := AsStandard(std)
	assert.True(t, ok)

	phys := NewMaterial(WithKind(KindPhysical))
	_, ok = AsStandard(phys)
	assert.True(t, ok)

	basic := NewMaterial(WithKind(KindBasic), WithName("unlit"))
	assert.False(t, basic.SupportsTexturing())
	_, ok = AsStandard(basic)
	assert.False(t, ok)

	_, ok = AsStandard(nil)
	assert.False(t, ok)
}

func TestNewMaterialDefaults(t *testing.T) {
	sm, ok := AsStandard(NewMaterial())
	require.True(t, ok)
	assert.Equal(t, float32(1), sm.Metalness())
	assert.Equal(t, float32(1), sm.Roughness())
	assert.Equal(t, [4]float32{1, 1, 1, 1}, sm.BaseColor())
	assert.Nil(t, sm.Map())
}

func TestWithHexColor(t *testing.T) {
	m := NewMaterial(WithHexColor(0x999999))
	c := m.BaseColor()
	assert.InDelta(t, 0.6, c[0], 1e-6)
	assert.InDelta(t, 0.6, c[1], 1e-6)
	assert.InDelta(t, 0.6, c[2], 1e-6)
	assert.Equal(t, float32(1), c[3])
}

func TestSetMapReferenceCounting(t *testing.T) {
	first := texture.NewTexture(image.NewRGBA(image.Rect(0, 0, 1, 1)))
	second := texture.NewTexture(image.NewRGBA(image.Rect(0, 0, 1, 1)))

	a, _ := AsStandard(NewMaterial())
	b, _ := AsStandard(NewMaterial())

	a.SetMap(first)
	b.SetMap(first)
	assert.Equal(t, 2, first.Refs())

	a.SetMap(first)
	assert.Equal(t, 2, first.Refs())

	a.SetMap(second)
	b.SetMap(second)
	assert.Equal(t, 0, first.Refs())
	assert.Nil(t, first.Image())
	assert.Equal(t, 2, second.Refs())
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "MeshStandardMaterial", KindStandard.String())
	assert.Equal(t, "MeshPhysicalMaterial", KindPhysical.String())
	assert.Equal(t, "MeshBasicMaterial", KindBasic.String())
	assert.Equal(t, "UnknownMaterial", KindUnknown.String())
}
