package input

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-fabric/common"
	"github.com/stretchr/testify/assert"
)

func TestMapKeyGroups(t *testing.T) {
	groups := []string{"A", "B", "C"}

	a, ok := MapKey(common.Key0, groups, "ALL")
	assert.True(t, ok)
	assert.Equal(t, Action{Kind: ActionSelectGroup, Group: "ALL"}, a)

	a, ok = MapKey(common.Key1+2, groups, "ALL")
	assert.True(t, ok)
	assert.Equal(t, "C", a.Group)

	_, ok = MapKey(common.Key1+3, groups, "ALL")
	assert.False(t, ok)
}

func TestMapKeyTiling(t *testing.T) {
	cases := map[uint32]Action{
		common.KeyLeftBracket:  {Kind: ActionRepeat, Delta: -0.25},
		common.KeyRightBracket: {Kind: ActionRepeat, Delta: 0.25},
		common.KeyComma:        {Kind: ActionRotate, Delta: -15},
		common.KeyPeriod:       {Kind: ActionRotate, Delta: 15},
		common.KeyR:            {Kind: ActionResetCamera},
		common.KeyEsc:          {Kind: ActionQuit},
		common.KeyUp:           {Kind: ActionOrbit, Delta2: 1},
	}
	for key, want := range cases {
		got, ok := MapKey(key, nil, "ALL")
		assert.True(t, ok, "key %d", key)
		assert.Equal(t, want, got, "key %d", key)
	}

	_, ok := MapKey('Q', nil, "ALL")
	assert.False(t, ok)
}

func TestStepRepeat(t *testing.T) {
	assert.Equal(t, float32(1.25), StepRepeat(1, RepeatStep))
	assert.Equal(t, MinRepeat, StepRepeat(0.25, -RepeatStep))
}

func TestStepRotation(t *testing.T) {
	assert.Equal(t, float32(15), StepRotation(0, 15))
	assert.Equal(t, float32(-165), StepRotation(180, 15))
	assert.Equal(t, float32(180), StepRotation(-180+15, -15))
}
