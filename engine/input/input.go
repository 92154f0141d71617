// Package input maps window keys to preview actions.
package input

import (
	"github.com/Carmen-Shannon/oxy-fabric/common"
)

// Step sizes of the tiling keys.
const (
	RepeatStep   float32 = 0.25
	RotationStep float32 = 15
	// MinRepeat is the smallest repeat the keys can reach.
	MinRepeat float32 = 0.25
)

// ActionKind is what a key does.
type ActionKind int

const (
	ActionNone ActionKind = iota
	// ActionSelectGroup makes Group the target of dropped files.
	ActionSelectGroup
	// ActionRepeat changes the repeat factor by Delta.
	ActionRepeat
	// ActionRotate changes the rotation by Delta degrees.
	ActionRotate
	// ActionResetCamera frames the model again.
	ActionResetCamera
	// ActionOrbit rotates the camera by (Delta, Delta2) steps.
	ActionOrbit
	// ActionDump prints the material report.
	ActionDump
	// ActionLint prints naming issues.
	ActionLint
	// ActionQuit closes the preview.
	ActionQuit
)

// Action is the result of a key press.
type Action struct {
	Kind   ActionKind
	Group  string
	Delta  float32
	Delta2 float32
}

// MapKey maps a key code to an action. 0 selects ALL, 1 to 9 select the configured groups in order,
// [ and ] step the repeat, comma and period step the rotation, arrows orbit, R resets the camera,
// D dumps, L lints and Esc quits.
//
// Parameters:
//   - key: the GLFW key code
//   - groups: the configured group keys in display order
//   - all: the name of the whole-garment group
//
// Returns:
//   - Action: the action
//   - bool: false when the key is not bound
func MapKey(key uint32, groups []string, all string) (Action, bool) {
	switch {
	case key == common.Key0:
		return Action{Kind: ActionSelectGroup, Group: all}, true
	case key >= common.Key1 && key <= common.Key9:
		i := int(key - common.Key1)
		if i >= len(groups) {
			return Action{}, false
		}
		return Action{Kind: ActionSelectGroup, Group: groups[i]}, true
	}

	switch key {
	case common.KeyLeftBracket:
		return Action{Kind: ActionRepeat, Delta: -RepeatStep}, true
	case common.KeyRightBracket:
		return Action{Kind: ActionRepeat, Delta: RepeatStep}, true
	case common.KeyComma:
		return Action{Kind: ActionRotate, Delta: -RotationStep}, true
	case common.KeyPeriod:
		return Action{Kind: ActionRotate, Delta: RotationStep}, true
	case common.KeyLeft:
		return Action{Kind: ActionOrbit, Delta: -1}, true
	case common.KeyRight:
		return Action{Kind: ActionOrbit, Delta: 1}, true
	case common.KeyUp:
		return Action{Kind: ActionOrbit, Delta2: 1}, true
	case common.KeyDown:
		return Action{Kind: ActionOrbit, Delta2: -1}, true
	case common.KeyR:
		return Action{Kind: ActionResetCamera}, true
	case common.KeyD:
		return Action{Kind: ActionDump}, true
	case common.KeyL:
		return Action{Kind: ActionLint}, true
	case common.KeyEsc:
		return Action{Kind: ActionQuit}, true
	}
	return Action{}, false
}

// StepRepeat applies a repeat delta, never going below MinRepeat.
//
// Parameters:
//   - repeat: the current repeat
//   - delta: the change
//
// Returns:
//   - float32: the new repeat
func StepRepeat(repeat, delta float32) float32 {
	repeat += delta
	if repeat < MinRepeat {
		return MinRepeat
	}
	return repeat
}

// StepRotation applies a rotation delta and wraps the result into (-180, 180].
//
// Parameters:
//   - degrees: the current rotation
//   - delta: the change
//
// Returns:
//   - float32: the new rotation
func StepRotation(degrees, delta float32) float32 {
	degrees += delta
	for degrees > 180 {
		degrees -= 360
	}
	for degrees <= -180 {
		degrees += 360
	}
	return degrees
}
