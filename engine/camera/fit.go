package camera

import (
	"github.com/Carmen-Shannon/oxy-fabric/common"
	"github.com/chewxy/math32"
)

// Framing constants.
const (
	// FitDistance is the share of the box diagonal kept between the view edge and the center.
	FitDistance float32 = 0.6
	// FitLift raises the eye above the box center by this share of the diagonal.
	FitLift float32 = 0.1
	// FitNear and FitFar scale the clip planes to the box diagonal.
	FitNear float32 = 1.0 / 100
	FitFar  float32 = 10
)

var (
	// InitialPosition is where a new camera starts.
	InitialPosition = [3]float32{0, 1.6, 3.2}
	// ResetPosition is where Reset puts the camera when no model is framed.
	ResetPosition = [3]float32{0, 1.2, 3}
)

// Pose is a camera placement with clip planes.
type Pose struct {
	Position [3]float32
	Target   [3]float32
	Near     float32
	Far      float32
}

// FitPose computes the pose framing bounds with a vertical field of view fov (radians).
//
// Parameters:
//   - bounds: the box to frame
//   - fov: the vertical field of view in radians
//
// Returns:
//   - Pose: the framing pose
//   - bool: false when the box is empty or has no extent
func FitPose(bounds common.Bounds, fov float32) (Pose, bool) {
	if bounds.IsEmpty() {
		return Pose{}, false
	}
	size := bounds.Diagonal()
	if size <= 0 || math32.IsInf(size, 0) || math32.IsNaN(size) {
		return Pose{}, false
	}

	center := bounds.Center()
	dist := size * FitDistance / math32.Tan(fov/2)
	return Pose{
		Position: common.Add3(center, [3]float32{0, size * FitLift, dist}),
		Target:   center,
		Near:     size * FitNear,
		Far:      size * FitFar,
	}, true
}
