package camera

// CameraControllerOption is a functional option for configuring a CameraController.
type CameraControllerOption func(*cameraControllerImpl)

// WithPose sets the initial position and target.
//
// Parameters:
//   - position: world-space camera position
//   - target: world-space target position
//
// Returns:
//   - CameraControllerOption: option function to apply
func WithPose(position, target [3]float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.setPose(position, target)
	}
}

// WithOrbitSpeed sets the orbit speed in radians per step.
//
// Parameters:
//   - speed: radians per orbit step
//
// Returns:
//   - CameraControllerOption: option function to apply
func WithOrbitSpeed(speed float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.orbitSpeed = speed
	}
}

// WithZoomSpeed sets the fraction of the radius covered by one zoom step.
//
// Parameters:
//   - speed: zoom fraction per step
//
// Returns:
//   - CameraControllerOption: option function to apply
func WithZoomSpeed(speed float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.zoomSpeed = speed
	}
}
