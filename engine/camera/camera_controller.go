package camera

// CameraController owns the camera pose as spherical coordinates (radius, azimuth, elevation) around a
// target. The viewer drives it with keyboard orbit and zoom; framing replaces the pose wholesale.
type CameraController interface {
	// Position returns the camera's world-space position.
	//
	// Returns:
	//   - [3]float32: world-space camera position
	Position() [3]float32

	// Target returns the look-at point.
	//
	// Returns:
	//   - [3]float32: world-space target position
	Target() [3]float32

	// SetPose places the camera at position looking at target and derives the spherical coordinates
	// from the offset between them.
	//
	// Parameters:
	//   - position: world-space camera position
	//   - target: world-space target position
	SetPose(position, target [3]float32)

	// Orbit rotates the camera around the target. Elevation is clamped short of the poles.
	//
	// Parameters:
	//   - azimuthSteps: horizontal steps, positive to the right
	//   - elevationSteps: vertical steps, positive upward
	Orbit(azimuthSteps, elevationSteps float32)

	// Zoom scales the orbit radius. Positive delta moves toward the target.
	//
	// Parameters:
	//   - delta: zoom amount, scaled by ZoomSpeed
	Zoom(delta float32)

	// Radius returns the current distance from target.
	//
	// Returns:
	//   - float32: current distance from target
	Radius() float32

	// Azimuth returns the current horizontal angle around the Y axis.
	//
	// Returns:
	//   - float32: azimuth in radians
	Azimuth() float32

	// Elevation returns the current vertical angle from the horizontal plane.
	//
	// Returns:
	//   - float32: elevation in radians
	Elevation() float32

	// OrbitSpeed returns the orbit speed in radians per step.
	//
	// Returns:
	//   - float32: radians per orbit step
	OrbitSpeed() float32

	// ZoomSpeed returns the zoom speed multiplier.
	//
	// Returns:
	//   - float32: fraction of the radius per zoom step
	ZoomSpeed() float32
}
