// Package camera holds the perspective camera of the preview, its orbit controller and the framing
// routine that fits a loaded garment into view.
package camera

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-fabric/common"
	"github.com/chewxy/math32"
)

type cameraImpl struct {
	mu *sync.Mutex

	up [3]float32

	fov    float32
	aspect float32
	near   float32
	far    float32

	viewMatrix           [16]float32
	projectionMatrix     [16]float32
	viewProjectionMatrix [16]float32

	controller CameraController
}

// Camera defines the interface for the preview camera.
// The camera holds perspective settings and computes view/projection matrices
// from its CameraController, which owns position and target.
type Camera interface {
	// Position returns the camera's world-space position.
	//
	// Returns:
	//   - [3]float32: the eye position
	Position() [3]float32

	// Target returns the look-at point.
	//
	// Returns:
	//   - [3]float32: the pivot the camera orbits
	Target() [3]float32

	// Up returns the camera's up vector.
	//
	// Returns:
	//   - [3]float32: the up vector
	Up() [3]float32

	// Fov returns the vertical field of view in radians.
	//
	// Returns:
	//   - float32: field of view in radians
	Fov() float32

	// Aspect returns the aspect ratio (width / height).
	//
	// Returns:
	//   - float32: the aspect ratio
	Aspect() float32

	// Near returns the near clipping plane distance.
	//
	// Returns:
	//   - float32: near plane distance
	Near() float32

	// Far returns the far clipping plane distance.
	//
	// Returns:
	//   - float32: far plane distance
	Far() float32

	// ViewMatrix returns the current 4x4 view matrix as 16 floats (column-major).
	//
	// Returns:
	//   - [16]float32: the view matrix
	ViewMatrix() [16]float32

	// ProjectionMatrix returns the current 4x4 projection matrix as 16 floats (column-major).
	//
	// Returns:
	//   - [16]float32: the projection matrix
	ProjectionMatrix() [16]float32

	// ViewProjectionMatrix returns the combined view-projection matrix as 16 floats (column-major).
	//
	// Returns:
	//   - [16]float32: the combined view-projection matrix
	ViewProjectionMatrix() [16]float32

	// Controller returns the orbit controller driving the camera.
	//
	// Returns:
	//   - CameraController: the controller
	Controller() CameraController

	// SetPose places the camera at position looking at target.
	//
	// Parameters:
	//   - position: the eye position
	//   - target: the look-at point
	SetPose(position, target [3]float32)

	// SetFov sets the vertical field of view in radians and recomputes matrices.
	//
	// Parameters:
	//   - fov: field of view in radians
	SetFov(fov float32)

	// SetAspect sets the aspect ratio (width / height) and recomputes matrices.
	//
	// Parameters:
	//   - aspect: the aspect ratio
	SetAspect(aspect float32)

	// SetClip sets the near and far clipping planes and recomputes matrices.
	//
	// Parameters:
	//   - near: near plane distance
	//   - far: far plane distance
	SetClip(near, far float32)

	// Fit frames bounds: the camera looks at the box center from in front of it, slightly raised, far
	// enough for the whole box to be visible, with clip planes scaled to the box. Empty or degenerate
	// bounds fall back to Reset.
	//
	// Parameters:
	//   - bounds: the world-space box to frame
	Fit(bounds common.Bounds)

	// Reset restores the default pose, looking at the origin from (0, 1.2, 3).
	Reset()

	// Update recomputes matrices from the controller. Call it once per frame.
	Update()
}

var _ Camera = &cameraImpl{}

// NewCamera creates a new Camera with the viewer's default perspective: 45 degree field of view,
// clip planes 0.1 to 100 and an orbit controller placed at (0, 1.6, 3.2) looking at the origin.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		mu:     &sync.Mutex{},
		up:     [3]float32{0, 1, 0},
		fov:    45 * math32.Pi / 180,
		aspect: 2,
		near:   0.1,
		far:    100,
	}
	for _, option := range options {
		option(c)
	}
	if c.controller == nil {
		c.controller = NewCameraController(WithPose(InitialPosition, [3]float32{}))
	}
	c.updateMatrices()
	return c
}

func (c *cameraImpl) Position() [3]float32 {
	return c.Controller().Position()
}

func (c *cameraImpl) Target() [3]float32 {
	return c.Controller().Target()
}

func (c *cameraImpl) Up() [3]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.up
}

func (c *cameraImpl) Fov() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fov
}

func (c *cameraImpl) Aspect() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.aspect
}

func (c *cameraImpl) Near() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.near
}

func (c *cameraImpl) Far() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.far
}

func (c *cameraImpl) ViewMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewMatrix
}

func (c *cameraImpl) ProjectionMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projectionMatrix
}

func (c *cameraImpl) ViewProjectionMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewProjectionMatrix
}

func (c *cameraImpl) Controller() CameraController {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.controller
}

func (c *cameraImpl) SetPose(position, target [3]float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.controller.SetPose(position, target)
	c.updateMatrices()
}

func (c *cameraImpl) SetFov(fov float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fov = fov
	c.updateMatrices()
}

func (c *cameraImpl) SetAspect(aspect float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.aspect = aspect
	c.updateMatrices()
}

func (c *cameraImpl) SetClip(near, far float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.near = near
	c.far = far
	c.updateMatrices()
}

func (c *cameraImpl) Fit(bounds common.Bounds) {
	pose, ok := FitPose(bounds, c.Fov())
	if !ok {
		c.Reset()
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.controller.SetPose(pose.Position, pose.Target)
	c.near = pose.Near
	c.far = pose.Far
	c.updateMatrices()
}

func (c *cameraImpl) Reset() {
	c.SetPose(ResetPosition, [3]float32{})
}

func (c *cameraImpl) Update() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.updateMatrices()
}

// updateMatrices recalculates the view, projection and view-projection matrices.
// Caller must hold the mutex.
func (c *cameraImpl) updateMatrices() {
	common.LookAt(c.viewMatrix[:], c.controller.Position(), c.controller.Target(), c.up)
	common.Perspective(c.projectionMatrix[:], c.fov, c.aspect, c.near, c.far)
	common.Mul4(c.viewProjectionMatrix[:], c.projectionMatrix[:], c.viewMatrix[:])
}
