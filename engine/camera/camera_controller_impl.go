package camera

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-fabric/common"
	"github.com/chewxy/math32"
)

// cameraControllerImpl is the single implementation of CameraController.
type cameraControllerImpl struct {
	mu *sync.Mutex

	position [3]float32
	target   [3]float32

	radius    float32
	azimuth   float32
	elevation float32

	minRadius    float32
	maxElevation float32

	orbitSpeed float32
	zoomSpeed  float32
}

var _ CameraController = &cameraControllerImpl{}

// NewCameraController creates an orbit controller looking at the origin from the initial viewer position.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - CameraController: the newly created controller
func NewCameraController(options ...CameraControllerOption) CameraController {
	cc := &cameraControllerImpl{
		mu:           &sync.Mutex{},
		minRadius:    1e-3,
		maxElevation: math32.Pi/2 - 0.01,
		orbitSpeed:   0.05,
		zoomSpeed:    0.1,
	}
	cc.setPose(InitialPosition, [3]float32{})

	for _, option := range options {
		option(cc)
	}
	return cc
}

// setPose derives spherical coordinates from position and target. Caller must hold the mutex
// or own the controller exclusively.
func (cc *cameraControllerImpl) setPose(position, target [3]float32) {
	cc.position = position
	cc.target = target

	offset := common.Sub3(position, target)
	cc.radius = common.Length3(offset)
	if cc.radius < cc.minRadius {
		cc.radius = cc.minRadius
		cc.azimuth = 0
		cc.elevation = 0
		cc.updatePosition()
		return
	}
	cc.azimuth = math32.Atan2(offset[0], offset[2])
	cc.elevation = math32.Asin(math32.Max(-1, math32.Min(1, offset[1]/cc.radius)))
}

// updatePosition recomputes the camera position from spherical coordinates.
// Caller must hold the mutex.
func (cc *cameraControllerImpl) updatePosition() {
	cosElev := math32.Cos(cc.elevation)
	sinElev := math32.Sin(cc.elevation)
	cosAzim := math32.Cos(cc.azimuth)
	sinAzim := math32.Sin(cc.azimuth)

	cc.position[0] = cc.target[0] + cc.radius*cosElev*sinAzim
	cc.position[1] = cc.target[1] + cc.radius*sinElev
	cc.position[2] = cc.target[2] + cc.radius*cosElev*cosAzim
}

func (cc *cameraControllerImpl) Position() [3]float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.position
}

func (cc *cameraControllerImpl) Target() [3]float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.target
}

func (cc *cameraControllerImpl) SetPose(position, target [3]float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.setPose(position, target)
}

func (cc *cameraControllerImpl) Orbit(azimuthSteps, elevationSteps float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.azimuth += azimuthSteps * cc.orbitSpeed
	cc.elevation += elevationSteps * cc.orbitSpeed
	if cc.elevation > cc.maxElevation {
		cc.elevation = cc.maxElevation
	}
	if cc.elevation < -cc.maxElevation {
		cc.elevation = -cc.maxElevation
	}
	cc.updatePosition()
}

func (cc *cameraControllerImpl) Zoom(delta float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.radius *= 1 - delta*cc.zoomSpeed
	if cc.radius < cc.minRadius {
		cc.radius = cc.minRadius
	}
	cc.updatePosition()
}

func (cc *cameraControllerImpl) Radius() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.radius
}

func (cc *cameraControllerImpl) Azimuth() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.azimuth
}

func (cc *cameraControllerImpl) Elevation() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.elevation
}

func (cc *cameraControllerImpl) OrbitSpeed() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.orbitSpeed
}

func (cc *cameraControllerImpl) ZoomSpeed() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.zoomSpeed
}
