package texture

import (
	"image"

	"github.com/Carmen-Shannon/oxy-fabric/common"
	"github.com/cogentcore/webgpu/wgpu"
)

// ColorSpace describes how the pixel values of a texture are interpreted by the shader.
type ColorSpace int

const (
	// ColorSpaceLinear samples pixel values as-is.
	ColorSpaceLinear ColorSpace = iota
	// ColorSpaceSRGB decodes pixel values from the standard display color space before shading.
	ColorSpaceSRGB
)

// String returns the lowercase name of the color space.
func (c ColorSpace) String() string {
	switch c {
	case ColorSpaceSRGB:
		return "srgb"
	default:
		return "linear"
	}
}

// Format returns the GPU texture format that carries pixels in this color space.
//
// Returns:
//   - wgpu.TextureFormat: the RGBA8 format, sRGB or linear
func (c ColorSpace) Format() wgpu.TextureFormat {
	if c == ColorSpaceSRGB {
		return wgpu.TextureFormatRGBA8UnormSrgb
	}
	return wgpu.TextureFormatRGBA8Unorm
}

// Texture wraps a decoded image together with the sampling state a material needs to display it:
// color space, wrap modes, anisotropy and the UV transform (repeat, rotation, center).
//
// A Texture is shared by every material it is bound to. Materials Retain it when it is assigned
// and Release it when it is replaced; the decoded image is dropped once the last reference goes.
// Textures are owned by the preview event loop and are not safe for concurrent mutation.
type Texture interface {
	// Name retrieves the identifier of the texture, usually the uploaded file name.
	//
	// Returns:
	//   - string: the texture name
	Name() string

	// Image retrieves the decoded RGBA image, or nil once the texture has been released.
	//
	// Returns:
	//   - *image.RGBA: the decoded pixels
	Image() *image.RGBA

	// Size retrieves the pixel dimensions of the image captured at construction.
	//
	// Returns:
	//   - int: width in pixels
	//   - int: height in pixels
	Size() (int, int)

	// ColorSpace retrieves the color space the pixels are interpreted in.
	//
	// Returns:
	//   - ColorSpace: the color space
	ColorSpace() ColorSpace

	// SetColorSpace sets the color space the pixels are interpreted in.
	//
	// Parameters:
	//   - cs: the color space
	SetColorSpace(cs ColorSpace)

	// Wrap retrieves the horizontal and vertical address modes.
	//
	// Returns:
	//   - wgpu.AddressMode: horizontal (S/U) wrap mode
	//   - wgpu.AddressMode: vertical (T/V) wrap mode
	Wrap() (wgpu.AddressMode, wgpu.AddressMode)

	// SetWrap sets the horizontal and vertical address modes.
	//
	// Parameters:
	//   - s: horizontal (S/U) wrap mode
	//   - t: vertical (T/V) wrap mode
	SetWrap(s, t wgpu.AddressMode)

	// Anisotropy retrieves the anisotropic filtering level.
	//
	// Returns:
	//   - uint16: the anisotropy level (1 disables anisotropic filtering)
	Anisotropy() uint16

	// SetAnisotropy sets the anisotropic filtering level. Values below 1 are raised to 1.
	//
	// Parameters:
	//   - level: the anisotropy level
	SetAnisotropy(level uint16)

	// Repeat retrieves the tiling factor along U and V.
	//
	// Returns:
	//   - [2]float32: the repeat factors
	Repeat() [2]float32

	// SetRepeat sets the tiling factor along U and V.
	//
	// Parameters:
	//   - x: repeat along U
	//   - y: repeat along V
	SetRepeat(x, y float32)

	// Rotation retrieves the UV rotation in radians.
	//
	// Returns:
	//   - float32: rotation in radians
	Rotation() float32

	// SetRotation sets the UV rotation in radians.
	//
	// Parameters:
	//   - radians: rotation in radians
	SetRotation(radians float32)

	// Center retrieves the UV pivot for rotation.
	//
	// Returns:
	//   - [2]float32: the pivot in UV space
	Center() [2]float32

	// SetCenter sets the UV pivot for rotation.
	//
	// Parameters:
	//   - u: pivot U
	//   - v: pivot V
	SetCenter(u, v float32)

	// Transform retrieves the current UV transform.
	//
	// Returns:
	//   - common.UVTransform: repeat, rotation and center
	Transform() common.UVTransform

	// NeedsUpdate reports whether sampling state or pixels changed since the last upload.
	//
	// Returns:
	//   - bool: true when the renderer should re-upload
	NeedsUpdate() bool

	// MarkNeedsUpdate flags the texture for re-upload and bumps its version.
	MarkNeedsUpdate()

	// ClearNeedsUpdate is called by the consumer after it uploaded the texture.
	ClearNeedsUpdate()

	// Version retrieves a counter incremented on every MarkNeedsUpdate.
	//
	// Returns:
	//   - uint64: the version
	Version() uint64

	// Retain adds a reference held by a material.
	Retain()

	// Release drops a reference. The decoded image is dropped when no references remain.
	Release()

	// Refs retrieves the number of live references.
	//
	// Returns:
	//   - int: reference count
	Refs() int

	// StagingData converts the texture into GPU upload data in its color space's format.
	//
	// Returns:
	//   - common.TextureStagingData: pixels, size and format (empty once released)
	StagingData() common.TextureStagingData

	// SamplerData converts the sampling state into GPU sampler configuration.
	//
	// Returns:
	//   - common.SamplerStagingData: the sampler configuration
	SamplerData() common.SamplerStagingData
}

// texture is the implementation of the Texture interface.
type texture struct {
	name       string
	img        *image.RGBA
	width      int
	height     int
	colorSpace ColorSpace
	wrapS      wgpu.AddressMode
	wrapT      wgpu.AddressMode
	anisotropy uint16
	repeat     [2]float32
	rotation   float32
	center     [2]float32

	needsUpdate bool
	version     uint64
	refs        int
}

var _ Texture = &texture{}

// NewTexture creates a Texture around an already decoded image. Defaults are linear color space,
// clamp-to-edge wrapping, anisotropy 1, repeat (1,1), rotation 0 and center (0,0); the binder
// normalizes these before the texture is shown.
//
// Parameters:
//   - img: the decoded pixels (may be nil for a texture whose pixels arrive later)
//   - options: variadic list of TextureBuilderOption functions to configure the texture
//
// Returns:
//   - Texture: the new texture, flagged as needing upload
func NewTexture(img *image.RGBA, options ...TextureBuilderOption) Texture {
	t := &texture{
		img:         img,
		colorSpace:  ColorSpaceLinear,
		wrapS:       wgpu.AddressModeClampToEdge,
		wrapT:       wgpu.AddressModeClampToEdge,
		anisotropy:  1,
		repeat:      [2]float32{1, 1},
		needsUpdate: true,
		version:     1,
	}
	if img != nil {
		t.width = img.Bounds().Dx()
		t.height = img.Bounds().Dy()
	}
	for _, opt := range options {
		opt(t)
	}
	return t
}

func (t *texture) Name() string {
	return t.name
}

func (t *texture) Image() *image.RGBA {
	return t.img
}

func (t *texture) Size() (int, int) {
	return t.width, t.height
}

func (t *texture) ColorSpace() ColorSpace {
	return t.colorSpace
}

func (t *texture) SetColorSpace(cs ColorSpace) {
	t.colorSpace = cs
}

func (t *texture) Wrap() (wgpu.AddressMode, wgpu.AddressMode) {
	return t.wrapS, t.wrapT
}

func (t *texture) SetWrap(s, tt wgpu.AddressMode) {
	t.wrapS = s
	t.wrapT = tt
}

func (t *texture) Anisotropy() uint16 {
	return t.anisotropy
}

func (t *texture) SetAnisotropy(level uint16) {
	t.anisotropy = max(level, 1)
}

func (t *texture) Repeat() [2]float32 {
	return t.repeat
}

func (t *texture) SetRepeat(x, y float32) {
	t.repeat = [2]float32{x, y}
}

func (t *texture) Rotation() float32 {
	return t.rotation
}

func (t *texture) SetRotation(radians float32) {
	t.rotation = radians
}

func (t *texture) Center() [2]float32 {
	return t.center
}

func (t *texture) SetCenter(u, v float32) {
	t.center = [2]float32{u, v}
}

func (t *texture) Transform() common.UVTransform {
	return common.UVTransform{
		Repeat:   t.repeat,
		Rotation: t.rotation,
		Center:   t.center,
	}
}

func (t *texture) NeedsUpdate() bool {
	return t.needsUpdate
}

func (t *texture) MarkNeedsUpdate() {
	t.needsUpdate = true
	t.version++
}

func (t *texture) ClearNeedsUpdate() {
	t.needsUpdate = false
}

func (t *texture) Version() uint64 {
	return t.version
}

func (t *texture) Retain() {
	t.refs++
}

func (t *texture) Release() {
	if t.refs == 0 {
		return
	}
	t.refs--
	if t.refs == 0 {
		t.img = nil
	}
}

func (t *texture) Refs() int {
	return t.refs
}

func (t *texture) StagingData() common.TextureStagingData {
	if t.img == nil {
		return common.TextureStagingData{Format: t.colorSpace.Format()}
	}
	return common.TextureStagingData{
		Pixels: t.img.Pix,
		Width:  uint32(t.width),
		Height: uint32(t.height),
		Format: t.colorSpace.Format(),
	}
}

func (t *texture) SamplerData() common.SamplerStagingData {
	return common.SamplerStagingData{
		AddressModeU:  t.wrapS,
		AddressModeV:  t.wrapT,
		AddressModeW:  t.wrapS,
		MagFilter:     wgpu.FilterModeLinear,
		MinFilter:     wgpu.FilterModeLinear,
		MipmapFilter:  wgpu.MipmapFilterModeLinear,
		LodMinClamp:   0,
		LodMaxClamp:   32,
		MaxAnisotropy: common.Coalesce(t.anisotropy, 1),
	}
}
