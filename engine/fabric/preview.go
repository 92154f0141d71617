package fabric

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/Carmen-Shannon/oxy-fabric/common"
	"github.com/Carmen-Shannon/oxy-fabric/engine/decoder"
	"github.com/Carmen-Shannon/oxy-fabric/engine/material"
	"github.com/Carmen-Shannon/oxy-fabric/engine/scene"
	"github.com/Carmen-Shannon/oxy-fabric/engine/status"
	"github.com/Carmen-Shannon/oxy-fabric/engine/texture"
)

// ImageDecoder decodes uploads asynchronously. done may be called from any goroutine.
type ImageDecoder interface {
	Decode(src decoder.Source, done func(decoder.Result))
}

// SceneLoader loads a model file into a scene graph.
type SceneLoader interface {
	Load(path string) (scene.Node, error)
}

// StatusSurface shows transient user-facing messages.
type StatusSurface interface {
	Show(level status.Level, text string)
}

// CameraFitter frames the loaded model.
type CameraFitter interface {
	Fit(bounds common.Bounds)
	Reset()
}

// Placeholder material and shape shown after a failed load.
const (
	PlaceholderName      = "placeholder"
	PlaceholderColor     = 0x999999
	PlaceholderMetalness = 0.1
	PlaceholderRoughness = 0.7
)

// BindRequest identifies one upload waiting for its decode.
type BindRequest struct {
	Key        string
	Generation uint64
	Source     decoder.Source
}

// BindOutcome is the result of a completed bind.
type BindOutcome struct {
	Request BindRequest
	// Materials is the number of materials that received the texture.
	Materials int
	// Err is nil on success. It wraps ErrImageDecode, ErrStaleClassification or ErrGroupEmpty.
	Err error
}

// Preview is the texture preview session: the current scene, its classification, the shared tiling and
// the binds in flight. Every method must be called from the loop goroutine.
type Preview interface {
	// Open loads a model file with the configured SceneLoader. A failed load installs the placeholder and
	// returns an error wrapping ErrSceneLoad.
	//
	// Parameters:
	//   - path: the model file
	//
	// Returns:
	//   - *Classification: the new snapshot
	//   - error: ErrSceneLoad when the model could not be loaded
	Open(path string) (*Classification, error)

	// Load replaces the scene and classifies it in one step. Maps of materials that are not part of the
	// new scene are released.
	//
	// Parameters:
	//   - root: the new scene
	//
	// Returns:
	//   - *Classification: the new snapshot
	Load(root scene.Node) *Classification

	// LoadFailed replaces the scene with the placeholder box. Only ALL is populated.
	//
	// Parameters:
	//   - err: the load failure, reported to the user
	//
	// Returns:
	//   - *Classification: the placeholder snapshot
	LoadFailed(err error) *Classification

	// RequestBind resolves key against the current classification and, when it has members, submits src
	// for decoding. It returns immediately; the bind is applied by Complete once decoding finishes.
	//
	// Parameters:
	//   - src: the uploaded image
	//   - key: the group key, ALL for the whole garment
	//
	// Returns:
	//   - error: *GroupEmptyError, in which case nothing is decoded
	RequestBind(src decoder.Source, key string) error

	// Complete applies a finished decode. A failed decode or a request against a replaced classification
	// touches no material.
	//
	// Parameters:
	//   - req: the request being answered
	//   - res: the decode result
	//
	// Returns:
	//   - BindOutcome: what happened
	Complete(req BindRequest, res decoder.Result) BindOutcome

	// SetTiling stores the shared tiling and re-applies it to every bound texture.
	//
	// Parameters:
	//   - t: the new tiling
	//
	// Returns:
	//   - error: ErrInvalidTiling, in which case the previous tiling stays
	SetTiling(t Tiling) error

	// Tiling returns the shared tiling.
	Tiling() Tiling

	// ResetCamera frames the current scene, or restores the default pose when it has no extent.
	ResetCamera()

	// Classification returns the current snapshot.
	Classification() *Classification

	// Scene returns the current scene root.
	Scene() scene.Node

	// Pending returns the number of binds waiting for a decode.
	Pending() int

	// CounterLine renders the group sizes of the current snapshot.
	CounterLine() string
}

// preview is the implementation of the Preview interface.
type preview struct {
	classifier  Classifier
	decoder     ImageDecoder
	sceneLoader SceneLoader
	status      StatusSurface
	camera      CameraFitter
	post        func(fn func())
	hooks       []func(BindOutcome)
	placeholder func() scene.Node
	diagnostics io.Writer
	anisotropy  uint16
	logger      *slog.Logger

	root    scene.Node
	current *Classification
	tiling  Tiling
	pending int
}

var _ Preview = &preview{}

// NewPreview creates a Preview with an empty scene. Without WithPoster, completions run on the decoder's
// goroutine; that is only safe when the decoder itself calls back on the loop.
//
// Parameters:
//   - options: functional options to configure the preview
//
// Returns:
//   - Preview: the session
func NewPreview(options ...PreviewBuilderOption) Preview {
	p := &preview{
		tiling:      DefaultTiling(),
		anisotropy:  decoder.MaxAnisotropy,
		placeholder: NewPlaceholder,
		post:        func(fn func()) { fn() },
		logger:      slog.Default(),
	}
	for _, opt := range options {
		opt(p)
	}
	if p.classifier == nil {
		p.classifier = NewClassifier()
	}
	p.current = Classify(nil, p.classifier.Keys(), p.classifier.Prefix())
	return p
}

// NewPlaceholder builds the stand-in scene: a 1 x 1.2 x 0.5 box with a grey standard material.
//
// Returns:
//   - scene.Node: the placeholder root
func NewPlaceholder() scene.Node {
	mat := material.NewMaterial(
		material.WithName(PlaceholderName),
		material.WithKind(material.KindStandard),
		material.WithHexColor(PlaceholderColor),
		material.WithMetalness(PlaceholderMetalness),
		material.WithRoughness(PlaceholderRoughness),
	)
	return scene.NewBox(PlaceholderName, 1, 1.2, 0.5, mat)
}

func (p *preview) Open(path string) (*Classification, error) {
	if p.sceneLoader == nil {
		err := fmt.Errorf("%w: no scene loader", ErrSceneLoad)
		return p.LoadFailed(err), err
	}
	root, err := p.sceneLoader.Load(path)
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrSceneLoad, err)
		return p.LoadFailed(err), err
	}
	c := p.Load(root)
	p.logger.Info("model loaded", "path", path, "materials", len(c.all), "groups", c.CounterLine())
	return c, nil
}

func (p *preview) Load(root scene.Node) *Classification {
	c := p.replace(root, p.classifier.Classify)
	p.show(status.LevelInfo, fmt.Sprintf("loaded %d material(s)", len(c.all)))
	return c
}

func (p *preview) LoadFailed(err error) *Classification {
	c := p.replace(p.placeholder(), p.classifier.ClassifyPlaceholder)
	p.logger.Warn("model unavailable, using placeholder", "err", err)
	p.show(status.LevelError, "model unavailable, showing placeholder cube")
	return c
}

// replace swaps scene and classification as one step, releasing maps the new scene no longer uses.
func (p *preview) replace(root scene.Node, classify func(scene.Node) *Classification) *Classification {
	next := classify(root)

	kept := make(map[material.StandardMaterial]struct{}, len(next.all))
	for _, m := range next.all {
		kept[m] = struct{}{}
	}
	for _, m := range p.current.Union() {
		if _, ok := kept[m]; !ok {
			m.SetMap(nil)
		}
	}

	p.root = root
	p.current = next
	if p.diagnostics != nil {
		DumpWithLogger(p.diagnostics, next, p.logger)
	}
	p.ResetCamera()
	return next
}

func (p *preview) RequestBind(src decoder.Source, key string) error {
	key = NormalizeKey(key)
	if _, err := p.current.Resolve(key); err != nil {
		var empty *GroupEmptyError
		if errors.As(err, &empty) {
			p.show(status.LevelWarn, empty.Hint())
		}
		p.logger.Warn("bind rejected", "key", key, "source", src.Name, "err", err)
		return err
	}
	if p.decoder == nil {
		return fmt.Errorf("%w: no decoder configured", ErrImageDecode)
	}

	req := BindRequest{Key: key, Generation: p.current.Generation(), Source: src}
	p.pending++
	p.decoder.Decode(src, func(res decoder.Result) {
		p.post(func() {
			p.pending--
			p.Complete(req, res)
		})
	})
	return nil
}

func (p *preview) Complete(req BindRequest, res decoder.Result) BindOutcome {
	out := BindOutcome{Request: req}
	name := req.Source.Name

	switch {
	case res.Err != nil:
		out.Err = fmt.Errorf("%w: %w", ErrImageDecode, res.Err)
		p.logger.Error("image decode failed", "source", name, "key", req.Key, "err", res.Err)
		p.show(status.LevelError, fmt.Sprintf("could not read %s", name))

	case req.Generation != p.current.Generation():
		out.Err = fmt.Errorf("%w: %s requested for generation %d, current %d",
			ErrStaleClassification, name, req.Generation, p.current.Generation())
		p.logger.Warn("bind dropped", "source", name, "key", req.Key, "err", out.Err)
		p.show(status.LevelWarn, fmt.Sprintf("model reloaded, %s discarded", name))

	default:
		tex := texture.NewTexture(res.Image, texture.WithName(name))
		targets, err := Bind(p.current, req.Key, tex, p.tiling, p.anisotropy)
		if err != nil {
			out.Err = err
			p.show(status.LevelWarn, err.Error())
			break
		}
		out.Materials = len(targets)
		p.logger.Info("texture bound", "source", name, "key", req.Key, "materials", len(targets), "format", res.Format)
		if req.Key == AllKey {
			p.show(status.LevelInfo, "applied to the whole garment")
		} else {
			p.show(status.LevelInfo, fmt.Sprintf("applied to %s", req.Key))
		}
	}

	for _, hook := range p.hooks {
		hook(out)
	}
	return out
}

func (p *preview) SetTiling(t Tiling) error {
	if err := t.Valid(); err != nil {
		return err
	}
	p.tiling = t
	n := ApplyTiling(p.current, t)
	p.logger.Debug("tiling applied", "repeat", t.Repeat, "rotation", t.RotationDegrees, "textures", n)
	return nil
}

func (p *preview) Tiling() Tiling {
	return p.tiling
}

func (p *preview) ResetCamera() {
	if p.camera == nil {
		return
	}
	bounds := scene.WorldBounds(p.root)
	if bounds.IsEmpty() {
		p.camera.Reset()
		return
	}
	p.camera.Fit(bounds)
}

func (p *preview) Classification() *Classification {
	return p.current
}

func (p *preview) Scene() scene.Node {
	return p.root
}

func (p *preview) Pending() int {
	return p.pending
}

func (p *preview) CounterLine() string {
	return p.current.CounterLine()
}

func (p *preview) show(level status.Level, text string) {
	if p.status != nil {
		p.status.Show(level, text)
	}
}
