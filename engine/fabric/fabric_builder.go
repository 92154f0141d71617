package fabric

import (
	"io"
	"log/slog"

	"github.com/Carmen-Shannon/oxy-fabric/engine/scene"
)

// ClassifierBuilderOption is a functional option for configuring a Classifier.
type ClassifierBuilderOption func(*classifier)

// WithKeys sets the named group keys. Keys are upper-cased; empty, duplicate and ALL keys are dropped.
//
// Parameters:
//   - keys: the group keys in display order
//
// Returns:
//   - ClassifierBuilderOption: option function to apply
func WithKeys(keys ...string) ClassifierBuilderOption {
	return func(c *classifier) {
		c.keys = append([]string(nil), keys...)
	}
}

// WithPrefix sets the material name prefix.
//
// Parameters:
//   - prefix: the prefix, matched case-insensitively
//
// Returns:
//   - ClassifierBuilderOption: option function to apply
func WithPrefix(prefix string) ClassifierBuilderOption {
	return func(c *classifier) {
		c.prefix = prefix
	}
}

// PreviewBuilderOption is a functional option for configuring a Preview.
type PreviewBuilderOption func(*preview)

// WithClassifier sets the classifier used on every load.
//
// Parameters:
//   - c: the classifier
//
// Returns:
//   - PreviewBuilderOption: option function to apply
func WithClassifier(c Classifier) PreviewBuilderOption {
	return func(p *preview) {
		p.classifier = c
	}
}

// WithDecoder sets the image decoder used by RequestBind.
//
// Parameters:
//   - d: the decoder
//
// Returns:
//   - PreviewBuilderOption: option function to apply
func WithDecoder(d ImageDecoder) PreviewBuilderOption {
	return func(p *preview) {
		p.decoder = d
	}
}

// WithSceneLoader sets the loader used by Open.
//
// Parameters:
//   - l: the scene loader
//
// Returns:
//   - PreviewBuilderOption: option function to apply
func WithSceneLoader(l SceneLoader) PreviewBuilderOption {
	return func(p *preview) {
		p.sceneLoader = l
	}
}

// WithStatus sets the surface that receives user-facing messages.
//
// Parameters:
//   - s: the status surface
//
// Returns:
//   - PreviewBuilderOption: option function to apply
func WithStatus(s StatusSurface) PreviewBuilderOption {
	return func(p *preview) {
		p.status = s
	}
}

// WithCamera sets the camera fitter framing each loaded scene.
//
// Parameters:
//   - f: the fitter
//
// Returns:
//   - PreviewBuilderOption: option function to apply
func WithCamera(f CameraFitter) PreviewBuilderOption {
	return func(p *preview) {
		p.camera = f
	}
}

// WithPoster sets how decode completions are handed back to the preview loop. post is called from decoder
// goroutines and must run fn on the loop goroutine. A nil post keeps the inline default.
//
// Parameters:
//   - post: the loop's post function
//
// Returns:
//   - PreviewBuilderOption: option function to apply
func WithPoster(post func(fn func())) PreviewBuilderOption {
	return func(p *preview) {
		if post != nil {
			p.post = post
		}
	}
}

// WithBindHook registers a callback receiving the outcome of every completed bind, on the loop goroutine.
//
// Parameters:
//   - hook: the callback
//
// Returns:
//   - PreviewBuilderOption: option function to apply
func WithBindHook(hook func(BindOutcome)) PreviewBuilderOption {
	return func(p *preview) {
		p.hooks = append(p.hooks, hook)
	}
}

// WithTiling sets the initial tiling.
//
// Parameters:
//   - t: the tiling
//
// Returns:
//   - PreviewBuilderOption: option function to apply
func WithTiling(t Tiling) PreviewBuilderOption {
	return func(p *preview) {
		if t.Valid() == nil {
			p.tiling = t
		}
	}
}

// WithAnisotropy sets the anisotropy applied to bound textures.
//
// Parameters:
//   - level: the anisotropy level
//
// Returns:
//   - PreviewBuilderOption: option function to apply
func WithAnisotropy(level uint16) PreviewBuilderOption {
	return func(p *preview) {
		p.anisotropy = level
	}
}

// WithDiagnostics dumps every new classification to w.
//
// Parameters:
//   - w: the diagnostic writer
//
// Returns:
//   - PreviewBuilderOption: option function to apply
func WithDiagnostics(w io.Writer) PreviewBuilderOption {
	return func(p *preview) {
		p.diagnostics = w
	}
}

// WithPlaceholder replaces the scene shown after a failed load.
//
// Parameters:
//   - build: returns a fresh placeholder graph
//
// Returns:
//   - PreviewBuilderOption: option function to apply
func WithPlaceholder(build func() scene.Node) PreviewBuilderOption {
	return func(p *preview) {
		p.placeholder = build
	}
}

// WithLogger sets the structured logger.
//
// Parameters:
//   - logger: the logger
//
// Returns:
//   - PreviewBuilderOption: option function to apply
func WithLogger(logger *slog.Logger) PreviewBuilderOption {
	return func(p *preview) {
		if logger != nil {
			p.logger = logger
		}
	}
}
