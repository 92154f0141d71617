package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/Carmen-Shannon/oxy-fabric/engine/camera"
	"github.com/Carmen-Shannon/oxy-fabric/engine/config"
	"github.com/Carmen-Shannon/oxy-fabric/engine/decoder"
	"github.com/Carmen-Shannon/oxy-fabric/engine/fabric"
	"github.com/Carmen-Shannon/oxy-fabric/engine/input"
	"github.com/Carmen-Shannon/oxy-fabric/engine/loader"
	"github.com/Carmen-Shannon/oxy-fabric/engine/status"
	"gopkg.in/yaml.v3"
)

// session wires the preview collaborators for one model.
type session struct {
	cfg       config.Config
	modelPath string
	out       io.Writer
	logger    *slog.Logger

	board   status.Board
	decoder decoder.Decoder
	camera  camera.Camera
	preview fabric.Preview

	// selected is the group dropped files bind to.
	selected string
}

// newSession builds the collaborators from cfg. post hands decode completions to the loop.
func newSession(cfg config.Config, modelPath string, out io.Writer, post func(fn func()), extra ...fabric.PreviewBuilderOption) *session {
	logger := slog.Default()
	s := &session{
		cfg:       cfg,
		modelPath: modelPath,
		out:       out,
		logger:    logger,
		selected:  fabric.AllKey,
	}

	s.board = status.NewBoard(status.WithTimeout(cfg.StatusTimeout()), status.WithTerminal(out))
	s.decoder = decoder.NewDecoder(
		decoder.WithWorkers(cfg.DecodeWorkers),
		decoder.WithMaxSize(cfg.MaxTextureSize),
		decoder.WithLogger(logger),
	)
	s.camera = camera.NewCamera(camera.WithAspect(float32(cfg.Window.Width) / float32(max(cfg.Window.Height, 1))))

	sceneLoader := loader.NewLoader(loader.BackendTypeGLTF,
		loader.WithTextureDecoder(decoder.LoaderDecoder(s.decoder.MaxSize())),
		loader.WithLogger(logger),
	)

	opts := []fabric.PreviewBuilderOption{
		fabric.WithClassifier(fabric.NewClassifier(fabric.WithKeys(cfg.GroupKeys...), fabric.WithPrefix(cfg.GroupPrefix))),
		fabric.WithDecoder(s.decoder),
		fabric.WithSceneLoader(sceneLoader),
		fabric.WithStatus(s.board),
		fabric.WithCamera(s.camera),
		fabric.WithPoster(post),
		fabric.WithTiling(fabric.Tiling{Repeat: cfg.Repeat, RotationDegrees: cfg.RotationDegrees}),
		fabric.WithLogger(logger),
	}
	s.preview = fabric.NewPreview(append(opts, extra...)...)
	return s
}

// reload loads the model again, replacing scene and classification in one step.
func (s *session) reload() {
	if _, err := s.preview.Open(s.modelPath); err != nil {
		s.logger.Warn("model load failed", "path", s.modelPath, "err", err)
	}
	fmt.Fprintln(s.out, s.preview.CounterLine())
}

// printLint writes naming issues, one per line.
func (s *session) printLint() {
	issues := fabric.Lint(s.preview.Classification())
	if len(issues) == 0 {
		fmt.Fprintln(s.out, "no naming issues")
		return
	}
	for _, issue := range issues {
		fmt.Fprintln(s.out, issue.String())
	}
}

// printReport writes the material state as YAML.
func (s *session) printReport() error {
	enc := yaml.NewEncoder(s.out)
	enc.SetIndent(2)
	if err := enc.Encode(fabric.Describe(s.preview.Classification())); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return enc.Close()
}

// apply performs a window action and reports whether the preview should quit.
func (s *session) apply(action input.Action) bool {
	switch action.Kind {
	case input.ActionSelectGroup:
		s.selected = action.Group
		s.board.Show(status.LevelInfo, fmt.Sprintf("drop images to texture %s", action.Group))
	case input.ActionRepeat:
		t := s.preview.Tiling()
		t.Repeat = input.StepRepeat(t.Repeat, action.Delta)
		s.setTiling(t)
	case input.ActionRotate:
		t := s.preview.Tiling()
		t.RotationDegrees = input.StepRotation(t.RotationDegrees, action.Delta)
		s.setTiling(t)
	case input.ActionResetCamera:
		s.preview.ResetCamera()
	case input.ActionOrbit:
		s.camera.Controller().Orbit(action.Delta, action.Delta2)
		s.camera.Update()
	case input.ActionDump:
		fabric.DumpWithLogger(s.out, s.preview.Classification(), s.logger)
	case input.ActionLint:
		s.printLint()
	case input.ActionQuit:
		return true
	}
	return false
}

func (s *session) setTiling(t fabric.Tiling) {
	if err := s.preview.SetTiling(t); err != nil {
		s.board.Show(status.LevelWarn, err.Error())
		return
	}
	s.board.Show(status.LevelInfo, fmt.Sprintf("repeat %.2f, rotation %.0f deg", t.Repeat, t.RotationDegrees))
}

// bindFiles requests a bind of every path to the selected group.
func (s *session) bindFiles(paths []string) {
	for _, p := range paths {
		if err := s.preview.RequestBind(decoder.FileSource(p), s.selected); err != nil {
			s.logger.Debug("drop rejected", "path", p, "err", err)
		}
	}
}

// title renders the window title: name, target group, counters and the visible status message.
func (s *session) title() string {
	parts := []string{s.cfg.Window.Title, "target " + s.selected, s.preview.CounterLine()}
	if msg, ok := s.board.Current(); ok {
		parts = append(parts, msg.Text)
	}
	return strings.Join(parts, " | ")
}

// splitImageArg splits "KEY=path" into key and path. Arguments without a key use def.
func splitImageArg(arg, def string) (string, string) {
	key, path, ok := strings.Cut(arg, "=")
	if !ok || key == "" || strings.ContainsAny(key, `/\.:~ `) {
		return def, arg
	}
	return fabric.NormalizeKey(key), path
}
