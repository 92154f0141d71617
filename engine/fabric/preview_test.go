package fabric

import (
	"bytes"
	"errors"
	"image"
	"testing"

	"github.com/Carmen-Shannon/oxy-fabric/common"
	"github.com/Carmen-Shannon/oxy-fabric/engine/decoder"
	"github.com/Carmen-Shannon/oxy-fabric/engine/material"
	"github.com/Carmen-Shannon/oxy-fabric/engine/scene"
	"github.com/Carmen-Shannon/oxy-fabric/engine/status"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// queuedDecoder holds decode callbacks until the test flushes them.
type queuedDecoder struct {
	calls []decoder.Source
	done  []func(decoder.Result)
}

func (d *queuedDecoder) Decode(src decoder.Source, done func(decoder.Result)) {
	d.calls = append(d.calls, src)
	d.done = append(d.done, done)
}

func (d *queuedDecoder) finish(i int, res decoder.Result) {
	res.Source = d.calls[i]
	d.done[i](res)
}

type recordedStatus struct {
	levels []status.Level
	texts  []string
}

func (s *recordedStatus) Show(level status.Level, text string) {
	s.levels = append(s.levels, level)
	s.texts = append(s.texts, text)
}

func (s *recordedStatus) last() string {
	if len(s.texts) == 0 {
		return ""
	}
	return s.texts[len(s.texts)-1]
}

type recordedCamera struct {
	fits   []common.Bounds
	resets int
}

func (c *recordedCamera) Fit(b common.Bounds) {
	c.fits = append(c.fits, b)
}

func (c *recordedCamera) Reset() {
	c.resets++
}

type stubLoader struct {
	root scene.Node
	err  error
}

func (l stubLoader) Load(string) (scene.Node, error) {
	return l.root, l.err
}

func decoded(w, h int) decoder.Result {
	return decoder.Result{Image: image.NewRGBA(image.Rect(0, 0, w, h)), Format: "png"}
}

func newTestPreview(options ...PreviewBuilderOption) (Preview, *queuedDecoder, *recordedStatus, *recordedCamera) {
	dec := &queuedDecoder{}
	st := &recordedStatus{}
	cam := &recordedCamera{}
	opts := append([]PreviewBuilderOption{WithDecoder(dec), WithStatus(st), WithCamera(cam)}, options...)
	return NewPreview(opts...), dec, st, cam
}

func TestPreviewLoadClassifiesAndFramesCamera(t *testing.T) {
	p, _, st, cam := newTestPreview()
	root := scene.NewBox("body", 1, 2, 1, material.NewMaterial(material.WithName("fabric_a_body")))

	c := p.Load(root)
	assert.Equal(t, "ALL: 1 | A:1 / B:0 / C:0", p.CounterLine())
	assert.Same(t, c, p.Classification())
	assert.Same(t, root, p.Scene())
	assert.Equal(t, "loaded 1 material(s)", st.last())
	require.Len(t, cam.fits, 1)
	assert.Equal(t, [3]float32{0.5, 1, 0.5}, cam.fits[0].Max)
}

func TestPreviewRequestBindEmptyGroupSkipsDecoder(t *testing.T) {
	p, dec, st, _ := newTestPreview()
	root, mats := garment()
	p.Load(root)

	err := p.RequestBind(decoder.Source{Name: "x.png", Data: []byte{1}}, "C")
	require.ErrorIs(t, err, ErrGroupEmpty)
	assert.Empty(t, dec.calls)
	assert.Equal(t, 0, p.Pending())
	assert.Equal(t, status.LevelWarn, st.levels[len(st.levels)-1])
	assert.Contains(t, st.last(), `name the CLO material "fabric_c..."`)
	for _, m := range mats {
		assert.Nil(t, m.Map())
	}
}

func TestPreviewBindIsAsynchronous(t *testing.T) {
	var outcomes []BindOutcome
	p, dec, st, _ := newTestPreview(WithBindHook(func(o BindOutcome) { outcomes = append(outcomes, o) }))
	root, mats := garment()
	p.Load(root)

	require.NoError(t, p.RequestBind(decoder.Source{Name: "denim.png"}, "a"))
	assert.Equal(t, 1, p.Pending())
	assert.Nil(t, mats[0].Map())

	dec.finish(0, decoded(8, 8))
	assert.Equal(t, 0, p.Pending())
	require.NotNil(t, mats[0].Map())
	assert.Equal(t, "denim.png", mats[0].Map().Name())
	assert.Nil(t, mats[1].Map())
	assert.Equal(t, "applied to A", st.last())

	require.Len(t, outcomes, 1)
	assert.NoError(t, outcomes[0].Err)
	assert.Equal(t, 1, outcomes[0].Materials)
	assert.Equal(t, "A", outcomes[0].Request.Key)
}

func TestPreviewDecodeFailureTouchesNothing(t *testing.T) {
	var outcomes []BindOutcome
	p, dec, st, _ := newTestPreview(WithBindHook(func(o BindOutcome) { outcomes = append(outcomes, o) }))
	root, mats := garment()
	p.Load(root)

	require.NoError(t, p.RequestBind(decoder.Source{Name: "broken.png"}, AllKey))
	dec.finish(0, decoder.Result{Err: decoder.ErrUnsupportedFormat})

	for _, m := range mats {
		assert.Nil(t, m.Map())
	}
	require.Len(t, outcomes, 1)
	assert.ErrorIs(t, outcomes[0].Err, ErrImageDecode)
	assert.ErrorIs(t, outcomes[0].Err, decoder.ErrUnsupportedFormat)
	assert.Equal(t, status.LevelError, st.levels[len(st.levels)-1])
}

func TestPreviewLastCompletionWins(t *testing.T) {
	p, dec, _, _ := newTestPreview()
	root, mats := garment()
	p.Load(root)

	require.NoError(t, p.RequestBind(decoder.Source{Name: "first.png"}, "A"))
	require.NoError(t, p.RequestBind(decoder.Source{Name: "second.png"}, "A"))

	dec.finish(1, decoded(2, 2))
	dec.finish(0, decoded(2, 2))
	assert.Equal(t, "first.png", mats[0].Map().Name())
}

func TestPreviewReplacedMapIsReleased(t *testing.T) {
	p, dec, _, _ := newTestPreview()
	root, mats := garment()
	p.Load(root)

	require.NoError(t, p.RequestBind(decoder.Source{Name: "first.png"}, "A"))
	dec.finish(0, decoded(2, 2))
	first := mats[0].Map()
	require.NotNil(t, first.Image())

	require.NoError(t, p.RequestBind(decoder.Source{Name: "second.png"}, "A"))
	dec.finish(1, decoded(2, 2))
	assert.Equal(t, 0, first.Refs())
	assert.Nil(t, first.Image())
}

func TestPreviewStaleCompletionDropped(t *testing.T) {
	var outcomes []BindOutcome
	p, dec, _, _ := newTestPreview(WithBindHook(func(o BindOutcome) { outcomes = append(outcomes, o) }))
	oldRoot, oldMats := garment()
	p.Load(oldRoot)
	require.NoError(t, p.RequestBind(decoder.Source{Name: "late.png"}, "A"))

	newRoot, newMats := garment()
	p.Load(newRoot)
	dec.finish(0, decoded(2, 2))

	assert.Nil(t, oldMats[0].Map())
	assert.Nil(t, newMats[0].Map())
	require.Len(t, outcomes, 1)
	assert.ErrorIs(t, outcomes[0].Err, ErrStaleClassification)
}

func TestPreviewReloadReleasesOldMaps(t *testing.T) {
	p, dec, _, _ := newTestPreview()
	root, mats := garment()
	p.Load(root)
	require.NoError(t, p.RequestBind(decoder.Source{Name: "x.png"}, AllKey))
	dec.finish(0, decoded(2, 2))
	tex := mats[0].Map()
	require.Equal(t, 3, tex.Refs())

	next, _ := garment()
	p.Load(next)
	for _, m := range mats {
		assert.Nil(t, m.Map())
	}
	assert.Equal(t, 0, tex.Refs())
}

func TestPreviewReloadSameSceneKeepsMaps(t *testing.T) {
	p, dec, _, _ := newTestPreview()
	root, mats := garment()
	p.Load(root)
	require.NoError(t, p.RequestBind(decoder.Source{Name: "x.png"}, AllKey))
	dec.finish(0, decoded(2, 2))

	p.Load(root)
	assert.NotNil(t, mats[0].Map())
}

func TestPreviewSetTiling(t *testing.T) {
	p, dec, _, _ := newTestPreview()
	root, mats := garment()
	p.Load(root)
	require.NoError(t, p.RequestBind(decoder.Source{Name: "x.png"}, AllKey))
	dec.finish(0, decoded(2, 2))

	require.NoError(t, p.SetTiling(Tiling{Repeat: 3, RotationDegrees: 45}))
	assert.Equal(t, [2]float32{3, 3}, mats[2].Map().Repeat())

	err := p.SetTiling(Tiling{Repeat: 0})
	assert.ErrorIs(t, err, ErrInvalidTiling)
	assert.Equal(t, float32(3), p.Tiling().Repeat)

	// a later bind picks up the stored tiling
	require.NoError(t, p.RequestBind(decoder.Source{Name: "y.png"}, "B"))
	dec.finish(1, decoded(2, 2))
	assert.Equal(t, [2]float32{3, 3}, mats[1].Map().Repeat())
}

func TestPreviewOpenFailureInstallsPlaceholder(t *testing.T) {
	p, dec, st, cam := newTestPreview(WithSceneLoader(stubLoader{err: errors.New("no such file")}))

	c, err := p.Open("assets/garment.glb")
	require.ErrorIs(t, err, ErrSceneLoad)
	assert.True(t, c.Placeholder())
	assert.Equal(t, "ALL: 1 | A:0 / B:0 / C:0", c.CounterLine())
	assert.Equal(t, "model unavailable, showing placeholder cube", st.last())

	all := c.All()
	require.Len(t, all, 1)
	assert.Equal(t, PlaceholderName, all[0].Name())
	assert.InDelta(t, PlaceholderMetalness, all[0].Metalness(), 1e-6)
	assert.InDelta(t, PlaceholderRoughness, all[0].Roughness(), 1e-6)
	assert.InDelta(t, 0x99/255.0, all[0].BaseColor()[0], 1e-6)

	require.Len(t, cam.fits, 1)
	assert.Equal(t, [3]float32{0.5, 0.6, 0.25}, cam.fits[0].Max)

	// the placeholder still takes whole-garment textures
	require.NoError(t, p.RequestBind(decoder.Source{Name: "x.png"}, AllKey))
	dec.finish(0, decoded(2, 2))
	assert.NotNil(t, all[0].Map())
	assert.ErrorIs(t, p.RequestBind(decoder.Source{Name: "x.png"}, "A"), ErrGroupEmpty)
}

func TestPreviewOpenSuccess(t *testing.T) {
	root, _ := garment()
	p, _, _, _ := newTestPreview(WithSceneLoader(stubLoader{root: root}))
	c, err := p.Open("garment.glb")
	require.NoError(t, err)
	assert.False(t, c.Placeholder())
	assert.Equal(t, "ALL: 3 | A:1 / B:1 / C:0", c.CounterLine())
}

func TestPreviewResetCameraWithoutScene(t *testing.T) {
	p, _, _, cam := newTestPreview()
	p.ResetCamera()
	assert.Equal(t, 1, cam.resets)
	assert.Empty(t, cam.fits)
}

func TestPreviewPosterDefersCompletion(t *testing.T) {
	var queued []func()
	p, dec, _, _ := newTestPreview(WithPoster(func(fn func()) { queued = append(queued, fn) }))
	root, mats := garment()
	p.Load(root)

	require.NoError(t, p.RequestBind(decoder.Source{Name: "x.png"}, "B"))
	dec.finish(0, decoded(2, 2))
	assert.Nil(t, mats[1].Map())
	assert.Equal(t, 1, p.Pending())

	require.Len(t, queued, 1)
	queued[0]()
	assert.NotNil(t, mats[1].Map())
	assert.Equal(t, 0, p.Pending())
}

func TestPreviewDiagnostics(t *testing.T) {
	var buf bytes.Buffer
	p, _, _, _ := newTestPreview(WithDiagnostics(&buf))
	root, _ := garment()
	p.Load(root)
	assert.Contains(t, buf.String(), "fabric_b_skirt")
	assert.Contains(t, buf.String(), "MeshStandardMaterial")
}

func TestPreviewCustomKeys(t *testing.T) {
	p, _, _, _ := newTestPreview(WithClassifier(NewClassifier(WithKeys("A", "B"))))
	root, _ := garment()
	p.Load(root)
	assert.Equal(t, "ALL: 3 | A:1 / B:1", p.CounterLine())
	err := p.RequestBind(decoder.Source{Name: "x.png"}, "C")
	assert.ErrorIs(t, err, ErrUnknownGroup)
}
