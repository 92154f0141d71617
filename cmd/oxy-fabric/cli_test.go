package main

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Carmen-Shannon/oxy-fabric/engine/config"
	"github.com/Carmen-Shannon/oxy-fabric/engine/fabric"
	"github.com/Carmen-Shannon/oxy-fabric/engine/input"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const shirtGLTF = `{
  "asset": {"version": "2.0"},
  "scene": 0,
  "scenes": [{"name": "shirt", "nodes": [0, 1]}],
  "nodes": [
    {"name": "front", "mesh": 0},
    {"name": "back", "mesh": 1}
  ],
  "meshes": [
    {"name": "front", "primitives": [{"attributes": {"POSITION": 0}, "material": 0}]},
    {"name": "back", "primitives": [{"attributes": {"POSITION": 0}, "material": 1}]}
  ],
  "accessors": [
    {"componentType": 5126, "count": 0, "type": "VEC3", "min": [-1, -1, -1], "max": [1, 1, 1]}
  ],
  "materials": [
    {"name": "fabric_a_front", "pbrMetallicRoughness": {"metallicFactor": 0.9, "roughnessFactor": 0.1}},
    {"name": "Fabric_B_back"}
  ]
}`

func writeFixture(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func swatchPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for i := range 16 {
		img.SetRGBA(i%4, i/4, color.RGBA{R: 200, G: 20, B: 20, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// run executes the CLI with a config path that does not exist, so defaults apply.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cfgPath := filepath.Join(t.TempDir(), "none.toml")

	var out, errOut bytes.Buffer
	root := newRootCommand()
	root.SetArgs(append([]string{"--config", cfgPath}, args...))
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetIn(strings.NewReader(stdin))
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestInspectPrintsGroupsReportAndLint(t *testing.T) {
	dir := t.TempDir()
	model := writeFixture(t, dir, "shirt.gltf", []byte(shirtGLTF))

	out, err := run(t, "", "inspect", model)
	require.NoError(t, err)
	assert.Contains(t, out, "ALL: 2 | A:1 / B:1 / C:0")
	assert.Contains(t, out, "name: fabric_a_front")
	assert.Contains(t, out, "members: [Fabric_B_back]")
	assert.Contains(t, out, "[empty-group]")
}

func TestInspectMissingModelShowsPlaceholder(t *testing.T) {
	out, err := run(t, "", "inspect", filepath.Join(t.TempDir(), "gone.glb"))
	require.ErrorIs(t, err, fabric.ErrSceneLoad)
	assert.Contains(t, out, "ALL: 1 | A:0 / B:0 / C:0")
	assert.Contains(t, out, "placeholder: true")
}

func TestApplyBindsGroupAndTiling(t *testing.T) {
	dir := t.TempDir()
	model := writeFixture(t, dir, "shirt.gltf", []byte(shirtGLTF))
	swatch := writeFixture(t, dir, "denim.png", swatchPNG(t))

	out, err := run(t, "", "apply", "--repeat", "2", model, "a="+swatch)
	require.NoError(t, err)
	assert.Contains(t, out, "name: denim.png")
	assert.Contains(t, out, "color_space: srgb")
	assert.Contains(t, out, "anisotropy: 16")
	assert.Contains(t, out, "repeat: [2, 2]")
	assert.Contains(t, out, "metalness: 0.15")
	assert.Contains(t, out, "applied to A")
	assert.Equal(t, 1, strings.Count(out, "name: denim.png"))
}

func TestApplyDefaultsToWholeGarment(t *testing.T) {
	dir := t.TempDir()
	model := writeFixture(t, dir, "shirt.gltf", []byte(shirtGLTF))
	swatch := writeFixture(t, dir, "linen.png", swatchPNG(t))

	out, err := run(t, "", "apply", model, swatch)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(out, "name: linen.png"))
	assert.Contains(t, out, "applied to the whole garment")
}

func TestApplyReportsFailedBinds(t *testing.T) {
	dir := t.TempDir()
	model := writeFixture(t, dir, "shirt.gltf", []byte(shirtGLTF))
	broken := writeFixture(t, dir, "broken.png", []byte("not an image"))

	out, err := run(t, "", "apply", model, "C="+broken, "B="+broken)
	require.ErrorIs(t, err, errBindFailed)
	assert.Contains(t, out, "could not read broken.png")
	assert.NotContains(t, out, "name: broken.png")
}

func TestApplyRejectsInvalidTiling(t *testing.T) {
	dir := t.TempDir()
	model := writeFixture(t, dir, "shirt.gltf", []byte(shirtGLTF))

	_, err := run(t, "", "apply", "--repeat", "0", model, "x.png")
	require.ErrorIs(t, err, fabric.ErrInvalidTiling)
}

func TestReplRunsCommandsUntilQuit(t *testing.T) {
	dir := t.TempDir()
	model := writeFixture(t, dir, "shirt.gltf", []byte(shirtGLTF))

	out, err := run(t, "groups\ntile 3 90\nbogus\nlint\nquit\n", "repl", model)
	require.NoError(t, err)
	assert.Contains(t, out, "ALL: 2 | A:1 / B:1 / C:0")
	assert.Contains(t, out, "repeat 3.00, rotation 90 deg")
	assert.Contains(t, out, "commands:")
	assert.Contains(t, out, "[empty-group]")
}

func TestReplStopsAtEndOfInput(t *testing.T) {
	dir := t.TempDir()
	model := writeFixture(t, dir, "shirt.gltf", []byte(shirtGLTF))

	_, err := run(t, "groups\n", "repl", model)
	require.NoError(t, err)
}

func TestSplitImageArg(t *testing.T) {
	tests := []struct {
		arg, key, path string
	}{
		{"a=denim.png", "A", "denim.png"},
		{"all=~/x.png", "ALL", "~/x.png"},
		{"denim.png", "ALL", "denim.png"},
		{"./dir=x/denim.png", "ALL", "./dir=x/denim.png"},
		{"=denim.png", "ALL", "=denim.png"},
	}
	for _, tt := range tests {
		key, path := splitImageArg(tt.arg, fabric.AllKey)
		assert.Equal(t, tt.key, key, tt.arg)
		assert.Equal(t, tt.path, path, tt.arg)
	}
}

func TestSessionActionsAndTitle(t *testing.T) {
	var out bytes.Buffer
	s := newSession(config.Default(), "", &out, nil)

	assert.False(t, s.apply(input.Action{Kind: input.ActionSelectGroup, Group: "B"}))
	assert.Equal(t, "B", s.selected)
	assert.Contains(t, s.title(), "target B")
	assert.Contains(t, s.title(), "drop images to texture B")

	s.apply(input.Action{Kind: input.ActionRepeat, Delta: -1})
	assert.Equal(t, input.MinRepeat, s.preview.Tiling().Repeat)

	s.apply(input.Action{Kind: input.ActionRotate, Delta: 195})
	assert.Equal(t, float32(-165), s.preview.Tiling().RotationDegrees)

	assert.True(t, s.apply(input.Action{Kind: input.ActionQuit}))
}
