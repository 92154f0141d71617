package loader

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/Carmen-Shannon/oxy-fabric/engine/material"
	"github.com/Carmen-Shannon/oxy-fabric/engine/scene"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// garmentGLTF has two nodes sharing mesh 0, a second mesh with two primitives, an unlit material
// and a sheen material.
const garmentGLTF = `{
  "asset": {"version": "2.0"},
  "scene": 0,
  "scenes": [{"name": "garment", "nodes": [0, 1]}],
  "nodes": [
    {"name": "body", "mesh": 0, "children": [2]},
    {"name": "trim", "mesh": 1, "translation": [0, 2, 0]},
    {"name": "body_copy", "mesh": 0}
  ],
  "meshes": [
    {"name": "body", "primitives": [{"attributes": {"POSITION": 0}, "material": 0}]},
    {"name": "trim", "primitives": [
      {"attributes": {"POSITION": 0}, "material": 1},
      {"attributes": {"POSITION": 0}, "material": 2},
      {"attributes": {"POSITION": 0}}
    ]}
  ],
  "accessors": [
    {"componentType": 5126, "count": 0, "type": "VEC3", "min": [-1, -1, -1], "max": [1, 1, 1]}
  ],
  "materials": [
    {"name": "fabric_a_top", "pbrMetallicRoughness": {"metallicFactor": 0.4, "roughnessFactor": 0.2}},
    {"name": "label", "extensions": {"KHR_materials_unlit": {}}},
    {"name": "Fabric_B_velvet", "extensions": {"KHR_materials_sheen": {"sheenColorFactor": [1, 1, 1]}}}
  ]
}`

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func collectMaterials(root scene.Node) []material.Material {
	var out []material.Material
	scene.Traverse(root, func(n scene.Node) {
		if s := n.Surface(); s != nil {
			out = append(out, s.Materials...)
		}
	})
	return out
}

func TestLoadGLTFBuildsGraph(t *testing.T) {
	path := writeFile(t, "garment.gltf", []byte(garmentGLTF))

	root, err := NewLoader(BackendTypeGLTF).Load(path)
	require.NoError(t, err)
	assert.Equal(t, "garment", root.Name())
	require.Len(t, root.Children(), 2)

	body := root.Children()[0]
	require.Len(t, body.Children(), 1)
	bodyCopy := body.Children()[0]
	assert.Same(t, body.Surface().Materials[0], bodyCopy.Surface().Materials[0])

	trim := root.Children()[1]
	require.Len(t, trim.Surface().Materials, 3)
	assert.Equal(t, material.KindBasic, trim.Surface().Materials[0].Kind())
	assert.Equal(t, material.KindPhysical, trim.Surface().Materials[1].Kind())

	std, ok := material.AsStandard(body.Surface().Materials[0])
	require.True(t, ok)
	assert.Equal(t, "fabric_a_top", std.Name())
	assert.Equal(t, float32(0.4), std.Metalness())
	assert.Equal(t, float32(0.2), std.Roughness())

	// Five references, four distinct materials (default included).
	assert.Len(t, collectMaterials(root), 5)

	b := scene.WorldBounds(root)
	assert.InDeltaSlice(t, []float32{-1, -1, -1}, b.Min[:], 1e-6)
	assert.InDeltaSlice(t, []float32{1, 3, 1}, b.Max[:], 1e-6)
}

func TestLoadDefaultMaterial(t *testing.T) {
	path := writeFile(t, "garment.gltf", []byte(garmentGLTF))
	root, err := NewLoader(BackendTypeGLTF).Load(path)
	require.NoError(t, err)

	trim := root.Children()[1].Surface().Materials
	assert.Equal(t, "Fabric_B_velvet", trim[1].Name())
	assert.Equal(t, "", trim[2].Name())
	assert.Equal(t, material.KindStandard, trim[2].Kind())
}

func TestLoadUnsupportedExtension(t *testing.T) {
	_, err := NewLoader(BackendTypeGLTF).Load("garment.fbx")
	assert.ErrorIs(t, err, ErrLoad)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := NewLoader(BackendTypeGLTF).Load(filepath.Join(t.TempDir(), "missing.glb"))
	assert.ErrorIs(t, err, ErrLoad)
}

func TestLoadRejectsWrongVersion(t *testing.T) {
	path := writeFile(t, "old.gltf", []byte(`{"asset": {"version": "1.0"}}`))
	_, err := NewLoader(BackendTypeGLTF).Load(path)
	assert.ErrorIs(t, err, ErrLoad)
	assert.ErrorIs(t, err, errInvalidGLTFVersion)
}

func buildGLB(t *testing.T, jsonData, bin []byte) []byte {
	t.Helper()
	pad := func(b []byte, fill byte) []byte {
		for len(b)%4 != 0 {
			b = append(b, fill)
		}
		return b
	}
	jsonData = pad(append([]byte{}, jsonData...), ' ')
	bin = pad(append([]byte{}, bin...), 0)

	var buf bytes.Buffer
	total := 12 + 8 + len(jsonData)
	if len(bin) > 0 {
		total += 8 + len(bin)
	}
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, gltfGLBHeader{Magic: gltfGLBMagic, Version: gltfGLBVersion, Length: uint32(total)}))
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, gltfGLBChunkHeader{ChunkLength: uint32(len(jsonData)), ChunkType: gltfGLBChunkJSON}))
	buf.Write(jsonData)
	if len(bin) > 0 {
		require.NoError(t, binary.Write(&buf, binary.LittleEndian, gltfGLBChunkHeader{ChunkLength: uint32(len(bin)), ChunkType: gltfGLBChunkBIN}))
		buf.Write(bin)
	}
	return buf.Bytes()
}

func TestLoadGLBScansPositionsWithoutMinMax(t *testing.T) {
	positions := [][3]float32{{-2, 0, 0}, {2, 1, 0}, {0, 4, -3}}
	var bin bytes.Buffer
	require.NoError(t, binary.Write(&bin, binary.LittleEndian, positions))

	doc := `{
      "asset": {"version": "2.0"},
      "nodes": [{"mesh": 0}],
      "meshes": [{"primitives": [{"attributes": {"POSITION": 0}, "material": 0}]}],
      "accessors": [{"bufferView": 0, "componentType": 5126, "count": 3, "type": "VEC3"}],
      "bufferViews": [{"buffer": 0, "byteLength": 36}],
      "buffers": [{"byteLength": 36}],
      "materials": [{"name": "fabric_c_lining"}]
    }`
	data := buildGLB(t, []byte(doc), bin.Bytes())

	root, err := NewLoader(BackendTypeGLTF).LoadReader("lining", bytes.NewReader(data), true, "")
	require.NoError(t, err)
	assert.Equal(t, "lining", root.Name())

	b := scene.WorldBounds(root)
	assert.Equal(t, [3]float32{-2, 0, -3}, b.Min)
	assert.Equal(t, [3]float32{2, 4, 0}, b.Max)
}

func TestLoadGLBBadMagic(t *testing.T) {
	data := buildGLB(t, []byte(`{"asset":{"version":"2.0"}}`), nil)
	data[0] = 'x'
	_, err := NewLoader(BackendTypeGLTF).LoadReader("bad", bytes.NewReader(data), true, "")
	assert.ErrorIs(t, err, errInvalidGLBMagic)
}

func pngDataURI(t *testing.T) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.NRGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

func decodePNG(data []byte) (*image.RGBA, error) {
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	rgba := image.NewRGBA(img.Bounds())
	draw.Draw(rgba, rgba.Bounds(), img, img.Bounds().Min, draw.Src)
	return rgba, nil
}

func TestLoadEmbeddedBaseColorMap(t *testing.T) {
	doc := `{
      "asset": {"version": "2.0"},
      "nodes": [{"mesh": 0}],
      "meshes": [{"primitives": [{"attributes": {}, "material": 0}]}],
      "materials": [{"name": "fabric_a", "pbrMetallicRoughness": {"baseColorTexture": {"index": 0}}}],
      "textures": [{"source": 0, "sampler": 0}],
      "samplers": [{"wrapS": 33071, "wrapT": 33648}],
      "images": [{"name": "print", "uri": "` + pngDataURI(t) + `"}]
    }`
	path := writeFile(t, "mapped.gltf", []byte(doc))

	withDecoder, err := NewLoader(BackendTypeGLTF, WithTextureDecoder(decodePNG)).Load(path)
	require.NoError(t, err)
	std, ok := material.AsStandard(collectMaterials(withDecoder)[0])
	require.True(t, ok)
	require.NotNil(t, std.Map())
	assert.Equal(t, "print", std.Map().Name())
	assert.Equal(t, 1, std.Map().Refs())
	s, tt := std.Map().Wrap()
	assert.Equal(t, wgpu.AddressModeClampToEdge, s)
	assert.Equal(t, wgpu.AddressModeMirrorRepeat, tt)

	without, err := NewLoader(BackendTypeGLTF).Load(path)
	require.NoError(t, err)
	std, ok = material.AsStandard(collectMaterials(without)[0])
	require.True(t, ok)
	assert.Nil(t, std.Map())
}

func TestLoadProducesFreshMaterials(t *testing.T) {
	path := writeFile(t, "garment.gltf", []byte(garmentGLTF))
	l := NewLoader(BackendTypeGLTF)

	first, err := l.Load(path)
	require.NoError(t, err)
	second, err := l.Load(path)
	require.NoError(t, err)
	assert.NotSame(t, collectMaterials(first)[0], collectMaterials(second)[0])
}
