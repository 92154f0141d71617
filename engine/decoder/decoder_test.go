package decoder

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.NRGBA{R: 200, G: 10, B: 10, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// tgaPixel is an uncompressed 24-bit true-color TGA holding one red pixel.
func tgaPixel() []byte {
	// id length, no color map, uncompressed true-color, empty color map spec, origin,
	// 1x1, 24 bits per pixel, top-left origin.
	header := []byte{0, 0, 2, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1, 0, 1, 0, 24, 0x20}
	return append(header, 0, 0, 255)
}

func TestDetectFormat(t *testing.T) {
	assert.Equal(t, "png", DetectFormat(encodePNG(t, 1, 1), ""))
	assert.Equal(t, "tga", DetectFormat(tgaPixel(), ".TGA"))
	assert.Equal(t, "", DetectFormat(tgaPixel(), ""))
	assert.Equal(t, "", DetectFormat([]byte("%PDF-1.7 not an image"), ".pdf"))
}

func TestDecodeBytesPNG(t *testing.T) {
	img, format, err := DecodeBytes(encodePNG(t, 4, 3), "", 0)
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	assert.Equal(t, image.Rect(0, 0, 4, 3), img.Bounds())
	assert.Equal(t, uint8(200), img.RGBAAt(1, 1).R)
}

func TestDecodeBytesTGA(t *testing.T) {
	img, format, err := DecodeBytes(tgaPixel(), "tga", 0)
	require.NoError(t, err)
	assert.Equal(t, "tga", format)
	assert.Equal(t, uint8(255), img.RGBAAt(0, 0).R)
	assert.Equal(t, uint8(0), img.RGBAAt(0, 0).B)
}

func TestDecodeBytesDownscales(t *testing.T) {
	img, _, err := DecodeBytes(encodePNG(t, 40, 20), ".png", 10)
	require.NoError(t, err)
	assert.Equal(t, 10, img.Bounds().Dx())
	assert.Equal(t, 5, img.Bounds().Dy())
}

func TestDecodeBytesUnsupported(t *testing.T) {
	_, _, err := DecodeBytes([]byte("definitely not pixels"), ".txt", 0)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestDecodeBytesCorrupt(t *testing.T) {
	data := encodePNG(t, 2, 2)
	_, format, err := DecodeBytes(data[:20], "", 0)
	assert.Error(t, err)
	assert.Equal(t, "png", format)
}

func TestDecodeSyncSources(t *testing.T) {
	d := NewDecoder()

	res := d.DecodeSync(Source{Name: "nothing"})
	assert.ErrorIs(t, res.Err, ErrEmptySource)

	path := filepath.Join(t.TempDir(), "swatch.png")
	require.NoError(t, os.WriteFile(path, encodePNG(t, 2, 2), 0o644))
	res = d.DecodeSync(FileSource(path))
	require.NoError(t, res.Err)
	assert.Equal(t, "swatch.png", res.Source.Name)
	assert.Equal(t, "png", res.Format)

	res = d.DecodeSync(FileSource(filepath.Join(t.TempDir(), "missing.png")))
	assert.Error(t, res.Err)
}

func TestDecodeAsyncCallsDoneOnce(t *testing.T) {
	d := NewDecoder(WithWorkers(2), WithQueueSize(8))
	data := encodePNG(t, 2, 2)

	var mu sync.Mutex
	var results []Result
	for i := 0; i < 5; i++ {
		d.Decode(Source{Name: "swatch.png", Data: data}, func(r Result) {
			mu.Lock()
			defer mu.Unlock()
			results = append(results, r)
		})
	}
	d.Wait()

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, results, 5)
	for _, r := range results {
		assert.NoError(t, r.Err)
		assert.NotNil(t, r.Image)
	}
}

func TestMaxSizeDefaultsToBackendLimit(t *testing.T) {
	assert.Equal(t, int(wgpu.DefaultLimits().MaxTextureDimension2D), NewDecoder().MaxSize())
	assert.Equal(t, 512, NewDecoder(WithMaxSize(512)).MaxSize())
}

func TestLoaderDecoder(t *testing.T) {
	img, err := LoaderDecoder(0)(encodePNG(t, 3, 3))
	require.NoError(t, err)
	assert.Equal(t, 3, img.Bounds().Dx())
}
