// Package decoder turns uploaded image bytes into RGBA pixels ready to become a texture. Decoding runs on a
// worker pool so the preview loop never blocks on it.
package decoder

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/anthonynsimon/bild/clone"
	"github.com/anthonynsimon/bild/transform"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/ftrvxmtrx/tga"
	"github.com/h2non/filetype"
	"github.com/mitchellh/go-homedir"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	"golang.org/x/image/webp"
)

var (
	// ErrEmptySource is returned for a source with neither bytes nor a path.
	ErrEmptySource = errors.New("image source is empty")
	// ErrUnsupportedFormat is returned when the bytes are not an image format the decoder reads.
	ErrUnsupportedFormat = errors.New("unsupported image format")
)

// MaxAnisotropy is the highest anisotropic filtering level the WebGPU backend accepts.
const MaxAnisotropy uint16 = 16

// Source is an uploaded image: either in-memory bytes or a file path.
type Source struct {
	// Name identifies the upload in messages, usually the file name.
	Name string
	// Path is read when Data is empty.
	Path string
	// Data holds the encoded image bytes.
	Data []byte
}

// FileSource creates a Source for a file path. A leading ~ is expanded to the home directory.
//
// Parameters:
//   - path: the image path
//
// Returns:
//   - Source: the source, named after the file
func FileSource(path string) Source {
	if expanded, err := homedir.Expand(path); err == nil {
		path = expanded
	}
	return Source{Name: filepath.Base(path), Path: path}
}

// Result is the outcome of decoding one Source.
type Result struct {
	// Source is the request this result answers.
	Source Source
	// Image is the decoded pixels, nil when Err is set.
	Image *image.RGBA
	// Format is the detected format extension (png, jpg, tga, ...).
	Format string
	// Err is the decode failure, if any.
	Err error
}

// decoder is the implementation of the Decoder interface.
type decoder struct {
	workers int
	queue   int
	maxSize int
	logger  *slog.Logger

	poolOnce sync.Once
	pool     worker.DynamicWorkerPool
	nextID   atomic.Int64
	pending  sync.WaitGroup
}

// Decoder decodes image sources into RGBA pixels.
type Decoder interface {
	// Decode submits src for asynchronous decoding and returns immediately. done is called exactly once,
	// from a worker goroutine, when decoding finishes. Requests are neither deduplicated nor cancelled.
	//
	// Parameters:
	//   - src: the image to decode
	//   - done: completion callback
	Decode(src Source, done func(Result))

	// DecodeSync decodes src on the calling goroutine.
	//
	// Parameters:
	//   - src: the image to decode
	//
	// Returns:
	//   - Result: the outcome
	DecodeSync(src Source) Result

	// Wait blocks until every submitted decode has called its completion callback.
	Wait()

	// MaxSize returns the largest texture edge in pixels. Larger images are downscaled.
	//
	// Returns:
	//   - int: the maximum edge length
	MaxSize() int
}

var _ Decoder = &decoder{}

// NewDecoder creates a Decoder. The worker pool is created lazily on the first asynchronous request.
// The default size cap is the WebGPU default 2D texture limit.
//
// Parameters:
//   - options: functional options to configure the decoder
//
// Returns:
//   - Decoder: the decoder
func NewDecoder(options ...DecoderBuilderOption) Decoder {
	d := &decoder{
		workers: 2,
		queue:   64,
		maxSize: int(wgpu.DefaultLimits().MaxTextureDimension2D),
		logger:  slog.Default(),
	}
	for _, opt := range options {
		opt(d)
	}
	return d
}

func (d *decoder) MaxSize() int {
	return d.maxSize
}

func (d *decoder) Decode(src Source, done func(Result)) {
	d.poolOnce.Do(func() {
		d.pool = worker.NewDynamicWorkerPool(d.workers, d.queue, 2*time.Second)
	})

	d.pending.Add(1)
	id := int(d.nextID.Add(1))
	d.pool.SubmitTask(worker.Task{
		ID: id,
		Do: func() (any, error) {
			defer d.pending.Done()
			res := d.DecodeSync(src)
			if done != nil {
				done(res)
			}
			return nil, res.Err
		},
	})
}

func (d *decoder) DecodeSync(src Source) Result {
	res := Result{Source: src}

	data := src.Data
	if len(data) == 0 {
		if src.Path == "" {
			res.Err = ErrEmptySource
			return res
		}
		var err error
		data, err = os.ReadFile(src.Path)
		if err != nil {
			res.Err = fmt.Errorf("failed to read %s: %w", src.Path, err)
			return res
		}
	}

	hint := filepath.Ext(src.Name)
	if hint == "" {
		hint = filepath.Ext(src.Path)
	}

	start := time.Now()
	img, format, err := DecodeBytes(data, hint, d.maxSize)
	if err != nil {
		res.Err = fmt.Errorf("%s: %w", src.Name, err)
		return res
	}
	res.Image = img
	res.Format = format

	d.logger.Debug("image decoded", "name", src.Name, "format", format,
		"width", img.Bounds().Dx(), "height", img.Bounds().Dy(), "elapsed", time.Since(start))
	return res
}

func (d *decoder) Wait() {
	d.pending.Wait()
}

// DecodeBytes detects the format of data, decodes it, converts it to RGBA and downscales it so neither
// edge exceeds maxSize (0 disables the cap). extHint is the upload's file extension and is only used for
// formats without a signature (TGA).
//
// Parameters:
//   - data: the encoded image
//   - extHint: file extension of the upload, with or without the dot
//   - maxSize: maximum edge length in pixels, 0 for no limit
//
// Returns:
//   - *image.RGBA: the decoded pixels
//   - string: the detected format extension
//   - error: ErrUnsupportedFormat or the underlying decode error
func DecodeBytes(data []byte, extHint string, maxSize int) (*image.RGBA, string, error) {
	format := DetectFormat(data, extHint)
	if format == "" {
		return nil, "", ErrUnsupportedFormat
	}

	img, err := decodeByFormat(data, format)
	if err != nil {
		return nil, format, fmt.Errorf("failed to decode %s: %w", format, err)
	}

	return fitTexture(img, maxSize), format, nil
}

// DetectFormat returns the image format of data from its signature. Signature-less formats fall back to
// extHint. Returns "" when data is not a supported image.
//
// Parameters:
//   - data: the encoded image
//   - extHint: file extension of the upload, with or without the dot
//
// Returns:
//   - string: png, jpg, gif, bmp, webp, tif or tga, or "" if unsupported
func DetectFormat(data []byte, extHint string) string {
	if kind, err := filetype.Match(data); err == nil && kind != filetype.Unknown {
		switch kind.Extension {
		case "png", "jpg", "gif", "bmp", "webp", "tif":
			return kind.Extension
		}
	}

	switch strings.ToLower(strings.TrimPrefix(extHint, ".")) {
	case "tga", "targa":
		return "tga"
	}
	return ""
}

// decodeByFormat decodes data with the decoder of a detected format.
func decodeByFormat(data []byte, format string) (image.Image, error) {
	reader := bytes.NewReader(data)
	switch format {
	case "png":
		return png.Decode(reader)
	case "jpg":
		return jpeg.Decode(reader)
	case "gif":
		return gif.Decode(reader)
	case "bmp":
		return bmp.Decode(reader)
	case "webp":
		return webp.Decode(reader)
	case "tif":
		return tiff.Decode(reader)
	case "tga":
		return tga.Decode(reader)
	default:
		return nil, ErrUnsupportedFormat
	}
}

// fitTexture converts img to RGBA and scales it down, keeping its aspect ratio, so the longest edge is
// at most maxSize.
func fitTexture(img image.Image, maxSize int) *image.RGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if maxSize <= 0 || (w <= maxSize && h <= maxSize) {
		return clone.AsRGBA(img)
	}

	if w >= h {
		h = max(1, h*maxSize/w)
		w = maxSize
	} else {
		w = max(1, w*maxSize/h)
		h = maxSize
	}
	return transform.Resize(img, w, h, transform.Linear)
}

// LoaderDecoder adapts DecodeBytes to decode maps embedded in model files.
//
// Parameters:
//   - maxSize: maximum edge length in pixels, 0 for no limit
//
// Returns:
//   - func([]byte) (*image.RGBA, error): the decode function
func LoaderDecoder(maxSize int) func([]byte) (*image.RGBA, error) {
	return func(data []byte) (*image.RGBA, error) {
		img, _, err := DecodeBytes(data, "", maxSize)
		return img, err
	}
}
