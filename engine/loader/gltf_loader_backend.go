package loader

import (
	"io"
	"log/slog"

	"github.com/Carmen-Shannon/oxy-fabric/engine/scene"
)

// gltfLoaderBackendImpl is the glTF 2.0 implementation of loaderBackend.
type gltfLoaderBackendImpl struct {
	importer gltfImporter
}

var _ loaderBackend = &gltfLoaderBackendImpl{}

// newGLTFLoaderBackend creates the glTF backend.
//
// Parameters:
//   - decode: decoder for embedded base color maps, or nil to skip them
//   - logger: logger for non-fatal problems
//
// Returns:
//   - loaderBackend: the backend
func newGLTFLoaderBackend(decode TextureDecoder, logger *slog.Logger) loaderBackend {
	return &gltfLoaderBackendImpl{
		importer: newGLTFImporter(decode, logger),
	}
}

func (b *gltfLoaderBackendImpl) Load(path string) (scene.Node, error) {
	return b.importer.Import(path)
}

func (b *gltfLoaderBackendImpl) LoadReader(name string, r io.Reader, binary bool, baseDir string) (scene.Node, error) {
	return b.importer.ImportReader(name, r, binary, baseDir)
}
