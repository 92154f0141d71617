package loader

import (
	"io"

	"github.com/Carmen-Shannon/oxy-fabric/engine/scene"
)

// loaderBackend is implemented by each model format the Loader can read.
type loaderBackend interface {
	// Load reads the model at path.
	//
	// Parameters:
	//   - path: path to the model file
	//
	// Returns:
	//   - scene.Node: the root of the imported graph
	//   - error: error if the model cannot be read
	Load(path string) (scene.Node, error)

	// LoadReader reads a model from r.
	//
	// Parameters:
	//   - name: name given to the root node
	//   - r: reader containing the model data
	//   - binary: true if the data is in the binary container format
	//   - baseDir: directory used to resolve external resources
	//
	// Returns:
	//   - scene.Node: the root of the imported graph
	//   - error: error if the model cannot be read
	LoadReader(name string, r io.Reader, binary bool, baseDir string) (scene.Node, error)
}
