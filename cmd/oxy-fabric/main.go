// Command oxy-fabric previews fabric textures on a garment model. Materials named "fabric_<key>..."
// form groups that uploaded images are bound to.
package main

import (
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
