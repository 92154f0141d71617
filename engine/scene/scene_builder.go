package scene

import (
	"github.com/Carmen-Shannon/oxy-fabric/common"
	"github.com/Carmen-Shannon/oxy-fabric/engine/material"
)

// NodeBuilderOption is a functional option for configuring a Node.
// Use the With* functions to create options.
type NodeBuilderOption func(n *node)

// WithName sets the node name.
//
// Parameters:
//   - name: the node name
//
// Returns:
//   - NodeBuilderOption: option function to apply
func WithName(name string) NodeBuilderOption {
	return func(n *node) {
		n.name = name
	}
}

// WithSurface makes the node renderable.
//
// Parameters:
//   - s: the surface
//
// Returns:
//   - NodeBuilderOption: option function to apply
func WithSurface(s *Surface) NodeBuilderOption {
	return func(n *node) {
		n.surface = s
	}
}

// WithMaterials makes the node renderable with the given materials and empty bounds.
// Convenient for graphs that only matter for their material references.
//
// Parameters:
//   - materials: the material references of the surface
//
// Returns:
//   - NodeBuilderOption: option function to apply
func WithMaterials(materials ...material.Material) NodeBuilderOption {
	return func(n *node) {
		n.surface = &Surface{Materials: materials, Bounds: common.EmptyBounds()}
	}
}

// WithLocalMatrix sets the transform relative to the parent.
//
// Parameters:
//   - m: column-major local transform
//
// Returns:
//   - NodeBuilderOption: option function to apply
func WithLocalMatrix(m [16]float32) NodeBuilderOption {
	return func(n *node) {
		n.local = m
	}
}

// WithTRS sets the transform relative to the parent from translation, rotation quaternion and scale.
//
// Parameters:
//   - t: translation
//   - r: rotation quaternion (x, y, z, w)
//   - s: scale
//
// Returns:
//   - NodeBuilderOption: option function to apply
func WithTRS(t [3]float32, r [4]float32, s [3]float32) NodeBuilderOption {
	return func(n *node) {
		common.ComposeTRS(n.local[:], t, r, s)
	}
}

// WithChildren attaches the given nodes as children.
//
// Parameters:
//   - children: the nodes to attach
//
// Returns:
//   - NodeBuilderOption: option function to apply
func WithChildren(children ...Node) NodeBuilderOption {
	return func(n *node) {
		for _, c := range children {
			n.AddChild(c)
		}
	}
}
