// Package scene holds the loaded model as a node graph. Nodes carry an optional renderable
// Surface (one or several materials plus local bounds) and a local transform.
package scene

import (
	"github.com/Carmen-Shannon/oxy-fabric/common"
	"github.com/Carmen-Shannon/oxy-fabric/engine/material"
)

// Surface is the renderable part of a node. A surface with one material is a single-material primitive;
// a surface with several materials is a multi-material primitive where each entry shades one sub-range.
type Surface struct {
	// Materials are the material references of the surface, in primitive order. Entries may repeat.
	Materials []material.Material
	// Bounds is the local-space bounding box of the surface geometry.
	Bounds common.Bounds
}

// Node is one element of a scene graph.
type Node interface {
	// Name retrieves the node name.
	//
	// Returns:
	//   - string: the node name
	Name() string

	// Parent retrieves the parent node, or nil for a root.
	//
	// Returns:
	//   - Node: the parent
	Parent() Node

	// Children retrieves the direct children in insertion order.
	//
	// Returns:
	//   - []Node: the children
	Children() []Node

	// AddChild appends child to this node and makes this node its parent.
	// A child already attached elsewhere is detached first.
	//
	// Parameters:
	//   - child: the node to attach
	AddChild(child Node)

	// Surface retrieves the renderable surface, or nil when the node is not renderable.
	//
	// Returns:
	//   - *Surface: the surface
	Surface() *Surface

	// SetSurface replaces the renderable surface.
	//
	// Parameters:
	//   - s: the surface, or nil to make the node non-renderable
	SetSurface(s *Surface)

	// LocalMatrix retrieves the column-major transform relative to the parent.
	//
	// Returns:
	//   - [16]float32: the local transform
	LocalMatrix() [16]float32

	// SetLocalMatrix sets the column-major transform relative to the parent.
	//
	// Parameters:
	//   - m: the local transform
	SetLocalMatrix(m [16]float32)

	// WorldMatrix computes the transform from node space to world space through the parent chain.
	//
	// Returns:
	//   - [16]float32: the world transform
	WorldMatrix() [16]float32
}

// node is the implementation of the Node interface.
type node struct {
	name     string
	parent   *node
	children []Node
	surface  *Surface
	local    [16]float32
}

var _ Node = &node{}

// NewNode creates a new Node with an identity transform, configured with the provided options.
//
// Parameters:
//   - options: variadic list of NodeBuilderOption functions to configure the node
//
// Returns:
//   - Node: the new node
func NewNode(options ...NodeBuilderOption) Node {
	n := &node{}
	common.Identity(n.local[:])
	for _, opt := range options {
		opt(n)
	}
	return n
}

func (n *node) Name() string {
	return n.name
}

func (n *node) Parent() Node {
	if n.parent == nil {
		return nil
	}
	return n.parent
}

func (n *node) Children() []Node {
	return n.children
}

func (n *node) AddChild(child Node) {
	c, ok := child.(*node)
	if !ok || c == nil || c == n {
		return
	}
	if c.parent != nil {
		c.parent.removeChild(c)
	}
	c.parent = n
	n.children = append(n.children, c)
}

func (n *node) removeChild(c *node) {
	for i, existing := range n.children {
		if existing == Node(c) {
			n.children = append(n.children[:i], n.children[i+1:]...)
			return
		}
	}
}

func (n *node) Surface() *Surface {
	return n.surface
}

func (n *node) SetSurface(s *Surface) {
	n.surface = s
}

func (n *node) LocalMatrix() [16]float32 {
	return n.local
}

func (n *node) SetLocalMatrix(m [16]float32) {
	n.local = m
}

func (n *node) WorldMatrix() [16]float32 {
	world := n.local
	for p := n.parent; p != nil; p = p.parent {
		common.Mul4(world[:], p.local[:], world[:])
	}
	return world
}

// NewBox creates a renderable node with a single material and an axis-aligned box of the given size
// centered on the origin.
//
// Parameters:
//   - name: the node name
//   - width: size along X
//   - height: size along Y
//   - depth: size along Z
//   - mat: the material of the box
//
// Returns:
//   - Node: the box node
func NewBox(name string, width, height, depth float32, mat material.Material) Node {
	half := [3]float32{width / 2, height / 2, depth / 2}
	return NewNode(
		WithName(name),
		WithSurface(&Surface{
			Materials: []material.Material{mat},
			Bounds:    common.Bounds{Min: common.Scale3(half, -1), Max: half},
		}),
	)
}
