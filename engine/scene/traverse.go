package scene

import (
	"github.com/Carmen-Shannon/oxy-fabric/common"
)

// Traverse visits root and every descendant depth-first, parent before children, calling fn once per node.
// A nil root visits nothing. A node reachable twice is visited only the first time.
//
// Parameters:
//   - root: the graph root, may be nil
//   - fn: the visitor
func Traverse(root Node, fn func(Node)) {
	if root == nil {
		return
	}
	seen := make(map[Node]struct{})
	stack := []Node{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if n == nil {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		fn(n)

		children := n.Children()
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, children[i])
		}
	}
}

// WorldBounds returns the world-space box enclosing every surface under root.
// Graphs without surface geometry return an empty box.
//
// Parameters:
//   - root: the graph root, may be nil
//
// Returns:
//   - common.Bounds: the enclosing box
func WorldBounds(root Node) common.Bounds {
	out := common.EmptyBounds()
	Traverse(root, func(n Node) {
		s := n.Surface()
		if s == nil || s.Bounds.IsEmpty() {
			return
		}
		world := n.WorldMatrix()
		out = out.Union(s.Bounds.Transform(world[:]))
	})
	return out
}
