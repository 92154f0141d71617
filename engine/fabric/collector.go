package fabric

import (
	"github.com/Carmen-Shannon/oxy-fabric/engine/material"
	"github.com/Carmen-Shannon/oxy-fabric/engine/scene"
)

// Collect walks the graph under root once and returns every distinct texturable material referenced by a
// surface, in first-seen order. Basic and unknown materials are skipped. A nil or empty graph yields nil.
//
// Parameters:
//   - root: the scene root, may be nil
//
// Returns:
//   - []material.StandardMaterial: the eligible materials
func Collect(root scene.Node) []material.StandardMaterial {
	var out []material.StandardMaterial
	seen := make(map[material.Material]struct{})
	scene.Traverse(root, func(n scene.Node) {
		s := n.Surface()
		if s == nil {
			return
		}
		for _, m := range s.Materials {
			if m == nil {
				continue
			}
			if _, ok := seen[m]; ok {
				continue
			}
			seen[m] = struct{}{}
			if sm, ok := material.AsStandard(m); ok {
				out = append(out, sm)
			}
		}
	})
	return out
}
