// Package fabric classifies the materials of a garment into fabric groups by name and binds uploaded
// textures to those groups.
//
// A material named "fabric_a_sleeve" belongs to group A: membership is a case-insensitive prefix match of
// the material name against the configured prefix followed by the group key. Every texturable material
// belongs to the implicit ALL group. A material whose name satisfies several keys is placed in every
// matching group; Lint reports those names.
package fabric

import (
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-fabric/engine/material"
	"github.com/Carmen-Shannon/oxy-fabric/engine/scene"
)

// AllKey is the implicit group holding every texturable material.
const AllKey = "ALL"

// DefaultPrefix is the material name prefix of the CLO naming convention.
const DefaultPrefix = "fabric_"

// DefaultKeys are the named groups used when none are configured.
var DefaultKeys = []string{"A", "B", "C"}

// NormalizeKey upper-cases a group key and trims surrounding space.
//
// Parameters:
//   - key: the key as typed by the user
//
// Returns:
//   - string: the canonical key
func NormalizeKey(key string) string {
	return strings.ToUpper(strings.TrimSpace(key))
}

// Classification is an immutable snapshot of the material groups of one scene. A new scene produces a
// new Classification with a higher generation; snapshots are never patched in place.
type Classification struct {
	generation  uint64
	prefix      string
	keys        []string
	all         []material.StandardMaterial
	groups      map[string][]material.StandardMaterial
	placeholder bool
}

// Classify partitions materials into the named groups. It is a pure function of the current material
// names. The result has generation 0; use a Classifier to number snapshots.
//
// Parameters:
//   - materials: the eligible materials, in the order they should be listed
//   - keys: the group keys, in display order
//   - prefix: the name prefix preceding the key
//
// Returns:
//   - *Classification: the snapshot
func Classify(materials []material.StandardMaterial, keys []string, prefix string) *Classification {
	c := &Classification{
		prefix: prefix,
		keys:   normalizeKeys(keys),
		all:    append([]material.StandardMaterial(nil), materials...),
		groups: make(map[string][]material.StandardMaterial),
	}

	for _, key := range c.keys {
		c.groups[key] = nil
	}
	for _, m := range c.all {
		for _, key := range matchingKeys(m.Name(), prefix, c.keys) {
			c.groups[key] = append(c.groups[key], m)
		}
	}
	return c
}

func normalizeKeys(keys []string) []string {
	out := make([]string, 0, len(keys))
	seen := make(map[string]struct{})
	for _, k := range keys {
		k = NormalizeKey(k)
		if k == "" || k == AllKey {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}

func matchingKeys(name, prefix string, keys []string) []string {
	if name == "" {
		return nil
	}
	lower := strings.ToLower(name)
	lowerPrefix := strings.ToLower(prefix)

	var out []string
	for _, k := range keys {
		if strings.HasPrefix(lower, lowerPrefix+strings.ToLower(k)) {
			out = append(out, k)
		}
	}
	return out
}

// Generation is the sequence number of the snapshot. Binds requested against one generation are dropped
// if they complete after a newer snapshot replaced it.
func (c *Classification) Generation() uint64 {
	return c.generation
}

// Prefix returns the name prefix the snapshot was classified with.
func (c *Classification) Prefix() string {
	return c.prefix
}

// Keys returns the named group keys in display order.
func (c *Classification) Keys() []string {
	return append([]string(nil), c.keys...)
}

// Placeholder reports whether the snapshot describes the stand-in shown after a failed load.
func (c *Classification) Placeholder() bool {
	return c.placeholder
}

// All returns every texturable material of the scene.
func (c *Classification) All() []material.StandardMaterial {
	return append([]material.StandardMaterial(nil), c.all...)
}

// Group returns the members of a group. ALL is accepted.
//
// Parameters:
//   - key: the group key, case-insensitive
//
// Returns:
//   - []material.StandardMaterial: the members
//   - bool: false when the key is not configured
func (c *Classification) Group(key string) ([]material.StandardMaterial, bool) {
	key = NormalizeKey(key)
	if key == AllKey {
		return c.All(), true
	}
	members, ok := c.groups[key]
	if !ok {
		return nil, false
	}
	return append([]material.StandardMaterial(nil), members...), true
}

// Resolve returns the bind targets of a key. ALL always resolves, even to zero materials.
// A named key with no members, or a key that is not configured, fails with a *GroupEmptyError.
//
// Parameters:
//   - key: the group key, case-insensitive
//
// Returns:
//   - []material.StandardMaterial: the targets
//   - error: *GroupEmptyError when nothing can be bound
func (c *Classification) Resolve(key string) ([]material.StandardMaterial, error) {
	key = NormalizeKey(key)
	members, ok := c.Group(key)
	if key == AllKey {
		return members, nil
	}
	if len(members) > 0 {
		return members, nil
	}

	names := make([]string, 0, len(c.all))
	for _, m := range c.all {
		names = append(names, m.Name())
	}
	return nil, &GroupEmptyError{
		Key:         key,
		Prefix:      c.prefix,
		Suggestions: suggestNames(names, c.prefix+strings.ToLower(key)),
		Unknown:     !ok,
	}
}

// Matches returns the keys whose prefix the material name satisfies. More than one key means the name
// is ambiguous.
//
// Parameters:
//   - m: the material
//
// Returns:
//   - []string: the matching keys
func (c *Classification) Matches(m material.Material) []string {
	if m == nil {
		return nil
	}
	return matchingKeys(m.Name(), c.prefix, c.keys)
}

// Union returns the distinct materials of ALL and every named group.
func (c *Classification) Union() []material.StandardMaterial {
	seen := make(map[material.StandardMaterial]struct{}, len(c.all))
	out := make([]material.StandardMaterial, 0, len(c.all))
	add := func(ms []material.StandardMaterial) {
		for _, m := range ms {
			if _, ok := seen[m]; ok {
				continue
			}
			seen[m] = struct{}{}
			out = append(out, m)
		}
	}
	add(c.all)
	for _, key := range c.keys {
		add(c.groups[key])
	}
	return out
}

// Counts returns the size of ALL and of every named group.
func (c *Classification) Counts() map[string]int {
	out := map[string]int{AllKey: len(c.all)}
	for _, key := range c.keys {
		out[key] = len(c.groups[key])
	}
	return out
}

// CounterLine renders the group sizes, e.g. "ALL: 3 | A:1 / B:1 / C:0".
func (c *Classification) CounterLine() string {
	parts := make([]string, 0, len(c.keys))
	for _, key := range c.keys {
		parts = append(parts, fmt.Sprintf("%s:%d", key, len(c.groups[key])))
	}
	line := fmt.Sprintf("%s: %d", AllKey, len(c.all))
	if len(parts) > 0 {
		line += " | " + strings.Join(parts, " / ")
	}
	return line
}

// Classifier produces numbered Classification snapshots for a fixed key set and prefix.
type Classifier interface {
	// Classify collects and classifies the materials under root in one step.
	//
	// Parameters:
	//   - root: the scene root, may be nil
	//
	// Returns:
	//   - *Classification: the new snapshot
	Classify(root scene.Node) *Classification

	// ClassifyPlaceholder classifies the stand-in scene shown after a failed load.
	//
	// Parameters:
	//   - root: the placeholder scene
	//
	// Returns:
	//   - *Classification: the new snapshot, flagged as placeholder
	ClassifyPlaceholder(root scene.Node) *Classification

	// Keys returns the configured group keys.
	Keys() []string

	// Prefix returns the configured name prefix.
	Prefix() string
}

// classifier is the implementation of the Classifier interface.
type classifier struct {
	keys       []string
	prefix     string
	generation atomic.Uint64
}

var _ Classifier = &classifier{}

// NewClassifier creates a Classifier with the default keys A, B, C and the "fabric_" prefix.
//
// Parameters:
//   - options: functional options to configure the classifier
//
// Returns:
//   - Classifier: the classifier
func NewClassifier(options ...ClassifierBuilderOption) Classifier {
	c := &classifier{
		keys:   append([]string(nil), DefaultKeys...),
		prefix: DefaultPrefix,
	}
	for _, opt := range options {
		opt(c)
	}
	c.keys = normalizeKeys(c.keys)
	return c
}

func (c *classifier) Classify(root scene.Node) *Classification {
	out := Classify(Collect(root), c.keys, c.prefix)
	out.generation = c.generation.Add(1)
	return out
}

func (c *classifier) ClassifyPlaceholder(root scene.Node) *Classification {
	out := c.Classify(root)
	out.placeholder = true
	return out
}

func (c *classifier) Keys() []string {
	return append([]string(nil), c.keys...)
}

func (c *classifier) Prefix() string {
	return c.prefix
}
