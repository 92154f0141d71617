package fabric

import (
	"fmt"
	"strings"

	"github.com/Carmen-Shannon/oxy-fabric/engine/status"
)

// Lint codes.
const (
	CodeUnnamedMaterial = "unnamed-material"
	CodeAmbiguousName   = "ambiguous-name"
	CodeUnmatchedFabric = "unmatched-fabric"
	CodeEmptyGroup      = "empty-group"
)

// Issue is a naming problem found by Lint.
type Issue struct {
	Level    status.Level `yaml:"-"`
	Code     string       `yaml:"code"`
	Message  string       `yaml:"message"`
	Material string       `yaml:"material,omitempty"`
}

// String renders the issue as one line.
func (i Issue) String() string {
	return fmt.Sprintf("%s [%s] %s", i.Level, i.Code, i.Message)
}

// Lint checks the material names of c against the naming convention. Unnamed materials, names matching
// more than one key and empty groups are warnings; a prefixed name matching no key is informational.
//
// Parameters:
//   - c: the classification
//
// Returns:
//   - []Issue: the issues, materials first then groups
func Lint(c *Classification) []Issue {
	var issues []Issue
	if c == nil {
		return nil
	}

	prefix := strings.ToLower(c.prefix)
	for i, m := range c.all {
		name := m.Name()
		if name == "" {
			issues = append(issues, Issue{
				Level:   status.LevelWarn,
				Code:    CodeUnnamedMaterial,
				Message: fmt.Sprintf("material #%d has no name and can only be textured through %s", i, AllKey),
			})
			continue
		}

		matches := c.Matches(m)
		switch {
		case len(matches) > 1:
			issues = append(issues, Issue{
				Level:    status.LevelWarn,
				Code:     CodeAmbiguousName,
				Message:  fmt.Sprintf("%q matches groups %s", name, strings.Join(matches, ", ")),
				Material: name,
			})
		case len(matches) == 0 && prefix != "" && strings.HasPrefix(strings.ToLower(name), prefix):
			issues = append(issues, Issue{
				Level:    status.LevelInfo,
				Code:     CodeUnmatchedFabric,
				Message:  fmt.Sprintf("%q has the %q prefix but matches no group", name, c.prefix),
				Material: name,
			})
		}
	}

	for _, key := range c.keys {
		if len(c.groups[key]) == 0 {
			issues = append(issues, Issue{
				Level:   status.LevelWarn,
				Code:    CodeEmptyGroup,
				Message: fmt.Sprintf("group %s is empty; name a material %q", key, c.prefix+strings.ToLower(key)+"..."),
			})
		}
	}
	return issues
}
