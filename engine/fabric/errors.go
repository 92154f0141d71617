package fabric

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
)

var (
	// ErrGroupEmpty is returned when a bind targets a named group with no materials.
	ErrGroupEmpty = errors.New("group has no materials")
	// ErrUnknownGroup is returned when a bind targets a key that is not configured.
	ErrUnknownGroup = errors.New("unknown group key")
	// ErrSceneLoad marks a model that could not be loaded; the placeholder is shown instead.
	ErrSceneLoad = errors.New("scene load failed")
	// ErrImageDecode marks an upload that could not be decoded. No material is touched.
	ErrImageDecode = errors.New("image decode failed")
	// ErrDiagnostic marks a failed diagnostic dump. It is logged at debug level and never returned.
	ErrDiagnostic = errors.New("diagnostic dump failed")
	// ErrStaleClassification is reported for a decode that completed after the scene was replaced.
	ErrStaleClassification = errors.New("classification replaced before bind completed")
	// ErrInvalidTiling is returned for a non-positive or non-finite repeat factor.
	ErrInvalidTiling = errors.New("invalid tiling")
)

const maxSuggestions = 3

// GroupEmptyError is returned when a bind resolves to no materials. It carries what is needed to tell
// the user how to name the materials.
type GroupEmptyError struct {
	// Key is the upper-cased group key.
	Key string
	// Prefix is the configured material name prefix.
	Prefix string
	// Suggestions are the material names closest to the expected prefix.
	Suggestions []string
	// Unknown is set when Key is not one of the configured keys.
	Unknown bool
}

func (e *GroupEmptyError) Error() string {
	if e.Unknown {
		return fmt.Sprintf("group %q: %s", e.Key, ErrUnknownGroup)
	}
	return fmt.Sprintf("group %q: %s", e.Key, ErrGroupEmpty)
}

// Unwrap exposes ErrGroupEmpty, and ErrUnknownGroup for keys that are not configured.
func (e *GroupEmptyError) Unwrap() []error {
	if e.Unknown {
		return []error{ErrGroupEmpty, ErrUnknownGroup}
	}
	return []error{ErrGroupEmpty}
}

// Hint renders the user-facing message naming the expected material name.
//
// Returns:
//   - string: the hint
func (e *GroupEmptyError) Hint() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%q group missing; name the CLO material %q", e.Key, e.Prefix+strings.ToLower(e.Key)+"...")
	if len(e.Suggestions) > 0 {
		fmt.Fprintf(&sb, " (closest: %s)", strings.Join(e.Suggestions, ", "))
	}
	return sb.String()
}

// suggestNames ranks the named materials by Levenshtein similarity to the expected name prefix.
func suggestNames(names []string, want string) []string {
	type scored struct {
		name  string
		score float64
	}

	lev := metrics.NewLevenshtein()
	want = strings.ToLower(want)
	var ranked []scored
	for _, name := range names {
		if name == "" {
			continue
		}
		lower := strings.ToLower(name)
		if len(lower) > len(want) {
			lower = lower[:len(want)]
		}
		score := strutil.Similarity(lower, want, lev)
		if score < 0.5 {
			continue
		}
		ranked = append(ranked, scored{name: name, score: score})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		return ranked[i].name < ranked[j].name
	})

	var out []string
	for i := 0; i < len(ranked) && i < maxSuggestions; i++ {
		out = append(out, ranked[i].name)
	}
	return out
}
