package fabric

import (
	"fmt"
	"io"
	"log/slog"

	"gopkg.in/yaml.v3"
)

// Report is the inspectable state of a classification.
type Report struct {
	Generation  uint64           `yaml:"generation"`
	Placeholder bool             `yaml:"placeholder,omitempty"`
	Counter     string           `yaml:"counter"`
	Materials   []MaterialReport `yaml:"materials"`
	Groups      []GroupReport    `yaml:"groups"`
}

// MaterialReport describes one material.
type MaterialReport struct {
	Name      string     `yaml:"name"`
	Type      string     `yaml:"type"`
	Metalness float32    `yaml:"metalness"`
	Roughness float32    `yaml:"roughness"`
	Map       *MapReport `yaml:"map,omitempty"`
}

// MapReport describes a bound texture.
type MapReport struct {
	Name       string     `yaml:"name"`
	Width      int        `yaml:"width"`
	Height     int        `yaml:"height"`
	ColorSpace string     `yaml:"color_space"`
	Anisotropy uint16     `yaml:"anisotropy"`
	Repeat     [2]float32 `yaml:"repeat,flow"`
	Rotation   float32    `yaml:"rotation"`
	Center     [2]float32 `yaml:"center,flow"`
}

// GroupReport lists the member names of one group.
type GroupReport struct {
	Key     string   `yaml:"key"`
	Members []string `yaml:"members,flow"`
}

// Describe builds the Report of c.
//
// Parameters:
//   - c: the classification
//
// Returns:
//   - Report: the report
func Describe(c *Classification) Report {
	r := Report{
		Generation:  c.Generation(),
		Placeholder: c.Placeholder(),
		Counter:     c.CounterLine(),
	}

	for _, m := range c.all {
		mr := MaterialReport{
			Name:      m.Name(),
			Type:      m.Kind().String(),
			Metalness: m.Metalness(),
			Roughness: m.Roughness(),
		}
		if tex := m.Map(); tex != nil {
			w, h := tex.Size()
			mr.Map = &MapReport{
				Name:       tex.Name(),
				Width:      w,
				Height:     h,
				ColorSpace: tex.ColorSpace().String(),
				Anisotropy: tex.Anisotropy(),
				Repeat:     tex.Repeat(),
				Rotation:   tex.Rotation(),
				Center:     tex.Center(),
			}
		}
		r.Materials = append(r.Materials, mr)
	}

	keys := append([]string{AllKey}, c.keys...)
	for _, key := range keys {
		members, _ := c.Group(key)
		names := make([]string, 0, len(members))
		for _, m := range members {
			names = append(names, m.Name())
		}
		r.Groups = append(r.Groups, GroupReport{Key: key, Members: names})
	}
	return r
}

// Dump writes the Report of c to w as YAML. It never fails: errors and panics are logged at debug level
// as ErrDiagnostic and otherwise ignored.
//
// Parameters:
//   - w: the destination
//   - c: the classification
func Dump(w io.Writer, c *Classification) {
	DumpWithLogger(w, c, slog.Default())
}

// DumpWithLogger is Dump reporting failures to logger.
//
// Parameters:
//   - w: the destination
//   - c: the classification
//   - logger: receives failures at debug level
func DumpWithLogger(w io.Writer, c *Classification, logger *slog.Logger) {
	defer func() {
		if r := recover(); r != nil {
			logger.Debug("material dump skipped", "err", fmt.Errorf("%w: %v", ErrDiagnostic, r))
		}
	}()
	if w == nil || c == nil {
		return
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(Describe(c)); err != nil {
		logger.Debug("material dump skipped", "err", fmt.Errorf("%w: %w", ErrDiagnostic, err))
		return
	}
	if err := enc.Close(); err != nil {
		logger.Debug("material dump skipped", "err", fmt.Errorf("%w: %w", ErrDiagnostic, err))
	}
}
