package nimsforestgallery

import (
	"fmt"
	"image/color"
	"slices"
)

// Kind names a chart type.
type Kind string

const (
	KindClimate    Kind = "climate"
	KindLine       Kind = "line"
	KindScatter    Kind = "scatter"
	KindStackedBar Kind = "stacked-bar"
	KindPie        Kind = "pie"
)

// VisualSpec describes one visual in a manifest.
type VisualSpec struct {
	Kind    Kind   `yaml:"kind"`
	ID      string `yaml:"id"`
	Name    string `yaml:"name"`
	Dataset string `yaml:"dataset"`

	Title  string `yaml:"title,omitempty"`
	XLabel string `yaml:"x_label,omitempty"`
	YLabel string `yaml:"y_label,omitempty"`

	// Columns maps a chart role (such as "x", "y", "size") to a dataset
	// column name.
	Columns map[string]string `yaml:"columns,omitempty"`

	Colours []string    `yaml:"colours,omitempty"`
	Layout  *LayoutSpec `yaml:"layout,omitempty"`
}

// column returns the dataset column bound to role, or def.
func (s VisualSpec) column(role, def string) string {
	if c, ok := s.Columns[role]; ok && c != "" {
		return c
	}
	return def
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// colours parses the configured colours, or def when none are given.
func (s VisualSpec) colours(def ...string) ([]color.Color, error) {
	names := s.Colours
	if len(names) == 0 {
		names = def
	}
	out := make([]color.Color, len(names))
	for i, n := range names {
		c, err := ParseColour(n)
		if err != nil {
			return nil, fmt.Errorf("visual %s: %w", s.ID, err)
		}
		out[i] = c
	}
	return out, nil
}

// Constructor builds a visual from its VisualSpec for a width x height
// surface.
type Constructor func(spec VisualSpec, width, height float64) (Visual, error)

var kinds = map[Kind]Constructor{
	KindClimate: func(s VisualSpec, w, h float64) (Visual, error) {
		return NewClimateChart(s, w, h)
	},
	KindLine: func(s VisualSpec, w, h float64) (Visual, error) {
		return NewLineChart(s, w, h)
	},
	KindScatter: func(s VisualSpec, w, h float64) (Visual, error) {
		return NewScatterChart(s, w, h)
	},
	KindStackedBar: func(s VisualSpec, w, h float64) (Visual, error) {
		return NewStackedBarChart(s, w, h)
	},
	KindPie: func(s VisualSpec, w, h float64) (Visual, error) {
		return NewPieVisual(s, w, h)
	},
}

// Kinds returns the registered chart kinds in sorted order.
func Kinds() []Kind {
	out := make([]Kind, 0, len(kinds))
	for k := range kinds {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}

// NewVisual builds the visual described by spec.
func NewVisual(spec VisualSpec, width, height float64) (Visual, error) {
	fn, ok := kinds[spec.Kind]
	if !ok {
		return nil, fmt.Errorf("visual %s: %w %q", spec.ID, ErrUnknownKind, spec.Kind)
	}
	return fn(spec, width, height)
}
