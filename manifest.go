package nimsforestgallery

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Manifest describes a gallery: its surface size and its visuals in menu
// order.
type Manifest struct {
	Width   float64      `yaml:"width,omitempty"`
	Height  float64      `yaml:"height,omitempty"`
	Visuals []VisualSpec `yaml:"visuals"`
}

// LoadManifest decodes a YAML manifest. Unknown fields are rejected.
func LoadManifest(r io.Reader) (*Manifest, error) {
	var m Manifest
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("decode manifest: %w", err)
	}
	return &m, nil
}

// LoadManifestFile reads a YAML manifest from path.
func LoadManifestFile(path string) (*Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open manifest: %w", err)
	}
	defer f.Close()
	return LoadManifest(f)
}

// Encode writes m as YAML.
func (m *Manifest) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(m); err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}
	return enc.Close()
}

// Size returns the manifest's surface size, falling back to the default
// for unset dimensions.
func (m *Manifest) Size() (width, height float64) {
	width, height = m.Width, m.Height
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	return width, height
}

// Build creates a gallery sized by the manifest and registers every
// visual it lists. Visuals that cannot be built or registered are
// skipped; their errors are joined in the returned error alongside the
// usable gallery.
func (m *Manifest) Build(opts ...Option) (*Gallery, error) {
	w, h := m.Size()
	g := New(append([]Option{WithSize(w, h)}, opts...)...)

	var errs []error
	for _, spec := range m.Visuals {
		v, err := NewVisual(spec, w, h)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if err := g.Register(v); err != nil {
			errs = append(errs, err)
		}
	}
	return g, errors.Join(errs...)
}

// DefaultManifest lists the five stock visuals over the sample
// datasets shipped in the datasets package.
func DefaultManifest() *Manifest {
	return &Manifest{
		Width:  DefaultWidth,
		Height: DefaultHeight,
		Visuals: []VisualSpec{
			{
				Kind:    KindPie,
				ID:      "tech-diversity-race",
				Name:    "Tech Diversity: Race",
				Dataset: "tech-diversity/race-2018.csv",
			},
			{
				Kind:    KindStackedBar,
				ID:      "tech-diversity-gender",
				Name:    "Tech Diversity: Gender",
				Dataset: "tech-diversity/gender-2018.csv",
			},
			{
				Kind:    KindScatter,
				ID:      "pay-gap-by-job-2017",
				Name:    "Pay gap by job: 2017",
				Dataset: "pay-gap/occupation-hourly-pay-by-gender-2017.csv",
			},
			{
				Kind:    KindLine,
				ID:      "pay-gap-timeseries",
				Name:    "Pay gap: 1997-2017",
				Dataset: "pay-gap/all-employees-hourly-pay-by-gender-1997-2017.csv",
				Title:   "Gender Pay Gap: Average difference between male and female pay.",
			},
			{
				Kind:    KindClimate,
				ID:      "climate-change",
				Name:    "Climate Change",
				Dataset: "surface-temperature/surface-temperature.csv",
			},
		},
	}
}
