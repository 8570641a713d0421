package nimsforestgallery

import (
	"fmt"
	"math"
	"slices"
	"strconv"
)

// Control is a host UI widget placed at a literal pixel position.
// Visuals create controls in Setup and remove them in Destroy.
type Control interface {
	// Name is unique among live controls, conventionally
	// "<visual-id>/<control>".
	Name() string
	Kind() string
	Position() (x, y float64)

	// Value returns the current value in text form.
	Value() string

	// Set changes the value from text form, as a host UI event would.
	Set(value string) error

	Remove()
	Removed() bool
}

// Controls creates host widgets.
type Controls interface {
	Slider(name string, min, max, value, step, x, y float64) *Slider
	Select(name string, x, y float64, options ...string) *Select
}

// ControlSet tracks the widgets created through it. It implements
// Controls.
type ControlSet struct {
	controls []Control
}

// NewControlSet returns an empty control set.
func NewControlSet() *ControlSet {
	return &ControlSet{}
}

// Slider implements Controls.
func (cs *ControlSet) Slider(name string, min, max, value, step, x, y float64) *Slider {
	s := &Slider{control: control{name: name, x: x, y: y}, min: min, max: max, step: step}
	s.SetFloat(value)
	cs.add(s)
	return s
}

// Select implements Controls. The first option is selected initially.
func (cs *ControlSet) Select(name string, x, y float64, options ...string) *Select {
	s := &Select{control: control{name: name, x: x, y: y}, options: options}
	if len(options) > 0 {
		s.value = options[0]
	}
	cs.add(s)
	return s
}

// add registers c and forgets controls removed since the last call.
func (cs *ControlSet) add(c Control) {
	cs.prune()
	cs.controls = append(cs.controls, c)
}

func (cs *ControlSet) prune() {
	cs.controls = slices.DeleteFunc(cs.controls, Control.Removed)
}

// Live returns the controls that have not been removed, in creation
// order.
func (cs *ControlSet) Live() []Control {
	cs.prune()
	return slices.Clone(cs.controls)
}

// Lookup returns the live control called name.
func (cs *ControlSet) Lookup(name string) (Control, bool) {
	for _, c := range cs.controls {
		if c.Name() == name && !c.Removed() {
			return c, true
		}
	}
	return nil, false
}

// RemoveAll removes every live control.
func (cs *ControlSet) RemoveAll() {
	for _, c := range cs.controls {
		c.Remove()
	}
	cs.controls = nil
}

type control struct {
	name    string
	x, y    float64
	removed bool
}

func (c *control) Name() string { return c.name }
func (c *control) Position() (float64, float64) { return c.x, c.y }
func (c *control) Remove() { c.removed = true }
func (c *control) Removed() bool { return c.removed }

// Slider is a numeric range control.
type Slider struct {
	control
	min, max, step float64
	value          float64
}

// Kind implements Control.
func (s *Slider) Kind() string { return "slider" }

// Range returns the slider's bounds and step.
func (s *Slider) Range() (min, max, step float64) {
	return s.min, s.max, s.step
}

// Float returns the current value.
func (s *Slider) Float() float64 {
	return s.value
}

// SetFloat sets the value, clamped to the slider's range and snapped to
// its step.
func (s *Slider) SetFloat(v float64) {
	if s.step > 0 {
		v = s.min + math.Round((v-s.min)/s.step)*s.step
	}
	s.value = math.Max(s.min, math.Min(s.max, v))
}

// Value implements Control.
func (s *Slider) Value() string {
	return strconv.FormatFloat(s.value, 'f', -1, 64)
}

// Set implements Control.
func (s *Slider) Set(value string) error {
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fmt.Errorf("slider %s: %w", s.name, err)
	}
	s.SetFloat(v)
	return nil
}

// Select is a drop-down choice between fixed options.
type Select struct {
	control
	options []string
	value   string
}

// Kind implements Control.
func (s *Select) Kind() string { return "select" }

// Options returns the available choices.
func (s *Select) Options() []string {
	return s.options
}

// Value implements Control.
func (s *Select) Value() string {
	return s.value
}

// Set implements Control. The value must be one of the options.
func (s *Select) Set(value string) error {
	if !slices.Contains(s.options, value) {
		return fmt.Errorf("select %s: %q is not an option", s.name, value)
	}
	s.value = value
	return nil
}
