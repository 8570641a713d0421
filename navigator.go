package nimsforestgallery

import (
	"slices"
	"strconv"
)

// Navigator turns keyboard-style input into gallery events for hosts
// that have no pointer-driven menu: select by menu index, move focus
// between live controls, and step the focused control.
type Navigator struct {
	src   *GallerySource
	focus string
}

// NewNavigator returns a navigator over src.
func NewNavigator(src *GallerySource) *Navigator {
	return &Navigator{src: src}
}

// SelectIndex selects the i-th menu entry, counting from zero.
func (n *Navigator) SelectIndex(i int) bool {
	var id string
	n.src.Do(func(g *Gallery) {
		if v := g.Visuals(); i >= 0 && i < len(v) {
			id = v[i].ID()
		}
	})
	if id == "" {
		return false
	}
	n.focus = ""
	return n.src.Select(id)
}

// Focused returns the name of the focused control, if it is still live.
func (n *Navigator) Focused() string {
	var name string
	n.src.Do(func(g *Gallery) {
		if _, ok := g.Controls().Lookup(n.focus); ok {
			name = n.focus
		}
	})
	return name
}

// FocusNext moves focus to the next live control, wrapping around.
func (n *Navigator) FocusNext() string { return n.move(1) }

// FocusPrev moves focus to the previous live control, wrapping around.
func (n *Navigator) FocusPrev() string { return n.move(-1) }

func (n *Navigator) move(step int) string {
	var names []string
	n.src.Do(func(g *Gallery) {
		for _, c := range g.Controls().Live() {
			names = append(names, c.Name())
		}
	})
	if len(names) == 0 {
		n.focus = ""
		return ""
	}
	i := slices.Index(names, n.focus)
	switch {
	case i < 0 && step > 0:
		i = 0
	case i < 0:
		i = len(names) - 1
	default:
		i = (i + step + len(names)) % len(names)
	}
	n.focus = names[i]
	return n.focus
}

// Adjust steps the focused control by dir: a slider moves by its step, a
// select moves to the neighbouring option. With nothing focused the
// first control is focused first.
func (n *Navigator) Adjust(dir int) error {
	if n.Focused() == "" && n.FocusNext() == "" {
		return nil
	}
	var value string
	n.src.Do(func(g *Gallery) {
		c, _ := g.Controls().Lookup(n.focus)
		switch c := c.(type) {
		case *Slider:
			_, _, step := c.Range()
			value = strconv.FormatFloat(c.Float()+float64(dir)*step, 'f', -1, 64)
		case *Select:
			opts := c.Options()
			if len(opts) == 0 {
				return
			}
			i := slices.Index(opts, c.Value())
			value = opts[((i+dir)%len(opts)+len(opts))%len(opts)]
		}
	})
	if value == "" {
		return nil
	}
	return n.src.SetControl(n.focus, value)
}
