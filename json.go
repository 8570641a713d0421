package nimsforestgallery

import (
	"encoding/json"
)

// FrameJSON is the JSON representation of a Frame for the web frontend.
type FrameJSON struct {
	Seq      uint64        `json:"seq"`
	Width    float64       `json:"width"`
	Height   float64       `json:"height"`
	Selected string        `json:"selected,omitempty"`
	Looping  bool          `json:"looping"`
	Menu     []MenuJSON    `json:"menu"`
	Controls []ControlJSON `json:"controls"`
	Ops      int           `json:"ops"`
}

// MenuJSON is the JSON representation of a menu entry.
type MenuJSON struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Selected bool   `json:"selected"`
	State    string `json:"state"`
}

// ControlJSON is the JSON representation of a live control.
type ControlJSON struct {
	Name    string   `json:"name"`
	Kind    string   `json:"kind"`
	X       float64  `json:"x"`
	Y       float64  `json:"y"`
	Value   string   `json:"value"`
	Min     float64  `json:"min,omitempty"`
	Max     float64  `json:"max,omitempty"`
	Step    float64  `json:"step,omitempty"`
	Options []string `json:"options,omitempty"`
}

// FrameToJSON converts a Frame to FrameJSON for the web frontend.
func FrameToJSON(f *Frame) FrameJSON {
	if f == nil {
		return FrameJSON{Menu: []MenuJSON{}, Controls: []ControlJSON{}}
	}

	menu := make([]MenuJSON, len(f.Menu))
	for i, m := range f.Menu {
		menu[i] = MenuJSON{
			ID:       m.ID,
			Name:     m.Name,
			Selected: m.Selected,
			State:    m.State.String(),
		}
	}

	controls := make([]ControlJSON, len(f.Controls))
	for i, c := range f.Controls {
		controls[i] = ControlJSON{
			Name:    c.Name,
			Kind:    c.Kind,
			X:       c.X,
			Y:       c.Y,
			Value:   c.Value,
			Min:     c.Min,
			Max:     c.Max,
			Step:    c.Step,
			Options: c.Options,
		}
	}

	ops := 0
	if f.Display != nil {
		ops = len(f.Display.Ops())
	}

	return FrameJSON{
		Seq:      f.Seq,
		Width:    f.Width,
		Height:   f.Height,
		Selected: f.Selected,
		Looping:  f.Looping,
		Menu:     menu,
		Controls: controls,
		Ops:      ops,
	}
}

// FrameToJSONBytes converts a Frame to JSON bytes.
func FrameToJSONBytes(f *Frame) ([]byte, error) {
	return json.Marshal(FrameToJSON(f))
}
