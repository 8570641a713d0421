package nimsforestgallery

// Frame is the output of one host tick: what was drawn plus the menu and
// controls a host needs to present alongside it.
type Frame struct {
	// Seq increases each time the gallery actually redraws. Targets use
	// it to skip frames they have already shown.
	Seq uint64

	Width, Height float64
	Display       *DisplayList
	Menu          []MenuItem
	Selected      string
	Controls      []ControlView
	Looping       bool
}

// ControlView is a snapshot of a live control.
type ControlView struct {
	Name    string
	Kind    string
	X, Y    float64
	Value   string
	Min     float64
	Max     float64
	Step    float64
	Options []string
}

func viewControl(c Control) ControlView {
	x, y := c.Position()
	cv := ControlView{
		Name:  c.Name(),
		Kind:  c.Kind(),
		X:     x,
		Y:     y,
		Value: c.Value(),
	}
	switch c := c.(type) {
	case *Slider:
		cv.Min, cv.Max, cv.Step = c.Range()
	case *Select:
		cv.Options = c.Options()
	}
	return cv
}

// Render replays the frame's display list onto c.
func (f *Frame) Render(c Canvas) {
	if f == nil || f.Display == nil {
		return
	}
	f.Display.Replay(c)
}
