// Package nimsforestgallery renders a gallery of interactive data
// visualisations. A Gallery holds registered visuals, exposes them as a
// menu, and forwards the host's per-frame ticks to the one selected.
package nimsforestgallery

import (
	"fmt"
	"log/slog"
)

// Default surface size.
const (
	DefaultWidth  = 1024
	DefaultHeight = 576
)

type entry struct {
	vis         Visual
	setUp       bool // Setup ran for the current activation
	deactivated bool
}

// Gallery is a registry of visuals and the lifecycle dispatcher that
// keeps exactly one of them active. A Gallery is not safe for concurrent
// use; hosts call it from a single render loop.
type Gallery struct {
	width, height float64

	entries  []*entry
	selected *entry
	closed   bool
	looping  bool

	loader   *Loader
	controls *ControlSet
	alert    Alerter
	log      *slog.Logger
}

// Option configures the Gallery.
type Option func(*Gallery)

// WithSize sets the drawing surface size offered to visuals.
func WithSize(width, height float64) Option {
	return func(g *Gallery) {
		g.width, g.height = width, height
	}
}

// WithLoader sets the loader passed to each visual's Preload.
func WithLoader(ld *Loader) Option {
	return func(g *Gallery) {
		g.loader = ld
	}
}

// WithLogger sets the gallery's logger.
func WithLogger(l *slog.Logger) Option {
	return func(g *Gallery) {
		g.log = l
	}
}

// WithAlerter sets where user-facing alerts go. By default they are
// logged.
func WithAlerter(a Alerter) Option {
	return func(g *Gallery) {
		g.alert = a
	}
}

// New creates an empty Gallery.
func New(opts ...Option) *Gallery {
	g := &Gallery{
		width:    DefaultWidth,
		height:   DefaultHeight,
		looping:  true,
		controls: NewControlSet(),
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.alert == nil {
		g.alert = logAlerter{log: g.log}
	}
	return g
}

// Loader returns the loader passed to Preload, or nil.
func (g *Gallery) Loader() *Loader {
	return g.loader
}

// Size returns the drawing surface size.
func (g *Gallery) Size() (width, height float64) {
	return g.width, g.height
}

// Register adds v to the end of the menu and starts its preload. A
// visual without an id or name, or with an id already in use, is
// rejected with a *ConfigError and the registry is left unchanged.
func (g *Gallery) Register(v Visual) error {
	if v == nil || v.ID() == "" || v.Name() == "" {
		err := &ConfigError{Err: ErrMissingIdentity}
		if v != nil {
			err.ID, err.Name = v.ID(), v.Name()
		}
		g.alert.Alert("Make sure your visualisation has an id and name!")
		return err
	}
	if g.find(v.ID()) != nil {
		g.alert.Alert(fmt.Sprintf("Vis '%s' has a duplicate id: '%s'", v.Name(), v.ID()))
		return &ConfigError{ID: v.ID(), Name: v.Name(), Err: ErrDuplicateID}
	}

	g.entries = append(g.entries, &entry{vis: v})
	g.log.Info("registered visual", "id", v.ID(), "name", v.Name())
	v.Preload(g.loader)
	return nil
}

func (g *Gallery) find(id string) *entry {
	for _, e := range g.entries {
		if e.vis.ID() == id {
			return e
		}
	}
	return nil
}

// Lookup returns the registered visual with the given id.
func (g *Gallery) Lookup(id string) (Visual, bool) {
	if e := g.find(id); e != nil {
		return e.vis, true
	}
	return nil, false
}

// Visuals returns the registered visuals in menu order.
func (g *Gallery) Visuals() []Visual {
	out := make([]Visual, len(g.entries))
	for i, e := range g.entries {
		out[i] = e.vis
	}
	return out
}

// Len returns the number of registered visuals.
func (g *Gallery) Len() int {
	return len(g.entries)
}

// Selected returns the active visual, or nil.
func (g *Gallery) Selected() Visual {
	if g.selected == nil {
		return nil
	}
	return g.selected.vis
}

// Select makes the visual with the given id active. The previous
// selection is destroyed before the new one is set up, and the host is
// asked to resume looping. Selecting an unknown id does nothing and
// returns false.
func (g *Gallery) Select(id string) bool {
	e := g.find(id)
	if e == nil {
		g.log.Debug("select: no such visual", "id", id)
		return false
	}
	g.deactivate()
	g.selected = e
	e.deactivated = false
	g.activate(e)
	g.Loop()
	g.log.Info("selected visual", "id", id)
	return true
}

func (g *Gallery) deactivate() {
	e := g.selected
	if e == nil {
		return
	}
	if e.setUp {
		e.vis.Destroy()
		e.setUp = false
	}
	e.deactivated = true
	g.selected = nil
}

// activate runs Setup if the visual's data is in. Otherwise Setup waits
// for the first tick after it arrives.
func (g *Gallery) activate(e *entry) {
	if e.setUp || !e.vis.Loaded() {
		return
	}
	e.vis.Setup(g.env(e.vis))
	e.setUp = true
}

func (g *Gallery) env(v Visual) *Env {
	return &Env{
		Width:    g.width,
		Height:   g.height,
		Controls: g.controls,
		Log:      g.log.With("visual", v.ID()),
		alert:    g.alert,
		noLoop:   g.NoLoop,
	}
}

// Draw renders one frame of the active visual onto c.
func (g *Gallery) Draw(c Canvas) {
	c.Clear(White)
	e := g.selected
	if e == nil {
		return
	}
	g.activate(e)
	if !e.setUp {
		g.log.Debug("data not yet loaded", "id", e.vis.ID())
		return
	}
	e.vis.Draw(c)
}

// State returns the lifecycle state of the visual with the given id.
func (g *Gallery) State(id string) State {
	e := g.find(id)
	switch {
	case e == nil:
		return StateUnregistered
	case g.closed:
		return StateDestroyed
	case e == g.selected:
		return StateActive
	case !e.vis.Loaded():
		return StateLoading
	case e.deactivated:
		return StateInactive
	}
	return StateReady
}

// MenuItem is one entry of the gallery menu.
type MenuItem struct {
	ID       string
	Name     string
	Selected bool
	State    State
}

// Menu returns the menu entries in registration order.
func (g *Gallery) Menu() []MenuItem {
	items := make([]MenuItem, len(g.entries))
	for i, e := range g.entries {
		items[i] = MenuItem{
			ID:       e.vis.ID(),
			Name:     e.vis.Name(),
			Selected: e == g.selected,
			State:    g.State(e.vis.ID()),
		}
	}
	return items
}

// Controls returns the widgets created by visuals.
func (g *Gallery) Controls() *ControlSet {
	return g.controls
}

// SetControl applies a host UI event to the live control called name
// and resumes looping.
func (g *Gallery) SetControl(name, value string) error {
	c, ok := g.controls.Lookup(name)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownControl, name)
	}
	if err := c.Set(value); err != nil {
		return err
	}
	g.Loop()
	return nil
}

// Loop asks the host to redraw every tick.
func (g *Gallery) Loop() {
	g.looping = true
}

// NoLoop asks the host to stop redrawing until Loop is called.
func (g *Gallery) NoLoop() {
	g.looping = false
}

// Looping reports whether the host should redraw on each tick.
func (g *Gallery) Looping() bool {
	return g.looping
}

// Close destroys the active visual. The gallery must not be used
// afterwards.
func (g *Gallery) Close() {
	g.deactivate()
	g.closed = true
}
