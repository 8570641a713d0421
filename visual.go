package nimsforestgallery

import (
	"log/slog"
)

// Visual is one chart bound to one dataset. The gallery drives it
// through Preload, Setup, Draw and Destroy. Embedding BaseVisual supplies
// everything except Draw.
type Visual interface {
	// ID is the unique identifier used for selection.
	ID() string

	// Name is the menu display name.
	Name() string

	// Preload starts fetching the visual's data. It must not block.
	Preload(ld *Loader)

	// Loaded reports whether the data has arrived.
	Loaded() bool

	// Setup initialises derived state and controls. It runs once per
	// activation, before the first Draw of that activation.
	Setup(env *Env)

	// Draw renders one frame. It must tolerate being called before the
	// data has loaded.
	Draw(c Canvas)

	// Destroy releases whatever Setup created. It runs once per
	// deactivation.
	Destroy()
}

// Env is what the host offers a visual while it is active.
type Env struct {
	Width, Height float64
	Controls      Controls
	Log           *slog.Logger

	alert  Alerter
	noLoop func()
}

// NoLoop asks the host to stop redrawing until something changes.
func (e *Env) NoLoop() {
	if e != nil && e.noLoop != nil {
		e.noLoop()
	}
}

// Alert reports a user-facing problem.
func (e *Env) Alert(msg string) {
	switch {
	case e == nil:
		slog.Error("alert", "msg", msg)
	case e.alert != nil:
		e.alert.Alert(msg)
	default:
		e.logger().Error("alert", "msg", msg)
	}
}

func (e *Env) logger() *slog.Logger {
	if e == nil || e.Log == nil {
		return slog.Default()
	}
	return e.Log
}

// BaseVisual implements the parts of Visual shared by every chart: its
// identity, its dataset, and no-op lifecycle hooks.
type BaseVisual struct {
	id      string
	name    string
	dataset string

	data *Future[*Table]
	env  *Env
}

// NewBaseVisual returns a BaseVisual that loads dataset on Preload. An
// empty dataset means the visual needs no data.
func NewBaseVisual(id, name, dataset string) BaseVisual {
	return BaseVisual{id: id, name: name, dataset: dataset}
}

// ID implements Visual.
func (b *BaseVisual) ID() string { return b.id }

// Name implements Visual.
func (b *BaseVisual) Name() string { return b.name }

// Dataset returns the path of the visual's dataset.
func (b *BaseVisual) Dataset() string { return b.dataset }

// Preload implements Visual.
func (b *BaseVisual) Preload(ld *Loader) {
	if b.dataset == "" || ld == nil {
		return
	}
	b.data = ld.Load(b.dataset)
}

// SetTable supplies the visual's data directly instead of loading it.
func (b *BaseVisual) SetTable(t *Table) {
	b.data = Resolved(t, nil)
}

// Loaded implements Visual. A failed load never becomes loaded.
func (b *BaseVisual) Loaded() bool {
	if b.dataset == "" && b.data == nil {
		return true
	}
	if b.data == nil {
		return false
	}
	t, err := b.data.Get()
	return err == nil && t != nil
}

// Table returns the loaded dataset, or nil before it arrives.
func (b *BaseVisual) Table() *Table {
	if b.data == nil {
		return nil
	}
	t, _ := b.data.Get()
	return t
}

// Setup implements Visual by remembering env.
func (b *BaseVisual) Setup(env *Env) {
	b.env = env
}

// Destroy implements Visual.
func (b *BaseVisual) Destroy() {}

// Env returns the environment passed to the last Setup.
func (b *BaseVisual) Env() *Env {
	return b.env
}

// checkColumns warns about each column the visual reads that its dataset
// lacks. Missing cells read as NaN, so drawing goes ahead regardless.
func (b *BaseVisual) checkColumns(env *Env, columns ...string) {
	t := b.Table()
	if t == nil {
		env.logger().Warn("visual has no data", "id", b.id)
		return
	}
	for _, col := range columns {
		if !t.HasColumn(col) {
			env.logger().Warn("dataset has no such column", "id", b.id, "dataset", b.Dataset(), "column", col)
		}
	}
}

// ready reports whether Draw may proceed, logging a diagnostic when it
// may not.
func (b *BaseVisual) ready() bool {
	if !b.Loaded() {
		b.env.logger().Debug("data not yet loaded", "id", b.id)
		return false
	}
	return true
}

// State is a visual's position in its lifecycle.
type State int

const (
	StateUnregistered State = iota
	StateLoading
	StateReady
	StateActive
	StateInactive
	StateDestroyed
)

func (s State) String() string {
	switch s {
	case StateUnregistered:
		return "unregistered"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateActive:
		return "active"
	case StateInactive:
		return "inactive"
	case StateDestroyed:
		return "destroyed"
	}
	return "unknown"
}
