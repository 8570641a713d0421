package nimsforestgallery

import (
	"errors"
	"io"
	"log/slog"
	"slices"
	"strings"
	"testing"
)

// traceVisual records its lifecycle calls into a shared log.
type traceVisual struct {
	BaseVisual
	trace  *[]string
	loaded bool
}

func newTraceVisual(id, name string, trace *[]string) *traceVisual {
	return &traceVisual{BaseVisual: NewBaseVisual(id, name, ""), trace: trace, loaded: true}
}

func (v *traceVisual) Loaded() bool { return v.loaded }

func (v *traceVisual) Setup(env *Env) {
	v.BaseVisual.Setup(env)
	*v.trace = append(*v.trace, "setup "+v.ID())
}

func (v *traceVisual) Draw(c Canvas) {
	*v.trace = append(*v.trace, "draw "+v.ID())
}

func (v *traceVisual) Destroy() {
	*v.trace = append(*v.trace, "destroy "+v.ID())
}

type alertLog []string

func (a *alertLog) Alert(msg string) { *a = append(*a, msg) }

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestGallery(opts ...Option) (*Gallery, *alertLog) {
	alerts := &alertLog{}
	opts = append([]Option{WithLogger(quietLogger()), WithAlerter(alerts)}, opts...)
	return New(opts...), alerts
}

func TestRegisterMenuOrder(t *testing.T) {
	g, _ := newTestGallery()
	var trace []string
	for _, id := range []string{"c", "a", "b"} {
		if err := g.Register(newTraceVisual(id, strings.ToUpper(id), &trace)); err != nil {
			t.Fatal(err)
		}
	}
	var ids []string
	for _, m := range g.Menu() {
		ids = append(ids, m.ID)
	}
	if want := []string{"c", "a", "b"}; !slices.Equal(ids, want) {
		t.Errorf("menu order: want %v, have %v", want, ids)
	}
	if g.Selected() != nil {
		t.Error("nothing should be selected after registration")
	}
}

func TestRegisterMissingIdentity(t *testing.T) {
	g, alerts := newTestGallery()
	var trace []string

	for _, v := range []Visual{
		newTraceVisual("", "No id", &trace),
		newTraceVisual("no-name", "", &trace),
		nil,
	} {
		err := g.Register(v)
		var cerr *ConfigError
		if !errors.As(err, &cerr) || !errors.Is(err, ErrMissingIdentity) {
			t.Errorf("want ConfigError wrapping ErrMissingIdentity, have %v", err)
		}
	}
	if g.Len() != 0 {
		t.Errorf("registry should be unchanged, have %d entries", g.Len())
	}
	if len(*alerts) != 3 || (*alerts)[0] != "Make sure your visualisation has an id and name!" {
		t.Errorf("alerts: %q", *alerts)
	}
}

func TestRegisterDuplicateID(t *testing.T) {
	g, alerts := newTestGallery()
	var trace []string
	if err := g.Register(newTraceVisual("x", "First", &trace)); err != nil {
		t.Fatal(err)
	}
	err := g.Register(newTraceVisual("x", "Second", &trace))
	if !errors.Is(err, ErrDuplicateID) {
		t.Errorf("want ErrDuplicateID, have %v", err)
	}
	if g.Len() != 1 {
		t.Errorf("want 1 entry, have %d", g.Len())
	}
	if v, _ := g.Lookup("x"); v.Name() != "First" {
		t.Errorf("first registration should win, have %q", v.Name())
	}
	if want := "Vis 'Second' has a duplicate id: 'x'"; len(*alerts) != 1 || (*alerts)[0] != want {
		t.Errorf("alerts: want %q, have %q", want, *alerts)
	}
}

func TestSelectLifecycle(t *testing.T) {
	g, _ := newTestGallery()
	var trace []string
	g.Register(newTraceVisual("a", "A", &trace))
	g.Register(newTraceVisual("b", "B", &trace))
	dl := NewDisplayList(100, 100)

	g.Select("a")
	g.Draw(dl)
	g.Select("b")
	g.Draw(dl)
	g.Select("a")

	want := []string{"setup a", "draw a", "destroy a", "setup b", "draw b", "destroy b", "setup a"}
	if !slices.Equal(trace, want) {
		t.Errorf("want %v, have %v", want, trace)
	}
	if g.Selected().ID() != "a" {
		t.Errorf("selected: have %s", g.Selected().ID())
	}
}

func TestSelectUnknown(t *testing.T) {
	g, _ := newTestGallery()
	var trace []string
	g.Register(newTraceVisual("a", "A", &trace))
	g.Select("a")
	trace = nil

	if g.Select("missing") {
		t.Error("selecting an unknown id should report false")
	}
	if len(trace) != 0 {
		t.Errorf("unknown select should not touch lifecycle, have %v", trace)
	}
	if g.Selected().ID() != "a" {
		t.Error("selection should be unchanged")
	}
}

func TestDeferredSetup(t *testing.T) {
	g, _ := newTestGallery()
	var trace []string
	v := newTraceVisual("slow", "Slow", &trace)
	v.loaded = false
	g.Register(v)

	g.Select("slow")
	if g.State("slow") != StateActive {
		t.Errorf("state: have %v", g.State("slow"))
	}
	dl := NewDisplayList(100, 100)
	g.Draw(dl)
	if len(trace) != 0 {
		t.Fatalf("nothing should run before the data loads, have %v", trace)
	}
	if have := dl.Count(OpClear); have != 1 {
		t.Errorf("background should still be cleared, have %d clears", have)
	}

	v.loaded = true
	g.Draw(dl)
	g.Draw(dl)
	want := []string{"setup slow", "draw slow", "draw slow"}
	if !slices.Equal(trace, want) {
		t.Errorf("want %v, have %v", want, trace)
	}
}

func TestDeselectBeforeLoadSkipsDestroy(t *testing.T) {
	g, _ := newTestGallery()
	var trace []string
	slow := newTraceVisual("slow", "Slow", &trace)
	slow.loaded = false
	g.Register(slow)
	g.Register(newTraceVisual("fast", "Fast", &trace))

	g.Select("slow")
	g.Select("fast")
	if want := []string{"setup fast"}; !slices.Equal(trace, want) {
		t.Errorf("want %v, have %v", want, trace)
	}
	if have := g.State("slow"); have != StateLoading {
		t.Errorf("state before load: want %v, have %v", StateLoading, have)
	}

	slow.loaded = true
	if have := g.State("slow"); have != StateInactive {
		t.Errorf("state after load: want %v, have %v", StateInactive, have)
	}
}

func TestGalleryStates(t *testing.T) {
	g, _ := newTestGallery()
	var trace []string
	loading := newTraceVisual("loading", "Loading", &trace)
	loading.loaded = false
	g.Register(loading)
	g.Register(newTraceVisual("ready", "Ready", &trace))

	if g.State("nope") != StateUnregistered {
		t.Error("unknown id should be unregistered")
	}
	if g.State("loading") != StateLoading {
		t.Errorf("loading: have %v", g.State("loading"))
	}
	if g.State("ready") != StateReady {
		t.Errorf("ready: have %v", g.State("ready"))
	}

	g.Select("ready")
	menu := g.Menu()
	if !menu[1].Selected || menu[0].Selected {
		t.Errorf("menu selection: %+v", menu)
	}

	g.Close()
	if want := []string{"setup ready", "destroy ready"}; !slices.Equal(trace, want) {
		t.Errorf("close: want %v, have %v", want, trace)
	}
	if g.State("ready") != StateDestroyed {
		t.Errorf("after close: have %v", g.State("ready"))
	}
}

func TestLooping(t *testing.T) {
	g, _ := newTestGallery()
	var trace []string
	g.Register(newTraceVisual("a", "A", &trace))
	if !g.Looping() {
		t.Error("new gallery should loop")
	}
	g.NoLoop()
	g.Select("a")
	if !g.Looping() {
		t.Error("select should resume looping")
	}
}

func TestSetControl(t *testing.T) {
	g, _ := newTestGallery()
	s := g.Controls().Slider("v/speed", 0, 10, 5, 1, 0, 0)

	if err := g.SetControl("v/nope", "1"); !errors.Is(err, ErrUnknownControl) {
		t.Errorf("want ErrUnknownControl, have %v", err)
	}

	g.NoLoop()
	if err := g.SetControl("v/speed", "7"); err != nil {
		t.Fatal(err)
	}
	if s.Float() != 7 {
		t.Errorf("slider value: have %v", s.Float())
	}
	if !g.Looping() {
		t.Error("control change should resume looping")
	}

	if err := g.SetControl("v/speed", "fast"); err == nil {
		t.Error("want parse error")
	}
}
