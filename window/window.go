// Package window hosts a gallery in a desktop window using ebiten.
//
// Keys: 1-9 select a visual, [ and ] move focus between controls, the
// arrow keys adjust the focused control, Escape quits.
package window

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	gallery "github.com/nimsforest/nimsforestgallery"
)

var digitKeys = []ebiten.Key{
	ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3,
	ebiten.KeyDigit4, ebiten.KeyDigit5, ebiten.KeyDigit6,
	ebiten.KeyDigit7, ebiten.KeyDigit8, ebiten.KeyDigit9,
}

// Window implements ebiten.Game over a gallery source.
type Window struct {
	ctx   context.Context
	src   *gallery.GallerySource
	nav   *gallery.Navigator
	log   *slog.Logger
	title string

	width, height int
	surface       *ebiten.Image
	frame         *gallery.Frame
	lastSeq       uint64
}

// Option configures a Window.
type Option func(*Window)

// WithTitle sets the window title.
func WithTitle(title string) Option {
	return func(w *Window) {
		w.title = title
	}
}

// WithLogger sets the window's logger.
func WithLogger(l *slog.Logger) Option {
	return func(w *Window) {
		w.log = l
	}
}

// New returns a window drawing src.
func New(src *gallery.GallerySource, opts ...Option) *Window {
	w := &Window{
		ctx:   context.Background(),
		src:   src,
		nav:   gallery.NewNavigator(src),
		log:   slog.Default(),
		title: "nimsforestgallery",
	}
	for _, opt := range opts {
		opt(w)
	}
	var width, height float64
	src.Do(func(g *gallery.Gallery) {
		width, height = g.Size()
	})
	w.width, w.height = int(width), int(height)
	return w
}

// Run opens the window and blocks until it is closed, Escape is pressed
// or ctx is done.
func (w *Window) Run(ctx context.Context) error {
	w.ctx = ctx
	ebiten.SetWindowSize(w.width, w.height)
	ebiten.SetWindowTitle(w.title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(w); err != nil {
		return fmt.Errorf("run window: %w", err)
	}
	return nil
}

// Update implements ebiten.Game.
func (w *Window) Update() error {
	if w.ctx.Err() != nil || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	w.handleKeys()

	f, err := w.src.NextFrame()
	if err != nil {
		w.log.Warn("frame failed", "err", err)
		return nil
	}
	w.frame = f
	if f.Seq == w.lastSeq && w.surface != nil {
		return nil
	}
	w.lastSeq = f.Seq

	if w.surface == nil {
		w.surface = ebiten.NewImage(w.width, w.height)
	}
	c := gallery.NewRasterCanvas(w.width, w.height)
	f.Render(c)
	w.surface.WritePixels(c.Image().Pix)
	return nil
}

func (w *Window) handleKeys() {
	for i, k := range digitKeys {
		if inpututil.IsKeyJustPressed(k) {
			w.nav.SelectIndex(i)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBracketRight) {
		w.nav.FocusNext()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBracketLeft) {
		w.nav.FocusPrev()
	}

	dir := 0
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowRight), inpututil.IsKeyJustPressed(ebiten.KeyArrowUp):
		dir = 1
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft), inpututil.IsKeyJustPressed(ebiten.KeyArrowDown):
		dir = -1
	}
	if dir != 0 {
		if err := w.nav.Adjust(dir); err != nil {
			w.log.Warn("adjust control", "err", err)
		}
	}
}

// Draw implements ebiten.Game.
func (w *Window) Draw(screen *ebiten.Image) {
	if w.surface != nil {
		screen.DrawImage(w.surface, nil)
	}
	if w.frame == nil {
		return
	}

	var menu strings.Builder
	for i, m := range w.frame.Menu {
		mark := " "
		if m.Selected {
			mark = ">"
		}
		fmt.Fprintf(&menu, "%s%d %s\n", mark, i+1, m.Name)
	}
	ebitenutil.DebugPrintAt(screen, menu.String(), 4, w.height-16*len(w.frame.Menu)-4)

	focus := w.nav.Focused()
	for _, c := range w.frame.Controls {
		label := fmt.Sprintf("%s: %s", c.Name, c.Value)
		if c.Name == focus {
			label = "[" + label + "]"
		}
		ebitenutil.DebugPrintAt(screen, label, int(c.X), int(c.Y))
	}
}

// Layout implements ebiten.Game.
func (w *Window) Layout(outsideWidth, outsideHeight int) (int, int) {
	return w.width, w.height
}
