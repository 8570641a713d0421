package nimsforestgallery

import (
	"slices"
	"sync"
)

// FrameSource provides the next frame for the viewer to push out.
type FrameSource interface {
	// NextFrame returns the current frame.
	NextFrame() (*Frame, error)
}

// Dispatcher receives the user interface events a host forwards to the
// gallery.
type Dispatcher interface {
	Select(id string) bool
	SetControl(name, value string) error
}

// StaticFrameSource wraps a fixed Frame.
type StaticFrameSource struct {
	frame *Frame
}

// NewStaticFrameSource creates a FrameSource from a fixed Frame.
func NewStaticFrameSource(f *Frame) *StaticFrameSource {
	return &StaticFrameSource{frame: f}
}

// NextFrame implements FrameSource.
func (s *StaticFrameSource) NextFrame() (*Frame, error) {
	return s.frame, nil
}

// GallerySource draws a gallery into frames. It serialises every access
// to the gallery, so ticks and UI events may come from different
// goroutines.
type GallerySource struct {
	mu   sync.Mutex
	g    *Gallery
	seq  uint64
	last *Frame
}

// NewGallerySource returns a source that draws g.
func NewGallerySource(g *Gallery) *GallerySource {
	return &GallerySource{g: g}
}

// NextFrame implements FrameSource. While the gallery is not looping the
// previous frame is returned unchanged.
func (s *GallerySource) NextFrame() (*Frame, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.last != nil && !s.g.Looping() {
		return s.last, nil
	}

	w, h := s.g.Size()
	dl := NewDisplayList(w, h)
	s.g.Draw(dl)
	s.seq++

	f := &Frame{
		Seq:     s.seq,
		Width:   w,
		Height:  h,
		Display: dl,
		Menu:    s.g.Menu(),
		Looping: s.g.Looping(),
	}
	if v := s.g.Selected(); v != nil {
		f.Selected = v.ID()
	}
	for _, c := range s.g.Controls().Live() {
		f.Controls = append(f.Controls, viewControl(c))
	}
	slices.SortStableFunc(f.Controls, func(a, b ControlView) int {
		switch {
		case a.X < b.X:
			return -1
		case a.X > b.X:
			return 1
		}
		return 0
	})
	s.last = f
	return f, nil
}

// Select implements Dispatcher.
func (s *GallerySource) Select(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.g.Select(id)
}

// SetControl implements Dispatcher.
func (s *GallerySource) SetControl(name, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.g.SetControl(name, value)
}

// Do runs fn with exclusive access to the gallery.
func (s *GallerySource) Do(fn func(g *Gallery)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.g)
}
