package nimsforestgallery

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// DefaultFrameInterval is the viewer's default tick, roughly 30 frames a
// second.
const DefaultFrameInterval = time.Second / 30

// Viewer ticks a frame source at a fixed interval and pushes each frame
// to its output targets.
type Viewer struct {
	mu       sync.RWMutex
	source   FrameSource
	targets  []Target
	interval time.Duration
	log      *slog.Logger
	cancel   context.CancelFunc
	done     chan struct{}

	// updateMu keeps target updates from overlapping.
	updateMu sync.Mutex
}

// ViewerOption configures the Viewer.
type ViewerOption func(*Viewer)

// WithInterval sets the update interval for periodic updates.
func WithInterval(d time.Duration) ViewerOption {
	return func(v *Viewer) {
		v.interval = d
	}
}

// WithViewerLogger sets the logger for background update failures.
func WithViewerLogger(l *slog.Logger) ViewerOption {
	return func(v *Viewer) {
		v.log = l
	}
}

// NewViewer creates a new Viewer with the given options.
func NewViewer(opts ...ViewerOption) *Viewer {
	v := &Viewer{
		interval: DefaultFrameInterval,
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// SetFrameSource sets the source of frames.
func (v *Viewer) SetFrameSource(s FrameSource) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.source = s
}

// AddTarget adds an output target.
func (v *Viewer) AddTarget(t Target) error {
	if t == nil {
		return errors.New("nil target")
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	v.targets = append(v.targets, t)
	return nil
}

// RemoveTarget removes a target by reference.
func (v *Viewer) RemoveTarget(t Target) {
	v.mu.Lock()
	defer v.mu.Unlock()
	for i, target := range v.targets {
		if target == t {
			v.targets = append(v.targets[:i], v.targets[i+1:]...)
			return
		}
	}
}

// Targets returns the current targets.
func (v *Viewer) Targets() []Target {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return append([]Target(nil), v.targets...)
}

// Start pushes a first frame and then begins periodic updates.
func (v *Viewer) Start(ctx context.Context) error {
	v.mu.Lock()
	if v.cancel != nil {
		v.mu.Unlock()
		return fmt.Errorf("viewer already started")
	}
	ctx, v.cancel = context.WithCancel(ctx)
	v.done = make(chan struct{})
	v.mu.Unlock()

	if err := v.Update(ctx); err != nil {
		v.log.Warn("initial update failed", "err", err)
	}

	go v.run(ctx)
	return nil
}

func (v *Viewer) run(ctx context.Context) {
	ticker := time.NewTicker(v.interval)
	defer ticker.Stop()
	defer close(v.done)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := v.Update(ctx); err != nil {
				v.log.Debug("update failed", "err", err)
			}
		}
	}
}

// Stop stops periodic updates and waits for the loop to exit.
func (v *Viewer) Stop() {
	v.mu.Lock()
	done := v.done
	if v.cancel != nil {
		v.cancel()
		v.cancel = nil
	}
	v.mu.Unlock()

	if done != nil {
		<-done
	}
}

// Update pulls one frame from the source and pushes it to every target.
// Targets are all tried; the last failure is returned.
func (v *Viewer) Update(ctx context.Context) error {
	v.mu.RLock()
	source := v.source
	targets := make([]Target, len(v.targets))
	copy(targets, v.targets)
	v.mu.RUnlock()

	if source == nil {
		return fmt.Errorf("no frame source set")
	}

	v.updateMu.Lock()
	defer v.updateMu.Unlock()

	f, err := source.NextFrame()
	if err != nil {
		return fmt.Errorf("failed to get frame: %w", err)
	}

	var lastErr error
	for _, target := range targets {
		if err := target.Update(ctx, f); err != nil {
			lastErr = fmt.Errorf("target %s: %w", target.Name(), err)
		}
	}
	return lastErr
}

func (v *Viewer) dispatcher() (Dispatcher, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	d, ok := v.source.(Dispatcher)
	return d, ok
}

// Select forwards a menu selection to the frame source and pushes the
// resulting frame straight away.
func (v *Viewer) Select(id string) bool {
	d, ok := v.dispatcher()
	if !ok || !d.Select(id) {
		return false
	}
	if err := v.Update(context.Background()); err != nil {
		v.log.Debug("update after select failed", "id", id, "err", err)
	}
	return true
}

// SetControl forwards a control change to the frame source and pushes the
// resulting frame straight away.
func (v *Viewer) SetControl(name, value string) error {
	d, ok := v.dispatcher()
	if !ok {
		return fmt.Errorf("frame source does not accept control changes")
	}
	if err := d.SetControl(name, value); err != nil {
		return err
	}
	if err := v.Update(context.Background()); err != nil {
		v.log.Debug("update after control change failed", "control", name, "err", err)
	}
	return nil
}

// Close stops the viewer and closes all targets.
func (v *Viewer) Close() error {
	v.Stop()

	v.mu.Lock()
	targets := v.targets
	v.targets = nil
	v.mu.Unlock()

	var errs []error
	for _, target := range targets {
		if err := target.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close %s: %w", target.Name(), err))
		}
	}
	return errors.Join(errs...)
}
