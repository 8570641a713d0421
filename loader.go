package nimsforestgallery

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// Loader fetches datasets from a file system in the background. Each
// Load returns immediately with a future; concurrent loads of the same
// path share one read.
type Loader struct {
	fsys  fs.FS
	log   *slog.Logger
	group singleflight.Group

	mu      sync.Mutex
	pending []*Future[*Table]
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithLoaderLogger sets the logger used for load diagnostics.
func WithLoaderLogger(l *slog.Logger) LoaderOption {
	return func(ld *Loader) {
		ld.log = l
	}
}

// NewLoader returns a loader reading datasets from fsys.
func NewLoader(fsys fs.FS, opts ...LoaderOption) *Loader {
	ld := &Loader{
		fsys: fsys,
		log:  slog.Default(),
	}
	for _, opt := range opts {
		opt(ld)
	}
	return ld
}

// Load starts reading the dataset at name. CSV is assumed unless the
// name ends in .xlsx. The load cannot be cancelled.
func (ld *Loader) Load(name string) *Future[*Table] {
	f := NewFuture[*Table]()
	ld.mu.Lock()
	ld.pending = append(ld.pending, f)
	ld.mu.Unlock()

	go func() {
		v, err, shared := ld.group.Do(name, func() (any, error) {
			return ld.read(name)
		})
		if err != nil {
			ld.log.Error("dataset load failed", "path", name, "err", err)
			f.Resolve(nil, err)
			return
		}
		t := v.(*Table)
		ld.log.Debug("dataset loaded", "path", name, "rows", t.RowCount(), "shared", shared)
		f.Resolve(t, nil)
	}()
	return f
}

func (ld *Loader) read(name string) (*Table, error) {
	if ld.fsys == nil {
		return nil, fmt.Errorf("load %s: no dataset file system", name)
	}
	file, err := ld.fsys.Open(name)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", name, err)
	}
	defer file.Close()

	var t *Table
	if strings.EqualFold(path.Ext(name), ".xlsx") {
		t, err = ParseXLSX(file)
	} else {
		t, err = ParseCSV(file)
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", name, err)
	}
	return t, nil
}

// Wait blocks until every load requested so far has settled or ctx is
// done. It returns the first load error, if any.
func (ld *Loader) Wait(ctx context.Context) error {
	ld.mu.Lock()
	pending := append([]*Future[*Table](nil), ld.pending...)
	ld.mu.Unlock()

	g, ctx := errgroup.WithContext(ctx)
	for _, f := range pending {
		g.Go(func() error {
			_, err := f.Wait(ctx)
			return err
		})
	}
	return g.Wait()
}
