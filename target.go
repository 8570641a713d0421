package nimsforestgallery

import "context"

// Target represents a frame output destination.
type Target interface {
	// Update sends a new frame to the target.
	Update(ctx context.Context, f *Frame) error

	// Close cleans up the target.
	Close() error

	// Name returns a descriptive name for logging.
	Name() string
}
