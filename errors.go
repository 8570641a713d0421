package nimsforestgallery

import (
	"errors"
	"fmt"
	"log/slog"
)

var (
	// ErrMissingIdentity means a visual was registered without an id or
	// display name.
	ErrMissingIdentity = errors.New("visual has no id or name")

	// ErrDuplicateID means a visual's id is already registered.
	ErrDuplicateID = errors.New("duplicate visual id")

	// ErrLengthMismatch means parallel chart inputs differ in length.
	ErrLengthMismatch = errors.New("input lengths differ")

	// ErrEmptyData means a chart was given nothing to draw.
	ErrEmptyData = errors.New("empty data")

	// ErrNotReady means an asynchronous result has not completed.
	ErrNotReady = errors.New("not ready")

	// ErrUnknownKind means no chart type is registered for a kind.
	ErrUnknownKind = errors.New("unknown chart kind")

	// ErrUnknownControl means no live control has the given name.
	ErrUnknownControl = errors.New("unknown control")

	// ErrUnknownVisual means no registered visual has the given id.
	ErrUnknownVisual = errors.New("unknown visual")

	// ErrUnknownFormat means an output format is not supported.
	ErrUnknownFormat = errors.New("unknown output format")
)

// ConfigError is a gallery configuration mistake detected at
// registration time.
type ConfigError struct {
	ID   string
	Name string
	Err  error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("visual %q (%s): %v", e.Name, e.ID, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// Alerter surfaces user-facing problems, such as a misconfigured visual
// or bad chart input, to whoever is watching the gallery.
type Alerter interface {
	Alert(msg string)
}

// AlertFunc adapts a function to Alerter.
type AlertFunc func(msg string)

// Alert implements Alerter.
func (f AlertFunc) Alert(msg string) { f(msg) }

// logAlerter reports alerts at error level.
type logAlerter struct {
	log *slog.Logger
}

func (a logAlerter) Alert(msg string) {
	a.log.Error("alert", "msg", msg)
}
