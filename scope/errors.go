package scope

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyData           = errors.New("no complete numeric rows")
	ErrInsufficientColumns = errors.New("fewer than two numeric columns")
	ErrMalformedRow        = errors.New("malformed row")

	// ErrInsufficientVisibleData is returned when fewer than two samples fall
	// inside the visible time window. The frame is skipped; state is kept.
	ErrInsufficientVisibleData = errors.New("not enough data in the visible range")

	ErrUnknownDivision = errors.New("unknown division label")

	// ErrNoData is returned when a frame is requested before any dataset
	// was loaded.
	ErrNoData = errors.New("no dataset loaded")

	ErrNoSuchChannel = errors.New("no such channel")

	// ErrReentrant is returned by Engine.Apply when it is invoked while
	// another command is still being applied.
	ErrReentrant = errors.New("engine is already applying a command")
)

// DataError describes why a dataset was rejected. Row is -1 when the
// problem is not tied to a particular row.
type DataError struct {
	Err error
	Row int
}

func (e *DataError) Error() string {
	if e.Row < 0 {
		return fmt.Sprintf("invalid dataset: %v", e.Err)
	}
	return fmt.Sprintf("invalid dataset: row %d: %v", e.Row, e.Err)
}

func (e *DataError) Unwrap() error { return e.Err }

// ConfigError reports an unrecognized division label together with the
// value that was used instead.
type ConfigError struct {
	Label    string
	Fallback string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%v %q, using %s", ErrUnknownDivision, e.Label, e.Fallback)
}

func (e *ConfigError) Unwrap() error { return ErrUnknownDivision }

type ErrorClass uint8

const (
	NoErrorClass ErrorClass = iota
	DataErrorClass
	ViewStateErrorClass
	ConfigErrorClass
	UnknownErrorClass
)

func (c ErrorClass) String() string {
	switch c {
	case NoErrorClass:
		return "none"
	case DataErrorClass:
		return "data error"
	case ViewStateErrorClass:
		return "view error"
	case ConfigErrorClass:
		return "config error"
	default:
		return "error"
	}
}

// ClassOf sorts an error into the taxonomy used to decide how it is shown:
// data errors block with a notification, view errors replace the plot with a
// placeholder, config errors are logged after falling back.
func ClassOf(err error) ErrorClass {
	switch {
	case err == nil:
		return NoErrorClass
	case errors.Is(err, ErrEmptyData),
		errors.Is(err, ErrInsufficientColumns),
		errors.Is(err, ErrMalformedRow):
		return DataErrorClass
	case errors.Is(err, ErrInsufficientVisibleData), errors.Is(err, ErrNoData):
		return ViewStateErrorClass
	case errors.Is(err, ErrUnknownDivision):
		return ConfigErrorClass
	default:
		return UnknownErrorClass
	}
}
