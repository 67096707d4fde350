// Package location abstracts the device-coordinate capability so the verdict
// flow can run without a real positioning device.
package location

import (
	"context"
	"time"

	"github.com/rotisserie/eris"

	"github.com/meridian-legal/pfas-intake/internal/model"
)

// Acquisition failures are kept distinct so callers can message each case.
var (
	ErrPermissionDenied = eris.New("location: permission denied")
	ErrUnavailable      = eris.New("location: no positioning capability available")
	ErrTimeout          = eris.New("location: timed out acquiring coordinate")
)

// DefaultTimeout bounds a coordinate acquisition.
const DefaultTimeout = 10 * time.Second

// Source supplies the current coordinate. Implementations must not return a
// cached position.
type Source interface {
	Current(ctx context.Context) (model.Coordinate, error)
}

// Static is a Source with a fixed, pre-configured coordinate. Without a
// configured coordinate it reports ErrUnavailable.
type Static struct {
	Coord model.Coordinate
	Set   bool
}

// Current implements Source.
func (s Static) Current(_ context.Context) (model.Coordinate, error) {
	if !s.Set {
		return model.Coordinate{}, ErrUnavailable
	}
	if err := s.Coord.Validate(); err != nil {
		return model.Coordinate{}, eris.Wrap(err, "location: configured coordinate")
	}
	return s.Coord, nil
}

// Denied is a Source for a visitor who refused the location prompt. Every
// acquisition reports ErrPermissionDenied.
type Denied struct{}

// Current implements Source.
func (Denied) Current(_ context.Context) (model.Coordinate, error) {
	return model.Coordinate{}, ErrPermissionDenied
}

// timeoutSource bounds the wrapped source's acquisition time.
type timeoutSource struct {
	src Source
	d   time.Duration
}

// WithTimeout wraps src with a hard acquisition timeout (DefaultTimeout when
// d <= 0). Deadline expiry surfaces as ErrTimeout rather than hanging the
// caller indefinitely.
func WithTimeout(src Source, d time.Duration) Source {
	if d <= 0 {
		d = DefaultTimeout
	}
	return timeoutSource{src: src, d: d}
}

// Current implements Source.
func (t timeoutSource) Current(ctx context.Context) (model.Coordinate, error) {
	ctx, cancel := context.WithTimeout(ctx, t.d)
	defer cancel()

	type result struct {
		coord model.Coordinate
		err   error
	}
	ch := make(chan result, 1)
	go func() {
		c, err := t.src.Current(ctx)
		ch <- result{coord: c, err: err}
	}()

	select {
	case r := <-ch:
		if r.err != nil && eris.Is(r.err, context.DeadlineExceeded) {
			return model.Coordinate{}, ErrTimeout
		}
		return r.coord, r.err
	case <-ctx.Done():
		if eris.Is(ctx.Err(), context.DeadlineExceeded) {
			return model.Coordinate{}, ErrTimeout
		}
		return model.Coordinate{}, eris.Wrap(ctx.Err(), "location: acquisition canceled")
	}
}
