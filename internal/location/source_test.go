package location

import (
	"context"
	"testing"
	"time"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridian-legal/pfas-intake/internal/model"
)

func TestStatic(t *testing.T) {
	src := Static{Coord: model.Coordinate{Latitude: 34.6857, Longitude: -77.3457}, Set: true}

	c, err := src.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 34.6857, c.Latitude)
}

func TestStatic_Unset(t *testing.T) {
	_, err := Static{}.Current(context.Background())
	assert.True(t, eris.Is(err, ErrUnavailable))
}

func TestStatic_InvalidCoordinate(t *testing.T) {
	src := Static{Coord: model.Coordinate{Latitude: 91}, Set: true}
	_, err := src.Current(context.Background())
	assert.Error(t, err)
	assert.False(t, eris.Is(err, ErrUnavailable))
}

func TestDenied(t *testing.T) {
	_, err := Denied{}.Current(context.Background())
	assert.True(t, eris.Is(err, ErrPermissionDenied))

	// The timeout decorator passes the refusal through unchanged.
	_, err = WithTimeout(Denied{}, time.Second).Current(context.Background())
	assert.True(t, eris.Is(err, ErrPermissionDenied))
}

// slowSource blocks until its context expires.
type slowSource struct{}

func (slowSource) Current(ctx context.Context) (model.Coordinate, error) {
	<-ctx.Done()
	return model.Coordinate{}, ctx.Err()
}

func TestWithTimeout_Expires(t *testing.T) {
	src := WithTimeout(slowSource{}, 10*time.Millisecond)

	_, err := src.Current(context.Background())
	assert.True(t, eris.Is(err, ErrTimeout))
}

func TestWithTimeout_PassesThrough(t *testing.T) {
	inner := Static{Coord: model.Coordinate{Latitude: 40, Longitude: -75}, Set: true}
	src := WithTimeout(inner, time.Second)

	c, err := src.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 40.0, c.Latitude)

	// Errors from the wrapped source are not rewritten.
	src = WithTimeout(Static{}, time.Second)
	_, err = src.Current(context.Background())
	assert.True(t, eris.Is(err, ErrUnavailable))
}

func TestWithTimeout_DefaultDuration(t *testing.T) {
	inner := Static{Coord: model.Coordinate{Latitude: 40, Longitude: -75}, Set: true}
	src := WithTimeout(inner, 0)

	_, err := src.Current(context.Background())
	assert.NoError(t, err)
}
