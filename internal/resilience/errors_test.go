package resilience

import (
	"syscall"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
)

func TestIsTransient(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"plain error", eris.New("bad input"), false},
		{"transient error", NewTransientError(eris.New("busy"), 503), true},
		{"wrapped transient", eris.Wrap(NewTransientError(eris.New("busy"), 429), "places: lookup"), true},
		{"connection refused", syscall.ECONNREFUSED, true},
		{"connection reset", syscall.ECONNRESET, true},
		{"reset message text", eris.New("read tcp: connection reset by peer"), true},
		{"dns message text", eris.New("dial tcp: lookup api.example.com: no such host"), true},
		{"io timeout text", eris.New("net/http: i/o timeout"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsTransient(tt.err))
		})
	}
}

func TestIsTransientHTTPStatus(t *testing.T) {
	for _, code := range []int{408, 429, 500, 502, 503, 504} {
		assert.True(t, IsTransientHTTPStatus(code), "status %d", code)
	}
	for _, code := range []int{200, 201, 301, 400, 401, 403, 404, 422} {
		assert.False(t, IsTransientHTTPStatus(code), "status %d", code)
	}
}

func TestTransientError_Unwrap(t *testing.T) {
	inner := eris.New("upstream busy")
	te := NewTransientError(inner, 503)

	assert.Equal(t, "upstream busy", te.Error())
	assert.True(t, eris.Is(te, inner))
	assert.Equal(t, 503, te.StatusCode)
}
