package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoordinateValidate(t *testing.T) {
	tests := []struct {
		name  string
		coord Coordinate
		ok    bool
	}{
		{"origin", Coordinate{0, 0}, true},
		{"camp lejeune", Coordinate{34.6857, -77.3457}, true},
		{"poles", Coordinate{90, 180}, true},
		{"antipodal bounds", Coordinate{-90, -180}, true},
		{"latitude too high", Coordinate{90.1, 0}, false},
		{"latitude too low", Coordinate{-90.1, 0}, false},
		{"longitude too high", Coordinate{0, 180.1}, false},
		{"longitude too low", Coordinate{0, -180.1}, false},
		{"nan latitude", Coordinate{math.NaN(), 0}, false},
		{"inf longitude", Coordinate{0, math.Inf(1)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.coord.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
