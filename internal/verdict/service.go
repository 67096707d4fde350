// Package verdict composes the zone matcher with a best-effort place lookup
// to produce the contamination verdict shown to visitors.
package verdict

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/meridian-legal/pfas-intake/internal/model"
	"github.com/meridian-legal/pfas-intake/internal/zone"
	"github.com/meridian-legal/pfas-intake/pkg/places"
)

const (
	unknownLocation = "Unknown location"

	notContaminatedMsg = "Your location is not identified as a known PFAS contamination zone. " +
		"Please provide additional information about your potential exposure."

	lookupFailedDiag = "Could not retrieve detailed location information"
)

// Lookup resolves a coordinate to a place label. *places.Client satisfies it.
type Lookup interface {
	Lookup(ctx context.Context, lat, lng float64) (*places.Place, error)
}

// Service produces verdicts for coordinates.
type Service struct {
	matcher *zone.Matcher
	lookup  Lookup
}

// NewService creates a Service. lookup may be nil, in which case unmatched
// coordinates are labeled "Unknown location" without a remote call.
func NewService(matcher *zone.Matcher, lookup Lookup) *Service {
	return &Service{matcher: matcher, lookup: lookup}
}

// Check matches a coordinate against the zone catalog and, when no zone
// matches, enriches the verdict with a place label. The lookup is fail-open:
// its failure never produces an erroring verdict, only a generic label plus a
// diagnostic in the Error field. Check always returns a usable verdict.
func (s *Service) Check(ctx context.Context, coord model.Coordinate) model.Verdict {
	if m, ok := s.matcher.Match(coord); ok {
		return model.Verdict{
			IsContaminated: true,
			ZoneName:       m.Zone.Name,
			Description:    m.Zone.Description,
			Message: fmt.Sprintf(
				"Your location has been identified as being within %s, a known PFAS contamination zone.",
				m.Zone.Name,
			),
		}
	}

	if s.lookup == nil {
		return model.Verdict{
			IsContaminated: false,
			LocationName:   unknownLocation,
			Message:        notContaminatedMsg,
		}
	}

	place, err := s.lookup.Lookup(ctx, coord.Latitude, coord.Longitude)
	if err != nil || place == nil || place.Label == "" {
		if err != nil {
			zap.L().Warn("verdict: place lookup failed, continuing without label",
				zap.Float64("lat", coord.Latitude),
				zap.Float64("lng", coord.Longitude),
				zap.Error(err),
			)
		}
		return model.Verdict{
			IsContaminated: false,
			LocationName:   unknownLocation,
			Message:        notContaminatedMsg,
			Error:          lookupFailedDiag,
		}
	}

	return model.Verdict{
		IsContaminated: false,
		LocationName:   place.Label,
		Message: fmt.Sprintf(
			"Your location (%s) is not identified as a known PFAS contamination zone. "+
				"Please provide additional information about your potential exposure.",
			place.Label,
		),
	}
}

// Fallback is the verdict used when the check itself cannot run (for example
// the device location could not be acquired). The wizard still proceeds.
func Fallback(err error) model.Verdict {
	v := model.Verdict{
		IsContaminated: false,
		Message: "Unable to determine if your location is in a contamination zone. " +
			"Please provide additional information.",
	}
	if err != nil {
		v.Error = err.Error()
	}
	return v
}
