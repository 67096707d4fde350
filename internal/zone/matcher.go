package zone

import (
	"math"

	"github.com/meridian-legal/pfas-intake/internal/model"
)

const earthRadiusKm = 6371.0

// Distance returns the great-circle distance between two coordinates in
// kilometers, computed with the Haversine formula.
func Distance(a, b model.Coordinate) float64 {
	dLat := radians(b.Latitude - a.Latitude)
	dLon := radians(b.Longitude - a.Longitude)
	lat1 := radians(a.Latitude)
	lat2 := radians(b.Latitude)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return earthRadiusKm * c
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }

// Match is a positive zone-matching result.
type Match struct {
	Zone       model.ContaminationZone
	DistanceKm float64
}

// Matcher tests coordinates against a catalog.
type Matcher struct {
	catalog *Catalog
}

// NewMatcher creates a Matcher over the given catalog.
func NewMatcher(catalog *Catalog) *Matcher {
	return &Matcher{catalog: catalog}
}

// Match returns the first zone, in catalog declaration order, whose center is
// within its radius of c. Remaining zones are not evaluated once a match is
// found; with overlapping zones, declaration order decides which is reported.
// Match never fails for finite input: out-of-range coordinates simply match
// no zone.
func (m *Matcher) Match(c model.Coordinate) (Match, bool) {
	for _, z := range m.catalog.zones {
		d := Distance(c, z.Center)
		if d <= z.RadiusKm {
			return Match{Zone: z, DistanceKm: d}, true
		}
	}
	return Match{}, false
}
