package zone

import (
	"encoding/json"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
)

// GeoJSON renders the catalog as a FeatureCollection of zone center points.
// The circular extent is carried in the radius_km property; consumers draw
// the circle themselves.
func (c *Catalog) GeoJSON() ([]byte, error) {
	fc := &geojson.FeatureCollection{}
	for _, z := range c.zones {
		pt := geom.NewPointFlat(geom.XY, []float64{z.Center.Longitude, z.Center.Latitude}).SetSRID(4326)
		fc.Features = append(fc.Features, &geojson.Feature{
			Geometry: pt,
			Properties: map[string]any{
				"name":        z.Name,
				"radius_km":   z.RadiusKm,
				"description": z.Description,
			},
		})
	}

	data, err := json.Marshal(fc)
	if err != nil {
		return nil, eris.Wrap(err, "zone: encode geojson")
	}
	return data, nil
}
