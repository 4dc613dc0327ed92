package insights

import (
	"github.com/Temutjin2k/ride-hail-insights/internal/domain/models"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Locations renders the rows that carry coordinates as GeoJSON points.
// The collection gets a bounding box when it is not empty.
func Locations(trips []models.Trip) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	points := make(orb.MultiPoint, 0, len(trips))

	for _, t := range Located(trips) {
		p := orb.Point{t.Location.Longitude, t.Location.Latitude}
		points = append(points, p)

		f := geojson.NewFeature(p)
		f.Properties["city"] = t.City
		f.Properties["region"] = t.Region
		f.Properties["driver_id"] = t.DriverID
		f.Properties["category"] = t.Outcome.String()
		f.Properties["hour"] = t.Hour
		f.Properties["distance_km"] = t.Distance
		fc.Append(f)
	}

	if len(points) > 0 {
		fc.BBox = geojson.NewBBox(points.Bound())
	}
	return fc
}
