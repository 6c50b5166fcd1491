package geometry

import (
	"math"

	"github.com/paulmach/orb"
)

// Distance returns a great-circle distance between 2 points in given
// units. It uses haversine formula in its atan2 form.
//
// Identical points always give exactly 0.
func Distance(a, b orb.Point, unit Unit) (float64, error) {
	factor, err := unit.Factor()
	if err != nil {
		return 0, err
	}

	return centralAngle(a, b) * factor, nil
}

func distanceKm(a, b orb.Point) float64 {
	return centralAngle(a, b) * unitFactors[Kilometers]
}

func centralAngle(a, b orb.Point) float64 {
	dLat := degreesToRadians(b.Lat() - a.Lat())
	dLon := degreesToRadians(b.Lon() - a.Lon())
	lat1 := degreesToRadians(a.Lat())
	lat2 := degreesToRadians(b.Lat())

	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)
	h := sinLat*sinLat + sinLon*sinLon*(math.Cos(lat1)*math.Cos(lat2))

	return 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

func degreesToRadians(degrees float64) float64 {
	return math.Mod(degrees, 360) * math.Pi / 180
}
