package geometry

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
)

// PointToSegmentDistance returns a distance in kilometers between point
// and a segment [a, b].
//
// Closest point is found by projection in lon/lat coordinates, then
// geodesic distance to it is calculated.
func PointToSegmentDistance(p, a, b orb.Point) float64 {
	v := orb.Point{b[0] - a[0], b[1] - a[1]}
	w := orb.Point{p[0] - a[0], p[1] - a[1]}

	c1 := dot(w, v)
	if c1 <= 0 {
		return distanceKm(p, a)
	}

	c2 := dot(v, v)
	if c2 <= c1 {
		return distanceKm(p, b)
	}

	t := c1 / c2

	return distanceKm(p, orb.Point{a[0] + t*v[0], a[1] + t*v[1]})
}

// PointToLineDistance returns a minimal distance in kilometers from the
// point to any segment of the linestring.
func PointToLineDistance(p orb.Point, line orb.LineString) (float64, error) {
	if len(line) < minLineStringSize {
		return 0, fmt.Errorf("linestring has %d points, at least %d are required: %w",
			len(line), minLineStringSize, ErrInvalidGeometry)
	}

	minDistance := math.Inf(1)

	for i := 0; i < len(line)-1; i++ {
		if d := PointToSegmentDistance(p, line[i], line[i+1]); d < minDistance {
			minDistance = d
		}
	}

	return minDistance, nil
}

func dot(u, v orb.Point) float64 {
	return u[0]*v[0] + u[1]*v[1]
}
