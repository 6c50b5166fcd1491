package geometry

import (
	"fmt"

	"github.com/paulmach/orb"
)

// PointInPolygon checks if point is inside of the polygon using even-odd
// rule.
//
// Each ring is tested independently and results are combined with XOR.
// So, if point is inside of the outer ring and inside of the hole, it is
// outside of the polygon.
//
// Points exactly on the boundary or on vertices are classified as the
// edge comparison falls out. There is no special handling for them.
func PointInPolygon(p orb.Point, polygon orb.Polygon) (bool, error) {
	if len(polygon) == 0 {
		return false, fmt.Errorf("polygon has no rings: %w", ErrInvalidGeometry)
	}

	inside := false

	for _, ring := range polygon {
		inRing, err := PointInRing(p, ring)
		if err != nil {
			return false, err
		}

		inside = inside != inRing
	}

	return inside, nil
}

// PointInRing is a ray-casting test for a single ring. Ring is treated as
// implicitly closed.
func PointInRing(p orb.Point, ring orb.Ring) (bool, error) {
	if len(ring) < minRingSize {
		return false, fmt.Errorf("ring has %d points, at least %d are required: %w",
			len(ring), minRingSize, ErrInvalidGeometry)
	}

	inside := false
	x, y := p.Lon(), p.Lat()

	for i, j := 0, len(ring)-1; i < len(ring); j, i = i, i+1 {
		xi, yi := ring[i].Lon(), ring[i].Lat()
		xj, yj := ring[j].Lon(), ring[j].Lat()

		if (yi > y) != (yj > y) && x < (xj-xi)*(y-yi)/(yj-yi)+xi {
			inside = !inside
		}
	}

	return inside, nil
}
