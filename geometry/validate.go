package geometry

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
)

const (
	minRingSize       = 3
	minLineStringSize = 2
)

func ValidatePoint(p orb.Point) error {
	for _, v := range p {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%v is not a pair of finite numbers: %w", p, ErrInvalidCoordinate)
		}
	}

	return nil
}

func ValidateRing(ring orb.Ring) error {
	if len(ring) < minRingSize {
		return fmt.Errorf("ring has %d points, at least %d are required: %w",
			len(ring), minRingSize, ErrInvalidGeometry)
	}

	for _, v := range ring {
		if err := ValidatePoint(v); err != nil {
			return err
		}
	}

	return nil
}

func ValidatePolygon(polygon orb.Polygon) error {
	if len(polygon) == 0 {
		return fmt.Errorf("polygon has no rings: %w", ErrInvalidGeometry)
	}

	for i, ring := range polygon {
		if err := ValidateRing(ring); err != nil {
			return fmt.Errorf("incorrect ring %d: %w", i, err)
		}
	}

	return nil
}

func ValidateLineString(line orb.LineString) error {
	if len(line) < minLineStringSize {
		return fmt.Errorf("linestring has %d points, at least %d are required: %w",
			len(line), minLineStringSize, ErrInvalidGeometry)
	}

	for _, v := range line {
		if err := ValidatePoint(v); err != nil {
			return err
		}
	}

	return nil
}
