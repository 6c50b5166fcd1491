package geometry

import "errors"

var (
	// ErrInvalidCoordinate is returned if point has non-finite
	// components or was built from something which is not a pair of
	// numbers.
	ErrInvalidCoordinate = errors.New("invalid coordinate")

	// ErrInvalidGeometry is returned for rings with less than 3 points,
	// empty polygons and linestrings with less than 2 points.
	ErrInvalidGeometry = errors.New("invalid geometry")

	// ErrInvalidUnit is returned if distance unit is unknown.
	ErrInvalidUnit = errors.New("invalid unit")
)
