package geometry

import (
	"fmt"
	"strings"
)

// EarthRadius is a mean Earth radius in metres.
const EarthRadius = 6371008.8

// Unit is a name of the length unit which is used to convert central
// angles to distances.
type Unit string

const (
	Kilometers Unit = "kilometers"
	Metres     Unit = "metres"
	Degrees    Unit = "degrees"
)

var unitFactors = map[Unit]float64{
	Kilometers: EarthRadius / 1000,
	Metres:     EarthRadius,
	Degrees:    EarthRadius / 111325,
}

// Factor returns a multiplier which converts radians to this unit.
func (u Unit) Factor() (float64, error) {
	factor, ok := unitFactors[u]
	if !ok {
		return 0, fmt.Errorf("%s units is invalid: %w", string(u), ErrInvalidUnit)
	}

	return factor, nil
}

func (u Unit) String() string {
	return string(u)
}

// ParseUnit converts a unit name into Unit. Names are case-insensitive.
func ParseUnit(name string) (Unit, error) {
	unit := Unit(strings.ToLower(strings.TrimSpace(name)))

	if _, err := unit.Factor(); err != nil {
		return "", err
	}

	return unit, nil
}
