package geometry_test

import (
	"errors"
	"math"
	"testing"

	"github.com/9seconds/zonographer/geometry"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/suite"
)

type DistanceTestSuite struct {
	suite.Suite
}

func (suite *DistanceTestSuite) TestSamePoint() {
	points := []orb.Point{
		{0, 0},
		{37.6173, 55.7558},
		{-179.99, -89.5},
		{180, 90},
	}

	for _, p := range points {
		for _, unit := range []geometry.Unit{geometry.Kilometers, geometry.Metres, geometry.Degrees} {
			d, err := geometry.Distance(p, p, unit)

			suite.NoError(err)
			suite.Equal(0.0, d)
		}
	}
}

func (suite *DistanceTestSuite) TestSymmetry() {
	pairs := [][2]orb.Point{
		{{0, 0}, {10, 10}},
		{{37.6173, 55.7558}, {44.0020, 56.3287}},
		{{-73.9857, 40.7484}, {139.6917, 35.6895}},
		{{179.5, 0}, {-179.5, 0}},
	}

	for _, pair := range pairs {
		ab, err := geometry.Distance(pair[0], pair[1], geometry.Kilometers)
		suite.NoError(err)

		ba, err := geometry.Distance(pair[1], pair[0], geometry.Kilometers)
		suite.NoError(err)

		suite.InDelta(ab, ba, 1e-9)
		suite.Greater(ab, 0.0)
	}
}

func (suite *DistanceTestSuite) TestKnownDistance() {
	// Moscow -> Nizhny Novgorod
	d, err := geometry.Distance(orb.Point{37.6173, 55.7558}, orb.Point{44.0020, 56.3287}, geometry.Kilometers)

	suite.NoError(err)
	suite.InDelta(401, d, 5)
}

func (suite *DistanceTestSuite) TestUnits() {
	a := orb.Point{0, 0}
	b := orb.Point{1, 0}

	km, err := geometry.Distance(a, b, geometry.Kilometers)
	suite.NoError(err)

	m, err := geometry.Distance(a, b, geometry.Metres)
	suite.NoError(err)

	suite.InDelta(km*1000, m, 1e-6)
	suite.InDelta(111.195, km, 1e-3)
}

func (suite *DistanceTestSuite) TestDegreesHalfCircle() {
	d, err := geometry.Distance(orb.Point{0, 0}, orb.Point{180, 0}, geometry.Degrees)

	suite.NoError(err)
	suite.InDelta(geometry.EarthRadius/111325*math.Pi, d, 1e-9)
}

func (suite *DistanceTestSuite) TestUnknownUnit() {
	_, err := geometry.Distance(orb.Point{0, 0}, orb.Point{1, 1}, geometry.Unit("furlongs"))

	suite.True(errors.Is(err, geometry.ErrInvalidUnit))
}

func (suite *DistanceTestSuite) TestParseUnit() {
	unit, err := geometry.ParseUnit(" Kilometers ")

	suite.NoError(err)
	suite.Equal(geometry.Kilometers, unit)

	_, err = geometry.ParseUnit("miles")

	suite.True(errors.Is(err, geometry.ErrInvalidUnit))
}

func TestDistance(t *testing.T) {
	suite.Run(t, &DistanceTestSuite{})
}
