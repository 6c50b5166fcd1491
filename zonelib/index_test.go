package zonelib_test

import (
	"math"
	"testing"

	"github.com/9seconds/zonographer/geometry"
	"github.com/9seconds/zonographer/zonelib"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/suite"
)

type ZoneIndexTestSuite struct {
	suite.Suite

	dataset *zonelib.Dataset
}

func (suite *ZoneIndexTestSuite) SetupTest() {
	suite.dataset = &zonelib.Dataset{
		Hulls: []zonelib.Hull{
			{Zone: "A", Polygon: testSquare(0, 0, 10, 10)},
			{Zone: "B", Polygon: testSquare(20, 20, 30, 30)},
		},
		Polygons: []zonelib.ZonePolygons{
			{Zone: "A", Polygons: []orb.Polygon{testSquare(1, 1, 9, 9)}},
			{Zone: "B", Polygons: []orb.Polygon{testSquare(21, 21, 29, 29)}},
		},
		Lines: []zonelib.ZoneLines{
			{Zone: "B", Lines: []orb.LineString{{{21, 21}, {29, 21}}}},
			{Zone: "A", Lines: []orb.LineString{{{1, 1}, {9, 1}}}},
		},
	}
}

func (suite *ZoneIndexTestSuite) TestAccessors() {
	index, err := zonelib.NewZoneIndex(suite.dataset)
	suite.Require().NoError(err)

	suite.Len(index.Hulls(), 2)
	suite.Equal([]zonelib.ZoneID{"B", "A"}, index.Zones())
	suite.Len(index.Polygons("A"), 1)
	suite.Len(index.Lines("B"), 1)
	suite.Nil(index.Polygons("unknown"))
	suite.Nil(index.Lines("unknown"))
	suite.Empty(index.Checksum())
	suite.False(index.BuiltAt().IsZero())
}

func (suite *ZoneIndexTestSuite) TestHullOnBoundingBoxEdge() {
	index, err := zonelib.NewZoneIndex(&zonelib.Dataset{
		Hulls: []zonelib.Hull{
			{Zone: "A", Polygon: testSquare(0, 0, 10, 10)},
		},
		Polygons: []zonelib.ZonePolygons{
			{Zone: "A", Polygons: []orb.Polygon{testSquare(0, 0, 10, 10)}},
		},
	})
	suite.Require().NoError(err)

	// ray casting counts a left edge as inside
	result, err := zonelib.Resolve(orb.Point{0, 5}, index, 0)

	suite.NoError(err)
	suite.Equal(zonelib.ZoneID("A"), result.Zone)
	suite.Equal(zonelib.MethodExact, result.Method)
}

func (suite *ZoneIndexTestSuite) TestRingOutsideOfOuterOne() {
	polygon := orb.Polygon{
		testSquare(0, 0, 10, 10)[0],
		testSquare(20, 20, 30, 30)[0],
	}

	index, err := zonelib.NewZoneIndex(&zonelib.Dataset{
		Hulls: []zonelib.Hull{
			{Zone: "A", Polygon: polygon},
		},
		Polygons: []zonelib.ZonePolygons{
			{Zone: "A", Polygons: []orb.Polygon{polygon}},
		},
	})
	suite.Require().NoError(err)

	result, err := zonelib.Resolve(orb.Point{25, 25}, index, 0)

	suite.NoError(err)
	suite.Equal(zonelib.ZoneID("A"), result.Zone)
}

func (suite *ZoneIndexTestSuite) TestManyHulls() {
	dataset := &zonelib.Dataset{}

	for i := 0; i < 100; i++ {
		zone := zonelib.ZoneID(string(rune('a'+i%26)) + string(rune('a'+i/26)))
		square := testSquare(float64(i), 0, float64(i)+0.5, 1)

		dataset.Hulls = append(dataset.Hulls, zonelib.Hull{Zone: zone, Polygon: square})
		dataset.Polygons = append(dataset.Polygons, zonelib.ZonePolygons{
			Zone:     zone,
			Polygons: []orb.Polygon{square},
		})
	}

	index, err := zonelib.NewZoneIndex(dataset)
	suite.Require().NoError(err)

	for i, v := range dataset.Hulls {
		result, err := zonelib.Resolve(orb.Point{float64(i) + 0.25, 0.5}, index, 0)

		suite.NoError(err)
		suite.Equal(v.Zone, result.Zone)
	}
}

func (suite *ZoneIndexTestSuite) TestHullWithoutZone() {
	suite.dataset.Hulls[1].Zone = ""

	_, err := zonelib.NewZoneIndex(suite.dataset)

	suite.ErrorIs(err, geometry.ErrInvalidGeometry)
}

func (suite *ZoneIndexTestSuite) TestIncorrectHull() {
	suite.dataset.Hulls[0].Polygon = orb.Polygon{{{0, 0}, {1, 1}}}

	_, err := zonelib.NewZoneIndex(suite.dataset)

	suite.ErrorIs(err, geometry.ErrInvalidGeometry)
}

func (suite *ZoneIndexTestSuite) TestIncorrectPolygon() {
	suite.dataset.Polygons[0].Polygons[0][0][2] = orb.Point{math.NaN(), 1}

	_, err := zonelib.NewZoneIndex(suite.dataset)

	suite.ErrorIs(err, geometry.ErrInvalidCoordinate)
}

func (suite *ZoneIndexTestSuite) TestIncorrectLine() {
	suite.dataset.Lines[0].Lines[0] = orb.LineString{{0, 0}}

	_, err := zonelib.NewZoneIndex(suite.dataset)

	suite.ErrorIs(err, geometry.ErrInvalidGeometry)
}

func (suite *ZoneIndexTestSuite) TestDuplicatedZones() {
	suite.dataset.Polygons = append(suite.dataset.Polygons, suite.dataset.Polygons[0])

	_, err := zonelib.NewZoneIndex(suite.dataset)
	suite.ErrorIs(err, geometry.ErrInvalidGeometry)

	suite.SetupTest()
	suite.dataset.Lines = append(suite.dataset.Lines, suite.dataset.Lines[0])

	_, err = zonelib.NewZoneIndex(suite.dataset)
	suite.ErrorIs(err, geometry.ErrInvalidGeometry)
}

func TestZoneIndex(t *testing.T) {
	suite.Run(t, &ZoneIndexTestSuite{})
}
