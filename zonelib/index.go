package zonelib

import (
	"fmt"
	"sort"
	"time"

	"github.com/9seconds/zonographer/geometry"
	"github.com/dhconnelly/rtreego"
	"github.com/paulmach/orb"
)

const (
	hullTreeMinChildren = 25
	hullTreeMaxChildren = 50

	// hullBoundPadding expands bounding boxes of hulls and query points.
	// rtreego does not count touching rectangles as intersecting but
	// a ray-casting test may accept points which lie exactly on the
	// bounding box.
	hullBoundPadding = 1e-7
)

type hullEntry struct {
	ordinal int
	rect    rtreego.Rect
}

func (h hullEntry) Bounds() rtreego.Rect {
	return h.rect
}

// ZoneIndex is an immutable in-memory representation of the dataset.
// Once created, it is never modified so it is safe to use it from many
// goroutines without any synchronization.
type ZoneIndex struct {
	hulls          []Hull
	hullTree       *rtreego.Rtree
	zoneToPolygons map[ZoneID][]orb.Polygon
	zoneToLines    map[ZoneID][]orb.LineString
	zones          []ZoneID
	checksum       string
	builtAt        time.Time
	loadDuration   time.Duration
}

// Hulls returns all convex hulls in dataset order. Callers must not
// modify the returned slice.
func (z *ZoneIndex) Hulls() []Hull {
	return z.hulls
}

func (z *ZoneIndex) Polygons(zone ZoneID) []orb.Polygon {
	return z.zoneToPolygons[zone]
}

func (z *ZoneIndex) Lines(zone ZoneID) []orb.LineString {
	return z.zoneToLines[zone]
}

// Zones returns all zones which have boundary lines, in dataset order.
// This is a pool of candidates for the nearest boundary search if no
// hull and polygon contain the point.
func (z *ZoneIndex) Zones() []ZoneID {
	return z.zones
}

// Checksum is a hex-encoded sha256 of the dataset bytes. It is empty
// if index was built from Dataset directly.
func (z *ZoneIndex) Checksum() string {
	return z.checksum
}

func (z *ZoneIndex) BuiltAt() time.Time {
	return z.builtAt
}

// LoadDuration is a time spent to read, decode and index a dataset. It
// is zero if index was built from Dataset directly.
func (z *ZoneIndex) LoadDuration() time.Duration {
	return z.loadDuration
}

// hullCandidates returns zones which hulls contain the point. Zones are
// unique and go in order of their first hull.
func (z *ZoneIndex) hullCandidates(p orb.Point) ([]ZoneID, error) {
	found := z.hullTree.SearchIntersect(rtreego.Point{p.Lon(), p.Lat()}.ToRect(hullBoundPadding))
	if len(found) == 0 {
		return nil, nil
	}

	ordinals := make([]int, 0, len(found))

	for _, v := range found {
		ordinals = append(ordinals, v.(hullEntry).ordinal)
	}

	sort.Ints(ordinals)

	seen := map[ZoneID]bool{}
	rv := []ZoneID{}

	for _, ordinal := range ordinals {
		hull := z.hulls[ordinal]

		if seen[hull.Zone] {
			continue
		}

		inside, err := geometry.PointInPolygon(p, hull.Polygon)
		if err != nil {
			return nil, fmt.Errorf("cannot check hull %d of zone %s: %w", ordinal, hull.Zone, err)
		}

		if inside {
			seen[hull.Zone] = true
			rv = append(rv, hull.Zone)
		}
	}

	return rv, nil
}

// inPolygons checks if any precise polygon of the zone contains the
// point.
func (z *ZoneIndex) inPolygons(p orb.Point, zone ZoneID) (bool, error) {
	for i, polygon := range z.zoneToPolygons[zone] {
		inside, err := geometry.PointInPolygon(p, polygon)
		if err != nil {
			return false, fmt.Errorf("cannot check polygon %d of zone %s: %w", i, zone, err)
		}

		if inside {
			return true, nil
		}
	}

	return false, nil
}

// NewZoneIndex validates a dataset and builds an index from it.
func NewZoneIndex(dataset *Dataset) (*ZoneIndex, error) {
	rv := &ZoneIndex{
		hulls:          make([]Hull, 0, len(dataset.Hulls)),
		zoneToPolygons: make(map[ZoneID][]orb.Polygon, len(dataset.Polygons)),
		zoneToLines:    make(map[ZoneID][]orb.LineString, len(dataset.Lines)),
		zones:          make([]ZoneID, 0, len(dataset.Lines)),
		builtAt:        time.Now(),
	}

	entries := make([]rtreego.Spatial, 0, len(dataset.Hulls))

	for i, v := range dataset.Hulls {
		if v.Zone == "" {
			return nil, fmt.Errorf("hull %d has no zone: %w", i, geometry.ErrInvalidGeometry)
		}

		if err := geometry.ValidatePolygon(v.Polygon); err != nil {
			return nil, fmt.Errorf("incorrect hull %d of zone %s: %w", i, v.Zone, err)
		}

		rect, err := makeHullRect(polygonBound(v.Polygon))
		if err != nil {
			return nil, fmt.Errorf("cannot build bounds of hull %d of zone %s: %w", i, v.Zone, err)
		}

		rv.hulls = append(rv.hulls, v)
		entries = append(entries, hullEntry{ordinal: i, rect: rect})
	}

	for _, v := range dataset.Polygons {
		if _, ok := rv.zoneToPolygons[v.Zone]; ok {
			return nil, fmt.Errorf("polygons of zone %s are duplicated: %w", v.Zone, geometry.ErrInvalidGeometry)
		}

		for i, polygon := range v.Polygons {
			if err := geometry.ValidatePolygon(polygon); err != nil {
				return nil, fmt.Errorf("incorrect polygon %d of zone %s: %w", i, v.Zone, err)
			}
		}

		rv.zoneToPolygons[v.Zone] = v.Polygons
	}

	for _, v := range dataset.Lines {
		if _, ok := rv.zoneToLines[v.Zone]; ok {
			return nil, fmt.Errorf("lines of zone %s are duplicated: %w", v.Zone, geometry.ErrInvalidGeometry)
		}

		for i, line := range v.Lines {
			if err := geometry.ValidateLineString(line); err != nil {
				return nil, fmt.Errorf("incorrect line %d of zone %s: %w", i, v.Zone, err)
			}
		}

		rv.zoneToLines[v.Zone] = v.Lines
		rv.zones = append(rv.zones, v.Zone)
	}

	rv.hullTree = rtreego.NewTree(2, hullTreeMinChildren, hullTreeMaxChildren, entries...)

	return rv, nil
}

func makeHullRect(bound orb.Bound) (rtreego.Rect, error) {
	return rtreego.NewRect(
		rtreego.Point{bound.Min.Lon() - hullBoundPadding, bound.Min.Lat() - hullBoundPadding},
		[]float64{
			bound.Max.Lon() - bound.Min.Lon() + 2*hullBoundPadding,
			bound.Max.Lat() - bound.Min.Lat() + 2*hullBoundPadding,
		})
}

// polygonBound covers all rings, not only the outer one: with even-odd
// rule a ring which lies outside of the outer one still adds area.
func polygonBound(polygon orb.Polygon) orb.Bound {
	rv := polygon[0].Bound()

	for _, ring := range polygon[1:] {
		rv = rv.Union(ring.Bound())
	}

	return rv
}
