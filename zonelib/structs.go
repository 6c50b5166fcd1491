package zonelib

import (
	"github.com/paulmach/orb"
)

// ZoneID is an opaque zone identifier. It is unique within a single
// ZoneIndex.
type ZoneID string

// ResolveMethod tells how zone was chosen.
type ResolveMethod string

const (
	// MethodExact means that precise polygons of exactly one zone
	// contain a point.
	MethodExact ResolveMethod = "exact"

	// MethodFallback means that there was no single exact hit and the
	// nearest zone boundary is closer than a maximal fallback distance.
	MethodFallback ResolveMethod = "fallback"

	// MethodNone means that there is no match.
	MethodNone ResolveMethod = "none"
)

type ResolveResult struct {
	Point  orb.Point     `json:"point"`
	Zone   ZoneID        `json:"zone"`
	Method ResolveMethod `json:"method"`

	// Distance to the nearest boundary in kilometers. It is set only
	// for fallback hits.
	Distance float64 `json:"distance_km"`
}

func (r *ResolveResult) OK() bool {
	return r.Zone != ""
}

// Hull is a simplified convex approximation of the zone. A single zone
// may have several hulls.
type Hull struct {
	Zone    ZoneID
	Polygon orb.Polygon
}

type ZonePolygons struct {
	Zone     ZoneID
	Polygons []orb.Polygon
}

type ZoneLines struct {
	Zone  ZoneID
	Lines []orb.LineString
}

// Dataset is a decoded but not validated dataset. Order of elements is
// the same as in the source.
type Dataset struct {
	Hulls    []Hull
	Polygons []ZonePolygons
	Lines    []ZoneLines
}
