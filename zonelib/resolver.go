package zonelib

import (
	"fmt"
	"math"

	"github.com/9seconds/zonographer/geometry"
	"github.com/paulmach/orb"
)

// Resolve classifies a point into zero or one zone.
//
// First, it collects zones which convex hulls contain the point. Then it
// keeps only those where any precise polygon contains the point. If there
// is exactly one such zone, this is an exact hit.
//
// Otherwise (nothing is found or polygons overlap) it looks for the
// nearest boundary line. If some zones passed the precise filter, only
// they are considered; otherwise all zones of the index are. If the
// nearest boundary is closer than maxFallbackDistance (kilometers), its
// zone is returned. On ties the first zone in pool order wins.
//
// This function has no state and does not modify index so it is safe to
// call it concurrently.
func Resolve(p orb.Point, index *ZoneIndex, maxFallbackDistance float64) (ResolveResult, error) {
	rv := ResolveResult{
		Point:  p,
		Method: MethodNone,
	}

	if err := geometry.ValidatePoint(p); err != nil {
		return rv, err
	}

	candidates, err := index.hullCandidates(p)
	if err != nil {
		return rv, fmt.Errorf("cannot filter by hulls: %w", err)
	}

	refined := make([]ZoneID, 0, len(candidates))

	for _, zone := range candidates {
		inside, err := index.inPolygons(p, zone)
		if err != nil {
			return rv, fmt.Errorf("cannot filter by polygons: %w", err)
		}

		if inside {
			refined = append(refined, zone)
		}
	}

	if len(refined) == 1 {
		rv.Zone = refined[0]
		rv.Method = MethodExact

		return rv, nil
	}

	pool := refined
	if len(pool) == 0 {
		pool = index.Zones()
	}

	zone, distance, err := nearestZone(p, index, pool)
	if err != nil {
		return rv, fmt.Errorf("cannot find the nearest zone: %w", err)
	}

	if zone != "" && distance < maxFallbackDistance {
		rv.Zone = zone
		rv.Method = MethodFallback
		rv.Distance = distance
	}

	return rv, nil
}

func nearestZone(p orb.Point, index *ZoneIndex, pool []ZoneID) (ZoneID, float64, error) {
	var nearest ZoneID

	minDistance := math.Inf(1)

	for _, zone := range pool {
		for i, line := range index.Lines(zone) {
			distance, err := geometry.PointToLineDistance(p, line)
			if err != nil {
				return "", 0, fmt.Errorf("incorrect line %d of zone %s: %w", i, zone, err)
			}

			if distance < minDistance {
				nearest = zone
				minDistance = distance
			}
		}
	}

	return nearest, minDistance, nil
}
