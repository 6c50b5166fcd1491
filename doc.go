// Zonographer is a service to resolve geographical points into zones:
// countries, regions, districts or whatever a dataset describes.
//
// Idea is simple: you have a point like (13.40, 52.52) and want to know
// which zone it belongs to. Zones are described by a dataset with 3
// layers: rough convex hulls, precise polygons and boundary lines. If
// a point is outside of every polygon (coastline, gaps between
// polygons) it is snapped to the zone with the nearest boundary, but
// only if this boundary is close enough.
//
// Tool itself is organized into 3 logical parts:
//
// # Geometry
//
// geometry package has spherical distances, point-in-polygon and
// point-to-line distance calculations. These are pure functions.
//
// # Zonelib
//
// zonelib is a main package of the application. It has ZoneIndex,
// Resolve function and Zonographer struct which loads a dataset once,
// caches results and can act as http.Handler.
//
// # Zonographer
//
// A main package itself is an example of how to wire zonelib. Resulting
// binary either starts http server or annotates CSV files with zones.
package main
