// Package geometry contains pure numeric primitives used to classify a
// point into a zone: great-circle distance, even-odd point in polygon test
// and point to segment / linestring distance.
//
// All functions work with github.com/paulmach/orb value types where
// a point is [longitude, latitude] in decimal degrees. Nothing here holds
// state so every function is safe to call concurrently.
//
// Please pay attention that distances to segments mix 2 metrics: a
// projection is done in a plain lon/lat space and a distance to the
// projected point is geodesic. This is fine for short boundary segments
// but is not valid for segments which span wide longitude ranges.
package geometry
