// This package provides a set of structs and functions which are used
// to resolve geographic points into named zones.
//
// zonelib is core of the zonographer project. You can treat the rest of
// the application as an _example_ on how to use this library: how to
// load a dataset, how to pass parameters from HTTP requests or CSV files,
// how to generate responses.
//
// ZoneIndex is an immutable in-memory representation of the dataset:
// convex hulls of each zone, precise polygons and boundary linestrings.
// It is built once and never changed after that, so it can be shared
// between any number of goroutines without locks.
//
// Resolve is a pure function which classifies a single point against
// ZoneIndex. It goes in 3 stages: cheap filter by convex hulls, precise
// filter by polygons and, if there is no single exact hit, a search of
// the nearest zone boundary within a configured distance.
//
// IndexLoader is responsible for building ZoneIndex at most once per
// process. Concurrent callers wait for the same build.
//
// Zonographer is a main entity of the zonelib. It glues loader, resolver,
// worker pool and cache together, tracks usage statistics and can act as
// http.Handler.
package zonelib
