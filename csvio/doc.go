// Package csvio reads points from CSV files and writes them back
// annotated with resolved zones.
//
// The first row of input is a header. Each following row starts with
// longitude and latitude, other columns are kept as is:
//
//	lon,lat,name
//	13.40,52.52,Berlin
//
// Output has one more column, zone:
//
//	lon,lat,name,zone
//	13.40,52.52,Berlin,DE-BE
package csvio
