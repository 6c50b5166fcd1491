package zonelib

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"

	"github.com/9seconds/zonographer/geometry"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

const hullZoneProperty = "zoneName"

type rawDataset struct {
	ConvexHulls            []json.RawMessage `json:"convexhulls"`
	ZoneToGeometryFeatures orderedObject     `json:"zoneToGeometryFeatures"`
	ZoneToLines            orderedObject     `json:"zoneToLines"`
}

type orderedEntry struct {
	Key   string
	Value json.RawMessage
}

// orderedObject is a JSON object which keeps an order of its keys.
type orderedObject []orderedEntry

func (o *orderedObject) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}

	decoder := json.NewDecoder(bytes.NewReader(data))

	token, err := decoder.Token()
	if err != nil {
		return fmt.Errorf("cannot read object start: %w", err)
	}

	if delim, ok := token.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("object is expected, got %v", token)
	}

	rv := orderedObject{}

	for decoder.More() {
		token, err := decoder.Token()
		if err != nil {
			return fmt.Errorf("cannot read object key: %w", err)
		}

		key, _ := token.(string)
		value := json.RawMessage{}

		if err := decoder.Decode(&value); err != nil {
			return fmt.Errorf("cannot read value of %s: %w", key, err)
		}

		rv = append(rv, orderedEntry{Key: key, Value: value})
	}

	*o = rv

	return nil
}

// DecodeDataset parses a JSON dataset with 3 top-level fields:
//
//	convexhulls: a list of GeoJSON features, each has zoneName property.
//	zoneToGeometryFeatures: zone name -> list of polygons.
//	zoneToLines: zone name -> list of linestrings.
//
// Polygons and linestrings could be given either as GeoJSON features
// and geometries or as raw coordinate arrays. Multi-geometries are
// flattened.
func DecodeDataset(reader io.Reader) (*Dataset, error) {
	data, err := ioutil.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("cannot read dataset: %w", err)
	}

	raw := rawDataset{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("cannot parse dataset json: %w", err)
	}

	rv := &Dataset{
		Hulls:    make([]Hull, 0, len(raw.ConvexHulls)),
		Polygons: make([]ZonePolygons, 0, len(raw.ZoneToGeometryFeatures)),
		Lines:    make([]ZoneLines, 0, len(raw.ZoneToLines)),
	}

	for i, v := range raw.ConvexHulls {
		hulls, err := decodeHull(v)
		if err != nil {
			return nil, fmt.Errorf("incorrect convex hull %d: %w", i, err)
		}

		rv.Hulls = append(rv.Hulls, hulls...)
	}

	for _, entry := range raw.ZoneToGeometryFeatures {
		polygons, err := decodePolygons(entry.Value)
		if err != nil {
			return nil, fmt.Errorf("incorrect polygons of zone %s: %w", entry.Key, err)
		}

		rv.Polygons = append(rv.Polygons, ZonePolygons{
			Zone:     ZoneID(entry.Key),
			Polygons: polygons,
		})
	}

	for _, entry := range raw.ZoneToLines {
		lines, err := decodeLines(entry.Value)
		if err != nil {
			return nil, fmt.Errorf("incorrect lines of zone %s: %w", entry.Key, err)
		}

		rv.Lines = append(rv.Lines, ZoneLines{
			Zone:  ZoneID(entry.Key),
			Lines: lines,
		})
	}

	return rv, nil
}

func decodeHull(data json.RawMessage) ([]Hull, error) {
	feature, err := geojson.UnmarshalFeature(data)
	if err != nil {
		return nil, fmt.Errorf("cannot parse feature: %w", err)
	}

	zone := feature.Properties.MustString(hullZoneProperty, "")
	if zone == "" {
		return nil, fmt.Errorf("feature has no %s property: %w", hullZoneProperty, geometry.ErrInvalidGeometry)
	}

	polygons, err := flattenPolygons(feature.Geometry)
	if err != nil {
		return nil, err
	}

	rv := make([]Hull, 0, len(polygons))

	for _, v := range polygons {
		rv = append(rv, Hull{Zone: ZoneID(zone), Polygon: v})
	}

	return rv, nil
}

func decodePolygons(data json.RawMessage) ([]orb.Polygon, error) {
	items := []json.RawMessage{}
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("list of polygons is expected: %w", err)
	}

	rv := make([]orb.Polygon, 0, len(items))

	for i, item := range items {
		if isJSONArray(item) {
			rings := [][][]float64{}
			if err := json.Unmarshal(item, &rings); err != nil {
				return nil, fmt.Errorf("cannot parse polygon %d: %w", i, err)
			}

			polygon, err := makePolygon(rings)
			if err != nil {
				return nil, fmt.Errorf("incorrect polygon %d: %w", i, err)
			}

			rv = append(rv, polygon)

			continue
		}

		geom, err := decodeGeoJSON(item)
		if err != nil {
			return nil, fmt.Errorf("cannot parse polygon %d: %w", i, err)
		}

		polygons, err := flattenPolygons(geom)
		if err != nil {
			return nil, fmt.Errorf("incorrect polygon %d: %w", i, err)
		}

		rv = append(rv, polygons...)
	}

	return rv, nil
}

func decodeLines(data json.RawMessage) ([]orb.LineString, error) {
	items := []json.RawMessage{}
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("list of lines is expected: %w", err)
	}

	rv := make([]orb.LineString, 0, len(items))

	for i, item := range items {
		if isJSONArray(item) {
			coords := [][]float64{}
			if err := json.Unmarshal(item, &coords); err != nil {
				return nil, fmt.Errorf("cannot parse line %d: %w", i, err)
			}

			line, err := makeLineString(coords)
			if err != nil {
				return nil, fmt.Errorf("incorrect line %d: %w", i, err)
			}

			rv = append(rv, line)

			continue
		}

		geom, err := decodeGeoJSON(item)
		if err != nil {
			return nil, fmt.Errorf("cannot parse line %d: %w", i, err)
		}

		switch value := geom.(type) {
		case orb.LineString:
			rv = append(rv, value)
		case orb.MultiLineString:
			rv = append(rv, value...)
		default:
			return nil, fmt.Errorf("line %d has unsupported geometry %T: %w", i, geom, geometry.ErrInvalidGeometry)
		}
	}

	return rv, nil
}

func decodeGeoJSON(data json.RawMessage) (orb.Geometry, error) {
	header := struct {
		Type string `json:"type"`
	}{}

	if err := json.Unmarshal(data, &header); err != nil {
		return nil, fmt.Errorf("geojson object is expected: %w", err)
	}

	if header.Type == "Feature" {
		feature, err := geojson.UnmarshalFeature(data)
		if err != nil {
			return nil, fmt.Errorf("cannot parse feature: %w", err)
		}

		return feature.Geometry, nil
	}

	geom, err := geojson.UnmarshalGeometry(data)
	if err != nil {
		return nil, fmt.Errorf("cannot parse geometry: %w", err)
	}

	return geom.Geometry(), nil
}

func flattenPolygons(geom orb.Geometry) ([]orb.Polygon, error) {
	switch value := geom.(type) {
	case orb.Polygon:
		return []orb.Polygon{value}, nil
	case orb.MultiPolygon:
		return []orb.Polygon(value), nil
	}

	return nil, fmt.Errorf("unsupported geometry %T: %w", geom, geometry.ErrInvalidGeometry)
}

func makePolygon(rings [][][]float64) (orb.Polygon, error) {
	rv := make(orb.Polygon, 0, len(rings))

	for _, ring := range rings {
		line, err := makeLineString(ring)
		if err != nil {
			return nil, err
		}

		rv = append(rv, orb.Ring(line))
	}

	return rv, nil
}

func makeLineString(coords [][]float64) (orb.LineString, error) {
	rv := make(orb.LineString, 0, len(coords))

	for _, v := range coords {
		if len(v) < 2 {
			return nil, fmt.Errorf("%v is not a [lon, lat] pair: %w", v, geometry.ErrInvalidCoordinate)
		}

		rv = append(rv, orb.Point{v[0], v[1]})
	}

	return rv, nil
}

func isJSONArray(data json.RawMessage) bool {
	trimmed := bytes.TrimSpace(data)

	return len(trimmed) > 0 && trimmed[0] == '['
}
