package zonelib

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/9seconds/zonographer/geometry"
	"github.com/paulmach/orb"
)

type datasetInfo struct {
	Checksum string `json:"checksum"`
	BuiltAt  int64  `json:"built_at"`
	Hulls    int    `json:"hulls"`
	Zones    int    `json:"zones"`
}

func (h httpHandler) handleGetResolve(w http.ResponseWriter, req *http.Request) {
	point, err := h.parsePoint(req)
	if err != nil {
		h.sendError(w, err, "Incorrect coordinates", http.StatusBadRequest)

		return
	}

	resolved, err := h.zono.Resolve(req.Context(), point)
	if err != nil {
		h.sendError(w, err, "Cannot resolve a point", h.resolveErrorStatus(err))

		return
	}

	response := struct {
		Result ResolveResult `json:"result"`
	}{
		Result: resolved,
	}

	h.encodeJSON(w, http.StatusOK, response)
}

func (h httpHandler) handleGetStats(w http.ResponseWriter, req *http.Request) {
	response := struct {
		Stats   *UsageStats  `json:"stats"`
		Dataset *datasetInfo `json:"dataset"`
	}{
		Stats: h.zono.UsageStats(),
	}

	if index := h.zono.Index(); index != nil {
		response.Dataset = &datasetInfo{
			Checksum: index.Checksum(),
			BuiltAt:  index.BuiltAt().Unix(),
			Hulls:    len(index.Hulls()),
			Zones:    len(index.Zones()),
		}
	}

	h.encodeJSON(w, http.StatusOK, response)
}

func (h httpHandler) parsePoint(req *http.Request) (orb.Point, error) {
	query := req.URL.Query()

	lon, err := strconv.ParseFloat(query.Get("lon"), 64)
	if err != nil {
		return orb.Point{}, fmt.Errorf("incorrect longitude: %w", geometry.ErrInvalidCoordinate)
	}

	lat, err := strconv.ParseFloat(query.Get("lat"), 64)
	if err != nil {
		return orb.Point{}, fmt.Errorf("incorrect latitude: %w", geometry.ErrInvalidCoordinate)
	}

	point := orb.Point{lon, lat}

	return point, geometry.ValidatePoint(point)
}
