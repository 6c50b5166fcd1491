package zonelib

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/9seconds/zonographer/geometry"
	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
)

type httpHandler struct {
	zono *Zonographer
}

func (h httpHandler) encodeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	encoder := json.NewEncoder(w)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	encoder.SetEscapeHTML(false)
	encoder.Encode(data) // nolint: errcheck
}

func (h httpHandler) sendError(w http.ResponseWriter, err error, message string, statusCode int) {
	e := &httpError{
		message:    message,
		statusCode: statusCode,
		err:        err,
	}

	h.encodeJSON(w, e.StatusCode(), e)
}

// resolveErrorStatus chooses HTTP status for errors of Resolve and
// ResolveAll.
func (h httpHandler) resolveErrorStatus(err error) int {
	switch {
	case errors.Is(err, geometry.ErrInvalidCoordinate):
		return http.StatusBadRequest
	case errors.Is(err, ErrZonographerShutdown), errors.Is(err, ErrDatasetLoad), errors.Is(err, ErrContextIsClosed):
		return http.StatusServiceUnavailable
	}

	return http.StatusInternalServerError
}

// NewHTTPHandler returns a router with following endpoints:
//
//	GET  /resolve?lon=..&lat=..    resolve a single point
//	POST /resolve                  resolve {"points": [[lon, lat], ...]}
//	GET  /stats                    usage stats and dataset info
//	POST /dataset/retry            retry a failed dataset load
func NewHTTPHandler(zono *Zonographer) http.Handler {
	handler := httpHandler{
		zono: zono,
	}
	router := chi.NewRouter()

	router.Use(middleware.StripSlashes)
	router.Use(middleware.Recoverer)
	router.Use(middleware.RealIP)

	router.Get("/resolve", handler.handleGetResolve)
	router.Post("/resolve", handler.handlePostResolve)
	router.Get("/stats", handler.handleGetStats)
	router.Post("/dataset/retry", handler.handlePostRetry)

	return router
}
