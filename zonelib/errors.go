package zonelib

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/9seconds/zonographer/geometry"
)

var (
	ErrZonographerShutdown = errors.New("zonographer instance was shutdown")
	ErrContextIsClosed     = errors.New("context is closed")

	// ErrDatasetLoad is returned if dataset source is unreadable or its
	// contents cannot be parsed into ZoneIndex. Loader remembers this
	// error until a caller explicitly retries.
	ErrDatasetLoad = errors.New("cannot load a dataset")

	ErrCircuitBreakerOpened = errors.New("circuit breaker is opened")
)

// errorCodes are checked in order, the first match wins. ErrDatasetLoad
// may wrap ErrCircuitBreakerOpened.
var errorCodes = []struct {
	err  error
	code string
}{
	{geometry.ErrInvalidCoordinate, "invalid_coordinate"},
	{ErrZonographerShutdown, "shutdown"},
	{ErrDatasetLoad, "dataset_unavailable"},
	{ErrContextIsClosed, "context_closed"},
	{ErrCircuitBreakerOpened, "circuit_breaker_opened"},
}

type jsonHTTPError struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Context string `json:"context"`
	} `json:"error"`
}

type httpError struct {
	message    string
	err        error
	statusCode int
}

func (h *httpError) Message() string {
	if h == nil {
		return ""
	}

	return h.message
}

func (h *httpError) Err() string {
	if err := errors.Unwrap(h); err != nil {
		return err.Error()
	}

	return ""
}

func (h *httpError) StatusCode() int {
	if h != nil && h.statusCode != 0 {
		return h.statusCode
	}

	return http.StatusInternalServerError
}

// Code is a machine-readable name of the error. If error does not wrap
// any known sentinel, a code is made of its status code text:
// bad_request, internal_server_error and so on.
func (h *httpError) Code() string {
	for _, v := range errorCodes {
		if errors.Is(h, v.err) {
			return v.code
		}
	}

	text := strings.ToLower(http.StatusText(h.StatusCode()))

	return strings.ReplaceAll(text, " ", "_")
}

func (h *httpError) Unwrap() error {
	if h == nil {
		return nil
	}

	return h.err
}

func (h *httpError) Error() string {
	switch {
	case h == nil:
		return ""
	case h.err != nil && h.message != "":
		return h.message + ": " + h.err.Error()
	case h.err != nil:
		return h.err.Error()
	}

	return h.message
}

func (h *httpError) MarshalJSON() ([]byte, error) {
	value := jsonHTTPError{}
	value.Error.Code = h.Code()
	value.Error.Message = h.Message()
	value.Error.Context = h.Err()

	return json.Marshal(&value)
}
