package zonelib

import (
	"encoding/json"
	"io/ioutil"
	"net/http"
	"strings"
	"time"

	"github.com/paulmach/orb"
	"github.com/qri-io/jsonschema"
)

var handlePostRequestJSONSchema = func() *jsonschema.Schema {
	data := `{
        "type": "object",
        "required": [
            "points"
        ],
        "additionalProperties": false,
        "properties": {
            "points": {
                "type": "array",
                "minItems": 1,
                "items": {
                    "type": "array",
                    "minItems": 2,
                    "maxItems": 2,
                    "items": {
                        "type": "number"
                    }
                }
            }
        }
    }`

	rv := &jsonschema.Schema{}
	if err := json.Unmarshal([]byte(data), rv); err != nil {
		panic(err)
	}

	return rv
}()

type handlePostRequest struct {
	Points []orb.Point `json:"points"`
}

type handlePostResponse struct {
	Results []ResolveResult `json:"results"`
}

func (h httpHandler) handlePostResolve(w http.ResponseWriter, req *http.Request) {
	if !strings.Contains(req.Header.Get("Content-Type"), "application/json") {
		h.sendError(w, nil, "Incorrect content type", http.StatusUnsupportedMediaType)

		return
	}

	bodyBytes, err := ioutil.ReadAll(req.Body)

	req.Body.Close()

	if err != nil {
		h.sendError(w, err, "Cannot read request body", http.StatusBadRequest)

		return
	}

	errs, err := handlePostRequestJSONSchema.ValidateBytes(req.Context(), bodyBytes)
	if err != nil {
		h.sendError(w, err, "Cannot validate body", http.StatusBadRequest)

		return
	}

	if len(errs) > 0 {
		h.sendError(w, errs[0], "Invalid request body", http.StatusBadRequest)

		return
	}

	parsedRequest := &handlePostRequest{}
	if err := json.Unmarshal(bodyBytes, parsedRequest); err != nil {
		h.sendError(w, err, "Cannot parse request JSON", http.StatusBadRequest)

		return
	}

	resolved, err := h.zono.ResolveAll(req.Context(), parsedRequest.Points)
	if err != nil {
		h.sendError(w, err, "Cannot resolve given points", h.resolveErrorStatus(err))

		return
	}

	h.encodeJSON(w, http.StatusOK, handlePostResponse{
		Results: resolved,
	})
}

func (h httpHandler) handlePostRetry(w http.ResponseWriter, req *http.Request) {
	startedAt := time.Now()

	if err := h.zono.RetryLoad(req.Context()); err != nil {
		h.sendError(w, err, "Cannot load a dataset", h.resolveErrorStatus(err))

		return
	}

	response := struct {
		Checksum string  `json:"checksum"`
		Elapsed  float64 `json:"elapsed"`
	}{
		Checksum: h.zono.Index().Checksum(),
		Elapsed:  time.Since(startedAt).Seconds(),
	}

	h.encodeJSON(w, http.StatusOK, response)
}
