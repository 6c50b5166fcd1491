package zonelib

import (
	"context"
	"io"
	"net/http"

	"github.com/paulmach/orb"
)

// DatasetSource is something which can give a stream of dataset bytes.
// IndexLoader opens it at most once per successful build.
type DatasetSource interface {
	Name() string
	Open(context.Context) (io.ReadCloser, error)
}

type HTTPClient interface {
	Do(*http.Request) (*http.Response, error)
}

type Logger interface {
	ResolveError(point orb.Point, err error)
	LoadInfo(source string, msg string)
	LoadError(source string, err error)
}
