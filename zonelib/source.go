package zonelib

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/spf13/afero"
)

type fileSource struct {
	fs   afero.Fs
	path string
}

func (f fileSource) Name() string {
	return "file:" + f.path
}

func (f fileSource) Open(_ context.Context) (io.ReadCloser, error) {
	fp, err := f.fs.Open(f.path)
	if err != nil {
		return nil, fmt.Errorf("cannot open a file %s: %w", f.path, err)
	}

	return fp, nil
}

type httpSource struct {
	client HTTPClient
	url    string
}

func (h httpSource) Name() string {
	return h.url
}

func (h httpSource) Open(ctx context.Context) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.url, nil)
	if err != nil {
		return nil, fmt.Errorf("cannot build a request: %w", err)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("cannot fetch a dataset: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()

		return nil, fmt.Errorf("unexpected status code %d", resp.StatusCode)
	}

	return resp.Body, nil
}

// NewFileSource reads dataset from the given filesystem. Use
// afero.NewOsFs() for a real disk.
func NewFileSource(fs afero.Fs, path string) DatasetSource {
	return fileSource{
		fs:   fs,
		path: path,
	}
}

// NewHTTPSource downloads dataset with a given client. Usually you want
// to pass a client made by NewHTTPClient. Any response except 200 OK is
// an error, even if client itself accepts it.
func NewHTTPSource(client HTTPClient, url string) DatasetSource {
	return httpSource{
		client: client,
		url:    url,
	}
}
