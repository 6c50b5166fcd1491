package csvio_test

import (
	"bytes"
	"testing"

	"github.com/9seconds/zonographer/csvio"
	"github.com/9seconds/zonographer/zonelib"
	"github.com/stretchr/testify/assert"
)

func TestWriterAddsZone(t *testing.T) {
	buf := &bytes.Buffer{}
	writer := csvio.NewWriter(buf)

	assert.NoError(t, writer.WriteHeader([]string{"lon", "lat"}))
	assert.NoError(t, writer.Write(&csvio.Record{Raw: []string{"1", "2"}},
		zonelib.ResolveResult{Zone: "North", Method: zonelib.MethodExact}))
	assert.NoError(t, writer.Write(&csvio.Record{Raw: []string{"3", "4"}},
		zonelib.ResolveResult{Method: zonelib.MethodNone}))
	assert.NoError(t, writer.Flush())

	assert.Equal(t, "lon,lat,zone\n1,2,North\n3,4,\n", buf.String())
}

func TestWriterReplacesZone(t *testing.T) {
	buf := &bytes.Buffer{}
	writer := csvio.NewWriter(buf)

	assert.NoError(t, writer.WriteHeader([]string{"lon", "lat", "Zone"}))
	assert.NoError(t, writer.Write(&csvio.Record{Raw: []string{"1", "2", "Old"}},
		zonelib.ResolveResult{Zone: "New", Method: zonelib.MethodFallback}))
	assert.NoError(t, writer.Write(&csvio.Record{Raw: []string{"3", "4"}},
		zonelib.ResolveResult{Zone: "New", Method: zonelib.MethodExact}))
	assert.NoError(t, writer.Flush())

	assert.Equal(t, "lon,lat,Zone\n1,2,New\n3,4,New\n", buf.String())
}

func TestWriterQuotes(t *testing.T) {
	buf := &bytes.Buffer{}
	writer := csvio.NewWriter(buf)

	assert.NoError(t, writer.WriteHeader([]string{"lon", "lat", "name"}))
	assert.NoError(t, writer.Write(&csvio.Record{Raw: []string{"1", "2", "a, b"}},
		zonelib.ResolveResult{Zone: "z"}))
	assert.NoError(t, writer.Flush())

	assert.Equal(t, "lon,lat,name,zone\n1,2,\"a, b\",z\n", buf.String())
}
