package csvio_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/9seconds/zonographer/csvio"
	"github.com/9seconds/zonographer/geometry"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
)

func TestReaderOK(t *testing.T) {
	content := bytes.NewBufferString(`lon,lat,name
# comment
13.40,52.52,Berlin

 -0.12 , 51.5 ,London,extra
`)
	reader := csvio.NewReader(content)

	header, err := reader.Header()
	assert.NoError(t, err)
	assert.Equal(t, []string{"lon", "lat", "name"}, header)

	item, err := reader.Read()
	assert.NoError(t, err)
	assert.Equal(t, 3, item.Line)
	assert.Equal(t, orb.Point{13.40, 52.52}, item.Point)
	assert.Equal(t, []string{"13.40", "52.52", "Berlin"}, item.Raw)

	item, err = reader.Read()
	assert.NoError(t, err)
	assert.Equal(t, 5, item.Line)
	assert.Equal(t, orb.Point{-0.12, 51.5}, item.Point)
	assert.Len(t, item.Raw, 4)

	_, err = reader.Read()
	assert.Equal(t, io.EOF, err)
}

func TestReaderReadAll(t *testing.T) {
	reader := csvio.NewReader(bytes.NewBufferString("lon,lat\n1,2\n3,4\n"))

	records, err := reader.ReadAll()

	assert.NoError(t, err)
	assert.Len(t, records, 2)
	assert.Equal(t, orb.Point{3, 4}, records[1].Point)
}

func TestReaderOnlyHeader(t *testing.T) {
	reader := csvio.NewReader(bytes.NewBufferString("lon,lat\n"))

	records, err := reader.ReadAll()

	assert.NoError(t, err)
	assert.Empty(t, records)
}

func TestReaderEmpty(t *testing.T) {
	reader := csvio.NewReader(bytes.NewBufferString(""))

	_, err := reader.Read()

	assert.ErrorIs(t, err, csvio.ErrNoHeader)
}

func TestReaderIncorrectNumbers(t *testing.T) {
	for _, v := range []string{"x,1", "1,y", "1", "NaN,1", "1,+Inf"} {
		reader := csvio.NewReader(bytes.NewBufferString("lon,lat\n1,1\n" + v + "\n"))

		_, err := reader.Read()
		assert.NoError(t, err)

		_, err = reader.Read()
		assert.ErrorIs(t, err, geometry.ErrInvalidCoordinate, v)
		assert.Contains(t, err.Error(), "line 3", v)
	}
}

func TestReaderIncorrectCSV(t *testing.T) {
	reader := csvio.NewReader(bytes.NewBufferString("lon,lat\n\"1,2\n"))

	_, err := reader.Read()

	assert.Error(t, err)
}
