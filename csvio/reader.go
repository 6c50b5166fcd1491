package csvio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/9seconds/zonographer/geometry"
	"github.com/paulmach/orb"
)

const (
	lonColumn = 0
	latColumn = 1
)

var ErrNoHeader = errors.New("csv has no header")

// Record is a single parsed row.
type Record struct {
	// Line is a line number of the row in the input, starting from 1.
	Line  int
	Raw   []string
	Point orb.Point
}

// Reader is a wrapper over csv.Reader which converts each row into
// Record instance.
type Reader struct {
	reader *csv.Reader
	header []string
}

// Header returns the first row of the input. It is read on the first
// call of Header or Read.
func (r *Reader) Header() ([]string, error) {
	if r.header != nil {
		return r.header, nil
	}

	data, err := r.reader.Read()

	switch {
	case errors.Is(err, io.EOF):
		return nil, ErrNoHeader
	case err != nil:
		return nil, fmt.Errorf("cannot read a header: %w", err)
	}

	r.header = data

	return r.header, nil
}

// Read returns the next record or io.EOF if there are no more rows.
func (r *Reader) Read() (*Record, error) {
	if _, err := r.Header(); err != nil {
		return nil, err
	}

	data, err := r.reader.Read()

	switch {
	case errors.Is(err, io.EOF):
		return nil, io.EOF
	case err != nil:
		return nil, fmt.Errorf("cannot read a record: %w", err)
	}

	line, _ := r.reader.FieldPos(0)

	point, err := parsePoint(data)
	if err != nil {
		return nil, fmt.Errorf("incorrect record at line %d: %w", line, err)
	}

	return &Record{
		Line:  line,
		Raw:   data,
		Point: point,
	}, nil
}

// ReadAll reads all remaining records.
func (r *Reader) ReadAll() ([]*Record, error) {
	rv := []*Record{}

	for {
		record, err := r.Read()

		switch {
		case errors.Is(err, io.EOF):
			return rv, nil
		case err != nil:
			return nil, err
		}

		rv = append(rv, record)
	}
}

func parsePoint(data []string) (orb.Point, error) {
	if len(data) <= latColumn {
		return orb.Point{}, fmt.Errorf("longitude and latitude columns are required: %w",
			geometry.ErrInvalidCoordinate)
	}

	lon, err := strconv.ParseFloat(strings.TrimSpace(data[lonColumn]), 64)
	if err != nil {
		return orb.Point{}, fmt.Errorf("incorrect longitude %q: %w", data[lonColumn], geometry.ErrInvalidCoordinate)
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(data[latColumn]), 64)
	if err != nil {
		return orb.Point{}, fmt.Errorf("incorrect latitude %q: %w", data[latColumn], geometry.ErrInvalidCoordinate)
	}

	point := orb.Point{lon, lat}

	return point, geometry.ValidatePoint(point)
}

// NewReader converts given io.Reader instance into Reader. Lines which
// start with # are comments.
func NewReader(reader io.Reader) *Reader {
	csvReader := csv.NewReader(reader)
	csvReader.Comment = '#'
	csvReader.FieldsPerRecord = -1

	return &Reader{
		reader: csvReader,
	}
}
