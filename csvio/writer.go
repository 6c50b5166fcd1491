package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/9seconds/zonographer/zonelib"
)

const zoneColumn = "zone"

// Writer writes rows with an additional zone column. If input header
// already ends with this column, it is overwritten.
type Writer struct {
	writer      *csv.Writer
	replaceZone bool
	width       int
}

func (w *Writer) WriteHeader(header []string) error {
	w.width = len(header)

	if len(header) > 0 && strings.EqualFold(strings.TrimSpace(header[len(header)-1]), zoneColumn) {
		w.replaceZone = true

		return w.write(header)
	}

	row := make([]string, 0, len(header)+1)
	row = append(row, header...)
	row = append(row, zoneColumn)

	return w.write(row)
}

// Write adds a row. A zone is empty if nothing was found.
func (w *Writer) Write(record *Record, result zonelib.ResolveResult) error {
	raw := record.Raw

	if w.replaceZone && len(raw) >= w.width {
		raw = raw[:w.width-1]
	}

	row := make([]string, 0, len(raw)+1)
	row = append(row, raw...)
	row = append(row, string(result.Zone))

	if err := w.write(row); err != nil {
		return fmt.Errorf("cannot write a record from line %d: %w", record.Line, err)
	}

	return nil
}

func (w *Writer) Flush() error {
	w.writer.Flush()

	return w.writer.Error()
}

func (w *Writer) write(row []string) error {
	if err := w.writer.Write(row); err != nil {
		return fmt.Errorf("cannot write a row: %w", err)
	}

	return nil
}

func NewWriter(writer io.Writer) *Writer {
	return &Writer{
		writer: csv.NewWriter(writer),
	}
}
