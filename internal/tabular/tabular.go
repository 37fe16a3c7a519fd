// Package tabular decodes uploaded delimited files into a display preview and
// a lazy row stream for batch scoring.
package tabular

import (
	"encoding/csv"
	"errors"
	"io"
	"strings"

	"github.com/spacesedan/reviewlens/internal/apperr"
	"github.com/spacesedan/reviewlens/internal/textutil"
)

const (
	previewMaxRows   = 5
	previewCellRunes = 100
)

// textColumns is the priority list of accepted review-column names,
// matched case-insensitively against the header. First match wins.
var textColumns = []string{"reviewtext", "review", "text"}

// Document is a parsed tabular file positioned after its header.
type Document struct {
	Header []string
	column int
	reader *csv.Reader
}

func newReader(content string) *csv.Reader {
	r := csv.NewReader(strings.NewReader(content))
	// Ragged and loosely quoted rows are tolerated; a bad row must not
	// void the whole file.
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	return r
}

// Parse decodes the bytes, reads the header and resolves the review column.
func Parse(data []byte) (*Document, error) {
	content, err := textutil.Decode(data)
	if err != nil {
		return nil, err
	}

	reader := newReader(content)
	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, apperr.New(apperr.KindClientInput, "CSV empty/no header.")
		}
		return nil, apperr.Wrap(apperr.KindParse, err.Error(), err)
	}
	if len(header) == 0 || (len(header) == 1 && strings.TrimSpace(header[0]) == "") {
		return nil, apperr.New(apperr.KindClientInput, "CSV empty/no header.")
	}

	column := -1
	for _, want := range textColumns {
		for i, field := range header {
			if strings.ToLower(strings.TrimSpace(field)) == want {
				column = i
				break
			}
		}
		if column >= 0 {
			break
		}
	}
	if column < 0 {
		return nil, apperr.Clientf("Review column not found. Header: %v", header)
	}

	return &Document{Header: header, column: column, reader: reader}, nil
}

// Rows returns a single-use lazy iterator over the review column. Callers
// can stop early without the rest of the file ever being parsed.
func (d *Document) Rows() *RowIter {
	return &RowIter{reader: d.reader, column: d.column}
}

// RowIter yields the review cell of each data row in order.
type RowIter struct {
	reader  *csv.Reader
	column  int
	scanned int
}

// Next returns the next row's review cell, io.EOF at end of data, or a
// typed parse error for malformed structure. Rows too short to carry the
// review column yield an empty cell.
func (it *RowIter) Next() (string, error) {
	record, err := it.reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return "", io.EOF
		}
		return "", apperr.Wrap(apperr.KindParse, err.Error(), err)
	}
	it.scanned++
	if it.column >= len(record) {
		return "", nil
	}
	return record[it.column], nil
}

// Scanned reports how many data rows have been read so far.
func (it *RowIter) Scanned() int { return it.scanned }

// BuildPreview renders header plus at most five data rows for display.
// It never fails: undecodable or unparsable content degrades to a
// single-row placeholder.
func BuildPreview(data []byte) [][]string {
	content, err := textutil.Decode(data)
	if err != nil {
		return [][]string{{"Error reading preview"}}
	}

	reader := newReader(content)
	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return [][]string{{"File empty"}}
		}
		return [][]string{{"Error parsing preview"}}
	}

	preview := [][]string{header}
	for i := 0; i < previewMaxRows; i++ {
		record, err := reader.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return [][]string{{"Error parsing preview"}}
		}
		row := make([]string, len(record))
		for j, cell := range record {
			row[j] = truncateCell(cell)
		}
		preview = append(preview, row)
	}
	return preview
}

func truncateCell(cell string) string {
	runes := []rune(cell)
	if len(runes) <= previewCellRunes {
		return cell
	}
	return string(runes[:previewCellRunes]) + "..."
}
