package backend

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/charmap"

	"git.sr.ht/~whereswaldon/scope-view/scope"
)

// Table is a cleaned, fully numeric CSV: every row has one value per
// heading and no value is NaN or infinite.
type Table struct {
	Headings []string
	Rows     [][]float64
	// SkippedLines counts lines dropped for having the wrong number of
	// fields or unparseable quoting.
	SkippedLines int
	// DroppedColumns counts columns with no numeric cell at all.
	DroppedColumns int
	// DroppedRows counts rows with at least one non-numeric cell.
	DroppedRows int
}

// ReadTable parses Latin-1 CSV or TSV text. The delimiter is a tab when the
// first line contains one and a comma otherwise. Headings are stripped of
// anything but printable ASCII, cells that are not numbers become missing,
// columns that are entirely missing are dropped, and then rows with any
// missing cell are dropped.
func ReadTable(r io.Reader) (Table, error) {
	br := bufio.NewReader(charmap.ISO8859_1.NewDecoder().Reader(r))
	first, err := br.Peek(br.Size())
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, bufio.ErrBufferFull) {
		return Table{}, fmt.Errorf("failed reading CSV header: %w", err)
	}
	if i := bytes.IndexByte(first, '\n'); i >= 0 {
		first = first[:i]
	}
	cr := csv.NewReader(br)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true
	if bytes.IndexByte(first, '\t') >= 0 {
		cr.Comma = '\t'
	}

	var t Table
	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return Table{}, &scope.DataError{Err: scope.ErrEmptyData, Row: -1}
		}
		return Table{}, fmt.Errorf("failed reading CSV header: %w", err)
	}
	headings := make([]string, len(header))
	for i, h := range header {
		headings[i] = sanitizeHeading(h)
	}

	var cells [][]float64
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		var perr *csv.ParseError
		if errors.As(err, &perr) {
			t.SkippedLines++
			continue
		} else if err != nil {
			return Table{}, fmt.Errorf("failed reading CSV data: %w", err)
		}
		if len(rec) != len(headings) {
			t.SkippedLines++
			continue
		}
		row := make([]float64, len(rec))
		for i, cell := range rec {
			row[i] = parseCell(cell)
		}
		cells = append(cells, row)
	}
	if t.SkippedLines > 0 {
		log.Printf("skipped %d malformed CSV lines", t.SkippedLines)
	}

	keep := make([]int, 0, len(headings))
	for c := range headings {
		for _, row := range cells {
			if !math.IsNaN(row[c]) {
				keep = append(keep, c)
				break
			}
		}
	}
	t.DroppedColumns = len(headings) - len(keep)
	if len(keep) < 2 {
		return Table{}, &scope.DataError{Err: scope.ErrInsufficientColumns, Row: -1}
	}
	for _, c := range keep {
		t.Headings = append(t.Headings, headings[c])
	}

rows:
	for _, row := range cells {
		out := make([]float64, len(keep))
		for i, c := range keep {
			if math.IsNaN(row[c]) {
				t.DroppedRows++
				continue rows
			}
			out[i] = row[c]
		}
		t.Rows = append(t.Rows, out)
	}
	if len(t.Rows) == 0 {
		return Table{}, &scope.DataError{Err: scope.ErrEmptyData, Row: -1}
	}
	return t, nil
}

// Dataset validates the table into a scope.Dataset.
func (t Table) Dataset() (*scope.Dataset, error) {
	return scope.Load(t.Headings, t.Rows)
}

// Cleanup describes what ReadTable threw away, or returns "" when the input
// was used as is.
func (t Table) Cleanup() string {
	if t.SkippedLines+t.DroppedRows+t.DroppedColumns == 0 {
		return ""
	}
	return fmt.Sprintf("skipped %d malformed lines, dropped %d rows and %d columns",
		t.SkippedLines, t.DroppedRows, t.DroppedColumns)
}

// sanitizeHeading keeps printable ASCII only, so units such as "°" or "Ω"
// vanish from column names.
func sanitizeHeading(h string) string {
	return strings.TrimSpace(strings.Map(func(r rune) rune {
		if r < 0x20 || r > 0x7e {
			return -1
		}
		return r
	}, h))
}

// parseCell returns NaN for anything that is not a finite number.
func parseCell(cell string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
	if err != nil || math.IsInf(v, 0) {
		return math.NaN()
	}
	return v
}
