package scope

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// Dataset is an immutable, column-oriented view of one loaded table. Column
// 0 is the independent axis (time or frequency); the remaining columns are
// the dependent channels.
type Dataset struct {
	headings []string
	axis     []float64
	channels [][]float64

	axisRange     Range
	channelRanges []Range
}

// Load validates rows against headings and builds a Dataset. Rows are
// copied, so the caller may reuse them. When the independent axis is not
// already non-decreasing the rows are stably sorted by it.
func Load(headings []string, rows [][]float64) (*Dataset, error) {
	if len(headings) < 2 {
		return nil, &DataError{Err: ErrInsufficientColumns, Row: -1}
	}
	if len(rows) == 0 {
		return nil, &DataError{Err: ErrEmptyData, Row: -1}
	}
	cols := len(headings)
	for i, row := range rows {
		if len(row) != cols {
			return nil, &DataError{Err: ErrMalformedRow, Row: i}
		}
		for _, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, &DataError{Err: ErrMalformedRow, Row: i}
			}
		}
	}

	order := make([]int, len(rows))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return rows[order[a]][0] < rows[order[b]][0]
	})

	d := &Dataset{
		headings: append([]string(nil), headings...),
		axis:     make([]float64, len(rows)),
		channels: make([][]float64, cols-1),
	}
	for c := range d.channels {
		d.channels[c] = make([]float64, len(rows))
	}
	for i, src := range order {
		row := rows[src]
		d.axis[i] = row[0]
		for c := range d.channels {
			d.channels[c][i] = row[c+1]
		}
	}

	d.axisRange = Range{Min: floats.Min(d.axis), Max: floats.Max(d.axis)}
	d.channelRanges = make([]Range, len(d.channels))
	for c, values := range d.channels {
		d.channelRanges[c] = Range{Min: floats.Min(values), Max: floats.Max(values)}
	}
	return d, nil
}

func (d *Dataset) ColumnCount() int { return len(d.headings) }

func (d *Dataset) RowCount() int { return len(d.axis) }

func (d *Dataset) ChannelCount() int { return len(d.channels) }

// Headings returns a copy of the column names.
func (d *Dataset) Headings() []string {
	return append([]string(nil), d.headings...)
}

func (d *Dataset) AxisHeading() string { return d.headings[0] }

func (d *Dataset) ChannelHeading(i int) string {
	if i < 0 || i >= len(d.channels) {
		return ""
	}
	return d.headings[i+1]
}

// IndependentAxis returns the column 0 values in ascending order. The slice
// is shared with the dataset and must not be modified.
func (d *Dataset) IndependentAxis() []float64 { return d.axis }

// Channel returns the values of dependent channel i, or nil when i is out of
// range. The slice is shared with the dataset and must not be modified.
func (d *Dataset) Channel(i int) []float64 {
	if i < 0 || i >= len(d.channels) {
		return nil
	}
	return d.channels[i]
}

// Column returns a column by its index in the original table.
func (d *Dataset) Column(i int) []float64 {
	if i == 0 {
		return d.axis
	}
	return d.Channel(i - 1)
}

func (d *Dataset) AxisRange() Range { return d.axisRange }

func (d *Dataset) ChannelRange(i int) Range {
	if i < 0 || i >= len(d.channelRanges) {
		return Range{}
	}
	return d.channelRanges[i]
}

// Range spans every dependent channel.
func (d *Dataset) Range() Range {
	r := d.channelRanges[0]
	for _, cr := range d.channelRanges[1:] {
		r.Min = min(r.Min, cr.Min)
		r.Max = max(r.Max, cr.Max)
	}
	return r
}

// Duration is the extent of the independent axis.
func (d *Dataset) Duration() float64 { return d.axisRange.Span() }
