package scope

import "strings"

// ViewMode selects how a dataset is presented. It is decided once per load.
type ViewMode uint8

const (
	// Transient is the time-domain, multi-channel oscilloscope view.
	Transient ViewMode = iota
	// FrequencyResponse is the gain/phase versus frequency (Bode) view.
	FrequencyResponse
)

func (m ViewMode) String() string {
	switch m {
	case Transient:
		return "transient"
	case FrequencyResponse:
		return "frequency response"
	default:
		return "unknown"
	}
}

// Binding records which table columns play which role for a ViewMode.
// Column indexes refer to the table, so 0 is the first column.
type Binding struct {
	Mode ViewMode
	// Axis is the independent variable column.
	Axis int
	// Channels lists the dependent columns in declaration order. Only set in
	// Transient mode.
	Channels []int
	// Gain and Phase are only set in FrequencyResponse mode.
	Gain, Phase int
}

// Classify inspects column names. A table with one column naming
// "frequency" and "hz", another naming "gain" and "db", and a third naming
// "phase" (case-insensitive, any order) is a frequency response; anything
// else is a transient capture with column 0 as time.
func Classify(headings []string) Binding {
	lower := make([]string, len(headings))
	for i, h := range headings {
		lower[i] = strings.ToLower(h)
	}
	matching := func(words ...string) []int {
		var cols []int
	next:
		for i, h := range lower {
			for _, w := range words {
				if !strings.Contains(h, w) {
					continue next
				}
			}
			cols = append(cols, i)
		}
		return cols
	}
	// A heading may match more than one role; take the first assignment of
	// three distinct columns.
	for _, freq := range matching("frequency", "hz") {
		for _, gain := range matching("gain", "db") {
			if gain == freq {
				continue
			}
			for _, phase := range matching("phase") {
				if phase == freq || phase == gain {
					continue
				}
				return Binding{
					Mode:  FrequencyResponse,
					Axis:  freq,
					Gain:  gain,
					Phase: phase,
				}
			}
		}
	}
	channels := make([]int, 0, max(len(headings)-1, 0))
	for i := 1; i < len(headings); i++ {
		channels = append(channels, i)
	}
	return Binding{
		Mode:     Transient,
		Axis:     0,
		Channels: channels,
	}
}
