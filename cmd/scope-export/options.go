package main

import (
	"log"
	"strconv"
	"strings"

	"git.sr.ht/~whereswaldon/scope-view/scope"
	"git.sr.ht/~whereswaldon/scope-view/theme"
)

// viewOptions is the view configuration given on the command line.
type viewOptions struct {
	timeDiv     string
	voltDivs    []string
	timeOffset  float64
	voltOffsets []string
	hide        []string
	cursors     bool
	variant     theme.Variant
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// channelIndex resolves a channel by heading (case-insensitive) or by its
// zero-based index.
func channelIndex(ds *scope.Dataset, ref string) (int, bool) {
	for i := 0; i < ds.ChannelCount(); i++ {
		if strings.EqualFold(ds.ChannelHeading(i), ref) {
			return i, true
		}
	}
	i, err := strconv.Atoi(ref)
	if err != nil || i < 0 || i >= ds.ChannelCount() {
		return 0, false
	}
	return i, true
}

// commands turns the options into engine commands for ds. Bad values are
// logged once each and replaced by their defaults.
func (o viewOptions) commands(ds *scope.Dataset) []scope.Command {
	cmds := []scope.Command{scope.SetTheme{Variant: o.variant}}
	if o.timeDiv != "" {
		idx, err := scope.ParseTimeDivision(o.timeDiv)
		if err != nil {
			log.Printf("-time-div: %v", err)
		}
		cmds = append(cmds, scope.SetTimeDivision{Index: idx})
	}
	for i, label := range o.voltDivs {
		if i >= ds.ChannelCount() {
			log.Printf("-volt-div: ignoring %d extra values", len(o.voltDivs)-i)
			break
		}
		idx, err := scope.ParseVoltDivision(label)
		if err != nil {
			log.Printf("-volt-div: %v", err)
		}
		cmds = append(cmds, scope.SetVoltDivision{Channel: i, Index: idx})
	}
	if o.timeOffset != 0 {
		cmds = append(cmds, scope.SetTimeOffset{Divisions: o.timeOffset})
	}
	for i, s := range o.voltOffsets {
		if i >= ds.ChannelCount() {
			log.Printf("-volt-offset: ignoring %d extra values", len(o.voltOffsets)-i)
			break
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			log.Printf("-volt-offset: invalid value %q for channel %d, using 0", s, i)
			continue
		}
		cmds = append(cmds, scope.SetVoltOffset{Channel: i, Volts: v})
	}
	for _, ref := range o.hide {
		c, ok := channelIndex(ds, ref)
		if !ok {
			log.Printf("-hide: no channel %q", ref)
			continue
		}
		cmds = append(cmds, scope.SetChannelVisible{Channel: c, Visible: false})
	}
	if o.cursors {
		cmds = append(cmds, scope.SetCursorsEnabled{Enabled: true})
	}
	return cmds
}
