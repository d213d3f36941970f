package midi

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/jsphweid/dosrevive/constants"
	"github.com/jsphweid/dosrevive/model"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

// Lane 0 plays middle C, each further lane one semitone higher.
const BaseKey = 60

const channel = 0
const velocity = 100

// taps sound for a sixteenth note
const tapTicks = constants.QuarterInterval / 4

// ordering of simultaneous events
const (
	orderTempo = iota
	orderNoteOff
	orderNoteOn
)

type event struct {
	ticks uint64
	order int
	msg   []byte
}

// Ticks maps a page position to MIDI ticks. One tick is one symbolic unit
// and tick 0 is the start of the count-in.
func Ticks(page int, position int) uint64 {
	return uint64(page*constants.VerticalSize + position + constants.LeadIn)
}

func tempoEvents(timings []model.TimingSegment) []event {
	sorted := make([]model.TimingSegment, len(timings))
	copy(sorted, timings)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].StartPosition != sorted[j].StartPosition {
			return sorted[i].StartPosition < sorted[j].StartPosition
		}
		return sorted[i].Label < sorted[j].Label
	})

	var res []event
	for _, t := range sorted {
		var ticks uint64
		// the earliest segment also covers the count-in
		if t.StartPosition != sorted[0].StartPosition {
			ticks = uint64(t.StartPosition + constants.LeadIn)
		}
		res = append(res, event{ticks: ticks, order: orderTempo, msg: smf.MetaTempo(t.Bpm)})
	}
	return res
}

func noteEvents(chart *model.Chart) []event {
	var res []event
	add := func(on, off uint64, lane int) {
		key := uint8(BaseKey + lane)
		res = append(res,
			event{ticks: on, order: orderNoteOn, msg: gomidi.NoteOn(channel, key, velocity)},
			event{ticks: off, order: orderNoteOff, msg: gomidi.NoteOff(channel, key)},
		)
	}

	for p, page := range chart.Pages {
		for lane, positions := range page.Notes {
			for _, pos := range positions {
				on := Ticks(p, pos)
				add(on, on+tapTicks, lane)
			}
		}
		for lane, freezes := range page.Freezes {
			for _, f := range freezes {
				add(Ticks(p, f.Start), Ticks(p, f.End), lane)
			}
		}
	}
	return res
}

// Export renders a chart as a single-track SMF at 48 ticks per quarter.
func Export(chart *model.Chart) (*smf.SMF, error) {
	events := append(tempoEvents(chart.Timings), noteEvents(chart)...)
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].ticks != events[j].ticks {
			return events[i].ticks < events[j].ticks
		}
		return events[i].order < events[j].order
	})

	var track smf.Track
	var last uint64
	for _, evt := range events {
		track.Add(uint32(evt.ticks-last), evt.msg)
		last = evt.ticks
	}
	track.Close(0)

	s := smf.New()
	s.TimeFormat = smf.MetricTicks(constants.QuarterInterval)
	if err := s.Add(track); err != nil {
		return nil, fmt.Errorf("Error building midi track... %w", err)
	}
	return s, nil
}

func ReadMidiFile(filepath string) (s *smf.SMF, e error) {
	// smf can panic on truncated input
	defer func() {
		if r, ok := recover().(string); ok {
			e = errors.New(r)
		}
	}()

	dat, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("Error reading midi file... %w", err)
	}
	res, err := smf.ReadFrom(bytes.NewReader(dat))
	if err != nil {
		return nil, fmt.Errorf("Error parsing midi file... %w", err)
	}
	return res, nil
}
