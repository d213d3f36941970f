package sample

import (
	"sort"

	"github.com/jsphweid/dosrevive/constants"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

// PageWindow is the tick range auditioned for a page: the two beats before
// it followed by the page itself, matching exported tick positions.
func PageWindow(page int) (from uint64, to uint64) {
	from = uint64(page * constants.VerticalSize)
	to = from + uint64(constants.VerticalSize+constants.LeadIn)
	return from, to
}

// Create clips mf to [from, to). Tempo and other meta events before the
// window are moved to its start so the clip plays at the right speed, and
// notes still held at the end are released.
func Create(mf *smf.SMF, from, to uint64) *smf.SMF {
	res := smf.New()
	res.TimeFormat = mf.TimeFormat

	for _, track := range mf.Tracks {
		var newTrack smf.Track
		var absTicks uint64
		last := from
		held := make(map[uint8]uint8)

		add := func(at uint64, msg []byte) {
			newTrack.Add(uint32(at-last), msg)
			last = at
		}

	TrackEventLoop:
		for _, evt := range track {
			absTicks += uint64(evt.Delta)
			if absTicks >= to {
				break TrackEventLoop
			}

			var ch, key, vel uint8
			msg := midi.Message(evt.Message)
			switch {
			case msg.GetNoteStart(&ch, &key, &vel):
				if absTicks >= from {
					held[key] = ch
					add(absTicks, evt.Message)
				}
			case msg.GetNoteEnd(&ch, &key):
				if _, ok := held[key]; ok {
					delete(held, key)
					add(absTicks, evt.Message)
				}
			case evt.Message.Is(smf.MetaEndOfTrackMsg):
			default:
				if absTicks < from {
					add(from, evt.Message)
				} else {
					add(absTicks, evt.Message)
				}
			}
		}

		keys := make([]int, 0, len(held))
		for key := range held {
			keys = append(keys, int(key))
		}
		sort.Ints(keys)
		for _, key := range keys {
			add(to, midi.NoteOff(held[uint8(key)], uint8(key)))
		}

		newTrack.Close(0)
		res.Tracks = append(res.Tracks, newTrack)
	}

	return res
}
