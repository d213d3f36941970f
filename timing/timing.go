package timing

import (
	"fmt"
	"math"
	"sort"

	"github.com/jsphweid/dosrevive/constants"
	"github.com/jsphweid/dosrevive/model"
)

// Frames below this are shown with one decimal, above it as whole frames.
const roundingThreshold = 100000

type Point struct {
	Frame   float64
	Seconds float64
	Time    string
	Label   string
}

func sortedByStart(segments []model.TimingSegment) []model.TimingSegment {
	res := make([]model.TimingSegment, len(segments))
	copy(res, segments)
	sort.SliceStable(res, func(i, j int) bool {
		if res[i].StartPosition != res[j].StartPosition {
			return res[i].StartPosition < res[j].StartPosition
		}
		return res[i].Label < res[j].Label
	})
	return res
}

// activeIndex finds the segment with the greatest start not exceeding x.
// Coordinates before every start fall back to the earliest segment.
func activeIndex(sorted []model.TimingSegment, x float64) int {
	if x < float64(sorted[0].StartPosition) {
		x = float64(sorted[0].StartPosition)
	}
	i := sort.Search(len(sorted), func(i int) bool {
		return float64(sorted[i].StartPosition) > x
	})
	return i - 1
}

func nextBoundary(sorted []model.TimingSegment, x float64, limit float64) float64 {
	i := sort.Search(len(sorted), func(i int) bool {
		return float64(sorted[i].StartPosition) > x
	})
	if i < len(sorted) && float64(sorted[i].StartPosition) < limit {
		return float64(sorted[i].StartPosition)
	}
	return limit
}

// accumulate walks from the start of the count-in up to coord, adding
// span(units, bpm) for every stretch covered by a single segment.
func accumulate(segments []model.TimingSegment, coord float64, span func(units, bpm float64) float64) float64 {
	from := float64(-constants.LeadIn)
	if coord < from {
		return -accumulateRange(segments, coord, from, span)
	}
	return accumulateRange(segments, from, coord, span)
}

func accumulateRange(segments []model.TimingSegment, from, to float64, span func(units, bpm float64) float64) float64 {
	if len(segments) == 0 {
		return span(to-from, constants.DefaultBPM)
	}

	sorted := sortedByStart(segments)
	var total float64
	cur := from
	for cur < to {
		next := nextBoundary(sorted, cur, to)
		total += span(next-cur, sorted[activeIndex(sorted, cur)].Bpm)
		cur = next
	}
	return total
}

func coordinate(page int, position float64) float64 {
	return float64(page*constants.VerticalSize) + position
}

func framesSpan(units, bpm float64) float64 {
	return units * constants.FPS * 60 / (bpm * constants.QuarterInterval)
}

// RoundFrame applies the display rounding used for saved frame values.
func RoundFrame(frame float64) float64 {
	if frame < roundingThreshold {
		return math.Round(frame*10) / 10
	}
	return math.Round(frame)
}

// PositionToFrame converts a page index and a position within that page
// into the frame, counted from the start of playback, at which it is reached.
func PositionToFrame(segments []model.TimingSegment, page int, position float64, blankFrame int) float64 {
	frames := accumulate(segments, coordinate(page, position), framesSpan)
	return RoundFrame(frames + float64(blankFrame))
}

// PositionToSeconds is PositionToFrame measured in seconds, without rounding.
// Frames are summed first so whole-frame positions divide exactly.
func PositionToSeconds(segments []model.TimingSegment, page int, position float64, blankFrame int) float64 {
	frames := accumulate(segments, coordinate(page, position), framesSpan)
	return (frames + float64(blankFrame)) / constants.FPS
}

// SecondsToTimeStr formats as m:ss. Negative and non-finite input reads as 0:00.
func SecondsToTimeStr(seconds float64) string {
	if !(seconds > 0) || math.IsInf(seconds, 1) {
		return "0:00"
	}
	minutes := int(math.Floor(seconds / 60))
	rest := int(math.Floor(seconds)) - minutes*60
	return fmt.Sprintf("%d:%02d", minutes, rest)
}

// Describe bundles everything the position cursor displays.
func Describe(segments []model.TimingSegment, page int, position float64, blankFrame int) Point {
	frame := PositionToFrame(segments, page, position, blankFrame)
	seconds := PositionToSeconds(segments, page, position, blankFrame)
	timeStr := SecondsToTimeStr(seconds)
	return Point{
		Frame:   frame,
		Seconds: seconds,
		Time:    timeStr,
		Label:   fmt.Sprintf("%v\n[%s]", frame, timeStr),
	}
}
