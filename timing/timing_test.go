package timing

import (
	"fmt"
	"math"
	"testing"

	"github.com/jsphweid/dosrevive/model"
	"github.com/stretchr/testify/assert"
)

var single = []model.TimingSegment{{Label: 1, StartPosition: 0, Bpm: 180}}

var changing = []model.TimingSegment{
	{Label: 1, StartPosition: 0, Bpm: 120},
	{Label: 2, StartPosition: 576, Bpm: 240},
}

func TestPositionToFrame(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(300.0, PositionToFrame(single, 1, 0, 100))
	assert.Equal(360.0, PositionToFrame(single, 2, 0, 0))
	assert.Equal(480.0, PositionToFrame(single, 2, 192, 40))
}

func TestPositionToSeconds(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(5.0, PositionToSeconds(single, 1, 0, 100))
	assert.Equal(6.0, PositionToSeconds(single, 2, 0, 0))
	assert.Equal(8.0, PositionToSeconds(single, 2, 192, 40))
}

func TestSecondsToTimeStr(t *testing.T) {
	assert := assert.New(t)
	assert.Equal("0:40", SecondsToTimeStr(40))
	assert.Equal("1:04", SecondsToTimeStr(64))
	assert.Equal("10:04", SecondsToTimeStr(604))
	assert.Equal("0:05", SecondsToTimeStr(5.7))
	assert.Equal("0:00", SecondsToTimeStr(0))
}

func TestSecondsToTimeStrClampsUnusableInput(t *testing.T) {
	assert := assert.New(t)
	assert.Equal("0:00", SecondsToTimeStr(-1))
	assert.Equal("0:00", SecondsToTimeStr(-0.5))
	assert.Equal("0:00", SecondsToTimeStr(math.NaN()))
	assert.Equal("0:00", SecondsToTimeStr(math.Inf(1)))
	assert.Equal("0:00", SecondsToTimeStr(math.Inf(-1)))
}

func TestSplitsSpanAtTempoChange(t *testing.T) {
	assert := assert.New(t)
	// 120 bpm is 0.625 frames per unit, 240 bpm is 0.3125
	assert.Equal(60.0, PositionToFrame(changing, 0, 0, 0))
	assert.Equal(300.0, PositionToFrame(changing, 1, 0, 0))
	assert.Equal(420.0, PositionToFrame(changing, 1, 192, 0))
	assert.Equal(450.0, PositionToFrame(changing, 1, 288, 0))
	assert.Equal(480.0, PositionToFrame(changing, 2, 0, 0))
	assert.Equal(8.0, PositionToSeconds(changing, 2, 0, 0))
}

func TestSegmentOrderDoesNotMatter(t *testing.T) {
	reversed := []model.TimingSegment{changing[1], changing[0]}
	assert.Equal(t, PositionToFrame(changing, 3, 100, 200), PositionToFrame(reversed, 3, 100, 200))
}

func TestLaterLabelWinsAtSameStart(t *testing.T) {
	segments := []model.TimingSegment{
		{Label: 2, StartPosition: 0, Bpm: 240},
		{Label: 1, StartPosition: 0, Bpm: 120},
	}
	assert.Equal(t, 30.0, PositionToFrame(segments, 0, 0, 0))
}

func TestFallsBackToEarliestSegment(t *testing.T) {
	segments := []model.TimingSegment{{Label: 1, StartPosition: 96, Bpm: 120}}
	assert.Equal(t, 60.0, PositionToFrame(segments, 0, 0, 0))
	assert.Equal(t, 0.0, PositionToFrame(segments, 0, -96, 0))
}

func TestEmptySegmentsUseDefaultBpm(t *testing.T) {
	// 96 units at 140 bpm
	assert.Equal(t, 51.4, PositionToFrame(nil, 0, 0, 0))
}

func TestRoundFrame(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{123.456, 123.5},
		{99999.94, 99999.9},
		{100000.4, 100000},
		{250000.5, 250001},
	}
	for _, c := range cases {
		t.Run(fmt.Sprintf("%v", c.in), func(t *testing.T) {
			assert.Equal(t, c.want, RoundFrame(c.in))
		})
	}
}

func TestMonotonic(t *testing.T) {
	segments := []model.TimingSegment{
		{Label: 1, StartPosition: 0, Bpm: 150},
		{Label: 2, StartPosition: 200, Bpm: 75.5},
		{Label: 3, StartPosition: 900, Bpm: 310},
		{Label: 4, StartPosition: 1400, Bpm: 90},
	}

	assert := assert.New(t)
	prevFrame, prevSeconds := -1.0, -1.0
	for page := 0; page < 6; page++ {
		for position := 0; position < 384; position += 8 {
			frame := PositionToFrame(segments, page, float64(position), 200)
			seconds := PositionToSeconds(segments, page, float64(position), 200)
			assert.GreaterOrEqual(frame, prevFrame)
			assert.GreaterOrEqual(seconds, prevSeconds)
			prevFrame, prevSeconds = frame, seconds
		}
	}

	for position := 0; position < 384; position += 48 {
		prev := -1.0
		for page := 0; page < 6; page++ {
			frame := PositionToFrame(segments, page, float64(position), 0)
			assert.Greater(frame, prev)
			prev = frame
		}
	}
}

func TestDescribe(t *testing.T) {
	p := Describe(single, 1, 0, 100)

	assert := assert.New(t)
	assert.Equal(300.0, p.Frame)
	assert.Equal(5.0, p.Seconds)
	assert.Equal("0:05", p.Time)
	assert.Equal("300\n[0:05]", p.Label)
}
