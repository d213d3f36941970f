package summary

import (
	"github.com/jsphweid/dosrevive/chord"
	"github.com/jsphweid/dosrevive/model"
	"github.com/jsphweid/dosrevive/timing"
	"github.com/jsphweid/dosrevive/util"
)

func countNotes(chart *model.Chart) (notes []int, freezes []int) {
	for _, page := range chart.Pages {
		for lane := range page.Notes {
			notes = append(notes, len(page.Notes[lane]))
		}
		for lane := range page.Freezes {
			freezes = append(freezes, len(page.Freezes[lane]))
		}
	}
	return notes, freezes
}

// Create measures a chart. Its length runs to the end of the last page.
func Create(id string, chart *model.Chart) model.ChartSummary {
	notes, freezes := countNotes(chart)

	bpms := make([]float64, 0, len(chart.Timings))
	for _, t := range chart.Timings {
		bpms = append(bpms, t.Bpm)
	}

	last := len(chart.Pages) - 1
	end := chart.Pages[last].Size()
	chords := chord.GetChords(chart)
	seconds := timing.PositionToSeconds(chart.Timings, last, float64(end), chart.BlankFrame)

	return model.ChartSummary{
		Id:          id,
		ScoreNumber: chart.ScoreNumber,
		NumPages:    len(chart.Pages),
		NumNotes:    int(util.Sum(notes)),
		NumFreezes:  int(util.Sum(freezes)),
		NumChords:   len(chords),
		ChordCounts: chord.CountByKey(chords),
		Bpms:        bpms,
		Seconds:     seconds,
		Length:      timing.SecondsToTimeStr(seconds),
	}
}
