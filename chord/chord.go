package chord

import (
	"fmt"
	"sort"

	"github.com/jsphweid/dosrevive/model"
	"github.com/jsphweid/dosrevive/util"
)

func CreateChordKey(lanes []int) string {
	sort.Ints(lanes)
	var res string
	for i, lane := range lanes {
		res += fmt.Sprintf("%v", lane)
		if i < len(lanes)-1 {
			res += "-"
		}
	}
	return res
}

// GetChords finds positions where two or more lanes start a note or a
// freeze, in page then position order.
func GetChords(chart *model.Chart) []model.Chord {
	var chords []model.Chord
	for p, page := range chart.Pages {
		pressed := make(map[int]map[int]bool)
		press := func(pos, lane int) {
			if pressed[pos] == nil {
				pressed[pos] = make(map[int]bool)
			}
			pressed[pos][lane] = true
		}
		for lane, positions := range page.Notes {
			for _, pos := range positions {
				press(pos, lane)
			}
		}
		for lane, freezes := range page.Freezes {
			for _, f := range freezes {
				press(f.Start, lane)
			}
		}

		for _, pos := range util.GetKeysSorted(pressed) {
			if len(pressed[pos]) < 2 {
				continue
			}
			lanes := util.GetKeysSorted(pressed[pos])
			chords = append(chords, model.Chord{Page: p, Position: pos, Lanes: lanes})
		}
	}
	return chords
}

// CountByKey tallies chords by lane combination.
func CountByKey(chords []model.Chord) map[string]int {
	res := make(map[string]int)
	for _, c := range chords {
		res[CreateChordKey(c.Lanes)] += 1
	}
	return res
}
