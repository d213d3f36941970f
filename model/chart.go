package model

import "github.com/jsphweid/dosrevive/constants"

type TimingSegment struct {
	Label int `json:"label"`
	// chart-global coordinate, page p covers [p*384, (p+1)*384)
	StartPosition int     `json:"startPosition"`
	Bpm           float64 `json:"bpm"`
}

type Freeze struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

type PageScore struct {
	// one slice per lane, ascending
	Notes   [][]int    `json:"notes"`
	Freezes [][]Freeze `json:"freezes"`

	// legacy page-local block count, 0 when the page uses the default
	BlockNum int `json:"blockNum,omitempty"`
}

type Chart struct {
	BlankFrame  int             `json:"blankFrame"`
	Timings     []TimingSegment `json:"timings"`
	ScoreNumber int             `json:"scoreNumber"`
	Pages       []PageScore     `json:"pages"`
}

func NewPageScore(keyNum int) PageScore {
	p := PageScore{
		Notes:   make([][]int, keyNum),
		Freezes: make([][]Freeze, keyNum),
	}
	for i := 0; i < keyNum; i++ {
		p.Notes[i] = []int{}
		p.Freezes[i] = []Freeze{}
	}
	return p
}

// Size is the number of symbolic units the page spans.
func (p PageScore) Size() int {
	if p.BlockNum > 0 {
		return p.BlockNum * constants.QuarterInterval
	}
	return constants.VerticalSize
}

// NewChart returns the blank chart used when authoring a new file.
func NewChart(keyNum int) *Chart {
	return &Chart{
		BlankFrame: constants.DefaultBlankFrame,
		Timings: []TimingSegment{
			{Label: 1, StartPosition: 0, Bpm: constants.DefaultBPM},
		},
		ScoreNumber: constants.DefaultScoreNumber,
		Pages:       []PageScore{NewPageScore(keyNum)},
	}
}
