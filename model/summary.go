package model

type ChartSummary struct {
	Id          string         `json:"id"`
	Path        string         `json:"path,omitempty"`
	ScoreNumber int            `json:"scoreNumber"`
	NumPages    int            `json:"numPages"`
	NumNotes    int            `json:"numNotes"`
	NumFreezes  int            `json:"numFreezes"`
	NumChords   int            `json:"numChords"`
	ChordCounts map[string]int `json:"chordCounts"`
	Bpms        []float64      `json:"bpms"`
	Seconds     float64        `json:"seconds"`
	Length      string         `json:"length"`
}
