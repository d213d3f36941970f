package model

// Chord is a set of lanes struck at the same position, a "jump".
type Chord struct {
	Page     int   `json:"page"`
	Position int   `json:"position"`
	Lanes    []int `json:"lanes"`
}
