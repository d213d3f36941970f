package model

type DecodeRequestBody struct {
	Text    string `json:"text"`
	KeyKind string `json:"keyKind,omitempty"`
}

type CreateChartResponse struct {
	Id      string       `json:"id"`
	Chart   *Chart       `json:"chart"`
	Summary ChartSummary `json:"summary"`
}

type PositionResponse struct {
	Page     int     `json:"page"`
	Position float64 `json:"position"`
	Frame    float64 `json:"frame"`
	Seconds  float64 `json:"seconds"`
	Time     string  `json:"time"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
}
