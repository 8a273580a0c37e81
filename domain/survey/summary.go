package survey

// DimensionSummary is one dimension's tally with its derived yes rate
type DimensionSummary struct {
	Dimension Dimension `json:"dimension"`
	Yes       int       `json:"yes"`
	No        int       `json:"no"`
	Answered  int       `json:"answered"`
	YesRate   float64   `json:"yesRate"`
}

// Summary describes an aggregate as rates. Dimensions follow chart order.
type Summary struct {
	TotalResponses int                `json:"totalResponses"`
	Dimensions     []DimensionSummary `json:"dimensions"`
	// MeanYesRate and YesRateStdDev only consider dimensions with at least one answer.
	MeanYesRate   float64 `json:"meanYesRate"`
	YesRateStdDev float64 `json:"yesRateStdDev"`
}
