package models

// StatsSummary aggregates a selection of receivings and sales.
type StatsSummary struct {
	TotalWeight float64 `json:"totalWeight"`
	TotalPrice  float64 `json:"totalPrice"`
	SoldWeight  float64 `json:"soldWeight"`
	Earned      float64 `json:"earned"`
	MinPrice    float64 `json:"minPrice"`
	MaxPrice    float64 `json:"maxPrice"`
	AvgPrice    float64 `json:"avgPrice"`
}

// RemainingWeight is the collected weight that has not been sold yet.
func (s StatsSummary) RemainingWeight() float64 {
	return s.TotalWeight - s.SoldWeight
}

// Profit is what sales earned minus what receivings cost.
func (s StatsSummary) Profit() float64 {
	return s.Earned - s.TotalPrice
}
