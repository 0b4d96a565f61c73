package models

import "time"

// Record is one weighed and priced line item of a receiving.
type Record struct {
	Weight float64 `json:"weight" binding:"gte=0"`
	Price  float64 `json:"price" binding:"gte=0"`
}

// Sum returns weight multiplied by price.
func (r Record) Sum() float64 {
	return r.Weight * r.Price
}

// Receiving is one delivery event from a client.
//
// ClientID is the stored reference. Client is the resolved client at read
// time and stays nil when the reference no longer resolves.
type Receiving struct {
	ID          string    `json:"id"`
	ClientID    string    `json:"clientId"`
	Client      *Client   `json:"client"`
	Records     []Record  `json:"records"`
	Timestamp   time.Time `json:"timestamp"`
	TotalWeight float64   `json:"totalWeight"`
	TotalPrice  float64   `json:"totalPrice"`
}

// SetRecords replaces the records and recomputes both totals.
func (r *Receiving) SetRecords(records []Record) {
	r.Records = append([]Record(nil), records...)
	r.TotalWeight, r.TotalPrice = RecordTotals(r.Records)
}

// ClientName returns the resolved client name or an empty string.
func (r Receiving) ClientName() string {
	if r.Client == nil {
		return ""
	}
	return r.Client.Name
}

// RecordTotals sums weights and weight*price over records without rounding.
func RecordTotals(records []Record) (weight, price float64) {
	for _, rec := range records {
		weight += rec.Weight
		price += rec.Sum()
	}
	return weight, price
}
