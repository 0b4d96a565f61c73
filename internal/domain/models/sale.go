package models

import "time"

// Sale is a bulk disposal of stock, independent of individual receivings.
type Sale struct {
	ID        string    `json:"id"`
	Weight    float64   `json:"weight"`
	Price     float64   `json:"price"`
	Timestamp time.Time `json:"timestamp"`
}

// Amount returns weight multiplied by price.
func (s Sale) Amount() float64 {
	return s.Weight * s.Price
}
