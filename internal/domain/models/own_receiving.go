package models

import "time"

// OwnReceiving is a weight harvested from the farm's own field.
type OwnReceiving struct {
	ID        string    `json:"id"`
	Weight    float64   `json:"weight"`
	Timestamp time.Time `json:"timestamp"`
}
