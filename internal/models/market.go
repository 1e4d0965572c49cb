package models

import "time"

// Quote represents a single instrument in the live market view.
// The tick simulator mutates Price and ObservedAt in place; PercentChange
// and Volume are seeded once and only change when a new seed list is loaded.
type Quote struct {
	Symbol        string    `json:"symbol" yaml:"symbol"`
	Price         float64   `json:"price" yaml:"price"`
	PercentChange float64   `json:"percentChange" yaml:"percentChange"`
	Volume        int64     `json:"volume" yaml:"volume"`
	ObservedAt    time.Time `json:"observedAt" yaml:"-"`
}

// QuotesResponse is the payload for quote list requests and broadcasts.
type QuotesResponse struct {
	Quotes []Quote `json:"quotes"`
}
