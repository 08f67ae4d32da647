package domain

import "time"

// RateQuote is the central bank key rate plus the lender's margin, both in
// annual percent.
type RateQuote struct {
	Rate      float64   `json:"rate"`
	KeyRate   float64   `json:"keyRate"`
	Margin    float64   `json:"margin"`
	FetchedAt time.Time `json:"fetchedAt"`
}
