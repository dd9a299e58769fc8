package entities

import (
	"github.com/shopspring/decimal"
)

// EstimateDocument is the whole persisted tree.
//
// Storage model:
//   - one JSON value under a single well-known key, written as a whole on every mutation
//   - estimates are keyed by EstimateID; insertion order is irrelevant
type EstimateDocument struct {
	Estimates       map[string]Estimate `json:"estimates"`
	CustomerDetails *CustomerDetails    `json:"customerDetails,omitempty"`
}

// NewEstimateDocument returns an empty document.
func NewEstimateDocument() EstimateDocument {
	return EstimateDocument{Estimates: map[string]Estimate{}}
}

// Normalize makes sure every container of the document is present.
func (d *EstimateDocument) Normalize() {
	if d.Estimates == nil {
		d.Estimates = map[string]Estimate{}
	}
	for id, e := range d.Estimates {
		if e.Rooms == nil {
			e.Rooms = RoomMap{}
		}
		for roomID, r := range e.Rooms {
			if r.ProductSuggestions == nil {
				r.ProductSuggestions = []Product{}
			}
			e.Rooms[roomID] = r
		}
		d.Estimates[id] = e
	}
}

// Estimate is one customer quote (a named container of rooms).
type Estimate struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Rooms  RoomMap `json:"rooms"`
	Totals *Totals `json:"totals,omitempty"`
}

// RecalculateTotals refreshes every room total and the estimate total.
func (e *Estimate) RecalculateTotals() {
	minTotal, maxTotal := decimal.Zero, decimal.Zero
	for id, r := range e.Rooms {
		r.RecalculateTotals()
		e.Rooms[id] = r
		minTotal = minTotal.Add(decimal.NewFromFloat(r.Totals.MinTotal))
		maxTotal = maxTotal.Add(decimal.NewFromFloat(r.Totals.MaxTotal))
	}
	e.Totals = newTotals(minTotal, maxTotal)
}

// Totals is a min/max price range.
type Totals struct {
	MinTotal float64 `json:"min_total"`
	MaxTotal float64 `json:"max_total"`
}

func newTotals(minTotal, maxTotal decimal.Decimal) *Totals {
	return &Totals{
		MinTotal: minTotal.Round(2).InexactFloat64(),
		MaxTotal: maxTotal.Round(2).InexactFloat64(),
	}
}

// CustomerDetails is stored at document level, independent of any estimate.
type CustomerDetails struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Postcode string `json:"postcode,omitempty"`
}

// IsZero reports whether no field was provided.
func (c CustomerDetails) IsZero() bool {
	return c == CustomerDetails{}
}
