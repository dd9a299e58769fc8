package entities

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
)

// Room is a named, dimensioned container of products inside an estimate.
//
// Products are always kept keyed by product id. Suggestions are replaced
// wholesale whenever the product set changes.
type Room struct {
	ID                 string     `json:"id"`
	Name               string     `json:"name"`
	Width              float64    `json:"width"`
	Length             float64    `json:"length"`
	Products           ProductMap `json:"products"`
	ProductSuggestions []Product  `json:"product_suggestions"`
	Totals             *Totals    `json:"totals,omitempty"`
}

// Area returns width x length in square meters.
func (r Room) Area() float64 {
	return decimal.NewFromFloat(r.Width).Mul(decimal.NewFromFloat(r.Length)).Round(4).InexactFloat64()
}

// ProductIDs lists the ids of the room's products in insertion order.
func (r Room) ProductIDs() []string {
	return r.Products.Keys()
}

// RecalculateTotals sums the totals of every product in the room.
func (r *Room) RecalculateTotals() {
	minTotal, maxTotal := decimal.Zero, decimal.Zero
	for _, p := range r.Products.Values() {
		t := p.Totals()
		minTotal = minTotal.Add(decimal.NewFromFloat(t.MinTotal))
		maxTotal = maxTotal.Add(decimal.NewFromFloat(t.MaxTotal))
	}
	r.Totals = newTotals(minTotal, maxTotal)
}

// RoomMap keys rooms by RoomID. Older documents stored rooms as a list; those
// are keyed by each room's id, or by list index when the id is missing.
type RoomMap map[string]Room

func (m *RoomMap) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*m = RoomMap{}
		return nil
	}

	switch trimmed[0] {
	case '[':
		var list []Room
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return err
		}
		out := make(RoomMap, len(list))
		for i, r := range list {
			if r.ID == "" {
				r.ID = strconv.Itoa(i)
			}
			out[r.ID] = r
		}
		*m = out
		return nil
	case '{':
		var raw map[string]Room
		if err := json.Unmarshal(trimmed, &raw); err != nil {
			return err
		}
		out := make(RoomMap, len(raw))
		for key, r := range raw {
			if r.ID == "" {
				r.ID = key
			}
			out[key] = r
		}
		*m = out
		return nil
	default:
		return fmt.Errorf("rooms: unexpected json value %q", string(trimmed[:1]))
	}
}
