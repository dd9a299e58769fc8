package entities

import (
	"encoding/json"
	"testing"
)

func TestEstimate_RecalculateTotals(t *testing.T) {
	addons := NewProductMap(Product{ID: "a1", MinPriceTotal: 10.1, MaxPriceTotal: 20.2})
	room := Room{
		ID:       "room-1",
		Width:    4,
		Length:   3,
		Products: *NewProductMap(
			Product{ID: "101", MinPriceTotal: 100.2, MaxPriceTotal: 150.1, AdditionalProducts: addons},
			Product{ID: "note-1", Type: ProductTypeNote, MinPriceTotal: 999},
		),
	}
	e := Estimate{ID: "est-1", Rooms: RoomMap{"room-1": room, "room-2": {ID: "room-2"}}}

	e.RecalculateTotals()

	if e.Totals == nil || e.Totals.MinTotal != 110.3 || e.Totals.MaxTotal != 170.3 {
		t.Fatalf("unexpected estimate totals: %+v", e.Totals)
	}
	if got := e.Rooms["room-2"].Totals; got == nil || got.MinTotal != 0 {
		t.Fatalf("expected zero totals for empty room, got %+v", got)
	}
	if e.Rooms["room-1"].Area() != 12 {
		t.Fatalf("unexpected area %v", e.Rooms["room-1"].Area())
	}
}

func TestRoomMap_UnmarshalJSON(t *testing.T) {
	var e Estimate
	if err := json.Unmarshal([]byte(`{"id":"e","rooms":[{"name":"Kitchen"},{"id":"r2","name":"Bath"}]}`), &e); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.Rooms["0"].Name != "Kitchen" || e.Rooms["r2"].Name != "Bath" {
		t.Fatalf("unexpected rooms: %+v", e.Rooms)
	}

	if err := json.Unmarshal([]byte(`{"id":"e","rooms":{"k":{"name":"Hall"}}}`), &e); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.Rooms["k"].ID != "k" {
		t.Fatalf("expected id from key, got %+v", e.Rooms["k"])
	}
}

func TestEstimateDocument_Normalize(t *testing.T) {
	doc := EstimateDocument{Estimates: map[string]Estimate{"e": {ID: "e", Rooms: RoomMap{"r": {ID: "r"}}}}}
	doc.Normalize()
	if doc.Estimates["e"].Rooms["r"].ProductSuggestions == nil {
		t.Fatalf("expected suggestions slice")
	}

	var empty EstimateDocument
	empty.Normalize()
	if empty.Estimates == nil {
		t.Fatalf("expected estimates map")
	}
	if !(CustomerDetails{}).IsZero() {
		t.Fatalf("expected zero customer details")
	}
}
