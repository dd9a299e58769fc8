package response

import (
	"sort"
	"time"

	"product_estimator/internal/domain/entities"
	"product_estimator/internal/usecase"
)

type TotalsResponse struct {
	MinTotal float64 `json:"min_total"`
	MaxTotal float64 `json:"max_total"`
}

func fromTotals(t *entities.Totals) TotalsResponse {
	if t == nil {
		return TotalsResponse{}
	}
	return TotalsResponse{MinTotal: t.MinTotal, MaxTotal: t.MaxTotal}
}

// EstimateResponse lists rooms ordered by name so the UI gets a stable order.
type EstimateResponse struct {
	ID     string         `json:"id"`
	Name   string         `json:"name"`
	Rooms  []RoomResponse `json:"rooms"`
	Totals TotalsResponse `json:"totals"`
}

type RoomResponse struct {
	ID                 string             `json:"id"`
	Name               string             `json:"name"`
	Width              float64            `json:"width"`
	Length             float64            `json:"length"`
	Products           []entities.Product `json:"products"`
	ProductSuggestions []entities.Product `json:"product_suggestions"`
	Totals             TotalsResponse     `json:"totals"`
}

func FromEstimate(e entities.Estimate) EstimateResponse {
	rooms := make([]entities.Room, 0, len(e.Rooms))
	for _, r := range e.Rooms {
		rooms = append(rooms, r)
	}
	sort.Slice(rooms, func(i, j int) bool {
		if rooms[i].Name != rooms[j].Name {
			return rooms[i].Name < rooms[j].Name
		}
		return rooms[i].ID < rooms[j].ID
	})
	return EstimateResponse{
		ID:     e.ID,
		Name:   e.Name,
		Rooms:  FromRooms(rooms),
		Totals: fromTotals(e.Totals),
	}
}

func FromEstimates(list []entities.Estimate) []EstimateResponse {
	out := make([]EstimateResponse, 0, len(list))
	for _, e := range list {
		out = append(out, FromEstimate(e))
	}
	return out
}

func FromRoom(r entities.Room) RoomResponse {
	return RoomResponse{
		ID:                 r.ID,
		Name:               r.Name,
		Width:              r.Width,
		Length:             r.Length,
		Products:           r.Products.Values(),
		ProductSuggestions: productList(r.ProductSuggestions),
		Totals:             fromTotals(r.Totals),
	}
}

func FromRooms(list []entities.Room) []RoomResponse {
	out := make([]RoomResponse, 0, len(list))
	for _, r := range list {
		out = append(out, FromRoom(r))
	}
	return out
}

// ProductResultResponse is the body of a successful add or replace.
type ProductResultResponse struct {
	EstimateID       string             `json:"estimate_id"`
	RoomID           string             `json:"room_id"`
	Product          entities.Product   `json:"product"`
	Suggestions      []entities.Product `json:"suggestions"`
	SuggestionStatus string             `json:"suggestion_status"`
	EstimateTotals   TotalsResponse     `json:"estimate_totals"`
	RoomTotals       TotalsResponse     `json:"room_totals"`
}

func FromProductResult(r usecase.ProductResult) ProductResultResponse {
	return ProductResultResponse{
		EstimateID:       r.EstimateID,
		RoomID:           r.RoomID,
		Product:          r.Product,
		Suggestions:      productList(r.Suggestions),
		SuggestionStatus: string(r.SuggestionStatus),
		EstimateTotals:   fromTotals(&r.EstimateTotals),
		RoomTotals:       fromTotals(&r.RoomTotals),
	}
}

// ConflictResponse is the details payload of a primary category conflict.
type ConflictResponse struct {
	PrimaryConflict     bool   `json:"primary_conflict"`
	EstimateID          string `json:"estimate_id"`
	RoomID              string `json:"room_id"`
	ExistingProductID   string `json:"existing_product_id"`
	ExistingProductName string `json:"existing_product_name"`
	NewProductID        string `json:"new_product_id"`
	NewProductName      string `json:"new_product_name"`
}

func FromConflict(r usecase.ProductResult) ConflictResponse {
	out := ConflictResponse{PrimaryConflict: true, EstimateID: r.EstimateID, RoomID: r.RoomID}
	if r.Conflict != nil {
		out.ExistingProductID = r.Conflict.ExistingProductID
		out.ExistingProductName = r.Conflict.ExistingProductName
		out.NewProductID = r.Conflict.NewProductID
		out.NewProductName = r.Conflict.NewProductName
	}
	return out
}

type RemovalResponse struct {
	EstimateID       string             `json:"estimate_id"`
	RoomID           string             `json:"room_id"`
	ProductID        string             `json:"product_id"`
	Removed          bool               `json:"removed"`
	Suggestions      []entities.Product `json:"suggestions"`
	SuggestionStatus string             `json:"suggestion_status"`
	EstimateTotals   TotalsResponse     `json:"estimate_totals"`
	RoomTotals       TotalsResponse     `json:"room_totals"`
}

func FromRemoval(r usecase.RemovalResult) RemovalResponse {
	return RemovalResponse{
		EstimateID:       r.EstimateID,
		RoomID:           r.RoomID,
		ProductID:        r.ProductID,
		Removed:          r.Removed,
		Suggestions:      productList(r.Suggestions),
		SuggestionStatus: string(r.SuggestionStatus),
		EstimateTotals:   fromTotals(&r.EstimateTotals),
		RoomTotals:       fromTotals(&r.RoomTotals),
	}
}

type CustomerDetailsResponse struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Postcode string `json:"postcode"`
}

func FromCustomerDetails(d entities.CustomerDetails) CustomerDetailsResponse {
	return CustomerDetailsResponse{Name: d.Name, Email: d.Email, Phone: d.Phone, Postcode: d.Postcode}
}

// SyncEventResponse is one server-sent event of the background sync stream.
type SyncEventResponse struct {
	Task   string `json:"task"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
	At     string `json:"at"`
}

func FromSyncEvent(ev usecase.SyncEvent) SyncEventResponse {
	out := SyncEventResponse{
		Task:   ev.Task,
		Status: string(ev.Status),
		At:     ev.At.UTC().Format(time.RFC3339),
	}
	if ev.Err != nil {
		out.Error = ev.Err.Error()
	}
	return out
}

func productList(list []entities.Product) []entities.Product {
	if list == nil {
		return []entities.Product{}
	}
	return list
}
