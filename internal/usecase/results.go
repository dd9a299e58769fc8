package usecase

import (
	"product_estimator/internal/domain/entities"
	"product_estimator/internal/usecase/interfaces"
)

// SuggestionStatus says what happened to a room's suggestions during an operation.
type SuggestionStatus string

const (
	SuggestionsUpdated              SuggestionStatus = "updated"
	SuggestionsUpdateFailed         SuggestionStatus = "update_failed"
	SuggestionsDisabled             SuggestionStatus = "disabled"
	SuggestionsClearedDueToDisabled SuggestionStatus = "cleared_due_to_disabled"
)

// ProductConflict names the primary-category product already in the room and
// the one that was refused.
type ProductConflict struct {
	ExistingProductID   string
	ExistingProductName string
	NewProductID        string
	NewProductName      string
}

// ProductResult is returned by add and replace. When Conflict is set nothing
// was written.
type ProductResult struct {
	EstimateID       string
	RoomID           string
	Product          entities.Product
	Conflict         *ProductConflict
	Suggestions      []entities.Product
	SuggestionStatus SuggestionStatus
	EstimateTotals   entities.Totals
	RoomTotals       entities.Totals
}

func (r ProductResult) HasConflict() bool { return r.Conflict != nil }

// RemovalResult is returned by product removal. Suggestion problems are
// reported through SuggestionStatus, never as an error.
type RemovalResult struct {
	EstimateID       string
	RoomID           string
	ProductID        string
	Removed          bool
	Suggestions      []entities.Product
	SuggestionStatus SuggestionStatus
	EstimateTotals   entities.Totals
	RoomTotals       entities.Totals
}

type NewRoomInput struct {
	ID     string
	Name   string
	Width  float64
	Length float64
}

type ReplaceProductInput struct {
	EstimateID      string
	RoomID          string
	OldProductID    string
	NewProductID    string
	ReplaceType     interfaces.ReplaceType
	ParentProductID string
}
