package interfaces

import (
	"context"

	"product_estimator/internal/domain/entities"
)

// ReplaceType selects which slot a product replacement targets.
type ReplaceType string

const (
	ReplaceTypeMain               ReplaceType = "main"
	ReplaceTypeAdditionalProducts ReplaceType = "additional_products"
)

// IEstimateRepository abstracts the persisted estimate document.
//
// Every mutation is a full load -> mutate -> save cycle. Absence and rejected
// writes are reported through bool returns, never errors:
//   - Add* returns false when the parent is missing or the product already exists
//   - Remove* returns false when the target is missing
//   - nil/false suggestions mean the room is missing or suggestions are disabled

type IEstimateRepository interface {
	LoadDocument(ctx context.Context) entities.EstimateDocument

	AddEstimate(ctx context.Context, e entities.Estimate) string
	GetEstimate(ctx context.Context, id string) (entities.Estimate, bool)
	ListEstimates(ctx context.Context) []entities.Estimate
	UpdateEstimateName(ctx context.Context, id, name string) bool
	RemoveEstimate(ctx context.Context, id string) bool

	AddRoom(ctx context.Context, estimateID string, r entities.Room) (string, bool)
	GetRoom(ctx context.Context, estimateID, roomID string) (entities.Room, bool)
	UpdateRoomName(ctx context.Context, estimateID, roomID, name string) bool
	RemoveRoom(ctx context.Context, estimateID, roomID string) bool

	AddProductToRoom(ctx context.Context, estimateID, roomID string, p entities.Product) bool
	RemoveProductFromRoom(ctx context.Context, estimateID, roomID string, productIndex int, productID string) bool
	ReplaceProductInRoom(ctx context.Context, estimateID, roomID, oldProductID, newProductID string, p entities.Product, replaceType ReplaceType, parentProductID string) bool

	AddSuggestionsToRoom(ctx context.Context, suggestions []entities.Product, estimateID, roomID string) ([]entities.Product, bool)
	GetSuggestionsForRoom(ctx context.Context, estimateID, roomID string) ([]entities.Product, bool)
	ClearSuggestionsForRoom(ctx context.Context, estimateID, roomID string) bool

	UpdateCustomerDetails(ctx context.Context, d entities.CustomerDetails)
	GetCustomerDetails(ctx context.Context) (entities.CustomerDetails, bool)
	ClearCustomerDetails(ctx context.Context)
	ClearAll(ctx context.Context)
}
