package request

import (
	"strings"

	"product_estimator/internal/domain/entities"
	"product_estimator/internal/usecase"
	"product_estimator/internal/usecase/interfaces"
)

// EstimateRequest creates or renames an estimate.
type EstimateRequest struct {
	Name string `json:"name" binding:"required"`
}

func (r EstimateRequest) ResolveName() string {
	return strings.TrimSpace(r.Name)
}

// RoomRequest creates a room. ID is optional; one is generated when empty.
type RoomRequest struct {
	ID     string  `json:"id,omitempty"`
	Name   string  `json:"name" binding:"required"`
	Width  float64 `json:"width"`
	Length float64 `json:"length"`
}

func (r RoomRequest) ToInput() usecase.NewRoomInput {
	return usecase.NewRoomInput{
		ID:     strings.TrimSpace(r.ID),
		Name:   strings.TrimSpace(r.Name),
		Width:  r.Width,
		Length: r.Length,
	}
}

// RenameRoomRequest only carries the new room name; dimensions are fixed at creation.
type RenameRoomRequest struct {
	Name string `json:"name" binding:"required"`
}

// AddProductRequest accepts the product id as a JSON string or number.
type AddProductRequest struct {
	ProductID entities.ProductID `json:"product_id" binding:"required"`
}

func (r AddProductRequest) ResolveProductID() string {
	return strings.TrimSpace(r.ProductID.String())
}

// ReplaceProductRequest swaps the product at :product_id for NewProductID.
// ParentProductID is required when ReplaceType is additional_products.
type ReplaceProductRequest struct {
	NewProductID    entities.ProductID `json:"new_product_id" binding:"required"`
	ReplaceType     string             `json:"replace_type"`
	ParentProductID entities.ProductID `json:"parent_product_id,omitempty"`
}

// ResolveReplaceType defaults to a main replacement.
func (r ReplaceProductRequest) ResolveReplaceType() interfaces.ReplaceType {
	t := strings.TrimSpace(r.ReplaceType)
	if t == "" {
		return interfaces.ReplaceTypeMain
	}
	return interfaces.ReplaceType(t)
}

func (r ReplaceProductRequest) ToInput(estimateID, roomID, oldProductID string) usecase.ReplaceProductInput {
	return usecase.ReplaceProductInput{
		EstimateID:      estimateID,
		RoomID:          roomID,
		OldProductID:    strings.TrimSpace(oldProductID),
		NewProductID:    strings.TrimSpace(r.NewProductID.String()),
		ReplaceType:     r.ResolveReplaceType(),
		ParentProductID: strings.TrimSpace(r.ParentProductID.String()),
	}
}

type CustomerDetailsRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Postcode string `json:"postcode"`
}

func (r CustomerDetailsRequest) ToEntity() entities.CustomerDetails {
	return entities.CustomerDetails{
		Name:     r.Name,
		Email:    r.Email,
		Phone:    r.Phone,
		Postcode: r.Postcode,
	}
}
