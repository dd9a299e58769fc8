package usecase

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidEstimateID     = errors.New("invalid estimate id")
	ErrInvalidEstimateName   = errors.New("invalid estimate name")
	ErrInvalidRoomID         = errors.New("invalid room id")
	ErrInvalidRoomName       = errors.New("invalid room name")
	ErrInvalidRoomDimensions = errors.New("invalid room dimensions")
	ErrInvalidProductID      = errors.New("invalid product id")
	ErrInvalidReplaceType    = errors.New("invalid replace type")
	ErrInvalidCustomerData   = errors.New("invalid customer details")

	ErrEstimateNotFound = errors.New("estimate not found")
	ErrRoomNotFound     = errors.New("room not found")
	ErrProductNotFound  = errors.New("product not found")

	ErrDuplicateProduct    = errors.New("product already exists in room")
	ErrCriticalProductData = errors.New("product data unavailable")
)

// DuplicateProductError reports that the product is already in the room, or
// that an add/replace for the same product is still running (InFlight).
type DuplicateProductError struct {
	EstimateID string
	RoomID     string
	ProductID  string
	InFlight   bool
}

func (e *DuplicateProductError) Error() string {
	if e.InFlight {
		return fmt.Sprintf("product %s is already being added to room %s", e.ProductID, e.RoomID)
	}
	return fmt.Sprintf("product %s already exists in room %s", e.ProductID, e.RoomID)
}

func (e *DuplicateProductError) Is(target error) bool {
	return target == ErrDuplicateProduct
}
