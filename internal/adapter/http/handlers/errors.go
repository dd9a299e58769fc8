package handlers

import (
	"errors"
	"net/http"

	"product_estimator/internal/usecase"
	"product_estimator/internal/usecase/interfaces"
	"product_estimator/pkg"

	"github.com/gin-gonic/gin"
)

var (
	errInvalidPayload = pkg.NewDomainErrorSimple("INVALID_PAYLOAD", "Invalid request payload", http.StatusBadRequest)
	errInvalidQuery   = pkg.NewDomainErrorSimple("INVALID_QUERY", "Invalid query parameter", http.StatusBadRequest)
)

func mapEstimateDataError(err error) *pkg.AppError {
	var dup *usecase.DuplicateProductError
	var ajaxErr *interfaces.AjaxError

	switch {
	case errors.Is(err, usecase.ErrInvalidEstimateID),
		errors.Is(err, usecase.ErrInvalidEstimateName),
		errors.Is(err, usecase.ErrInvalidRoomID),
		errors.Is(err, usecase.ErrInvalidRoomName),
		errors.Is(err, usecase.ErrInvalidRoomDimensions),
		errors.Is(err, usecase.ErrInvalidProductID),
		errors.Is(err, usecase.ErrInvalidReplaceType),
		errors.Is(err, usecase.ErrInvalidCustomerData):
		return pkg.NewDomainError("INVALID_REQUEST", err.Error(), err, http.StatusBadRequest)
	case errors.Is(err, usecase.ErrEstimateNotFound):
		return pkg.NewDomainErrorSimple("ESTIMATE_NOT_FOUND", "Estimate not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrRoomNotFound):
		return pkg.NewDomainErrorSimple("ROOM_NOT_FOUND", "Room not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrProductNotFound):
		return pkg.NewDomainErrorSimple("PRODUCT_NOT_FOUND", "Product not found", http.StatusNotFound)
	case errors.As(err, &dup):
		return pkg.NewDomainError("DUPLICATE_PRODUCT", "Product already exists in this room", err, http.StatusConflict).
			WithDetails(gin.H{"product_id": dup.ProductID, "room_id": dup.RoomID, "in_flight": dup.InFlight})
	case errors.Is(err, usecase.ErrCriticalProductData):
		return pkg.NewDomainError("PRODUCT_DATA_UNAVAILABLE", "Product data could not be retrieved", err, http.StatusBadGateway)
	case errors.As(err, &ajaxErr):
		return pkg.NewDomainError("UPSTREAM_REJECTED", "The store rejected the request", err, http.StatusBadGateway).
			WithDetails(gin.H{"action": ajaxErr.Action, "message": ajaxErr.Data.Message})
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}

func writeError(c *gin.Context, err error) {
	appErr := mapEstimateDataError(err)
	c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
}
