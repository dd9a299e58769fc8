package handlers

import (
	"io"
	"net/http"

	request "product_estimator/internal/adapter/http/dto/request"
	response "product_estimator/internal/adapter/http/dto/response"
	"product_estimator/internal/usecase"
	"product_estimator/pkg"

	"github.com/gin-gonic/gin"
)

const syncEventsBuffer = 16

var errCustomerDetailsNotFound = pkg.NewDomainErrorSimple("CUSTOMER_DETAILS_NOT_FOUND", "No customer details stored", http.StatusNotFound)

// SessionHandler serves document level state: customer details, the
// storage reset and the background sync stream.
type SessionHandler struct {
	usecase usecase.IEstimateDataUseCase
}

func NewSessionHandler(uc usecase.IEstimateDataUseCase) *SessionHandler {
	return &SessionHandler{usecase: uc}
}

// GetCustomerDetails godoc
// @Summary Stored customer details
// @Tags Session
// @Produce json
// @Success 200 {object} response.CustomerDetailsResponse
// @Failure 404 {object} pkg.HTTPError
// @Router /customer-details [get]
func (h *SessionHandler) GetCustomerDetails(c *gin.Context) {
	d, ok := h.usecase.GetCustomerDetails(c.Request.Context())
	if !ok {
		c.JSON(errCustomerDetailsNotFound.HTTPStatus, errCustomerDetailsNotFound.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromCustomerDetails(d))
}

// UpdateCustomerDetails godoc
// @Summary Replace the customer details
// @Tags Session
// @Accept json
// @Produce json
// @Param details body request.CustomerDetailsRequest true "Customer details"
// @Success 200 {object} response.CustomerDetailsResponse
// @Failure 400 {object} pkg.HTTPError
// @Router /customer-details [put]
func (h *SessionHandler) UpdateCustomerDetails(c *gin.Context) {
	var payload request.CustomerDetailsRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidPayload.HTTPStatus, errInvalidPayload.ToHTTPError())
		return
	}

	d, err := h.usecase.UpdateCustomerDetails(c.Request.Context(), payload.ToEntity())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromCustomerDetails(d))
}

// ClearStorage godoc
// @Summary Delete every estimate and the customer details
// @Tags Session
// @Success 204
// @Router /storage [delete]
func (h *SessionHandler) ClearStorage(c *gin.Context) {
	h.usecase.ClearAllData(c.Request.Context())
	c.Status(http.StatusNoContent)
}

// ClearCache godoc
// @Summary Drop cached reads and cached server responses
// @Tags Session
// @Success 204
// @Router /cache [delete]
func (h *SessionHandler) ClearCache(c *gin.Context) {
	h.usecase.ClearCache()
	c.Status(http.StatusNoContent)
}

// SyncEvents godoc
// @Summary Stream background sync results
// @Tags Session
// @Produce text/event-stream
// @Success 200 {object} response.SyncEventResponse
// @Router /sync/events [get]
func (h *SessionHandler) SyncEvents(c *gin.Context) {
	events, cancel := h.usecase.SubscribeSyncEvents(syncEventsBuffer)
	defer cancel()

	ctx := c.Request.Context()
	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case ev, ok := <-events:
			if !ok {
				return false
			}
			c.SSEvent("sync", response.FromSyncEvent(ev))
			return true
		}
	})
}
