package handlers

import (
	"net/http"

	request "product_estimator/internal/adapter/http/dto/request"
	response "product_estimator/internal/adapter/http/dto/response"
	"product_estimator/internal/usecase"

	"github.com/gin-gonic/gin"
)

// EstimateHandler serves estimates and their rooms.
type EstimateHandler struct {
	usecase usecase.IEstimateDataUseCase
}

func NewEstimateHandler(uc usecase.IEstimateDataUseCase) *EstimateHandler {
	return &EstimateHandler{usecase: uc}
}

// ListEstimates godoc
// @Summary List estimates
// @Description Every stored estimate, ordered by name, with rooms and totals
// @Tags Estimates
// @Produce json
// @Success 200 {array} response.EstimateResponse
// @Router /estimates [get]
func (h *EstimateHandler) ListEstimates(c *gin.Context) {
	c.JSON(http.StatusOK, response.FromEstimates(h.usecase.GetEstimatesData(c.Request.Context())))
}

// CreateEstimate godoc
// @Summary Create an estimate
// @Tags Estimates
// @Accept json
// @Produce json
// @Param estimate body request.EstimateRequest true "Estimate name"
// @Success 201 {object} response.EstimateResponse
// @Failure 400 {object} pkg.HTTPError
// @Router /estimates [post]
func (h *EstimateHandler) CreateEstimate(c *gin.Context) {
	var payload request.EstimateRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidPayload.HTTPStatus, errInvalidPayload.ToHTTPError())
		return
	}

	estimate, err := h.usecase.AddNewEstimate(c.Request.Context(), payload.ResolveName())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.FromEstimate(estimate))
}

// GetEstimate godoc
// @Summary Get an estimate
// @Tags Estimates
// @Produce json
// @Param estimate_id path string true "Estimate ID"
// @Success 200 {object} response.EstimateResponse
// @Failure 404 {object} pkg.HTTPError
// @Router /estimates/{estimate_id} [get]
func (h *EstimateHandler) GetEstimate(c *gin.Context) {
	estimate, err := h.usecase.GetEstimate(c.Request.Context(), c.Param("estimate_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromEstimate(estimate))
}

// RenameEstimate godoc
// @Summary Rename an estimate
// @Tags Estimates
// @Accept json
// @Produce json
// @Param estimate_id path string true "Estimate ID"
// @Param estimate body request.EstimateRequest true "New name"
// @Success 200 {object} response.EstimateResponse
// @Failure 400 {object} pkg.HTTPError
// @Failure 404 {object} pkg.HTTPError
// @Router /estimates/{estimate_id} [patch]
func (h *EstimateHandler) RenameEstimate(c *gin.Context) {
	var payload request.EstimateRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidPayload.HTTPStatus, errInvalidPayload.ToHTTPError())
		return
	}

	estimate, err := h.usecase.UpdateEstimateName(c.Request.Context(), c.Param("estimate_id"), payload.ResolveName())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromEstimate(estimate))
}

// DeleteEstimate godoc
// @Summary Delete an estimate and all its rooms
// @Tags Estimates
// @Param estimate_id path string true "Estimate ID"
// @Success 204
// @Failure 404 {object} pkg.HTTPError
// @Router /estimates/{estimate_id} [delete]
func (h *EstimateHandler) DeleteEstimate(c *gin.Context) {
	if err := h.usecase.RemoveEstimate(c.Request.Context(), c.Param("estimate_id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListRooms godoc
// @Summary List the rooms of an estimate
// @Tags Rooms
// @Produce json
// @Param estimate_id path string true "Estimate ID"
// @Success 200 {array} response.RoomResponse
// @Failure 404 {object} pkg.HTTPError
// @Router /estimates/{estimate_id}/rooms [get]
func (h *EstimateHandler) ListRooms(c *gin.Context) {
	rooms, err := h.usecase.GetRoomsForEstimate(c.Request.Context(), c.Param("estimate_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromRooms(rooms))
}

// CreateRoom godoc
// @Summary Add a room to an estimate
// @Tags Rooms
// @Accept json
// @Produce json
// @Param estimate_id path string true "Estimate ID"
// @Param room body request.RoomRequest true "Room"
// @Success 201 {object} response.RoomResponse
// @Failure 400 {object} pkg.HTTPError
// @Failure 404 {object} pkg.HTTPError
// @Router /estimates/{estimate_id}/rooms [post]
func (h *EstimateHandler) CreateRoom(c *gin.Context) {
	var payload request.RoomRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidPayload.HTTPStatus, errInvalidPayload.ToHTTPError())
		return
	}

	room, err := h.usecase.AddNewRoom(c.Request.Context(), c.Param("estimate_id"), payload.ToInput())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.FromRoom(room))
}

// RenameRoom godoc
// @Summary Rename a room
// @Tags Rooms
// @Accept json
// @Produce json
// @Param estimate_id path string true "Estimate ID"
// @Param room_id path string true "Room ID"
// @Param room body request.RenameRoomRequest true "New name"
// @Success 200 {object} response.RoomResponse
// @Router /estimates/{estimate_id}/rooms/{room_id} [patch]
func (h *EstimateHandler) RenameRoom(c *gin.Context) {
	var payload request.RenameRoomRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidPayload.HTTPStatus, errInvalidPayload.ToHTTPError())
		return
	}

	room, err := h.usecase.UpdateRoom(c.Request.Context(), c.Param("estimate_id"), c.Param("room_id"), payload.Name)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromRoom(room))
}

// DeleteRoom godoc
// @Summary Delete a room
// @Tags Rooms
// @Param estimate_id path string true "Estimate ID"
// @Param room_id path string true "Room ID"
// @Success 204
// @Router /estimates/{estimate_id}/rooms/{room_id} [delete]
func (h *EstimateHandler) DeleteRoom(c *gin.Context) {
	if err := h.usecase.RemoveRoom(c.Request.Context(), c.Param("estimate_id"), c.Param("room_id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
