package handlers

import (
	"net/http"
	"strconv"
	"strings"

	request "product_estimator/internal/adapter/http/dto/request"
	response "product_estimator/internal/adapter/http/dto/response"
	"product_estimator/internal/usecase"
	"product_estimator/pkg"

	"github.com/gin-gonic/gin"
)

// ProductHandler serves the product flows of a room. A primary category
// conflict is not an error for the use case; it is answered with 409 and the
// conflicting pair in details so the UI can offer a replacement.
type ProductHandler struct {
	usecase usecase.IEstimateDataUseCase
}

func NewProductHandler(uc usecase.IEstimateDataUseCase) *ProductHandler {
	return &ProductHandler{usecase: uc}
}

// AddProduct godoc
// @Summary Add a product to a room
// @Tags Products
// @Accept json
// @Produce json
// @Param estimate_id path string true "Estimate ID"
// @Param room_id path string true "Room ID"
// @Param product body request.AddProductRequest true "Product"
// @Success 201 {object} response.ProductResultResponse
// @Failure 409 {object} pkg.HTTPError "Duplicate product or primary category conflict"
// @Failure 502 {object} pkg.HTTPError "Product data unavailable"
// @Router /estimates/{estimate_id}/rooms/{room_id}/products [post]
func (h *ProductHandler) AddProduct(c *gin.Context) {
	var payload request.AddProductRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidPayload.HTTPStatus, errInvalidPayload.ToHTTPError())
		return
	}

	res, err := h.usecase.AddProductToRoom(c.Request.Context(), c.Param("estimate_id"), c.Param("room_id"), payload.ResolveProductID())
	h.writeProductResult(c, res, err, http.StatusCreated)
}

// ReplaceProduct godoc
// @Summary Replace a product in a room
// @Description replace_type is main (default) or additional_products; the latter needs parent_product_id
// @Tags Products
// @Accept json
// @Produce json
// @Param estimate_id path string true "Estimate ID"
// @Param room_id path string true "Room ID"
// @Param product_id path string true "Product being replaced"
// @Param replacement body request.ReplaceProductRequest true "Replacement"
// @Success 200 {object} response.ProductResultResponse
// @Failure 409 {object} pkg.HTTPError
// @Failure 502 {object} pkg.HTTPError
// @Router /estimates/{estimate_id}/rooms/{room_id}/products/{product_id}/replace [put]
func (h *ProductHandler) ReplaceProduct(c *gin.Context) {
	var payload request.ReplaceProductRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidPayload.HTTPStatus, errInvalidPayload.ToHTTPError())
		return
	}

	in := payload.ToInput(c.Param("estimate_id"), c.Param("room_id"), c.Param("product_id"))
	res, err := h.usecase.ReplaceProductInRoom(c.Request.Context(), in)
	h.writeProductResult(c, res, err, http.StatusOK)
}

func (h *ProductHandler) writeProductResult(c *gin.Context, res usecase.ProductResult, err error, status int) {
	if err != nil {
		writeError(c, err)
		return
	}
	if res.HasConflict() {
		appErr := pkg.NewDomainErrorSimple("PRIMARY_CATEGORY_CONFLICT", "The room already has a primary category product", http.StatusConflict).
			WithDetails(response.FromConflict(res))
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(status, response.FromProductResult(res))
}

// RemoveProduct godoc
// @Summary Remove a product from a room
// @Description The product is removed by id; index is informational only
// @Tags Products
// @Produce json
// @Param estimate_id path string true "Estimate ID"
// @Param room_id path string true "Room ID"
// @Param product_id path string true "Product ID"
// @Param index query int false "Position the UI displayed the product at"
// @Success 200 {object} response.RemovalResponse
// @Failure 404 {object} pkg.HTTPError
// @Router /estimates/{estimate_id}/rooms/{room_id}/products/{product_id} [delete]
func (h *ProductHandler) RemoveProduct(c *gin.Context) {
	index := -1
	if raw := strings.TrimSpace(c.Query("index")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(errInvalidQuery.HTTPStatus, errInvalidQuery.ToHTTPError())
			return
		}
		index = n
	}

	res, err := h.usecase.RemoveProductFromRoom(c.Request.Context(), c.Param("estimate_id"), c.Param("room_id"), index, c.Param("product_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromRemoval(res))
}

// GetSuggestions godoc
// @Summary Suggested products for a room
// @Tags Products
// @Produce json
// @Param estimate_id path string true "Estimate ID"
// @Param room_id path string true "Room ID"
// @Success 200 {array} entities.Product
// @Router /estimates/{estimate_id}/rooms/{room_id}/suggestions [get]
func (h *ProductHandler) GetSuggestions(c *gin.Context) {
	suggestions, err := h.usecase.GetSuggestionsForRoom(c.Request.Context(), c.Param("estimate_id"), c.Param("room_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, suggestions)
}

// GetSimilarProducts godoc
// @Summary Products similar to a catalog product
// @Tags Products
// @Produce json
// @Param product_id path string true "Product ID"
// @Param room_area query number false "Room area in square meters"
// @Success 200 {array} entities.Product
// @Failure 502 {object} pkg.HTTPError
// @Router /products/{product_id}/similar [get]
func (h *ProductHandler) GetSimilarProducts(c *gin.Context) {
	var area float64
	if raw := strings.TrimSpace(c.Query("room_area")); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			c.JSON(errInvalidQuery.HTTPStatus, errInvalidQuery.ToHTTPError())
			return
		}
		area = v
	}

	products, err := h.usecase.GetSimilarProducts(c.Request.Context(), c.Param("product_id"), area)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}
