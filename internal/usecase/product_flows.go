package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	"product_estimator/internal/domain/entities"
	"product_estimator/internal/usecase/interfaces"

	"github.com/goccy/go-json"
)

// errServerPrimaryConflict is the server saying the product clashes with a
// primary-category product already in the room.
var (
	errServerPrimaryConflict = errors.New("server reported primary category conflict")
	// errStaleSuggestions marks a cached copy served after the live request failed.
	errStaleSuggestions = errors.New("suggestions served from cache after a failed request")
)

type productDataResponse struct {
	ProductData           json.RawMessage    `json:"product_data"`
	RoomSuggestedProducts []entities.Product `json:"room_suggested_products"`
}

// AddProductToRoom fetches authoritative product data, applies the
// primary-category rule and stores the product. Nothing is written before the
// fetch succeeds.
func (u *EstimateDataUseCase) AddProductToRoom(ctx context.Context, estimateID, roomID, productID string) (ProductResult, error) {
	estimateID, roomID, err := validateRoomRef(estimateID, roomID)
	if err != nil {
		return ProductResult{}, err
	}
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return ProductResult{}, ErrInvalidProductID
	}

	room, err := u.getRoom(ctx, estimateID, roomID)
	if err != nil {
		return ProductResult{}, err
	}
	if room.Products.Has(productID) {
		return ProductResult{}, &DuplicateProductError{EstimateID: estimateID, RoomID: roomID, ProductID: productID}
	}

	release, err := u.acquire(estimateID, roomID, productID)
	if err != nil {
		return ProductResult{}, err
	}
	defer release()

	prospective := append(room.ProductIDs(), productID)
	product, suggestions, err := u.fetchProductData(ctx, estimateID, room, productID, prospective)
	if errors.Is(err, errServerPrimaryConflict) {
		return u.conflictResult(estimateID, roomID, room, entities.Product{ID: entities.ProductID(productID)}, ""), nil
	}
	if err != nil {
		return ProductResult{}, err
	}

	// the room may have changed while the fetch was running
	room, err = u.getRoom(ctx, estimateID, roomID)
	if err != nil {
		return ProductResult{}, err
	}
	if c := findPrimaryConflict(room, product, ""); c != nil {
		log.Printf("[product][usecase] primary category conflict room_id=%s existing=%s new=%s", roomID, c.ExistingProductID, c.NewProductID)
		return ProductResult{EstimateID: estimateID, RoomID: roomID, Product: product, Conflict: c}, nil
	}

	if !u.repo.AddProductToRoom(ctx, estimateID, roomID, product) {
		if _, err := u.getRoom(ctx, estimateID, roomID); err != nil {
			return ProductResult{}, err
		}
		return ProductResult{}, &DuplicateProductError{EstimateID: estimateID, RoomID: roomID, ProductID: productID}
	}

	stored, status := u.storeSuggestions(ctx, estimateID, roomID, suggestions)
	u.invalidateAfterProductWrite()
	log.Printf("[product][usecase] product added estimate_id=%s room_id=%s product_id=%s", estimateID, roomID, productID)
	return u.productResult(ctx, estimateID, roomID, product, stored, status), nil
}

// ReplaceProductInRoom swaps a main product, or one addon of a main product,
// for NewProductID. The same fetch and conflict rules as AddProductToRoom apply.
func (u *EstimateDataUseCase) ReplaceProductInRoom(ctx context.Context, in ReplaceProductInput) (ProductResult, error) {
	estimateID, roomID, err := validateRoomRef(in.EstimateID, in.RoomID)
	if err != nil {
		return ProductResult{}, err
	}
	oldID := strings.TrimSpace(in.OldProductID)
	newID := strings.TrimSpace(in.NewProductID)
	parentID := strings.TrimSpace(in.ParentProductID)
	if oldID == "" || newID == "" {
		return ProductResult{}, ErrInvalidProductID
	}
	replaceType := in.ReplaceType
	if replaceType == "" {
		replaceType = interfaces.ReplaceTypeMain
	}
	switch replaceType {
	case interfaces.ReplaceTypeMain:
	case interfaces.ReplaceTypeAdditionalProducts:
		if parentID == "" {
			return ProductResult{}, ErrInvalidProductID
		}
	default:
		return ProductResult{}, ErrInvalidReplaceType
	}

	room, err := u.getRoom(ctx, estimateID, roomID)
	if err != nil {
		return ProductResult{}, err
	}
	if err := checkReplaceTarget(room, estimateID, replaceType, oldID, newID, parentID); err != nil {
		return ProductResult{}, err
	}

	release, err := u.acquire(estimateID, roomID, newID)
	if err != nil {
		return ProductResult{}, err
	}
	defer release()

	prospective := room.ProductIDs()
	if replaceType == interfaces.ReplaceTypeMain {
		for i, id := range prospective {
			if id == oldID {
				prospective[i] = newID
			}
		}
	}

	product, suggestions, err := u.fetchProductData(ctx, estimateID, room, newID, prospective)
	if errors.Is(err, errServerPrimaryConflict) {
		return u.conflictResult(estimateID, roomID, room, entities.Product{ID: entities.ProductID(newID)}, oldID), nil
	}
	if err != nil {
		return ProductResult{}, err
	}

	room, err = u.getRoom(ctx, estimateID, roomID)
	if err != nil {
		return ProductResult{}, err
	}
	if err := checkReplaceTarget(room, estimateID, replaceType, oldID, newID, parentID); err != nil {
		return ProductResult{}, err
	}

	if replaceType == interfaces.ReplaceTypeMain {
		if c := findPrimaryConflict(room, product, oldID); c != nil {
			return ProductResult{EstimateID: estimateID, RoomID: roomID, Product: product, Conflict: c}, nil
		}
		old, _ := room.Products.Get(oldID)
		product.ReplacementChain = appendChain(old.ReplacementChain, old.ID)
	}

	if !u.repo.ReplaceProductInRoom(ctx, estimateID, roomID, oldID, newID, product, replaceType, parentID) {
		log.Printf("[product][usecase] replace rejected room_id=%s old=%s new=%s type=%s", roomID, oldID, newID, replaceType)
		return ProductResult{}, ErrProductNotFound
	}

	if replaceType == interfaces.ReplaceTypeAdditionalProducts {
		if updated, ok := u.repo.GetRoom(ctx, estimateID, roomID); ok {
			if parent, ok := updated.Products.Get(parentID); ok && parent.AdditionalProducts != nil {
				if addon, ok := parent.AdditionalProducts.Get(newID); ok {
					product = addon
				}
			}
		}
	}

	stored, status := u.storeSuggestions(ctx, estimateID, roomID, suggestions)
	u.invalidateAfterProductWrite()
	log.Printf("[product][usecase] product replaced estimate_id=%s room_id=%s old=%s new=%s type=%s", estimateID, roomID, oldID, newID, replaceType)
	return u.productResult(ctx, estimateID, roomID, product, stored, status), nil
}

func checkReplaceTarget(room entities.Room, estimateID string, replaceType interfaces.ReplaceType, oldID, newID, parentID string) error {
	if replaceType == interfaces.ReplaceTypeMain {
		if !room.Products.Has(oldID) {
			return ErrProductNotFound
		}
		if newID != oldID && room.Products.Has(newID) {
			return &DuplicateProductError{EstimateID: estimateID, RoomID: room.ID, ProductID: newID}
		}
		return nil
	}

	parent, ok := room.Products.Get(parentID)
	if !ok || parent.AdditionalProducts == nil {
		return ErrProductNotFound
	}
	found := false
	for _, addon := range parent.AdditionalProducts.Values() {
		if string(addon.ID) == oldID || addon.ChainContains(entities.ProductID(oldID)) {
			found = true
			continue
		}
		if string(addon.ID) == newID {
			return &DuplicateProductError{EstimateID: estimateID, RoomID: room.ID, ProductID: newID}
		}
	}
	if !found {
		return ErrProductNotFound
	}
	return nil
}

// RemoveProductFromRoom refreshes suggestions for the remaining products and
// then removes the product. Once the removal is attempted the call succeeds;
// what happened to the suggestions is reported in SuggestionStatus.
func (u *EstimateDataUseCase) RemoveProductFromRoom(ctx context.Context, estimateID, roomID string, productIndex int, productID string) (RemovalResult, error) {
	estimateID, roomID, err := validateRoomRef(estimateID, roomID)
	if err != nil {
		return RemovalResult{}, err
	}
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return RemovalResult{}, ErrInvalidProductID
	}

	room, err := u.getRoom(ctx, estimateID, roomID)
	if err != nil {
		return RemovalResult{}, err
	}
	if !room.Products.Has(productID) {
		return RemovalResult{}, ErrProductNotFound
	}

	remaining := make([]string, 0, room.Products.Len())
	for _, id := range room.ProductIDs() {
		if id != productID {
			remaining = append(remaining, id)
		}
	}

	var (
		stored []entities.Product
		status SuggestionStatus
	)
	switch {
	case !u.suggestionsEnabled():
		stored, status = u.clearSuggestionsDisabled(ctx, estimateID, room)
	case len(remaining) == 0:
		stored, status = u.storeSuggestions(ctx, estimateID, roomID, []entities.Product{})
	default:
		suggestions, err := u.fetchSuggestions(ctx, estimateID, room, remaining)
		if err != nil {
			log.Printf("[product][usecase] suggestion refresh failed room_id=%s err=%v", roomID, err)
			u.repo.ClearSuggestionsForRoom(ctx, estimateID, roomID)
			stored, status = []entities.Product{}, SuggestionsUpdateFailed
			break
		}
		stored, status = u.storeSuggestions(ctx, estimateID, roomID, suggestions)
	}

	removed := u.repo.RemoveProductFromRoom(ctx, estimateID, roomID, productIndex, productID)
	u.invalidateAfterProductWrite()

	res := RemovalResult{
		EstimateID:       estimateID,
		RoomID:           roomID,
		ProductID:        productID,
		Removed:          removed,
		Suggestions:      stored,
		SuggestionStatus: status,
	}
	res.EstimateTotals, res.RoomTotals = u.totals(ctx, estimateID, roomID)
	return res, nil
}

// GetSuggestionsForRoom returns the stored suggestions, fetching them when the
// room has products but nothing is stored yet. Fetch problems yield an empty list.
func (u *EstimateDataUseCase) GetSuggestionsForRoom(ctx context.Context, estimateID, roomID string) ([]entities.Product, error) {
	estimateID, roomID, err := validateRoomRef(estimateID, roomID)
	if err != nil {
		return nil, err
	}
	room, err := u.getRoom(ctx, estimateID, roomID)
	if err != nil {
		return nil, err
	}
	if !u.suggestionsEnabled() {
		stored, _ := u.clearSuggestionsDisabled(ctx, estimateID, room)
		return stored, nil
	}
	if len(room.ProductSuggestions) > 0 || room.Products.Len() == 0 {
		if room.ProductSuggestions == nil {
			return []entities.Product{}, nil
		}
		return room.ProductSuggestions, nil
	}

	suggestions, err := u.fetchSuggestions(ctx, estimateID, room, room.ProductIDs())
	if err != nil {
		log.Printf("[suggestions][usecase] fetch failed room_id=%s err=%v", roomID, err)
		return []entities.Product{}, nil
	}
	stored, _ := u.storeSuggestions(ctx, estimateID, roomID, suggestions)
	return stored, nil
}

func (u *EstimateDataUseCase) GetSimilarProducts(ctx context.Context, productID string, roomArea float64) ([]entities.Product, error) {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return nil, ErrInvalidProductID
	}
	if roomArea < 0 {
		return nil, ErrInvalidRoomDimensions
	}

	area := strconv.FormatFloat(roomArea, 'f', -1, 64)
	key := cacheKeySimilar + productID + ":" + area
	if v, ok := u.cache.Get(key); ok {
		return v.([]entities.Product), nil
	}

	resp, err := u.ajax.Request(ctx, ActionSimilarProducts, map[string]any{
		"product_id": productID,
		"room_area":  roomArea,
	})
	if err != nil {
		return nil, fmt.Errorf("similar products for %s: %w", productID, err)
	}
	products, err := decodeProductList(resp.Data, "similar_products")
	if err != nil {
		return nil, fmt.Errorf("similar products for %s: %w", productID, err)
	}
	u.cache.Set(key, products)
	return products, nil
}

// fetchProductData runs the mandatory product-data request. Anything short of
// a live, well-formed answer blocks the caller with ErrCriticalProductData.
func (u *EstimateDataUseCase) fetchProductData(ctx context.Context, estimateID string, room entities.Room, productID string, prospective []string) (entities.Product, []entities.Product, error) {
	resp, err := u.ajax.Request(ctx, ActionProductData, map[string]any{
		"product_id":    productID,
		"estimate_id":   estimateID,
		"room_id":       room.ID,
		"room_width":    room.Width,
		"room_length":   room.Length,
		"room_products": prospective,
	})
	if err != nil {
		var ajaxErr *interfaces.AjaxError
		if errors.As(err, &ajaxErr) {
			switch {
			case ajaxErr.Data.Duplicate:
				return entities.Product{}, nil, &DuplicateProductError{EstimateID: estimateID, RoomID: room.ID, ProductID: productID}
			case ajaxErr.Data.PrimaryConflict:
				return entities.Product{}, nil, errServerPrimaryConflict
			}
		}
		log.Printf("[product][usecase] product data fetch failed product_id=%s err=%v", productID, err)
		return entities.Product{}, nil, fmt.Errorf("%w: %v", ErrCriticalProductData, err)
	}
	if resp.Fallback {
		return entities.Product{}, nil, fmt.Errorf("%w: only a cached fallback response is available", ErrCriticalProductData)
	}

	var body productDataResponse
	if err := json.Unmarshal(resp.Data, &body); err != nil {
		return entities.Product{}, nil, fmt.Errorf("%w: %v", ErrCriticalProductData, err)
	}
	raw := bytes.TrimSpace(body.ProductData)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return entities.Product{}, nil, fmt.Errorf("%w: response has no product_data", ErrCriticalProductData)
	}

	// room_suggested_products may also arrive inside product_data; it is
	// routed to the room and never stored on the product
	var product entities.Product
	if err := json.Unmarshal(raw, &product); err != nil {
		return entities.Product{}, nil, fmt.Errorf("%w: %v", ErrCriticalProductData, err)
	}
	suggestions := body.RoomSuggestedProducts
	if suggestions == nil {
		var embedded struct {
			RoomSuggestedProducts []entities.Product `json:"room_suggested_products"`
		}
		if err := json.Unmarshal(raw, &embedded); err == nil {
			suggestions = embedded.RoomSuggestedProducts
		}
	}

	product.ID = entities.ProductID(productID)
	if product.SimilarProducts == nil {
		product.SimilarProducts = entities.NewProductMap()
	}
	return product, suggestions, nil
}

func (u *EstimateDataUseCase) fetchSuggestions(ctx context.Context, estimateID string, room entities.Room, productIDs []string) ([]entities.Product, error) {
	resp, err := u.ajax.Request(ctx, ActionRoomSuggestions, map[string]any{
		"estimate_id":   estimateID,
		"room_id":       room.ID,
		"room_width":    room.Width,
		"room_length":   room.Length,
		"room_products": productIDs,
	})
	if err != nil {
		return nil, err
	}
	if resp.Fallback {
		return nil, errStaleSuggestions
	}
	return decodeProductList(resp.Data, "suggestions")
}

// storeSuggestions saves suggestions when the feature is on and clears them
// when it is off.
func (u *EstimateDataUseCase) storeSuggestions(ctx context.Context, estimateID, roomID string, suggestions []entities.Product) ([]entities.Product, SuggestionStatus) {
	if !u.suggestionsEnabled() {
		room, ok := u.repo.GetRoom(ctx, estimateID, roomID)
		if !ok {
			return []entities.Product{}, SuggestionsDisabled
		}
		return u.clearSuggestionsDisabled(ctx, estimateID, room)
	}
	if suggestions == nil {
		suggestions = []entities.Product{}
	}
	stored, ok := u.repo.AddSuggestionsToRoom(ctx, suggestions, estimateID, roomID)
	if !ok {
		return []entities.Product{}, SuggestionsUpdateFailed
	}
	u.invalidateEstimate(estimateID)
	return stored, SuggestionsUpdated
}

// clearSuggestionsDisabled always drops the estimate's cached views: reads of
// the room may already have emptied the stored list while the cache still
// holds the old one.
func (u *EstimateDataUseCase) clearSuggestionsDisabled(ctx context.Context, estimateID string, room entities.Room) ([]entities.Product, SuggestionStatus) {
	defer u.invalidateEstimate(estimateID)
	if len(room.ProductSuggestions) == 0 {
		return []entities.Product{}, SuggestionsDisabled
	}
	u.repo.ClearSuggestionsForRoom(ctx, estimateID, room.ID)
	return []entities.Product{}, SuggestionsClearedDueToDisabled
}

func (u *EstimateDataUseCase) conflictResult(estimateID, roomID string, room entities.Room, product entities.Product, excludeID string) ProductResult {
	product.IsPrimaryCategory = true
	c := findPrimaryConflict(room, product, excludeID)
	if c == nil {
		c = &ProductConflict{NewProductID: string(product.ID)}
	}
	return ProductResult{EstimateID: estimateID, RoomID: roomID, Product: product, Conflict: c}
}

func (u *EstimateDataUseCase) productResult(ctx context.Context, estimateID, roomID string, p entities.Product, suggestions []entities.Product, status SuggestionStatus) ProductResult {
	res := ProductResult{
		EstimateID:       estimateID,
		RoomID:           roomID,
		Product:          p,
		Suggestions:      suggestions,
		SuggestionStatus: status,
	}
	res.EstimateTotals, res.RoomTotals = u.totals(ctx, estimateID, roomID)
	return res
}

func (u *EstimateDataUseCase) totals(ctx context.Context, estimateID, roomID string) (entities.Totals, entities.Totals) {
	var estimateTotals, roomTotals entities.Totals
	e, ok := u.repo.GetEstimate(ctx, estimateID)
	if !ok {
		return estimateTotals, roomTotals
	}
	if e.Totals != nil {
		estimateTotals = *e.Totals
	}
	if r, ok := e.Rooms[roomID]; ok && r.Totals != nil {
		roomTotals = *r.Totals
	}
	return estimateTotals, roomTotals
}

// acquire takes the in-flight key for (estimate, room, product). A second
// caller for the same key is refused until the first one releases it.
func (u *EstimateDataUseCase) acquire(estimateID, roomID, productID string) (func(), error) {
	key := estimateID + "\x00" + roomID + "\x00" + productID
	u.inFlightMu.Lock()
	defer u.inFlightMu.Unlock()
	if _, busy := u.inFlight[key]; busy {
		return nil, &DuplicateProductError{EstimateID: estimateID, RoomID: roomID, ProductID: productID, InFlight: true}
	}
	u.inFlight[key] = struct{}{}
	return func() {
		u.inFlightMu.Lock()
		delete(u.inFlight, key)
		u.inFlightMu.Unlock()
	}, nil
}

// findPrimaryConflict returns the existing primary-category product that
// blocks p, ignoring notes and the product with id excludeID.
func findPrimaryConflict(room entities.Room, p entities.Product, excludeID string) *ProductConflict {
	if !p.IsPrimaryCategory || p.IsNote() {
		return nil
	}
	for _, existing := range room.Products.Values() {
		id := string(existing.ID)
		if id == excludeID || id == string(p.ID) || existing.IsNote() || !existing.IsPrimaryCategory {
			continue
		}
		return &ProductConflict{
			ExistingProductID:   id,
			ExistingProductName: existing.Name,
			NewProductID:        string(p.ID),
			NewProductName:      p.Name,
		}
	}
	return nil
}

func appendChain(chain []entities.ProductID, id entities.ProductID) []entities.ProductID {
	out := make([]entities.ProductID, 0, len(chain)+1)
	out = append(out, chain...)
	for _, prior := range chain {
		if prior == id {
			return out
		}
	}
	return append(out, id)
}

// decodeProductList accepts a list, an id-keyed object, or an object that
// wraps either under wrapperKey.
func decodeProductList(raw []byte, wrapperKey string) ([]entities.Product, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return []entities.Product{}, nil
	}
	if raw[0] == '{' {
		var wrapped map[string]json.RawMessage
		if err := json.Unmarshal(raw, &wrapped); err != nil {
			return nil, err
		}
		if inner, ok := wrapped[wrapperKey]; ok {
			raw = bytes.TrimSpace(inner)
		}
	}

	var m entities.ProductMap
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	return m.Values(), nil
}
