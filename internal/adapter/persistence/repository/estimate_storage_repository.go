package repository

import (
	"context"
	"log"
	"sort"
	"strings"
	"sync"

	"product_estimator/internal/domain/entities"
	"product_estimator/internal/usecase/interfaces"

	"github.com/google/uuid"
)

const (
	estimateIDPrefix = "estimate"
	roomIDPrefix     = "room"
)

// documentCodec is the subset of the storage codec the repository needs.
type documentCodec interface {
	Load(ctx context.Context) entities.EstimateDocument
	Save(ctx context.Context, doc entities.EstimateDocument)
	Clear(ctx context.Context)
	LoadCustomerDetails(ctx context.Context) (entities.CustomerDetails, bool)
	SaveCustomerDetails(ctx context.Context, d entities.CustomerDetails)
	ClearCustomerDetails(ctx context.Context)
}

// EstimateStorageRepository is the CRUD layer over the persisted estimate document.
//
// Each mutation loads the full document, mutates it and saves it whole. The
// mutex keeps that cycle atomic when several goroutines share the repository.
type EstimateStorageRepository struct {
	codec    documentCodec
	features interfaces.IFeatureSwitches
	mu       sync.Mutex
}

var _ interfaces.IEstimateRepository = (*EstimateStorageRepository)(nil)

func NewEstimateStorageRepository(codec documentCodec, features interfaces.IFeatureSwitches) *EstimateStorageRepository {
	return &EstimateStorageRepository{codec: codec, features: features}
}

func (r *EstimateStorageRepository) suggestionsEnabled() bool {
	return r.features == nil || r.features.SuggestionsEnabled()
}

func newID(prefix string, taken func(string) bool) string {
	for {
		id := prefix + "_" + uuid.NewString()
		if !taken(id) {
			return id
		}
	}
}

func (r *EstimateStorageRepository) LoadDocument(ctx context.Context) entities.EstimateDocument {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.codec.Load(ctx)
}

func (r *EstimateStorageRepository) AddEstimate(ctx context.Context, e entities.Estimate) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc := r.codec.Load(ctx)
	e.ID = strings.TrimSpace(e.ID)
	if e.ID == "" {
		e.ID = newID(estimateIDPrefix, func(id string) bool {
			_, ok := doc.Estimates[id]
			return ok
		})
	}
	if e.Rooms == nil {
		e.Rooms = entities.RoomMap{}
	}
	e.RecalculateTotals()
	doc.Estimates[e.ID] = e
	r.codec.Save(ctx, doc)
	return e.ID
}

func (r *EstimateStorageRepository) GetEstimate(ctx context.Context, id string) (entities.Estimate, bool) {
	doc := r.LoadDocument(ctx)
	e, ok := doc.Estimates[id]
	return e, ok
}

// ListEstimates returns every estimate ordered by name, then id.
func (r *EstimateStorageRepository) ListEstimates(ctx context.Context) []entities.Estimate {
	doc := r.LoadDocument(ctx)
	out := make([]entities.Estimate, 0, len(doc.Estimates))
	for _, e := range doc.Estimates {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (r *EstimateStorageRepository) UpdateEstimateName(ctx context.Context, id, name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc := r.codec.Load(ctx)
	e, ok := doc.Estimates[id]
	if !ok {
		return false
	}
	e.Name = name
	doc.Estimates[id] = e
	r.codec.Save(ctx, doc)
	return true
}

func (r *EstimateStorageRepository) RemoveEstimate(ctx context.Context, id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc := r.codec.Load(ctx)
	if _, ok := doc.Estimates[id]; !ok {
		return false
	}
	delete(doc.Estimates, id)
	r.codec.Save(ctx, doc)
	return true
}

func (r *EstimateStorageRepository) AddRoom(ctx context.Context, estimateID string, room entities.Room) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc := r.codec.Load(ctx)
	e, ok := doc.Estimates[estimateID]
	if !ok {
		log.Printf("[estimate][repository] add room: estimate not found estimate_id=%s", estimateID)
		return "", false
	}

	room.ID = strings.TrimSpace(room.ID)
	if room.ID == "" {
		room.ID = newID(roomIDPrefix, func(id string) bool {
			for _, other := range doc.Estimates {
				if _, ok := other.Rooms[id]; ok {
					return true
				}
			}
			return false
		})
	}
	room.ProductSuggestions = []entities.Product{}
	e.Rooms[room.ID] = room
	e.RecalculateTotals()
	doc.Estimates[estimateID] = e
	r.codec.Save(ctx, doc)
	return room.ID, true
}

func (r *EstimateStorageRepository) GetRoom(ctx context.Context, estimateID, roomID string) (entities.Room, bool) {
	doc := r.LoadDocument(ctx)
	e, ok := doc.Estimates[estimateID]
	if !ok {
		return entities.Room{}, false
	}
	room, ok := e.Rooms[roomID]
	return room, ok
}

func (r *EstimateStorageRepository) UpdateRoomName(ctx context.Context, estimateID, roomID, name string) bool {
	return r.mutateRoom(ctx, estimateID, roomID, func(room *entities.Room) bool {
		room.Name = name
		return true
	})
}

func (r *EstimateStorageRepository) RemoveRoom(ctx context.Context, estimateID, roomID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc := r.codec.Load(ctx)
	e, ok := doc.Estimates[estimateID]
	if !ok {
		return false
	}
	if _, ok := e.Rooms[roomID]; !ok {
		return false
	}
	delete(e.Rooms, roomID)
	e.RecalculateTotals()
	doc.Estimates[estimateID] = e
	r.codec.Save(ctx, doc)
	return true
}

// mutateRoom runs fn on a room inside one load -> mutate -> save cycle.
// The document is saved when fn succeeds, or when touching the room already
// changed it (suggestions cleared because the feature is off).
func (r *EstimateStorageRepository) mutateRoom(ctx context.Context, estimateID, roomID string, fn func(room *entities.Room) bool) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc := r.codec.Load(ctx)
	e, ok := doc.Estimates[estimateID]
	if !ok {
		log.Printf("[estimate][repository] estimate not found estimate_id=%s", estimateID)
		return false
	}
	room, ok := e.Rooms[roomID]
	if !ok {
		log.Printf("[estimate][repository] room not found estimate_id=%s room_id=%s", estimateID, roomID)
		return false
	}

	touched := r.touchRoom(&room)
	applied := fn(&room)
	if !applied && !touched {
		return false
	}

	e.Rooms[roomID] = room
	e.RecalculateTotals()
	doc.Estimates[estimateID] = e
	r.codec.Save(ctx, doc)
	return applied
}

// touchRoom makes sure the suggestions list exists, and is empty while
// suggestions are disabled. It reports whether the room changed.
func (r *EstimateStorageRepository) touchRoom(room *entities.Room) bool {
	if room.ProductSuggestions == nil {
		room.ProductSuggestions = []entities.Product{}
		return true
	}
	if !r.suggestionsEnabled() && len(room.ProductSuggestions) > 0 {
		room.ProductSuggestions = []entities.Product{}
		return true
	}
	return false
}

func (r *EstimateStorageRepository) AddProductToRoom(ctx context.Context, estimateID, roomID string, p entities.Product) bool {
	id := strings.TrimSpace(string(p.ID))
	if id == "" {
		return false
	}
	p.ID = entities.ProductID(id)

	return r.mutateRoom(ctx, estimateID, roomID, func(room *entities.Room) bool {
		if room.Products.Has(id) {
			log.Printf("[estimate][repository] duplicate product rejected estimate_id=%s room_id=%s product_id=%s", estimateID, roomID, id)
			return false
		}
		room.Products.Set(id, p)
		return true
	})
}

// RemoveProductFromRoom removes by product id only. productIndex is accepted
// for callers that still pass it; list positions shift under concurrent
// edits and are never used as the key.
func (r *EstimateStorageRepository) RemoveProductFromRoom(ctx context.Context, estimateID, roomID string, productIndex int, productID string) bool {
	id := strings.TrimSpace(productID)
	if id == "" {
		return false
	}
	return r.mutateRoom(ctx, estimateID, roomID, func(room *entities.Room) bool {
		if !room.Products.Delete(id) {
			log.Printf("[estimate][repository] remove: product not found estimate_id=%s room_id=%s product_id=%s index=%d", estimateID, roomID, id, productIndex)
			return false
		}
		return true
	})
}

func (r *EstimateStorageRepository) ReplaceProductInRoom(
	ctx context.Context,
	estimateID, roomID, oldProductID, newProductID string,
	p entities.Product,
	replaceType interfaces.ReplaceType,
	parentProductID string,
) bool {
	oldID := strings.TrimSpace(oldProductID)
	newID := strings.TrimSpace(newProductID)
	if oldID == "" || newID == "" {
		return false
	}
	p.ID = entities.ProductID(newID)

	return r.mutateRoom(ctx, estimateID, roomID, func(room *entities.Room) bool {
		switch replaceType {
		case interfaces.ReplaceTypeMain:
			return replaceMainProduct(room, oldID, newID, p)
		case interfaces.ReplaceTypeAdditionalProducts:
			return replaceAdditionalProduct(room, strings.TrimSpace(parentProductID), oldID, newID, p)
		default:
			log.Printf("[estimate][repository] unknown replace type=%q", replaceType)
			return false
		}
	})
}

func replaceMainProduct(room *entities.Room, oldID, newID string, p entities.Product) bool {
	idx := room.Products.IndexOf(oldID)
	if idx < 0 {
		return false
	}
	return room.Products.ReplaceAt(idx, newID, p)
}

// replaceAdditionalProduct swaps one addon of parentID. The target slot is
// the addon whose id is oldID or whose replacement chain contains oldID. The
// id being displaced is appended to the chain carried by the new addon.
func replaceAdditionalProduct(room *entities.Room, parentID, oldID, newID string, p entities.Product) bool {
	parent, ok := room.Products.Get(parentID)
	if !ok || parent.AdditionalProducts == nil {
		return false
	}

	idx := -1
	var target entities.Product
	for i, addon := range parent.AdditionalProducts.Values() {
		if string(addon.ID) == oldID || addon.ChainContains(entities.ProductID(oldID)) {
			idx, target = i, addon
			break
		}
	}
	if idx < 0 {
		return false
	}

	chain := make([]entities.ProductID, 0, len(target.ReplacementChain)+1)
	chain = append(chain, target.ReplacementChain...)
	// The displaced addon's id is recorded rather than oldID; they differ only
	// when oldID matched through the addon's chain, which already holds it.
	if displaced := target.ID; !target.ChainContains(displaced) {
		chain = append(chain, displaced)
	}
	p.ReplacementChain = chain

	addons := parent.AdditionalProducts.Clone()
	if !addons.ReplaceAt(idx, newID, p) {
		return false
	}
	parent.AdditionalProducts = addons
	room.Products.Set(parentID, parent)
	return true
}

// AddSuggestionsToRoom replaces the room's suggestions wholesale.
func (r *EstimateStorageRepository) AddSuggestionsToRoom(ctx context.Context, suggestions []entities.Product, estimateID, roomID string) ([]entities.Product, bool) {
	if suggestions == nil {
		log.Printf("[estimate][repository] invalid suggestions (nil) estimate_id=%s room_id=%s", estimateID, roomID)
		return nil, false
	}
	if !r.suggestionsEnabled() {
		// still touch the room so nothing stale survives
		r.mutateRoom(ctx, estimateID, roomID, func(*entities.Room) bool { return false })
		return nil, false
	}

	stored := make([]entities.Product, len(suggestions))
	copy(stored, suggestions)
	ok := r.mutateRoom(ctx, estimateID, roomID, func(room *entities.Room) bool {
		room.ProductSuggestions = stored
		return true
	})
	if !ok {
		return nil, false
	}
	return stored, true
}

func (r *EstimateStorageRepository) GetSuggestionsForRoom(ctx context.Context, estimateID, roomID string) ([]entities.Product, bool) {
	room, ok := r.GetRoom(ctx, estimateID, roomID)
	if !ok {
		return nil, false
	}
	if !r.suggestionsEnabled() || room.ProductSuggestions == nil {
		return []entities.Product{}, true
	}
	return room.ProductSuggestions, true
}

func (r *EstimateStorageRepository) ClearSuggestionsForRoom(ctx context.Context, estimateID, roomID string) bool {
	return r.mutateRoom(ctx, estimateID, roomID, func(room *entities.Room) bool {
		room.ProductSuggestions = []entities.Product{}
		return true
	})
}

func (r *EstimateStorageRepository) UpdateCustomerDetails(ctx context.Context, d entities.CustomerDetails) {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc := r.codec.Load(ctx)
	doc.CustomerDetails = &d
	r.codec.Save(ctx, doc)
	r.codec.SaveCustomerDetails(ctx, d)
}

func (r *EstimateStorageRepository) GetCustomerDetails(ctx context.Context) (entities.CustomerDetails, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if d, ok := r.codec.LoadCustomerDetails(ctx); ok {
		return d, true
	}
	doc := r.codec.Load(ctx)
	if doc.CustomerDetails == nil {
		return entities.CustomerDetails{}, false
	}
	return *doc.CustomerDetails, true
}

func (r *EstimateStorageRepository) ClearCustomerDetails(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.codec.ClearCustomerDetails(ctx)
	doc := r.codec.Load(ctx)
	doc.CustomerDetails = nil
	r.codec.Save(ctx, doc)
}

func (r *EstimateStorageRepository) ClearAll(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.codec.Clear(ctx)
	r.codec.ClearCustomerDetails(ctx)
}
