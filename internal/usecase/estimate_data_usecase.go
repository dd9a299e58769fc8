package usecase

import (
	"context"
	"log"
	"sort"
	"strings"
	"sync"

	"product_estimator/internal/domain/entities"
	"product_estimator/internal/usecase/interfaces"
)

const (
	ActionProductData           = "get_product_data_for_storage"
	ActionRoomSuggestions       = "get_suggestions_for_room"
	ActionSimilarProducts       = "get_similar_products"
	ActionUpdateCustomerDetails = "update_customer_details"

	cacheKeyEstimates = "estimates"
	cacheKeyRooms     = "rooms:"
	cacheKeySimilar   = "similar:"
)

// IEstimateDataUseCase is the estimator's user-facing API. Local storage is
// the source of truth; the server is consulted for pricing, conflicts and
// suggestions.
type IEstimateDataUseCase interface {
	GetEstimatesData(ctx context.Context) []entities.Estimate
	GetEstimate(ctx context.Context, estimateID string) (entities.Estimate, error)
	AddNewEstimate(ctx context.Context, name string) (entities.Estimate, error)
	UpdateEstimateName(ctx context.Context, estimateID, name string) (entities.Estimate, error)
	RemoveEstimate(ctx context.Context, estimateID string) error

	GetRoomsForEstimate(ctx context.Context, estimateID string) ([]entities.Room, error)
	AddNewRoom(ctx context.Context, estimateID string, in NewRoomInput) (entities.Room, error)
	UpdateRoom(ctx context.Context, estimateID, roomID, name string) (entities.Room, error)
	RemoveRoom(ctx context.Context, estimateID, roomID string) error

	AddProductToRoom(ctx context.Context, estimateID, roomID, productID string) (ProductResult, error)
	ReplaceProductInRoom(ctx context.Context, in ReplaceProductInput) (ProductResult, error)
	RemoveProductFromRoom(ctx context.Context, estimateID, roomID string, productIndex int, productID string) (RemovalResult, error)

	GetSuggestionsForRoom(ctx context.Context, estimateID, roomID string) ([]entities.Product, error)
	GetSimilarProducts(ctx context.Context, productID string, roomArea float64) ([]entities.Product, error)

	UpdateCustomerDetails(ctx context.Context, d entities.CustomerDetails) (entities.CustomerDetails, error)
	GetCustomerDetails(ctx context.Context) (entities.CustomerDetails, bool)

	ClearAllData(ctx context.Context)
	ClearCache()
	SubscribeSyncEvents(buffer int) (<-chan SyncEvent, func())
}

type EstimateDataUseCase struct {
	repo     interfaces.IEstimateRepository
	ajax     interfaces.IAjaxClient
	features interfaces.IFeatureSwitches
	cache    interfaces.IReadCache
	bg       *BackgroundSync

	inFlightMu sync.Mutex
	inFlight   map[string]struct{}
}

var _ IEstimateDataUseCase = (*EstimateDataUseCase)(nil)

type Option func(*EstimateDataUseCase)

func WithReadCache(c interfaces.IReadCache) Option {
	return func(u *EstimateDataUseCase) { u.cache = c }
}

func WithBackgroundSync(b *BackgroundSync) Option {
	return func(u *EstimateDataUseCase) { u.bg = b }
}

func NewEstimateDataUseCase(
	repo interfaces.IEstimateRepository,
	ajax interfaces.IAjaxClient,
	features interfaces.IFeatureSwitches,
	opts ...Option,
) *EstimateDataUseCase {
	u := &EstimateDataUseCase{
		repo:     repo,
		ajax:     ajax,
		features: features,
		cache:    noCache{},
		inFlight: make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

func (u *EstimateDataUseCase) suggestionsEnabled() bool {
	return u.features != nil && u.features.SuggestionsEnabled()
}

func (u *EstimateDataUseCase) GetEstimatesData(ctx context.Context) []entities.Estimate {
	if v, ok := u.cache.Get(cacheKeyEstimates); ok {
		return v.([]entities.Estimate)
	}
	list := u.repo.ListEstimates(ctx)
	u.cache.Set(cacheKeyEstimates, list)
	return list
}

func (u *EstimateDataUseCase) GetEstimate(ctx context.Context, estimateID string) (entities.Estimate, error) {
	estimateID = strings.TrimSpace(estimateID)
	if estimateID == "" {
		return entities.Estimate{}, ErrInvalidEstimateID
	}
	e, ok := u.repo.GetEstimate(ctx, estimateID)
	if !ok {
		return entities.Estimate{}, ErrEstimateNotFound
	}
	return e, nil
}

func (u *EstimateDataUseCase) AddNewEstimate(ctx context.Context, name string) (entities.Estimate, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return entities.Estimate{}, ErrInvalidEstimateName
	}
	id := u.repo.AddEstimate(ctx, entities.Estimate{Name: name, Rooms: entities.RoomMap{}})
	u.cache.Delete(cacheKeyEstimates)
	log.Printf("[estimate][usecase] estimate created estimate_id=%s", id)
	return u.GetEstimate(ctx, id)
}

func (u *EstimateDataUseCase) UpdateEstimateName(ctx context.Context, estimateID, name string) (entities.Estimate, error) {
	estimateID = strings.TrimSpace(estimateID)
	name = strings.TrimSpace(name)
	if estimateID == "" {
		return entities.Estimate{}, ErrInvalidEstimateID
	}
	if name == "" {
		return entities.Estimate{}, ErrInvalidEstimateName
	}
	if !u.repo.UpdateEstimateName(ctx, estimateID, name) {
		return entities.Estimate{}, ErrEstimateNotFound
	}
	u.cache.Delete(cacheKeyEstimates)
	return u.GetEstimate(ctx, estimateID)
}

func (u *EstimateDataUseCase) RemoveEstimate(ctx context.Context, estimateID string) error {
	estimateID = strings.TrimSpace(estimateID)
	if estimateID == "" {
		return ErrInvalidEstimateID
	}
	if !u.repo.RemoveEstimate(ctx, estimateID) {
		return ErrEstimateNotFound
	}
	u.cache.Delete(cacheKeyEstimates)
	u.cache.Delete(cacheKeyRooms + estimateID)
	return nil
}

// GetRoomsForEstimate returns the estimate's rooms ordered by name, then id.
func (u *EstimateDataUseCase) GetRoomsForEstimate(ctx context.Context, estimateID string) ([]entities.Room, error) {
	estimateID = strings.TrimSpace(estimateID)
	if estimateID == "" {
		return nil, ErrInvalidEstimateID
	}
	key := cacheKeyRooms + estimateID
	if v, ok := u.cache.Get(key); ok {
		return v.([]entities.Room), nil
	}

	e, ok := u.repo.GetEstimate(ctx, estimateID)
	if !ok {
		return nil, ErrEstimateNotFound
	}
	rooms := make([]entities.Room, 0, len(e.Rooms))
	for _, r := range e.Rooms {
		rooms = append(rooms, r)
	}
	sort.Slice(rooms, func(i, j int) bool {
		if rooms[i].Name != rooms[j].Name {
			return rooms[i].Name < rooms[j].Name
		}
		return rooms[i].ID < rooms[j].ID
	})
	u.cache.Set(key, rooms)
	return rooms, nil
}

func (u *EstimateDataUseCase) AddNewRoom(ctx context.Context, estimateID string, in NewRoomInput) (entities.Room, error) {
	estimateID = strings.TrimSpace(estimateID)
	if estimateID == "" {
		return entities.Room{}, ErrInvalidEstimateID
	}
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return entities.Room{}, ErrInvalidRoomName
	}
	if in.Width < 0 || in.Length < 0 {
		return entities.Room{}, ErrInvalidRoomDimensions
	}

	roomID, ok := u.repo.AddRoom(ctx, estimateID, entities.Room{
		ID:     strings.TrimSpace(in.ID),
		Name:   in.Name,
		Width:  in.Width,
		Length: in.Length,
	})
	if !ok {
		return entities.Room{}, ErrEstimateNotFound
	}
	u.invalidateEstimate(estimateID)
	return u.getRoom(ctx, estimateID, roomID)
}

func (u *EstimateDataUseCase) UpdateRoom(ctx context.Context, estimateID, roomID, name string) (entities.Room, error) {
	estimateID, roomID, err := validateRoomRef(estimateID, roomID)
	if err != nil {
		return entities.Room{}, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return entities.Room{}, ErrInvalidRoomName
	}
	if _, err := u.getRoom(ctx, estimateID, roomID); err != nil {
		return entities.Room{}, err
	}
	u.repo.UpdateRoomName(ctx, estimateID, roomID, name)
	u.invalidateEstimate(estimateID)
	return u.getRoom(ctx, estimateID, roomID)
}

func (u *EstimateDataUseCase) RemoveRoom(ctx context.Context, estimateID, roomID string) error {
	estimateID, roomID, err := validateRoomRef(estimateID, roomID)
	if err != nil {
		return err
	}
	if _, err := u.getRoom(ctx, estimateID, roomID); err != nil {
		return err
	}
	u.repo.RemoveRoom(ctx, estimateID, roomID)
	u.invalidateEstimate(estimateID)
	return nil
}

func (u *EstimateDataUseCase) UpdateCustomerDetails(ctx context.Context, d entities.CustomerDetails) (entities.CustomerDetails, error) {
	d = entities.CustomerDetails{
		Name:     strings.TrimSpace(d.Name),
		Email:    strings.TrimSpace(d.Email),
		Phone:    strings.TrimSpace(d.Phone),
		Postcode: strings.TrimSpace(d.Postcode),
	}
	if d.IsZero() || (d.Email != "" && !strings.Contains(d.Email, "@")) {
		return entities.CustomerDetails{}, ErrInvalidCustomerData
	}

	u.repo.UpdateCustomerDetails(ctx, d)

	if u.bg != nil && u.features != nil && u.features.CustomerDetailsSyncEnabled() {
		details := d
		err := u.bg.Submit(SyncTask{
			Name: ActionUpdateCustomerDetails,
			Run: func(ctx context.Context) error {
				_, err := u.ajax.Request(ctx, ActionUpdateCustomerDetails, map[string]any{
					"customer_name":     details.Name,
					"customer_email":    details.Email,
					"customer_phone":    details.Phone,
					"customer_postcode": details.Postcode,
				})
				return err
			},
		})
		if err != nil {
			log.Printf("[customer][usecase] sync not queued err=%v", err)
		}
	}
	return d, nil
}

func (u *EstimateDataUseCase) GetCustomerDetails(ctx context.Context) (entities.CustomerDetails, bool) {
	return u.repo.GetCustomerDetails(ctx)
}

// ClearAllData wipes persisted estimates, customer details and every cache.
func (u *EstimateDataUseCase) ClearAllData(ctx context.Context) {
	u.repo.ClearAll(ctx)
	u.ClearCache()
	log.Printf("[estimate][usecase] all local data cleared")
}

func (u *EstimateDataUseCase) ClearCache() {
	u.cache.Invalidate()
	if u.ajax != nil {
		u.ajax.ClearCache("")
	}
}

// SubscribeSyncEvents exposes background sync progress. Without a background
// worker the returned channel is closed immediately.
func (u *EstimateDataUseCase) SubscribeSyncEvents(buffer int) (<-chan SyncEvent, func()) {
	if u.bg == nil {
		ch := make(chan SyncEvent)
		close(ch)
		return ch, func() {}
	}
	return u.bg.Subscribe(buffer)
}

func (u *EstimateDataUseCase) getRoom(ctx context.Context, estimateID, roomID string) (entities.Room, error) {
	if _, ok := u.repo.GetEstimate(ctx, estimateID); !ok {
		return entities.Room{}, ErrEstimateNotFound
	}
	room, ok := u.repo.GetRoom(ctx, estimateID, roomID)
	if !ok {
		return entities.Room{}, ErrRoomNotFound
	}
	return room, nil
}

func (u *EstimateDataUseCase) invalidateEstimate(estimateID string) {
	u.cache.Delete(cacheKeyEstimates)
	u.cache.Delete(cacheKeyRooms + estimateID)
}

// invalidateAfterProductWrite drops every cached read. Totals, rooms and
// similar-product lookups can all change after a product write.
func (u *EstimateDataUseCase) invalidateAfterProductWrite() {
	u.cache.Invalidate()
}

func validateRoomRef(estimateID, roomID string) (string, string, error) {
	estimateID = strings.TrimSpace(estimateID)
	roomID = strings.TrimSpace(roomID)
	if estimateID == "" {
		return "", "", ErrInvalidEstimateID
	}
	if roomID == "" {
		return "", "", ErrInvalidRoomID
	}
	return estimateID, roomID, nil
}

type noCache struct{}

func (noCache) Get(string) (any, bool)  { return nil, false }
func (noCache) Set(string, any)         {}
func (noCache) Delete(string)           {}
func (noCache) DeletePrefix(string) int { return 0 }
func (noCache) Invalidate()             {}
