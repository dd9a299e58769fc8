package codec

import (
	"context"
	"errors"
	"testing"

	"product_estimator/internal/adapter/persistence/storage"
	"product_estimator/internal/domain/entities"
	mock_interfaces "product_estimator/internal/usecase/interfaces/mocks"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// flakyStorage wraps a memory tier and fails on demand.
type flakyStorage struct {
	*storage.MemoryStorage
	name    string
	failGet bool
	failSet bool
	sets    int
}

func newFlaky(name string) *flakyStorage {
	return &flakyStorage{MemoryStorage: storage.NewMemoryStorage(), name: name}
}

func (f *flakyStorage) Name() string { return f.name }

func (f *flakyStorage) Get(ctx context.Context, key string) (string, bool, error) {
	if f.failGet {
		return "", false, errors.New("storage disabled")
	}
	return f.MemoryStorage.Get(ctx, key)
}

func (f *flakyStorage) Set(ctx context.Context, key, value string) error {
	if f.failSet {
		return errors.New("quota exceeded")
	}
	f.sets++
	return f.MemoryStorage.Set(ctx, key, value)
}

func sampleDocument() entities.EstimateDocument {
	room := entities.Room{
		ID:       "room_1",
		Name:     "Kitchen",
		Width:    4,
		Length:   3,
		Products: *entities.NewProductMap(entities.Product{ID: "101", Name: "Oak", MinPriceTotal: 120, MaxPriceTotal: 180}),
	}
	return entities.EstimateDocument{
		Estimates: map[string]entities.Estimate{
			"estimate_1": {ID: "estimate_1", Name: "Kitchen Reno", Rooms: entities.RoomMap{"room_1": room}},
		},
		CustomerDetails: &entities.CustomerDetails{Name: "Sam", Email: "sam@example.com"},
	}
}

func TestStorageCodec_RoundTrip(t *testing.T) {
	ctx := context.Background()
	primary := storage.NewMemoryStorage()
	c := NewStorageCodec(primary, storage.NewMemoryStorage())

	c.Save(ctx, sampleDocument())
	first, _, _ := primary.Get(ctx, DefaultEstimatesKey)

	for i := 0; i < 3; i++ {
		c.Save(ctx, c.Load(ctx))
	}
	again, _, _ := primary.Get(ctx, DefaultEstimatesKey)
	require.Equal(t, first, again, "save(load()) must be idempotent")

	doc := c.Load(ctx)
	room := doc.Estimates["estimate_1"].Rooms["room_1"]
	require.Equal(t, []string{"101"}, room.Products.Keys())
	require.NotNil(t, room.ProductSuggestions)
	require.Equal(t, "Sam", doc.CustomerDetails.Name)
}

func TestStorageCodec_LegacyMigration(t *testing.T) {
	ctx := context.Background()
	primary := storage.NewMemoryStorage()
	require.NoError(t, primary.Set(ctx, DefaultEstimatesKey, `{"estimates":[{"name":"A"},{"name":"B","rooms":{}}]}`))
	c := NewStorageCodec(primary, nil)

	doc := c.Load(ctx)
	require.Len(t, doc.Estimates, 2)
	require.Equal(t, "0", doc.Estimates["0"].ID)
	require.Equal(t, "A", doc.Estimates["0"].Name)
	require.Equal(t, "1", doc.Estimates["1"].ID)
	require.Equal(t, "B", doc.Estimates["1"].Name)

	stored, _, _ := primary.Get(ctx, DefaultEstimatesKey)
	require.Contains(t, stored, `"estimates":{`, "normalized form must be written back")

	second := c.Load(ctx)
	require.Equal(t, doc, second)
	storedAgain, _, _ := primary.Get(ctx, DefaultEstimatesKey)
	require.Equal(t, stored, storedAgain)
}

func TestStorageCodec_LegacyProductList(t *testing.T) {
	ctx := context.Background()
	primary := storage.NewMemoryStorage()
	require.NoError(t, primary.Set(ctx, DefaultEstimatesKey,
		`{"estimates":{"e1":{"id":"e1","rooms":{"r1":{"id":"r1","products":[{"id":101,"name":"a"},{"id":"102","name":"b"}]}}}}}`))
	c := NewStorageCodec(primary, nil)

	doc := c.Load(ctx)
	room := doc.Estimates["e1"].Rooms["r1"]
	require.Equal(t, []string{"101", "102"}, room.Products.Keys())

	c.Save(ctx, doc)
	stored, _, _ := primary.Get(ctx, DefaultEstimatesKey)
	require.Contains(t, stored, `"products":{"101":`)
}

func TestStorageCodec_Fallback(t *testing.T) {
	ctx := context.Background()

	t.Run("write falls back to secondary and is read back", func(t *testing.T) {
		primary, secondary := newFlaky("local"), newFlaky("session")
		c := NewStorageCodec(primary, secondary)

		primary.failSet = true
		c.Save(ctx, sampleDocument())
		require.Equal(t, 0, primary.sets)
		require.Equal(t, 1, secondary.sets)

		doc := c.Load(ctx)
		require.Contains(t, doc.Estimates, "estimate_1")

		primary.failSet = false
		doc.Estimates["estimate_1"] = entities.Estimate{ID: "estimate_1", Name: "Renamed", Rooms: entities.RoomMap{}}
		c.Save(ctx, doc)
		_, found, _ := secondary.Get(ctx, DefaultEstimatesKey)
		require.False(t, found, "stale secondary copy must be dropped once primary accepts writes")
		require.Equal(t, "Renamed", c.Load(ctx).Estimates["estimate_1"].Name)
	})

	t.Run("read falls back when primary throws", func(t *testing.T) {
		primary, secondary := newFlaky("local"), newFlaky("session")
		require.NoError(t, secondary.MemoryStorage.Set(ctx, DefaultEstimatesKey, `{"estimates":{"x":{"id":"x","name":"X"}}}`))
		primary.failGet = true
		c := NewStorageCodec(primary, secondary)

		require.Equal(t, "X", c.Load(ctx).Estimates["x"].Name)
	})

	t.Run("both tiers fail", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		primary := mock_interfaces.NewMockIStorage(ctrl)
		secondary := mock_interfaces.NewMockIStorage(ctrl)
		primary.EXPECT().Name().Return("local").AnyTimes()
		secondary.EXPECT().Name().Return("session").AnyTimes()

		primary.EXPECT().Set(gomock.Any(), DefaultEstimatesKey, gomock.Any()).Return(errors.New("quota"))
		secondary.EXPECT().Set(gomock.Any(), DefaultEstimatesKey, gomock.Any()).Return(errors.New("disabled"))
		primary.EXPECT().Get(gomock.Any(), DefaultEstimatesKey).Return("", false, errors.New("disabled"))
		secondary.EXPECT().Get(gomock.Any(), DefaultEstimatesKey).Return("", false, errors.New("disabled"))

		c := NewStorageCodec(primary, secondary)
		require.NotPanics(t, func() { c.Save(ctx, sampleDocument()) })
		doc := c.Load(ctx)
		require.NotNil(t, doc.Estimates)
		require.Empty(t, doc.Estimates)
	})

	t.Run("corrupt value yields an empty document", func(t *testing.T) {
		primary := storage.NewMemoryStorage()
		require.NoError(t, primary.Set(ctx, DefaultEstimatesKey, `{"estimates":`))
		c := NewStorageCodec(primary, nil)
		require.Empty(t, c.Load(ctx).Estimates)
	})
}

func TestStorageCodec_Clear(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	ctx := context.Background()

	primary := mock_interfaces.NewMockIStorage(ctrl)
	secondary := mock_interfaces.NewMockIStorage(ctrl)
	primary.EXPECT().Name().Return("local").AnyTimes()
	primary.EXPECT().Remove(gomock.Any(), DefaultEstimatesKey).Return(errors.New("disabled"))
	secondary.EXPECT().Remove(gomock.Any(), DefaultEstimatesKey).Return(nil)

	c := NewStorageCodec(primary, secondary)
	c.Clear(ctx)
}

func TestStorageCodec_CustomerDetails(t *testing.T) {
	ctx := context.Background()
	c := NewStorageCodec(storage.NewMemoryStorage(), storage.NewMemoryStorage(), WithKeys("", "customer"))

	_, found := c.LoadCustomerDetails(ctx)
	require.False(t, found)

	c.SaveCustomerDetails(ctx, entities.CustomerDetails{Name: "Sam", Postcode: "2000"})
	d, found := c.LoadCustomerDetails(ctx)
	require.True(t, found)
	require.Equal(t, "2000", d.Postcode)

	c.ClearCustomerDetails(ctx)
	_, found = c.LoadCustomerDetails(ctx)
	require.False(t, found)
}
