package codec

import (
	"bytes"
	"context"
	"log"
	"strconv"
	"sync"

	"product_estimator/internal/domain/entities"
	"product_estimator/internal/usecase/interfaces"

	"github.com/goccy/go-json"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	DefaultEstimatesKey       = "productEstimatorEstimateData"
	DefaultCustomerDetailsKey = "productEstimatorCustomerDetails"

	meterName = "product_estimator/storage"
)

// StorageCodec translates the estimate document to and from two storage
// tiers. Reads prefer the primary tier; writes fall back to the secondary tier
// when the primary fails. No storage error ever leaves the codec: failures are
// logged and the caller continues with its in-memory state.
type StorageCodec struct {
	primary   interfaces.IStorage
	secondary interfaces.IStorage

	estimatesKey string
	customerKey  string

	fallbacks metric.Int64Counter

	mu sync.Mutex
	// keys whose latest value only made it to the secondary tier
	staleSecondary map[string]bool
}

type Option func(*StorageCodec)

// WithKeys overrides the document and customer-details keys.
func WithKeys(estimatesKey, customerKey string) Option {
	return func(c *StorageCodec) {
		if estimatesKey != "" {
			c.estimatesKey = estimatesKey
		}
		if customerKey != "" {
			c.customerKey = customerKey
		}
	}
}

// WithMeter records fallback counts on the given meter instead of the global one.
func WithMeter(m metric.Meter) Option {
	return func(c *StorageCodec) {
		if m == nil {
			return
		}
		if counter, err := m.Int64Counter("estimator.storage.fallbacks"); err == nil {
			c.fallbacks = counter
		}
	}
}

// NewStorageCodec builds a codec over primary and secondary tiers. Either tier may be nil.
func NewStorageCodec(primary, secondary interfaces.IStorage, opts ...Option) *StorageCodec {
	c := &StorageCodec{
		primary:        primary,
		secondary:      secondary,
		estimatesKey:   DefaultEstimatesKey,
		customerKey:    DefaultCustomerDetailsKey,
		staleSecondary: map[string]bool{},
	}
	WithMeter(otel.Meter(meterName))(c)
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

type rawDocument struct {
	Estimates       json.RawMessage           `json:"estimates"`
	CustomerDetails *entities.CustomerDetails `json:"customerDetails,omitempty"`
}

// Load returns the stored document, or an empty one when nothing can be read.
//
// A legacy document whose estimates are a list is converted to the keyed form
// and written back before it is returned.
func (c *StorageCodec) Load(ctx context.Context) entities.EstimateDocument {
	raw, found := c.read(ctx, c.estimatesKey)
	if !found {
		return entities.NewEstimateDocument()
	}

	doc, migrated, err := decodeDocument([]byte(raw))
	if err != nil {
		log.Printf("[storage][codec] decode failed key=%s err=%v", c.estimatesKey, err)
		return entities.NewEstimateDocument()
	}
	if migrated {
		log.Printf("[storage][codec] legacy estimates list migrated key=%s estimates=%d", c.estimatesKey, len(doc.Estimates))
		c.Save(ctx, doc)
	}
	return doc
}

func decodeDocument(data []byte) (entities.EstimateDocument, bool, error) {
	var rd rawDocument
	if err := json.Unmarshal(data, &rd); err != nil {
		return entities.EstimateDocument{}, false, err
	}

	doc := entities.EstimateDocument{
		Estimates:       map[string]entities.Estimate{},
		CustomerDetails: rd.CustomerDetails,
	}
	migrated := false

	trimmed := bytes.TrimSpace(rd.Estimates)
	switch {
	case len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")):
	case trimmed[0] == '[':
		var list []entities.Estimate
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return entities.EstimateDocument{}, false, err
		}
		for i, e := range list {
			if e.ID == "" {
				e.ID = strconv.Itoa(i)
			}
			doc.Estimates[e.ID] = e
		}
		migrated = true
	default:
		var byID map[string]entities.Estimate
		if err := json.Unmarshal(trimmed, &byID); err != nil {
			return entities.EstimateDocument{}, false, err
		}
		for id, e := range byID {
			if e.ID == "" {
				e.ID = id
			}
			doc.Estimates[id] = e
		}
	}

	doc.Normalize()
	return doc, migrated, nil
}

// Save serializes the whole document and writes it.
func (c *StorageCodec) Save(ctx context.Context, doc entities.EstimateDocument) {
	doc.Normalize()
	b, err := json.Marshal(doc)
	if err != nil {
		log.Printf("[storage][codec] encode failed key=%s err=%v", c.estimatesKey, err)
		return
	}
	c.write(ctx, c.estimatesKey, string(b))
}

// Clear removes the document from both tiers.
func (c *StorageCodec) Clear(ctx context.Context) {
	c.remove(ctx, c.estimatesKey)
}

func (c *StorageCodec) LoadCustomerDetails(ctx context.Context) (entities.CustomerDetails, bool) {
	raw, found := c.read(ctx, c.customerKey)
	if !found {
		return entities.CustomerDetails{}, false
	}
	var d entities.CustomerDetails
	if err := json.Unmarshal([]byte(raw), &d); err != nil {
		log.Printf("[storage][codec] decode failed key=%s err=%v", c.customerKey, err)
		return entities.CustomerDetails{}, false
	}
	return d, true
}

func (c *StorageCodec) SaveCustomerDetails(ctx context.Context, d entities.CustomerDetails) {
	b, err := json.Marshal(d)
	if err != nil {
		log.Printf("[storage][codec] encode failed key=%s err=%v", c.customerKey, err)
		return
	}
	c.write(ctx, c.customerKey, string(b))
}

func (c *StorageCodec) ClearCustomerDetails(ctx context.Context) {
	c.remove(ctx, c.customerKey)
}

func (c *StorageCodec) read(ctx context.Context, key string) (string, bool) {
	c.mu.Lock()
	preferSecondary := c.staleSecondary[key]
	c.mu.Unlock()

	tiers := []interfaces.IStorage{c.primary, c.secondary}
	if preferSecondary {
		tiers = []interfaces.IStorage{c.secondary, c.primary}
	}
	for _, tier := range tiers {
		if tier == nil {
			continue
		}
		v, found, err := tier.Get(ctx, key)
		if err != nil {
			log.Printf("[storage][codec] read failed tier=%s key=%s err=%v", tier.Name(), key, err)
			c.recordFallback(ctx, "read", tier.Name())
			continue
		}
		if found {
			return v, true
		}
	}
	return "", false
}

func (c *StorageCodec) write(ctx context.Context, key, value string) {
	if c.primary != nil {
		err := c.primary.Set(ctx, key, value)
		if err == nil {
			c.dropStaleSecondary(ctx, key)
			return
		}
		log.Printf("[storage][codec] write failed tier=%s key=%s err=%v", c.primary.Name(), key, err)
		c.recordFallback(ctx, "write", c.primary.Name())
	}

	if c.secondary == nil {
		log.Printf("[storage][codec] no tier accepted write key=%s; state will not survive restart", key)
		return
	}
	if err := c.secondary.Set(ctx, key, value); err != nil {
		log.Printf("[storage][codec] write failed tier=%s key=%s err=%v; state will not survive restart", c.secondary.Name(), key, err)
		c.recordFallback(ctx, "write", c.secondary.Name())
		return
	}
	c.mu.Lock()
	c.staleSecondary[key] = true
	c.mu.Unlock()
}

func (c *StorageCodec) dropStaleSecondary(ctx context.Context, key string) {
	c.mu.Lock()
	stale := c.staleSecondary[key]
	delete(c.staleSecondary, key)
	c.mu.Unlock()
	if stale && c.secondary != nil {
		if err := c.secondary.Remove(ctx, key); err != nil {
			log.Printf("[storage][codec] stale copy cleanup failed tier=%s key=%s err=%v", c.secondary.Name(), key, err)
		}
	}
}

func (c *StorageCodec) remove(ctx context.Context, key string) {
	for _, tier := range []interfaces.IStorage{c.primary, c.secondary} {
		if tier == nil {
			continue
		}
		if err := tier.Remove(ctx, key); err != nil {
			log.Printf("[storage][codec] remove failed tier=%s key=%s err=%v", tier.Name(), key, err)
		}
	}
	c.mu.Lock()
	delete(c.staleSecondary, key)
	c.mu.Unlock()
}

func (c *StorageCodec) recordFallback(ctx context.Context, op, tier string) {
	if c.fallbacks == nil {
		return
	}
	c.fallbacks.Add(ctx, 1, metric.WithAttributes(
		attribute.String("op", op),
		attribute.String("tier", tier),
	))
}
