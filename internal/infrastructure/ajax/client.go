package ajax

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"product_estimator/internal/infrastructure/cache"
	"product_estimator/internal/usecase/interfaces"

	"github.com/cenkalti/backoff/v5"
	"github.com/goccy/go-json"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"golang.org/x/time/rate"
)

const meterName = "product_estimator/ajax"

var (
	ErrEmptyAction       = errors.New("ajax action is required")
	ErrMalformedResponse = errors.New("malformed ajax response")
	ErrServerUnavailable = errors.New("ajax server unavailable")
)

// Config controls transport, retry and caching behaviour of the client.
type Config struct {
	URL              string
	Timeout          time.Duration
	MaxTries         uint
	InitialBackoff   time.Duration
	MaxBackoff       time.Duration
	RatePerSecond    float64
	Burst            int
	CacheTTL         time.Duration
	CacheableActions []string
}

func (c Config) withDefaults() Config {
	if c.Timeout <= 0 {
		c.Timeout = 15 * time.Second
	}
	if c.MaxTries == 0 {
		c.MaxTries = 3
	}
	if c.InitialBackoff <= 0 {
		c.InitialBackoff = 200 * time.Millisecond
	}
	if c.MaxBackoff <= 0 {
		c.MaxBackoff = 2 * time.Second
	}
	if c.Burst <= 0 {
		c.Burst = 1
	}
	if c.CacheTTL <= 0 {
		c.CacheTTL = cache.DefaultTTL
	}
	return c
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
}

// Client posts admin-ajax actions and keeps a response cache per cacheable
// action. When a live request fails for transport reasons the last good
// response for the same action and payload is served with Fallback set.
type Client struct {
	cfg     Config
	http    *http.Client
	limiter *rate.Limiter

	mu        sync.Mutex
	cacheable map[string]bool
	caches    map[string]*cache.TTLCache

	requests  metric.Int64Counter
	latency   metric.Float64Histogram
	fallbacks metric.Int64Counter
}

var _ interfaces.IAjaxClient = (*Client)(nil)

func NewClient(cfg Config, httpClient *http.Client) *Client {
	cfg = cfg.withDefaults()
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	limit := rate.Inf
	if cfg.RatePerSecond > 0 {
		limit = rate.Limit(cfg.RatePerSecond)
	}

	c := &Client{
		cfg:       cfg,
		http:      httpClient,
		limiter:   rate.NewLimiter(limit, cfg.Burst),
		cacheable: make(map[string]bool, len(cfg.CacheableActions)),
		caches:    make(map[string]*cache.TTLCache),
	}
	for _, action := range cfg.CacheableActions {
		if action = strings.TrimSpace(action); action != "" {
			c.cacheable[action] = true
		}
	}

	meter := otel.Meter(meterName)
	c.requests, _ = meter.Int64Counter("estimator.ajax.requests",
		metric.WithDescription("Number of admin-ajax requests by action and outcome"),
		metric.WithUnit("{request}"))
	c.latency, _ = meter.Float64Histogram("estimator.ajax.duration",
		metric.WithDescription("admin-ajax request duration"),
		metric.WithUnit("ms"))
	c.fallbacks, _ = meter.Int64Counter("estimator.ajax.fallbacks",
		metric.WithDescription("Cached responses served after a failed request"),
		metric.WithUnit("{response}"))
	return c
}

func (c *Client) Request(ctx context.Context, action string, payload map[string]any) (interfaces.AjaxResponse, error) {
	action = strings.TrimSpace(action)
	if action == "" {
		return interfaces.AjaxResponse{}, ErrEmptyAction
	}

	key := cacheKey(payload)
	actionCache := c.cacheFor(action)
	if actionCache != nil {
		if v, ok := actionCache.Get(key); ok {
			c.record(ctx, action, "cached", 0)
			return interfaces.AjaxResponse{Data: v.([]byte), Cached: true}, nil
		}
	}

	form, err := encodeForm(action, payload)
	if err != nil {
		return interfaces.AjaxResponse{}, err
	}

	start := time.Now()
	data, err := backoff.Retry(ctx, func() ([]byte, error) {
		return c.post(ctx, action, form)
	},
		backoff.WithBackOff(c.newBackOff()),
		backoff.WithMaxTries(c.cfg.MaxTries),
	)
	elapsed := time.Since(start)

	if err != nil {
		var ajaxErr *interfaces.AjaxError
		if errors.As(err, &ajaxErr) {
			c.record(ctx, action, "rejected", elapsed)
			return interfaces.AjaxResponse{}, err
		}
		if actionCache != nil {
			if v, ok := actionCache.GetStale(key); ok {
				log.Printf("[ajax][client] serving cached fallback action=%s err=%v", action, err)
				c.record(ctx, action, "fallback", elapsed)
				c.fallbacks.Add(ctx, 1, metric.WithAttributes(attribute.String("action", action)))
				return interfaces.AjaxResponse{Data: v.([]byte), Cached: true, Fallback: true}, nil
			}
		}
		log.Printf("[ajax][client] request failed action=%s err=%v", action, err)
		c.record(ctx, action, "error", elapsed)
		return interfaces.AjaxResponse{}, err
	}

	if actionCache != nil {
		actionCache.Set(key, data)
	}
	c.record(ctx, action, "ok", elapsed)
	return interfaces.AjaxResponse{Data: data}, nil
}

// ClearCache drops the cache of one action, or of every action when action is empty.
func (c *Client) ClearCache(action string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if action == "" {
		for _, ac := range c.caches {
			ac.Invalidate()
		}
		return
	}
	if ac, ok := c.caches[action]; ok {
		ac.Invalidate()
	}
}

func (c *Client) cacheFor(action string) *cache.TTLCache {
	if !c.cacheable[action] {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	ac, ok := c.caches[action]
	if !ok {
		// expired entries stay around as fallback copies until cleared
		ac = cache.NewTTLCache(c.cfg.CacheTTL)
		c.caches[action] = ac
	}
	return ac
}

func (c *Client) newBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.cfg.InitialBackoff
	b.MaxInterval = c.cfg.MaxBackoff
	return b
}

func (c *Client) post(ctx context.Context, action string, form url.Values) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, backoff.Permanent(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.URL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, backoff.Permanent(err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, backoff.Permanent(ctx.Err())
		}
		return nil, fmt.Errorf("%w: %v", ErrServerUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrServerUnavailable, err)
	}

	var env envelope
	decodeErr := json.Unmarshal(bytes.TrimSpace(body), &env)
	if resp.StatusCode >= http.StatusInternalServerError && (decodeErr != nil || env.Success) {
		return nil, fmt.Errorf("%w: status %d", ErrServerUnavailable, resp.StatusCode)
	}
	if decodeErr != nil {
		return nil, backoff.Permanent(fmt.Errorf("%w: action=%s status=%d", ErrMalformedResponse, action, resp.StatusCode))
	}
	if !env.Success {
		return nil, backoff.Permanent(&interfaces.AjaxError{
			Action:     action,
			HTTPStatus: resp.StatusCode,
			Data:       decodeErrorData([]byte(env.Data)),
		})
	}
	return []byte(env.Data), nil
}

// decodeErrorData accepts either a structured object or a bare message string.
func decodeErrorData(raw []byte) interfaces.AjaxErrorData {
	var data interfaces.AjaxErrorData
	trimmed := bytes.TrimSpace(raw)
	switch {
	case len(trimmed) == 0:
	case trimmed[0] == '{':
		_ = json.Unmarshal(trimmed, &data)
	case trimmed[0] == '"':
		_ = json.Unmarshal(trimmed, &data.Message)
	}
	data.Raw = raw
	return data
}

func (c *Client) record(ctx context.Context, action, outcome string, elapsed time.Duration) {
	attrs := metric.WithAttributes(attribute.String("action", action), attribute.String("outcome", outcome))
	c.requests.Add(ctx, 1, attrs)
	if elapsed > 0 {
		c.latency.Record(ctx, float64(elapsed.Microseconds())/1000, attrs)
	}
}

// encodeForm flattens a payload the way admin-ajax expects it: scalars as
// text, everything else as JSON.
func encodeForm(action string, payload map[string]any) (url.Values, error) {
	form := url.Values{}
	form.Set("action", action)
	for k, v := range payload {
		if k == "action" {
			continue
		}
		s, err := formValue(v)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", k, err)
		}
		form.Set(k, s)
	}
	return form, nil
}

func formValue(v any) (string, error) {
	switch t := v.(type) {
	case nil:
		return "", nil
	case string:
		return t, nil
	case bool:
		if t {
			return "1", nil
		}
		return "0", nil
	case int:
		return strconv.Itoa(t), nil
	case int64:
		return strconv.FormatInt(t, 10), nil
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), nil
	case fmt.Stringer:
		return t.String(), nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// cacheKey is a canonical rendering of the payload: sorted keys, JSON values.
func cacheKey(payload map[string]any) string {
	keys := make([]string, 0, len(payload))
	for k := range payload {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for _, k := range keys {
		v, err := formValue(payload[k])
		if err != nil {
			v = fmt.Sprintf("%v", payload[k])
		}
		sb.WriteString(k)
		sb.WriteByte('=')
		sb.WriteString(v)
		sb.WriteByte('&')
	}
	return sb.String()
}
