package ajax

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"product_estimator/internal/infrastructure/cache"
	"product_estimator/internal/usecase/interfaces"

	"github.com/stretchr/testify/require"
)

func newTestClient(url string, cacheable ...string) *Client {
	return NewClient(Config{
		URL:              url,
		MaxTries:         3,
		InitialBackoff:   time.Millisecond,
		MaxBackoff:       2 * time.Millisecond,
		CacheTTL:         time.Hour,
		CacheableActions: cacheable,
	}, nil)
}

func TestClient_Request(t *testing.T) {
	ctx := context.Background()

	t.Run("posts form and decodes envelope", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, r.ParseForm())
			require.Equal(t, "get_product_data_for_storage", r.PostForm.Get("action"))
			require.Equal(t, "101", r.PostForm.Get("product_id"))
			require.Equal(t, "4.5", r.PostForm.Get("room_width"))
			require.Equal(t, `["100","101"]`, r.PostForm.Get("product_ids"))
			require.Equal(t, "1", r.PostForm.Get("flag"))
			w.Write([]byte(`{"success":true,"data":{"product_data":{"id":"101"}}}`))
		}))
		defer srv.Close()

		resp, err := newTestClient(srv.URL).Request(ctx, "get_product_data_for_storage", map[string]any{
			"product_id":  "101",
			"room_width":  4.5,
			"product_ids": []string{"100", "101"},
			"flag":        true,
		})
		require.NoError(t, err)
		require.JSONEq(t, `{"product_data":{"id":"101"}}`, string(resp.Data))
		require.False(t, resp.Cached)
	})

	t.Run("server rejection is a typed error and is not retried", func(t *testing.T) {
		var calls atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"success":false,"data":{"message":"already there","duplicate":true}}`))
		}))
		defer srv.Close()

		_, err := newTestClient(srv.URL).Request(ctx, "add", nil)
		var ajaxErr *interfaces.AjaxError
		require.ErrorAs(t, err, &ajaxErr)
		require.True(t, ajaxErr.Data.Duplicate)
		require.Equal(t, "already there", ajaxErr.Data.Message)
		require.Equal(t, http.StatusBadRequest, ajaxErr.HTTPStatus)
		require.EqualValues(t, 1, calls.Load())
	})

	t.Run("string error data", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"success":false,"data":"nope"}`))
		}))
		defer srv.Close()

		_, err := newTestClient(srv.URL).Request(ctx, "x", nil)
		var ajaxErr *interfaces.AjaxError
		require.ErrorAs(t, err, &ajaxErr)
		require.Equal(t, "nope", ajaxErr.Data.Message)
	})

	t.Run("5xx is retried", func(t *testing.T) {
		var calls atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if calls.Add(1) < 3 {
				w.WriteHeader(http.StatusBadGateway)
				return
			}
			w.Write([]byte(`{"success":true,"data":[]}`))
		}))
		defer srv.Close()

		resp, err := newTestClient(srv.URL).Request(ctx, "x", nil)
		require.NoError(t, err)
		require.Equal(t, "[]", string(resp.Data))
		require.EqualValues(t, 3, calls.Load())
	})

	t.Run("malformed body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`0`))
		}))
		defer srv.Close()

		_, err := newTestClient(srv.URL).Request(ctx, "x", nil)
		require.ErrorIs(t, err, ErrMalformedResponse)
	})

	t.Run("empty action", func(t *testing.T) {
		_, err := newTestClient("http://127.0.0.1:0").Request(ctx, " ", nil)
		require.ErrorIs(t, err, ErrEmptyAction)
	})
}

func TestClient_Cache(t *testing.T) {
	ctx := context.Background()
	var fail atomic.Bool
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if fail.Load() {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{"success":true,"data":{"n":1}}`))
	}))
	defer srv.Close()
	payload := map[string]any{"product_id": "101", "room_area": 12.0}

	t.Run("fresh entries are served from cache", func(t *testing.T) {
		calls.Store(0)
		c := newTestClient(srv.URL, "get_similar_products")

		first, err := c.Request(ctx, "get_similar_products", payload)
		require.NoError(t, err)
		require.False(t, first.Cached)

		second, err := c.Request(ctx, "get_similar_products", payload)
		require.NoError(t, err)
		require.True(t, second.Cached)
		require.False(t, second.Fallback)
		require.EqualValues(t, 1, calls.Load())

		_, err = c.Request(ctx, "get_similar_products", map[string]any{"product_id": "102"})
		require.NoError(t, err)
		require.EqualValues(t, 2, calls.Load(), "different payload is a different entry")
	})

	t.Run("failure serves the last good copy", func(t *testing.T) {
		fail.Store(false)
		c := newTestClient(srv.URL, "get_similar_products")
		c.cfg.CacheTTL = time.Nanosecond
		c.caches = map[string]*cache.TTLCache{"get_similar_products": cache.NewTTLCache(time.Nanosecond)}

		_, err := c.Request(ctx, "get_similar_products", payload)
		require.NoError(t, err)
		time.Sleep(time.Millisecond)

		fail.Store(true)
		resp, err := c.Request(ctx, "get_similar_products", payload)
		require.NoError(t, err)
		require.True(t, resp.Fallback)
		require.True(t, resp.Cached)
		require.JSONEq(t, `{"n":1}`, string(resp.Data))
	})

	t.Run("cleared cache leaves nothing to fall back to", func(t *testing.T) {
		fail.Store(false)
		c := newTestClient(srv.URL, "get_similar_products")
		_, err := c.Request(ctx, "get_similar_products", payload)
		require.NoError(t, err)

		c.ClearCache("")
		fail.Store(true)
		_, err = c.Request(ctx, "get_similar_products", payload)
		require.ErrorIs(t, err, ErrServerUnavailable)
	})

	t.Run("uncached action never falls back", func(t *testing.T) {
		fail.Store(false)
		c := newTestClient(srv.URL)
		_, err := c.Request(ctx, "get_product_data_for_storage", payload)
		require.NoError(t, err)
		fail.Store(true)
		_, err = c.Request(ctx, "get_product_data_for_storage", payload)
		require.Error(t, err)
	})
}
