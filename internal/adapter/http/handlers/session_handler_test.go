package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"product_estimator/internal/adapter/http/handlers/mocks"
	"product_estimator/internal/domain/entities"
	"product_estimator/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

// closeNotifyingRecorder lets gin's Stream run against a recorder.
type closeNotifyingRecorder struct {
	*httptest.ResponseRecorder
	closed chan bool
}

func (r *closeNotifyingRecorder) CloseNotify() <-chan bool { return r.closed }

func TestSessionHandler_CustomerDetails(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("not stored", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIEstimateDataUseCase(ctrl)
		h := NewSessionHandler(uc)

		uc.EXPECT().GetCustomerDetails(gomock.Any()).Return(entities.CustomerDetails{}, false)

		r := gin.New()
		r.GET("/v1/customer-details", h.GetCustomerDetails)

		if w := serve(r, http.MethodGet, "/v1/customer-details", ""); w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})

	t.Run("update", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIEstimateDataUseCase(ctrl)
		h := NewSessionHandler(uc)

		in := entities.CustomerDetails{Name: "Sam", Email: "sam@example.com", Postcode: "2000"}
		uc.EXPECT().UpdateCustomerDetails(gomock.Any(), in).Return(in, nil)
		uc.EXPECT().UpdateCustomerDetails(gomock.Any(), entities.CustomerDetails{Email: "nope"}).
			Return(entities.CustomerDetails{}, usecase.ErrInvalidCustomerData)

		r := gin.New()
		r.PUT("/v1/customer-details", h.UpdateCustomerDetails)

		w := serve(r, http.MethodPut, "/v1/customer-details", `{"name":"Sam","email":"sam@example.com","postcode":"2000"}`)
		if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"postcode":"2000"`) {
			t.Fatalf("unexpected response %d %s", w.Code, w.Body.String())
		}
		if w := serve(r, http.MethodPut, "/v1/customer-details", `{"email":"nope"}`); w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})
}

func TestSessionHandler_ClearStorageAndCache(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	uc := mocks.NewMockIEstimateDataUseCase(ctrl)
	h := NewSessionHandler(uc)

	uc.EXPECT().ClearAllData(gomock.Any())
	uc.EXPECT().ClearCache()

	r := gin.New()
	r.DELETE("/v1/storage", h.ClearStorage)
	r.DELETE("/v1/cache", h.ClearCache)

	if w := serve(r, http.MethodDelete, "/v1/storage", ""); w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}
	if w := serve(r, http.MethodDelete, "/v1/cache", ""); w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}
}

func TestSessionHandler_SyncEvents(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	uc := mocks.NewMockIEstimateDataUseCase(ctrl)
	h := NewSessionHandler(uc)

	ch := make(chan usecase.SyncEvent, 2)
	ch <- usecase.SyncEvent{Task: usecase.ActionUpdateCustomerDetails, Status: usecase.SyncSucceeded, At: time.Now()}
	ch <- usecase.SyncEvent{Task: usecase.ActionUpdateCustomerDetails, Status: usecase.SyncFailed, Err: errors.New("offline"), At: time.Now()}
	close(ch)

	cancelled := false
	uc.EXPECT().SubscribeSyncEvents(syncEventsBuffer).Return((<-chan usecase.SyncEvent)(ch), func() { cancelled = true })

	r := gin.New()
	r.GET("/v1/sync/events", h.SyncEvents)

	w := &closeNotifyingRecorder{ResponseRecorder: httptest.NewRecorder(), closed: make(chan bool)}
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/sync/events", nil))

	body := w.Body.String()
	if strings.Count(body, "event:sync") != 2 {
		t.Fatalf("expected two events, got %q", body)
	}
	if !strings.Contains(body, `"status":"failed"`) || !strings.Contains(body, `"error":"offline"`) {
		t.Fatalf("unexpected stream %q", body)
	}
	if !cancelled {
		t.Fatalf("subscription must be cancelled when the stream ends")
	}
}
