package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"product_estimator/internal/adapter/http/handlers/mocks"
	"product_estimator/internal/domain/entities"
	"product_estimator/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func serve(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid error body %q: %v", w.Body.String(), err)
	}
	return body
}

func TestEstimateHandler_CreateEstimate(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("invalid json", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		h := NewEstimateHandler(mocks.NewMockIEstimateDataUseCase(ctrl))

		r := gin.New()
		r.POST("/v1/estimates", h.CreateEstimate)

		w := serve(r, http.MethodPost, "/v1/estimates", "{")
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("blank name rejected by use case", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIEstimateDataUseCase(ctrl)
		h := NewEstimateHandler(uc)

		uc.EXPECT().AddNewEstimate(gomock.Any(), "").Return(entities.Estimate{}, usecase.ErrInvalidEstimateName)

		r := gin.New()
		r.POST("/v1/estimates", h.CreateEstimate)

		w := serve(r, http.MethodPost, "/v1/estimates", `{"name":"   "}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
		if code := decodeError(t, w)["code"]; code != "INVALID_REQUEST" {
			t.Fatalf("unexpected code %v", code)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIEstimateDataUseCase(ctrl)
		h := NewEstimateHandler(uc)

		uc.EXPECT().AddNewEstimate(gomock.Any(), "Kitchen Reno").
			Return(entities.Estimate{ID: "estimate_1", Name: "Kitchen Reno", Rooms: entities.RoomMap{}}, nil)

		r := gin.New()
		r.POST("/v1/estimates", h.CreateEstimate)

		w := serve(r, http.MethodPost, "/v1/estimates", `{"name":" Kitchen Reno "}`)
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", w.Code)
		}
		var body map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if body["id"] != "estimate_1" {
			t.Fatalf("unexpected body %s", w.Body.String())
		}
	})
}

func TestEstimateHandler_GetEstimate(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIEstimateDataUseCase(ctrl)
		h := NewEstimateHandler(uc)

		uc.EXPECT().GetEstimate(gomock.Any(), "missing").Return(entities.Estimate{}, usecase.ErrEstimateNotFound)

		r := gin.New()
		r.GET("/v1/estimates/:estimate_id", h.GetEstimate)

		w := serve(r, http.MethodGet, "/v1/estimates/missing", "")
		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
		if code := decodeError(t, w)["code"]; code != "ESTIMATE_NOT_FOUND" {
			t.Fatalf("unexpected code %v", code)
		}
	})

	t.Run("list", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIEstimateDataUseCase(ctrl)
		h := NewEstimateHandler(uc)

		uc.EXPECT().GetEstimatesData(gomock.Any()).Return([]entities.Estimate{{ID: "a", Name: "A"}, {ID: "b", Name: "B"}})

		r := gin.New()
		r.GET("/v1/estimates", h.ListEstimates)

		w := serve(r, http.MethodGet, "/v1/estimates", "")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body []map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil || len(body) != 2 {
			t.Fatalf("unexpected body %s", w.Body.String())
		}
	})
}

func TestEstimateHandler_RenameAndDelete(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	uc := mocks.NewMockIEstimateDataUseCase(ctrl)
	h := NewEstimateHandler(uc)

	uc.EXPECT().UpdateEstimateName(gomock.Any(), "e1", "New").Return(entities.Estimate{ID: "e1", Name: "New"}, nil)
	uc.EXPECT().RemoveEstimate(gomock.Any(), "e1").Return(nil)

	r := gin.New()
	r.PATCH("/v1/estimates/:estimate_id", h.RenameEstimate)
	r.DELETE("/v1/estimates/:estimate_id", h.DeleteEstimate)

	if w := serve(r, http.MethodPatch, "/v1/estimates/e1", `{"name":"New"}`); w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if w := serve(r, http.MethodDelete, "/v1/estimates/e1", ""); w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}
}

func TestEstimateHandler_Rooms(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("create passes dimensions", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIEstimateDataUseCase(ctrl)
		h := NewEstimateHandler(uc)

		uc.EXPECT().AddNewRoom(gomock.Any(), "e1", usecase.NewRoomInput{Name: "Kitchen", Width: 4, Length: 3}).
			Return(entities.Room{ID: "room_1", Name: "Kitchen", Width: 4, Length: 3}, nil)

		r := gin.New()
		r.POST("/v1/estimates/:estimate_id/rooms", h.CreateRoom)

		w := serve(r, http.MethodPost, "/v1/estimates/e1/rooms", `{"name":"Kitchen","width":4,"length":3}`)
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", w.Code)
		}
	})

	t.Run("invalid dimensions", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIEstimateDataUseCase(ctrl)
		h := NewEstimateHandler(uc)

		uc.EXPECT().AddNewRoom(gomock.Any(), "e1", gomock.Any()).Return(entities.Room{}, usecase.ErrInvalidRoomDimensions)

		r := gin.New()
		r.POST("/v1/estimates/:estimate_id/rooms", h.CreateRoom)

		w := serve(r, http.MethodPost, "/v1/estimates/e1/rooms", `{"name":"Kitchen","width":-1,"length":3}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("list unknown estimate", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIEstimateDataUseCase(ctrl)
		h := NewEstimateHandler(uc)

		uc.EXPECT().GetRoomsForEstimate(gomock.Any(), "nope").Return(nil, usecase.ErrEstimateNotFound)

		r := gin.New()
		r.GET("/v1/estimates/:estimate_id/rooms", h.ListRooms)

		if w := serve(r, http.MethodGet, "/v1/estimates/nope/rooms", ""); w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})

	t.Run("rename and delete", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIEstimateDataUseCase(ctrl)
		h := NewEstimateHandler(uc)

		uc.EXPECT().UpdateRoom(gomock.Any(), "e1", "r1", "Bath").Return(entities.Room{ID: "r1", Name: "Bath"}, nil)
		uc.EXPECT().RemoveRoom(gomock.Any(), "e1", "r1").Return(usecase.ErrRoomNotFound)

		r := gin.New()
		r.PATCH("/v1/estimates/:estimate_id/rooms/:room_id", h.RenameRoom)
		r.DELETE("/v1/estimates/:estimate_id/rooms/:room_id", h.DeleteRoom)

		if w := serve(r, http.MethodPatch, "/v1/estimates/e1/rooms/r1", `{"name":"Bath"}`); w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		if w := serve(r, http.MethodDelete, "/v1/estimates/e1/rooms/r1", ""); w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})
}
