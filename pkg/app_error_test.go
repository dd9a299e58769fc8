package pkg

import (
	"errors"
	"net/http"
	"testing"
)

func TestAppError(t *testing.T) {
	t.Run("simple", func(t *testing.T) {
		e := NewDomainErrorSimple("ESTIMATE_NOT_FOUND", "Estimate not found", http.StatusNotFound)
		if e.Error() != "ESTIMATE_NOT_FOUND: Estimate not found" {
			t.Fatalf("unexpected message: %s", e.Error())
		}
		body := e.ToHTTPError()
		if body.Code != "ESTIMATE_NOT_FOUND" || body.Details != nil {
			t.Fatalf("unexpected body: %+v", body)
		}
	})

	t.Run("wraps cause", func(t *testing.T) {
		cause := errors.New("boom")
		e := NewDomainError("INTERNAL_ERROR", "An internal error occurred", cause, http.StatusInternalServerError)
		if !errors.Is(e, cause) {
			t.Fatalf("expected cause to be unwrapped")
		}
	})

	t.Run("details", func(t *testing.T) {
		e := NewDomainErrorSimple("PRIMARY_CATEGORY_CONFLICT", "conflict", http.StatusConflict).WithDetails(map[string]string{"existing": "200"})
		if e.ToHTTPError().Details == nil {
			t.Fatalf("expected details")
		}
	})
}
