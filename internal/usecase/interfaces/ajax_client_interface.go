package interfaces

import (
	"context"
	"encoding/json"
	"fmt"
)

// AjaxResponse is the `data` member of a successful admin-ajax envelope.
//
// Cached is set when the response came from the per-action cache. Fallback is
// set when that cached copy was served because the live request failed.
type AjaxResponse struct {
	Data     json.RawMessage
	Cached   bool
	Fallback bool
}

// AjaxErrorData is the structured `data` of a `success:false` envelope.
type AjaxErrorData struct {
	Message         string          `json:"message,omitempty"`
	Duplicate       bool            `json:"duplicate,omitempty"`
	PrimaryConflict bool            `json:"primary_conflict,omitempty"`
	Raw             json.RawMessage `json:"-"`
}

// AjaxError is returned for server-side rejections. Transport failures are
// returned as plain wrapped errors.
type AjaxError struct {
	Action     string
	HTTPStatus int
	Data       AjaxErrorData
}

func (e *AjaxError) Error() string {
	if e.Data.Message != "" {
		return fmt.Sprintf("ajax %s: %s", e.Action, e.Data.Message)
	}
	return fmt.Sprintf("ajax %s: request rejected (status %d)", e.Action, e.HTTPStatus)
}

// IAjaxClient is the action-keyed network shim in front of admin-ajax.php.
type IAjaxClient interface {
	Request(ctx context.Context, action string, payload map[string]any) (AjaxResponse, error)
	ClearCache(action string)
}
