package chronicle

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Kind classifies an API error so callers can branch without inspecting
// raw status codes.
type Kind int

const (
	// KindAPI covers responses that fit no more specific category.
	KindAPI Kind = iota
	// KindAuth means the credential was rejected (invalid or expired).
	KindAuth
	// KindPermission means the principal lacks the required IAM role.
	KindPermission
	// KindNotFound means the export ID is unknown to this instance.
	KindNotFound
	// KindValidation means the request was malformed (bad date range,
	// unknown log type, unrepairable resource path).
	KindValidation
)

// APIError is returned when the Chronicle API responds with a
// non-success status.
type APIError struct {
	Kind       Kind
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("chronicle: HTTP %d: %s", e.StatusCode, e.Message)
	if hint := e.hint(); hint != "" {
		msg += " (" + hint + ")"
	}
	return msg
}

// hint returns the operator remediation for error kinds that have one.
func (e *APIError) hint() string {
	switch e.Kind {
	case KindPermission:
		return "grant the required IAM role on the instance"
	case KindNotFound:
		return "verify the ID belongs to the configured instance"
	}
	return ""
}

func kindForStatus(code int) Kind {
	switch code {
	case http.StatusUnauthorized:
		return KindAuth
	case http.StatusForbidden:
		return KindPermission
	case http.StatusNotFound:
		return KindNotFound
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return KindValidation
	}
	return KindAPI
}

// parseError maps a non-200 response to an *APIError, pulling the
// message out of the standard Google error envelope when present.
func parseError(resp *http.Response) *APIError {
	e := &APIError{
		Kind:       kindForStatus(resp.StatusCode),
		StatusCode: resp.StatusCode,
	}
	var body struct {
		Error struct {
			Message string `json:"message"`
			Status  string `json:"status"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Error.Message != "" {
		e.Message = body.Error.Message
	} else {
		e.Message = http.StatusText(resp.StatusCode)
	}
	return e
}
