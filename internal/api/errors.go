package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Sentinel errors for the backend failure modes callers branch on. They wrap
// the underlying *APIError, so errors.Is works on both.
var (
	ErrNotFound          = errors.New("tress not found")
	ErrExpired           = errors.New("tress has expired")
	ErrRateLimited       = errors.New("rate limited")
	ErrAnonExpiryTooLong = errors.New("anonymous tresses cannot live longer than 365 days")
	ErrPayloadTooLarge   = errors.New("content exceeds the size limit")
	ErrUnauthorized      = errors.New("authentication required")
	ErrForbidden         = errors.New("not allowed")
)

// fallbackDetail is used when an error body carries no parseable detail.
const fallbackDetail = "an unknown error occurred"

// APIError is an HTTP error response from the backend, normalized to its
// status code and human-readable detail message.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (status %d): %s", e.Status, e.Detail)
}

// Is maps backend responses onto the sentinel errors. The backend reports
// some domain failures only through its detail text, so the substring
// matching lives here and nowhere else.
func (e *APIError) Is(target error) bool {
	detail := strings.ToLower(e.Detail)
	switch target {
	case ErrNotFound:
		return e.Status == http.StatusNotFound
	case ErrUnauthorized:
		return e.Status == http.StatusUnauthorized
	case ErrForbidden:
		return e.Status == http.StatusForbidden
	case ErrPayloadTooLarge:
		return e.Status == http.StatusRequestEntityTooLarge ||
			strings.Contains(detail, "too large")
	case ErrRateLimited:
		return e.Status == http.StatusTooManyRequests ||
			strings.Contains(detail, "rate limit")
	case ErrExpired:
		return strings.Contains(detail, "expired")
	case ErrAnonExpiryTooLong:
		return strings.Contains(detail, "365")
	}
	return false
}

// errorBody is the JSON error envelope the backend returns.
type errorBody struct {
	Detail string `json:"detail"`
}

// decodeError turns a non-2xx response into an *APIError, falling back to a
// generic detail when the body is not parseable JSON.
func decodeError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode, Detail: fallbackDetail}
	var body errorBody
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Detail != "" {
		apiErr.Detail = body.Detail
	}
	return apiErr
}

// UserMessage renders an error the way pages surface it: backend detail
// verbatim, transport failures as the generic fallback.
func UserMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Detail
	}
	if err != nil {
		return fallbackDetail
	}
	return ""
}
