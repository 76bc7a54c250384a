package yahoo

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNotAuthenticated means no credential is on file for the user.
	ErrNotAuthenticated = errors.New("user is not authenticated with yahoo")

	// ErrReauthRequired means the refresh token has been rejected (or a
	// refreshed access token still fails authorization). The user must
	// redo the full login flow; retrying here cannot help.
	ErrReauthRequired = errors.New("yahoo authorization expired, login required")
)

// VendorErrorKind classifies non-authorization vendor failures. The client
// never retries these; retry policy belongs to the caller.
type VendorErrorKind string

const (
	KindRateLimit VendorErrorKind = "rate_limit"
	KindNotFound  VendorErrorKind = "not_found"
	KindServer    VendorErrorKind = "server"
	KindTimeout   VendorErrorKind = "timeout"
	KindOther     VendorErrorKind = "other"
)

// VendorError is a non-authorization failure talking to the vendor API.
type VendorError struct {
	Kind       VendorErrorKind
	StatusCode int
	Message    string
}

func (e *VendorError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("yahoo %s error: status %d", e.Kind, e.StatusCode)
	}
	return fmt.Sprintf("yahoo %s error: %s", e.Kind, e.Message)
}

func vendorErrorForStatus(status int) *VendorError {
	kind := KindOther
	switch {
	case status == http.StatusTooManyRequests:
		kind = KindRateLimit
	case status == http.StatusNotFound:
		kind = KindNotFound
	case status >= 500:
		kind = KindServer
	}
	return &VendorError{Kind: kind, StatusCode: status}
}
