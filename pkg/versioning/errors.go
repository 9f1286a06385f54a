package versioning

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrUnsupportedVersion matches every *UnsupportedVersionError via errors.Is.
var ErrUnsupportedVersion = errors.New("unsupported api version")

// Reason says why a requested version was rejected.
type Reason int

const (
	// ReasonInvalid means the requested value is not a semantic version.
	ReasonInvalid Reason = iota + 1
	// ReasonAhead means the client asked for a version newer than the server.
	ReasonAhead
	// ReasonBelowMinimum means the client is older than the minimum served version.
	ReasonBelowMinimum
)

func (r Reason) String() string {
	switch r {
	case ReasonInvalid:
		return "invalid syntax"
	case ReasonAhead:
		return "server older than requested"
	case ReasonBelowMinimum:
		return "below minimum"
	default:
		return "unknown"
	}
}

// UnsupportedVersionError is the single rejection kind of the negotiator.
// It always maps to 400 Bad Request and carries the server's current version
// so the client can correct itself.
type UnsupportedVersionError struct {
	Requested string
	Current   string
	Reason    Reason
}

func (e *UnsupportedVersionError) Error() string {
	if e.Reason == ReasonInvalid {
		return fmt.Sprintf("Invalid requested version: %s", e.Requested)
	}
	return fmt.Sprintf("Unsupported version: %s", e.Requested)
}

// Is makes errors.Is(err, ErrUnsupportedVersion) hold.
func (e *UnsupportedVersionError) Is(target error) bool {
	return target == ErrUnsupportedVersion
}

// StatusCode returns the HTTP status for the rejection.
func (e *UnsupportedVersionError) StatusCode() int {
	return http.StatusBadRequest
}

// Payload returns the error details sent back to the client.
func (e *UnsupportedVersionError) Payload() map[string]string {
	return map[string]string{"current": e.Current}
}
