package versioning

import "net/http"

// Outcome is the terminal result of a negotiation.
type Outcome int

const (
	// Continue forwards the request to the next handler.
	Continue Outcome = iota
	// Reject ends the request with a client error.
	Reject
)

func (o Outcome) String() string {
	if o == Reject {
		return "reject"
	}
	return "continue"
}

// HeaderKind says which policy value a staged header advertises.
type HeaderKind int

const (
	// CurrentVersion is the server's current version, staged on every decision.
	CurrentVersion HeaderKind = iota
	// RecommendedVersion advises the client to upgrade.
	RecommendedVersion
)

// Header is a single response header assignment.
type Header struct {
	Kind  HeaderKind
	Name  string
	Value string
}

// Decision is what the negotiator wants done with one request.
// Err is non-nil exactly when Outcome is Reject.
type Decision struct {
	Outcome Outcome
	Headers []Header
	Err     *UnsupportedVersionError
}

// Rejected reports whether the request must not reach the next handler.
func (d Decision) Rejected() bool {
	return d.Outcome == Reject
}

// Apply sets the staged headers on h in order.
func (d Decision) Apply(h http.Header) {
	for _, hdr := range d.Headers {
		h.Set(hdr.Name, hdr.Value)
	}
}

// Recommended returns the staged recommended version, if the decision advises an upgrade.
func (d Decision) Recommended() (string, bool) {
	for _, hdr := range d.Headers {
		if hdr.Kind == RecommendedVersion {
			return hdr.Value, true
		}
	}
	return "", false
}

// Header returns the staged value for name, if any.
func (d Decision) Header(name string) (string, bool) {
	name = http.CanonicalHeaderKey(name)
	for _, hdr := range d.Headers {
		if http.CanonicalHeaderKey(hdr.Name) == name {
			return hdr.Value, true
		}
	}
	return "", false
}
