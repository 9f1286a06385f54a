// Package versioning decides whether a server can serve the API version a
// client asks for.
//
// A Negotiator holds an immutable Config and turns the raw value of the
// requested-version header into a Decision: the response headers to set and
// whether the request continues or is rejected with an UnsupportedVersionError.
// It performs no I/O, so transports (net/http middleware, Connect interceptors)
// only read the header, apply the decision and translate the error.
package versioning

import (
	"log/slog"
)

// Option configures a Negotiator.
type Option func(*Negotiator)

// WithLogger sets the logger used for the setup-time log line.
func WithLogger(l *slog.Logger) Option {
	return func(n *Negotiator) {
		if l != nil {
			n.logger = l
		}
	}
}

// WithComparator replaces the default semantic-version comparator.
func WithComparator(c Comparator) Option {
	return func(n *Negotiator) {
		if c != nil {
			n.cmp = c
		}
	}
}

// Negotiator evaluates requested versions against a version policy.
// It is safe for concurrent use.
type Negotiator struct {
	cfg    Config
	cmp    Comparator
	logger *slog.Logger
}

// New validates cfg and returns a Negotiator for it.
func New(cfg Config, opts ...Option) (*Negotiator, error) {
	n := &Negotiator{
		cfg:    cfg.withDefaults(),
		cmp:    Semver{},
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(n)
	}
	if err := n.cfg.Validate(n.cmp); err != nil {
		return nil, err
	}

	if n.cfg.Verbose {
		n.logger.Info("Initializing server middleware: Versioning",
			slog.String("current", n.cfg.Current),
			slog.String("minimum", n.cfg.Minimum),
			slog.String("recommended", n.cfg.Recommended),
		)
	}
	return n, nil
}

// Config returns the effective policy, with defaults applied.
func (n *Negotiator) Config() Config {
	return n.cfg
}

// RequestedHeader is the header the client declares its version in.
func (n *Negotiator) RequestedHeader() string {
	return n.cfg.RequestedHeader
}

// Negotiate decides what to do with a request that declared requested.
// An empty value means the client makes no version demand.
func (n *Negotiator) Negotiate(requested string) Decision {
	cfg := n.cfg
	d := Decision{
		Headers: []Header{{Kind: CurrentVersion, Name: cfg.VersionHeader, Value: cfg.Current}},
	}
	if requested == "" {
		return d
	}

	if !n.cmp.Valid(requested) {
		return d.reject(requested, cfg.Current, ReasonInvalid)
	}
	if n.cmp.LessThan(cfg.Current, requested) {
		return d.reject(requested, cfg.Current, ReasonAhead)
	}
	if n.cmp.Satisfies(requested, cfg.Compatible) {
		return d
	}

	if cfg.Minimum != "" && n.cmp.LessThan(requested, cfg.Minimum) {
		if cfg.Recommended != "" {
			d.Headers = append(d.Headers, Header{Kind: RecommendedVersion, Name: cfg.RecommendedHeader, Value: cfg.Recommended})
		}
		return d.reject(requested, cfg.Current, ReasonBelowMinimum)
	}
	if cfg.Recommended != "" && n.cmp.LessThan(requested, cfg.Recommended) {
		d.Headers = append(d.Headers, Header{Kind: RecommendedVersion, Name: cfg.RecommendedHeader, Value: cfg.Recommended})
	}
	return d
}

func (d Decision) reject(requested, current string, reason Reason) Decision {
	d.Outcome = Reject
	d.Err = &UnsupportedVersionError{
		Requested: requested,
		Current:   current,
		Reason:    reason,
	}
	return d
}
