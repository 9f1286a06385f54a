package versioning

import (
	"errors"
	"fmt"
)

const (
	DefaultVersionHeader     = "X-API-Version"
	DefaultRequestedHeader   = "X-API-Requested-Version"
	DefaultRecommendedHeader = "X-API-Recommended-Version"
)

// ErrInvalidConfig is returned when a Config cannot back a Negotiator.
var ErrInvalidConfig = errors.New("invalid versioning config")

// Config is the version policy of a server.
// Only Current is required; empty header names fall back to the defaults.
type Config struct {
	Current     string `yaml:"current"`
	Minimum     string `yaml:"minimum,omitempty"`
	Recommended string `yaml:"recommended,omitempty"`
	// Compatible is the range a requested version must satisfy to be served
	// without the minimum/recommended checks. Empty means Current.
	Compatible string `yaml:"compatible,omitempty"`

	VersionHeader     string `yaml:"version_header,omitempty"`
	RequestedHeader   string `yaml:"requested_header,omitempty"`
	RecommendedHeader string `yaml:"recommended_header,omitempty"`

	Verbose bool `yaml:"verbose,omitempty"`
}

// withDefaults returns a copy of cfg with empty header names and range filled in.
func (cfg Config) withDefaults() Config {
	if cfg.VersionHeader == "" {
		cfg.VersionHeader = DefaultVersionHeader
	}
	if cfg.RequestedHeader == "" {
		cfg.RequestedHeader = DefaultRequestedHeader
	}
	if cfg.RecommendedHeader == "" {
		cfg.RecommendedHeader = DefaultRecommendedHeader
	}
	if cfg.Compatible == "" {
		cfg.Compatible = cfg.Current
	}
	return cfg
}

// Validate checks the policy versions against the comparator.
func (cfg Config) Validate(cmp Comparator) error {
	if cfg.Current == "" {
		return fmt.Errorf("%w: current version is required", ErrInvalidConfig)
	}
	if !cmp.Valid(cfg.Current) {
		return fmt.Errorf("%w: current version %q is not a semantic version", ErrInvalidConfig, cfg.Current)
	}
	if cfg.Minimum != "" && !cmp.Valid(cfg.Minimum) {
		return fmt.Errorf("%w: minimum version %q is not a semantic version", ErrInvalidConfig, cfg.Minimum)
	}
	if cfg.Recommended != "" && !cmp.Valid(cfg.Recommended) {
		return fmt.Errorf("%w: recommended version %q is not a semantic version", ErrInvalidConfig, cfg.Recommended)
	}
	if cfg.Compatible != "" {
		if rc, ok := cmp.(RangeChecker); ok {
			if err := rc.ValidRange(cfg.Compatible); err != nil {
				return fmt.Errorf("%w: compatible range %q: %w", ErrInvalidConfig, cfg.Compatible, err)
			}
		}
	}
	return nil
}
