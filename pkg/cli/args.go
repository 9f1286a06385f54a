package cli

import (
	"github.com/jh125486/versiongate/pkg/versioning"
)

// PolicyArgs contains the version policy flags shared by the serve and check commands.
//
//nolint:lll // Long struct tags
type PolicyArgs struct {
	Policy            string `env:"VERSION_POLICY"             help:"YAML policy file; flags override its values"                 name:"policy"             type:"existingfile"`
	Current           string `env:"API_VERSION"                help:"Current API version of the server"                           name:"current"`
	Minimum           string `env:"API_MINIMUM_VERSION"        help:"Lowest API version still served"                             name:"minimum"`
	Recommended       string `env:"API_RECOMMENDED_VERSION"    help:"API version clients are advised to use"                      name:"recommended"`
	Compatible        string `env:"API_COMPATIBLE_RANGE"       help:"Range served without minimum/recommended checks (default: current)" name:"compatible"`
	VersionHeader     string `env:"API_VERSION_HEADER"         help:"Response header carrying the current version"                name:"version-header"`
	RequestedHeader   string `env:"API_REQUESTED_HEADER"       help:"Request header carrying the client version"                  name:"requested-header"`
	RecommendedHeader string `env:"API_RECOMMENDED_HEADER"     help:"Response header carrying the recommended version"            name:"recommended-header"`
	Verbose           bool   `env:"VERBOSE"                    help:"Log middleware initialization"                               name:"verbose"`
}

// Overlay returns base with every flag that was set replacing the matching field.
func (a *PolicyArgs) Overlay(base versioning.Config) versioning.Config {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&base.Current, a.Current)
	set(&base.Minimum, a.Minimum)
	set(&base.Recommended, a.Recommended)
	set(&base.Compatible, a.Compatible)
	set(&base.VersionHeader, a.VersionHeader)
	set(&base.RequestedHeader, a.RequestedHeader)
	set(&base.RecommendedHeader, a.RecommendedHeader)
	if a.Verbose {
		base.Verbose = true
	}
	return base
}
