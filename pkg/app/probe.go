package app

import (
	"fmt"
	"strings"

	"github.com/jh125486/versiongate/pkg/cli"
	"github.com/jh125486/versiongate/pkg/client"
)

// ProbeCmd asks a running server how it negotiates a requested version.
//
//nolint:lll // Long struct tags
type ProbeCmd struct {
	ServerURL         string `default:"http://localhost:8080" env:"SERVER_URL"             help:"Base URL of the server"                           name:"server-url"`
	Path              string `default:"/api/policy"           help:"Path to request"        name:"path"`
	Requested         string `help:"Version to declare (empty sends no header)"             name:"requested"`
	RequestedHeader   string `env:"API_REQUESTED_HEADER"      help:"Request header carrying the version"              name:"requested-header"`
	VersionHeader     string `env:"API_VERSION_HEADER"        help:"Response header carrying the current version"     name:"version-header"`
	RecommendedHeader string `env:"API_RECOMMENDED_HEADER"    help:"Response header carrying the recommended version" name:"recommended-header"`
	Token             string `env:"API_TOKEN"                 help:"Bearer token for /api routes"                     name:"token"`
}

// Run executes the probe command. It fails when the server rejects the version.
func (cmd *ProbeCmd) Run(ctx cli.Context) error {
	svc := cli.NewService(cmd.Token, cmd.Requested, cmd.RequestedHeader, cmd.RecommendedHeader)

	report, err := client.Probe(ctx, svc.Client, client.ProbeConfig{
		URL:               strings.TrimSuffix(cmd.ServerURL, "/") + cmd.Path,
		Requested:         cmd.Requested,
		VersionHeader:     cmd.VersionHeader,
		RecommendedHeader: cmd.RecommendedHeader,
	})
	if err != nil {
		return err
	}
	report.Render(svc.Stdout)

	if !report.Accepted() {
		return fmt.Errorf("server rejected requested version %q with %d: %s", cmd.Requested, report.Status, report.Message)
	}
	return nil
}
