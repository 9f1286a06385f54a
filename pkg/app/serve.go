package app

import (
	"github.com/jh125486/versiongate/pkg/cli"
	"github.com/jh125486/versiongate/pkg/contextlog"
	"github.com/jh125486/versiongate/pkg/server"
	"github.com/jh125486/versiongate/pkg/versioning"
)

// ServeCmd runs an HTTP server whose API routes are gated by the version policy.
type ServeCmd struct {
	cli.PolicyArgs `embed:""`

	Port  string `default:"8080" env:"PORT"      help:"Port to listen on"                    name:"port"`
	Token string `env:"API_TOKEN"                help:"Bearer token required on /api routes" name:"token"`

	Resolved versioning.Config `kong:"-"`
}

// AfterApply is a Kong hook that resolves the policy file and flags.
func (cmd *ServeCmd) AfterApply() error {
	var err error
	cmd.Resolved, err = ResolvePolicy(&cmd.PolicyArgs)
	return err
}

// Run executes the serve command.
func (cmd *ServeCmd) Run(ctx cli.Context) error {
	n, err := versioning.New(cmd.Resolved, versioning.WithLogger(contextlog.From(ctx)))
	if err != nil {
		return err
	}

	port := cmd.Port
	if port == "" {
		port = "8080"
	}
	return server.Start(ctx, server.Config{
		Port:       port,
		Token:      cmd.Token,
		Negotiator: n,
	})
}
