package cli

import (
	"github.com/jh125486/versiongate/pkg/app"
	"github.com/jh125486/versiongate/pkg/cli"
)

// CLI defines the command-line interface structure for the versiongate application.
type CLI struct {
	cli.BaseCLI `embed:""`

	Serve app.ServeCmd `cmd:"" default:"withargs" help:"Serve the API behind the version gate"`
	Check app.CheckCmd `cmd:""                    help:"Evaluate the version policy for requested versions"`
	Probe app.ProbeCmd `cmd:""                    help:"Ask a running server how it negotiates a version"`
}
