package cli

import (
	"context"

	"github.com/alecthomas/kong"
)

// Context wraps context.Context to work around reflection issues in Kong's Bind().
// Use this as the parameter type for Kong command Run methods.
type Context struct {
	context.Context
}

// NewKongContext creates and configures a Kong parser context for a CLI application.
// The version is exposed to kong.VersionFlag through the "version" variable.
// Pass nil for args to use os.Args (typical for production), or provide custom args for testing.
// It panics if the grammar is invalid or the arguments do not parse.
func NewKongContext(name string, version Version, cli any, args []string, opts ...kong.Option) *kong.Context {
	opts = append([]kong.Option{
		kong.Name(name),
		kong.UsageOnError(),
		kong.Vars{"version": string(version)},
	}, opts...)

	parser, err := kong.New(cli, opts...)
	if err != nil {
		panic(err)
	}
	kctx, err := parser.Parse(args)
	if err != nil {
		parser.Errorf("%s", err)
		panic(err)
	}
	return kctx
}
