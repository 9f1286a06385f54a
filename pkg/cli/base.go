package cli

import (
	"github.com/alecthomas/kong"
)

// BaseCLI defines the core fields for all CLIs using our framework.
//
//nolint:lll // Long struct tags
type BaseCLI struct {
	Version   kong.VersionFlag `help:"Show version and exit"                                name:"version"`
	LogLevel  string           `default:"info" env:"LOG_LEVEL"  help:"Log level (debug, info, warn, error)" name:"log-level"`
	LogFormat string           `default:"text" env:"LOG_FORMAT" enum:"text,json"                            help:"Log format (text, json)" name:"log-format"`
}
