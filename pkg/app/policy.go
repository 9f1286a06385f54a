// Package app holds the versiongate commands.
package app

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/jh125486/versiongate/pkg/cli"
	"github.com/jh125486/versiongate/pkg/versioning"
)

// LoadPolicy reads a YAML version policy file.
// Unknown keys are rejected so that typos do not silently drop a threshold.
func LoadPolicy(path string) (versioning.Config, error) {
	var cfg versioning.Config

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read policy file: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse policy file %s: %w", path, err)
	}
	return cfg, nil
}

// ResolvePolicy merges the optional policy file with the flags; flags win.
func ResolvePolicy(args *cli.PolicyArgs) (versioning.Config, error) {
	var base versioning.Config
	if args.Policy != "" {
		var err error
		if base, err = LoadPolicy(args.Policy); err != nil {
			return base, err
		}
	}
	return args.Overlay(base), nil
}
