package app

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/jh125486/versiongate/pkg/cli"
	"github.com/jh125486/versiongate/pkg/versioning"
)

// CheckCmd evaluates the version policy offline for a set of requested versions.
type CheckCmd struct {
	cli.PolicyArgs `embed:""`

	Requested []string `arg:"" help:"Requested versions to evaluate (use \"\" for no version header)" name:"requested" optional:""`

	Resolved versioning.Config `kong:"-"`
}

// AfterApply is a Kong hook that resolves the policy file and flags.
func (cmd *CheckCmd) AfterApply() error {
	var err error
	cmd.Resolved, err = ResolvePolicy(&cmd.PolicyArgs)
	return err
}

// Run executes the check command.
func (cmd *CheckCmd) Run(svc *cli.Service) error {
	n, err := versioning.New(cmd.Resolved)
	if err != nil {
		return err
	}

	requested := cmd.Requested
	if len(requested) == 0 {
		requested = []string{""}
	}
	RenderDecisions(svc.Stdout, n, requested)
	return nil
}

// RenderDecisions writes one table row per requested version.
func RenderDecisions(w io.Writer, n *versioning.Negotiator, requested []string) {
	if w == nil {
		w = os.Stdout
	}
	table := tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{
				PerColumn: []tw.Align{tw.AlignLeft, tw.AlignLeft, tw.AlignRight, tw.AlignLeft, tw.AlignLeft},
			},
		},
	}))
	table.Header("Requested", "Outcome", "Status", "Headers", "Message")

	for _, r := range requested {
		d := n.Negotiate(r)

		status, message := 200, ""
		if d.Rejected() {
			status, message = d.Err.StatusCode(), d.Err.Error()
		}

		headers := make([]string, len(d.Headers))
		for i, h := range d.Headers {
			headers[i] = h.Name + ": " + h.Value
		}

		label := r
		if label == "" {
			label = "(none)"
		}
		_ = table.Append(label, d.Outcome.String(), fmt.Sprint(status), strings.Join(headers, "\n"), message)
	}
	_ = table.Render()
}
