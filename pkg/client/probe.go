package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/jh125486/versiongate/pkg/middleware"
	"github.com/jh125486/versiongate/pkg/versioning"
)

type (
	// ProbeConfig describes a single negotiation probe against a server.
	ProbeConfig struct {
		URL               string
		Requested         string
		VersionHeader     string
		RecommendedHeader string
	}

	// Report is what a server answered to a probe.
	Report struct {
		URL         string
		Requested   string
		Status      int
		Current     string
		Recommended string
		Message     string
	}
)

// Accepted reports whether the server answered with a success or redirect status.
func (r *Report) Accepted() bool {
	return r.Status >= http.StatusOK && r.Status < http.StatusBadRequest
}

// Probe sends a GET to cfg.URL and records how the server negotiated the version.
// The requested version is declared by httpClient's transport (see VersionTransport);
// cfg.Requested is only used for the report.
func Probe(ctx context.Context, httpClient *http.Client, cfg ProbeConfig) (*Report, error) {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if cfg.VersionHeader == "" {
		cfg.VersionHeader = versioning.DefaultVersionHeader
	}
	if cfg.RecommendedHeader == "" {
		cfg.RecommendedHeader = versioning.DefaultRecommendedHeader
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, cfg.URL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to build probe request: %w", err)
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to probe %s: %w", cfg.URL, err)
	}
	defer resp.Body.Close()

	report := &Report{
		URL:         cfg.URL,
		Requested:   cfg.Requested,
		Status:      resp.StatusCode,
		Current:     resp.Header.Get(cfg.VersionHeader),
		Recommended: resp.Header.Get(cfg.RecommendedHeader),
	}

	if !report.Accepted() {
		report.Message = errorMessage(resp)
	}
	return report, nil
}

// errorMessage reads the ErrorBody message of a failed response, falling back
// to the raw body and then to the status text.
func errorMessage(resp *http.Response) string {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))

	var body middleware.ErrorBody
	if err := json.Unmarshal(data, &body); err == nil && body.Message != "" {
		return body.Message
	}
	if msg := strings.TrimSpace(string(data)); msg != "" {
		return msg
	}
	return http.StatusText(resp.StatusCode)
}

// Render outputs the report as a two-column table.
func (r *Report) Render(w io.Writer) {
	if w == nil {
		w = os.Stdout
	}
	table := tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{
				PerColumn: []tw.Align{tw.AlignLeft, tw.AlignLeft},
			},
		},
	}))
	table.Header("Field", "Value")

	requested := r.Requested
	if requested == "" {
		requested = "(none)"
	}
	outcome := versioning.Continue
	if !r.Accepted() {
		outcome = versioning.Reject
	}

	_ = table.Append("URL", r.URL)
	_ = table.Append("Requested", requested)
	_ = table.Append("Status", fmt.Sprintf("%d %s", r.Status, http.StatusText(r.Status)))
	_ = table.Append("Outcome", outcome.String())
	_ = table.Append("Current", r.Current)
	_ = table.Append("Recommended", r.Recommended)
	if r.Message != "" {
		_ = table.Append("Message", r.Message)
	}
	_ = table.Render()
}
