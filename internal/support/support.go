// Package support retrieves the vendor-published supported-processor tables.
//
// Each recognized manufacturer maps to one HTTPS page expected to carry the
// support table at index 0. Retrieval is a single synchronous GET per run —
// no retries: the decision flow treats a failed fetch as "no records", so
// there is nothing to win by retrying inside this package. Failures are
// reported as an explicit Result value rather than by unwinding, so the
// caller's policy decides whether to degrade or abort.
package support

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/osready/osready/internal/cpuid"
	"github.com/osready/osready/internal/htmltable"
)

const (
	// DefaultTimeout bounds the single page fetch.
	DefaultTimeout = 30 * time.Second
	// DefaultUserAgent is the User-Agent header sent with requests.
	DefaultUserAgent = "osready/1.0"
	// supportTableIndex is where the support table sits on the vendor pages.
	supportTableIndex = 0
)

// defaultPages are the vendor-published supported-processor pages, keyed by
// manufacturer.
var defaultPages = map[string]string{
	cpuid.ManufacturerIntel:    "https://learn.microsoft.com/en-us/windows-hardware/design/minimum/supported/windows-11-supported-intel-processors",
	cpuid.ManufacturerAMD:      "https://learn.microsoft.com/en-us/windows-hardware/design/minimum/supported/windows-11-supported-amd-processors",
	cpuid.ManufacturerQualcomm: "https://learn.microsoft.com/en-us/windows-hardware/design/minimum/supported/windows-11-supported-qualcomm-processors",
}

// Result is the outcome of one table retrieval. Err is non-nil when the
// fetch or extraction failed; Records is nil in that case.
type Result struct {
	URL     string
	Records []htmltable.Record
	Err     error
}

// Failed reports whether retrieval failed.
func (r Result) Failed() bool {
	return r.Err != nil
}

// Retriever fetches the support table for a manufacturer.
type Retriever interface {
	Retrieve(ctx context.Context, manufacturer string) Result
}

// Client retrieves vendor pages over HTTPS.
type Client struct {
	client    *http.Client
	userAgent string
	pages     map[string]string
}

// NewClient creates a client using the built-in vendor pages, with entries
// from overrides (if any) taking precedence.
func NewClient(overrides map[string]string) *Client {
	pages := make(map[string]string, len(defaultPages))
	for m, u := range defaultPages {
		pages[m] = u
	}
	for m, u := range overrides {
		pages[m] = u
	}

	return &Client{
		client: &http.Client{
			Timeout: DefaultTimeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return fmt.Errorf("too many redirects")
				}
				return nil
			},
		},
		userAgent: DefaultUserAgent,
		pages:     pages,
	}
}

// PageURL returns the support-table page for a manufacturer.
func (c *Client) PageURL(manufacturer string) (string, bool) {
	url, ok := c.pages[manufacturer]
	return url, ok
}

// Retrieve fetches the manufacturer's page and extracts the support table.
func (c *Client) Retrieve(ctx context.Context, manufacturer string) Result {
	url, ok := c.pages[manufacturer]
	if !ok {
		return Result{Err: fmt.Errorf("no support page for manufacturer %q", manufacturer)}
	}

	records, err := c.fetchRecords(ctx, url)
	if err != nil {
		return Result{URL: url, Err: err}
	}
	return Result{URL: url, Records: records}
}

// fetchRecords performs the single GET and runs the page through the table
// extractor.
func (c *Client) fetchRecords(ctx context.Context, url string) ([]htmltable.Record, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	tables, err := htmltable.ParseTables(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse page: %w", err)
	}

	records, err := htmltable.Extract(tables, supportTableIndex)
	if err != nil {
		return nil, fmt.Errorf("extract support table: %w", err)
	}
	return records, nil
}
