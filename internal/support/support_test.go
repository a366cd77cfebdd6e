package support

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/osready/osready/internal/cpuid"
)

const supportPage = `
<html><body>
<table>
  <tr><th>Model</th><th>Status</th></tr>
  <tr><td>i7-10700K</td><td>Supported</td></tr>
  <tr><td>i5-10400</td><td>Supported</td></tr>
</table>
</body></html>`

func TestRetrieve(t *testing.T) {
	var gotUserAgent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserAgent = r.Header.Get("User-Agent")
		w.Write([]byte(supportPage))
	}))
	defer srv.Close()

	c := NewClient(map[string]string{cpuid.ManufacturerIntel: srv.URL})

	res := c.Retrieve(context.Background(), cpuid.ManufacturerIntel)
	if res.Failed() {
		t.Fatalf("Retrieve() failed: %v", res.Err)
	}
	if res.URL != srv.URL {
		t.Errorf("Result.URL = %q, want %q", res.URL, srv.URL)
	}
	if len(res.Records) != 2 {
		t.Fatalf("Retrieve() returned %d records, want 2", len(res.Records))
	}
	if v, _ := res.Records[0].Get("Model"); v != "i7-10700K" {
		t.Errorf("first record Model = %q, want i7-10700K", v)
	}
	if gotUserAgent != DefaultUserAgent {
		t.Errorf("User-Agent = %q, want %q", gotUserAgent, DefaultUserAgent)
	}
}

func TestRetrieveServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(map[string]string{cpuid.ManufacturerAMD: srv.URL})

	res := c.Retrieve(context.Background(), cpuid.ManufacturerAMD)
	if !res.Failed() {
		t.Fatal("Retrieve() succeeded against a 500 response")
	}
	if res.Records != nil {
		t.Errorf("failed result carries records: %v", res.Records)
	}
}

func TestRetrievePageWithoutTables(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body><p>maintenance</p></body></html>"))
	}))
	defer srv.Close()

	c := NewClient(map[string]string{cpuid.ManufacturerIntel: srv.URL})

	// No table at index 0 is an extraction failure, reported in Result.
	res := c.Retrieve(context.Background(), cpuid.ManufacturerIntel)
	if !res.Failed() {
		t.Fatal("Retrieve() succeeded against a page with no tables")
	}
}

func TestRetrieveUnknownManufacturer(t *testing.T) {
	c := NewClient(nil)

	res := c.Retrieve(context.Background(), "VIA")
	if !res.Failed() {
		t.Fatal("Retrieve() succeeded for unknown manufacturer")
	}
}

func TestRetrieveUnreachableServer(t *testing.T) {
	// Grab a URL that refuses connections by closing the server first.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := NewClient(map[string]string{cpuid.ManufacturerQualcomm: url})

	res := c.Retrieve(context.Background(), cpuid.ManufacturerQualcomm)
	if !res.Failed() {
		t.Fatal("Retrieve() succeeded against a closed server")
	}
}

func TestRetrieveContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(supportPage))
	}))
	defer srv.Close()

	c := NewClient(map[string]string{cpuid.ManufacturerIntel: srv.URL})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := c.Retrieve(ctx, cpuid.ManufacturerIntel)
	if !res.Failed() {
		t.Fatal("Retrieve() succeeded with cancelled context")
	}
}

func TestPageURLDefaults(t *testing.T) {
	c := NewClient(nil)

	for _, m := range []string{cpuid.ManufacturerIntel, cpuid.ManufacturerAMD, cpuid.ManufacturerQualcomm} {
		if _, ok := c.PageURL(m); !ok {
			t.Errorf("PageURL(%q) missing default page", m)
		}
	}
	if _, ok := c.PageURL("VIA"); ok {
		t.Error("PageURL(VIA) unexpectedly present")
	}
}

func TestNewClientOverridePrecedence(t *testing.T) {
	c := NewClient(map[string]string{cpuid.ManufacturerIntel: "https://example.com/intel"})

	if url, _ := c.PageURL(cpuid.ManufacturerIntel); url != "https://example.com/intel" {
		t.Errorf("override not applied, got %q", url)
	}
	if url, _ := c.PageURL(cpuid.ManufacturerAMD); url == "" {
		t.Error("default AMD page lost after override")
	}
}
