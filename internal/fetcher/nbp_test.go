package fetcher

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"rate-report/internal/interval"
)

func noopLogger() zerolog.Logger {
	return zerolog.Nop()
}

func testInterval(t *testing.T) interval.Interval {
	t.Helper()
	iv, err := interval.New(
		time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC),
	)
	if err != nil {
		t.Fatal(err)
	}
	return iv
}

func TestFetchRangeTableShape(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if r.Header.Get("Accept") != "application/json" {
			t.Errorf("missing Accept header")
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
            {"table":"A","no":"001/A/NBP/2025","effectiveDate":"2025-01-02",
             "rates":[{"currency":"dolar amerykański","code":"USD","mid":4.0850},
                      {"currency":"euro","code":"EUR","mid":4.2712}]}
        ]`))
	}))
	defer srv.Close()

	c := NewClient(Options{BaseURL: srv.URL, Table: "A", Timeout: time.Second}, noopLogger())
	docs, err := c.FetchRange(context.Background(), "", testInterval(t))
	if err != nil {
		t.Fatalf("table fetch should succeed: %v", err)
	}
	if gotPath != "/tables/A/2025-01-01/2025-01-31/" {
		t.Fatalf("unexpected path %q", gotPath)
	}
	if len(docs) != 1 {
		t.Fatalf("expected 1 document, got %d", len(docs))
	}

	records, err := docs[0].Records()
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].Currency != "USD" || records[0].Rate.String() != "4.085" {
		t.Fatalf("unexpected first record: %+v", records[0])
	}
	if !records[1].Date.Equal(time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected record date: %v", records[1].Date)
	}
}

func TestFetchRangeCurrencyShape(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"table":"A","currency":"frank szwajcarski","code":"CHF",
            "rates":[{"no":"001/A/NBP/2025","effectiveDate":"2025-01-02","mid":4.5321},
                     {"no":"002/A/NBP/2025","effectiveDate":"2025-01-03","mid":4.5310}]}`))
	}))
	defer srv.Close()

	c := NewClient(Options{BaseURL: srv.URL, Table: "A", Timeout: time.Second}, noopLogger())
	docs, err := c.FetchRange(context.Background(), "CHF", testInterval(t))
	if err != nil {
		t.Fatalf("currency fetch should succeed: %v", err)
	}
	if gotPath != "/rates/A/CHF/2025-01-01/2025-01-31/" {
		t.Fatalf("unexpected path %q", gotPath)
	}

	records, err := docs[0].Records()
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	for _, rec := range records {
		if rec.Currency != "CHF" {
			t.Fatalf("record should carry the requested code, got %q", rec.Currency)
		}
	}
}

func TestFetchRangeNoDataDegradesToEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "404 NotFound - Brak danych", http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(Options{BaseURL: srv.URL, Timeout: time.Second}, noopLogger())
	docs, err := c.FetchRange(context.Background(), "USD", testInterval(t))
	if err != nil {
		t.Fatalf("404 must degrade to empty result, got %v", err)
	}
	if docs != nil {
		t.Fatalf("expected no documents, got %d", len(docs))
	}
}

func TestFetchRangeTransportFailureDegradesToEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from now on

	c := NewClient(Options{BaseURL: srv.URL, Timeout: time.Second}, noopLogger())
	docs, err := c.FetchRange(context.Background(), "", testInterval(t))
	if err != nil {
		t.Fatalf("transport failure must degrade to empty result, got %v", err)
	}
	if docs != nil {
		t.Fatalf("expected no documents, got %d", len(docs))
	}
}

func TestFetchRangeBadSchemePropagates(t *testing.T) {
	// A misconfigured base URL is not transient; retrying cannot fix it,
	// so it must not degrade to an empty result.
	c := NewClient(Options{BaseURL: "ftp://rates.invalid/api", Timeout: time.Second}, noopLogger())
	if _, err := c.FetchRange(context.Background(), "", testInterval(t)); err == nil {
		t.Fatal("expected an error for an unsupported URL scheme")
	}
}

func TestFetchRangeServerErrorPropagates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad request", http.StatusBadRequest)
	}))
	defer srv.Close()

	c := NewClient(Options{BaseURL: srv.URL, Timeout: time.Second}, noopLogger())
	if _, err := c.FetchRange(context.Background(), "", testInterval(t)); err == nil {
		t.Fatal("HTTP 400 must propagate")
	}
}

func TestFetchRangeMalformedBodyPropagates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"not":"an array"`))
	}))
	defer srv.Close()

	c := NewClient(Options{BaseURL: srv.URL, Timeout: time.Second}, noopLogger())
	if _, err := c.FetchRange(context.Background(), "", testInterval(t)); err == nil {
		t.Fatal("malformed body must propagate")
	}
}

func TestFetchRangeCancelledContextPropagates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewClient(Options{BaseURL: srv.URL, Timeout: time.Second}, noopLogger())
	if _, err := c.FetchRange(ctx, "", testInterval(t)); err == nil {
		t.Fatal("caller cancellation must not be swallowed")
	}
}
