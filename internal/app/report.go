package app

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"rate-report/internal/analytics"
	"rate-report/internal/interval"
	"rate-report/internal/storage"
)

const defaultReportFormat = "csv"

func supportedReportFormat(format string) bool {
	switch format {
	case "csv", "json":
		return true
	}
	return false
}

// resolveReportPath determines the final report path and format. An
// explicit format overrides the filename extension; a missing or
// unsupported extension falls back to csv. The target directory must
// exist, and an existing file is only replaced with force.
func resolveReportPath(path, format string, force bool) (string, string, error) {
	if path == "" {
		return "", "", fmt.Errorf("report output path is required")
	}

	format = strings.ToLower(strings.TrimSpace(format))
	if format != "" && !supportedReportFormat(format) {
		return "", "", fmt.Errorf("unsupported report format %q", format)
	}

	ext := strings.ToLower(filepath.Ext(path))
	stem := strings.TrimSuffix(path, filepath.Ext(path))
	switch {
	case format != "":
		path = stem + "." + format
	case supportedReportFormat(strings.TrimPrefix(ext, ".")):
		format = strings.TrimPrefix(ext, ".")
	default:
		format = defaultReportFormat
		path = stem + "." + defaultReportFormat
	}

	dir := filepath.Dir(path)
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return "", "", fmt.Errorf("report directory does not exist: %s", dir)
	}

	// The existing file is left untouched here; the writers truncate it
	// only once there is a finished report, so a failed run keeps the old
	// one.
	if _, err := os.Stat(path); err == nil && !force {
		return "", "", fmt.Errorf("report file already exists: %s (pass --force to overwrite)", path)
	}

	return path, format, nil
}

// historyCSV writes the historical listing as per-currency sections: the
// currency code, a header line, then date/rate rows. It is fed record
// chunks ordered by (currency, date) and keeps only the last currency as
// state, so a currency split across chunks continues its section.
type historyCSV struct {
	w            *bufio.Writer
	lastCurrency string
}

func newHistoryCSV(w *bufio.Writer) *historyCSV {
	return &historyCSV{w: w}
}

func (h *historyCSV) WriteChunk(records []storage.RateRecord) error {
	for _, rec := range records {
		if rec.Currency != h.lastCurrency {
			if h.lastCurrency != "" {
				if _, err := h.w.WriteString("\n"); err != nil {
					return err
				}
			}
			if _, err := fmt.Fprintf(h.w, "%s\nDate,Exchange rate\n", rec.Currency); err != nil {
				return err
			}
			h.lastCurrency = rec.Currency
		}
		if _, err := fmt.Fprintf(h.w, "%s,%s\n", rec.Date.Format(interval.DateFormat), rec.Rate.String()); err != nil {
			return err
		}
	}
	return nil
}

func (h *historyCSV) Flush() error {
	return h.w.Flush()
}

type currencyHistory struct {
	CurrencyCode string      `json:"currency_code"`
	Rates        []datedRate `json:"rates"`
}

type datedRate struct {
	Date string      `json:"date"`
	Rate json.Number `json:"rate"`
}

// historyJSON assembles the listing as one entry per currency. Chunks
// arrive grouped by currency, so when a chunk opens with the currency the
// previous chunk ended on, its rates extend the last entry.
type historyJSON struct {
	entries []currencyHistory
}

func (h *historyJSON) WriteChunk(records []storage.RateRecord) error {
	for _, rec := range records {
		rate := datedRate{
			Date: rec.Date.Format(interval.DateFormat),
			Rate: json.Number(rec.Rate.String()),
		}
		if n := len(h.entries); n > 0 && h.entries[n-1].CurrencyCode == rec.Currency {
			h.entries[n-1].Rates = append(h.entries[n-1].Rates, rate)
			continue
		}
		h.entries = append(h.entries, currencyHistory{
			CurrencyCode: rec.Currency,
			Rates:        []datedRate{rate},
		})
	}
	return nil
}

func (h *historyJSON) WriteTo(path string) error {
	payload, err := json.MarshalIndent(h.entries, "", "    ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, payload, 0o644)
}

func writeSwingsCSV(path string, swings analytics.Swings) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	writeExtremum := func(label string, e analytics.Extremum) {
		if e.Found {
			fmt.Fprintf(w, "%s,%s\ncurrency_code,%s\n\n", label, e.Value.String(), e.Currency)
		} else {
			fmt.Fprintf(w, "%s,null\n", label)
		}
	}
	writeExtremum("max_recorded_increase", swings.Increase)
	writeExtremum("max_recorded_decrease", swings.Decrease)
	return w.Flush()
}

func writeSwingsJSON(path string, swings analytics.Swings) error {
	entry := func(label string, e analytics.Extremum) map[string]any {
		if !e.Found {
			return map[string]any{label: nil}
		}
		return map[string]any{
			label:           json.Number(e.Value.String()),
			"currency_code": e.Currency,
		}
	}

	report := []map[string]any{
		entry("max_recorded_increase", swings.Increase),
		entry("max_recorded_decrease", swings.Decrease),
	}

	payload, err := json.MarshalIndent(report, "", "    ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, payload, 0o644)
}
