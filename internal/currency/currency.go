package currency

import (
	"fmt"
	"strings"
)

// Known lists the ISO 4217 codes published in NBP table A. Coverage of a
// cached date counts as complete only when every code in the requested set
// (or this whole universe when no filter is given) has a record.
var Known = []string{
	"THB", "USD", "AUD", "HKD", "CAD", "NZD", "SGD", "EUR", "HUF",
	"CHF", "GBP", "UAH", "JPY", "CZK", "DKK", "ISK", "NOK", "SEK",
	"RON", "BGN", "TRY", "ILS", "CLP", "PHP", "MXN", "ZAR", "BRL",
	"MYR", "IDR", "INR", "KRW", "CNY", "XDR",
}

var knownSet = func() map[string]struct{} {
	set := make(map[string]struct{}, len(Known))
	for _, code := range Known {
		set[code] = struct{}{}
	}
	return set
}()

// UniverseSize returns the number of currencies the remote source publishes.
func UniverseSize() int {
	return len(Known)
}

// IsKnown reports whether code belongs to the published universe.
func IsKnown(code string) bool {
	_, ok := knownSet[code]
	return ok
}

// Normalize upper-cases, validates, and de-duplicates a user supplied list
// of currency codes, preserving first-seen order.
func Normalize(codes []string) ([]string, error) {
	if len(codes) == 0 {
		return nil, nil
	}

	seen := make(map[string]struct{}, len(codes))
	result := make([]string, 0, len(codes))
	for _, raw := range codes {
		code := strings.ToUpper(strings.TrimSpace(raw))
		if code == "" {
			continue
		}
		if !IsKnown(code) {
			return nil, fmt.Errorf("unsupported currency code %q", code)
		}
		if _, dup := seen[code]; dup {
			continue
		}
		seen[code] = struct{}{}
		result = append(result, code)
	}
	if len(result) == 0 {
		return nil, fmt.Errorf("no valid currency codes provided")
	}
	return result, nil
}
