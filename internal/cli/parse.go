package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	cryptocompare "github.com/alnah/go-cryptocompare"
)

// parseSymbols splits a comma-separated list such as "btc, eth" into
// upper-cased symbols. Empty entries are rejected.
func parseSymbols(raw string) (cryptocompare.Symbols, error) {
	parts := strings.Split(raw, ",")
	syms := make(cryptocompare.Symbols, 0, len(parts))
	for _, p := range parts {
		p = strings.ToUpper(strings.TrimSpace(p))
		if p == "" {
			return nil, fmt.Errorf("%q: empty entry: %w", raw, ErrInvalidSymbol)
		}
		syms = append(syms, p)
	}
	return syms, nil
}

// parseSymbol accepts exactly one symbol.
func parseSymbol(raw string) (string, error) {
	syms, err := parseSymbols(raw)
	if err != nil {
		return "", err
	}
	if len(syms) != 1 {
		return "", fmt.Errorf("%q: expected a single symbol: %w", raw, ErrInvalidSymbol)
	}
	return syms[0], nil
}

// Layouts accepted by parseTime, tried in order after unix seconds.
var timeLayouts = []string{time.RFC3339, "2006-01-02T15:04", time.DateOnly}

// parseTime accepts unix seconds, RFC 3339, "2006-01-02T15:04" or a bare
// date (midnight UTC). An empty string yields the zero time.
func parseTime(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, nil
	}
	if secs, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return time.Unix(secs, 0).UTC(), nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%q (use unix seconds, RFC 3339 or YYYY-MM-DD): %w", raw, ErrInvalidTime)
}

// calculations maps lower-cased names to calculation types. Both spellings
// of the volume ratio are accepted.
var calculations = map[string]cryptocompare.CalculationType{
	"close":      cryptocompare.Close,
	"midhighlow": cryptocompare.MidHighLow,
	"volfvolt":   cryptocompare.VolFVolT,
	"voifvoit":   cryptocompare.VolFVolT,
}

// parseCalculation resolves a case-insensitive calculation name.
// Empty means the service default.
func parseCalculation(raw string) (cryptocompare.CalculationType, error) {
	if raw == "" {
		return "", nil
	}
	c, ok := calculations[strings.ToLower(raw)]
	if !ok {
		return "", fmt.Errorf("%q (valid: Close, MidHighLow, VolFVolT): %w", raw, ErrInvalidCalculation)
	}
	return c, nil
}
