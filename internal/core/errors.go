package core

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

var (
	// ErrSourceNotConfigured means the sheet URL is empty or still a placeholder.
	ErrSourceNotConfigured = errors.New("source url not configured")

	// ErrNoData means the export parsed to zero rows.
	ErrNoData = errors.New("no data in sheet")

	// ErrNoMatch means a complete selection matched no record. It is not fatal.
	ErrNoMatch = errors.New("no matching record")

	// ErrNotReady is returned for lookups before a dataset has loaded.
	ErrNotReady = errors.New("dataset not loaded")

	// ErrUnknownLevel is returned when an option list is requested for
	// something other than class, division or roll.
	ErrUnknownLevel = errors.New("unknown level")
)

// placeholderTokens are the literals sample configuration ships in place of a
// real sheet link. They match a whole value, a host or a path segment, never a
// substring.
var placeholderTokens = map[string]bool{
	"SHEET_CSV_URL":      true,
	"YOUR_SHEET_CSV_URL": true,
	"YOUR_CSV_URL":       true,
	"YOUR_SHEET_URL":     true,
	"YOUR_SHEET_ID":      true,
	"YOUR_SHEET":         true,
	"SHEET_ID":           true,
	"REPLACE_ME":         true,
	"CHANGEME":           true,
	"CHANGE_ME":          true,
}

// reservedHosts are the documentation domains of RFC 2606.
var reservedHosts = []string{"example.com", "example.org", "example.net"}

// CheckSourceURL returns ErrSourceNotConfigured (wrapped with the reason) when
// raw is empty, a placeholder, or not an absolute http(s) url.
func CheckSourceURL(raw string) error {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return fmt.Errorf("%w: SHEET_CSV_URL is empty", ErrSourceNotConfigured)
	}
	if isPlaceholder(trimmed) {
		return fmt.Errorf("%w: %q looks like a placeholder", ErrSourceNotConfigured, trimmed)
	}

	u, err := url.Parse(trimmed)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %q is not an http(s) url", ErrSourceNotConfigured, trimmed)
	}
	if isPlaceholderHost(u.Hostname()) || hasPlaceholderSegment(u.Path) {
		return fmt.Errorf("%w: %q looks like a placeholder", ErrSourceNotConfigured, trimmed)
	}
	return nil
}

// isPlaceholder reports a template such as <paste csv link here> or a bare
// sample token.
func isPlaceholder(value string) bool {
	if strings.Contains(value, "<") && strings.Contains(value, ">") {
		return true
	}
	return placeholderTokens[strings.ToUpper(value)]
}

func isPlaceholderHost(host string) bool {
	if placeholderTokens[strings.ToUpper(host)] {
		return true
	}
	host = strings.ToLower(host)
	for _, reserved := range reservedHosts {
		if host == reserved || strings.HasSuffix(host, "."+reserved) {
			return true
		}
	}
	return false
}

func hasPlaceholderSegment(path string) bool {
	for _, seg := range strings.Split(path, "/") {
		if placeholderTokens[strings.ToUpper(seg)] {
			return true
		}
	}
	return false
}
