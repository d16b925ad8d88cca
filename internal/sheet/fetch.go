package sheet

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// DefaultMaxBytes caps the export size when the caller passes no limit (10MB).
const DefaultMaxBytes int64 = 10 * 1024 * 1024

// ErrTooLarge is wrapped by FetchError when the body exceeds the size limit.
var ErrTooLarge = errors.New("response too large")

// FetchError reports a failed download of the published export.
// StatusCode is zero when the request never produced a response.
type FetchError struct {
	URL        string
	StatusCode int
	Status     string
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch failed: %s (http status %d)", e.Status, e.StatusCode)
	}
	return fmt.Sprintf("fetch failed: %v", e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Payload is a downloaded export decoded to UTF-8.
type Payload struct {
	Text    string
	Charset string
	Bytes   int
}

// Fetcher downloads a published sheet export. It performs exactly one GET per
// call and never retries.
type Fetcher struct {
	client    *http.Client
	maxBytes  int64
	userAgent string
}

// NewFetcher creates a Fetcher. A nil client means http.DefaultClient and a
// non-positive maxBytes means DefaultMaxBytes.
func NewFetcher(client *http.Client, maxBytes int64, userAgent string) *Fetcher {
	if client == nil {
		client = http.DefaultClient
	}
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &Fetcher{
		client:    client,
		maxBytes:  maxBytes,
		userAgent: userAgent,
	}
}

// Fetch downloads url and decodes the body. Non-2xx responses, transport
// failures and oversized bodies are returned as *FetchError.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*Payload, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	req.Header.Set("Accept", "text/csv, text/plain;q=0.9, */*;q=0.5")
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain a little so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, &FetchError{
			URL:        url,
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return nil, &FetchError{URL: url, Err: fmt.Errorf("read body: %w", err)}
	}
	if int64(len(body)) > f.maxBytes {
		return nil, &FetchError{URL: url, Err: fmt.Errorf("%w: limit %d bytes", ErrTooLarge, f.maxBytes)}
	}

	text, charset, err := Decode(body)
	if err != nil {
		return nil, err
	}

	return &Payload{Text: text, Charset: charset, Bytes: len(body)}, nil
}
