package feed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/marketplace/backend/internal/domain/shared"
)

// HTTPFetcher downloads partner feed documents over HTTP with bounded
// time and size. Any transport failure or non-2xx response surfaces as
// SOURCE_UNREACHABLE so callers never block on a slow partner host.
type HTTPFetcher struct {
	client      *http.Client
	maxBodySize int64
}

// NewHTTPFetcher creates a fetcher with the given per-request timeout and
// response size bound
func NewHTTPFetcher(timeout time.Duration, maxBodySize int64) *HTTPFetcher {
	return &HTTPFetcher{
		client:      &http.Client{Timeout: timeout},
		maxBodySize: maxBodySize,
	}
}

// Fetch downloads the document at the given URL
func (f *HTTPFetcher) Fetch(ctx context.Context, feedURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return nil, shared.ErrSourceUnreachable
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, shared.ErrSourceUnreachable
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, shared.NewDomainError("SOURCE_UNREACHABLE",
			fmt.Sprintf("Feed source responded with status %d", resp.StatusCode))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBodySize+1))
	if err != nil {
		return nil, shared.ErrSourceUnreachable
	}
	if int64(len(body)) > f.maxBodySize {
		return nil, shared.NewDomainError("SOURCE_UNREACHABLE", "Feed document exceeds the size limit")
	}
	return body, nil
}
