package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	defaultMetadataTimeout = 10 * time.Second
	maxMetadataBody        = 4 << 20
)

// ErrBodyTooLarge is returned when a metadata document exceeds the size cap.
var ErrBodyTooLarge = errors.New("metadata body too large")

// MetadataClient fetches NFT metadata documents from arbitrary hosts
type MetadataClient struct {
	client *http.Client
}

// NewMetadataClient creates a new metadata client. A non-positive timeout
// falls back to the default.
func NewMetadataClient(timeout time.Duration) *MetadataClient {
	if timeout <= 0 {
		timeout = defaultMetadataTimeout
	}
	return &MetadataClient{
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// FetchJSON performs a single GET and returns the raw body. Any non-2xx
// status is an error.
func (c *MetadataClient) FetchJSON(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to get metadata: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("failed to get metadata: status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxMetadataBody+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read metadata: %w", err)
	}
	if len(body) > maxMetadataBody {
		return nil, ErrBodyTooLarge
	}
	return body, nil
}
