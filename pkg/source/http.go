// pkg/source/http.go
package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// HTTPSource fetches the published dataset from a remote URL.
type HTTPSource struct {
	url     string
	client  *http.Client
	logger  *zap.Logger
	timeout time.Duration
}

// NewHTTPSource creates an HTTP source with the given fetch timeout.
func NewHTTPSource(url string, timeout time.Duration, logger *zap.Logger) *HTTPSource {
	return &HTTPSource{
		url:     url,
		client:  &http.Client{Timeout: timeout},
		logger:  logger.Named("http-source"),
		timeout: timeout,
	}
}

// Fetch downloads the dataset bytes.
func (s *HTTPSource) Fetch(ctx context.Context) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	start := time.Now()
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", s.url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d fetching %s", resp.StatusCode, s.url)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	s.logger.Info("Fetched dataset",
		zap.String("url", s.url),
		zap.Int("bytes", len(data)),
		zap.Duration("duration", time.Since(start)))

	return data, nil
}

// Describe returns the source URL for logging.
func (s *HTTPSource) Describe() string {
	return s.url
}
