// pkg/source/source.go
package source

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/ucass-tools/paygap/pkg/config"
)

// Source defines the interface for raw dataset providers. A Source returns
// the published FT-UCASS table as raw CSV bytes; decoding and validation
// happen in Decode. Fetch failures are the caller's concern, there is no
// retry logic here.
type Source interface {
	// Fetch retrieves the raw dataset bytes
	Fetch(ctx context.Context) ([]byte, error)

	// Describe returns a human-readable description of the source for logging
	Describe() string
}

// NewFromConfig creates the source selected by configuration: an HTTP fetch
// when SOURCE_URL is set, a local file read when SOURCE_FILE is set.
func NewFromConfig(cfg *config.Config, logger *zap.Logger) (Source, error) {
	switch {
	case cfg.SourceURL != "":
		logger.Info("Creating HTTP source",
			zap.String("url", cfg.SourceURL),
			zap.Duration("timeout", cfg.FetchTimeout))
		return NewHTTPSource(cfg.SourceURL, cfg.FetchTimeout, logger), nil

	case cfg.SourceFile != "":
		logger.Info("Creating file source", zap.String("path", cfg.SourceFile))
		return NewFileSource(cfg.SourceFile, logger), nil

	default:
		return nil, fmt.Errorf("no data source configured")
	}
}
