// pkg/source/file.go
package source

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"
)

// FileSource reads a previously downloaded copy of the dataset from disk.
type FileSource struct {
	path   string
	logger *zap.Logger
}

// NewFileSource creates a file source.
func NewFileSource(path string, logger *zap.Logger) *FileSource {
	return &FileSource{
		path:   path,
		logger: logger.Named("file-source"),
	}
}

// Fetch reads the dataset bytes from disk.
func (s *FileSource) Fetch(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", s.path, err)
	}

	s.logger.Info("Read dataset", zap.String("path", s.path), zap.Int("bytes", len(data)))
	return data, nil
}

// Describe returns the source path for logging.
func (s *FileSource) Describe() string {
	return s.path
}
