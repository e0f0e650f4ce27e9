package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ucass-tools/paygap/pkg/cleaner"
	"github.com/ucass-tools/paygap/pkg/config"
	"github.com/ucass-tools/paygap/pkg/pipeline"
	"github.com/ucass-tools/paygap/pkg/source"
)

func main() {
	// .env is optional; real deployments configure through the environment
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}

	logger, err := buildLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	if err := run(context.Background(), cfg, logger); err != nil {
		category := pipeline.Categorize(err)
		logger.Error("Pipeline run failed",
			zap.Error(err),
			zap.String("category", category.String()),
			zap.Bool("fatal", category.Fatal()))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	src, err := source.NewFromConfig(cfg, logger)
	if err != nil {
		return err
	}

	p := pipeline.New(src, cfg, logger)

	if cfg.AuditDatabaseURL != "" {
		sink, err := cleaner.NewAuditSink(ctx, cfg.AuditDatabaseURL, logger)
		if err != nil {
			return err
		}
		defer sink.Close()
		p = p.WithAuditSink(sink)
	}

	result, err := p.Run(ctx)
	if err != nil {
		return err
	}

	out := os.Stdout
	if cfg.OutputPath != "" {
		f, err := os.Create(cfg.OutputPath)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	if err := writeSummary(out, result); err != nil {
		return fmt.Errorf("failed to write summary table: %w", err)
	}

	if cfg.OutputPath != "" {
		logger.Info("Wrote summary table", zap.String("path", cfg.OutputPath))
	}
	return nil
}

// buildLogger constructs the zap logger from configuration.
func buildLogger(cfg *config.Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}

	var zapCfg zap.Config
	if cfg.LogFormat == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
