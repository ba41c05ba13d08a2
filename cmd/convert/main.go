package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/seismic-report-etl/internal/adapter/filesystem"
	kafkaadapter "github.com/couchcryptid/seismic-report-etl/internal/adapter/kafka"
	"github.com/couchcryptid/seismic-report-etl/internal/config"
	"github.com/couchcryptid/seismic-report-etl/internal/observability"
	"github.com/couchcryptid/seismic-report-etl/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics(nil)

	source := filesystem.NewSource(cfg, logger)
	writer, err := filesystem.NewCSVWriter(cfg.OutputRoot, logger)
	if err != nil {
		logger.Error("failed to prepare output root", "error", err)
		os.Exit(1)
	}

	var opts []pipeline.Option
	if cfg.KafkaEnabled() {
		publisher := kafkaadapter.NewWriter(cfg, logger)
		defer func() {
			if err := publisher.Close(); err != nil {
				logger.Error("kafka writer close error", "error", err)
			}
		}()
		opts = append(opts, pipeline.WithPublisher(publisher))
		logger.Info("kafka record sink enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
	}

	p := pipeline.New(source, pipeline.NewTransformer(logger), writer, logger, metrics, opts...)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("converting reports", "input", cfg.InputRoot, "output", cfg.OutputRoot, "layout", cfg.OutputLayout)
	summary, err := p.Run(ctx)
	if err != nil {
		logger.Error("conversion failed", "error", err)
		stop()
		os.Exit(1)
	}

	printSummary(os.Stdout, cfg.OutputRoot, summary)

	if cfg.MetricsTextfile != "" {
		metrics.RegisterRuntimeCollectors()
		if err := metrics.WriteTextfile(cfg.MetricsTextfile); err != nil {
			logger.Error("failed to write metrics textfile", "path", cfg.MetricsTextfile, "error", err)
		}
	}
}
