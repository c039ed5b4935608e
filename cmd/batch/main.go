package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"legal-info/config"
	"legal-info/parser"
	"legal-info/services"
	"legal-info/storage"

	"go.uber.org/zap"
)

// Einmaliger Batch-Lauf: normalisiert alle neuen Dokumente im Eingangs-Prefix und beendet sich.
func main() {
	log.Println("Starting batch run...")

	logging, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("can't initialize zap logger: %v", err)
	}
	defer logging.Sync()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal("Config load error", zap.Error(err))
	}
	if cfg.S3URL == "" || cfg.S3Bucket == "" {
		logging.Fatal("S3_URL and S3_BUCKET are required for a batch run")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s3Client, err := storage.NewS3Client(ctx, cfg)
	if err != nil {
		logging.Fatal("S3 client creation failed", zap.Error(err))
	}

	pipeline, _, err := services.NewPipelineFromConfig(cfg, logging)
	if err != nil {
		logging.Fatal("Pipeline setup error", zap.Error(err))
	}

	batch := services.NewBatchService(
		storage.NewS3Store(s3Client, cfg.S3Bucket),
		parser.New(cfg.RowPath()), pipeline, logging,
		cfg.BatchInputPrefix, cfg.BatchOutputPrefix,
	)
	result, err := batch.Run(ctx)
	if err != nil {
		logging.Fatal("Batch run failed", zap.Error(err))
	}
	log.Printf("Batch run finished: %d processed, %d skipped, %d failed", result.Processed, result.Skipped, result.Failed)
	if result.Failed > 0 {
		logging.Fatal("Batch run finished with failures", zap.Int("failed", result.Failed))
	}
}
