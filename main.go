package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"legal-info/config"
	"legal-info/metrics"
	"legal-info/parser"
	"legal-info/services"
	"legal-info/storage"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

func main() {
	logging, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("can't initialize zap logger: %v", err)
	}
	defer logging.Sync()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal("Config load error", zap.Error(err))
	}

	pipeline, recognizer, err := services.NewPipelineFromConfig(cfg, logging)
	if err != nil {
		logging.Fatal("Pipeline setup error", zap.Error(err))
	}
	logging.Info("Date recognizer loaded",
		zap.String("recognizer", recognizer.Name()),
		zap.String("locale", cfg.DateLocale),
		zap.String("duration_anchor", cfg.DurationAnchor))

	docParser := parser.New(cfg.RowPath())

	// Optionaler Batch-Betrieb über S3
	var batchService *services.BatchService
	if cfg.BatchEnabled {
		s3Client, err := storage.NewS3Client(context.Background(), cfg)
		if err != nil {
			logging.Fatal("S3 client creation failed", zap.Error(err))
		}
		batchService = services.NewBatchService(
			storage.NewS3Store(s3Client, cfg.S3Bucket),
			docParser, pipeline, logging,
			cfg.BatchInputPrefix, cfg.BatchOutputPrefix,
		)
		batchService.Observe = metrics.ObserveReport

		cronScheduler := cron.New()
		_, err = cronScheduler.AddFunc(cfg.BatchCronSchedule, func() {
			logging.Info("Running scheduled batch job...")
			result, err := batchService.Run(context.Background())
			if err != nil {
				logging.Error("Batch job failed", zap.Error(err))
				return
			}
			observeBatch(result)
		})
		if err != nil {
			logging.Fatal("Invalid batch cron schedule", zap.String("schedule", cfg.BatchCronSchedule), zap.Error(err))
		}
		cronScheduler.Start()
		defer cronScheduler.Stop()
		logging.Info("Batch mode enabled", zap.String("schedule", cfg.BatchCronSchedule), zap.String("bucket", cfg.S3Bucket))
	}

	router := newRouter(cfg, docParser, pipeline, batchService, logging)

	logging.Info("Starting server", zap.String("port", cfg.HTTPPort))
	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadTimeout:       30 * time.Second,
		ReadHeaderTimeout: 15 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		logging.Fatal("Failed to run server", zap.Error(err))
	}
}

func observeBatch(result services.BatchResult) {
	metrics.BatchObjects.WithLabelValues("processed").Add(float64(result.Processed))
	metrics.BatchObjects.WithLabelValues("skipped").Add(float64(result.Skipped))
	metrics.BatchObjects.WithLabelValues("failed").Add(float64(result.Failed))
}

func newRouter(cfg *config.Config, docParser *parser.Parser, pipeline *services.Pipeline, batchService *services.BatchService, log *zap.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	setupLegalInfoRoutes(router, cfg, docParser, pipeline, log)
	if batchService != nil {
		setupBatchRoutes(router, batchService, log)
	}
	return router
}

func setupLegalInfoRoutes(router *gin.Engine, cfg *config.Config, docParser *parser.Parser, pipeline *services.Pipeline, log *zap.Logger) {
	// POST - Dokument (XML, JSON oder YAML) zusammenführen und normalisieren
	router.POST("/get_legal_info", func(c *gin.Context) {
		contentType := c.GetHeader("Content-Type")
		format, err := parser.FormatFromContentType(contentType)
		if err != nil {
			respond(c, "unsupported", http.StatusBadRequest, gin.H{"detail": fmt.Sprintf("Content type %s not supported", contentType)})
			return
		}
		reqLog := log.With(zap.String("format", string(format)))

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, cfg.MaxBodyBytes)
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				respond(c, string(format), http.StatusRequestEntityTooLarge, gin.H{"detail": "request body too large"})
				return
			}
			reqLog.Error("Reading request body failed", zap.Error(err))
			respond(c, string(format), http.StatusBadRequest, gin.H{"detail": "could not read request body"})
			return
		}

		input, err := docParser.Parse(format, body)
		if err != nil {
			reqLog.Info("Rejected unparsable document", zap.Error(err))
			respond(c, string(format), http.StatusBadRequest, gin.H{"detail": err.Error()})
			return
		}

		start := time.Now()
		merged, report, err := pipeline.Process(c.Request.Context(), input)
		metrics.ProcessingSeconds.Observe(time.Since(start).Seconds())
		if err != nil {
			if errors.Is(err, services.ErrUnsupportedShape) {
				respond(c, string(format), http.StatusBadRequest, gin.H{"detail": err.Error()})
				return
			}
			reqLog.Warn("Processing aborted", zap.Error(err))
			respond(c, string(format), http.StatusServiceUnavailable, gin.H{"detail": "processing aborted"})
			return
		}
		metrics.ObserveReport(report)
		reqLog.Info("Document normalized",
			zap.Int("merge_dropped", report.Merge.Dropped),
			zap.Int("dates_rewritten", report.Dates.Rewritten),
			zap.Int("durations_rewritten", report.Durations.Rewritten))
		respond(c, string(format), http.StatusOK, merged)
	})
}

func setupBatchRoutes(router *gin.Engine, batchService *services.BatchService, log *zap.Logger) {
	rg := router.Group("/batch")

	// POST - Batch-Lauf manuell anstoßen
	rg.POST("/run", func(c *gin.Context) {
		result, err := batchService.Run(c.Request.Context())
		if err != nil {
			if errors.Is(err, services.ErrBatchRunning) {
				c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
				return
			}
			log.Error("Manual batch run failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "batch run failed"})
			return
		}
		observeBatch(result)
		c.JSON(http.StatusOK, result)
	})
}

func respond(c *gin.Context, format string, status int, body any) {
	metrics.RequestsTotal.WithLabelValues(format, strconv.Itoa(status)).Inc()
	c.JSON(status, body)
}
