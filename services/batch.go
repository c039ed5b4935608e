package services

import (
	"context"
	"encoding/json"
	"errors"
	"path"
	"strings"
	"sync"

	"legal-info/parser"

	"go.uber.org/zap"
)

// ErrBatchRunning wird zurückgegeben, wenn bereits ein Batch-Lauf aktiv ist.
var ErrBatchRunning = errors.New("batch run already in progress")

// ObjectStore ist der Teil eines Objektspeichers, den der Batch-Lauf braucht.
type ObjectStore interface {
	List(ctx context.Context, prefix string) ([]string, error)
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, data []byte, contentType string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// BatchResult zählt die Objekte eines Laufs.
type BatchResult struct {
	Processed int `json:"processed"`
	Skipped   int `json:"skipped"`
	Failed    int `json:"failed"`
}

// BatchService normalisiert Dokumente aus einem Eingangs-Prefix und legt das Ergebnis
// als JSON unter dem Ausgangs-Prefix ab.
type BatchService struct {
	Store        ObjectStore
	Parser       *parser.Parser
	Pipeline     *Pipeline
	Logger       *zap.Logger
	InputPrefix  string
	OutputPrefix string
	// Observe wird nach jedem verarbeiteten Dokument aufgerufen (z.B. für Metriken).
	Observe func(Report)

	running sync.Mutex
}

// NewBatchService erstellt eine neue Instanz des BatchService.
func NewBatchService(store ObjectStore, p *parser.Parser, pipeline *Pipeline, logger *zap.Logger, inputPrefix, outputPrefix string) *BatchService {
	return &BatchService{
		Store:        store,
		Parser:       p,
		Pipeline:     pipeline,
		Logger:       logger,
		InputPrefix:  inputPrefix,
		OutputPrefix: outputPrefix,
	}
}

// OutputKey bildet den Ergebnis-Key zu einem Eingangs-Key: incoming/a/b.xml -> normalized/a/b.json.
func (b *BatchService) OutputKey(inputKey string) string {
	rel := strings.TrimPrefix(inputKey, b.InputPrefix)
	return b.OutputPrefix + strings.TrimSuffix(rel, path.Ext(rel)) + ".json"
}

// Run verarbeitet alle noch nicht normalisierten Dokumente. Fehler einzelner Objekte werden
// gezählt und geloggt, nur ein Fehler beim Auflisten bricht den Lauf ab.
func (b *BatchService) Run(ctx context.Context) (BatchResult, error) {
	var result BatchResult
	if !b.running.TryLock() {
		return result, ErrBatchRunning
	}
	defer b.running.Unlock()

	keys, err := b.Store.List(ctx, b.InputPrefix)
	if err != nil {
		return result, err
	}
	b.Logger.Info("Starting batch run", zap.String("prefix", b.InputPrefix), zap.Int("objects", len(keys)))

	for _, key := range keys {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		log := b.Logger.With(zap.String("key", key))
		if strings.HasSuffix(key, "/") {
			continue
		}
		format, err := parser.FormatFromFilename(key)
		if err != nil {
			log.Debug("Skipping object with unsupported extension")
			result.Skipped++
			continue
		}
		outKey := b.OutputKey(key)
		exists, err := b.Store.Exists(ctx, outKey)
		if err != nil {
			log.Error("Checking output object failed", zap.Error(err))
			result.Failed++
			continue
		}
		if exists {
			result.Skipped++
			continue
		}
		if err := b.processObject(ctx, key, outKey, format); err != nil {
			log.Error("Batch object failed", zap.Error(err))
			result.Failed++
			continue
		}
		log.Info("Batch object normalized", zap.String("output", outKey))
		result.Processed++
	}

	b.Logger.Info("Batch run finished",
		zap.Int("processed", result.Processed),
		zap.Int("skipped", result.Skipped),
		zap.Int("failed", result.Failed))
	return result, nil
}

func (b *BatchService) processObject(ctx context.Context, key, outKey string, format parser.Format) error {
	data, err := b.Store.Get(ctx, key)
	if err != nil {
		return err
	}
	input, err := b.Parser.Parse(format, data)
	if err != nil {
		return err
	}
	merged, report, err := b.Pipeline.Process(ctx, input)
	if err != nil {
		return err
	}
	if b.Observe != nil {
		b.Observe(report)
	}
	out, err := json.Marshal(merged)
	if err != nil {
		return err
	}
	return b.Store.Put(ctx, outKey, out, "application/json")
}
