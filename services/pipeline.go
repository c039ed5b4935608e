package services

import (
	"context"
	"errors"
	"fmt"

	"legal-info/models"
	"legal-info/providers"

	"go.uber.org/zap"
)

// ErrUnsupportedShape: die Eingabe ist weder ein Mapping noch eine Sequence von Records.
var ErrUnsupportedShape = errors.New("unsupported input shape")

// Report fasst einen Pipeline-Lauf zusammen.
type Report struct {
	Merge     MergeReport
	Dates     DateStats
	Durations DurationStats
}

// PipelineOptions steuern Sprache und Anker der Normalisierung.
type PipelineOptions struct {
	Locale string
	Anchor DurationAnchor
}

// Pipeline verbindet Merge, Datums- und Dauer-Normalisierung in fester Reihenfolge.
// Sie hält keinen Zustand pro Anfrage und kann parallel genutzt werden, solange jeder
// Aufruf seinen eigenen Baum bekommt.
type Pipeline struct {
	merger    *StructureMerger
	dates     *DateNormalizer
	durations *DurationNormalizer
	logger    *zap.Logger
}

func NewPipeline(recognizer providers.DateRecognizer, opts PipelineOptions, logger *zap.Logger) *Pipeline {
	return &Pipeline{
		merger:    NewStructureMerger(logger),
		dates:     NewDateNormalizer(recognizer, opts.Locale, logger),
		durations: NewDurationNormalizer(StemsForLocale(opts.Locale), opts.Anchor, logger),
		logger:    logger,
	}
}

// Process führt input zusammen und normalisiert das Ergebnis in place.
// Ein einzelnes Mapping wird wie eine Sequence mit einem Element behandelt;
// eine Sequence darf nur Mappings enthalten.
func (p *Pipeline) Process(ctx context.Context, input models.Record) (*models.Mapping, Report, error) {
	var report Report

	var values []models.Record
	switch v := input.(type) {
	case *models.Mapping:
		values = []models.Record{v}
	case *models.Sequence:
		for i, item := range v.Items {
			if _, ok := item.(*models.Mapping); !ok {
				return nil, report, fmt.Errorf("%w: element %d is %T", ErrUnsupportedShape, i, item)
			}
		}
		values = v.Items
	default:
		return nil, report, fmt.Errorf("%w: %T", ErrUnsupportedShape, input)
	}

	merged, mergeReport := p.merger.Merge(values)
	report.Merge = mergeReport

	dateStats, err := p.dates.Normalize(ctx, merged)
	report.Dates = dateStats
	if err != nil {
		return nil, report, fmt.Errorf("date normalization: %w", err)
	}

	report.Durations = p.durations.Normalize(merged)
	return merged, report, nil
}
