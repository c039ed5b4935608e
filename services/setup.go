package services

import (
	"fmt"

	"legal-info/config"
	"legal-info/providers"
	"legal-info/providers/local"
	"legal-info/providers/remote"

	"go.uber.org/zap"
)

// ParseDurationAnchor wandelt den Konfigurationswert ("first" oder "days") in eine DurationAnchor.
func ParseDurationAnchor(s string) (DurationAnchor, error) {
	switch s {
	case config.AnchorFirst:
		return AnchorFirstMatch, nil
	case config.AnchorDays:
		return AnchorDaysOnly, nil
	}
	return AnchorFirstMatch, fmt.Errorf("unknown duration anchor %q: want %q or %q", s, config.AnchorFirst, config.AnchorDays)
}

// NewRecognizer wählt den Datumserkenner nach DATE_RECOGNIZER.
func NewRecognizer(cfg *config.Config, logger *zap.Logger) providers.DateRecognizer {
	if cfg.DateRecognizer == "remote" {
		return remote.NewRecognizer(cfg, logger)
	}
	return local.NewRecognizer(logger)
}

// NewPipelineFromConfig baut Erkenner und Pipeline so, wie Server und Batch-Lauf sie brauchen.
func NewPipelineFromConfig(cfg *config.Config, logger *zap.Logger) (*Pipeline, providers.DateRecognizer, error) {
	anchor, err := ParseDurationAnchor(cfg.DurationAnchor)
	if err != nil {
		return nil, nil, err
	}
	recognizer := NewRecognizer(cfg, logger)
	return NewPipeline(recognizer, PipelineOptions{Locale: cfg.DateLocale, Anchor: anchor}, logger), recognizer, nil
}
