package services

import (
	"context"
	"regexp"
	"strings"

	"legal-info/models"
	"legal-info/providers"

	"go.uber.org/zap"
)

// DateLayout ist das kanonische Datumsformat (TT.MM.JJJJ).
const DateLayout = "02.01.2006"

// Tag (1–31), beliebiges Trennzeichen, Monatswort, Nicht-Wort-Trenner, Jahr (1–9999), Wortgrenze.
// \w und \b sind in Go nur ASCII, daher die expliziten Unicode-Klassen.
var dateCandidateRE = regexp.MustCompile(
	`([1-9]|[12][0-9]|3[01])(.)([\p{L}\p{N}_]+)([^\p{L}\p{N}_])([1-9][0-9]{0,3})(?:[^\p{L}\p{N}_]|$)`)

// DateStats fasst einen Datumsdurchlauf zusammen.
type DateStats struct {
	Candidates int
	Rewritten  int
	Failures   int
}

// DateNormalizer ersetzt erkannte Datumsangaben in String-Blättern durch TT.MM.JJJJ.
type DateNormalizer struct {
	recognizer providers.DateRecognizer
	locale     string
	logger     *zap.Logger
}

func NewDateNormalizer(recognizer providers.DateRecognizer, locale string, logger *zap.Logger) *DateNormalizer {
	return &DateNormalizer{recognizer: recognizer, locale: locale, logger: logger}
}

type dateCandidate struct {
	leaf   *Leaf
	window string
	dates  []providers.RecognizedDate
}

// Normalize durchläuft root einmal. Erst werden Kandidaten gesammelt, dann erkannt,
// zuletzt umgeschrieben; der Recognizer läuft nie während einer Baumänderung.
// Ein Fehler wird nur bei abgebrochenem Kontext zurückgegeben.
func (dn *DateNormalizer) Normalize(ctx context.Context, root *models.Mapping) (DateStats, error) {
	var stats DateStats
	var candidates []*dateCandidate
	Walk(root, func(leaf *Leaf) {
		text, _ := leaf.Text()
		m := dateCandidateRE.FindStringSubmatchIndex(text)
		if m == nil {
			return
		}
		candidates = append(candidates, &dateCandidate{leaf: leaf, window: text[m[0]:m[11]]})
	})
	stats.Candidates = len(candidates)

	for _, c := range candidates {
		dates, err := dn.recognizer.RecognizeDates(ctx, c.window, dn.locale)
		if err != nil {
			if ctx.Err() != nil {
				return stats, ctx.Err()
			}
			stats.Failures++
			dn.logger.Warn("Date recognition failed, leaving value untouched",
				zap.String("recognizer", dn.recognizer.Name()),
				zap.String("key", c.leaf.Key),
				zap.Error(err))
			continue
		}
		c.dates = dates
	}

	for _, c := range candidates {
		if len(c.dates) == 0 {
			continue
		}
		changed := false
		for _, d := range c.dates {
			if c.leaf.Replace(d.Span, d.Date.Format(DateLayout)) {
				changed = true
			}
		}
		// Liefert der Recognizer genau ein Datum mit einem Span, der so nicht im Wert steht,
		// wird stattdessen das Suchfenster ersetzt.
		if !changed && len(c.dates) == 1 {
			if text, _ := c.leaf.Text(); !strings.Contains(text, c.dates[0].Span) {
				changed = c.leaf.Replace(c.window, c.dates[0].Date.Format(DateLayout))
			}
		}
		if changed {
			stats.Rewritten++
		}
	}
	dn.logger.Debug("Date pass finished",
		zap.Int("candidates", stats.Candidates),
		zap.Int("rewritten", stats.Rewritten),
		zap.Int("failures", stats.Failures))
	return stats, nil
}
