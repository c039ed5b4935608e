package providers

import (
	"context"
	"time"
)

// RecognizedDate ist ein im Text gefundenes Datum. Span ist der wörtliche Textausschnitt,
// Date das aufgelöste Kalenderdatum.
type RecognizedDate struct {
	Span string
	Date time.Time
}

// DateRecognizer ist die Schnittstelle zur Datumserkennung (lokal oder als externer Dienst).
type DateRecognizer interface {
	// RecognizeDates sucht Datumsangaben in text. Kein Treffer ist kein Fehler, sondern
	// ein leeres Ergebnis; Fehler gibt es nur bei technischen Problemen (Netzwerk, Kontext).
	RecognizeDates(ctx context.Context, text, locale string) ([]RecognizedDate, error)

	// Name gibt den eindeutigen Namen des Recognizers zurück (z.B. "local").
	Name() string
}
