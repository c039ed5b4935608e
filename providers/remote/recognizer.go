package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"legal-info/config"
	"legal-info/providers"

	"go.uber.org/zap"
)

// request ist der Body an den externen Erkennungsdienst.
type request struct {
	Text   string `json:"text"`
	Locale string `json:"locale"`
}

// match ist ein Eintrag der Antwort; Date im Format YYYY-MM-DD.
type match struct {
	Span string `json:"span"`
	Date string `json:"date"`
}

// Recognizer fragt einen externen Dienst nach Datumsangaben (z.B. einen dateparser-Wrapper).
type Recognizer struct {
	Config     *config.Config
	Logger     *zap.Logger
	httpClient *http.Client
}

// NewRecognizer erstellt einen neuen Remote-Recognizer.
func NewRecognizer(cfg *config.Config, logger *zap.Logger) *Recognizer {
	return &Recognizer{
		Config: cfg,
		Logger: logger,
		httpClient: &http.Client{
			Timeout:   cfg.DateRecognizerTimeout,
			Transport: &userAgentTransport{Transport: http.DefaultTransport},
		},
	}
}

// userAgentTransport fügt jeder Anfrage einen User-Agent-Header hinzu.
type userAgentTransport struct {
	Transport http.RoundTripper
}

func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.Header.Set("User-Agent", "legal-info/1.0")
	return t.Transport.RoundTrip(req)
}

// Name gibt den Namen des Recognizers zurück.
func (r *Recognizer) Name() string {
	return "remote"
}

// RecognizeDates schickt text an den Dienst. Einträge mit unlesbarem Datum werden übersprungen.
func (r *Recognizer) RecognizeDates(ctx context.Context, text, locale string) ([]providers.RecognizedDate, error) {
	body, err := json.Marshal(request{Text: text, Locale: locale})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.Config.DateRecognizerURL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("date recognizer request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("date recognizer request failed with status: %d", resp.StatusCode)
	}

	var matches []match
	if err := json.NewDecoder(resp.Body).Decode(&matches); err != nil {
		return nil, fmt.Errorf("decode date recognizer response: %w", err)
	}

	out := make([]providers.RecognizedDate, 0, len(matches))
	for _, m := range matches {
		d, err := time.Parse("2006-01-02", m.Date)
		if err != nil || m.Span == "" {
			r.Logger.Debug("Skipping unreadable recognizer match", zap.String("span", m.Span), zap.String("date", m.Date))
			continue
		}
		out = append(out, providers.RecognizedDate{Span: m.Span, Date: d})
	}
	return out, nil
}
