package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"golang.org/x/text/language"
)

// Duration-Anker: an welchem Treffer das Dauer-Token eingesetzt wird.
const (
	AnchorFirst = "first"
	AnchorDays  = "days"
)

// Config enthält alle Konfigurationsparameter aus Umgebungsvariablen.
type Config struct {
	HTTPPort     string `envconfig:"HTTP_PORT" default:"8000"`
	MaxBodyBytes int64  `envconfig:"MAX_BODY_BYTES" default:"10485760"`

	// Sprache der Datums- und Dauerangaben in den Dokumenten
	DateLocale     string `envconfig:"DATE_LOCALE" default:"ru"`
	DurationAnchor string `envconfig:"DURATION_ANCHOR" default:"first"`

	// "local" oder "remote"
	DateRecognizer        string        `envconfig:"DATE_RECOGNIZER" default:"local"`
	DateRecognizerURL     string        `envconfig:"DATE_RECOGNIZER_URL"`
	DateRecognizerTimeout time.Duration `envconfig:"DATE_RECOGNIZER_TIMEOUT" default:"10s"`

	// Pfad zu den Datensätzen im XML-Dokument, wie <root><row>...</row></root>
	XMLRowPath string `envconfig:"XML_ROW_PATH" default:"root.row"`

	// Batch-Verarbeitung aus einem S3-kompatiblen Bucket
	BatchEnabled      bool   `envconfig:"BATCH_ENABLED" default:"false"`
	BatchCronSchedule string `envconfig:"BATCH_CRON_SCHEDULE" default:"*/15 * * * *"`
	BatchInputPrefix  string `envconfig:"BATCH_INPUT_PREFIX" default:"incoming/"`
	BatchOutputPrefix string `envconfig:"BATCH_OUTPUT_PREFIX" default:"normalized/"`

	S3Key    string `envconfig:"S3_KEY"`
	S3Secret string `envconfig:"S3_SECRET"`
	S3URL    string `envconfig:"S3_URL"`
	S3Region string `envconfig:"S3_REGION" default:"us-east-1"`
	S3Bucket string `envconfig:"S3_BUCKET"`
}

// RowPath zerlegt XMLRowPath in seine Segmente.
func (c *Config) RowPath() []string {
	var out []string
	for _, p := range strings.Split(c.XMLRowPath, ".") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Validate prüft Werte, die envconfig selbst nicht prüfen kann.
func (c *Config) Validate() error {
	if _, err := language.Parse(c.DateLocale); err != nil {
		return fmt.Errorf("invalid DATE_LOCALE %q: %w", c.DateLocale, err)
	}
	switch c.DurationAnchor {
	case AnchorFirst, AnchorDays:
	default:
		return fmt.Errorf("invalid DURATION_ANCHOR %q: want %q or %q", c.DurationAnchor, AnchorFirst, AnchorDays)
	}
	switch c.DateRecognizer {
	case "local":
	case "remote":
		if c.DateRecognizerURL == "" {
			return fmt.Errorf("DATE_RECOGNIZER_URL is required for the remote recognizer")
		}
	default:
		return fmt.Errorf("unknown DATE_RECOGNIZER %q", c.DateRecognizer)
	}
	if len(c.RowPath()) == 0 {
		return fmt.Errorf("XML_ROW_PATH must not be empty")
	}
	if c.BatchEnabled {
		if c.S3URL == "" || c.S3Bucket == "" || c.S3Key == "" || c.S3Secret == "" {
			return fmt.Errorf("S3_URL, S3_BUCKET, S3_KEY and S3_SECRET are required when BATCH_ENABLED is set")
		}
	}
	return nil
}

// Load lädt die Konfiguration aus den Umgebungsvariablen.
func Load() (*Config, error) {
	_ = godotenv.Load()
	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return &c, err
	}
	return &c, c.Validate()
}
