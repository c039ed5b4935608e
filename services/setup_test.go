package services

import (
	"context"
	"testing"

	"legal-info/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestParseDurationAnchor(t *testing.T) {
	a, err := ParseDurationAnchor("first")
	require.NoError(t, err)
	assert.Equal(t, AnchorFirstMatch, a)

	a, err = ParseDurationAnchor("days")
	require.NoError(t, err)
	assert.Equal(t, AnchorDaysOnly, a)

	_, err = ParseDurationAnchor("last")
	assert.Error(t, err)
}

func TestNewPipelineFromConfig(t *testing.T) {
	cfg := &config.Config{DateLocale: "ru", DurationAnchor: config.AnchorDays, DateRecognizer: "local"}
	pipeline, recognizer, err := NewPipelineFromConfig(cfg, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, "local", recognizer.Name())

	merged, _, err := pipeline.Process(context.Background(), mustRecord(t, `{"term":"срок действия 2 года"}`))
	require.NoError(t, err)
	assert.Equal(t, `{"term":"срок действия 2 года"}`, toJSON(t, merged))

	cfg.DateRecognizer = "remote"
	cfg.DateRecognizerURL = "http://dates.local/recognize"
	_, recognizer, err = NewPipelineFromConfig(cfg, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, "remote", recognizer.Name())

	cfg.DurationAnchor = "sometimes"
	_, _, err = NewPipelineFromConfig(cfg, zap.NewNop())
	assert.Error(t, err)
}
