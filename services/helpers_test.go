package services

import (
	"encoding/json"
	"strings"
	"testing"

	"legal-info/models"
	"legal-info/parser"

	"github.com/stretchr/testify/require"
)

func mustRecord(t *testing.T, doc string) models.Record {
	t.Helper()
	rec, err := parser.DecodeJSON(strings.NewReader(doc))
	require.NoError(t, err)
	return rec
}

func mustRecords(t *testing.T, docs ...string) []models.Record {
	t.Helper()
	out := make([]models.Record, 0, len(docs))
	for _, d := range docs {
		out = append(out, mustRecord(t, d))
	}
	return out
}

func toJSON(t *testing.T, v any) string {
	t.Helper()
	out, err := json.Marshal(v)
	require.NoError(t, err)
	return string(out)
}
