package main

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"legal-info/config"
	"legal-info/parser"
	"legal-info/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{
		MaxBodyBytes:   256,
		DateLocale:     "ru",
		DurationAnchor: config.AnchorFirst,
		DateRecognizer: "local",
		XMLRowPath:     "root.row",
	}
	logger := zap.NewNop()
	pipeline, _, err := services.NewPipelineFromConfig(cfg, logger)
	require.NoError(t, err)
	return newRouter(cfg, parser.New(cfg.RowPath()), pipeline, nil, logger)
}

func post(router http.Handler, contentType, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/get_legal_info", strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestGetLegalInfo(t *testing.T) {
	router := testRouter(t)

	tests := []struct {
		name        string
		contentType string
		body        string
		wantStatus  int
		wantBody    string
	}{
		{
			name:        "xml rows",
			contentType: "application/xml",
			body:        `<root><row><term>30 дней</term></row><row><date>15 марта 2023</date></row></root>`,
			wantStatus:  http.StatusOK,
			wantBody:    `{"term":"0_0_0_30","date":"15.03.2023"}`,
		},
		{
			name:        "json rows",
			contentType: "application/json; charset=utf-8",
			body:        `[{"a":"срок 2 года"},{"b":[1]},{"b":[2]}]`,
			wantStatus:  http.StatusOK,
			wantBody:    `{"a":"срок 2_0_0_0","b":[1,2]}`,
		},
		{
			name:        "yaml mapping",
			contentType: "application/x-yaml",
			body:        "term: 7 недель\n",
			wantStatus:  http.StatusOK,
			wantBody:    `{"term":"0_0_7_0"}`,
		},
		{
			name:        "unsupported content type",
			contentType: "text/plain",
			body:        "hello",
			wantStatus:  http.StatusBadRequest,
			wantBody:    `{"detail":"Content type text/plain not supported"}`,
		},
		{
			name:        "json scalar",
			contentType: "application/json",
			body:        `"just text"`,
			wantStatus:  http.StatusBadRequest,
		},
		{
			name:        "sequence with scalar rows",
			contentType: "application/json",
			body:        `[1,"x",{"a":"b"}]`,
			wantStatus:  http.StatusBadRequest,
		},
		{
			name:        "broken json",
			contentType: "application/json",
			body:        `{"a":`,
			wantStatus:  http.StatusBadRequest,
		},
		{
			name:        "body too large",
			contentType: "application/json",
			body:        `{"a":"` + strings.Repeat("x", 300) + `"}`,
			wantStatus:  http.StatusRequestEntityTooLarge,
			wantBody:    `{"detail":"request body too large"}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := post(router, tt.contentType, tt.body)
			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, w.Body.String())
			} else {
				assert.Contains(t, w.Body.String(), `"detail"`)
			}
		})
	}
}

func TestGetLegalInfoKeepsKeyOrder(t *testing.T) {
	w := post(testRouter(t), "application/json", `{"z":"1","a":"2","m":{"y":"3","b":"4"}}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `{"z":"1","a":"2","m":{"y":"3","b":"4"}}`, w.Body.String())
}

func TestHealthAndMetrics(t *testing.T) {
	router := testRouter(t)
	post(router, "application/json", `{"a":"b"}`)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "legal_info_requests_total")
}

func TestBatchRouteDisabled(t *testing.T) {
	w := httptest.NewRecorder()
	testRouter(t).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/batch/run", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
