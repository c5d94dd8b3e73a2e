package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestHealthHandler_Handle(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := NewHealthHandler(nil).Handle(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, rec.Body.String())
}

func TestHealthHandler_Ready(t *testing.T) {
	ok := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("connection refused") }

	tests := []struct {
		name     string
		checks   map[string]HealthCheck
		wantCode int
		wantBody string
	}{
		{
			name:     "no dependencies",
			wantCode: http.StatusOK,
			wantBody: `{"status":"ready","dependencies":{}}`,
		},
		{
			name:     "all healthy",
			checks:   map[string]HealthCheck{"postgres": ok},
			wantCode: http.StatusOK,
			wantBody: `{"status":"ready","dependencies":{"postgres":"ok"}}`,
		},
		{
			name:     "one down",
			checks:   map[string]HealthCheck{"postgres": ok, "mongo": down},
			wantCode: http.StatusServiceUnavailable,
			wantBody: `{"status":"not_ready","dependencies":{"mongo":"unavailable","postgres":"ok"}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/ready", nil), rec)

			err := NewHealthHandler(tt.checks).Ready(c)

			assert.NoError(t, err)
			assert.Equal(t, tt.wantCode, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}
