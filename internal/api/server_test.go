// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/folio/internal/api"
	"github.com/taibuivan/folio/internal/core/author"
	"github.com/taibuivan/folio/internal/core/book"
	"github.com/taibuivan/folio/internal/core/importer"
	"github.com/taibuivan/folio/internal/core/metadata"
	"github.com/taibuivan/folio/internal/core/payment"
	"github.com/taibuivan/folio/internal/core/sale"
	"github.com/taibuivan/folio/internal/core/series"
	"github.com/taibuivan/folio/internal/platform/config"
	"github.com/taibuivan/folio/internal/platform/sec"
)

// stubVerifier accepts tokens named after a role.
type stubVerifier struct{}

func (stubVerifier) VerifyToken(token string) (*sec.AuthClaims, error) {
	switch sec.UserRole(token) {
	case sec.RoleViewer, sec.RoleEditor, sec.RoleAdmin:
		return &sec.AuthClaims{UserID: "u-" + token, Username: token, Role: token}, nil
	}
	return nil, errors.New("invalid token")
}

type noUnpaidSales struct{}

func (noUnpaidSales) ListUnpaid(context.Context) ([]sale.View, error) { return nil, nil }

func newRouter(t *testing.T, deps api.HealthDependencies) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	context, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	bookService := book.NewService(nil, logger)
	saleService := sale.NewService(nil, bookService, logger)
	liveness, readiness := api.NewHealthHandlers(deps, logger)

	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Book:      book.NewHandler(bookService),
		Author:    author.NewHandler(author.NewService(nil, logger)),
		Series:    series.NewHandler(series.NewService(nil, logger)),
		Sale:      sale.NewHandler(saleService),
		Payment:   payment.NewHandler(payment.NewService(noUnpaidSales{}, nil, logger)),
		Importer:  importer.NewHandler(importer.NewService(bookService, saleService, logger)),
		Metadata:  metadata.NewHandler(metadata.NewService(nil, nil, logger)),
	}

	return api.NewRouter(context, &config.Config{ServerPort: "0"}, logger, stubVerifier{}, handlers)
}

func serve(router http.Handler, method, target, token string) *httptest.ResponseRecorder {
	request := httptest.NewRequest(method, target, nil)
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	return recorder
}

/*
TestRouter_Authorization checks the role ladder on representative routes.
*/
func TestRouter_Authorization(t *testing.T) {
	router := newRouter(t, api.HealthDependencies{})

	tests := []struct {
		name   string
		method string
		target string
		token  string
		status int
	}{
		{"anonymous read", http.MethodGet, "/api/v1/payments/groups", "", http.StatusUnauthorized},
		{"bad token", http.MethodGet, "/api/v1/payments/groups", "nobody", http.StatusUnauthorized},
		{"viewer read", http.MethodGet, "/api/v1/payments/groups", "viewer", http.StatusOK},
		{"viewer pay", http.MethodPost, "/api/v1/payments/groups/pay", "viewer", http.StatusForbidden},
		{"viewer import", http.MethodPost, "/api/v1/imports/preview", "viewer", http.StatusForbidden},
		{"editor delete book", http.MethodDelete, "/api/v1/books/1", "editor", http.StatusForbidden},
		{"editor delete sale", http.MethodDelete, "/api/v1/sales/1", "editor", http.StatusForbidden},
		{"editor bad isbn", http.MethodGet, "/api/v1/metadata/123", "editor", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := serve(router, tt.method, tt.target, tt.token)
			assert.Equal(t, tt.status, recorder.Code, recorder.Body.String())
		})
	}
}

func TestRouter_PaymentGroupsEmpty(t *testing.T) {
	router := newRouter(t, api.HealthDependencies{})

	recorder := serve(router, http.MethodGet, "/api/v1/payments/groups", "viewer")

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"data":[]}`, recorder.Body.String())
}

/*
TestRouter_Health covers liveness, readiness and the metrics endpoint.
*/
func TestRouter_Health(t *testing.T) {
	healthy := newRouter(t, api.HealthDependencies{
		CheckDatabase: func(context.Context) error { return nil },
	})
	degraded := newRouter(t, api.HealthDependencies{
		CheckDatabase: func(context.Context) error { return nil },
		CheckCache:    func(context.Context) error { return errors.New("redis: ping failed") },
	})

	assert.Equal(t, http.StatusOK, serve(healthy, http.MethodGet, "/health", "").Code)

	ready := serve(healthy, http.MethodGet, "/ready", "")
	assert.Equal(t, http.StatusOK, ready.Code)
	assert.Contains(t, ready.Body.String(), `"ready"`)

	notReady := serve(degraded, http.MethodGet, "/ready", "")
	assert.Equal(t, http.StatusServiceUnavailable, notReady.Code)
	assert.Contains(t, notReady.Body.String(), `"degraded"`)
	assert.Contains(t, notReady.Body.String(), "redis: ping failed")

	metrics := serve(healthy, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, metrics.Code)
	assert.Contains(t, metrics.Body.String(), "folio_sales_created_total")
}
