package analytics

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type serviceFunc func(ctx context.Context, vendorID int64) (*Report, error)

func (f serviceFunc) VendorAnalytics(ctx context.Context, vendorID int64) (*Report, error) {
	return f(ctx, vendorID)
}

func TestVendorAnalyticsHandler(t *testing.T) {
	cases := []struct {
		name       string
		path       string
		svc        serviceFunc
		wantStatus int
	}{
		{
			name:       "ok",
			path:       "/analytics/3",
			svc:        func(ctx context.Context, id int64) (*Report, error) { return &Report{Insight: "hi"}, nil },
			wantStatus: http.StatusOK,
		},
		{
			name:       "bad_id",
			path:       "/analytics/abc",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "failure",
			path:       "/analytics/3",
			svc:        func(ctx context.Context, id int64) (*Report, error) { return nil, errors.New("db down") },
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := chi.NewRouter()
			NewHandler(tc.svc, zap.NewNop()).RegisterRoutes(r)
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tc.path, nil))
			assert.Equal(t, tc.wantStatus, rec.Code)
		})
	}
}
