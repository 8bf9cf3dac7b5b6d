package user

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type serviceStub struct {
	Service
	balance   int
	deductErr error
	gotAmount int
}

func (s *serviceStub) DeductTokens(ctx context.Context, id int64, amount int) (int, error) {
	s.gotAmount = amount
	return s.balance, s.deductErr
}

func (s *serviceStub) GetTokens(ctx context.Context, id int64) (int, error) {
	if id == 404 {
		return 0, ErrNotFound
	}
	return s.balance, nil
}

func newTestRouter(svc Service) http.Handler {
	r := chi.NewRouter()
	NewHandler(svc, zap.NewNop()).RegisterRoutes(r)
	return r
}

func TestDeductTokensHandler(t *testing.T) {
	cases := []struct {
		name       string
		query      string
		stub       *serviceStub
		wantStatus int
		wantBody   string
	}{
		{
			name:       "ok",
			query:      "user_id=7&amount=50",
			stub:       &serviceStub{balance: 150},
			wantStatus: http.StatusOK,
			wantBody:   `{"tokens":150}`,
		},
		{
			name:       "insufficient",
			query:      "user_id=7&amount=500",
			stub:       &serviceStub{deductErr: ErrInsufficientTokens},
			wantStatus: http.StatusPaymentRequired,
			wantBody:   `{"error":"Not enough tokens"}`,
		},
		{
			name:       "missing_amount",
			query:      "user_id=7",
			stub:       &serviceStub{},
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"amount is required"}`,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/tokens/deduct?"+tc.query, nil)
			newTestRouter(tc.stub).ServeHTTP(rec, req)

			assert.Equal(t, tc.wantStatus, rec.Code)
			assert.JSONEq(t, tc.wantBody, rec.Body.String())
		})
	}
}

func TestGetTokensHandler(t *testing.T) {
	router := newTestRouter(&serviceStub{balance: 200})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/tokens/3", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]int
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, 200, body["tokens"])

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/tokens/404", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRegisterHandlerRejectsBadJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader("{"))
	newTestRouter(&serviceStub{}).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
