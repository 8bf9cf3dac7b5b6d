package inventory

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/influencehub/marketplace-api/internal/modules/user"
)

type serviceStub struct {
	Service
	createErr error
	got       CreateProductRequest
}

func (s *serviceStub) CreateProduct(ctx context.Context, req CreateProductRequest) (*Product, error) {
	s.got = req
	if s.createErr != nil {
		return nil, s.createErr
	}
	return &Product{ID: 1, VendorID: req.VendorID, ProductName: req.ProductName, CostPrice: req.CostPrice}, nil
}

func (s *serviceStub) GetProduct(ctx context.Context, vendorID, id int64) (*Product, error) {
	return nil, ErrNotFound
}

func TestCreateProductHandler(t *testing.T) {
	cases := []struct {
		name       string
		body       string
		stub       *serviceStub
		wantStatus int
	}{
		{name: "created", body: `{"vendor_id":1,"product_name":"Pen","cost_price":5.5,"quantity_available":3}`, stub: &serviceStub{}, wantStatus: http.StatusCreated},
		{name: "bad_json", body: `{`, stub: &serviceStub{}, wantStatus: http.StatusBadRequest},
		{name: "invalid", body: `{"vendor_id":1}`, stub: &serviceStub{createErr: ErrInvalidProduct}, wantStatus: http.StatusBadRequest},
		{name: "not_vendor", body: `{"vendor_id":2,"product_name":"Pen"}`, stub: &serviceStub{createErr: user.ErrNotVendor}, wantStatus: http.StatusForbidden},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := chi.NewRouter()
			NewHandler(tc.stub, zap.NewNop()).RegisterRoutes(r)

			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/products", strings.NewReader(tc.body)))
			assert.Equal(t, tc.wantStatus, rec.Code, rec.Body.String())
		})
	}
}

func TestCreateProductHandlerDecodesDecimal(t *testing.T) {
	stub := &serviceStub{}
	r := chi.NewRouter()
	NewHandler(stub, zap.NewNop()).RegisterRoutes(r)

	rec := httptest.NewRecorder()
	body := `{"vendor_id":1,"product_name":"Pen","cost_price":"5.10","quantity_available":3}`
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/products", strings.NewReader(body)))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, stub.got.CostPrice.Equal(decimal.RequireFromString("5.1")))
}

func TestGetProductHandler(t *testing.T) {
	r := chi.NewRouter()
	NewHandler(&serviceStub{}, zap.NewNop()).RegisterRoutes(r)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/products/7", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/products/7?vendor_id=1", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"product not found"}`, rec.Body.String())
}
