package billing

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type serviceStub struct {
	Service
	receipt *Receipt
	err     error
	got     BillRequest
}

func (s *serviceStub) SubmitBill(ctx context.Context, req BillRequest) (*Receipt, error) {
	s.got = req
	return s.receipt, s.err
}

func (s *serviceStub) GetBill(ctx context.Context, vendorID, id int64) (*Bill, error) {
	return nil, ErrBillNotFound
}

func serve(t *testing.T, stub *serviceStub, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	r := chi.NewRouter()
	NewHandler(stub, zap.NewNop()).RegisterRoutes(r)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(method, target, strings.NewReader(body)))
	return rec
}

func TestSubmitBillHandlerStatusCodes(t *testing.T) {
	cases := []struct {
		name       string
		body       string
		err        error
		wantStatus int
		wantError  string
	}{
		{
			name:       "not_found",
			body:       `{"vendor_id":1,"items":[{"product_id":999,"quantity":1,"selling_price":5}]}`,
			err:        &ProductNotFoundError{ProductID: 999},
			wantStatus: http.StatusNotFound,
			wantError:  "product 999 not found",
		},
		{
			name:       "insufficient_stock",
			body:       `{"vendor_id":1,"items":[{"product_id":1,"quantity":10,"selling_price":15}]}`,
			err:        &InsufficientStockError{ProductID: 1, ProductName: "Pen", Requested: 10, Available: 5},
			wantStatus: http.StatusBadRequest,
			wantError:  "insufficient stock for Pen: requested 10, available 5",
		},
		{
			name:       "invalid",
			body:       `{"vendor_id":1,"items":[]}`,
			err:        ErrInvalidRequest,
			wantStatus: http.StatusBadRequest,
			wantError:  "invalid bill request",
		},
		{
			name:       "persistence",
			body:       `{"vendor_id":1,"items":[{"product_id":1,"quantity":1,"selling_price":15}]}`,
			err:        &PersistenceError{Op: "commit", Err: errors.New("connection reset")},
			wantStatus: http.StatusInternalServerError,
			wantError:  "could not record bill",
		},
		{
			name:       "malformed_json",
			body:       `{"vendor_id":`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := serve(t, &serviceStub{err: tc.err}, http.MethodPost, "/bills", tc.body)
			assert.Equal(t, tc.wantStatus, rec.Code)
			if tc.wantError != "" {
				assert.JSONEq(t, `{"error":"`+tc.wantError+`"}`, rec.Body.String())
			}
		})
	}
}

func TestSubmitBillHandlerSuccessBody(t *testing.T) {
	decimal.MarshalJSONWithoutQuotes = true
	t.Cleanup(func() { decimal.MarshalJSONWithoutQuotes = false })

	stub := &serviceStub{receipt: &Receipt{
		BillID:    7,
		Reference: "BILL-20260101-ABCD1234",
		Items: []ReceiptLine{{
			ProductName:  "Pen",
			Quantity:     2,
			PricePerUnit: decimal.NewFromInt(15),
			Total:        decimal.NewFromInt(30),
		}},
		GrandTotal:  decimal.NewFromInt(30),
		TotalProfit: decimal.NewFromInt(10),
	}}

	rec := serve(t, stub, http.MethodPost, "/bills",
		`{"vendor_id":1,"items":[{"product_id":1,"quantity":2,"selling_price":15}]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{
		"bill_id": 7,
		"reference": "BILL-20260101-ABCD1234",
		"items": [{"product_name":"Pen","quantity":2,"price_per_unit":15,"total":30}],
		"grand_total": 30,
		"total_profit": 10
	}`, rec.Body.String())

	require.Len(t, stub.got.Items, 1)
	assert.Equal(t, int64(1), stub.got.Items[0].ProductID)
	require.True(t, stub.got.Items[0].SellingPrice.Valid)
	assert.True(t, stub.got.Items[0].SellingPrice.Decimal.Equal(decimal.NewFromInt(15)))
}

func TestSubmitBillHandlerRequiresSellingPrice(t *testing.T) {
	f := newFixture(t)
	a := f.product(t, f.vendor, "Pen", "10", 5)

	r := chi.NewRouter()
	NewHandler(f.svc, zap.NewNop()).RegisterRoutes(r)

	cases := []struct {
		name string
		line string
	}{
		{name: "missing", line: `{"product_id":%d,"quantity":1}`},
		{name: "null", line: `{"product_id":%d,"quantity":1,"selling_price":null}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			body := fmt.Sprintf(`{"vendor_id":%d,"items":[`+tc.line+`]}`, f.vendor, a)
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/bills", strings.NewReader(body)))

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.JSONEq(t, `{"error":"invalid bill request: items[0].selling_price is required"}`, rec.Body.String())
		})
	}
	assert.Equal(t, 5, f.stock(t, a))
	assert.Equal(t, 0, f.lineCount(t))
}

func TestGetBillHandler(t *testing.T) {
	rec := serve(t, &serviceStub{}, http.MethodGet, "/bills/3", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(t, &serviceStub{}, http.MethodGet, "/bills/3?vendor_id=1", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
