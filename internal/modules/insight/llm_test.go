package insight

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/influencehub/marketplace-api/internal/config"
)

func samplePrompt() Prompt {
	return Prompt{
		VendorID:     1,
		Sales:        []ProductSales{{Name: "Pen", Quantity: 3, Revenue: decimal.NewFromInt(45), Profit: decimal.NewFromInt(15)}},
		LowStock:     []string{"Pen"},
		TotalRevenue: decimal.NewFromInt(45),
		TotalProfit:  decimal.NewFromInt(15),
	}
}

func TestLLMGeneratorSendsChatCompletion(t *testing.T) {
	var got chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"  Pens are flying off the shelf.  "}}]}`))
	}))
	defer srv.Close()

	g := NewLLMGenerator(config.LLMConfig{
		BaseURL: srv.URL + "/v1/",
		APIKey:  "sk-test",
		Model:   "gpt-4o-mini",
		Timeout: time.Second,
	}, nil)

	text, err := g.Generate(context.Background(), samplePrompt())
	require.NoError(t, err)
	assert.Equal(t, "Pens are flying off the shelf.", text)

	assert.Equal(t, "gpt-4o-mini", got.Model)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Contains(t, got.Messages[1].Content, `"name":"Pen"`)
}

func TestLLMGeneratorErrors(t *testing.T) {
	cases := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{name: "server_error", status: http.StatusInternalServerError, body: `{"error":"overloaded"}`, wantErr: "llm status 500"},
		{name: "no_choices", status: http.StatusOK, body: `{"choices":[]}`, wantErr: ErrEmptyCompletion.Error()},
		{name: "blank", status: http.StatusOK, body: `{"choices":[{"message":{"content":"   "}}]}`, wantErr: ErrEmptyCompletion.Error()},
		{name: "garbage", status: http.StatusOK, body: `not json`, wantErr: "decode llm response"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			g := NewLLMGenerator(config.LLMConfig{BaseURL: srv.URL, Model: "m", Timeout: time.Second}, nil)
			_, err := g.Generate(context.Background(), samplePrompt())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}
