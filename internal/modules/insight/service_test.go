package insight

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type generatorStub struct {
	text  string
	err   error
	calls int
}

func (g *generatorStub) Generate(ctx context.Context, p Prompt) (string, error) {
	g.calls++
	return g.text, g.err
}

type memoryCache struct {
	items map[string]string
	ttl   time.Duration
}

func (c *memoryCache) Get(ctx context.Context, key string) (string, bool, error) {
	v, ok := c.items[key]
	return v, ok, nil
}

func (c *memoryCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	c.items[key] = value
	c.ttl = ttl
	return nil
}

func TestInsightUsesLLMAndCaches(t *testing.T) {
	llm := &generatorStub{text: "Sell more pens."}
	cache := &memoryCache{items: map[string]string{}}
	metrics := NewMetrics(prometheus.NewRegistry())
	svc := NewService(zap.NewNop(), WithLLM(llm), WithCache(cache, 10*time.Minute), WithMetrics(metrics))

	ctx := context.Background()
	assert.Equal(t, "Sell more pens.", svc.Insight(ctx, samplePrompt()))
	assert.Equal(t, "Sell more pens.", svc.Insight(ctx, samplePrompt()))

	assert.Equal(t, 1, llm.calls)
	assert.Len(t, cache.items, 1)
	assert.Equal(t, 10*time.Minute, cache.ttl)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.generated.WithLabelValues(sourceLLM)))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.generated.WithLabelValues(sourceCache)))

	changed := samplePrompt()
	changed.LowStock = nil
	svc.Insight(ctx, changed)
	assert.Equal(t, 2, llm.calls)
}

func TestInsightFallsBackToRules(t *testing.T) {
	llm := &generatorStub{err: errors.New("timeout")}
	metrics := NewMetrics(prometheus.NewRegistry())
	svc := NewService(zap.NewNop(), WithLLM(llm), WithMetrics(metrics))

	text := svc.Insight(context.Background(), samplePrompt())
	assert.Contains(t, text, "Top selling product: Pen")
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.generated.WithLabelValues(sourceFallback)))
}

func TestInsightSkipsLLMWithoutSales(t *testing.T) {
	llm := &generatorStub{text: "unused"}
	svc := NewService(zap.NewNop(), WithLLM(llm))

	assert.Equal(t, noSalesInsight, svc.Insight(context.Background(), Prompt{VendorID: 1}))
	assert.Zero(t, llm.calls)
}

func TestInsightWithoutLLMUsesRules(t *testing.T) {
	svc := NewService(zap.NewNop())
	assert.Contains(t, svc.Insight(context.Background(), samplePrompt()), "Low stock products: Pen")
}

func TestNewRedisCacheRejectsBadURL(t *testing.T) {
	_, err := NewRedisCache(context.Background(), "not-a-redis-url")
	assert.Error(t, err)
}
