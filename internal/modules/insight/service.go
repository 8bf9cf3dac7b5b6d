package insight

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Service writes the insight for a vendor dashboard. It never fails: when
// the model is missing or errors, the rule-based text is used.
type Service struct {
	llm      Generator
	fallback Generator
	cache    Cache
	ttl      time.Duration
	metrics  *Metrics
	log      *zap.Logger
}

// Option customises a Service.
type Option func(*Service)

// WithLLM sets the primary generator.
func WithLLM(g Generator) Option { return func(s *Service) { s.llm = g } }

// WithCache enables caching of generated text for ttl.
func WithCache(c Cache, ttl time.Duration) Option {
	return func(s *Service) {
		s.cache = c
		s.ttl = ttl
	}
}

func WithMetrics(m *Metrics) Option { return func(s *Service) { s.metrics = m } }

func NewService(log *zap.Logger, opts ...Option) *Service {
	s := &Service{fallback: RuleGenerator{}, log: log}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Insight(ctx context.Context, p Prompt) string {
	if len(p.Sales) == 0 || s.llm == nil {
		s.metrics.inc(sourceRules)
		return s.rules(ctx, p)
	}

	key, err := cacheKey(p)
	if err != nil {
		s.log.Warn("insight cache key", zap.Error(err))
	}
	if s.cache != nil && key != "" {
		text, ok, err := s.cache.Get(ctx, key)
		if err != nil {
			s.log.Warn("insight cache read failed", zap.Int64("vendor_id", p.VendorID), zap.Error(err))
		} else if ok {
			s.metrics.inc(sourceCache)
			return text
		}
	}

	text, err := s.llm.Generate(ctx, p)
	if err != nil {
		s.log.Warn("llm insight failed, using rules",
			zap.Int64("vendor_id", p.VendorID),
			zap.Error(err),
		)
		s.metrics.inc(sourceFallback)
		return s.rules(ctx, p)
	}
	s.metrics.inc(sourceLLM)

	if s.cache != nil && key != "" {
		if err := s.cache.Set(ctx, key, text, s.ttl); err != nil {
			s.log.Warn("insight cache write failed", zap.Int64("vendor_id", p.VendorID), zap.Error(err))
		}
	}
	return text
}

func (s *Service) rules(ctx context.Context, p Prompt) string {
	text, _ := s.fallback.Generate(ctx, p)
	return text
}

// cacheKey changes whenever the vendor's figures do, so a new sale or
// restock invalidates the cached text.
func cacheKey(p Prompt) (string, error) {
	raw, err := json.Marshal(p)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(raw)
	return fmt.Sprintf("%d:%s", p.VendorID, hex.EncodeToString(sum[:12])), nil
}
