package cache

import (
	"context"
	"errors"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/rs/zerolog/log"
	contractx "github.com/tanpawarit/catalog-chatbot/agent/contract"
	metricsx "github.com/tanpawarit/catalog-chatbot/pkg/metrics"
)

// CachedSummarizer serves deterministic summaries from a SummaryCache and
// falls back to the wrapped Summarizer on a miss. Cache failures are logged
// and otherwise ignored.
type CachedSummarizer struct {
	next  contractx.Summarizer
	cache SummaryCache
}

// NewCachedSummarizer returns next unchanged when c is nil.
func NewCachedSummarizer(next contractx.Summarizer, c SummaryCache) contractx.Summarizer {
	if c == nil || next == nil {
		return next
	}
	return &CachedSummarizer{next: next, cache: c}
}

func (s *CachedSummarizer) Summarize(ctx context.Context, req contractx.SummaryRequest) (string, error) {
	if !req.Deterministic {
		return s.next.Summarize(ctx, req)
	}

	key := SummaryKey(req)
	cached, err := s.cache.Get(ctx, key)
	switch {
	case err == nil:
		metricsx.SummaryCacheLookups.WithLabelValues("hit").Inc()
		log.Debug().Str("key", key).Msg("summary cache hit")
		return cached, nil
	case errors.Is(err, ErrCacheMiss):
		metricsx.SummaryCacheLookups.WithLabelValues("miss").Inc()
	default:
		metricsx.SummaryCacheLookups.WithLabelValues("error").Inc()
		log.Warn().Err(err).Msg("summary cache lookup failed")
	}

	summary, err := s.next.Summarize(ctx, req)
	if err != nil {
		return "", err
	}

	if err := s.cache.Set(ctx, key, summary); err != nil {
		log.Warn().Err(err).Msg("summary cache write failed")
	}
	return summary, nil
}

// SummaryKey hashes every field that affects the generated summary.
func SummaryKey(req contractx.SummaryRequest) string {
	d := xxhash.New()
	_, _ = d.WriteString(req.Text)
	_, _ = d.WriteString("\x00")
	_, _ = d.WriteString(strconv.Itoa(req.MinLength))
	_, _ = d.WriteString("\x00")
	_, _ = d.WriteString(strconv.Itoa(req.MaxLength))
	return strconv.FormatUint(d.Sum64(), 16)
}
