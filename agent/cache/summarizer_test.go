package cache

import (
	"context"
	"errors"
	"testing"

	contractx "github.com/tanpawarit/catalog-chatbot/agent/contract"
)

type memoryCache struct {
	values map[string]string
	getErr error
	setErr error
}

func newMemoryCache() *memoryCache {
	return &memoryCache{values: map[string]string{}}
}

func (m *memoryCache) Get(ctx context.Context, key string) (string, error) {
	if m.getErr != nil {
		return "", m.getErr
	}
	v, ok := m.values[key]
	if !ok {
		return "", ErrCacheMiss
	}
	return v, nil
}

func (m *memoryCache) Set(ctx context.Context, key, value string) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.values[key] = value
	return nil
}

func (m *memoryCache) Close() error { return nil }

type countingSummarizer struct {
	calls int
	err   error
}

func (c *countingSummarizer) Summarize(ctx context.Context, req contractx.SummaryRequest) (string, error) {
	c.calls++
	if c.err != nil {
		return "", c.err
	}
	return "summary of " + req.Text, nil
}

func summaryRequest(text string) contractx.SummaryRequest {
	return contractx.SummaryRequest{
		Text:          text,
		MinLength:     contractx.SummaryMinLength,
		MaxLength:     contractx.SummaryMaxLength,
		Deterministic: true,
	}
}

func TestCachedSummarizerHitSkipsModel(t *testing.T) {
	t.Parallel()

	next := &countingSummarizer{}
	s := NewCachedSummarizer(next, newMemoryCache())

	first, err := s.Summarize(context.Background(), summaryRequest("Supplier Acme"))
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	second, err := s.Summarize(context.Background(), summaryRequest("Supplier Acme"))
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}

	if first != second {
		t.Fatalf("cached summary differs: %q vs %q", first, second)
	}
	if next.calls != 1 {
		t.Fatalf("expected one model call, got %d", next.calls)
	}
}

func TestCachedSummarizerBypassesNonDeterministic(t *testing.T) {
	t.Parallel()

	next := &countingSummarizer{}
	c := newMemoryCache()
	s := NewCachedSummarizer(next, c)

	req := summaryRequest("Supplier Acme")
	req.Deterministic = false
	for i := 0; i < 2; i++ {
		if _, err := s.Summarize(context.Background(), req); err != nil {
			t.Fatalf("Summarize() error = %v", err)
		}
	}
	if next.calls != 2 {
		t.Fatalf("expected two model calls, got %d", next.calls)
	}
	if len(c.values) != 0 {
		t.Fatalf("expected nothing cached, got %#v", c.values)
	}
}

func TestCachedSummarizerIgnoresCacheFailures(t *testing.T) {
	t.Parallel()

	c := newMemoryCache()
	c.getErr = errors.New("connection refused")
	c.setErr = errors.New("connection refused")
	next := &countingSummarizer{}

	got, err := NewCachedSummarizer(next, c).Summarize(context.Background(), summaryRequest("Product Anvil"))
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	if got != "summary of Product Anvil" {
		t.Fatalf("Summarize() = %q", got)
	}
}

func TestCachedSummarizerDoesNotCacheErrors(t *testing.T) {
	t.Parallel()

	c := newMemoryCache()
	next := &countingSummarizer{err: contractx.ErrModelInvoke}

	_, err := NewCachedSummarizer(next, c).Summarize(context.Background(), summaryRequest("x"))
	if !errors.Is(err, contractx.ErrModelInvoke) {
		t.Fatalf("Summarize() error = %v", err)
	}
	if len(c.values) != 0 {
		t.Fatalf("expected nothing cached, got %#v", c.values)
	}
}

func TestNewCachedSummarizerNilCache(t *testing.T) {
	t.Parallel()

	next := &countingSummarizer{}
	if got := NewCachedSummarizer(next, nil); got != contractx.Summarizer(next) {
		t.Fatalf("expected the wrapped summarizer to be returned unchanged")
	}
}

func TestSummaryKey(t *testing.T) {
	t.Parallel()

	a := SummaryKey(summaryRequest("Supplier Acme"))
	if a != SummaryKey(summaryRequest("Supplier Acme")) {
		t.Fatal("key is not stable")
	}
	if a == SummaryKey(summaryRequest("Supplier Acmf")) {
		t.Fatal("different text produced the same key")
	}

	bounded := summaryRequest("Supplier Acme")
	bounded.MaxLength = 80
	if a == SummaryKey(bounded) {
		t.Fatal("different bounds produced the same key")
	}
}
