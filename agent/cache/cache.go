package cache

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

var (
	ErrCacheMiss   = errors.New("cache miss")
	ErrInvalidKey  = errors.New("cache key is empty")
	ErrUnsupported = errors.New("unsupported cache backend")
)

const (
	BackendNone    = "none"
	BackendRedis   = "redis"
	BackendUpstash = "upstash"
)

const (
	defaultKeyPrefix = "catalogbot:summary:"
	defaultTTL       = 24 * time.Hour
)

// SummaryCache stores generated summaries by key. Get returns ErrCacheMiss
// when the key is absent or expired.
type SummaryCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Close() error
}

type Config struct {
	Backend       string        `envconfig:"BACKEND" split_words:"true" default:"none"`
	RedisAddr     string        `envconfig:"REDIS_ADDR" split_words:"true" default:"localhost:6379"`
	RedisPassword string        `envconfig:"REDIS_PASSWORD" split_words:"true"`
	RedisDB       int           `envconfig:"REDIS_DB" split_words:"true" default:"0"`
	UpstashURL    string        `envconfig:"UPSTASH_URL" split_words:"true"`
	UpstashToken  string        `envconfig:"UPSTASH_TOKEN" split_words:"true"`
	KeyPrefix     string        `envconfig:"KEY_PREFIX" split_words:"true" default:"catalogbot:summary:"`
	TTL           time.Duration `envconfig:"TTL" split_words:"true" default:"24h"`
	Timeout       time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"2s"`
}

// Option customizes a cache backend.
type Option func(*options)

type options struct {
	keyPrefix  string
	ttl        time.Duration
	httpClient *http.Client
}

func WithKeyPrefix(prefix string) Option {
	return func(o *options) {
		trimmed := strings.TrimSpace(prefix)
		if trimmed != "" {
			o.keyPrefix = trimmed
		}
	}
}

func WithTTL(ttl time.Duration) Option {
	return func(o *options) {
		o.ttl = ttl
	}
}

func WithHTTPClient(client *http.Client) Option {
	return func(o *options) {
		if client != nil {
			o.httpClient = client
		}
	}
}

func buildOptions(opts []Option) (options, error) {
	o := options{
		keyPrefix: defaultKeyPrefix,
		ttl:       defaultTTL,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if o.ttl < 0 {
		return o, errors.New("ttl must be >= 0")
	}
	return o, nil
}

func (o options) key(key string) (string, error) {
	if strings.TrimSpace(key) == "" {
		return "", ErrInvalidKey
	}
	return o.keyPrefix + key, nil
}

// New builds the backend selected by cfg.Backend. The "none" backend yields a
// nil cache and no error.
func New(ctx context.Context, cfg Config) (SummaryCache, error) {
	opts := []Option{WithKeyPrefix(cfg.KeyPrefix), WithTTL(cfg.TTL)}

	switch strings.ToLower(strings.TrimSpace(cfg.Backend)) {
	case "", BackendNone:
		return nil, nil
	case BackendRedis:
		c, err := NewRedisCache(ctx, RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			Timeout:  cfg.Timeout,
		}, opts...)
		if err != nil {
			return nil, err
		}
		return c, nil
	case BackendUpstash:
		c, err := NewUpstashCache(UpstashConfig{
			URL:     cfg.UpstashURL,
			Token:   cfg.UpstashToken,
			Timeout: cfg.Timeout,
		}, opts...)
		if err != nil {
			return nil, err
		}
		return c, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupported, cfg.Backend)
	}
}
