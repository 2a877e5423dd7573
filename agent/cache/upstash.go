package cache

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const maxResponseSizeBytes = 2 << 20

type UpstashConfig struct {
	URL     string
	Token   string
	Timeout time.Duration
}

// UpstashCache keeps summaries in Upstash Redis via its REST API.
type UpstashCache struct {
	baseURL    string
	token      string
	httpClient *http.Client
	opts       options
}

type redisRESTResponse struct {
	Result json.RawMessage `json:"result"`
	Error  string          `json:"error"`
}

func NewUpstashCache(cfg UpstashConfig, opts ...Option) (*UpstashCache, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.URL), "/")
	if baseURL == "" {
		return nil, errors.New("upstash redis url is required")
	}
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("invalid redis rest url: %w", err)
	}

	token := strings.TrimSpace(cfg.Token)
	if token == "" {
		return nil, errors.New("upstash redis token is required")
	}

	o, err := buildOptions(opts)
	if err != nil {
		return nil, err
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 2 * time.Second
	}

	httpClient := o.httpClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}

	return &UpstashCache{
		baseURL:    baseURL,
		token:      token,
		httpClient: httpClient,
		opts:       o,
	}, nil
}

func (c *UpstashCache) Get(ctx context.Context, key string) (string, error) {
	k, err := c.opts.key(key)
	if err != nil {
		return "", err
	}

	result, err := c.call(ctx, "GET", k)
	if err != nil {
		return "", err
	}
	if len(result) == 0 || bytes.Equal(result, []byte("null")) {
		return "", ErrCacheMiss
	}

	var value string
	if err := json.Unmarshal(result, &value); err != nil {
		return "", fmt.Errorf("decode cached summary: %w", err)
	}
	return value, nil
}

func (c *UpstashCache) Set(ctx context.Context, key, value string) error {
	k, err := c.opts.key(key)
	if err != nil {
		return err
	}

	args := append([]any{"SET", k, value}, expiryArgs(c.opts.ttl)...)
	_, err = c.call(ctx, args...)
	return err
}

func (c *UpstashCache) Close() error {
	return nil
}

// call posts one command as a JSON array and returns the raw "result" field.
func (c *UpstashCache) call(ctx context.Context, args ...any) (json.RawMessage, error) {
	body, err := json.Marshal(args)
	if err != nil {
		return nil, fmt.Errorf("encode upstash %v: %w", args[0], err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build upstash request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upstash %v: %w", args[0], err)
	}
	defer resp.Body.Close()

	var out redisRESTResponse
	decodeErr := json.NewDecoder(io.LimitReader(resp.Body, maxResponseSizeBytes)).Decode(&out)

	switch {
	case out.Error != "":
		return nil, fmt.Errorf("upstash %v: %s", args[0], out.Error)
	case resp.StatusCode/100 != 2:
		return nil, fmt.Errorf("upstash %v: unexpected status %s", args[0], resp.Status)
	case decodeErr != nil:
		return nil, fmt.Errorf("decode upstash response: %w", decodeErr)
	}
	return bytes.TrimSpace(out.Result), nil
}

// expiryArgs mirrors go-redis: whole seconds go out as EX, anything finer as
// PX. A zero ttl keeps the key without expiry.
func expiryArgs(ttl time.Duration) []any {
	switch {
	case ttl <= 0:
		return nil
	case ttl%time.Second == 0:
		return []any{"EX", int64(ttl / time.Second)}
	default:
		return []any{"PX", ttl.Milliseconds()}
	}
}
