package client

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/zeebo/xxh3"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/totegamma/gravatar"
)

const (
	defaultTimeout     = gravatar.DefaultTimeout
	defaultPositiveTTL = 10 * time.Minute
	defaultNegativeTTL = 1 * time.Minute
	cleanupInterval    = 15 * time.Minute
	defaultUserAgent   = "gravatar-go"
)

var tracer = otel.Tracer("client")

// Store is a shared cache of existence results, e.g. redis or memcached.
type Store interface {
	Get(ctx context.Context, key string) (exists bool, found bool, err error)
	Set(ctx context.Context, key string, exists bool, ttl time.Duration) error
}

// Client checks avatar existence over HTTP and caches definite answers.
type Client struct {
	client      *http.Client
	cache       *cache.Cache
	store       Store
	userAgent   string
	positiveTTL time.Duration
	negativeTTL time.Duration
}

type Option func(*Client)

func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.client.Timeout = d
		}
	}
}

// WithStore adds a shared cache consulted after the in-process one.
func WithStore(store Store) Option {
	return func(c *Client) {
		c.store = store
	}
}

// WithTTL sets how long found and missing avatars are remembered.
func WithTTL(positive, negative time.Duration) Option {
	return func(c *Client) {
		if positive > 0 {
			c.positiveTTL = positive
		}
		if negative > 0 {
			c.negativeTTL = negative
		}
	}
}

func New(opts ...Option) *Client {
	httpClient := http.Client{
		Timeout: defaultTimeout,
	}

	c := &Client{
		client:      &httpClient,
		cache:       cache.New(defaultPositiveTTL, cleanupInterval),
		userAgent:   defaultUserAgent,
		positiveTTL: defaultPositiveTTL,
		negativeTTL: defaultNegativeTTL,
	}
	httpClient.Transport = c

	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) RoundTrip(req *http.Request) (*http.Response, error) {
	req.Header.Set("User-Agent", c.userAgent)
	return http.DefaultTransport.RoundTrip(req)
}

// CacheKey derives the cache key for a check URL.
func CacheKey(rawURL string) string {
	return "gravatar:exists:" + strconv.FormatUint(xxh3.HashString(rawURL), 16)
}

// Check reports whether rawURL answers 200 OK. 200 and 404 answers are
// cached; transport errors and other statuses are not.
func (c *Client) Check(ctx context.Context, rawURL string) (bool, error) {
	ctx, span := tracer.Start(ctx, "Client.Check", trace.WithAttributes(attribute.String("url", rawURL)))
	defer span.End()

	key := CacheKey(rawURL)

	if x, found := c.cache.Get(key); found {
		span.SetAttributes(attribute.String("cache", "memory"))
		return x.(bool), nil
	}

	if c.store != nil {
		exists, found, err := c.store.Get(ctx, key)
		if err != nil {
			span.RecordError(err)
			log.Printf("gravatar: cache store get failed: %v", err)
		} else if found {
			span.SetAttributes(attribute.String("cache", "store"))
			c.cache.Set(key, exists, c.ttl(exists))
			return exists, nil
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, rawURL, nil)
	if err != nil {
		span.RecordError(err)
		return false, fmt.Errorf("failed to create request: %v", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		span.RecordError(err)
		return false, fmt.Errorf("failed to perform request: %v", err)
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("status", resp.StatusCode))

	var exists bool
	switch resp.StatusCode {
	case http.StatusOK:
		exists = true
	case http.StatusNotFound:
		exists = false
	default:
		return false, nil
	}

	c.cache.Set(key, exists, c.ttl(exists))
	if c.store != nil {
		if err := c.store.Set(ctx, key, exists, c.ttl(exists)); err != nil {
			span.RecordError(err)
			log.Printf("gravatar: cache store set failed: %v", err)
		}
	}

	return exists, nil
}

// Forget drops any cached result for rawURL from the in-process cache.
func (c *Client) Forget(rawURL string) {
	c.cache.Delete(CacheKey(rawURL))
}

func (c *Client) ttl(exists bool) time.Duration {
	if exists {
		return c.positiveTTL
	}
	return c.negativeTTL
}

var _ gravatar.Checker = (*Client)(nil)
