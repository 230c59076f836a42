package labdex

import (
	"log/slog"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	// DefaultBasePath is the API prefix the server mounts its resources under.
	DefaultBasePath    = "/test/v1.0"
	defaultHTTPTimeout = 10 * time.Second
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	basePath string
	timeout  time.Duration
	apiKey   string
	resty    *resty.Client

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithBasePath overrides the API prefix. Defaults to /test/v1.0.
// An empty path mounts the API at the server root.
func WithBasePath(p string) Option {
	return optionFunc(func(c *clientConfig) {
		c.basePath = p
	})
}

// WithHTTPTimeout sets the per-request timeout. Defaults to 10s.
func WithHTTPTimeout(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.timeout = d
	})
}

// WithAPIKey sends the key as a bearer token on every request.
func WithAPIKey(key string) Option {
	return optionFunc(func(c *clientConfig) {
		c.apiKey = key
	})
}

// WithRestyClient uses a preconfigured resty client (transport, proxies, retries).
// Base URL, timeout and auth are still applied on top of it.
func WithRestyClient(rc *resty.Client) Option {
	return optionFunc(func(c *clientConfig) {
		c.resty = rc
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
