package minidom

import (
	"net/http"

	"go.uber.org/zap"
)

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/129.0.0.0 Safari/537.36"

type config struct {
	logger     *zap.Logger
	userAgent  string
	httpClient *http.Client
}

// Option configures parsers and the WebClient.
type Option func(*config)

// WithLogger routes recovery and fetch diagnostics to l.
func WithLogger(l *zap.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithUserAgent overrides the User-Agent header sent by the WebClient.
func WithUserAgent(agent string) Option {
	return func(c *config) {
		c.userAgent = agent
	}
}

// WithHTTPClient replaces the underlying http.Client. Its Jar is kept if
// set, otherwise the WebClient installs its own.
func WithHTTPClient(client *http.Client) Option {
	return func(c *config) {
		c.httpClient = client
	}
}

func newConfig(opts []Option) *config {
	c := &config{
		logger:    zap.NewNop(),
		userAgent: defaultUserAgent,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}
