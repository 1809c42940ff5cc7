package minidom

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"go.uber.org/zap"
	"golang.org/x/net/html/charset"
)

// Request describes one fetch. Data and ResponseHeader are filled by
// FetchSync.
type Request struct {
	RequestHeader  http.Header
	ResponseHeader http.Header
	Payload        []byte
	Data           string
	Url            string
	Method         string
}

// StatusError reports a response outside the 2xx range.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("fetch %s: unexpected status %d", e.URL, e.StatusCode)
}

// WebClient loads remote markup and style sheets and hands the decoded text
// to ParseMarkup and ParseStylesheet.
type WebClient struct {
	client    *http.Client
	jar       *ExtJar
	userAgent string
	logger    *zap.Logger
}

func NewClient(opts ...Option) (*WebClient, error) {
	cfg := newConfig(opts)

	c := &WebClient{
		client:    cfg.httpClient,
		userAgent: cfg.userAgent,
		logger:    cfg.logger,
	}

	if c.client == nil {
		c.client = &http.Client{}
	}

	if c.client.Jar == nil {
		jar, err := NewJar()

		if err != nil {
			return nil, fmt.Errorf("create cookie jar: %w", err)
		}

		c.client.Jar = jar
		c.jar = jar
	}

	return c, nil
}

func (c *WebClient) SetUserAgent(agent string) {
	c.userAgent = agent
}

func (c *WebClient) GetHttpClient() *http.Client {
	return c.client
}

func (c *WebClient) Cookies(u *url.URL) []*http.Cookie {
	return c.client.Jar.Cookies(u)
}

// CookieURLs lists the URLs that set cookies. It is empty when the client
// was built around an http.Client that brought its own jar.
func (c *WebClient) CookieURLs() []string {
	if c.jar == nil {
		return nil
	}

	return c.jar.URLs()
}

func (c *WebClient) prepare(ctx context.Context, r *Request) (*http.Request, error) {
	method := r.Method

	if method == "" {
		method = http.MethodGet
	}

	req, err := http.NewRequestWithContext(ctx, method, r.Url, bytes.NewReader(r.Payload))

	if err != nil {
		return nil, fmt.Errorf("build request %s: %w", r.Url, err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	mergeHeaderFields(r.RequestHeader, req.Header)

	return req, nil
}

func mergeHeaderFields(src http.Header, dst http.Header) {
	if src == nil || dst == nil {
		return
	}

	for k, values := range src {
		for _, v := range values {
			dst.Add(k, v)
		}
	}
}

// FetchSync performs request and stores the UTF-8 decoded body in
// request.Data.
func (c *WebClient) FetchSync(ctx context.Context, request *Request) error {
	req, err := c.prepare(ctx, request)

	if err != nil {
		return err
	}

	resp, err := c.client.Do(req)

	if err != nil {
		c.logger.Warn("fetch failed", zap.String("url", request.Url), zap.Error(err))
		return fmt.Errorf("fetch %s: %w", request.Url, err)
	}

	defer resp.Body.Close()

	request.ResponseHeader = resp.Header

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Warn("unexpected status",
			zap.String("url", request.Url), zap.Int("status", resp.StatusCode))
		return &StatusError{URL: request.Url, StatusCode: resp.StatusCode}
	}

	reader, err := charset.NewReader(resp.Body, resp.Header.Get("Content-Type"))

	if err != nil {
		return fmt.Errorf("decode %s: %w", request.Url, err)
	}

	data, err := io.ReadAll(reader)

	if err != nil {
		return fmt.Errorf("read %s: %w", request.Url, err)
	}

	request.Data = string(data)

	c.logger.Debug("fetched",
		zap.String("url", request.Url),
		zap.Int("status", resp.StatusCode),
		zap.Int("bytes", len(data)))

	return nil
}

// FetchDocument fetches url and parses the body as markup.
func (c *WebClient) FetchDocument(ctx context.Context, url string) (*Document, error) {
	request := &Request{Url: url}

	if err := c.FetchSync(ctx, request); err != nil {
		return nil, err
	}

	return ParseMarkup(request.Data, WithLogger(c.logger)), nil
}

// FetchStylesheet fetches url and parses the body as a style sheet.
func (c *WebClient) FetchStylesheet(ctx context.Context, url string) (*Stylesheet, error) {
	request := &Request{Url: url}

	if err := c.FetchSync(ctx, request); err != nil {
		return nil, err
	}

	return ParseStylesheet(request.Data, WithLogger(c.logger)), nil
}
