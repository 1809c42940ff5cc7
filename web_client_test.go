package minidom

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newTestServer(t *testing.T) *httptest.Server {
	mux := http.NewServeMux()

	mux.HandleFunc("/doc", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = io.WriteString(w, `<html><head><title>Hello</title></head></html>`)
	})
	mux.HandleFunc("/latin1", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=iso-8859-1")
		_, _ = w.Write([]byte("<p>caf\xe9</p>"))
	})
	mux.HandleFunc("/style.css", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/css; charset=utf-8")
		_, _ = io.WriteString(w, `p, .x { color: red }`)
	})
	mux.HandleFunc("/echo", func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Header().Set("X-Method", r.Method)
		_, _ = io.WriteString(w, r.Header.Get("User-Agent")+"|"+r.Header.Get("X-Test")+"|"+string(body))
	})
	mux.HandleFunc("/cookie", func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "session", Value: "abc", Path: "/"})
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = io.WriteString(w, `<p>ok</p>`)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	return srv
}

func newTestClient(t *testing.T, opts ...Option) *WebClient {
	client, err := NewClient(append([]Option{WithLogger(zaptest.NewLogger(t))}, opts...)...)
	require.NoError(t, err)

	return client
}

func TestWebClient_FetchDocument(t *testing.T) {
	srv := newTestServer(t)
	client := newTestClient(t)

	doc, err := client.FetchDocument(context.Background(), srv.URL+"/doc")
	require.NoError(t, err)

	title := doc.First("title")
	require.NotEqual(t, NoNode, title)
	assert.Equal(t, "Hello", doc.Text(title))
}

func TestWebClient_DecodesCharset(t *testing.T) {
	srv := newTestServer(t)
	client := newTestClient(t)

	doc, err := client.FetchDocument(context.Background(), srv.URL+"/latin1")
	require.NoError(t, err)
	assert.Equal(t, "café", doc.Text(doc.RootID()))
}

func TestWebClient_FetchStylesheet(t *testing.T) {
	srv := newTestServer(t)
	client := newTestClient(t)

	sheet, err := client.FetchStylesheet(context.Background(), srv.URL+"/style.css")
	require.NoError(t, err)
	require.Len(t, sheet.Rules, 1)
	assert.Equal(t, []string{"p", ".x"}, sheet.Rules[0].Selectors)
	assert.Equal(t, []Declaration{{Property: "color", Value: "red"}}, sheet.Rules[0].Declarations)
}

func TestWebClient_FetchSync(t *testing.T) {
	srv := newTestServer(t)
	client := newTestClient(t, WithUserAgent("minidom-test"))

	request := &Request{
		Url:           srv.URL + "/echo",
		Method:        http.MethodPost,
		Payload:       []byte("payload"),
		RequestHeader: http.Header{"X-Test": []string{"yes"}},
	}

	require.NoError(t, client.FetchSync(context.Background(), request))
	assert.Equal(t, "minidom-test|yes|payload", request.Data)
	assert.Equal(t, http.MethodPost, request.ResponseHeader.Get("X-Method"))

	client.SetUserAgent("other")
	request = &Request{Url: srv.URL + "/echo"}

	require.NoError(t, client.FetchSync(context.Background(), request))
	assert.Equal(t, "other||", request.Data)
	assert.Equal(t, http.MethodGet, request.ResponseHeader.Get("X-Method"))
}

func TestWebClient_StatusError(t *testing.T) {
	srv := newTestServer(t)
	client := newTestClient(t)

	_, err := client.FetchDocument(context.Background(), srv.URL+"/missing")
	require.Error(t, err)

	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusNotFound, se.StatusCode)
}

func TestWebClient_Canceled(t *testing.T) {
	srv := newTestServer(t)
	client := newTestClient(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.FetchStylesheet(ctx, srv.URL+"/style.css")
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestWebClient_Cookies(t *testing.T) {
	srv := newTestServer(t)
	client := newTestClient(t)

	_, err := client.FetchDocument(context.Background(), srv.URL+"/cookie")
	require.NoError(t, err)

	u, err := url.Parse(srv.URL)
	require.NoError(t, err)

	cookies := client.Cookies(u)
	require.Len(t, cookies, 1)
	assert.Equal(t, "session", cookies[0].Name)
	assert.Len(t, client.CookieURLs(), 1)
}

func TestWebClient_OwnHTTPClient(t *testing.T) {
	srv := newTestServer(t)
	hc := &http.Client{}
	client := newTestClient(t, WithHTTPClient(hc))

	assert.Same(t, hc, client.GetHttpClient())
	assert.NotNil(t, hc.Jar)
	assert.Empty(t, client.CookieURLs())

	_, err := client.FetchDocument(context.Background(), srv.URL+"/cookie")
	require.NoError(t, err)
	assert.Len(t, client.CookieURLs(), 1)
}
