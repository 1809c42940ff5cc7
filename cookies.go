package minidom

import (
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"sync"

	"golang.org/x/net/publicsuffix"
)

// ExtJar is a cookie jar that also remembers which cookies were set per
// URL so they can be listed later.
type ExtJar struct {
	jar     *cookiejar.Jar
	mu      sync.Mutex
	cookies map[string][]*http.Cookie
}

func NewJar() (*ExtJar, error) {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})

	if err != nil {
		return nil, err
	}

	return &ExtJar{jar: jar, cookies: make(map[string][]*http.Cookie)}, nil
}

func (j *ExtJar) Cookies(u *url.URL) []*http.Cookie {
	return j.jar.Cookies(u)
}

func (j *ExtJar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	j.mu.Lock()
	j.cookies[u.String()] = cookies
	j.mu.Unlock()

	j.jar.SetCookies(u, cookies)
}

// URLs lists the URLs that have set cookies.
func (j *ExtJar) URLs() []string {
	j.mu.Lock()
	defer j.mu.Unlock()

	urls := make([]string, 0, len(j.cookies))

	for u := range j.cookies {
		urls = append(urls, u)
	}

	return urls
}
