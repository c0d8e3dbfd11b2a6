package github

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gregjones/httpcache"
)

// mediaTypeJSON is the Accept value GitHub recommends for REST calls.
const mediaTypeJSON = "application/vnd.github+json"

// loggingTransport pins the Accept header on every outgoing request and logs
// each round trip with method, path, status, and duration.
// go-github sets the older v3 media type by default.
type loggingTransport struct {
	base http.RoundTripper
}

func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req2 := req.Clone(req.Context())
	req2.Header.Set("Accept", mediaTypeJSON)

	start := time.Now()
	resp, err := t.base.RoundTrip(req2)

	status := 0
	cached := false
	if resp != nil {
		status = resp.StatusCode
		cached = resp.Header.Get(httpcache.XFromCache) != ""
	}
	slog.Debug("http request",
		"method", req2.Method,
		"path", req2.URL.Path,
		"status", status,
		"cached", cached,
		"duration", time.Since(start).Round(time.Microsecond),
	)

	return resp, err
}

// withLoggingTransport returns a shallow copy of hc whose transport goes through
// loggingTransport. hc itself is not modified.
func withLoggingTransport(hc *http.Client) *http.Client {
	if hc == nil {
		hc = &http.Client{}
	}
	base := hc.Transport
	if base == nil {
		base = http.DefaultTransport
	}

	clone := *hc
	clone.Transport = &loggingTransport{base: base}
	return &clone
}

// revalidateTransport sits below httpcache and marks every response
// "no-cache", so a cached entry is always revalidated with If-None-Match
// instead of being served on the strength of GitHub's max-age.
type revalidateTransport struct {
	base http.RoundTripper
}

func (t *revalidateTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return resp, err
	}
	resp.Header.Set("Cache-Control", "no-cache")
	return resp, nil
}
