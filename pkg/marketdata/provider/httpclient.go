package provider

import (
	"net/http"
	"net/url"
	"time"

	"github.com/rxtech-lab/bovespa-fetcher/pkg/errors"
)

// NewHTTPClient returns the client used by providers that accept a custom
// *http.Client. An empty proxy keeps the environment proxy settings.
func NewHTTPClient(timeout time.Duration, proxy string) (*http.Client, error) {
	transport := http.DefaultTransport.(*http.Transport).Clone()

	if proxy != "" {
		proxyURL, err := url.Parse(proxy)
		if err != nil || proxyURL.Host == "" {
			return nil, errors.Newf(errors.ErrCodeInvalidConfiguration, "invalid proxy url: %s", proxy)
		}

		transport.Proxy = http.ProxyURL(proxyURL)
	}

	return &http.Client{
		Transport: transport,
		Timeout:   timeout,
	}, nil
}
