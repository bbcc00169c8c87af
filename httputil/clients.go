package httputil

import (
	"crypto/tls"
	"net/http"
	"net/url"
	"time"

	"crm_bridge/config"
)

// BrowserUserAgent is sent on media downloads; some image hosts reject the Go
// default.
const BrowserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"

type Clients struct {
	Media *http.Client // proxied when configured, for source image hosts
	API   *http.Client // direct, for the delivery store
}

func NewClients(proxyCfg config.ProxyConfig) *Clients {
	transport := &http.Transport{
		Proxy:             http.ProxyFromEnvironment,
		ForceAttemptHTTP2: false,
		TLSNextProto:      make(map[string]func(string, *tls.Conn) http.RoundTripper),
	}
	if proxyCfg.URL != "" {
		if proxyURL, err := url.Parse(proxyCfg.URL); err == nil {
			transport.Proxy = http.ProxyURL(proxyURL)
		}
	}

	return &Clients{
		Media: &http.Client{Timeout: 60 * time.Second, Transport: transport},
		API:   &http.Client{Timeout: 30 * time.Second},
	}
}
