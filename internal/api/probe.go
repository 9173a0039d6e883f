package api

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/publicsuffix"
)

// WebProber issues short HEAD probes against business websites to decide
// whether they respond at all. Any error, timeout, or non-2xx status
// counts as down.
type WebProber struct{}

// NewWebProber creates a liveness prober
func NewWebProber() *WebProber {
	return &WebProber{}
}

// Probe returns true iff the URL answers a HEAD request with a 2xx status
// within the timeout
func (p *WebProber) Probe(rawURL string, timeout time.Duration) bool {
	client := &http.Client{
		Timeout: timeout,
	}

	resp, err := client.Head(rawURL)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode >= 200 && resp.StatusCode < 300
}

// RootDomain extracts the registered root domain from a website URL for
// compact display (e.g. "https://shop.alpha-diner.example/menu" ->
// "alpha-diner.example")
func RootDomain(rawURL string) (string, error) {
	input := strings.TrimSpace(rawURL)
	if input == "" {
		return "", fmt.Errorf("empty URL")
	}

	host := input
	if strings.Contains(input, "://") {
		u, err := url.Parse(input)
		if err != nil {
			return "", fmt.Errorf("invalid URL %q: %w", rawURL, err)
		}
		host = u.Hostname()
	}
	host = strings.TrimSuffix(strings.TrimSpace(host), ".")
	if host == "" {
		return "", fmt.Errorf("no host in URL %q", rawURL)
	}

	root, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		// Hosts without a public suffix (localhost, bare names) pass through
		return host, nil
	}
	return root, nil
}
