package httpclient

import (
	"net"
	"net/http"
	"time"

	"github.com/aalvaropc/s3lens/internal/domain"
)

// Config tunes the *http.Client that carries S3 exchanges.
type Config struct {
	// Timeout bounds the whole exchange, body included. A context deadline still applies.
	Timeout time.Duration

	DialTimeout    time.Duration
	KeepAlive      time.Duration
	TLSHandshake   time.Duration
	ResponseHeader time.Duration
	// ExpectContinue matters for PUT/POST bodies sent with "Expect: 100-continue".
	ExpectContinue  time.Duration
	IdleConnTimeout time.Duration

	MaxIdleConnsPerHost int

	// FollowRedirects hands 3xx responses to net/http. Off by default: an S3 redirect
	// (PermanentRedirect, TemporaryRedirect) carries an <Error> body that is itself the
	// answer to interpret.
	FollowRedirects bool
}

func DefaultConfig() Config {
	return Config{
		Timeout:             30 * time.Second,
		DialTimeout:         5 * time.Second,
		KeepAlive:           30 * time.Second,
		TLSHandshake:        5 * time.Second,
		ResponseHeader:      10 * time.Second,
		ExpectContinue:      time.Second,
		IdleConnTimeout:     90 * time.Second,
		MaxIdleConnsPerHost: 16,
	}
}

// ConfigFor derives client settings from the workspace transport config.
// The response header timeout never exceeds the overall timeout.
func ConfigFor(tc domain.TransportConfig) Config {
	cfg := DefaultConfig()
	if tc.Timeout > 0 {
		cfg.Timeout = tc.Timeout
		cfg.ResponseHeader = min(cfg.ResponseHeader, tc.Timeout)
	}
	return cfg
}

// New builds a client for a single S3 endpoint. Compression is disabled so the
// body handed to the serializers is exactly what the service sent.
func New(cfg Config) *http.Client {
	dialer := &net.Dialer{Timeout: cfg.DialTimeout, KeepAlive: cfg.KeepAlive}

	c := &http.Client{
		Timeout: cfg.Timeout,
		Transport: &http.Transport{
			Proxy:                 http.ProxyFromEnvironment,
			DialContext:           dialer.DialContext,
			ForceAttemptHTTP2:     true,
			MaxIdleConnsPerHost:   cfg.MaxIdleConnsPerHost,
			IdleConnTimeout:       cfg.IdleConnTimeout,
			TLSHandshakeTimeout:   cfg.TLSHandshake,
			ResponseHeaderTimeout: cfg.ResponseHeader,
			ExpectContinueTimeout: cfg.ExpectContinue,
			DisableCompression:    true,
		},
	}
	if !cfg.FollowRedirects {
		c.CheckRedirect = func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		}
	}
	return c
}
