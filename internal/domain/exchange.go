package domain

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/textproto"
	"strings"
	"syscall"
	"time"
)

// Header is a response header mapping. Lookups are case-insensitive.
type Header map[string][]string

// Get returns the first value stored for key, matching names case-insensitively.
func (h Header) Get(key string) string {
	if h == nil {
		return ""
	}
	if v := h[textproto.CanonicalMIMEHeaderKey(key)]; len(v) > 0 {
		return v[0]
	}
	for k, v := range h {
		if strings.EqualFold(k, key) && len(v) > 0 {
			return v[0]
		}
	}
	return ""
}

// Has reports whether key is present with at least one value.
func (h Header) Has(key string) bool {
	if h == nil {
		return false
	}
	if v := h[textproto.CanonicalMIMEHeaderKey(key)]; len(v) > 0 {
		return true
	}
	for k, v := range h {
		if strings.EqualFold(k, key) && len(v) > 0 {
			return true
		}
	}
	return false
}

// Clone returns a deep copy.
func (h Header) Clone() Header {
	if h == nil {
		return nil
	}
	out := make(Header, len(h))
	for k, v := range h {
		cp := make([]string, len(v))
		copy(cp, v)
		out[k] = cp
	}
	return out
}

// Response is the transport-level view of an HTTP response: status plus headers.
type Response struct {
	StatusCode int
	Header     Header
}

// RequestInfo describes the request that produced an exchange.
// It is opaque to the serializers and only used in diagnostics.
type RequestInfo struct {
	ID     string
	Method string
	URL    string
	Header Header
}

func (r RequestInfo) String() string {
	if r.Method == "" && r.URL == "" {
		return ""
	}
	return strings.TrimSpace(r.Method + " " + r.URL)
}

// Exchange is one completed HTTP exchange as handed over by the transport.
//
// Body is nil when the transport produced no body at all; a non-nil empty slice is an
// empty body. Err holds the transport failure, if any.
type Exchange struct {
	Request   RequestInfo
	Response  *Response
	Body      []byte
	Truncated bool
	Duration  time.Duration
	Err       error
}

// TransportErrorKind is a high-level classification of transport failures.
type TransportErrorKind string

const (
	TransportUnknown TransportErrorKind = "unknown"
	TransportTimeout TransportErrorKind = "timeout"
	TransportDNS     TransportErrorKind = "dns"
	TransportConn    TransportErrorKind = "connection"
)

// TransportError is a failure that happened below the service protocol.
type TransportError struct {
	Kind TransportErrorKind
	Err  error
}

func (e *TransportError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("transport %s: %v", e.Kind, e.Err)
}

func (e *TransportError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NewTransportError wraps err with its classification. It returns nil for a nil err.
func NewTransportError(err error) error {
	if err == nil {
		return nil
	}
	var te *TransportError
	if errors.As(err, &te) {
		return err
	}
	return &TransportError{Kind: ClassifyTransportError(err), Err: err}
}

// ClassifyTransportError maps low-level network errors to a TransportErrorKind.
func ClassifyTransportError(err error) TransportErrorKind {
	if err == nil {
		return ""
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return TransportTimeout
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return TransportDNS
	}

	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return TransportTimeout
	}

	if errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.ECONNRESET) || errors.Is(err, syscall.EPIPE) {
		return TransportConn
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return TransportConn
	}
	return TransportUnknown
}
