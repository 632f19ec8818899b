package domain

import (
	"errors"
	"time"
)

// Capture is the persisted form of an Exchange, replayable offline.
type Capture struct {
	ID      string
	SavedAt time.Time
	Kind    EndpointKind

	Request RequestInfo

	// StatusCode is 0 when the exchange produced no response.
	StatusCode int
	Headers    map[string][]string
	// Body is nil when the exchange had no body at all.
	Body      []byte
	Truncated bool

	DurationMS int64

	TransportKind  TransportErrorKind
	TransportError string
}

// NewCapture snapshots ex. Headers and body are copied.
func NewCapture(kind EndpointKind, ex Exchange, savedAt time.Time) Capture {
	c := Capture{
		ID:         ex.Request.ID,
		SavedAt:    savedAt.UTC(),
		Kind:       kind,
		Request:    ex.Request,
		Truncated:  ex.Truncated,
		DurationMS: ex.Duration.Milliseconds(),
	}
	c.Request.Header = ex.Request.Header.Clone()

	if ex.Response != nil {
		c.StatusCode = ex.Response.StatusCode
		c.Headers = ex.Response.Header.Clone()
	}
	if ex.Body != nil {
		c.Body = append([]byte{}, ex.Body...)
	}
	if ex.Err != nil {
		c.TransportError = ex.Err.Error()
		c.TransportKind = TransportUnknown
		var te *TransportError
		if errors.As(ex.Err, &te) {
			c.TransportKind = te.Kind
			if te.Err != nil {
				c.TransportError = te.Err.Error()
			}
		}
	}
	return c
}

// Exchange rebuilds the exchange the capture was taken from. A recorded transport
// failure comes back as a *TransportError carrying the recorded message.
func (c Capture) Exchange() Exchange {
	ex := Exchange{
		Request:   c.Request,
		Body:      c.Body,
		Truncated: c.Truncated,
		Duration:  time.Duration(c.DurationMS) * time.Millisecond,
	}
	if c.StatusCode != 0 {
		ex.Response = &Response{StatusCode: c.StatusCode, Header: Header(c.Headers).Clone()}
	}
	if c.TransportError != "" {
		kind := c.TransportKind
		if kind == "" {
			kind = TransportUnknown
		}
		ex.Err = &TransportError{Kind: kind, Err: errors.New(c.TransportError)}
	}
	return ex
}
