package domain

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestCapture_RoundTrip(t *testing.T) {
	ex := Exchange{
		Request: RequestInfo{ID: "r1", Method: "GET", URL: "http://h/b", Header: Header{"Authorization": {"x"}}},
		Response: &Response{
			StatusCode: 404,
			Header:     Header{"Content-Type": {"application/xml"}},
		},
		Body:     []byte("<Error/>"),
		Duration: 12 * time.Millisecond,
	}

	c := NewCapture(KindListObjects, ex, time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC))
	ex.Body[0] = 'X'

	got := c.Exchange()
	if string(got.Body) != "<Error/>" {
		t.Fatalf("expected body copy, got %q", got.Body)
	}
	if got.Response == nil || got.Response.StatusCode != 404 || got.Response.Header.Get("content-type") != "application/xml" {
		t.Fatalf("unexpected response %+v", got.Response)
	}
	if got.Duration != 12*time.Millisecond || got.Err != nil {
		t.Fatalf("unexpected exchange %+v", got)
	}
	if c.ID != "r1" || c.Kind != KindListObjects {
		t.Fatalf("unexpected capture %+v", c)
	}
}

func TestCapture_EmptyBodyIsNotAbsent(t *testing.T) {
	c := NewCapture(KindHeadObject, Exchange{Response: &Response{StatusCode: 200}, Body: []byte{}}, time.Now())
	if got := c.Exchange().Body; got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil body, got %#v", got)
	}

	c = NewCapture(KindHeadObject, Exchange{Response: &Response{StatusCode: 200}}, time.Now())
	if got := c.Exchange().Body; got != nil {
		t.Fatalf("expected nil body, got %#v", got)
	}
}

func TestCapture_TransportError(t *testing.T) {
	ex := Exchange{Err: NewTransportError(fmt.Errorf("dial: %w", context.DeadlineExceeded))}

	got := NewCapture(KindGetObject, ex, time.Now()).Exchange()
	if got.Response != nil {
		t.Fatalf("expected no response")
	}
	var te *TransportError
	if !errors.As(got.Err, &te) {
		t.Fatalf("expected transport error, got %v", got.Err)
	}
	if te.Kind != TransportTimeout || te.Err.Error() != "dial: context deadline exceeded" {
		t.Fatalf("unexpected transport error %+v", te)
	}
}
