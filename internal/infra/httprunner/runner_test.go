package httprunner

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aalvaropc/s3lens/internal/domain"
	"github.com/aalvaropc/s3lens/internal/infra/httpclient"
)

func transportFor(srv *httptest.Server) domain.TransportConfig {
	return domain.TransportConfig{Endpoint: srv.URL, PathStyle: true}
}

func TestRunner_BuildsExchange(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/my-bucket/" || r.URL.Query().Get("list-type") != "2" {
			t.Errorf("unexpected request %s", r.URL)
		}
		w.Header().Set("Content-Type", "application/xml")
		w.Header().Set("x-amz-request-id", "REQ1")
		_, _ = w.Write([]byte(`<ListBucketResult><Name>my-bucket</Name></ListBucketResult>`))
	}))
	defer srv.Close()

	r := New(httpclient.NewExecutor(), transportFor(srv), WithIDGenerator(func() string { return "id-1" }))

	ex, err := r.Run(context.Background(), domain.RequestSpec{
		Kind:    domain.KindListObjects,
		Target:  "/my-bucket",
		Query:   map[string]string{"list-type": "2"},
		Headers: map[string]string{"Authorization": "AWS4-HMAC-SHA256 secret"},
	})
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if ex.Err != nil {
		t.Fatalf("unexpected transport error: %v", ex.Err)
	}
	if ex.Request.ID != "id-1" || ex.Request.Method != http.MethodGet {
		t.Fatalf("unexpected request info %+v", ex.Request)
	}
	if ex.Request.Header.Get("authorization") == "" {
		t.Fatalf("expected request headers to be recorded")
	}
	if ex.Response == nil || ex.Response.StatusCode != 200 {
		t.Fatalf("unexpected response %+v", ex.Response)
	}
	if ex.Response.Header.Get("X-Amz-Request-Id") != "REQ1" {
		t.Fatalf("expected response headers")
	}
	if !strings.Contains(string(ex.Body), "my-bucket") {
		t.Fatalf("unexpected body %q", ex.Body)
	}
	if ex.Duration <= 0 {
		t.Fatalf("expected duration")
	}
}

func TestRunner_TruncatesBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(strings.Repeat("a", 300*1024)))
	}))
	defer srv.Close()

	tc := transportFor(srv)
	tc.MaxBodyBytes = 256 * 1024
	r := NewFromConfig(tc)

	ex, err := r.Run(context.Background(), domain.RequestSpec{Target: "/bucket/big.bin"})
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if !ex.Truncated {
		t.Fatalf("expected truncated=true")
	}
	if len(ex.Body) != 256*1024 {
		t.Fatalf("expected body len=256KB, got=%d", len(ex.Body))
	}
}

func TestRunner_HeadHasEmptyBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("ETag", `"abc"`)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	r := NewFromConfig(transportFor(srv))
	ex, err := r.Run(context.Background(), domain.RequestSpec{Method: domain.MethodHead, Target: "/bucket/k"})
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if ex.Body == nil || len(ex.Body) != 0 {
		t.Fatalf("expected empty non-nil body, got %#v", ex.Body)
	}
}

func TestRunner_ClassifiesTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	tc := transportFor(srv)
	tc.Timeout = 50 * time.Millisecond
	r := NewFromConfig(tc)

	ex, err := r.Run(context.Background(), domain.RequestSpec{Target: "/slow"})
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	var te *domain.TransportError
	if !errors.As(ex.Err, &te) {
		t.Fatalf("expected a transport error, got %v", ex.Err)
	}
	if te.Kind != domain.TransportTimeout {
		t.Fatalf("expected timeout kind, got=%s (err=%v)", te.Kind, te.Err)
	}
	if ex.Response != nil || ex.Body != nil {
		t.Fatalf("expected no response and no body")
	}
}

func TestRunner_InvalidTarget(t *testing.T) {
	r := NewFromConfig(domain.TransportConfig{Endpoint: "http://localhost"})
	_, err := r.Run(context.Background(), domain.RequestSpec{Target: "/bad!bucket/k"})
	if !domain.IsKind(err, domain.KindInvalidRequest) {
		t.Fatalf("expected invalid_request, got %v", err)
	}
}
