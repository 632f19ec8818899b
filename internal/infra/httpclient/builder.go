package httpclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/minio/minio-go/v7/pkg/s3utils"

	"github.com/aalvaropc/s3lens/internal/domain"
)

// ResolveURL turns a request target into an absolute URL.
//
// Absolute http(s) targets are used as given. Anything else is a /bucket/key path
// resolved against the configured endpoint, path-style or virtual-hosted style. Bucket
// and object names are validated and the key is percent-encoded the way the service
// expects. Query parameters are appended in sorted order.
func ResolveURL(tc domain.TransportConfig, spec domain.RequestSpec) (string, error) {
	target := strings.TrimSpace(spec.Target)

	var u *url.URL
	if strings.HasPrefix(target, "http://") || strings.HasPrefix(target, "https://") {
		parsed, err := url.Parse(target)
		if err != nil {
			return "", err
		}
		u = parsed
	} else {
		endpoint, err := url.Parse(strings.TrimSpace(tc.Endpoint))
		if err != nil {
			return "", err
		}
		if endpoint.Scheme == "" || endpoint.Host == "" {
			return "", fmt.Errorf("endpoint %q must be an absolute URL", tc.Endpoint)
		}
		u, err = resolvePath(endpoint, target, tc.PathStyle)
		if err != nil {
			return "", err
		}
	}

	if len(spec.Query) > 0 {
		q := u.Query()
		for k, v := range spec.Query {
			q.Set(k, v)
		}
		u.RawQuery = s3utils.QueryEncode(q)
	}
	return u.String(), nil
}

func resolvePath(endpoint *url.URL, target string, pathStyle bool) (*url.URL, error) {
	u := *endpoint
	u.RawQuery = ""

	bucket, key, _ := strings.Cut(strings.TrimPrefix(target, "/"), "/")
	if bucket == "" {
		u.Path = "/"
		return &u, nil
	}
	if err := s3utils.CheckValidBucketName(bucket); err != nil {
		return nil, err
	}
	if key != "" {
		if err := s3utils.CheckValidObjectName(key); err != nil {
			return nil, err
		}
	}

	base := strings.TrimSuffix(endpoint.Path, "/")
	if pathStyle {
		u.Path = base + "/" + bucket + "/" + key
		u.RawPath = base + "/" + bucket + "/" + s3utils.EncodePath(key)
		return &u, nil
	}

	u.Host = bucket + "." + endpoint.Host
	u.Path = base + "/" + key
	u.RawPath = base + "/" + s3utils.EncodePath(key)
	return &u, nil
}

// BuildRequest builds an HTTP request from a domain RequestSpec.
func BuildRequest(ctx context.Context, tc domain.TransportConfig, spec domain.RequestSpec) (*http.Request, error) {
	if strings.TrimSpace(spec.Target) == "" {
		return nil, &domain.OpError{
			Op:   "httpclient.build",
			Kind: domain.KindInvalidRequest,
			Err:  domain.ErrInvalidRequest,
		}
	}

	target, err := ResolveURL(tc, spec)
	if err != nil {
		return nil, &domain.OpError{
			Op:   "httpclient.build",
			Kind: domain.KindInvalidRequest,
			Err:  err,
		}
	}

	method := spec.Method
	if method == "" {
		method = domain.MethodGet
	}

	var body io.Reader = http.NoBody
	if spec.Body != "" {
		body = strings.NewReader(spec.Body)
	}

	req, err := http.NewRequestWithContext(ctx, string(method), target, body)
	if err != nil {
		return nil, &domain.OpError{
			Op:   "httpclient.build",
			Kind: domain.KindInvalidRequest,
			Err:  err,
		}
	}

	for k, v := range spec.Headers {
		req.Header.Set(k, v)
	}
	return req, nil
}
