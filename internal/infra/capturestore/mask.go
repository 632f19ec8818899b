package capturestore

import (
	"strings"

	"github.com/aalvaropc/s3lens/internal/domain"
)

const maskValue = "********"

// maskArtifact returns a masked copy (does NOT mutate the input).
func maskArtifact(run domain.RunArtifact) domain.RunArtifact {
	out := run
	out.Results = make([]domain.ProbeResult, 0, len(run.Results))

	for _, rr := range run.Results {
		c := rr
		c.Extracted = maskVars(rr.Extracted)
		c.Response.Headers = maskHeaders(rr.Response.Headers)
		if rr.Response.Body != nil {
			c.Response.Body = append([]byte{}, rr.Response.Body...)
		}
		out.Results = append(out.Results, c)
	}
	return out
}

// maskCapture returns a copy with credentials removed from request and response headers.
func maskCapture(c domain.Capture) domain.Capture {
	out := c
	out.Request.Header = domain.Header(maskHeaders(c.Request.Header))
	out.Headers = maskHeaders(c.Headers)
	return out
}

func maskVars(in domain.Vars) domain.Vars {
	out := make(domain.Vars, len(in))
	for k, v := range in {
		if isSensitiveKey(k) {
			v = maskValue
		}
		out[k] = v
	}
	return out
}

func maskHeaders(in map[string][]string) map[string][]string {
	if in == nil {
		return nil
	}
	out := make(map[string][]string, len(in))
	for k, v := range in {
		cp := make([]string, len(v))
		copy(cp, v)
		if isSensitiveHeaderKey(k) {
			for i := range cp {
				cp[i] = maskValue
			}
		}
		out[k] = cp
	}
	return out
}

func isSensitiveKey(k string) bool {
	kk := strings.ToLower(k)
	return strings.Contains(kk, "token") ||
		strings.Contains(kk, "secret") ||
		strings.Contains(kk, "password")
}

func isSensitiveHeaderKey(k string) bool {
	kk := strings.ToLower(strings.TrimSpace(k))
	switch kk {
	case "authorization", "proxy-authorization", "cookie", "set-cookie",
		"x-amz-security-token", "x-amz-server-side-encryption-customer-key",
		"x-amz-copy-source-server-side-encryption-customer-key":
		return true
	}
	return isSensitiveKey(kk)
}
