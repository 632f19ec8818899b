package objects

import (
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/aalvaropc/s3lens/internal/domain"
)

const userMetaPrefix = "x-amz-meta-"

// ObjectMetadata is the header view of an object, as returned by HEAD or GET.
type ObjectMetadata struct {
	ETag          string
	ContentLength int64
	ContentType   string
	LastModified  time.Time
	StorageClass  string
	VersionID     string
	Expires       string
	// UserMetadata holds x-amz-meta-* headers keyed by the lower-cased suffix.
	UserMetadata map[string]string
}

// FromHeaders requires a 2xx response carrying at least one of ETag, Last-Modified or
// Content-Length, each well formed when present.
func (m *ObjectMetadata) FromHeaders(resp *domain.Response) bool {
	if resp == nil || resp.StatusCode < 200 || resp.StatusCode > 299 {
		return false
	}
	h := resp.Header

	found := false
	if v := h.Get("ETag"); v != "" {
		m.ETag = trimETag(v)
		found = true
	}
	if v := h.Get("Content-Length"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n < 0 {
			return false
		}
		m.ContentLength = n
		found = true
	}
	if v := h.Get("Last-Modified"); v != "" {
		t, err := http.ParseTime(v)
		if err != nil {
			return false
		}
		m.LastModified = t.UTC()
		found = true
	}
	if !found {
		return false
	}

	m.ContentType = h.Get("Content-Type")
	m.StorageClass = h.Get("X-Amz-Storage-Class")
	m.VersionID = h.Get("X-Amz-Version-Id")
	m.Expires = h.Get("Expires")

	for k, v := range h {
		lk := strings.ToLower(k)
		if !strings.HasPrefix(lk, userMetaPrefix) || len(v) == 0 {
			continue
		}
		if m.UserMetadata == nil {
			m.UserMetadata = map[string]string{}
		}
		m.UserMetadata[strings.TrimPrefix(lk, userMetaPrefix)] = v[0]
	}
	return true
}

// UserMetadataKeys returns the user metadata keys in sorted order.
func (m *ObjectMetadata) UserMetadataKeys() []string {
	keys := make([]string, 0, len(m.UserMetadata))
	for k := range m.UserMetadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
