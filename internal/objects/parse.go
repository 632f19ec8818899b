package objects

import (
	"strconv"
	"strings"
	"time"

	"github.com/aalvaropc/s3lens/internal/xmltree"
)

// field reads optional child text, trimmed.
func field(n xmltree.Node, path string) string {
	s, _ := n.Text(path)
	return strings.TrimSpace(s)
}

func parseInt(n xmltree.Node, path string) (int64, bool) {
	s := field(n, path)
	if s == "" {
		return 0, true
	}
	v, err := strconv.ParseInt(s, 10, 64)
	return v, err == nil
}

func parseBool(n xmltree.Node, path string) (bool, bool) {
	s := field(n, path)
	if s == "" {
		return false, true
	}
	v, err := strconv.ParseBool(s)
	return v, err == nil
}

// parseTime reads an ISO 8601 timestamp as used in XML bodies.
func parseTime(n xmltree.Node, path string) (time.Time, bool) {
	s := field(n, path)
	if s == "" {
		return time.Time{}, true
	}
	v, err := time.Parse(time.RFC3339Nano, s)
	return v.UTC(), err == nil
}

// trimETag strips the surrounding quotes the service puts around entity tags.
func trimETag(s string) string {
	return strings.Trim(strings.TrimSpace(s), `"`)
}
