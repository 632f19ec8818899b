package usecase

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gabriel-vasile/mimetype"

	"github.com/aalvaropc/s3lens/internal/domain"
	"github.com/aalvaropc/s3lens/internal/objects"
	"github.com/aalvaropc/s3lens/internal/usecase/serialize"
	"github.com/aalvaropc/s3lens/internal/xmltree"
)

// Interpretation is the outcome of one exchange plus the decoded XML tree, if the body
// was XML. The tree feeds extract rules and JSONPath assertions.
type Interpretation struct {
	Outcome domain.Outcome
	Tree    *xmltree.Tree
}

// KindInfo describes how an endpoint kind is interpreted.
type KindInfo struct {
	Kind       domain.EndpointKind
	Serializer string
	Result     string
}

type stage func(req domain.RequestInfo, resp *domain.Response, data []byte, transportErr error) (value any, summary string, err error)

type kindEntry struct {
	info KindInfo
	run  stage
}

var kindTable = map[domain.EndpointKind]kindEntry{
	domain.KindListObjects: {
		KindInfo{domain.KindListObjects, "object", "ListBucketResult"},
		objectStage(summarizeBucketList),
	},
	domain.KindListBuckets: {
		KindInfo{domain.KindListBuckets, "object", "ListAllMyBucketsResult"},
		objectStage(summarizeBucketSet),
	},
	domain.KindBucketLocation: {
		KindInfo{domain.KindBucketLocation, "object", "LocationConstraint"},
		objectStage(func(l *objects.BucketLocation) string { return "region " + l.Region }),
	},
	domain.KindDeleteObjects: {
		KindInfo{domain.KindDeleteObjects, "object", "DeleteResult"},
		objectStage(func(r *objects.DeleteResult) string {
			return fmt.Sprintf("deleted %d, failed %d", len(r.Deleted), len(r.Errors))
		}),
	},
	domain.KindCopyObject: {
		KindInfo{domain.KindCopyObject, "object", "CopyObjectResult"},
		objectStage(func(c *objects.CopyResult) string {
			return fmt.Sprintf("etag %s, modified %s", c.ETag, humanize.Time(c.LastModified))
		}),
	},
	domain.KindGetObject: {
		KindInfo{domain.KindGetObject, "data", "bytes"},
		dataStage,
	},
	domain.KindHeadObject: {
		KindInfo{domain.KindHeadObject, "metadata", "ObjectMetadata"},
		metaDataStage,
	},
}

// Kinds lists every endpoint kind with its serializer, in display order.
func Kinds() []KindInfo {
	out := make([]KindInfo, 0, len(kindTable))
	for _, k := range domain.EndpointKinds() {
		out = append(out, kindTable[k].info)
	}
	return out
}

// Interpret runs the serializer selected by kind over ex.
//
// Serializer failures are not returned as errors: they are the outcome. The error is
// reserved for kinds that have no serializer.
func Interpret(kind domain.EndpointKind, ex domain.Exchange) (Interpretation, error) {
	entry, ok := kindTable[kind]
	if !ok {
		return Interpretation{}, &domain.OpError{
			Op:   "interpret",
			Kind: domain.KindInvalidRequest,
			Err:  fmt.Errorf("unknown endpoint kind %q", kind),
		}
	}

	out := domain.Outcome{
		Kind:      kind,
		Request:   ex.Request,
		Truncated: ex.Truncated,
	}
	if ex.Response != nil {
		out.Status = ex.Response.StatusCode
	}

	value, summary, err := entry.run(ex.Request, ex.Response, ex.Body, ex.Err)
	out.Class = domain.Classify(err)
	if err != nil {
		out.Err = err
		out.Summary = failureSummary(err)
		if se, ok := asServiceError(err); ok {
			out.ServiceError = se
		}
	} else {
		out.Value = value
		out.Summary = summary
		if b, ok := value.([]byte); ok {
			out.ContentType = mimetype.Detect(b).String()
			out.Summary = humanize.Bytes(uint64(len(b))) + " " + out.ContentType
		}
	}

	if ex.Truncated {
		out.Summary += fmt.Sprintf(" (body truncated at %s)", humanize.Bytes(uint64(len(ex.Body))))
	}

	var tree *xmltree.Tree
	if len(ex.Body) > 0 {
		if t, derr := xmltree.Decode(ex.Body); derr == nil {
			tree = t
		}
	}
	return Interpretation{Outcome: out, Tree: tree}, nil
}

func objectStage[T any, P serialize.ResponseObject[T]](summarize func(P) string) stage {
	return func(req domain.RequestInfo, resp *domain.Response, data []byte, transportErr error) (any, string, error) {
		v, err := serialize.Object[T, P](req, resp, data, transportErr)
		if err != nil {
			return nil, "", err
		}
		return v, summarize(P(v)), nil
	}
}

func dataStage(req domain.RequestInfo, resp *domain.Response, data []byte, transportErr error) (any, string, error) {
	b, err := serialize.Data(req, resp, data, transportErr)
	if err != nil {
		return nil, "", err
	}
	return b, "", nil
}

func metaDataStage(req domain.RequestInfo, resp *domain.Response, data []byte, transportErr error) (any, string, error) {
	m, err := serialize.MetaData[objects.ObjectMetadata](req, resp, data, transportErr)
	if err != nil {
		return nil, "", err
	}
	parts := []string{humanize.Bytes(uint64(m.ContentLength))}
	if m.ContentType != "" {
		parts = append(parts, m.ContentType)
	}
	if m.ETag != "" {
		parts = append(parts, "etag "+m.ETag)
	}
	if n := len(m.UserMetadata); n > 0 {
		parts = append(parts, fmt.Sprintf("%d user metadata keys", n))
	}
	return m, strings.Join(parts, ", "), nil
}

func summarizeBucketList(l *objects.BucketList) string {
	s := fmt.Sprintf("bucket %s: %d objects (%s)", l.Name, len(l.Contents), humanize.Bytes(uint64(l.TotalSize())))
	if n := len(l.CommonPrefixes); n > 0 {
		s += fmt.Sprintf(", %d prefixes", n)
	}
	if l.IsTruncated {
		s += ", truncated"
	}
	return s
}

func summarizeBucketSet(s *objects.BucketSet) string {
	out := fmt.Sprintf("%d buckets", len(s.Buckets))
	if s.Owner.DisplayName != "" {
		out += " owned by " + s.Owner.DisplayName
	}
	return out
}

func failureSummary(err error) string {
	if se, ok := asServiceError(err); ok {
		if se.Message != "" {
			return se.ErrorCode() + ": " + se.Message
		}
		return se.ErrorCode()
	}
	// Decline reasons carry the rendered tree after the first line.
	msg := err.Error()
	if i := strings.IndexByte(msg, '\n'); i >= 0 {
		msg = msg[:i]
	}
	return msg
}

func asServiceError(err error) (*domain.ServiceError, bool) {
	var se *domain.ServiceError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}
