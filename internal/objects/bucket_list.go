package objects

import (
	"time"

	"github.com/aalvaropc/s3lens/internal/domain"
	"github.com/aalvaropc/s3lens/internal/xmltree"
)

// Owner identifies the owner of a bucket or object.
type Owner struct {
	ID          string
	DisplayName string
}

// ObjectInfo is one <Contents> entry of a listing.
type ObjectInfo struct {
	Key          string
	LastModified time.Time
	ETag         string
	Size         int64
	StorageClass string
	Owner        *Owner
}

// BucketList is a ListBucketResult, either version 1 (marker based) or version 2
// (continuation token based).
type BucketList struct {
	Name      string
	Prefix    string
	Delimiter string
	MaxKeys   int64
	// EncodingType is set when keys in the listing are URL encoded.
	EncodingType string
	IsTruncated  bool

	// Version 1.
	Marker     string
	NextMarker string

	// Version 2.
	V2                    bool
	KeyCount              int64
	StartAfter            string
	ContinuationToken     string
	NextContinuationToken string

	Contents       []ObjectInfo
	CommonPrefixes []string
}

// FromResponse requires a ListBucketResult root with a non-empty <Name>.
func (l *BucketList) FromResponse(_ *domain.Response, tree *xmltree.Tree) bool {
	if tree.Name() != "ListBucketResult" {
		return false
	}
	root := tree.Root()

	l.Name = field(root, "Name")
	if l.Name == "" {
		return false
	}
	l.Prefix = field(root, "Prefix")
	l.Delimiter = field(root, "Delimiter")
	l.EncodingType = field(root, "EncodingType")
	l.Marker = field(root, "Marker")
	l.NextMarker = field(root, "NextMarker")
	l.StartAfter = field(root, "StartAfter")
	l.ContinuationToken = field(root, "ContinuationToken")
	l.NextContinuationToken = field(root, "NextContinuationToken")
	l.V2 = root.Has("KeyCount") || root.Has("ContinuationToken") || root.Has("StartAfter")

	var ok bool
	if l.MaxKeys, ok = parseInt(root, "MaxKeys"); !ok {
		return false
	}
	if l.KeyCount, ok = parseInt(root, "KeyCount"); !ok {
		return false
	}
	if l.IsTruncated, ok = parseBool(root, "IsTruncated"); !ok {
		return false
	}

	for _, c := range root.All("Contents") {
		info, ok := objectInfo(c)
		if !ok {
			return false
		}
		l.Contents = append(l.Contents, info)
	}
	for _, p := range root.All("CommonPrefixes") {
		l.CommonPrefixes = append(l.CommonPrefixes, field(p, "Prefix"))
	}
	return true
}

func objectInfo(n xmltree.Node) (ObjectInfo, bool) {
	info := ObjectInfo{
		Key:          field(n, "Key"),
		ETag:         trimETag(field(n, "ETag")),
		StorageClass: field(n, "StorageClass"),
	}
	if info.Key == "" {
		return ObjectInfo{}, false
	}

	var ok bool
	if info.Size, ok = parseInt(n, "Size"); !ok {
		return ObjectInfo{}, false
	}
	if info.LastModified, ok = parseTime(n, "LastModified"); !ok {
		return ObjectInfo{}, false
	}
	if n.Has("Owner") {
		info.Owner = &Owner{
			ID:          field(n, "Owner/ID"),
			DisplayName: field(n, "Owner/DisplayName"),
		}
	}
	return info, true
}

// TotalSize sums the sizes of the listed objects.
func (l *BucketList) TotalSize() int64 {
	var n int64
	for _, c := range l.Contents {
		n += c.Size
	}
	return n
}
