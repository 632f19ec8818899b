package objects

import (
	"time"

	"github.com/aalvaropc/s3lens/internal/domain"
	"github.com/aalvaropc/s3lens/internal/xmltree"
)

// BucketInfo is one bucket of a ListAllMyBucketsResult.
type BucketInfo struct {
	Name         string
	CreationDate time.Time
}

// BucketSet is a ListAllMyBucketsResult.
type BucketSet struct {
	Owner   Owner
	Buckets []BucketInfo
}

// FromResponse requires a ListAllMyBucketsResult root. An account without buckets is
// a valid, empty set.
func (s *BucketSet) FromResponse(_ *domain.Response, tree *xmltree.Tree) bool {
	if tree.Name() != "ListAllMyBucketsResult" {
		return false
	}
	root := tree.Root()

	s.Owner = Owner{
		ID:          field(root, "Owner/ID"),
		DisplayName: field(root, "Owner/DisplayName"),
	}
	for _, b := range root.All("Buckets/Bucket") {
		name := field(b, "Name")
		if name == "" {
			return false
		}
		created, ok := parseTime(b, "CreationDate")
		if !ok {
			return false
		}
		s.Buckets = append(s.Buckets, BucketInfo{Name: name, CreationDate: created})
	}
	return true
}
