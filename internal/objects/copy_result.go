package objects

import (
	"time"

	"github.com/aalvaropc/s3lens/internal/domain"
	"github.com/aalvaropc/s3lens/internal/xmltree"
)

// CopyResult is a CopyObjectResult.
//
// The service can answer a copy with status 200 and an <Error> body; the serializer
// reports that as a service error before this type is consulted.
type CopyResult struct {
	ETag         string
	LastModified time.Time
}

// FromResponse requires a CopyObjectResult root with an ETag.
func (c *CopyResult) FromResponse(_ *domain.Response, tree *xmltree.Tree) bool {
	if tree.Name() != "CopyObjectResult" {
		return false
	}
	root := tree.Root()

	c.ETag = trimETag(field(root, "ETag"))
	if c.ETag == "" {
		return false
	}
	var ok bool
	c.LastModified, ok = parseTime(root, "LastModified")
	return ok
}
