package objects

import (
	"github.com/aalvaropc/s3lens/internal/domain"
	"github.com/aalvaropc/s3lens/internal/xmltree"
)

// DeletedObject is one <Deleted> entry.
type DeletedObject struct {
	Key          string
	VersionID    string
	DeleteMarker bool
}

// DeleteFailure is one per-key <Error> entry. These are reported inside a successful
// response and are not service errors.
type DeleteFailure struct {
	Key     string
	Code    string
	Message string
}

// DeleteResult is a DeleteObjects (multi-object delete) result.
type DeleteResult struct {
	Deleted []DeletedObject
	Errors  []DeleteFailure
}

// FromResponse requires a DeleteResult root.
func (r *DeleteResult) FromResponse(_ *domain.Response, tree *xmltree.Tree) bool {
	if tree.Name() != "DeleteResult" {
		return false
	}
	root := tree.Root()

	for _, d := range root.All("Deleted") {
		marker, ok := parseBool(d, "DeleteMarker")
		if !ok {
			return false
		}
		r.Deleted = append(r.Deleted, DeletedObject{
			Key:          field(d, "Key"),
			VersionID:    field(d, "VersionId"),
			DeleteMarker: marker,
		})
	}
	for _, e := range root.All("Error") {
		r.Errors = append(r.Errors, DeleteFailure{
			Key:     field(e, "Key"),
			Code:    field(e, "Code"),
			Message: field(e, "Message"),
		})
	}
	return true
}

// Failed reports whether any key could not be deleted.
func (r *DeleteResult) Failed() bool {
	return len(r.Errors) > 0
}
