package objects

import (
	"github.com/aalvaropc/s3lens/internal/domain"
	"github.com/aalvaropc/s3lens/internal/xmltree"
)

// defaultRegion is what an empty LocationConstraint means.
const defaultRegion = "us-east-1"

// BucketLocation is a GetBucketLocation result.
type BucketLocation struct {
	// Constraint is the raw element text, empty for the default region.
	Constraint string
	Region     string
}

// FromResponse requires a LocationConstraint root.
func (l *BucketLocation) FromResponse(_ *domain.Response, tree *xmltree.Tree) bool {
	if tree.Name() != "LocationConstraint" {
		return false
	}
	l.Constraint = field(tree.Root(), "")
	switch l.Constraint {
	case "":
		l.Region = defaultRegion
	case "EU":
		l.Region = "eu-west-1"
	default:
		l.Region = l.Constraint
	}
	return true
}
