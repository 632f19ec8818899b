package serialize

import (
	"strings"

	"github.com/aalvaropc/s3lens/internal/domain"
	"github.com/aalvaropc/s3lens/internal/xmltree"
)

// ServiceError extracts the service error envelope from tree.
// It returns nil when there is no Error/Code element or its text is empty.
func ServiceError(tree *xmltree.Tree) *domain.ServiceError {
	if tree == nil {
		return nil
	}
	raw, ok := tree.Text("Error/Code")
	raw = strings.TrimSpace(raw)
	if !ok || raw == "" {
		return nil
	}

	msg, _ := tree.Text("Error/Message")
	se := domain.NewServiceError(raw, msg)
	se.Resource, _ = tree.Text("Error/Resource")
	se.RequestID, _ = tree.Text("Error/RequestId")
	se.HostID, _ = tree.Text("Error/HostId")
	return se
}

// serviceErrorFor extracts the envelope and stamps the response status on it.
func serviceErrorFor(resp *domain.Response, tree *xmltree.Tree) *domain.ServiceError {
	se := ServiceError(tree)
	if se != nil && resp != nil {
		se.StatusCode = resp.StatusCode
	}
	return se
}
