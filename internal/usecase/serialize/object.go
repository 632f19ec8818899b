package serialize

import (
	"errors"

	"github.com/aalvaropc/s3lens/internal/domain"
	"github.com/aalvaropc/s3lens/internal/xmltree"
)

// ResponseObject is implemented by *T for types built from a decoded body.
// FromResponse fills the receiver and reports whether the tree had the expected shape.
type ResponseObject[T any] interface {
	*T
	FromResponse(resp *domain.Response, tree *xmltree.Tree) bool
}

const objectReason = "XML could not be serialized into response object"

// Object decodes data into a T.
//
// Precedence: a body that does not decode yields the transport error if there is one,
// otherwise the decode failure; then a service error envelope; then the transport error;
// then the constructed value, or data_serialization_failed when T declines the tree.
func Object[T any, P ResponseObject[T]](req domain.RequestInfo, resp *domain.Response, data []byte, transportErr error) (*T, error) {
	tree, err := xmltree.Decode(data)
	if err != nil {
		if transportErr != nil {
			return nil, transportErr
		}
		return nil, annotate(err, req)
	}

	if se := serviceErrorFor(resp, tree); se != nil {
		return nil, se
	}
	if transportErr != nil {
		return nil, transportErr
	}

	v := new(T)
	if P(v).FromResponse(resp, tree) {
		return v, nil
	}

	return nil, domain.NewDataSerializationFailed(objectReason+"\n"+tree.String(), nil).WithRequest(req.String())
}

func annotate(err error, req domain.RequestInfo) error {
	var se *domain.SerializationError
	if errors.As(err, &se) && se.Request == "" {
		return se.WithRequest(req.String())
	}
	return err
}
