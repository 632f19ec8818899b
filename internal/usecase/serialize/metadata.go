package serialize

import (
	"github.com/aalvaropc/s3lens/internal/domain"
)

// HeaderObject is implemented by *T for types built from response headers alone.
type HeaderObject[T any] interface {
	*T
	FromHeaders(resp *domain.Response) bool
}

const metaDataReason = "No meta data was found"

// MetaData builds a T from the response headers. The body is never inspected.
//
// Precedence: the transport error, then no_response for a missing response, then the
// constructed value, or data_serialization_failed when T declines the headers.
func MetaData[T any, P HeaderObject[T]](req domain.RequestInfo, resp *domain.Response, _ []byte, transportErr error) (*T, error) {
	if transportErr != nil {
		return nil, transportErr
	}
	if resp == nil {
		return nil, domain.ErrNoResponse.WithRequest(req.String())
	}

	v := new(T)
	if P(v).FromHeaders(resp) {
		return v, nil
	}
	return nil, domain.NewDataSerializationFailed(metaDataReason, nil).WithRequest(req.String())
}
