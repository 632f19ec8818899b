package serialize

import (
	"github.com/aalvaropc/s3lens/internal/domain"
	"github.com/aalvaropc/s3lens/internal/xmltree"
)

// Data passes the body through unchanged.
//
// A nil body is no_data. The body is decoded speculatively only to detect a service
// error envelope; decode failures are expected for binary payloads and ignored. A service
// error wins over the transport error, which wins over the bytes.
func Data(req domain.RequestInfo, resp *domain.Response, data []byte, transportErr error) ([]byte, error) {
	if data == nil {
		return nil, domain.ErrNoData.WithRequest(req.String())
	}

	if tree, err := xmltree.Decode(data); err == nil {
		if se := serviceErrorFor(resp, tree); se != nil {
			return nil, se
		}
	}
	if transportErr != nil {
		return nil, transportErr
	}
	return data, nil
}
