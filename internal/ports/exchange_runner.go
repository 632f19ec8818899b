package ports

import (
	"context"

	"github.com/aalvaropc/s3lens/internal/domain"
)

// ExchangeRunner performs one request. A transport failure is reported in
// Exchange.Err; the returned error is for requests that could not be built.
type ExchangeRunner interface {
	Run(ctx context.Context, req domain.RequestSpec) (domain.Exchange, error)
}
