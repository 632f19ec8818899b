package httprunner

import (
	"context"

	"github.com/google/uuid"

	"github.com/aalvaropc/s3lens/internal/domain"
	"github.com/aalvaropc/s3lens/internal/infra/httpclient"
	"github.com/aalvaropc/s3lens/internal/ports"
)

// Runner performs requests against an S3-style endpoint and hands back raw exchanges.
type Runner struct {
	exec      *httpclient.Executor
	transport domain.TransportConfig
	newID     func() string
}

type Option func(*Runner)

// WithIDGenerator overrides how request IDs are generated.
func WithIDGenerator(f func() string) Option {
	return func(r *Runner) { r.newID = f }
}

func New(exec *httpclient.Executor, tc domain.TransportConfig, opts ...Option) *Runner {
	r := &Runner{
		exec:      exec,
		transport: tc,
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// NewFromConfig wires a client and executor from the workspace transport settings.
func NewFromConfig(tc domain.TransportConfig, opts ...Option) *Runner {
	exec := httpclient.NewExecutor(
		httpclient.WithClient(httpclient.New(httpclient.ConfigFor(tc))),
		httpclient.WithTimeout(tc.Timeout),
		httpclient.WithMaxBodyBytes(tc.MaxBodyBytes),
	)
	return New(exec, tc, opts...)
}

var _ ports.ExchangeRunner = (*Runner)(nil)

func (r *Runner) Run(ctx context.Context, spec domain.RequestSpec) (domain.Exchange, error) {
	httpReq, err := httpclient.BuildRequest(ctx, r.transport, spec)
	if err != nil {
		return domain.Exchange{}, err
	}

	ex := domain.Exchange{
		Request: domain.RequestInfo{
			ID:     r.newID(),
			Method: httpReq.Method,
			URL:    httpReq.URL.String(),
			Header: domain.Header(httpReq.Header.Clone()),
		},
	}

	data, err := r.exec.Do(ctx, httpReq)
	ex.Duration = data.Duration
	if data.Status != 0 {
		ex.Response = &domain.Response{
			StatusCode: data.Status,
			Header:     domain.Header(data.Headers),
		}
	}
	if err != nil {
		ex.Err = domain.NewTransportError(err)
		return ex, nil
	}

	ex.Body = data.BodyBytes
	ex.Truncated = data.Truncated
	return ex, nil
}
