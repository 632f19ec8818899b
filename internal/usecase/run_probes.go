package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/aalvaropc/s3lens/internal/app/template"
	"github.com/aalvaropc/s3lens/internal/domain"
	"github.com/aalvaropc/s3lens/internal/ports"
	ucassert "github.com/aalvaropc/s3lens/internal/usecase/assert"
	ucextract "github.com/aalvaropc/s3lens/internal/usecase/extract"
)

type RunProbes struct {
	probes   ports.ProbeLoader
	runner   ports.ExchangeRunner
	store    ports.ArtifactStore
	recorder ports.OutcomeRecorder
	log      *slog.Logger
	now      func() time.Time
	env      domain.Environment
}

type RunOption func(*RunProbes)

// WithRecorder observes every interpreted exchange.
func WithRecorder(r ports.OutcomeRecorder) RunOption {
	return func(uc *RunProbes) { uc.recorder = r }
}

func WithLogger(l *slog.Logger) RunOption {
	return func(uc *RunProbes) {
		if l != nil {
			uc.log = l
		}
	}
}

// WithEnvironment seeds placeholders with env.Vars. Extracted values override them.
func WithEnvironment(env domain.Environment) RunOption {
	return func(uc *RunProbes) { uc.env = env }
}

// WithClock is useful for tests.
func WithClock(now func() time.Time) RunOption {
	return func(uc *RunProbes) { uc.now = now }
}

// NewRunProbes wires the use case. store may be nil, in which case runs are not saved.
func NewRunProbes(pl ports.ProbeLoader, rr ports.ExchangeRunner, store ports.ArtifactStore, opts ...RunOption) *RunProbes {
	uc := &RunProbes{
		probes: pl,
		runner: rr,
		store:  store,
		log:    slog.New(slog.DiscardHandler),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Execute runs every probe of the file at path in order. Values extracted by a probe are
// available to the following ones as {{name}} placeholders.
//
// The returned id is the saved run id, empty when no store is configured. A cancelled
// context stops the run before the next probe and returns the partial artifact.
func (uc *RunProbes) Execute(ctx context.Context, path string) (domain.RunArtifact, string, error) {
	set, err := uc.probes.LoadProbes(path)
	if err != nil {
		return domain.RunArtifact{}, "", err
	}

	run := domain.RunArtifact{
		ProbeSetName:    set.Name,
		ProbeSetPath:    path,
		EnvironmentName: uc.env.Name,
		StartedAt:       uc.now(),
		Results:         make([]domain.ProbeResult, 0, len(set.Probes)),
	}

	// environment vars < extracted runtime vars (updated per probe)
	vars := domain.Vars{}
	for k, v := range uc.env.Vars {
		vars[k] = v
	}
	for _, p := range set.Probes {
		if err := ctx.Err(); err != nil {
			run.EndedAt = uc.now()
			return run, "", err
		}

		res := uc.runProbe(ctx, p, vars)
		for k, v := range res.Extracted {
			vars[k] = v
		}
		run.Results = append(run.Results, res)
	}
	run.EndedAt = uc.now()

	if uc.store == nil {
		return run, "", nil
	}
	id, err := uc.store.SaveRun(run)
	if err != nil {
		return run, "", err
	}
	run.ID = id
	return run, id, nil
}

func (uc *RunProbes) runProbe(ctx context.Context, p domain.Probe, vars domain.Vars) domain.ProbeResult {
	res := domain.ProbeResult{
		Name:      p.Request.Name,
		Kind:      p.Request.Kind,
		Method:    p.Request.Method,
		URL:       p.Request.Target,
		Extracted: domain.Vars{},
		Response:  domain.ResponseSnapshot{Headers: map[string][]string{}},
	}

	spec, err := template.RenderRequest(p.Request, vars)
	if err != nil {
		return requestFailed(res, err)
	}
	if spec.Method == "" {
		spec.Method = spec.Kind.DefaultMethod()
	}
	res.Method = spec.Method

	ex, err := uc.runner.Run(ctx, spec)
	if err != nil {
		return requestFailed(res, err)
	}
	if ex.Request.URL != "" {
		res.URL = ex.Request.URL
	}

	interp, err := Interpret(spec.Kind, ex)
	if err != nil {
		return requestFailed(res, err)
	}
	o := interp.Outcome

	if uc.recorder != nil {
		uc.recorder.Record(o, ex.Duration)
	}

	res.StatusCode = o.Status
	res.LatencyMS = ex.Duration.Milliseconds()
	res.Outcome = o.Class
	res.Summary = o.Summary
	if o.ServiceError != nil {
		res.Code = o.ServiceError.ErrorCode()
	}
	if o.Err != nil {
		res.Message = o.Err.Error()
	}

	uc.log.Info("exchange.done",
		"probe", res.Name,
		"kind", string(spec.Kind),
		"request_id", ex.Request.ID,
		"status", res.StatusCode,
		"outcome", string(res.Outcome),
		"code", res.Code,
		"latency_ms", res.LatencyMS,
	)

	res.Assertions = ucassert.Evaluate(p.Expect, ucassert.Observation{
		Status:    res.StatusCode,
		LatencyMS: res.LatencyMS,
		Class:     res.Outcome,
		Code:      res.Code,
		Tree:      interp.Tree,
	})
	if len(p.Extract) > 0 {
		res.Extracted, res.Extracts = ucextract.Apply(interp.Tree, p.Extract)
	}

	if ex.Response != nil {
		res.Response.Headers = map[string][]string(ex.Response.Header.Clone())
	}
	res.Response.Body = ex.Body
	res.Response.Truncated = ex.Truncated
	return res
}

func requestFailed(res domain.ProbeResult, err error) domain.ProbeResult {
	res.Message = err.Error()
	res.Assertions = []domain.AssertionResult{{
		Name:    "request",
		Passed:  false,
		Message: err.Error(),
	}}
	return res
}
