package usecase

import (
	"context"
	"fmt"

	"github.com/aalvaropc/s3lens/internal/app/template"
	"github.com/aalvaropc/s3lens/internal/domain"
	"github.com/aalvaropc/s3lens/internal/ports"
)

type ValidateProbes struct {
	probes ports.ProbeLoader
}

func NewValidateProbes(pl ports.ProbeLoader) *ValidateProbes {
	return &ValidateProbes{probes: pl}
}

// Execute validates a probe file without performing HTTP calls. Every {{placeholder}}
// must name a variable from env or one extracted by an earlier probe.
func (uc *ValidateProbes) Execute(ctx context.Context, path string, env domain.Environment) (domain.ProbeSet, error) {
	set, err := uc.probes.LoadProbes(path)
	if err != nil {
		return domain.ProbeSet{}, err
	}

	vars := domain.Vars{}
	for k, v := range env.Vars {
		vars[k] = v
	}
	for _, p := range set.Probes {
		if err := ctx.Err(); err != nil {
			return set, err
		}

		if _, err := template.RenderRequest(p.Request, vars); err != nil {
			return set, fmt.Errorf("probe %q: %w", p.Request.Name, err)
		}

		// Extract keys become available to later probes.
		for k := range p.Extract {
			vars[k] = "x"
		}
	}
	return set, nil
}
