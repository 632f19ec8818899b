package ports

import "github.com/aalvaropc/s3lens/internal/domain"

// ProbeLoader loads probe sets from a source (e.g., filesystem).
type ProbeLoader interface {
	LoadProbes(path string) (domain.ProbeSet, error)
}
