package ports

import (
	"time"

	"github.com/aalvaropc/s3lens/internal/domain"
)

// OutcomeRecorder observes interpreted exchanges (metrics, audit).
type OutcomeRecorder interface {
	Record(o domain.Outcome, d time.Duration)
}
