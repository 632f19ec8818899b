package ports

import "github.com/aalvaropc/s3lens/internal/domain"

// ArtifactStore persists probe run reports.
type ArtifactStore interface {
	SaveRun(run domain.RunArtifact) (id string, err error)
}

// CaptureStore persists single exchanges so they can be replayed offline.
type CaptureStore interface {
	SaveCapture(c domain.Capture) (path string, err error)
	LoadCapture(path string) (domain.Capture, error)
}
