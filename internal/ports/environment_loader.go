package ports

import "github.com/aalvaropc/s3lens/internal/domain"

// EnvironmentLoader loads variables that seed probe placeholders.
type EnvironmentLoader interface {
	LoadEnvironment(nameOrPath string) (domain.Environment, error)
}
