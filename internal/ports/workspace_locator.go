package ports

// WorkspaceLocator finds an s3lens workspace root starting from an arbitrary directory.
type WorkspaceLocator interface {
	FindRoot(startDir string) (string, error)
}
