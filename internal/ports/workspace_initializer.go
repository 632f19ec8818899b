package ports

// WorkspaceInitializer scaffolds a new workspace (config, example probes, .gitignore).
type WorkspaceInitializer interface {
	Init(root string, force bool) error
}
