package ports

// PluginLocator finds the installed plugin root starting from an arbitrary directory.
type PluginLocator interface {
	FindRoot(startDir string) (string, error)
}
