package ports

// WorkspacePort manages the host side of a part: its working directories
// and the install tree.
type WorkspacePort interface {
	EnsureDirs(dirs ...string) error
	// Fileset lists the top-level entries of the install tree.
	Fileset(root string) ([]string, error)
}
