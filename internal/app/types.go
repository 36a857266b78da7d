package app

import "jhbuild-lxc/internal/types"

// PartRequest selects a part and carries command line overrides. Empty
// override fields fall back to the part file, then to host defaults.
type PartRequest struct {
	PartPath   string
	WorkDir    string
	InstallDir string

	Backend          string
	ContainerName    string
	Distribution     string
	Release          string
	Architecture     string
	DebMirror        string
	Exceptions       []string
	ReadinessHost    string
	ReadinessTimeout string
	DisableJHUpdate  bool
	// Sudo prefixes privileged host commands of the chroot backend.
	Sudo bool
}

type ValidateRequest struct {
	PartRequest
}

type ValidateResult struct {
	PartName      string
	ContainerName string
	Modules       []string
	Skipped       []string
	Exceptions    int
}

type PullRequest struct {
	PartRequest
}

type PullResult struct {
	Skipped       bool
	ContainerName string
	BuildPackages []string
	StagePackages []string
	OutputDir     string
}

type BuildRequest struct {
	PartRequest
}

type BuildResult struct {
	Skipped       bool
	ContainerName string
	Modules       []string
}

type CleanRequest struct {
	PartRequest
}

type CleanResult struct {
	ContainerName string
	Existed       bool
}

type ResolveRequest struct {
	PartRequest
	// ReportPath is a saved `jhbuild sysdeps --dump-all` output.
	ReportPath string
	OutputDir  string
}

type ResolveResult struct {
	BuildPackages []string
	StagePackages []string
	Report        types.ResolutionReport
	OutputDir     string
}

type FilesetRequest struct {
	PartRequest
}

type FilesetResult struct {
	Entries []string
}
