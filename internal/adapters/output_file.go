package adapters

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"jhbuild-lxc/internal/ports"
	"jhbuild-lxc/internal/types"
)

const (
	BuildPackagesFile    = "build-packages.txt"
	StagePackagesFile    = "stage-packages.txt"
	ResolutionReportFile = "resolution.report"
)

// OutputFileAdapter writes the results of a pull into the part work dir.
type OutputFileAdapter struct {
	Dir string
}

func NewOutputFileAdapter(dir string) OutputFileAdapter {
	return OutputFileAdapter{Dir: dir}
}

func (a OutputFileAdapter) WritePackageSet(set *types.PackageSet) error {
	if set == nil {
		set = types.NewPackageSet()
	}
	if err := a.writeLines(BuildPackagesFile, set.BuildList()); err != nil {
		return err
	}
	return a.writeLines(StagePackagesFile, set.StageList())
}

// WriteResolutionReport writes one line per record:
// dependency,source,build,stage1 stage2
func (a OutputFileAdapter) WriteResolutionReport(report types.ResolutionReport) error {
	ordered := append([]types.ResolutionRecord(nil), report.Records...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Dependency < ordered[j].Dependency
	})
	lines := make([]string, 0, len(ordered))
	for _, record := range ordered {
		lines = append(lines, fmt.Sprintf(
			"%s,%s,%s,%s",
			record.Dependency,
			record.Source,
			record.Build,
			strings.Join(record.Stage, " "),
		))
	}
	return a.writeLines(ResolutionReportFile, lines)
}

func (a OutputFileAdapter) writeLines(filename string, lines []string) error {
	path, err := a.ensurePath(filename)
	if err != nil {
		return err
	}
	content := strings.Join(lines, "\n")
	if content != "" {
		content += "\n"
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write " + filename).
			WithCause(err)
	}
	return nil
}

func (a OutputFileAdapter) ensurePath(filename string) (string, error) {
	if a.Dir == "" {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("output directory is empty")
	}
	if err := os.MkdirAll(a.Dir, 0755); err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create output directory").
			WithCause(err)
	}
	return filepath.Join(a.Dir, filename), nil
}

var _ ports.OutputPort = OutputFileAdapter{}
