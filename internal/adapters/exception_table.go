package adapters

import (
	_ "embed"
	"os"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"jhbuild-lxc/internal/ports"
	"jhbuild-lxc/internal/types"
)

//go:embed defaults/sysdeps.yaml
var defaultExceptions []byte

const defaultExceptionsSource = "embedded defaults"

// ExceptionTableAdapter loads the exception table from the embedded
// defaults plus any number of YAML layers. Later layers override earlier
// ones per key; a layer's base section replaces the previous one.
type ExceptionTableAdapter struct{}

func NewExceptionTableAdapter() ExceptionTableAdapter {
	return ExceptionTableAdapter{}
}

func (a ExceptionTableAdapter) LoadTable(paths []string) (types.ExceptionTable, error) {
	table := types.ExceptionTable{
		Sysdeps: make(map[string]types.SysdepException),
		Modules: make(map[string][]string),
	}
	if err := mergeExceptionLayer(&table, defaultExceptions, defaultExceptionsSource); err != nil {
		return types.ExceptionTable{}, err
	}
	for _, path := range paths {
		if strings.TrimSpace(path) == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return types.ExceptionTable{}, errbuilder.New().
				WithCode(errbuilder.CodeNotFound).
				WithMsg("failed to read exception table: " + path).
				WithCause(err)
		}
		if err := mergeExceptionLayer(&table, data, path); err != nil {
			return types.ExceptionTable{}, err
		}
	}
	return table, nil
}

func mergeExceptionLayer(table *types.ExceptionTable, data []byte, source string) error {
	var file types.ExceptionFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse exception table: " + source).
			WithCause(err)
	}
	if file.SchemaVersion == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("exception table missing schema_version: " + source)
	}

	for key, entry := range file.Sysdeps {
		key = strings.TrimSpace(key)
		if err := validateException(key, entry, source); err != nil {
			return err
		}
		if _, exists := table.Sysdeps[key]; exists {
			log.Debug().Str("key", key).Str("layer", source).Msg("exception overridden by later layer")
		}
		table.Sysdeps[key] = entry
	}
	for module, packages := range file.Modules {
		table.Modules[strings.TrimSpace(module)] = packages
	}
	if file.Base != nil {
		table.Base = *file.Base
	}

	log.Debug().
		Str("layer", source).
		Int("sysdeps", len(file.Sysdeps)).
		Int("modules", len(file.Modules)).
		Int("total", len(table.Sysdeps)).
		Msg("exception layer loaded")
	return nil
}

func validateException(key string, entry types.SysdepException, source string) error {
	prefix, subject, ok := strings.Cut(key, ":")
	if _, known := types.ParseDependencyKind(prefix); !ok || !known || subject == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("exception key '" + key + "' is not a known dependency kind in " + source)
	}
	if entry.Skip && (entry.Build != "" || entry.Stage != nil) {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("exception key '" + key + "' combines skip with packages in " + source)
	}
	if !entry.Skip && entry.Build == "" && entry.Stage == nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("exception key '" + key + "' has no build or stage package in " + source)
	}
	return nil
}

var _ ports.ExceptionTablePort = ExceptionTableAdapter{}
