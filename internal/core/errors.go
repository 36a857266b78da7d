package core

import (
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"jhbuild-lxc/internal/types"
)

func notFoundError(token types.Token, pattern string) error {
	msg := "no package provides " + token.Raw
	if pattern != "" {
		msg += " (searched " + pattern + ")"
	}
	return errbuilder.New().
		WithCode(errbuilder.CodeNotFound).
		WithMsg(msg)
}

func unknownKindError(raw string) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg("unknown dependency kind: " + raw)
}

func allAlternativesFailedError(group types.AlternativeGroup) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeFailedPrecondition).
		WithMsg("no alternative could be resolved: " + strings.TrimSpace(group.Line))
}

// IsNotFound reports whether err is a per-alternative lookup miss.
func IsNotFound(err error) bool {
	return err != nil && errbuilder.CodeOf(err) == errbuilder.CodeNotFound
}
