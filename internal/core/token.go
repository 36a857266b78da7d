package core

import (
	"strings"

	"jhbuild-lxc/internal/types"
)

// ParseToken decodes a single "<kind>:<subject>" dependency. Leading "."
// and "/" characters are stripped from the subject. An unrecognised prefix
// is kept as the kind; the resolver rejects it only if it is reached.
func ParseToken(raw string) types.Token {
	raw = strings.TrimSpace(raw)
	prefix, subject, _ := strings.Cut(raw, ":")
	return types.Token{
		Raw:     raw,
		Kind:    types.DependencyKind(prefix),
		Subject: strings.TrimLeft(subject, "./"),
	}
}

// ParseGroup decodes one comma-separated report line.
func ParseGroup(line string) types.AlternativeGroup {
	group := types.AlternativeGroup{Line: line}
	for _, part := range strings.Split(line, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		group.Tokens = append(group.Tokens, ParseToken(part))
	}
	return group
}

// ParseReport decodes a sysdeps report. Blank lines are ignored.
func ParseReport(lines []string) []types.AlternativeGroup {
	var groups []types.AlternativeGroup
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		group := ParseGroup(line)
		if len(group.Tokens) == 0 {
			continue
		}
		groups = append(groups, group)
	}
	return groups
}
