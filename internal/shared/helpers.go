// Package shared provides common utility functions used across multiple
// packages in the jhbuild-lxc codebase.
package shared

import (
	"fmt"
	"strings"

	"mvdan.cc/sh/v3/syntax"
)

// CommandError wraps a command execution error with its trimmed output
// for cleaner error messages.
func CommandError(output []byte, err error) error {
	trimmed := strings.TrimSpace(string(output))
	if trimmed == "" {
		return err
	}
	return fmt.Errorf("%s: %w", trimmed, err)
}

// ShellQuote quotes a single word for a POSIX shell.
func ShellQuote(word string) (string, error) {
	return syntax.Quote(word, syntax.LangPOSIX)
}

// ShellJoin quotes every word and joins them into one command line.
func ShellJoin(words []string) (string, error) {
	quoted := make([]string, 0, len(words))
	for _, word := range words {
		q, err := ShellQuote(word)
		if err != nil {
			return "", fmt.Errorf("quote %q: %w", word, err)
		}
		quoted = append(quoted, q)
	}
	return strings.Join(quoted, " "), nil
}

// UniqueStrings drops empty and repeated values, keeping first occurrences
// in order.
func UniqueStrings(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	var out []string
	for _, value := range values {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		out = append(out, value)
	}
	return out
}

// NonEmptyLines splits output into trimmed, non-empty lines.
func NonEmptyLines(output string) []string {
	var out []string
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		out = append(out, line)
	}
	return out
}
