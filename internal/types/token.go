package types

import "strings"

// Token is a decoded sysdeps dependency, "<kind>:<subject>". Raw is the
// original text and is the token's identity.
type Token struct {
	Raw     string
	Kind    DependencyKind
	Subject string
}

func (t Token) String() string {
	return t.Raw
}

// AlternativeGroup is one sysdeps report line: tokens in preference order,
// any one of which satisfies the requirement.
type AlternativeGroup struct {
	Line   string
	Tokens []Token
}

func (g AlternativeGroup) String() string {
	parts := make([]string, 0, len(g.Tokens))
	for _, token := range g.Tokens {
		parts = append(parts, token.Raw)
	}
	return strings.Join(parts, ",")
}

// FileMatch is a single "package: path" hit from the file-contents index.
type FileMatch struct {
	Package string
	Path    string
}
