package analyze

import (
	"go/ast"
	"go/token"
	"strings"

	"holda/internal/capability"
)

// DirectivePrefix starts every holda directive comment.
const DirectivePrefix = "//holda:"

// Directive kinds.
const (
	DirectiveWrapper = "wrapper"
	DirectiveString  = "string"
)

var knownKinds = []string{DirectiveWrapper, DirectiveString}

// Directive is a parsed //holda: comment.
type Directive struct {
	Kind string
	Mode capability.Mode
	// Args are the option names following the kind, split on spaces and commas.
	Args []string
	Pos  token.Pos
}

// ParseDirective parses a single raw comment line. ok is false when the line
// is not a holda directive at all. Unknown kinds are returned with ok set so
// callers can report them.
func ParseDirective(text string) (dir Directive, ok bool) {
	rest, found := strings.CutPrefix(text, DirectivePrefix)
	if !found {
		return Directive{}, false
	}

	fields := strings.FieldsFunc(rest, func(r rune) bool {
		return r == ' ' || r == '\t' || r == ','
	})
	if len(fields) == 0 {
		return Directive{}, true
	}

	dir.Kind = fields[0]
	dir.Args = fields[1:]

	if dir.Kind == DirectiveString {
		dir.Mode = capability.ModeString
	}

	return dir, true
}

// Known reports whether the directive kind is one holda understands.
func (d Directive) Known() bool {
	return d.Kind == DirectiveWrapper || d.Kind == DirectiveString
}

// findDirectives collects every holda directive in the given comment groups,
// in source order. Nil groups are skipped.
func findDirectives(groups ...*ast.CommentGroup) []Directive {
	var out []Directive
	for _, g := range groups {
		if g == nil {
			continue
		}

		for _, c := range g.List {
			dir, ok := ParseDirective(c.Text)
			if !ok {
				continue
			}

			dir.Pos = c.Slash
			out = append(out, dir)
		}
	}

	return out
}
