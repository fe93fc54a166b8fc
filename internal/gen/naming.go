package gen

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-openapi/inflect"

	"holda/internal/common"
)

// fileWords splits wrapper names into words for file naming. Acronyms are
// kept whole so UserID becomes user_id rather than user_i_d.
var fileWords = func() *inflect.Ruleset {
	rs := inflect.NewDefaultRuleset()
	for _, acronym := range []string{"UUID", "HTTP", "JSON", "YAML", "HTML", "URL", "API", "SQL", "ID"} {
		rs.AddAcronym(acronym)
	}

	return rs
}()

// FileBase returns the snake_case base name for a wrapper's generated files.
func FileBase(wrapper string) string {
	return strings.ToLower(fileWords.Underscore(wrapper))
}

// FileName returns the generated file name for a wrapper.
func FileName(wrapper, suffix string) string {
	return FileBase(wrapper) + suffix
}

// SerdeFileName returns the name of the separate serialization file used
// when a build tag guards serde methods.
func SerdeFileName(wrapper, suffix string) string {
	return FileBase(wrapper) + strings.TrimSuffix(suffix, ".go") + "_serde.go"
}

// names holds the identifiers used in one wrapper's generated code.
type names struct {
	wrapper  string
	recv     string
	field    string
	exported bool
}

func newNames(wrapper, field string) names {
	return names{
		wrapper:  wrapper,
		recv:     receiverName(wrapper),
		field:    field,
		exported: common.IsExported(wrapper),
	}
}

// receiverName is the lower-cased first letter of the wrapper name, or "w"
// when the name does not start with a letter.
func receiverName(wrapper string) string {
	r, _ := utf8.DecodeRuneInString(wrapper)
	if r == utf8.RuneError || !unicode.IsLetter(r) {
		return "w"
	}

	return string(unicode.ToLower(r))
}

// fn renders a package-level function name with the wrapper's visibility.
// fn("New", "") on UserName yields NewUserName; on userName, newUserName.
func (n names) fn(prefix, suffix string) string {
	name := prefix + common.UpperFirst(n.wrapper) + suffix
	if n.exported {
		return common.UpperFirst(name)
	}

	return common.LowerFirst(name)
}

func (n names) constructor() string { return n.fn("New", "") }
func (n names) fromString() string  { return n.fn("", "FromString") }
func (n names) from() string        { return n.fn("", "From") }
func (n names) of() string          { return n.fn("", "Of") }
func (n names) parse() string       { return n.fn("Parse", "") }
