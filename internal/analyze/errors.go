package analyze

import (
	"errors"
	"go/token"
	"strings"
)

// ErrStructural indicates a declaration that cannot be turned into a wrapper.
var ErrStructural = errors.New("holda: invalid wrapper declaration")

// StructuralError reports why a marked declaration is not a usable wrapper.
type StructuralError struct {
	Type   string         // Declared type name
	Pos    token.Position // Position of the type name
	Reason string
}

// Error implements the error interface.
func (e *StructuralError) Error() string {
	var b strings.Builder
	if e.Pos.IsValid() {
		b.WriteString(e.Pos.String())
		b.WriteString(": ")
	}

	b.WriteString("holda: ")
	if e.Type != "" {
		b.WriteString(e.Type)
		b.WriteString(": ")
	}

	b.WriteString(e.Reason)

	return b.String()
}

// Is reports whether target is ErrStructural.
func (e *StructuralError) Is(target error) bool {
	return target == ErrStructural
}
