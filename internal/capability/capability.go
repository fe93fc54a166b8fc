package capability

import (
	"strings"

	"holda/internal/common"
)

//go:generate go tool stringer -type=Mode -linecomment -output=mode_string.go

// Capability is a single toggleable group of generated operations.
type Capability uint8

const (
	Display Capability = 1 << iota // String() via the inner value
	Eq                             // Equal
	Ord                            // Compare, Less
	Hash                           // Hash(maphash.Seed)
	Clone                          // Clone
	Serde                          // Marshal*/Unmarshal* per configured format

	// All is every toggleable capability combined.
	All  Set = (1 << iota) - 1
	None Set = 0
)

// ordered lists capabilities in emission order.
var ordered = []Capability{Display, Eq, Ord, Hash, Clone, Serde}

// String returns the capability name.
func (c Capability) String() string {
	switch c {
	case Display:
		return "Display"
	case Eq:
		return "Eq"
	case Ord:
		return "Ord"
	case Hash:
		return "Hash"
	case Clone:
		return "Clone"
	case Serde:
		return "Serde"
	default:
		return common.UnknownStr
	}
}

// Set is a bit set of capabilities.
type Set uint8

// Of builds a set from individual capabilities.
func Of(caps ...Capability) Set {
	var s Set
	for _, c := range caps {
		s |= Set(c)
	}

	return s
}

// Has reports whether c is enabled.
func (s Set) Has(c Capability) bool {
	return s&Set(c) != 0
}

// Without returns s with c removed. Nothing else is touched.
func (s Set) Without(c Capability) Set {
	return s &^ Set(c)
}

// List returns the enabled capabilities in emission order.
func (s Set) List() []Capability {
	var out []Capability
	for _, c := range ordered {
		if s.Has(c) {
			out = append(out, c)
		}
	}

	return out
}

// String returns the enabled capability names joined by "|", or "none".
func (s Set) String() string {
	list := s.List()
	if len(list) == 0 {
		return "none"
	}

	names := make([]string, len(list))
	for i, c := range list {
		names[i] = c.String()
	}

	return strings.Join(names, "|")
}

// MarshalText renders the set for YAML/JSON reports.
func (s Set) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}
