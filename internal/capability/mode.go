package capability

// Mode selects the generation contract for a wrapper.
type Mode int

const (
	ModeGeneric Mode = iota // generic
	ModeString              // string
)

// ParsesText reports whether the mode adds text parsing and string construction.
func (m Mode) ParsesText() bool {
	return m == ModeString
}

// MarshalText renders the mode for YAML/JSON reports.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}
