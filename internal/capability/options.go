package capability

// Options holds the suppression flags declared for one wrapper.
// The zero value suppresses nothing.
type Options struct {
	NoDisplay bool `yaml:"no_display"`
	NoEq      bool `yaml:"no_eq"`
	NoOrd     bool `yaml:"no_ord"`
	NoHash    bool `yaml:"no_hash"`
	NoClone   bool `yaml:"no_clone"`
	NoSerde   bool `yaml:"no_serde"`
}

// OptionNames lists every recognized suppression option.
var OptionNames = []string{"NoDisplay", "NoEq", "NoOrd", "NoHash", "NoClone", "NoSerde"}

// ParseOptions builds Options from option names as written in a directive or
// config file. Names are case-sensitive. Unrecognized names are returned in
// ignored and otherwise have no effect.
func ParseOptions(names []string) (opts Options, ignored []string) {
	for _, name := range names {
		switch name {
		case "NoDisplay":
			opts.NoDisplay = true
		case "NoEq":
			opts.NoEq = true
		case "NoOrd":
			opts.NoOrd = true
		case "NoHash":
			opts.NoHash = true
		case "NoClone":
			opts.NoClone = true
		case "NoSerde":
			opts.NoSerde = true
		default:
			ignored = append(ignored, name)
		}
	}

	return opts, ignored
}

// Merge returns the union of both option sets.
func (o Options) Merge(other Options) Options {
	return Options{
		NoDisplay: o.NoDisplay || other.NoDisplay,
		NoEq:      o.NoEq || other.NoEq,
		NoOrd:     o.NoOrd || other.NoOrd,
		NoHash:    o.NoHash || other.NoHash,
		NoClone:   o.NoClone || other.NoClone,
		NoSerde:   o.NoSerde || other.NoSerde,
	}
}

// Suppressed returns the capabilities the options remove.
func (o Options) Suppressed() Set {
	var s Set
	if o.NoDisplay {
		s |= Set(Display)
	}
	if o.NoEq {
		s |= Set(Eq)
	}
	if o.NoOrd {
		s |= Set(Ord)
	}
	if o.NoHash {
		s |= Set(Hash)
	}
	if o.NoClone {
		s |= Set(Clone)
	}
	if o.NoSerde {
		s |= Set(Serde)
	}

	return s
}

// Resolve returns the enabled capability set for a wrapper. In ModeString the
// options are ignored and every capability is enabled.
func Resolve(mode Mode, opts Options) Set {
	if mode == ModeString {
		return All
	}

	set := All
	for _, c := range opts.Suppressed().List() {
		set = set.Without(c)
	}

	return set
}
