package gen

import (
	"github.com/dave/jennifer/jen"

	"holda/internal/analyze"
	"holda/internal/capability"
)

// fragment is one group of generated declarations. Fragments are emitted in
// the order of the fragments table.
type fragment struct {
	name  string
	gate  func(*unit) bool // nil means always emitted
	serde bool             // goes into the serialization file when split
	emit  func(*unit) []jen.Code
}

func (f fragment) enabled(u *unit) bool {
	return f.gate == nil || f.gate(u)
}

var fragments = []fragment{
	{name: "Construction", emit: emitConstruction},
	{name: "TextConstruction", gate: textMode, emit: emitTextConstruction},
	{name: "ReferenceConversion", emit: emitAsRef},
	{name: "OwnershipConversion", emit: emitOwnership},
	{name: "DereferenceRead", emit: emitGet},
	{name: "DereferenceWrite", emit: emitSet},
	{name: "TextualDisplay", gate: has(capability.Display), emit: emitString},
	{name: "DebugRendering", emit: emitGoString},
	{name: "ParseFromText", gate: textMode, emit: emitParse},
	{name: "Equality", gate: has(capability.Eq), emit: emitEqual},
	{name: "Ordering", gate: has(capability.Ord), emit: emitCompare},
	{name: "Hashing", gate: has(capability.Hash), emit: emitHash},
	{name: "Duplication", gate: has(capability.Clone), emit: emitClone},
	{name: "SerializationEncode", gate: has(capability.Serde), serde: true, emit: emitEncode},
	{name: "SerializationDecode", gate: has(capability.Serde), serde: true, emit: emitDecode},
}

func textMode(u *unit) bool {
	return u.desc.Mode.ParsesText()
}

func has(c capability.Capability) func(*unit) bool {
	return func(u *unit) bool {
		return u.caps.Has(c)
	}
}

// Fragments lists, in emission order, the fragments a wrapper gets with the
// given capabilities.
func (g *Generator) Fragments(desc *analyze.WrapperDescriptor, caps capability.Set) []string {
	if !g.serdeOn() {
		caps = caps.Without(capability.Serde)
	}

	u := newUnit(desc, caps, g.config)

	var out []string
	for _, frag := range fragments {
		if frag.enabled(u) {
			out = append(out, frag.name)
		}
	}

	return out
}
