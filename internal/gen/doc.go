// Package gen expands wrapper descriptors into Go source.
//
// Code is built with jennifer and formatted with go/format. Each wrapper gets
// one file named after it in snake_case; serialization methods may be split
// into a second file guarded by a build tag.
//
// Generated declarations, in order:
//   - NewX constructor, and XFromString for string wrappers
//   - AsRef, XFrom, Into, Get and Set accessors
//   - String (Display) and GoString (always)
//   - ParseX and UnmarshalText for string wrappers
//   - Equal (Eq), Compare and Less (Ord), Hash (Hash), Clone (Clone)
//   - JSON, YAML and msgpack encoders and decoders (Serde)
//
// Every method delegates to the wrapped value. Whether that value actually
// supports an operation is left to the Go compiler.
package gen
