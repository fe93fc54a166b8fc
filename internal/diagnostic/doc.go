// Package diagnostic provides structured errors, warnings and infos for the
// holda generator.
//
// Every diagnostic can point at a source position, so malformed declarations
// are reported at the declaration site:
//
//	store/name.go:12:6: [HOLDA001] UserName: struct has no fields
package diagnostic
