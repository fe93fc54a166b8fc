// Package match suggests the closest known name for a misspelled one.
//
// It backs the "did you mean" hints attached to diagnostics for unknown
// directive kinds and unrecognized suppression options. Names are compared
// case-insensitively with separators removed, scored by edit distance.
package match
