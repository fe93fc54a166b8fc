// Package capability resolves which operations are generated for a wrapper.
//
// A wrapper is generated in one of two modes:
//   - ModeGeneric: every toggleable capability is on unless a suppression
//     option (NoDisplay, NoEq, NoOrd, NoHash, NoClone, NoSerde) removes it
//   - ModeString: every capability is on, options are ignored, and text
//     parsing plus string construction are added
//
// Suppression options are independent of each other: removing Eq leaves Ord
// and Hash untouched.
package capability
