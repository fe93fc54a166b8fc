// Package driver runs holda over a set of packages: it loads them, resolves
// each wrapper's capabilities against the project configuration, and
// generates, checks or watches the output.
package driver
