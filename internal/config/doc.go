// Package config loads the optional holda project file.
//
// The file is looked up as holda.yaml, holda.yml or holda.toml and controls
// output naming, serialization formats and per-type options:
//
//	version: "1"
//	output:
//	  suffix: _holda.go
//	serde:
//	  enabled: true
//	  build_tag: holda_serde
//	  formats: [json, yaml, msgpack]
//	types:
//	  MyF64Wrapper:
//	    options: [NoDisplay, NoEq]
//
// Options given under types are merged with the ones written in the
// //holda:wrapper directive.
package config
