// Package stencil extracts the externally visible surface of compiled
// metadata modules and re-emits it as minimal, deterministic declaration
// source: types, members, and signatures with every implementation body
// replaced by a stand-in. The output is byte-stable across runs, making it
// suitable for change tracking, documentation, and binding generation.
package stencil
