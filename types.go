package stencil

import (
	"github.com/jward/stencil/internal/metadata"
	"github.com/jward/stencil/internal/resolve"
)

// Public type aliases for internal types used in the Engine API. These are
// Go type aliases (=), identical to the internal types at compile time.
// External consumers use these names; no conversion is needed.

type Identity = metadata.Identity
type Version = metadata.Version
type Module = metadata.Module
type TypeSymbol = metadata.TypeSymbol
type TypeParam = metadata.TypeParam
type Member = metadata.Member
type Param = metadata.Param
type Universe = metadata.Universe
type Diagnostic = metadata.Diagnostic
type Reader = metadata.Reader
type Notice = resolve.Notice

// ParseIdentity parses "Name" or "Name@Version" identity specs.
func ParseIdentity(spec string) (Identity, error) {
	return metadata.ParseIdentity(spec)
}

// ParseVersion parses dotted version strings with one to four parts.
func ParseVersion(s string) (Version, error) {
	return metadata.ParseVersion(s)
}
