// Package resolve maps requested module identities onto containers found on
// an ordered search path, binding each into the shared symbol universe at
// most once.
package resolve

import (
	"fmt"

	"github.com/jward/stencil/internal/metadata"
)

// NoticeKind classifies a non-fatal resolution mismatch.
type NoticeKind int

const (
	NoticeVersionMismatch NoticeKind = iota
	NoticeKeyMismatch
)

func (k NoticeKind) String() string {
	switch k {
	case NoticeVersionMismatch:
		return "version mismatch"
	case NoticeKeyMismatch:
		return "public key token mismatch"
	}
	return "unknown"
}

// Notice is a non-fatal mismatch between a requested identity and the module
// actually found for it. Notices never abort resolution.
type Notice struct {
	Kind      NoticeKind
	Name      string
	Found     string
	Requested string
}

func (n Notice) String() string {
	return fmt.Sprintf("%s: %s (found %s, requested %s)", n.Name, n.Kind, n.Found, n.Requested)
}

// Match returns the bound module matching the requested identity's name,
// classifying version and key skew as notices. Only the name is binding:
// a name match always succeeds even when both version and key differ.
// Returns (nil, nil) when no module with that name is bound.
func Match(u *metadata.Universe, id metadata.Identity) (*metadata.Module, []Notice) {
	found := u.ModuleByName(id.Name)
	if found == nil {
		return nil, nil
	}
	var notices []Notice
	if found.Identity.Version.Compare(id.Version) != 0 {
		notices = append(notices, Notice{
			Kind:      NoticeVersionMismatch,
			Name:      id.Name,
			Found:     found.Identity.Version.String(),
			Requested: id.Version.String(),
		})
	}
	if found.Identity.KeyHex() != id.KeyHex() {
		notices = append(notices, Notice{
			Kind:      NoticeKeyMismatch,
			Name:      id.Name,
			Found:     found.Identity.KeyHex(),
			Requested: id.KeyHex(),
		})
	}
	return found, notices
}
