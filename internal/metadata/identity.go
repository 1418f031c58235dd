package metadata

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
)

// Version is a four-part module version (Major.Minor.Build.Revision).
type Version struct {
	Major    int
	Minor    int
	Build    int
	Revision int
}

// ParseVersion parses dotted version strings with one to four parts.
// Missing parts default to zero, so "1.2" parses as 1.2.0.0.
func ParseVersion(s string) (Version, error) {
	if strings.TrimSpace(s) == "" {
		return Version{}, fmt.Errorf("parse version: empty string")
	}
	parts := strings.Split(s, ".")
	if len(parts) > 4 {
		return Version{}, fmt.Errorf("parse version %q: more than four parts", s)
	}
	nums := [4]int{}
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n < 0 {
			return Version{}, fmt.Errorf("parse version %q: bad part %q", s, p)
		}
		nums[i] = n
	}
	return Version{nums[0], nums[1], nums[2], nums[3]}, nil
}

// String renders the version in full four-part form.
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d.%d", v.Major, v.Minor, v.Build, v.Revision)
}

// Compare returns -1, 0, or 1 ordering v against o part by part.
func (v Version) Compare(o Version) int {
	a := [4]int{v.Major, v.Minor, v.Build, v.Revision}
	b := [4]int{o.Major, o.Minor, o.Build, o.Revision}
	for i := range a {
		if a[i] < b[i] {
			return -1
		}
		if a[i] > b[i] {
			return 1
		}
	}
	return 0
}

// Identity names a requested module: name, version, and optional strong-name
// public key token. Version and key are compared during resolution but a
// mismatch never fails the match; only the name is binding.
type Identity struct {
	Name           string
	Version        Version
	PublicKeyToken []byte
}

// KeyHex renders the public key token as lowercase hex, two digits per byte,
// no separators. Returns "" when the identity carries no key.
func (id Identity) KeyHex() string {
	if len(id.PublicKeyToken) == 0 {
		return ""
	}
	return hex.EncodeToString(id.PublicKeyToken)
}

// String renders the identity in display form, e.g.
// "Acme.Widgets, Version=1.2.0.0, PublicKeyToken=b03f5f7f11d50a3a".
func (id Identity) String() string {
	var b strings.Builder
	b.WriteString(id.Name)
	b.WriteString(", Version=")
	b.WriteString(id.Version.String())
	if key := id.KeyHex(); key != "" {
		b.WriteString(", PublicKeyToken=")
		b.WriteString(key)
	}
	return b.String()
}

// ParseIdentity parses "Name" or "Name@Version" specs as accepted on the
// command line.
func ParseIdentity(spec string) (Identity, error) {
	name, ver, found := strings.Cut(spec, "@")
	name = strings.TrimSpace(name)
	if name == "" {
		return Identity{}, fmt.Errorf("parse identity %q: empty name", spec)
	}
	id := Identity{Name: name}
	if found {
		v, err := ParseVersion(ver)
		if err != nil {
			return Identity{}, fmt.Errorf("parse identity %q: %w", spec, err)
		}
		id.Version = v
	}
	return id, nil
}
