package metadata

import (
	"fmt"
	"path/filepath"
)

// Reader turns a container file into a Module symbol graph.
type Reader interface {
	ReadModule(path string) (*Module, error)
}

// Diagnostic records a container that failed to load into the Universe.
type Diagnostic struct {
	Path    string
	Message string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s", d.Path, d.Message)
}

// Universe is the process-scoped, append-only set of bound modules. Modules
// are keyed by file name (not full path): the first file bound under a given
// name wins, and binding the same name again is a no-op returning the
// existing module. Bound modules are never replaced or removed.
type Universe struct {
	reader  Reader
	modules map[string]*Module // keyed by file name
	order   []string
	diags   []Diagnostic
}

// NewUniverse creates an empty Universe that loads containers via r.
func NewUniverse(r Reader) *Universe {
	return &Universe{
		reader:  r,
		modules: make(map[string]*Module),
	}
}

// BindIfAbsent binds the file at path into the universe, keyed by its file
// name. If a module with that file name is already bound the existing
// binding is returned unchanged, regardless of where the duplicate lives.
// Read failures accumulate as diagnostics and return nil.
func (u *Universe) BindIfAbsent(path string) *Module {
	key := filepath.Base(path)
	if m, ok := u.modules[key]; ok {
		return m
	}
	m, err := u.reader.ReadModule(path)
	if err != nil {
		u.diags = append(u.diags, Diagnostic{Path: path, Message: err.Error()})
		return nil
	}
	m.Path = path
	u.modules[key] = m
	u.order = append(u.order, key)
	return m
}

// ModuleByName returns the bound module whose identity name matches, or nil.
// Modules are scanned in binding order.
func (u *Universe) ModuleByName(name string) *Module {
	for _, key := range u.order {
		if m := u.modules[key]; m.Identity.Name == name {
			return m
		}
	}
	return nil
}

// Modules returns all bound modules in binding order.
func (u *Universe) Modules() []*Module {
	out := make([]*Module, 0, len(u.order))
	for _, key := range u.order {
		out = append(out, u.modules[key])
	}
	return out
}

// HasDiagnostics reports whether any container failed to load, with the
// accumulated diagnostics. A caller that finds diagnostics should abort
// before synthesizing declarations: symbol resolution is unreliable once
// any bound module is malformed.
func (u *Universe) HasDiagnostics() (bool, []Diagnostic) {
	return len(u.diags) > 0, u.diags
}
