package resolve

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/jward/stencil/internal/metadata"
)

// Resolver probes an ordered list of directories for metadata containers and
// binds them into a Universe. Directory order is registration order and the
// first directory containing a requested file name always wins; callers rely
// on that precedence (local overrides before shared libraries).
type Resolver struct {
	universe *metadata.Universe
	dirs     []string
	notices  []Notice
}

// New creates a Resolver over the given universe.
func New(u *metadata.Universe) *Resolver {
	return &Resolver{universe: u}
}

// Universe returns the universe the resolver binds into.
func (r *Resolver) Universe() *metadata.Universe {
	return r.universe
}

// RegisterSearchPath registers a comma- or semicolon-delimited list of
// search-path entries, each subject to environment-variable expansion.
// A directory entry becomes a probe directory and every container directly
// inside it is bound eagerly (no recursion). A file entry binds that one
// file and registers its containing directory. Entries that are neither an
// existing directory nor an existing file are skipped silently.
func (r *Resolver) RegisterSearchPath(path string) {
	for _, entry := range splitSearchPath(path) {
		entry = os.ExpandEnv(entry)
		info, err := os.Stat(entry)
		if err != nil {
			continue
		}
		if info.IsDir() {
			r.addDir(entry)
			r.bindDirectory(entry)
			continue
		}
		r.addDir(filepath.Dir(entry))
		r.universe.BindIfAbsent(entry)
	}
}

// splitSearchPath splits on both supported delimiters and drops empty entries.
func splitSearchPath(path string) []string {
	var entries []string
	for _, part := range strings.FieldsFunc(path, func(c rune) bool {
		return c == ',' || c == ';'
	}) {
		if part = strings.TrimSpace(part); part != "" {
			entries = append(entries, part)
		}
	}
	return entries
}

func (r *Resolver) addDir(dir string) {
	for _, d := range r.dirs {
		if d == dir {
			return
		}
	}
	r.dirs = append(r.dirs, dir)
}

// bindDirectory eagerly binds every container file directly inside dir.
func (r *Resolver) bindDirectory(dir string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), metadata.FileExt) {
			continue
		}
		r.universe.BindIfAbsent(filepath.Join(dir, e.Name()))
	}
}

// Resolve maps each requested identity to a bound module. Directories are
// probed in registration order and the first one containing
// "<name>.dll" wins; the file is bound if absent and classified against the
// request, accumulating mismatch notices. Identities with no matching file
// anywhere are dropped from the result; whether an incomplete result is
// fatal is the caller's policy. Result order follows the request order with
// unresolved entries omitted.
func (r *Resolver) Resolve(identities []metadata.Identity) []*metadata.Module {
	var resolved []*metadata.Module
	for _, id := range identities {
		mod, _ := r.ResolveOne(id)
		if mod == nil {
			continue
		}
		resolved = append(resolved, mod)
	}
	return resolved
}

// ResolveOne resolves a single identity, returning the bound module (nil
// when unresolved) and any mismatch notices it produced. Notices are also
// accumulated on the resolver.
func (r *Resolver) ResolveOne(id metadata.Identity) (*metadata.Module, []Notice) {
	fileName := id.Name + metadata.FileExt
	for _, dir := range r.dirs {
		path := filepath.Join(dir, fileName)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if bound := r.universe.BindIfAbsent(path); bound == nil {
			// Read failure: recorded as a universe diagnostic.
			return nil, nil
		}
		break
	}
	mod, notices := Match(r.universe, id)
	r.notices = append(r.notices, notices...)
	return mod, notices
}

// Notices returns the mismatch notices accumulated across all Resolve calls.
func (r *Resolver) Notices() []Notice {
	return r.notices
}
