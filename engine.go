package stencil

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/jward/stencil/internal/metadata"
	"github.com/jward/stencil/internal/resolve"
	"github.com/jward/stencil/internal/script"
)

// Engine orchestrates the stencil pipeline: search-path registration,
// module resolution into a shared symbol universe, surface walking, and
// canonical declaration emission. The pipeline is single-threaded; the
// universe only ever grows and has a single writer.
type Engine struct {
	reader   metadata.Reader
	universe *metadata.Universe
	resolver *resolve.Resolver
	filter   *script.Filter
	verify   bool
	logger   *log.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithReader sets the container reader. The default reads SQLite metadata
// containers.
func WithReader(r metadata.Reader) Option {
	return func(e *Engine) {
		e.reader = r
	}
}

// WithFilter sets a Risor filter script consulted once per visible type.
func WithFilter(f *script.Filter) Option {
	return func(e *Engine) {
		e.filter = f
	}
}

// WithVerify makes Emit parse its own output and fail on syntax errors
// instead of writing malformed text. Output is buffered until verification
// passes, so nothing partial reaches the sink.
func WithVerify(verify bool) Option {
	return func(e *Engine) {
		e.verify = verify
	}
}

// WithLogger sets the logger used for mismatch notices and unresolved
// identities. The default discards.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		e.logger = l
	}
}

// New creates an Engine with an empty symbol universe.
func New(opts ...Option) *Engine {
	e := &Engine{
		reader: metadata.NewContainerReader(),
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.universe = metadata.NewUniverse(e.reader)
	e.resolver = resolve.New(e.universe)
	return e
}

// Universe returns the engine's symbol universe.
func (e *Engine) Universe() *Universe {
	return e.universe
}

// AddSearchPath registers a comma- or semicolon-delimited search path.
// Entries are environment-expanded; directory entries become probe
// directories with their containers bound eagerly, file entries bind that
// one file. Registration order is probe order.
func (e *Engine) AddSearchPath(path string) {
	e.resolver.RegisterSearchPath(path)
}

// Resolve maps the requested identities onto bound modules, in request
// order with unresolved entries omitted. Version and key mismatches are
// logged as warnings and never fail resolution; unresolved identities are
// logged and dropped. Whether an incomplete result is fatal is the
// caller's policy.
func (e *Engine) Resolve(identities []Identity) []*Module {
	var resolved []*Module
	for _, id := range identities {
		mod, notices := e.resolver.ResolveOne(id)
		for _, n := range notices {
			e.logger.Warn("resolution mismatch",
				"module", n.Name, "kind", n.Kind.String(),
				"found", n.Found, "requested", n.Requested)
		}
		if mod == nil {
			e.logger.Warn("unresolved module", "name", id.Name)
			continue
		}
		resolved = append(resolved, mod)
	}
	return resolved
}

// Notices returns the mismatch notices accumulated across Resolve calls.
func (e *Engine) Notices() []Notice {
	return e.resolver.Notices()
}

// HasDiagnostics reports whether any container failed to load. Callers
// should treat diagnostics as fatal before emitting: downstream symbol
// resolution is unreliable once a bound module is malformed.
func (e *Engine) HasDiagnostics() (bool, []Diagnostic) {
	return e.universe.HasDiagnostics()
}
