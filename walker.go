package stencil

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/jward/stencil/internal/decl"
	"github.com/jward/stencil/internal/metadata"
	"github.com/jward/stencil/internal/rewrite"
	"github.com/jward/stencil/internal/verify"
)

// Emit walks each module's namespaces, synthesizes and canonicalizes every
// externally visible type, and serializes the declaration groups to w.
// Namespaces and type names are sorted lexicographically so output is
// byte-stable; global-namespace types come first, without a header. When
// verification is enabled the whole output is buffered and parsed before
// anything reaches the sink.
func (e *Engine) Emit(ctx context.Context, w io.Writer, modules []*Module) error {
	sink := w
	var buf *bytes.Buffer
	if e.verify {
		buf = &bytes.Buffer{}
		sink = buf
	}

	rw := rewrite.New()
	for _, mod := range modules {
		if err := e.emitModule(ctx, sink, rw, mod); err != nil {
			return err
		}
	}

	if buf != nil {
		if err := verify.Source(ctx, buf.Bytes()); err != nil {
			return err
		}
		if _, err := w.Write(buf.Bytes()); err != nil {
			return fmt.Errorf("emit: %w", err)
		}
	}
	return nil
}

func (e *Engine) emitModule(ctx context.Context, w io.Writer, rw *rewrite.Rewriter, mod *Module) error {
	groups, names, err := e.groupTypes(ctx, mod)
	if err != nil {
		return err
	}
	for _, ns := range names {
		if err := e.emitNamespace(w, rw, ns, groups[ns]); err != nil {
			return err
		}
	}
	return nil
}

// groupTypes buckets a module's visible, filter-approved types by namespace
// and returns the sorted namespace names, "" (the global namespace) first.
func (e *Engine) groupTypes(ctx context.Context, mod *Module) (map[string][]*TypeSymbol, []string, error) {
	groups := make(map[string][]*TypeSymbol)
	for _, t := range mod.Types {
		if !metadata.Visible(t.Visibility) {
			continue
		}
		if e.filter != nil {
			include, err := e.filter.Include(ctx, t)
			if err != nil {
				return nil, nil, err
			}
			if !include {
				continue
			}
		}
		groups[t.Namespace] = append(groups[t.Namespace], t)
	}

	names := make([]string, 0, len(groups))
	for ns := range groups {
		names = append(names, ns)
	}
	sort.Strings(names) // "" sorts first, parents before nested namespaces
	for _, ns := range names {
		sort.Slice(groups[ns], func(i, j int) bool {
			a, b := groups[ns][i], groups[ns][j]
			if a.Name != b.Name {
				return a.Name < b.Name
			}
			return len(a.TypeParams) < len(b.TypeParams)
		})
	}
	return groups, names, nil
}

func (e *Engine) emitNamespace(w io.Writer, rw *rewrite.Rewriter, ns string, types []*TypeSymbol) error {
	indent := 0
	if ns != "" {
		if _, err := fmt.Fprintf(w, "namespace %s\n{\n", ns); err != nil {
			return fmt.Errorf("emit: %w", err)
		}
		indent = 1
	}
	for _, t := range types {
		tree := rw.Rewrite(decl.Synthesize(t))
		if _, err := io.WriteString(w, decl.Render(tree, indent)); err != nil {
			return fmt.Errorf("emit: %w", err)
		}
	}
	if ns != "" {
		if _, err := io.WriteString(w, "}\n"); err != nil {
			return fmt.Errorf("emit: %w", err)
		}
	}
	return nil
}
