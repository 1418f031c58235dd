// Package script runs user-supplied Risor filter scripts that decide which
// types belong in the emitted surface.
package script

import (
	"context"
	"fmt"
	"os"

	"github.com/risor-io/risor"

	"github.com/jward/stencil/internal/metadata"
)

// Filter evaluates a Risor expression once per visible type. The script sees
// a `symbol` global with name, namespace, kind, and visibility fields; a
// falsy result excludes the type from the surface.
type Filter struct {
	source string
	label  string
}

// NewFilter creates a filter from inline Risor source.
func NewFilter(source string) *Filter {
	return &Filter{source: source, label: "<inline>"}
}

// LoadFilter creates a filter from a Risor script file.
func LoadFilter(path string) (*Filter, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("script: load filter: %w", err)
	}
	return &Filter{source: string(src), label: path}, nil
}

// Include reports whether t passes the filter.
func (f *Filter) Include(ctx context.Context, t *metadata.TypeSymbol) (bool, error) {
	symbol := map[string]any{
		"name":       t.Name,
		"namespace":  t.Namespace,
		"kind":       t.Kind,
		"visibility": t.Visibility,
	}
	result, err := risor.Eval(ctx, f.source, risor.WithGlobal("symbol", symbol))
	if err != nil {
		return false, fmt.Errorf("script: filter %s: %w", f.label, err)
	}
	return result != nil && result.IsTruthy(), nil
}
