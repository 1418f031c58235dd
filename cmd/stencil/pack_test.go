package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jward/stencil/internal/metadata"
)

const widgetYAML = `name: Acme.Widgets
version: "1.2"
publicKeyToken: b03f5f7f11d50a3a
types:
  - namespace: Acme.Widgets
    name: Widget
    kind: class
    visibility: public
    interfaces: [System.IDisposable]
    members:
      - kind: ctor
        name: .ctor
        modifiers: [public]
      - kind: method
        name: Frob
        returns: System.String
        modifiers: [public]
        params:
          - name: count
            type: System.Int32
      - kind: property
        name: Name
        returns: System.String
        modifiers: [public]
        getter: true
        setter: true
    nested:
      - name: Part
        kind: class
        visibility: public
  - namespace: Acme.Widgets
    name: Color
    kind: enum
    visibility: public
    base: System.Int32
    members:
      - kind: field
        name: Red
        const: "0"
`

func TestDescToModule(t *testing.T) {
	desc := moduleDesc{
		Name:           "Acme.Widgets",
		Version:        "1.2",
		PublicKeyToken: "b03f5f7f11d50a3a",
		Types: []typeDesc{
			{Name: "Widget", Kind: "class", Visibility: "public"},
		},
	}
	mod, err := descToModule(desc)
	require.NoError(t, err)
	assert.Equal(t, "Acme.Widgets", mod.Identity.Name)
	assert.Equal(t, "1.2.0.0", mod.Identity.Version.String())
	assert.Equal(t, "b03f5f7f11d50a3a", mod.Identity.KeyHex())
	require.Len(t, mod.Types, 1)
}

func TestDescToModule_RequiresName(t *testing.T) {
	_, err := descToModule(moduleDesc{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name")
}

func TestDescToType_MapsMembersAndNesting(t *testing.T) {
	desc := typeDesc{
		Namespace: "Acme", Name: "Widget", Kind: "class", Visibility: "public",
		TypeParams: []typeParamDesc{{Name: "T", Constraints: []string{"class"}}},
		Members: []memberDesc{
			{Kind: "method", Name: "Frob", Returns: "System.String",
				Modifiers: []string{"public"},
				Params:    []paramDesc{{Name: "count", Type: "System.Int32"}}},
			{Kind: "property", Name: "Name", Returns: "System.String", Getter: true},
		},
		Nested: []typeDesc{{Name: "Part", Kind: "class", Visibility: "public"}},
	}
	sym := descToType(desc)
	require.Len(t, sym.TypeParams, 1)
	assert.Equal(t, []string{"class"}, sym.TypeParams[0].Constraints)
	require.Len(t, sym.Members, 2)
	require.Len(t, sym.Members[0].Params, 1)
	assert.Equal(t, "System.Int32", sym.Members[0].Params[0].Type)
	assert.True(t, sym.Members[1].HasGetter)
	require.Len(t, sym.Nested, 1)
	assert.Equal(t, "Part", sym.Nested[0].Name)
}

func TestRunPack_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "widgets.yaml")
	require.NoError(t, os.WriteFile(src, []byte(widgetYAML), 0o644))

	out := filepath.Join(dir, "Acme.Widgets"+metadata.FileExt)
	flagPackOutput = out
	t.Cleanup(func() { flagPackOutput = "" })

	require.NoError(t, runPack(packCmd, []string{src}))

	mod, err := metadata.NewContainerReader().ReadModule(out)
	require.NoError(t, err)
	assert.Equal(t, "Acme.Widgets", mod.Identity.Name)
	assert.Equal(t, "1.2.0.0", mod.Identity.Version.String())
	require.Len(t, mod.Types, 2)

	widget := mod.Types[0]
	assert.Equal(t, "Widget", widget.Name)
	assert.Equal(t, []string{"System.IDisposable"}, widget.Interfaces)
	require.Len(t, widget.Members, 3)
	require.Len(t, widget.Nested, 1)
	assert.Equal(t, "Part", widget.Nested[0].Name)
}

func TestRunPack_BadDescription(t *testing.T) {
	src := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(src, []byte("types: [not-a-map"), 0o644))

	err := runPack(packCmd, []string{src})
	require.Error(t, err)
}
