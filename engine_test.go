package stencil

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jward/stencil/internal/metadata"
	"github.com/jward/stencil/internal/script"
)

// fixtureModule covers the global namespace, nested namespaces, an invisible
// type, and the common member shapes.
func fixtureModule() *Module {
	return &Module{
		Identity: Identity{
			Name:           "Acme.Widgets",
			Version:        Version{Major: 1, Minor: 2, Build: 0, Revision: 0},
			PublicKeyToken: []byte{0xb0, 0x3f, 0x5f, 0x7f, 0x11, 0xd5, 0x0a, 0x3a},
		},
		Types: []*TypeSymbol{
			{Namespace: "Acme.Widgets", Name: "Widget", Kind: "class", Visibility: "public",
				Members: []Member{
					{Kind: "ctor", Name: ".ctor", Modifiers: []string{"public"}},
					{Kind: "method", Name: "Frob", ReturnType: "System.String",
						Modifiers: []string{"public"},
						Params:    []Param{{Name: "count", Type: "System.Int32"}}},
					{Kind: "property", Name: "Name", ReturnType: "System.String",
						Modifiers: []string{"public"}, HasGetter: true},
				}},
			{Namespace: "Acme.Widgets", Name: "Color", Kind: "enum", Visibility: "public",
				BaseType: "System.Int32",
				Members: []Member{
					{Kind: "field", Name: "Red", ConstValue: "0"},
				}},
			{Namespace: "Acme", Name: "Util", Kind: "class", Visibility: "public"},
			{Namespace: "Acme", Name: "Hidden", Kind: "class", Visibility: "internal"},
			{Namespace: "", Name: "Anchor", Kind: "class", Visibility: "public"},
		},
	}
}

// writeFixture packs the fixture into a metadata container on disk and
// returns the directory holding it.
func writeFixture(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "Acme.Widgets"+metadata.FileExt)
	require.NoError(t, metadata.WriteContainer(path, fixtureModule()))
	return dir
}

func fixtureIdentity() Identity {
	return Identity{
		Name:           "Acme.Widgets",
		Version:        Version{Major: 1, Minor: 2, Build: 0, Revision: 0},
		PublicKeyToken: []byte{0xb0, 0x3f, 0x5f, 0x7f, 0x11, 0xd5, 0x0a, 0x3a},
	}
}

const fixtureSurface = `public class Anchor
{
}
namespace Acme
{
    public class Util
    {
    }
}
namespace Acme.Widgets
{
    public enum Color : System.Int32
    {
        Red = 0,
    }
    public class Widget
    {
        public Widget() { }
        public System.String Frob(System.Int32 count) { throw null; }
        public System.String Name { get { throw null; } }
    }
}
`

func TestEngine_EndToEnd(t *testing.T) {
	dir := writeFixture(t)

	e := New()
	e.AddSearchPath(dir)
	mods := e.Resolve([]Identity{fixtureIdentity()})
	require.Len(t, mods, 1)
	assert.Empty(t, e.Notices())

	var buf bytes.Buffer
	require.NoError(t, e.Emit(context.Background(), &buf, mods))
	assert.Equal(t, fixtureSurface, buf.String())
}

func TestEngine_EmitIsDeterministic(t *testing.T) {
	dir := writeFixture(t)

	e := New()
	e.AddSearchPath(dir)
	mods := e.Resolve([]Identity{fixtureIdentity()})
	require.Len(t, mods, 1)

	var first bytes.Buffer
	require.NoError(t, e.Emit(context.Background(), &first, mods))
	for i := 0; i < 3; i++ {
		var again bytes.Buffer
		require.NoError(t, e.Emit(context.Background(), &again, mods))
		assert.Equal(t, first.String(), again.String())
	}
}

func TestEngine_FilterExcludesTypes(t *testing.T) {
	dir := writeFixture(t)

	e := New(WithFilter(script.NewFilter(`symbol["kind"] == "enum"`)))
	e.AddSearchPath(dir)
	mods := e.Resolve([]Identity{fixtureIdentity()})
	require.Len(t, mods, 1)

	var buf bytes.Buffer
	require.NoError(t, e.Emit(context.Background(), &buf, mods))
	want := `namespace Acme.Widgets
{
    public enum Color : System.Int32
    {
        Red = 0,
    }
}
`
	assert.Equal(t, want, buf.String())
}

func TestEngine_FilterErrorAbortsEmit(t *testing.T) {
	dir := writeFixture(t)

	e := New(WithFilter(script.NewFilter(`no_such_function()`)))
	e.AddSearchPath(dir)
	mods := e.Resolve([]Identity{fixtureIdentity()})
	require.Len(t, mods, 1)

	var buf bytes.Buffer
	require.Error(t, e.Emit(context.Background(), &buf, mods))
}

func TestEngine_VerifyAcceptsCanonicalOutput(t *testing.T) {
	dir := writeFixture(t)

	e := New(WithVerify(true))
	e.AddSearchPath(dir)
	mods := e.Resolve([]Identity{fixtureIdentity()})
	require.Len(t, mods, 1)

	var buf bytes.Buffer
	require.NoError(t, e.Emit(context.Background(), &buf, mods))
	assert.Equal(t, fixtureSurface, buf.String())
}

func TestEngine_VerifyBlocksMalformedOutput(t *testing.T) {
	// A type name no grammar accepts; verification must fail and nothing
	// may reach the sink.
	dir := t.TempDir()
	mod := &Module{
		Identity: Identity{Name: "Bad", Version: Version{Major: 1, Minor: 0, Build: 0, Revision: 0}},
		Types: []*TypeSymbol{
			{Name: "1Bad", Kind: "class", Visibility: "public"},
		},
	}
	require.NoError(t, metadata.WriteContainer(filepath.Join(dir, "Bad"+metadata.FileExt), mod))

	e := New(WithVerify(true))
	e.AddSearchPath(dir)
	mods := e.Resolve([]Identity{{Name: "Bad", Version: Version{Major: 1, Minor: 0, Build: 0, Revision: 0}}})
	require.Len(t, mods, 1)

	var buf bytes.Buffer
	require.Error(t, e.Emit(context.Background(), &buf, mods))
	assert.Zero(t, buf.Len())
}

func TestEngine_UnresolvedIdentityIsDropped(t *testing.T) {
	dir := writeFixture(t)

	e := New()
	e.AddSearchPath(dir)
	mods := e.Resolve([]Identity{
		{Name: "Missing"},
		fixtureIdentity(),
	})
	require.Len(t, mods, 1)
	assert.Equal(t, "Acme.Widgets", mods[0].Identity.Name)
}

func TestEngine_MismatchNoticesAccumulate(t *testing.T) {
	dir := writeFixture(t)

	e := New()
	e.AddSearchPath(dir)
	mods := e.Resolve([]Identity{{Name: "Acme.Widgets", Version: Version{Major: 9, Minor: 0, Build: 0, Revision: 0}}})
	require.Len(t, mods, 1, "mismatches never fail resolution")

	notices := e.Notices()
	require.NotEmpty(t, notices)
	assert.Equal(t, "Acme.Widgets", notices[0].Name)
}

func TestEngine_DiagnosticsSurfaceBrokenContainers(t *testing.T) {
	dir := writeFixture(t)
	require.NoError(t, writeGarbage(filepath.Join(dir, "Corrupt"+metadata.FileExt)))

	e := New()
	e.AddSearchPath(dir)

	bad, diags := e.HasDiagnostics()
	assert.True(t, bad)
	require.NotEmpty(t, diags)
	assert.Contains(t, diags[0].Path, "Corrupt")
}

func writeGarbage(path string) error {
	return os.WriteFile(path, []byte("not a container"), 0o644)
}

func TestParseIdentityWrapper(t *testing.T) {
	id, err := ParseIdentity("Acme.Widgets@1.2")
	require.NoError(t, err)
	assert.Equal(t, "Acme.Widgets", id.Name)
	assert.Equal(t, "1.2.0.0", id.Version.String())
}
