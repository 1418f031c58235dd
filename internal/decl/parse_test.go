package decl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQualify(t *testing.T) {
	assert.Equal(t, "global::System.String", Qualify("System.String"))
	assert.Equal(t, "int", Qualify("int"), "bare identifiers stay unqualified")
	assert.Equal(t, "T", Qualify("T"))
	assert.Equal(t, "global::A.B", Qualify("global::A.B"), "already qualified")
	assert.Equal(t, "", Qualify(""))
}

func TestParseTypeRef_Bare(t *testing.T) {
	n := ParseTypeRef("int")
	require.IsType(t, &IdentifierName{}, n)
	assert.Equal(t, "int", RenderTypeName(n))
}

func TestParseTypeRef_Dotted(t *testing.T) {
	n := ParseTypeRef("global::System.Collections.Generic.List<global::System.String>")
	q, ok := n.(*QualifiedName)
	require.True(t, ok)
	require.Len(t, q.Segments, 4)
	assert.Equal(t, "global::System.Collections.Generic.List<global::System.String>", RenderTypeName(n))
}

func TestParseTypeRef_GlobalPrefixedSingleSegment(t *testing.T) {
	// A prefixed single-segment name still parses as a qualified name so
	// the rewriter's unprefixing rule reaches it.
	n := ParseTypeRef("global::C")
	require.IsType(t, &QualifiedName{}, n)
	assert.Equal(t, "global::C", RenderTypeName(n))
}

func TestParseTypeRef_GenericArgsDoNotSplitSegments(t *testing.T) {
	n := ParseTypeRef("A.B<C.D, E>")
	q, ok := n.(*QualifiedName)
	require.True(t, ok)
	require.Len(t, q.Segments, 2)

	g, ok := q.Segments[1].(*GenericName)
	require.True(t, ok)
	require.Len(t, g.Args.Args, 2)
	assert.Equal(t, "C.D", RenderTypeName(g.Args.Args[0]))
	assert.Equal(t, "E", RenderTypeName(g.Args.Args[1]))
}

func TestParseTypeRef_NestedGenerics(t *testing.T) {
	n := ParseTypeRef("Dict<string, List<int>>")
	assert.Equal(t, "Dict<string, List<int>>", RenderTypeName(n))
}

func TestParseTypeRef_ArraySuffix(t *testing.T) {
	n := ParseTypeRef("global::System.Byte[]")
	assert.Equal(t, "global::System.Byte[]", RenderTypeName(n))
}
