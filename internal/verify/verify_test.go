package verify

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSource_AcceptsWellFormedDeclarations(t *testing.T) {
	src := `namespace Acme.Widgets
{
    public class Widget : System.IDisposable
    {
        public Widget() { }
        public System.String Frob(System.Int32 count) { throw null; }
        public System.String Name { get { throw null; } set { } }
        public void Dispose() { }
    }
    public enum Color : System.Int32
    {
        Red = 0,
        Green = 1,
    }
}
`
	assert.NoError(t, Source(context.Background(), []byte(src)))
}

func TestSource_AcceptsGlobalNamespaceTypes(t *testing.T) {
	src := "public class Bag<T> where T : class\n{\n}\n"
	assert.NoError(t, Source(context.Background(), []byte(src)))
}

func TestSource_ReportsSyntaxErrorWithPosition(t *testing.T) {
	src := "namespace A\n{\n    public class {\n}\n"
	err := Source(context.Background(), []byte(src))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "syntax error")
	assert.Contains(t, err.Error(), "line")
}

func TestSource_EmptyInputIsValid(t *testing.T) {
	assert.NoError(t, Source(context.Background(), nil))
}
