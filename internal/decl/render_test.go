package decl

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRender_TriviaDrivesSpacing(t *testing.T) {
	block := &Block{
		Open:   Token{Text: "{", Trail: " "},
		Marker: UnreachableMarker,
		Close:  Token{Text: "}", Trail: "\n"},
	}
	assert.Equal(t, "{ throw null; }\n", Render(block, 0))
}

func TestRender_IndentationAppliesAtLineStart(t *testing.T) {
	block := &Block{
		Open:  Token{Text: "{", Trail: "\n"},
		Close: Token{Text: "}", Trail: "\n"},
	}
	assert.Equal(t, "    {\n    }\n", Render(block, 1))
}

func TestRender_TypeDeclMembersIndentOneDeeper(t *testing.T) {
	d := &TypeDecl{
		Modifiers: []Token{{Text: "public", Trail: " "}},
		Keyword:   Token{Text: "class", Trail: " "},
		Name:      Token{Text: "A", Trail: "\n"},
		Open:      Token{Text: "{", Trail: "\n"},
		Close:     Token{Text: "}", Trail: "\n"},
		Members: []Node{&FieldDecl{
			Modifiers: []Token{{Text: "public", Trail: " "}},
			Type:      &IdentifierName{Tok: Token{Text: "int"}},
			Name:      Token{Text: "X"},
			Semi:      Token{Text: ";", Trail: "\n"},
		}},
	}
	assert.Equal(t, "public class A\n{\n    public int X;\n}\n", Render(d, 0))
}

func TestRender_ParamListSeparators(t *testing.T) {
	list := &ParamList{
		Open: Token{Text: "("},
		Params: []*ParamDecl{
			{Type: &IdentifierName{Tok: Token{Text: "int"}}, Name: Token{Text: "a"}},
			{Type: &IdentifierName{Tok: Token{Text: "string"}}, Name: Token{Text: "b"}},
		},
		Close: Token{Text: ")"},
	}
	assert.Equal(t, "(int a, string b)", Render(list, 0))
}

func TestRender_BaseListSeparatorsAndTrail(t *testing.T) {
	bases := &BaseList{
		Entries: []Node{
			&IdentifierName{Tok: Token{Text: "A"}},
			&IdentifierName{Tok: Token{Text: "B"}},
		},
		Trail: "\n",
	}
	assert.Equal(t, " : A, B\n", Render(bases, 0))
}

func TestRender_ConstraintClause(t *testing.T) {
	c := &ConstraintClause{
		Param: Token{Text: "T"},
		Constraints: []Node{
			&IdentifierName{Tok: Token{Text: "class"}},
			&IdentifierName{Tok: Token{Text: "new()"}},
		},
		Trail: "\n",
	}
	assert.Equal(t, " where T : class, new()\n", Render(c, 0))
}

func TestRender_EnumMember(t *testing.T) {
	m := &EnumMemberDecl{
		Name:  Token{Text: "Red"},
		Value: "1",
		Comma: Token{Text: ",", Trail: "\n"},
	}
	assert.Equal(t, "Red = 1,\n", Render(m, 0))
}

func TestRender_UnknownNodePanics(t *testing.T) {
	assert.Panics(t, func() {
		Render(bogusNode{}, 0)
	})
}

type bogusNode struct{}

func (bogusNode) Kind() Kind { return Kind(-1) }

func TestRender_DeterministicAcrossCalls(t *testing.T) {
	d := &TypeDecl{
		Keyword: Token{Text: "class", Trail: " "},
		Name:    Token{Text: "A", Trail: "\n"},
		Open:    Token{Text: "{", Trail: "\n"},
		Close:   Token{Text: "}", Trail: "\n"},
	}
	first := Render(d, 0)
	for i := 0; i < 3; i++ {
		assert.Equal(t, first, Render(d, 0))
	}
	assert.True(t, strings.HasSuffix(first, "}\n"))
}
