package decl

import (
	"fmt"
	"strings"
)

const indentUnit = "    "

// Render serializes a declaration tree to text at the given indent level.
// Output is a pure function of the tree: all spacing and line breaks come
// from node trivia, so trees that differ only in trivia render differently.
func Render(n Node, indent int) string {
	p := &printer{indent: indent, atLineStart: true}
	p.node(n)
	return p.b.String()
}

type printer struct {
	b           strings.Builder
	indent      int
	atLineStart bool
}

func (p *printer) write(s string) {
	for _, r := range s {
		if r == '\n' {
			p.b.WriteByte('\n')
			p.atLineStart = true
			continue
		}
		if p.atLineStart {
			p.b.WriteString(strings.Repeat(indentUnit, p.indent))
			p.atLineStart = false
		}
		p.b.WriteRune(r)
	}
}

func (p *printer) tok(t Token) {
	p.write(t.Lead)
	p.write(t.Text)
	p.write(t.Trail)
}

func (p *printer) node(n Node) {
	switch n := n.(type) {
	case *TypeDecl:
		p.typeDecl(n)
	case *EnumDecl:
		p.enumDecl(n)
	case *BaseList:
		p.baseList(n)
	case *QualifiedName:
		for i, seg := range n.Segments {
			if i > 0 {
				p.write(".")
			}
			p.node(seg)
		}
	case *IdentifierName:
		p.tok(n.Tok)
	case *GenericName:
		p.tok(n.Name)
		p.node(n.Args)
	case *TypeArgList:
		p.write("<")
		for i, a := range n.Args {
			if i > 0 {
				p.write(", ")
			}
			p.node(a)
		}
		p.write(">")
	case *TypeParamList:
		p.write("<")
		for i, t := range n.Params {
			if i > 0 {
				p.write(", ")
			}
			p.tok(t)
		}
		p.tok(n.Close)
	case *ConstraintClause:
		p.write(" where ")
		p.tok(n.Param)
		p.write(" : ")
		for i, c := range n.Constraints {
			if i > 0 {
				p.write(", ")
			}
			p.node(c)
		}
		p.write(n.Trail)
	case *Attr:
		p.write("[")
		p.node(n.Name)
		p.tok(n.Close)
	case *FieldDecl:
		p.fieldDecl(n)
	case *EnumMemberDecl:
		p.tok(n.Name)
		if n.Value != "" {
			p.write(" = " + n.Value)
		}
		p.tok(n.Comma)
	case *CtorDecl:
		p.ctorDecl(n)
	case *MethodDecl:
		p.methodDecl(n)
	case *PropertyDecl:
		p.propertyDecl(n)
	case *IndexerDecl:
		p.indexerDecl(n)
	case *AccessorList:
		p.tok(n.Open)
		for _, a := range n.Accessors {
			p.node(a)
		}
		p.tok(n.Close)
	case *AccessorDecl:
		p.tok(n.Keyword)
		if n.Semi != nil {
			p.tok(*n.Semi)
		}
		if n.Body != nil {
			p.block(n.Body)
		}
	case *ParamList:
		p.tok(n.Open)
		for i, prm := range n.Params {
			if i > 0 {
				p.write(", ")
			}
			p.node(prm)
		}
		p.tok(n.Close)
	case *ParamDecl:
		p.node(n.Type)
		p.write(" ")
		p.tok(n.Name)
	case *Block:
		p.block(n)
	default:
		panic(fmt.Sprintf("decl: render: unknown node %T", n))
	}
}

func (p *printer) header(attrs []*Attr, modifiers []Token) {
	for _, a := range attrs {
		p.node(a)
	}
	for _, m := range modifiers {
		p.tok(m)
	}
}

func (p *printer) typeDecl(n *TypeDecl) {
	p.header(n.Attrs, n.Modifiers)
	p.tok(n.Keyword)
	p.tok(n.Name)
	if n.TypeParams != nil {
		p.node(n.TypeParams)
	}
	if n.Bases != nil {
		p.node(n.Bases)
	}
	for _, c := range n.Clauses {
		p.node(c)
	}
	p.tok(n.Open)
	p.indent++
	for _, m := range n.Members {
		p.node(m)
	}
	p.indent--
	p.tok(n.Close)
}

func (p *printer) enumDecl(n *EnumDecl) {
	p.header(n.Attrs, n.Modifiers)
	p.tok(n.Keyword)
	p.tok(n.Name)
	if n.Bases != nil {
		p.node(n.Bases)
	}
	p.tok(n.Open)
	p.indent++
	for _, m := range n.Members {
		p.node(m)
	}
	p.indent--
	p.tok(n.Close)
}

func (p *printer) baseList(n *BaseList) {
	p.write(" : ")
	for i, e := range n.Entries {
		if i > 0 {
			p.write(", ")
		}
		p.node(e)
	}
	p.write(n.Trail)
}

func (p *printer) fieldDecl(n *FieldDecl) {
	p.header(n.Attrs, n.Modifiers)
	p.node(n.Type)
	p.write(" ")
	p.tok(n.Name)
	if n.Value != "" {
		p.write(" = " + n.Value)
	}
	p.tok(n.Semi)
}

func (p *printer) ctorDecl(n *CtorDecl) {
	p.header(n.Attrs, n.Modifiers)
	p.tok(n.Name)
	p.node(n.Params)
	if n.Body != nil {
		p.block(n.Body)
	}
}

func (p *printer) methodDecl(n *MethodDecl) {
	p.header(n.Attrs, n.Modifiers)
	p.node(n.Return)
	p.write(" ")
	p.tok(n.Name)
	if n.TypeParams != nil {
		p.node(n.TypeParams)
	}
	p.node(n.Params)
	for _, c := range n.Clauses {
		p.node(c)
	}
	switch {
	case n.Expr != nil:
		p.tok(*n.Expr)
	case n.Semi != nil:
		p.tok(*n.Semi)
	case n.Body != nil:
		p.block(n.Body)
	}
}

func (p *printer) propertyDecl(n *PropertyDecl) {
	p.header(n.Attrs, n.Modifiers)
	p.node(n.Type)
	p.write(" ")
	p.tok(n.Name)
	p.node(n.Accessors)
}

func (p *printer) indexerDecl(n *IndexerDecl) {
	p.header(n.Attrs, n.Modifiers)
	p.node(n.Type)
	p.write(" ")
	p.tok(n.This)
	p.node(n.Params)
	p.node(n.Accessors)
}

func (p *printer) block(n *Block) {
	p.tok(n.Open)
	if n.Marker != "" {
		p.write(n.Marker)
		p.write(" ")
	}
	p.tok(n.Close)
}

// RenderTypeName renders a type reference as plain text with no indentation,
// for name comparisons during rewriting.
func RenderTypeName(n Node) string {
	return Render(n, 0)
}
