// Package rewrite reduces verbose draft declaration trees to their minimal
// canonical form: bodies replaced by stand-ins, the implicit object base
// removed, global:: qualifiers stripped, and trivia normalized so renders
// are byte-stable. Rewriting is a depth-first, bottom-up transform driven by
// a dispatch table keyed on node kind; rules that must inspect already
// rewritten children (base-list emptiness, header line-break placement) run
// after their subtree, while qualified-name unprefixing runs before its
// subtree so nested names are reached in their stripped form.
package rewrite

import (
	"fmt"
	"strings"

	"github.com/jward/stencil/internal/decl"
)

// Universal base type spellings removed from base lists.
const (
	objectKeyword   = "object"
	objectQualified = "System.Object"
)

type ruleFunc func(decl.Node) decl.Node

// Rewriter canonicalizes declaration trees. It is stateless across calls;
// one Rewriter may process any number of trees. Rewriting mutates the input
// tree in place and returns its (possibly replaced) root.
type Rewriter struct {
	rules map[decl.Kind]ruleFunc
}

// New creates a Rewriter with the full canonicalization rule set.
func New() *Rewriter {
	r := &Rewriter{}
	r.rules = map[decl.Kind]ruleFunc{
		decl.KindTypeDecl:      r.typeDecl,
		decl.KindEnumDecl:      r.enumDecl,
		decl.KindBaseList:      r.baseList,
		decl.KindQualifiedName: r.qualifiedName,
		decl.KindTypeArgList:   r.typeArgList,
		decl.KindCtorDecl:      r.ctor,
		decl.KindMethodDecl:    r.method,
		decl.KindPropertyDecl:  r.property,
		decl.KindIndexerDecl:   r.indexer,
		decl.KindAccessorDecl:  r.accessor,
	}
	return r
}

// Rewrite canonicalizes the tree rooted at n. A nil result means the node
// must be omitted from its parent (an emptied base list). Rewriting an
// already-canonical tree returns it unchanged.
func (r *Rewriter) Rewrite(n decl.Node) decl.Node {
	if n == nil {
		return nil
	}
	if rule, ok := r.rules[n.Kind()]; ok {
		return rule(n)
	}
	return r.children(n)
}

// children applies Rewrite to every child of n, bottom-up, and returns n.
// This is the pass-through behavior for kinds without a dedicated rule and
// the subtree step inside dedicated rules.
func (r *Rewriter) children(n decl.Node) decl.Node {
	switch n := n.(type) {
	case *decl.TypeDecl:
		r.attrs(n.Attrs)
		n.Bases = r.bases(n.Bases)
		for _, c := range n.Clauses {
			r.Rewrite(c)
		}
		for i, m := range n.Members {
			n.Members[i] = r.Rewrite(m)
		}
	case *decl.EnumDecl:
		r.attrs(n.Attrs)
		n.Bases = r.bases(n.Bases)
		for i, m := range n.Members {
			n.Members[i] = r.Rewrite(m)
		}
	case *decl.BaseList:
		for i, e := range n.Entries {
			n.Entries[i] = r.Rewrite(e)
		}
	case *decl.QualifiedName:
		for i, s := range n.Segments {
			n.Segments[i] = r.Rewrite(s)
		}
	case *decl.GenericName:
		r.Rewrite(n.Args)
	case *decl.TypeArgList:
		for i, a := range n.Args {
			n.Args[i] = r.Rewrite(a)
		}
	case *decl.ConstraintClause:
		for i, c := range n.Constraints {
			n.Constraints[i] = r.Rewrite(c)
		}
	case *decl.Attr:
		n.Name = r.Rewrite(n.Name)
	case *decl.FieldDecl:
		r.attrs(n.Attrs)
		n.Type = r.Rewrite(n.Type)
	case *decl.CtorDecl:
		r.attrs(n.Attrs)
		r.Rewrite(n.Params)
	case *decl.MethodDecl:
		r.attrs(n.Attrs)
		n.Return = r.Rewrite(n.Return)
		r.Rewrite(n.Params)
		for _, c := range n.Clauses {
			r.Rewrite(c)
		}
	case *decl.PropertyDecl:
		r.attrs(n.Attrs)
		n.Type = r.Rewrite(n.Type)
		r.Rewrite(n.Accessors)
	case *decl.IndexerDecl:
		r.attrs(n.Attrs)
		n.Type = r.Rewrite(n.Type)
		r.Rewrite(n.Params)
		r.Rewrite(n.Accessors)
	case *decl.AccessorList:
		for _, a := range n.Accessors {
			r.Rewrite(a)
		}
	case *decl.ParamList:
		for _, p := range n.Params {
			r.Rewrite(p)
		}
	case *decl.ParamDecl:
		n.Type = r.Rewrite(n.Type)
	case *decl.IdentifierName, *decl.EnumMemberDecl, *decl.TypeParamList,
		*decl.AccessorDecl, *decl.Block:
		// leaves
	default:
		panic(fmt.Sprintf("rewrite: unknown node %T", n))
	}
	return n
}

func (r *Rewriter) attrs(attrs []*decl.Attr) {
	for _, a := range attrs {
		r.Rewrite(a)
	}
}

// bases rewrites a base list, turning an emptied list into nil.
func (r *Rewriter) bases(b *decl.BaseList) *decl.BaseList {
	if b == nil {
		return nil
	}
	if out := r.Rewrite(b); out != nil {
		return out.(*decl.BaseList)
	}
	return nil
}

// typeDecl rewrites the subtree first, then fixes the header's trailing line
// break: it belongs to the last header construct, which can change when the
// base list vanishes (its only entry was the object base). The order is
// constraint clauses, then base list, then generic parameter list, then the
// type name itself.
func (r *Rewriter) typeDecl(node decl.Node) decl.Node {
	n := node.(*decl.TypeDecl)
	r.children(n)
	switch {
	case len(n.Clauses) > 0:
		if n.Bases != nil {
			n.Bases.Trail = ""
		}
		n.Clauses[len(n.Clauses)-1].Trail = "\n"
	case n.Bases != nil:
		n.Bases.Trail = "\n"
	case n.TypeParams != nil:
		n.Name.Trail = ""
		n.TypeParams.Close.Trail = "\n"
	default:
		n.Name.Trail = "\n"
	}
	return n
}

// enumDecl always places the line break after the header, with no base-list
// special-casing.
func (r *Rewriter) enumDecl(node decl.Node) decl.Node {
	n := node.(*decl.EnumDecl)
	r.children(n)
	if n.Bases != nil {
		n.Bases.Trail = "\n"
	} else {
		n.Name.Trail = "\n"
	}
	return n
}

// baseList removes the first entry naming the universal object base type,
// under either spelling, and stops scanning after one removal. An emptied
// list is omitted from the parent entirely.
func (r *Rewriter) baseList(node decl.Node) decl.Node {
	n := node.(*decl.BaseList)
	r.children(n)
	for i, e := range n.Entries {
		name := decl.RenderTypeName(e)
		if name == objectKeyword || name == objectQualified {
			n.Entries = append(n.Entries[:i], n.Entries[i+1:]...)
			break
		}
	}
	if len(n.Entries) == 0 {
		return nil
	}
	return n
}

// qualifiedName strips the global:: prefix from the leftmost segment before
// recursing, so nested qualified names inside type arguments are unprefixed
// by their own rule applications.
func (r *Rewriter) qualifiedName(node decl.Node) decl.Node {
	n := node.(*decl.QualifiedName)
	if len(n.Segments) > 0 {
		switch seg := n.Segments[0].(type) {
		case *decl.IdentifierName:
			seg.Tok.Text = strings.TrimPrefix(seg.Tok.Text, decl.GlobalPrefix)
		case *decl.GenericName:
			seg.Name.Text = strings.TrimPrefix(seg.Name.Text, decl.GlobalPrefix)
		}
	}
	return r.children(n)
}

// typeArgList has no structural rule of its own; it exists in the table so
// unprefixing reaches generic arguments.
func (r *Rewriter) typeArgList(node decl.Node) decl.Node {
	return r.children(node)
}

// ctor replaces the body with the empty stand-in on the header line.
func (r *Rewriter) ctor(node decl.Node) decl.Node {
	n := node.(*decl.CtorDecl)
	r.children(n)
	n.Params.Close.Trail = " "
	n.Body = emptyBody("\n")
	return n
}

// method rewrites the subtree, then synthesizes the canonical body for
// non-abstract methods: the unreachable-marker body when the return type is
// not void, the empty body otherwise. Any expression body is dropped in
// favor of the block form. Abstract methods keep their bodiless shape.
func (r *Rewriter) method(node decl.Node) decl.Node {
	n := node.(*decl.MethodDecl)
	r.children(n)
	if n.Abstract {
		return n
	}
	n.Expr = nil
	n.Params.Close.Trail = " "
	if decl.RenderTypeName(n.Return) == "void" {
		n.Body = emptyBody("\n")
	} else {
		n.Body = unreachableBody("\n")
	}
	return n
}

// property forces one space after the identifier and collapses the accessor
// block onto a single line.
func (r *Rewriter) property(node decl.Node) decl.Node {
	n := node.(*decl.PropertyDecl)
	r.children(n)
	n.Name.Trail = " "
	collapseAccessors(n.Accessors)
	return n
}

// indexer collapses like a property, with the space after the closing
// bracket of the index parameter list.
func (r *Rewriter) indexer(node decl.Node) decl.Node {
	n := node.(*decl.IndexerDecl)
	r.children(n)
	n.Params.Close.Trail = " "
	collapseAccessors(n.Accessors)
	return n
}

// accessor drops the semicolon-only form and attaches the inline body
// stand-in: unreachable-marker for getters, empty for setters. Accessor
// bodies render without a trailing line break so they stay inside the
// collapsed block.
func (r *Rewriter) accessor(node decl.Node) decl.Node {
	n := node.(*decl.AccessorDecl)
	n.Semi = nil
	n.Keyword.Lead = ""
	n.Keyword.Trail = " "
	if n.IsGetter() {
		n.Body = unreachableBody(" ")
	} else {
		n.Body = emptyBody(" ")
	}
	return n
}

func collapseAccessors(list *decl.AccessorList) {
	list.Open = decl.Token{Text: "{", Trail: " "}
	list.Close = decl.Token{Text: "}", Trail: "\n"}
}

func emptyBody(trail string) *decl.Block {
	return &decl.Block{
		Open:  decl.Token{Text: "{", Trail: " "},
		Close: decl.Token{Text: "}", Trail: trail},
	}
}

func unreachableBody(trail string) *decl.Block {
	return &decl.Block{
		Open:   decl.Token{Text: "{", Trail: " "},
		Marker: decl.UnreachableMarker,
		Close:  decl.Token{Text: "}", Trail: trail},
	}
}
