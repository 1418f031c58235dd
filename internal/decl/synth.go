package decl

import (
	"strings"

	"github.com/jward/stencil/internal/metadata"
)

// Synthesize builds the first-draft declaration tree for a type symbol. The
// draft is deliberately verbose: every dotted type reference carries the
// global:: qualifier, classes always list their base type (System.Object
// when none is recorded), methods are expression-bodied, accessors use the
// semicolon-only form, and every header construct sits on its own line. The
// canonicalization rewriter reduces the draft to its minimal stable form.
func Synthesize(t *metadata.TypeSymbol) Node {
	if t.Kind == "enum" {
		return synthEnum(t)
	}
	return synthType(t)
}

func synthType(t *metadata.TypeSymbol) Node {
	d := &TypeDecl{
		Attrs:     synthAttrs(t.Attributes),
		Modifiers: modifierTokens(t.Visibility, t.Modifiers),
		Keyword:   Token{Text: t.Kind, Trail: " "},
		Name:      Token{Text: t.Name},
		Open:      Token{Text: "{", Trail: "\n"},
		Close:     Token{Text: "}", Trail: "\n"},
	}

	if len(t.TypeParams) > 0 {
		d.TypeParams = &TypeParamList{Close: Token{Text: ">"}}
		for _, tp := range t.TypeParams {
			d.TypeParams.Params = append(d.TypeParams.Params, Token{Text: tp.Name})
			if len(tp.Constraints) > 0 {
				clause := &ConstraintClause{Param: Token{Text: tp.Name}}
				for _, c := range tp.Constraints {
					clause.Constraints = append(clause.Constraints, ParseTypeRef(Qualify(c)))
				}
				d.Clauses = append(d.Clauses, clause)
			}
		}
	}

	var bases []string
	if t.Kind == "class" {
		base := t.BaseType
		if base == "" {
			base = "System.Object"
		}
		bases = append(bases, base)
	} else if t.BaseType != "" {
		bases = append(bases, t.BaseType)
	}
	bases = append(bases, t.Interfaces...)
	if len(bases) > 0 {
		d.Bases = &BaseList{}
		for _, b := range bases {
			d.Bases.Entries = append(d.Bases.Entries, ParseTypeRef(Qualify(b)))
		}
	}

	// The draft header's line break sits after its last construct.
	switch {
	case len(d.Clauses) > 0:
		d.Clauses[len(d.Clauses)-1].Trail = "\n"
	case d.Bases != nil:
		d.Bases.Trail = "\n"
	case d.TypeParams != nil:
		d.TypeParams.Close.Trail = "\n"
	default:
		d.Name.Trail = "\n"
	}

	for _, m := range t.Members {
		if node := synthMember(t, m); node != nil {
			d.Members = append(d.Members, node)
		}
	}
	for _, nested := range t.Nested {
		if metadata.Visible(nested.Visibility) {
			d.Members = append(d.Members, Synthesize(nested))
		}
	}
	return d
}

func synthEnum(t *metadata.TypeSymbol) Node {
	d := &EnumDecl{
		Attrs:     synthAttrs(t.Attributes),
		Modifiers: modifierTokens(t.Visibility, t.Modifiers),
		Keyword:   Token{Text: "enum", Trail: " "},
		Name:      Token{Text: t.Name},
		Open:      Token{Text: "{", Trail: "\n"},
		Close:     Token{Text: "}", Trail: "\n"},
	}
	if t.BaseType != "" {
		d.Bases = &BaseList{
			Entries: []Node{ParseTypeRef(Qualify(t.BaseType))},
			Trail:   "\n",
		}
	} else {
		d.Name.Trail = "\n"
	}
	for _, m := range t.Members {
		d.Members = append(d.Members, &EnumMemberDecl{
			Name:  Token{Text: m.Name},
			Value: m.ConstValue,
			Comma: Token{Text: ",", Trail: "\n"},
		})
	}
	return d
}

func synthMember(t *metadata.TypeSymbol, m metadata.Member) Node {
	switch m.Kind {
	case "field", "event":
		return synthField(m)
	case "ctor":
		return synthCtor(t, m)
	case "method":
		return synthMethod(m)
	case "property":
		return synthProperty(m)
	case "indexer":
		return synthIndexer(m)
	}
	return nil
}

func synthField(m metadata.Member) Node {
	mods := m.Modifiers
	if m.Kind == "event" {
		mods = append(append([]string{}, mods...), "event")
	}
	return &FieldDecl{
		Modifiers: tokens(mods),
		Type:      ParseTypeRef(Qualify(m.ReturnType)),
		Name:      Token{Text: m.Name},
		Value:     m.ConstValue,
		Semi:      Token{Text: ";", Trail: "\n"},
	}
}

func synthCtor(t *metadata.TypeSymbol, m metadata.Member) Node {
	return &CtorDecl{
		Modifiers: tokens(m.Modifiers),
		Name:      Token{Text: t.Name},
		Params:    synthParams(m.Params, "(", ")", "\n"),
		Body:      draftBlock(),
	}
}

func synthMethod(m metadata.Member) Node {
	ret := m.ReturnType
	if ret == "" {
		ret = "void"
	}
	d := &MethodDecl{
		Modifiers: tokens(m.Modifiers),
		Abstract:  m.IsAbstract(),
		Return:    ParseTypeRef(Qualify(ret)),
		Name:      Token{Text: m.Name},
	}
	if d.Abstract {
		d.Params = synthParams(m.Params, "(", ")", "")
		d.Semi = &Token{Text: ";", Trail: "\n"}
	} else {
		d.Params = synthParams(m.Params, "(", ")", " ")
		d.Expr = &Token{Text: "=> " + UnreachableMarker, Trail: "\n"}
	}
	return d
}

func synthProperty(m metadata.Member) Node {
	return &PropertyDecl{
		Modifiers: tokens(m.Modifiers),
		Type:      ParseTypeRef(Qualify(m.ReturnType)),
		Name:      Token{Text: m.Name, Trail: "\n"},
		Accessors: synthAccessors(m),
	}
}

func synthIndexer(m metadata.Member) Node {
	return &IndexerDecl{
		Modifiers: tokens(m.Modifiers),
		Type:      ParseTypeRef(Qualify(m.ReturnType)),
		This:      Token{Text: "this"},
		Params:    synthParams(m.Params, "[", "]", "\n"),
		Accessors: synthAccessors(m),
	}
}

// synthAccessors drafts the multi-line, semicolon-only accessor block.
func synthAccessors(m metadata.Member) *AccessorList {
	list := &AccessorList{
		Open:  Token{Text: "{", Trail: "\n"},
		Close: Token{Text: "}", Trail: "\n"},
	}
	if m.HasGetter {
		list.Accessors = append(list.Accessors, &AccessorDecl{
			Keyword: Token{Text: "get"},
			Semi:    &Token{Text: ";", Trail: "\n"},
		})
	}
	if m.HasSetter {
		list.Accessors = append(list.Accessors, &AccessorDecl{
			Keyword: Token{Text: "set"},
			Semi:    &Token{Text: ";", Trail: "\n"},
		})
	}
	return list
}

func synthParams(params []metadata.Param, open, closing, trail string) *ParamList {
	list := &ParamList{
		Open:  Token{Text: open},
		Close: Token{Text: closing, Trail: trail},
	}
	for _, p := range params {
		list.Params = append(list.Params, &ParamDecl{
			Type: ParseTypeRef(Qualify(p.Type)),
			Name: Token{Text: p.Name},
		})
	}
	return list
}

func synthAttrs(attrs []string) []*Attr {
	var out []*Attr
	for _, a := range attrs {
		out = append(out, &Attr{
			Name:  ParseTypeRef(Qualify(a)),
			Close: Token{Text: "]", Trail: "\n"},
		})
	}
	return out
}

func draftBlock() *Block {
	return &Block{
		Open:  Token{Text: "{", Trail: "\n"},
		Close: Token{Text: "}", Trail: "\n"},
	}
}

func modifierTokens(visibility string, modifiers []string) []Token {
	words := append(strings.Fields(visibility), modifiers...)
	return tokens(words)
}

func tokens(words []string) []Token {
	out := make([]Token, len(words))
	for i, w := range words {
		out[i] = Token{Text: w, Trail: " "}
	}
	return out
}
