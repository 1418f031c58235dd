// Package decl models declaration trees: a closed set of node kinds carrying
// explicit whitespace trivia, a synthesizer that drafts a verbose tree from a
// type symbol, and a renderer that serializes trees byte-for-byte from their
// trivia. The canonicalization rewriter in internal/rewrite transforms draft
// trees into their minimal stable form.
package decl

// Kind tags every node variant. The set is closed: the rewriter dispatches
// on it and unknown kinds do not exist.
type Kind int

const (
	KindTypeDecl Kind = iota
	KindEnumDecl
	KindBaseList
	KindQualifiedName
	KindIdentifierName
	KindGenericName
	KindTypeArgList
	KindTypeParamList
	KindConstraintClause
	KindAttr
	KindFieldDecl
	KindEnumMemberDecl
	KindCtorDecl
	KindMethodDecl
	KindPropertyDecl
	KindIndexerDecl
	KindAccessorList
	KindAccessorDecl
	KindParamList
	KindParamDecl
	KindBlock
)

// Node is one declaration-tree node.
type Node interface {
	Kind() Kind
}

// Token is a terminal with leading and trailing trivia. Trivia strings hold
// only whitespace; the renderer emits Lead, Text, Trail in order.
type Token struct {
	Text  string
	Lead  string
	Trail string
}

// TypeDecl is a class, interface, or struct declaration.
type TypeDecl struct {
	Attrs      []*Attr
	Modifiers  []Token
	Keyword    Token // "class", "interface", "struct"
	Name       Token
	TypeParams *TypeParamList    // nil when non-generic
	Bases      *BaseList         // nil when the base list is absent
	Clauses    []*ConstraintClause
	Open       Token // "{"
	Members    []Node
	Close      Token // "}"
}

func (*TypeDecl) Kind() Kind { return KindTypeDecl }

// EnumDecl is an enum declaration. Bases holds the underlying type when one
// is recorded.
type EnumDecl struct {
	Attrs     []*Attr
	Modifiers []Token
	Keyword   Token // "enum"
	Name      Token
	Bases     *BaseList
	Open      Token
	Members   []Node // EnumMemberDecl
	Close     Token
}

func (*EnumDecl) Kind() Kind { return KindEnumDecl }

// BaseList is the ": Base, IFace" list after a type header. Trail renders
// after the last entry and carries the header's line break when the base
// list is the last header construct.
type BaseList struct {
	Entries []Node // type references
	Trail   string
}

func (*BaseList) Kind() Kind { return KindBaseList }

// QualifiedName is a dotted type reference. The leftmost segment's token may
// carry the "global::" root qualifier prefix in draft trees.
type QualifiedName struct {
	Segments []Node // IdentifierName or GenericName
}

func (*QualifiedName) Kind() Kind { return KindQualifiedName }

// IdentifierName is a bare type reference ("int", "T", "Widget[]").
type IdentifierName struct {
	Tok Token
}

func (*IdentifierName) Kind() Kind { return KindIdentifierName }

// GenericName is a type reference with type arguments ("List<int>").
type GenericName struct {
	Name Token
	Args *TypeArgList
}

func (*GenericName) Kind() Kind { return KindGenericName }

// TypeArgList is the "<A, B>" argument list of a GenericName.
type TypeArgList struct {
	Args []Node // type references
}

func (*TypeArgList) Kind() Kind { return KindTypeArgList }

// TypeParamList is the "<T, U>" parameter list of a generic declaration.
type TypeParamList struct {
	Params []Token
	Close  Token // ">"
}

func (*TypeParamList) Kind() Kind { return KindTypeParamList }

// ConstraintClause is one "where T : class" clause.
type ConstraintClause struct {
	Param       Token
	Constraints []Node // type references or constraint keywords
	Trail       string
}

func (*ConstraintClause) Kind() Kind { return KindConstraintClause }

// Attr is one "[AttributeName]" line.
type Attr struct {
	Name  Node  // type reference
	Close Token // "]"
}

func (*Attr) Kind() Kind { return KindAttr }

// FieldDecl is a field, with an optional constant initializer.
type FieldDecl struct {
	Attrs     []*Attr
	Modifiers []Token
	Type      Node
	Name      Token
	Value     string // "" when not a constant
	Semi      Token  // ";"
}

func (*FieldDecl) Kind() Kind { return KindFieldDecl }

// EnumMemberDecl is one enum member line.
type EnumMemberDecl struct {
	Name  Token
	Value string // "" when implicit
	Comma Token  // ","
}

func (*EnumMemberDecl) Kind() Kind { return KindEnumMemberDecl }

// CtorDecl is an instance constructor.
type CtorDecl struct {
	Attrs     []*Attr
	Modifiers []Token
	Name      Token
	Params    *ParamList
	Body      *Block
}

func (*CtorDecl) Kind() Kind { return KindCtorDecl }

// MethodDecl is a method. Exactly one of Body, Expr, or Semi is set: a block
// body, an expression body ("=> ..."), or the bodiless semicolon form used
// by abstract methods.
type MethodDecl struct {
	Attrs      []*Attr
	Modifiers  []Token
	Abstract   bool
	Return     Node
	Name       Token
	TypeParams *TypeParamList
	Params     *ParamList
	Clauses    []*ConstraintClause
	Body       *Block
	Expr       *Token
	Semi       *Token
}

func (*MethodDecl) Kind() Kind { return KindMethodDecl }

// PropertyDecl is a property with an accessor list.
type PropertyDecl struct {
	Attrs     []*Attr
	Modifiers []Token
	Type      Node
	Name      Token
	Accessors *AccessorList
}

func (*PropertyDecl) Kind() Kind { return KindPropertyDecl }

// IndexerDecl is an indexer ("this[...]") with an accessor list.
type IndexerDecl struct {
	Attrs     []*Attr
	Modifiers []Token
	Type      Node
	This      Token // "this"
	Params    *ParamList // bracketed
	Accessors *AccessorList
}

func (*IndexerDecl) Kind() Kind { return KindIndexerDecl }

// AccessorList is the braced accessor block of a property or indexer.
type AccessorList struct {
	Open      Token // "{"
	Accessors []*AccessorDecl
	Close     Token // "}"
}

func (*AccessorList) Kind() Kind { return KindAccessorList }

// AccessorDecl is one get or set accessor. Semi is set for the draft
// semicolon-only form ("get;"); Body for the block form.
type AccessorDecl struct {
	Keyword Token // "get" or "set"
	Body    *Block
	Semi    *Token
}

func (*AccessorDecl) Kind() Kind { return KindAccessorDecl }

// IsGetter reports whether the accessor is getter-like.
func (a *AccessorDecl) IsGetter() bool { return a.Keyword.Text == "get" }

// ParamList is a parenthesized or bracketed formal parameter list.
type ParamList struct {
	Open   Token // "(" or "["
	Params []*ParamDecl
	Close  Token // ")" or "]"
}

func (*ParamList) Kind() Kind { return KindParamList }

// ParamDecl is one formal parameter.
type ParamDecl struct {
	Type Node
	Name Token
}

func (*ParamDecl) Kind() Kind { return KindParamDecl }

// Block is a body. Canonical bodies hold either nothing ("{ }") or the
// unreachable-code marker ("{ throw null; }"); draft bodies are empty
// multi-line blocks that the rewriter replaces wholesale.
type Block struct {
	Open   Token // "{"
	Marker string // "" or the unreachable-code marker statement
	Close  Token // "}"
}

func (*Block) Kind() Kind { return KindBlock }

// UnreachableMarker is the statement placed in canonical bodies of members
// whose return type is not void: syntactically valid, never executable.
const UnreachableMarker = "throw null;"
