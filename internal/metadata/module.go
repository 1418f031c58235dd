package metadata

// FileExt is the expected file extension for metadata containers.
const FileExt = ".dll"

// Module is a loaded metadata container: an identity plus the flat set of
// top-level types it declares. Modules are immutable once read.
type Module struct {
	Identity Identity
	Path     string // file path the module was read from
	Types    []*TypeSymbol
}

// TypeSymbol describes one declared type. Nested types hang off their
// declaring type, not off the module's top-level list.
type TypeSymbol struct {
	Namespace  string // "" for the global namespace
	Name       string
	Kind       string // class, interface, struct, enum
	Visibility string // public, protected, protected internal, internal, private
	Modifiers  []string
	BaseType   string   // fully qualified, "" when none recorded
	Interfaces []string // fully qualified
	TypeParams []TypeParam
	Attributes []string // fully qualified attribute type names
	Members    []Member
	Nested     []*TypeSymbol
}

// TypeParam is a generic type parameter with its constraint expressions.
type TypeParam struct {
	Name        string
	Constraints []string
}

// Member describes one type member. ReturnType is "" or "void" for members
// with no produced value (constructors, void methods, events).
type Member struct {
	Kind       string // field, ctor, method, property, indexer, event
	Name       string
	ReturnType string
	Modifiers  []string
	Params     []Param
	HasGetter  bool // properties and indexers
	HasSetter  bool
	ConstValue string // enum members and const fields, "" otherwise
}

// Param is one formal parameter.
type Param struct {
	Name string
	Type string
}

// IsAbstract reports whether the member carries the abstract modifier.
func (m Member) IsAbstract() bool {
	for _, mod := range m.Modifiers {
		if mod == "abstract" {
			return true
		}
	}
	return false
}

// Visible reports whether a visibility string is part of the external
// surface: public, protected, or protected internal. Internal-only and
// private declarations are excluded entirely.
func Visible(visibility string) bool {
	switch visibility {
	case "public", "protected", "protected internal":
		return true
	}
	return false
}
