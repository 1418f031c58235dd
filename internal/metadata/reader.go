package metadata

import (
	"database/sql"
	"encoding/hex"
	"fmt"
)

// ContainerReader reads SQLite metadata containers. It is the default
// Reader used by the Universe; alternative container formats plug in by
// implementing Reader.
type ContainerReader struct{}

// NewContainerReader returns a reader for SQLite metadata containers.
func NewContainerReader() *ContainerReader {
	return &ContainerReader{}
}

// ReadModule loads the container at path into a Module symbol graph.
// A container missing its module row, or with an unparsable version or key,
// is malformed and returns an error.
func (r *ContainerReader) ReadModule(path string) (*Module, error) {
	db, err := openContainer(path, "ro")
	if err != nil {
		return nil, err
	}
	defer db.Close()

	identity, err := readIdentity(db)
	if err != nil {
		return nil, fmt.Errorf("read module %s: %w", path, err)
	}
	types, err := readTypes(db)
	if err != nil {
		return nil, fmt.Errorf("read module %s: %w", path, err)
	}
	return &Module{Identity: identity, Types: types}, nil
}

func readIdentity(db *sql.DB) (Identity, error) {
	var name, version string
	var keyHex sql.NullString
	err := db.QueryRow(`SELECT name, version, public_key_token FROM module`).
		Scan(&name, &version, &keyHex)
	if err == sql.ErrNoRows {
		return Identity{}, fmt.Errorf("no module row")
	}
	if err != nil {
		return Identity{}, fmt.Errorf("module row: %w", err)
	}
	v, err := ParseVersion(version)
	if err != nil {
		return Identity{}, err
	}
	id := Identity{Name: name, Version: v}
	if keyHex.Valid && keyHex.String != "" {
		key, err := hex.DecodeString(keyHex.String)
		if err != nil {
			return Identity{}, fmt.Errorf("public key token %q: %w", keyHex.String, err)
		}
		id.PublicKeyToken = key
	}
	return id, nil
}

// typeRow is one scanned row of the types table before nesting is resolved.
type typeRow struct {
	id       int64
	parentID sql.NullInt64
	sym      *TypeSymbol
}

func readTypes(db *sql.DB) ([]*TypeSymbol, error) {
	rows, err := db.Query(`
		SELECT id, namespace, name, kind, visibility, modifiers,
		       base_type, interfaces, attributes, parent_type_id
		FROM types ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query types: %w", err)
	}
	defer rows.Close()

	var order []typeRow
	byID := make(map[int64]*TypeSymbol)
	for rows.Next() {
		var tr typeRow
		var modifiers, baseType, interfaces, attributes sql.NullString
		sym := &TypeSymbol{}
		err := rows.Scan(&tr.id, &sym.Namespace, &sym.Name, &sym.Kind,
			&sym.Visibility, &modifiers, &baseType, &interfaces,
			&attributes, &tr.parentID)
		if err != nil {
			return nil, fmt.Errorf("scan type: %w", err)
		}
		sym.Modifiers = unmarshalList(modifiers.String)
		sym.BaseType = baseType.String
		sym.Interfaces = unmarshalList(interfaces.String)
		sym.Attributes = unmarshalList(attributes.String)
		tr.sym = sym
		order = append(order, tr)
		byID[tr.id] = sym
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("scan types: %w", err)
	}

	for i := range order {
		if err := readTypeParams(db, order[i].id, order[i].sym); err != nil {
			return nil, err
		}
		if err := readMembers(db, order[i].id, order[i].sym); err != nil {
			return nil, err
		}
	}

	// Attach nested types to their declaring type; rows are ordered by id so
	// parents always precede children.
	var top []*TypeSymbol
	for _, tr := range order {
		if tr.parentID.Valid {
			parent, ok := byID[tr.parentID.Int64]
			if !ok {
				return nil, fmt.Errorf("type %s: missing parent %d", tr.sym.Name, tr.parentID.Int64)
			}
			parent.Nested = append(parent.Nested, tr.sym)
			continue
		}
		top = append(top, tr.sym)
	}
	return top, nil
}

func readTypeParams(db *sql.DB, typeID int64, sym *TypeSymbol) error {
	rows, err := db.Query(`
		SELECT name, constraints FROM type_params
		WHERE type_id = ? ORDER BY ordinal`, typeID)
	if err != nil {
		return fmt.Errorf("query type params: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var tp TypeParam
		var constraints sql.NullString
		if err := rows.Scan(&tp.Name, &constraints); err != nil {
			return fmt.Errorf("scan type param: %w", err)
		}
		tp.Constraints = unmarshalList(constraints.String)
		sym.TypeParams = append(sym.TypeParams, tp)
	}
	return rows.Err()
}

func readMembers(db *sql.DB, typeID int64, sym *TypeSymbol) error {
	rows, err := db.Query(`
		SELECT id, kind, name, return_type, modifiers, has_getter, has_setter, const_value
		FROM members WHERE type_id = ? ORDER BY ordinal`, typeID)
	if err != nil {
		return fmt.Errorf("query members: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var m Member
		var id int64
		var returnType, modifiers, constValue sql.NullString
		err := rows.Scan(&id, &m.Kind, &m.Name, &returnType, &modifiers,
			&m.HasGetter, &m.HasSetter, &constValue)
		if err != nil {
			return fmt.Errorf("scan member: %w", err)
		}
		m.ReturnType = returnType.String
		m.Modifiers = unmarshalList(modifiers.String)
		m.ConstValue = constValue.String
		sym.Members = append(sym.Members, m)
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("scan members: %w", err)
	}

	for i, id := range ids {
		params, err := readParams(db, id)
		if err != nil {
			return err
		}
		sym.Members[i].Params = params
	}
	return nil
}

func readParams(db *sql.DB, memberID int64) ([]Param, error) {
	rows, err := db.Query(`
		SELECT name, type_expr FROM member_params
		WHERE member_id = ? ORDER BY ordinal`, memberID)
	if err != nil {
		return nil, fmt.Errorf("query params: %w", err)
	}
	defer rows.Close()
	var params []Param
	for rows.Next() {
		var p Param
		var name sql.NullString
		if err := rows.Scan(&name, &p.Type); err != nil {
			return nil, fmt.Errorf("scan param: %w", err)
		}
		p.Name = name.String
		params = append(params, p)
	}
	return params, rows.Err()
}
