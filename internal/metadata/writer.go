package metadata

import (
	"database/sql"
	"fmt"
)

// WriteContainer writes mod out as a SQLite metadata container at path.
// The file must not already hold a module; containers are write-once.
func WriteContainer(path string, mod *Module) error {
	db, err := openContainer(path, "rwc")
	if err != nil {
		return err
	}
	defer db.Close()

	if _, err := db.Exec(containerDDL); err != nil {
		return fmt.Errorf("write container: migrate: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("write container: begin: %w", err)
	}
	defer tx.Rollback()

	var existing int
	if err := tx.QueryRow(`SELECT COUNT(*) FROM module`).Scan(&existing); err != nil {
		return fmt.Errorf("write container: %w", err)
	}
	if existing > 0 {
		return fmt.Errorf("write container %s: already holds a module", path)
	}

	_, err = tx.Exec(`INSERT INTO module (name, version, public_key_token) VALUES (?, ?, ?)`,
		mod.Identity.Name, mod.Identity.Version.String(), mod.Identity.KeyHex())
	if err != nil {
		return fmt.Errorf("write container: module row: %w", err)
	}

	for _, t := range mod.Types {
		if err := writeType(tx, t, sql.NullInt64{}); err != nil {
			return fmt.Errorf("write container: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("write container: commit: %w", err)
	}
	return nil
}

func writeType(tx *sql.Tx, t *TypeSymbol, parentID sql.NullInt64) error {
	res, err := tx.Exec(`
		INSERT INTO types (namespace, name, kind, visibility, modifiers,
		                   base_type, interfaces, attributes, parent_type_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.Namespace, t.Name, t.Kind, t.Visibility, marshalList(t.Modifiers),
		t.BaseType, marshalList(t.Interfaces), marshalList(t.Attributes), parentID)
	if err != nil {
		return fmt.Errorf("type %s: %w", t.Name, err)
	}
	typeID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("type %s: %w", t.Name, err)
	}

	for i, tp := range t.TypeParams {
		_, err := tx.Exec(`
			INSERT INTO type_params (type_id, ordinal, name, constraints)
			VALUES (?, ?, ?, ?)`,
			typeID, i, tp.Name, marshalList(tp.Constraints))
		if err != nil {
			return fmt.Errorf("type %s: type param %s: %w", t.Name, tp.Name, err)
		}
	}

	for i, m := range t.Members {
		res, err := tx.Exec(`
			INSERT INTO members (type_id, ordinal, kind, name, return_type,
			                     modifiers, has_getter, has_setter, const_value)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			typeID, i, m.Kind, m.Name, m.ReturnType, marshalList(m.Modifiers),
			m.HasGetter, m.HasSetter, m.ConstValue)
		if err != nil {
			return fmt.Errorf("type %s: member %s: %w", t.Name, m.Name, err)
		}
		memberID, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("type %s: member %s: %w", t.Name, m.Name, err)
		}
		for j, p := range m.Params {
			_, err := tx.Exec(`
				INSERT INTO member_params (member_id, ordinal, name, type_expr)
				VALUES (?, ?, ?, ?)`,
				memberID, j, p.Name, p.Type)
			if err != nil {
				return fmt.Errorf("type %s: member %s: param %d: %w", t.Name, m.Name, j, err)
			}
		}
	}

	for _, nested := range t.Nested {
		if err := writeType(tx, nested, sql.NullInt64{Int64: typeID, Valid: true}); err != nil {
			return err
		}
	}
	return nil
}
