package metadata

import (
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// The default container format is a SQLite database holding one module's
// identity and type metadata across five tables. Containers are written once
// by `stencil pack` (or test fixtures) and only ever read afterwards.

const containerDDL = `
CREATE TABLE IF NOT EXISTS module (
  name              TEXT NOT NULL,
  version           TEXT NOT NULL,
  public_key_token  TEXT
);

CREATE TABLE IF NOT EXISTS types (
  id              INTEGER PRIMARY KEY,
  namespace       TEXT NOT NULL DEFAULT '',
  name            TEXT NOT NULL,
  kind            TEXT NOT NULL,
  visibility      TEXT NOT NULL,
  modifiers       TEXT,
  base_type       TEXT,
  interfaces      TEXT,
  attributes      TEXT,
  parent_type_id  INTEGER REFERENCES types(id)
);

CREATE TABLE IF NOT EXISTS type_params (
  id              INTEGER PRIMARY KEY,
  type_id         INTEGER NOT NULL REFERENCES types(id),
  ordinal         INTEGER NOT NULL,
  name            TEXT NOT NULL,
  constraints     TEXT
);

CREATE TABLE IF NOT EXISTS members (
  id              INTEGER PRIMARY KEY,
  type_id         INTEGER NOT NULL REFERENCES types(id),
  ordinal         INTEGER NOT NULL,
  kind            TEXT NOT NULL,
  name            TEXT NOT NULL,
  return_type     TEXT,
  modifiers       TEXT,
  has_getter      BOOLEAN DEFAULT FALSE,
  has_setter      BOOLEAN DEFAULT FALSE,
  const_value     TEXT
);

CREATE TABLE IF NOT EXISTS member_params (
  id              INTEGER PRIMARY KEY,
  member_id       INTEGER NOT NULL REFERENCES members(id),
  ordinal         INTEGER NOT NULL,
  name            TEXT,
  type_expr       TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_types_parent ON types(parent_type_id);
CREATE INDEX IF NOT EXISTS idx_members_type ON members(type_id);
`

// openContainer opens the SQLite database at path. mode is "ro" for readers
// and "rwc" for the writer.
func openContainer(path, mode string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", "file:"+path+"?mode="+mode+"&_foreign_keys=ON")
	if err != nil {
		return nil, fmt.Errorf("open container: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("open container: %w", err)
	}
	return db, nil
}

// marshalList converts []string to JSON text for storage.
func marshalList(items []string) string {
	if len(items) == 0 {
		return "[]"
	}
	b, _ := json.Marshal(items)
	return string(b)
}

// unmarshalList converts JSON text back to []string.
func unmarshalList(s string) []string {
	if s == "" || s == "null" || s == "[]" {
		return nil
	}
	var items []string
	_ = json.Unmarshal([]byte(s), &items)
	return items
}
