package rest

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// OpenSQLite opens (creating if needed) a SQLite database at path.
func OpenSQLite(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`PRAGMA journal_mode=WAL;`); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

var identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// SQLiteCollection is a Collection persisted in a SQLite table. Each row
// stores the entity as a JSON document plus an insertion sequence, so the
// collection stays ordered across replaces.
type SQLiteCollection struct {
	db      *sql.DB
	table   string
	factory Factory
	where   string
}

// SQLiteOption configures a SQLiteCollection.
type SQLiteOption func(*SQLiteCollection)

// WithSQLFilter scopes the collection to rows matching a SQL predicate
// over the doc column, e.g. json_extract(doc, '$.is_active') = 1. The
// predicate is supplied by the owner of the schema, never derived from
// request data.
func WithSQLFilter(predicate string) SQLiteOption {
	return func(sc *SQLiteCollection) { sc.where = predicate }
}

// NewSQLiteCollection creates the backing table if needed and returns the
// collection.
func NewSQLiteCollection(db *sql.DB, table string, factory Factory, opts ...SQLiteOption) (*SQLiteCollection, error) {
	if !identPattern.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}

	sc := &SQLiteCollection{db: db, table: table, factory: factory}
	for _, opt := range opts {
		opt(sc)
	}

	_, err := db.Exec(fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		id TEXT PRIMARY KEY,
		doc TEXT NOT NULL,
		seq INTEGER NOT NULL
	);`, table))
	if err != nil {
		return nil, err
	}
	return sc, nil
}

// filterClause renders the optional scope predicate with a leading
// conjunction keyword.
func (sc *SQLiteCollection) filterClause(keyword string) string {
	if sc.where == "" {
		return ""
	}
	return " " + keyword + " (" + sc.where + ")"
}

// Count reports the number of rows in scope.
func (sc *SQLiteCollection) Count() (int, error) {
	var n int
	query := "SELECT COUNT(*) FROM " + sc.table + sc.filterClause("WHERE")
	if err := sc.db.QueryRow(query).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// Slice returns a page of rows in insertion order. limit 0 means the whole
// tail from offset.
func (sc *SQLiteCollection) Slice(offset, limit int) ([]Representation, error) {
	if limit == 0 {
		limit = -1 // no limit in SQLite
	}

	query := "SELECT doc FROM " + sc.table + sc.filterClause("WHERE") +
		" ORDER BY seq LIMIT ? OFFSET ?"
	rows, err := sc.db.Query(query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reps []Representation
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, err
		}
		rep, err := sc.hydrate(doc)
		if err != nil {
			return nil, err
		}
		reps = append(reps, rep)
	}
	return reps, rows.Err()
}

// GetByID returns the row stored under id, or ErrNotFound when absent or
// out of scope.
func (sc *SQLiteCollection) GetByID(id string) (Representation, error) {
	var doc string
	query := "SELECT doc FROM " + sc.table + " WHERE id = ?" + sc.filterClause("AND")
	if err := sc.db.QueryRow(query, id).Scan(&doc); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return sc.hydrate(doc)
}

// Save stores rep under id, assigning a fresh id when empty. The create
// and replace paths run in one transaction.
func (sc *SQLiteCollection) Save(id string, rep Representation) (Representation, bool, error) {
	if id == "" {
		id = uuid.NewString()
	}

	d := rep.ToDict()
	d["id"] = id
	doc, err := json.Marshal(d)
	if err != nil {
		return nil, false, err
	}

	tx, err := sc.db.Begin()
	if err != nil {
		return nil, false, err
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	var stored int
	err = tx.QueryRow("SELECT COUNT(*) FROM "+sc.table+" WHERE id = ?", id).Scan(&stored)
	if err != nil {
		return nil, false, err
	}

	// A stored row the scope predicate hides counts as nonexistent, so
	// writing over it reports a create even though it is an UPDATE.
	visible := stored
	if sc.where != "" && stored > 0 {
		query := "SELECT COUNT(*) FROM " + sc.table + " WHERE id = ?" + sc.filterClause("AND")
		if err := tx.QueryRow(query, id).Scan(&visible); err != nil {
			return nil, false, err
		}
	}

	if stored > 0 {
		_, err = tx.Exec("UPDATE "+sc.table+" SET doc = ? WHERE id = ?", string(doc), id)
	} else {
		_, err = tx.Exec(
			"INSERT INTO "+sc.table+" (id, doc, seq) VALUES (?, ?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM "+sc.table+"))",
			id, string(doc),
		)
	}
	if err != nil {
		return nil, false, err
	}
	if err := tx.Commit(); err != nil {
		return nil, false, err
	}

	saved, err := sc.hydrate(string(doc))
	if err != nil {
		return nil, false, err
	}
	return saved, visible == 0, nil
}

// DeleteByID removes the row under id if it is in scope.
func (sc *SQLiteCollection) DeleteByID(id string) (bool, error) {
	query := "DELETE FROM " + sc.table + " WHERE id = ?" + sc.filterClause("AND")
	res, err := sc.db.Exec(query, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// DeleteAll removes every row in scope and reports how many.
func (sc *SQLiteCollection) DeleteAll() (int, error) {
	res, err := sc.db.Exec("DELETE FROM " + sc.table + sc.filterClause("WHERE"))
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

func (sc *SQLiteCollection) hydrate(doc string) (Representation, error) {
	var d Dict
	if err := json.Unmarshal([]byte(doc), &d); err != nil {
		return nil, err
	}
	rep := sc.factory()
	if err := rep.PopulateFromDict(d); err != nil {
		return nil, err
	}
	return rep, nil
}
