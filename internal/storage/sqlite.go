package storage

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"topicflow/internal/graph"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

const sqliteSchema = `
	CREATE TABLE IF NOT EXISTS diagrams (
		id TEXT PRIMARY KEY,
		type TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS nodes (
		id TEXT PRIMARY KEY,
		diagram_id TEXT NOT NULL REFERENCES diagrams(id),
		seq INTEGER NOT NULL,
		type TEXT NOT NULL,
		label TEXT NOT NULL,
		showing INTEGER NOT NULL DEFAULT 1,
		score TEXT NOT NULL DEFAULT '-',
		x REAL NOT NULL DEFAULT 0,
		y REAL NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS edges (
		id TEXT PRIMARY KEY,
		diagram_id TEXT NOT NULL REFERENCES diagrams(id),
		seq INTEGER NOT NULL,
		source TEXT NOT NULL,
		target TEXT NOT NULL,
		label TEXT NOT NULL,
		score TEXT NOT NULL DEFAULT '-'
	);
`

// SQLiteStore keeps a topic in a SQLite database.
type SQLiteStore struct {
	dbPath string
}

// NewSQLiteStore returns a store for the database at dbPath.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	trimmed := strings.TrimSpace(dbPath)
	if trimmed == "" {
		return nil, storageError("open sqlite store", fmt.Errorf("database path is required"))
	}
	return &SQLiteStore{dbPath: trimmed}, nil
}

// Path returns the database path.
func (s *SQLiteStore) Path() string {
	return s.dbPath
}

// buildSQLiteDSN creates a WAL DSN; readOnly opens with mode=ro, otherwise
// the file is created when missing.
func buildSQLiteDSN(dbPath string, readOnly bool) string {
	u := url.URL{
		Scheme: "file",
		Path:   filepath.ToSlash(dbPath),
	}
	q := url.Values{}
	if readOnly {
		q.Set("mode", "ro")
	} else {
		q.Set("mode", "rwc")
	}
	q.Set("_journal_mode", "WAL")
	q.Set("_busy_timeout", "3000")
	q.Set("_foreign_keys", "on")
	u.RawQuery = q.Encode()
	return u.String()
}

func (s *SQLiteStore) openDB(ctx context.Context, readOnly bool) (*sql.DB, error) {
	db, err := sql.Open("sqlite", buildSQLiteDSN(s.dbPath, readOnly))
	if err != nil {
		return nil, storageError("open sqlite db", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, storageError("ping sqlite db", err)
	}
	return db, nil
}

// Init creates the schema if it does not exist yet.
func (s *SQLiteStore) Init(ctx context.Context) error {
	db, err := s.openDB(ctx, false)
	if err != nil {
		return err
	}
	defer func() {
		_ = db.Close()
	}()
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		return storageError("create schema", err)
	}
	return nil
}

// Load reads every diagram and validates the result.
func (s *SQLiteStore) Load(ctx context.Context) (Topic, error) {
	db, err := s.openDB(ctx, true)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = db.Close()
	}()

	topic, err := loadDiagrams(ctx, db)
	if err != nil {
		return nil, err
	}
	if err := loadNodes(ctx, db, topic); err != nil {
		return nil, err
	}
	if err := loadEdges(ctx, db, topic); err != nil {
		return nil, err
	}
	if err := graph.ValidateDiagrams(topic); err != nil {
		return nil, err
	}
	return topic, nil
}

func loadDiagrams(ctx context.Context, db *sql.DB) (Topic, error) {
	rows, err := db.QueryContext(ctx, `SELECT id, type FROM diagrams ORDER BY id`)
	if err != nil {
		return nil, storageError("query diagrams", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	topic := make(Topic)
	for rows.Next() {
		var id, typ string
		if err := rows.Scan(&id, &typ); err != nil {
			return nil, storageError("scan diagram", err)
		}
		topic[id] = &graph.Diagram{ID: id, Type: graph.DiagramType(typ), Nodes: []*graph.Node{}, Edges: []*graph.Edge{}}
	}
	if err := rows.Err(); err != nil {
		return nil, storageError("read diagrams", err)
	}
	return topic, nil
}

func loadNodes(ctx context.Context, db *sql.DB, topic Topic) error {
	rows, err := db.QueryContext(ctx, `
		SELECT id, diagram_id, type, label, showing, score, x, y
		FROM nodes
		ORDER BY diagram_id, seq, id
	`)
	if err != nil {
		return storageError("query nodes", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	for rows.Next() {
		var (
			n       graph.Node
			typ     string
			score   string
			showing int
		)
		if err := rows.Scan(&n.ID, &n.Data.DiagramID, &typ, &n.Data.Label, &showing, &score, &n.Position.X, &n.Position.Y); err != nil {
			return storageError("scan node", err)
		}
		n.Type = graph.NodeType(typ)
		n.Data.Score = graph.Score(score)
		n.Data.Showing = showing != 0
		d, ok := topic[n.Data.DiagramID]
		if !ok {
			return storageError("load nodes", fmt.Errorf("node %s references unknown diagram %q", n.ID, n.Data.DiagramID))
		}
		node := n
		d.Nodes = append(d.Nodes, &node)
	}
	if err := rows.Err(); err != nil {
		return storageError("read nodes", err)
	}
	return nil
}

func loadEdges(ctx context.Context, db *sql.DB, topic Topic) error {
	rows, err := db.QueryContext(ctx, `
		SELECT id, diagram_id, source, target, label, score
		FROM edges
		ORDER BY diagram_id, seq, id
	`)
	if err != nil {
		return storageError("query edges", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	for rows.Next() {
		var (
			e     graph.Edge
			label string
			score string
		)
		if err := rows.Scan(&e.ID, &e.Data.DiagramID, &e.Source, &e.Target, &label, &score); err != nil {
			return storageError("scan edge", err)
		}
		e.Label = graph.RelationName(label)
		e.Data.Score = graph.Score(score)
		d, ok := topic[e.Data.DiagramID]
		if !ok {
			return storageError("load edges", fmt.Errorf("edge %s references unknown diagram %q", e.ID, e.Data.DiagramID))
		}
		edge := e
		d.Edges = append(d.Edges, &edge)
	}
	if err := rows.Err(); err != nil {
		return storageError("read edges", err)
	}
	return nil
}

// Save validates topic and replaces the stored topic in one transaction.
// Selection is not persisted.
func (s *SQLiteStore) Save(ctx context.Context, topic Topic) error {
	if err := graph.ValidateDiagrams(topic); err != nil {
		return err
	}
	if err := s.Init(ctx); err != nil {
		return err
	}
	db, err := s.openDB(ctx, false)
	if err != nil {
		return err
	}
	defer func() {
		_ = db.Close()
	}()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return storageError("begin transaction", err)
	}
	if err := writeTopic(ctx, tx, topic); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return storageError("commit topic", err)
	}
	return nil
}

func writeTopic(ctx context.Context, tx *sql.Tx, topic Topic) error {
	for _, table := range []string{"edges", "nodes", "diagrams"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return storageError("clear "+table, err)
		}
	}

	for _, id := range orderedIDs(topic) {
		d := topic[id]
		if _, err := tx.ExecContext(ctx, `INSERT INTO diagrams (id, type) VALUES (?, ?)`, d.ID, string(d.Type)); err != nil {
			return storageError("insert diagram "+d.ID, err)
		}
		for seq, n := range d.Nodes {
			showing := 0
			if n.Data.Showing {
				showing = 1
			}
			_, err := tx.ExecContext(ctx, `
				INSERT INTO nodes (id, diagram_id, seq, type, label, showing, score, x, y)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				n.ID, d.ID, seq, string(n.Type), n.Data.Label, showing, string(scoreOrUnset(n.Data.Score)), n.Position.X, n.Position.Y,
			)
			if err != nil {
				return storageError("insert node "+n.ID, err)
			}
		}
		for seq, e := range d.Edges {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO edges (id, diagram_id, seq, source, target, label, score)
				VALUES (?, ?, ?, ?, ?, ?, ?)`,
				e.ID, d.ID, seq, e.Source, e.Target, string(e.Label), string(scoreOrUnset(e.Data.Score)),
			)
			if err != nil {
				return storageError("insert edge "+e.ID, err)
			}
		}
	}
	return nil
}

func scoreOrUnset(s graph.Score) graph.Score {
	if s == "" {
		return graph.ScoreUnset
	}
	return s
}
