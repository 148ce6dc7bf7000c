package store

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bloodmagesoftware/floorplan/plan"
	"github.com/google/uuid"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// ErrNotFound is returned when no plan has the requested id.
var ErrNotFound = errors.New("plan not found")

const schema = `
CREATE TABLE IF NOT EXISTS plans (
    id         TEXT PRIMARY KEY,
    name       TEXT NOT NULL,
    body       BLOB NOT NULL,
    created_at INTEGER NOT NULL,
    updated_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS plans_updated_at ON plans (updated_at);
`

// Record is a saved plan without its body.
type Record struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Store keeps plans as YAML documents in SQLite. Timestamps are unix milliseconds.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

func New(db *sql.DB) *Store {
	return &Store{db: db, now: time.Now}
}

// Open opens (or creates) the database at dbPath and applies the schema.
func Open(ctx context.Context, dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir db dir: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?cache=shared&mode=rwc&_pragma=busy_timeout=5000", dbPath)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	s := New(db)
	if err := s.Init(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Init creates the plans table if it does not exist yet.
func (s *Store) Init(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// Ping reports whether the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Save stores p under id, or under a new id when id is empty. Returns the id.
func (s *Store) Save(ctx context.Context, id string, p *plan.Plan) (string, error) {
	if id == "" {
		id = uuid.NewString()
	}

	var body bytes.Buffer
	if err := p.Encode(&body); err != nil {
		return "", fmt.Errorf("encode plan: %w", err)
	}

	now := s.now().UnixMilli()
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO plans (id, name, body, created_at, updated_at)
        VALUES (?, ?, ?, ?, ?)
        ON CONFLICT(id) DO UPDATE SET
            name = excluded.name,
            body = excluded.body,
            updated_at = excluded.updated_at
    `, id, p.Name, body.Bytes(), now, now)
	if err != nil {
		return "", fmt.Errorf("save plan %s: %w", id, err)
	}
	return id, nil
}

// Get loads the plan stored under id.
func (s *Store) Get(ctx context.Context, id string) (*plan.Plan, error) {
	row := s.db.QueryRowContext(ctx, `SELECT body FROM plans WHERE id = ?`, id)

	var body []byte
	if err := row.Scan(&body); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	p := plan.New()
	if err := p.Decode(bytes.NewReader(body)); err != nil {
		return nil, fmt.Errorf("decode plan %s: %w", id, err)
	}
	return p, nil
}

// List returns every saved plan, most recently updated first.
func (s *Store) List(ctx context.Context) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT id, name, created_at, updated_at
        FROM plans
        ORDER BY updated_at DESC, id
    `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]Record, 0)
	for rows.Next() {
		var (
			r                Record
			created, updated int64
		)
		if err := rows.Scan(&r.ID, &r.Name, &created, &updated); err != nil {
			return nil, err
		}
		r.CreatedAt = time.UnixMilli(created).UTC()
		r.UpdatedAt = time.UnixMilli(updated).UTC()
		records = append(records, r)
	}
	return records, rows.Err()
}

// Delete removes the plan stored under id.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM plans WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete plan %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
