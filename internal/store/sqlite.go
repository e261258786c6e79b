package store

import (
	"context"
	"database/sql"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"

	"github.com/rcliao/wordfreq/internal/model"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db      *sql.DB
	entropy *rand.Rand
}

var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore opens or creates a SQLite database at the given path.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &SQLiteStore{
		db:      db,
		entropy: rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) newID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), s.entropy).String()
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id            TEXT PRIMARY KEY,
		input_path    TEXT NOT NULL,
		settings_path TEXT,
		output_path   TEXT,
		format        TEXT NOT NULL,
		status        TEXT NOT NULL,
		error         TEXT,
		term_count    INTEGER NOT NULL DEFAULT 0,
		pattern_count INTEGER NOT NULL DEFAULT 0,
		created_at    TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at DESC);
	CREATE INDEX IF NOT EXISTS idx_runs_status ON runs(status);

	CREATE TABLE IF NOT EXISTS run_patterns (
		run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
		seq    INTEGER NOT NULL,
		raw    TEXT NOT NULL,
		kind   TEXT NOT NULL,
		count  INTEGER NOT NULL,
		PRIMARY KEY (run_id, seq)
	);

	CREATE TABLE IF NOT EXISTS run_entries (
		run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
		seq    INTEGER NOT NULL,
		term   TEXT NOT NULL,
		count  INTEGER NOT NULL,
		PRIMARY KEY (run_id, seq)
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

func (s *SQLiteStore) Record(ctx context.Context, p RecordParams) (*model.Run, error) {
	now := time.Now().UTC()
	id := s.newID()

	status := p.Status
	if status == "" {
		status = model.StatusOK
	}

	var settingsPtr, outputPtr, errPtr *string
	if p.SettingsPath != "" {
		settingsPtr = &p.SettingsPath
	}
	if p.OutputPath != "" {
		outputPtr = &p.OutputPath
	}
	if p.Error != "" {
		errPtr = &p.Error
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, input_path, settings_path, output_path, format, status, error, term_count, pattern_count, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, p.InputPath, settingsPtr, outputPtr, p.Format, status, errPtr,
		len(p.Entries), len(p.Patterns), now.Format(timeFormat))
	if err != nil {
		return nil, fmt.Errorf("insert run: %w", err)
	}

	for i, rp := range p.Patterns {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO run_patterns (run_id, seq, raw, kind, count) VALUES (?, ?, ?, ?, ?)`,
			id, i, rp.Raw, string(rp.Kind), rp.Count)
		if err != nil {
			return nil, fmt.Errorf("insert pattern: %w", err)
		}
	}

	for i, e := range p.Entries {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO run_entries (run_id, seq, term, count) VALUES (?, ?, ?, ?)`,
			id, i, e.Term, e.Count)
		if err != nil {
			return nil, fmt.Errorf("insert entry: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &model.Run{
		ID:           id,
		InputPath:    p.InputPath,
		SettingsPath: p.SettingsPath,
		OutputPath:   p.OutputPath,
		Format:       p.Format,
		Status:       status,
		Error:        p.Error,
		TermCount:    len(p.Entries),
		PatternCount: len(p.Patterns),
		CreatedAt:    now,
		Patterns:     p.Patterns,
		Entries:      p.Entries,
	}, nil
}

func (s *SQLiteStore) Get(ctx context.Context, id string) (*model.Run, error) {
	fullID, err := s.resolveID(ctx, id)
	if err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE id = ?`, fullID)
	run, err := scanRun(row)
	if err != nil {
		return nil, err
	}

	prows, err := s.db.QueryContext(ctx,
		`SELECT raw, kind, count FROM run_patterns WHERE run_id = ? ORDER BY seq`, fullID)
	if err != nil {
		return nil, err
	}
	defer prows.Close()
	for prows.Next() {
		var rp model.RunPattern
		var kind string
		if err := prows.Scan(&rp.Raw, &kind, &rp.Count); err != nil {
			return nil, err
		}
		rp.Kind = model.PatternKind(kind)
		run.Patterns = append(run.Patterns, rp)
	}
	if err := prows.Err(); err != nil {
		return nil, err
	}

	erows, err := s.db.QueryContext(ctx,
		`SELECT term, count FROM run_entries WHERE run_id = ? ORDER BY seq`, fullID)
	if err != nil {
		return nil, err
	}
	defer erows.Close()
	for erows.Next() {
		var e model.Entry
		if err := erows.Scan(&e.Term, &e.Count); err != nil {
			return nil, err
		}
		run.Entries = append(run.Entries, e)
	}
	if err := erows.Err(); err != nil {
		return nil, err
	}

	return &run, nil
}

func (s *SQLiteStore) List(ctx context.Context, p ListParams) ([]model.Run, error) {
	limit := p.Limit
	if limit <= 0 {
		limit = 20
	}

	where := []string{"1 = 1"}
	args := []interface{}{}
	if p.Status != "" {
		where = append(where, "status = ?")
		args = append(args, p.Status)
	}

	query := fmt.Sprintf(`SELECT %s FROM runs WHERE %s ORDER BY created_at DESC, id DESC LIMIT ?`,
		runColumns, strings.Join(where, " AND "))
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []model.Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

func (s *SQLiteStore) Rm(ctx context.Context, id string) (*model.Run, error) {
	fullID, err := s.resolveID(ctx, id)
	if err != nil {
		return nil, err
	}
	run, err := scanRun(s.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE id = ?`, fullID))
	if err != nil {
		return nil, err
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, fullID); err != nil {
		return nil, fmt.Errorf("delete run: %w", err)
	}
	return &run, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// resolveID expands a unique ID prefix to the full run ID.
func (s *SQLiteStore) resolveID(ctx context.Context, id string) (string, error) {
	id = strings.ToUpper(strings.TrimSpace(id))
	if id == "" {
		return "", fmt.Errorf("%w: empty id", ErrRunNotFound)
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id FROM runs WHERE id = ? OR substr(id, 1, ?) = ? ORDER BY id LIMIT 2`, id, len(id), id)
	if err != nil {
		return "", err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var found string
		if err := rows.Scan(&found); err != nil {
			return "", err
		}
		ids = append(ids, found)
	}
	switch {
	case len(ids) == 0:
		return "", fmt.Errorf("%w: %s", ErrRunNotFound, id)
	case len(ids) > 1 && ids[0] != id:
		return "", fmt.Errorf("ambiguous run id prefix %q", id)
	}
	return ids[0], nil
}

// timeFormat has fixed-width fractional seconds so stored timestamps sort
// lexically.
const timeFormat = "2006-01-02T15:04:05.000000000Z07:00"

const runColumns = `id, input_path, settings_path, output_path, format, status, error,
	term_count, pattern_count, created_at`

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanRun(row scanner) (model.Run, error) {
	var r model.Run
	var settings, output, errText sql.NullString
	var createdAt string

	err := row.Scan(
		&r.ID, &r.InputPath, &settings, &output, &r.Format, &r.Status, &errText,
		&r.TermCount, &r.PatternCount, &createdAt,
	)
	if err == sql.ErrNoRows {
		return r, ErrRunNotFound
	}
	if err != nil {
		return r, err
	}

	r.CreatedAt, _ = time.Parse(timeFormat, createdAt)
	if settings.Valid {
		r.SettingsPath = settings.String
	}
	if output.Valid {
		r.OutputPath = output.String
	}
	if errText.Valid {
		r.Error = errText.String
	}
	return r, nil
}
