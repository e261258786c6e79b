package store

import (
	"context"
	"os"
)

// Stats holds database statistics.
type Stats struct {
	DBPath       string        `json:"db_path"`
	DBSizeBytes  int64         `json:"db_size_bytes"`
	TotalRuns    int           `json:"total_runs"`
	FailedRuns   int           `json:"failed_runs"`
	TotalEntries int           `json:"total_entries"`
	LastRunID    string        `json:"last_run_id,omitempty"`
	LastRunAt    string        `json:"last_run_at,omitempty"`
	TopPatterns  []PatternStat `json:"top_patterns"`
}

// PatternStat holds the accumulated count of one pattern across runs.
type PatternStat struct {
	Raw   string `json:"raw"`
	Runs  int    `json:"runs"`
	Count int    `json:"count"`
}

// Stats returns database statistics with the top patterns by accumulated
// count. A non-positive top defaults to 10.
func (s *SQLiteStore) Stats(ctx context.Context, dbPath string, top int) (*Stats, error) {
	if top <= 0 {
		top = 10
	}
	st := &Stats{DBPath: dbPath}

	// DB file size
	if info, err := os.Stat(dbPath); err == nil {
		st.DBSizeBytes = info.Size()
	}

	s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM runs`).Scan(&st.TotalRuns)
	s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM runs WHERE status != 'ok'`).Scan(&st.FailedRuns)
	s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM run_entries`).Scan(&st.TotalEntries)
	s.db.QueryRowContext(ctx, `SELECT id, created_at FROM runs ORDER BY created_at DESC, id DESC LIMIT 1`).
		Scan(&st.LastRunID, &st.LastRunAt)

	rows, err := s.db.QueryContext(ctx, `
		SELECT raw, COUNT(DISTINCT run_id) AS runs, SUM(count) AS total
		FROM run_patterns
		GROUP BY raw ORDER BY total DESC, raw LIMIT ?`, top)
	if err != nil {
		return st, err
	}
	defer rows.Close()

	for rows.Next() {
		var ps PatternStat
		rows.Scan(&ps.Raw, &ps.Runs, &ps.Count)
		st.TopPatterns = append(st.TopPatterns, ps)
	}

	return st, nil
}
