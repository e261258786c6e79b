package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rcliao/wordfreq/internal/model"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dir := t.TempDir()
	s, err := NewSQLiteStore(filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleParams() RecordParams {
	return RecordParams{
		InputPath:    "/tmp/doc.txt",
		SettingsPath: "/tmp/settings.txt",
		OutputPath:   "/tmp/doc.xlsx",
		Format:       "xlsx",
		Patterns: []model.RunPattern{
			{Raw: "X~Y", Kind: model.Wildcard, Count: 1},
			{Raw: "hello world", Kind: model.Literal, Count: 0},
		},
		Entries: []model.Entry{
			{Term: "start", Count: 1},
			{Term: "end", Count: 1},
			{Term: "X~Y", Count: 1},
		},
	}
}

func TestRecordAndGet(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	run, err := s.Record(ctx, sampleParams())
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if run.ID == "" {
		t.Error("expected non-empty ID")
	}
	if run.Status != model.StatusOK {
		t.Errorf("expected status ok, got %q", run.Status)
	}

	got, err := s.Get(ctx, run.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.TermCount != 3 || got.PatternCount != 2 {
		t.Errorf("expected 3 terms and 2 patterns, got %d and %d", got.TermCount, got.PatternCount)
	}
	if len(got.Entries) != 3 || got.Entries[0].Term != "start" || got.Entries[2].Term != "X~Y" {
		t.Errorf("entries not in recorded order: %+v", got.Entries)
	}
	if len(got.Patterns) != 2 || got.Patterns[0].Kind != model.Wildcard {
		t.Errorf("unexpected patterns %+v", got.Patterns)
	}
	if got.SettingsPath != "/tmp/settings.txt" {
		t.Errorf("expected settings path, got %q", got.SettingsPath)
	}
}

func TestGet_ByPrefix(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	run, _ := s.Record(ctx, sampleParams())
	got, err := s.Get(ctx, run.ID[:20])
	if err != nil {
		t.Fatalf("get by prefix: %v", err)
	}
	if got.ID != run.ID {
		t.Errorf("expected %s, got %s", run.ID, got.ID)
	}
}

func TestGet_NotFound(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Get(context.Background(), "01ZZZZZZZZZZZZZZZZZZZZZZZZ")
	if !errors.Is(err, ErrRunNotFound) {
		t.Errorf("expected ErrRunNotFound, got %v", err)
	}
}

func TestList(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	first, _ := s.Record(ctx, sampleParams())
	failed := sampleParams()
	failed.Status = model.StatusFailed
	failed.Error = "read text: no such file"
	failed.Entries = nil
	second, _ := s.Record(ctx, failed)

	all, err := s.List(ctx, ListParams{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2, got %d", len(all))
	}
	if all[0].ID != second.ID || all[1].ID != first.ID {
		t.Errorf("expected newest first")
	}
	if all[0].Entries != nil {
		t.Error("list should not load entries")
	}

	onlyFailed, _ := s.List(ctx, ListParams{Status: model.StatusFailed})
	if len(onlyFailed) != 1 || onlyFailed[0].Error == "" {
		t.Errorf("expected 1 failed run with error, got %+v", onlyFailed)
	}

	limited, _ := s.List(ctx, ListParams{Limit: 1})
	if len(limited) != 1 {
		t.Errorf("expected limit 1, got %d", len(limited))
	}
}

func TestRm(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	run, _ := s.Record(ctx, sampleParams())
	deleted, err := s.Rm(ctx, strings.ToLower(run.ID[:12]))
	if err != nil {
		t.Fatalf("rm: %v", err)
	}
	if deleted.ID != run.ID {
		t.Errorf("expected resolved id %s, got %s", run.ID, deleted.ID)
	}
	if deleted.InputPath != "/tmp/doc.txt" || deleted.TermCount != 3 {
		t.Errorf("unexpected deleted run %+v", deleted)
	}
	if _, err := s.Rm(ctx, run.ID); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("expected ErrRunNotFound on second rm, got %v", err)
	}
	if _, err := s.Get(ctx, run.ID); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("expected ErrRunNotFound after rm, got %v", err)
	}

	var n int
	s.db.QueryRow(`SELECT COUNT(*) FROM run_entries`).Scan(&n)
	if n != 0 {
		t.Errorf("expected entries removed with run, got %d", n)
	}
}

func TestStats(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "test.db")
	s, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	ctx := context.Background()

	s.Record(ctx, sampleParams())
	s.Record(ctx, sampleParams())
	last, _ := s.Record(ctx, RecordParams{InputPath: "/x.txt", Format: "csv", Status: model.StatusFailed, Error: "boom"})

	stats, err := s.Stats(ctx, dbPath, 0)
	if err != nil {
		t.Fatal(err)
	}
	if stats.TotalRuns != 3 || stats.FailedRuns != 1 {
		t.Errorf("expected 3 runs with 1 failed, got %d and %d", stats.TotalRuns, stats.FailedRuns)
	}
	if stats.TotalEntries != 6 {
		t.Errorf("expected 6 entries, got %d", stats.TotalEntries)
	}
	if len(stats.TopPatterns) != 2 || stats.TopPatterns[0].Raw != "X~Y" || stats.TopPatterns[0].Count != 2 {
		t.Errorf("unexpected top patterns %+v", stats.TopPatterns)
	}
	if stats.DBSizeBytes == 0 {
		t.Error("expected non-zero db size")
	}
	if stats.LastRunID != last.ID {
		t.Errorf("expected last run %s, got %s", last.ID, stats.LastRunID)
	}

	top1, err := s.Stats(ctx, dbPath, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(top1.TopPatterns) != 1 || top1.TopPatterns[0].Raw != "X~Y" {
		t.Errorf("expected only X~Y with top 1, got %+v", top1.TopPatterns)
	}
}

func TestDBPathCreation(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "sub", "dir", "test.db")
	s, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	s.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("expected db file to be created")
	}
}
