package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rcliao/wordfreq/internal/model"
	"github.com/rcliao/wordfreq/internal/store"
)

func TestRm_PrintsResolvedID(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("WORDFREQ_CONFIG", "")
	dbPath = filepath.Join(dir, "history.db")
	t.Cleanup(func() { dbPath, cfg = "", nil })
	if err := loadConfig(); err != nil {
		t.Fatalf("load config: %v", err)
	}

	s, err := openStore()
	if err != nil {
		t.Fatal(err)
	}
	run, err := s.Record(context.Background(), store.RecordParams{
		InputPath: "/tmp/doc.txt",
		Format:    "csv",
		Status:    model.StatusOK,
		Entries:   []model.Entry{{Term: "word", Count: 2}},
	})
	s.Close()
	if err != nil {
		t.Fatal(err)
	}

	cmd, _, err := RootCmd.Find([]string{"rm"})
	if err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetContext(context.Background())
	t.Cleanup(func() { cmd.SetOut(nil) })

	runRm(cmd, []string{strings.ToLower(run.ID[:10])})

	var got struct {
		OK    bool   `json:"ok"`
		ID    string `json:"id"`
		Input string `json:"input"`
		Terms int    `json:"terms"`
	}
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("decode %q: %v", out.String(), err)
	}
	if !got.OK || got.ID != run.ID {
		t.Errorf("expected resolved id %s, got %+v", run.ID, got)
	}
	if got.Input != "/tmp/doc.txt" || got.Terms != 1 {
		t.Errorf("unexpected output %+v", got)
	}
}
