package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rcliao/wordfreq/internal/counter"
	"github.com/rcliao/wordfreq/internal/model"
	"github.com/rcliao/wordfreq/internal/pattern"
)

func readTextfile(t *testing.T, m *Metrics) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "wordfreq.prom")
	if err := m.WriteTextfile(path); err != nil {
		t.Fatalf("write textfile: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func assertContains(t *testing.T, out string, want ...string) {
	t.Helper()
	for _, w := range want {
		if !strings.Contains(out, w) {
			t.Errorf("expected %q in textfile:\n%s", w, out)
		}
	}
}

func TestObserveAndWriteTextfile(t *testing.T) {
	m := New()
	res := counter.Count("one two [three] 4 가", pattern.Parse([]string{"[~]", "one"}), counter.DefaultOptions())
	m.ObserveResult(res)
	m.ObserveRun(model.StatusOK)

	out := readTextfile(t, m)
	assertContains(t, out,
		`wordfreq_last_run_success 1`,
		`wordfreq_last_run_pattern_matches{kind="literal"} 1`,
		`wordfreq_last_run_pattern_matches{kind="wildcard"} 1`,
		`wordfreq_last_run_residual_tokens 1`,
		`wordfreq_last_run_excluded_tokens 2`,
		`wordfreq_last_run_terms 3`,
		`wordfreq_last_run_timestamp_seconds `,
	)
	if strings.Contains(out, "_total") {
		t.Errorf("expected no counters in textfile:\n%s", out)
	}
}

func TestObserve_ReplacesPreviousRun(t *testing.T) {
	m := New()
	m.ObserveResult(counter.Count("a b [c]", pattern.Parse([]string{"[~]"}), counter.DefaultOptions()))
	m.ObserveRun(model.StatusOK)

	m.ObserveResult(counter.Count("x y", nil, counter.DefaultOptions()))
	m.ObserveRun("boom")

	assertContains(t, readTextfile(t, m),
		`wordfreq_last_run_success 0`,
		`wordfreq_last_run_pattern_matches{kind="literal"} 0`,
		`wordfreq_last_run_pattern_matches{kind="wildcard"} 0`,
		`wordfreq_last_run_residual_tokens 2`,
		`wordfreq_last_run_terms 2`,
	)
}

func TestWriteTextfile_EmptyPath(t *testing.T) {
	if err := New().WriteTextfile(""); err != nil {
		t.Errorf("expected no-op, got %v", err)
	}
}

func TestNew_IndependentRegistries(t *testing.T) {
	a, b := New(), New()
	a.ObserveRun(model.StatusOK)
	mfs, err := b.Registry().Gather()
	if err != nil {
		t.Fatal(err)
	}
	for _, mf := range mfs {
		if mf.GetName() != "wordfreq_last_run_success" {
			continue
		}
		if v := mf.GetMetric()[0].GetGauge().GetValue(); v != 0 {
			t.Errorf("expected second registry untouched, got %v", v)
		}
	}
}
