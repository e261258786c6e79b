// Package runner executes one count job end to end: read the text and
// settings, count, write the table, and record the outcome.
package runner

import (
	"context"
	"errors"
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/rcliao/wordfreq/internal/counter"
	"github.com/rcliao/wordfreq/internal/export"
	"github.com/rcliao/wordfreq/internal/logger"
	"github.com/rcliao/wordfreq/internal/metrics"
	"github.com/rcliao/wordfreq/internal/model"
	"github.com/rcliao/wordfreq/internal/pattern"
	"github.com/rcliao/wordfreq/internal/store"
)

// Job describes one count run.
type Job struct {
	TextPath     string
	SettingsPath string // optional
	OutputPath   string // derived from TextPath when empty
	Format       string
	Sheet        string
	Options      counter.Options
}

// Report summarises a successful run.
type Report struct {
	RunID    string                 `json:"id,omitempty"`
	Output   string                 `json:"output"`
	Format   string                 `json:"format"`
	Terms    int                    `json:"terms"`
	Patterns []counter.PatternCount `json:"patterns"`
	Tokens   int                    `json:"tokens"`
	Excluded int                    `json:"excluded"`

	Entries []model.Entry `json:"entries,omitempty"`
}

// RunError is a failed run. Secondary holds failures that happened while
// reporting the primary one, such as an unwritable error log.
type RunError struct {
	Err       error
	Secondary []error
}

func (e *RunError) Error() string { return e.Err.Error() }

func (e *RunError) Unwrap() error { return e.Err }

// Runner carries the collaborators shared by runs. Store and Metrics may be
// nil.
type Runner struct {
	Store           store.Store
	Metrics         *metrics.Metrics
	ErrorLog        string
	MetricsTextfile string
}

// ErrInvalidUTF8 is returned when the text file is not valid UTF-8.
var ErrInvalidUTF8 = errors.New("not valid UTF-8")

// Run executes job. A job without a text path returns counter.ErrNoInput
// and leaves no trace: no error log, no history row. Any other failure is a
// *RunError.
func (r *Runner) Run(ctx context.Context, job Job) (*Report, error) {
	log := logger.WithComponent("runner")
	if job.TextPath == "" {
		return nil, counter.ErrNoInput
	}

	rep, err := r.run(job)
	if err != nil {
		log.Error("count failed", "input", job.TextPath, "error", err)
		return nil, &RunError{Err: err, Secondary: r.fail(ctx, job, err)}
	}

	var secondary []error
	if r.Store != nil {
		run, err := r.Store.Record(ctx, store.RecordParams{
			InputPath:    job.TextPath,
			SettingsPath: job.SettingsPath,
			OutputPath:   rep.Output,
			Format:       rep.Format,
			Status:       model.StatusOK,
			Patterns:     runPatterns(rep.Patterns),
			Entries:      rep.Entries,
		})
		if err != nil {
			log.Warn("record run failed", "error", err)
		} else {
			rep.RunID = run.ID
		}
	}
	if r.Metrics != nil {
		r.Metrics.ObserveRun(model.StatusOK)
		if err := r.Metrics.WriteTextfile(r.MetricsTextfile); err != nil {
			secondary = append(secondary, fmt.Errorf("write metrics textfile: %w", err))
		}
	}
	for _, err := range secondary {
		log.Warn("post-run step failed", "error", err)
	}

	log.Info("count complete", "input", job.TextPath, "output", rep.Output, "terms", rep.Terms)
	return rep, nil
}

func (r *Runner) run(job Job) (*Report, error) {
	data, err := os.ReadFile(job.TextPath)
	if err != nil {
		return nil, fmt.Errorf("read text: %w", err)
	}
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("read text: %s: %w", job.TextPath, ErrInvalidUTF8)
	}

	var patterns []model.Pattern
	if job.SettingsPath != "" {
		f, err := os.Open(job.SettingsPath)
		if err != nil {
			return nil, fmt.Errorf("read settings: %w", err)
		}
		patterns, err = pattern.Read(f)
		f.Close()
		if err != nil {
			return nil, err
		}
	}

	format := job.Format
	if format == "" && job.OutputPath != "" {
		format = export.FormatFromPath(job.OutputPath)
	}
	w, err := export.New(export.Options{Format: format, Sheet: job.Sheet})
	if err != nil {
		return nil, err
	}
	out := job.OutputPath
	if out == "" {
		out = export.OutputPath(job.TextPath, w.Format())
	}

	res := counter.Count(string(data), patterns, job.Options)
	entries := res.Final.Entries()
	if err := w.Write(out, entries); err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}
	if r.Metrics != nil {
		r.Metrics.ObserveResult(res)
	}

	return &Report{
		Output:   out,
		Format:   w.Format(),
		Terms:    len(entries),
		Patterns: res.Applied,
		Tokens:   res.Stats.Tokens,
		Excluded: res.Stats.Excluded,
		Entries:  entries,
	}, nil
}

// fail records a failed run everywhere it can and returns what could not be
// recorded.
func (r *Runner) fail(ctx context.Context, job Job, cause error) []error {
	var secondary []error
	if err := WriteErrorLog(r.ErrorLog, cause); err != nil {
		secondary = append(secondary, err)
	}
	if r.Store != nil {
		_, err := r.Store.Record(ctx, store.RecordParams{
			InputPath:    job.TextPath,
			SettingsPath: job.SettingsPath,
			OutputPath:   job.OutputPath,
			Format:       job.Format,
			Status:       model.StatusFailed,
			Error:        cause.Error(),
		})
		if err != nil {
			secondary = append(secondary, fmt.Errorf("record failed run: %w", err))
		}
	}
	if r.Metrics != nil {
		r.Metrics.ObserveRun(model.StatusFailed)
		if err := r.Metrics.WriteTextfile(r.MetricsTextfile); err != nil {
			secondary = append(secondary, fmt.Errorf("write metrics textfile: %w", err))
		}
	}
	return secondary
}

// WriteErrorLog overwrites path with a one-line description of err. An empty
// path disables the log.
func WriteErrorLog(path string, err error) error {
	if path == "" {
		return nil
	}
	msg := fmt.Sprintf("error processing files: %v\n", err)
	if werr := os.WriteFile(path, []byte(msg), 0o644); werr != nil {
		return fmt.Errorf("write error log: %w", werr)
	}
	return nil
}

func runPatterns(applied []counter.PatternCount) []model.RunPattern {
	out := make([]model.RunPattern, 0, len(applied))
	for _, a := range applied {
		out = append(out, model.RunPattern{Raw: a.Pattern.Raw, Kind: a.Pattern.Kind, Count: a.Count})
	}
	return out
}
