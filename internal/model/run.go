package model

import "time"

// Run is a recorded execution of the counter.
type Run struct {
	ID           string       `json:"id"`
	InputPath    string       `json:"input_path"`
	SettingsPath string       `json:"settings_path,omitempty"`
	OutputPath   string       `json:"output_path,omitempty"`
	Format       string       `json:"format"`
	Status       string       `json:"status"`
	Error        string       `json:"error,omitempty"`
	TermCount    int          `json:"terms"`
	PatternCount int          `json:"patterns"`
	CreatedAt    time.Time    `json:"created_at"`
	Patterns     []RunPattern `json:"pattern_counts,omitempty"`
	Entries      []Entry      `json:"entries,omitempty"`
}

// RunPattern is the per-pattern count recorded with a run.
type RunPattern struct {
	Raw   string      `json:"raw"`
	Kind  PatternKind `json:"kind"`
	Count int         `json:"count"`
}

// Run statuses.
const (
	StatusOK     = "ok"
	StatusFailed = "failed"
)

// ValidFormats are the supported output table formats.
var ValidFormats = map[string]bool{
	"xlsx": true,
	"csv":  true,
}
