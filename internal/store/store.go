// Package store provides the run history interface and SQLite implementation.
package store

import (
	"context"
	"errors"

	"github.com/rcliao/wordfreq/internal/model"
)

// ErrRunNotFound is returned when no run matches an ID.
var ErrRunNotFound = errors.New("run not found")

// RecordParams holds parameters for recording a run.
type RecordParams struct {
	InputPath    string
	SettingsPath string
	OutputPath   string
	Format       string
	Status       string
	Error        string
	Patterns     []model.RunPattern
	Entries      []model.Entry
}

// ListParams holds parameters for listing runs.
type ListParams struct {
	Status string
	Limit  int
}

// Store defines the run history interface.
type Store interface {
	// Record stores a finished run with its pattern counts and table rows.
	Record(ctx context.Context, p RecordParams) (*model.Run, error)

	// Get returns a run by ID or unique ID prefix, including its rows.
	Get(ctx context.Context, id string) (*model.Run, error)

	// List lists runs newest first, without rows.
	List(ctx context.Context, p ListParams) ([]model.Run, error)

	// Rm deletes a run and its rows, returning the run that was deleted.
	Rm(ctx context.Context, id string) (*model.Run, error)

	// Close closes the store.
	Close() error
}
