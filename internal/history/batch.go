// Package history persists batch reports to Postgres and serves them back
// as a paginated list. It is a batch.Sink: the runner delivers every report
// here when a database is configured.
package history

import (
	"embed"
	"time"

	"github.com/google/uuid"
)

// Migrations holds the schema for the history tables.
//
//go:embed migrations/*.sql
var Migrations embed.FS

// MigrationsDir is the directory inside Migrations holding the SQL files.
const MigrationsDir = "migrations"

// Batch is a persisted batch report.
type Batch struct {
	ID         uuid.UUID `json:"id"`
	Operation  string    `json:"operation"`
	Total      int       `json:"total"`
	Succeeded  int       `json:"succeeded"`
	Failed     int       `json:"failed"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	Files      []File    `json:"files,omitempty"`
}

// File is the persisted outcome of one source file. Error is empty on success.
type File struct {
	Source  string   `json:"source"`
	Outputs []string `json:"outputs"`
	Error   string   `json:"error,omitempty"`
}
