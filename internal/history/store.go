// Package history records build attempts in a SQLite database.
package history

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/harrison/bookbinder/internal/models"
)

//go:embed schema.sql
var schemaSQL string

// Build status values
const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

// Build represents a single recorded build attempt
type Build struct {
	ID         string
	StartedAt  time.Time
	FinishedAt time.Time
	Input      string
	Output     string
	Formats    []string
	Chapters   int
	Images     int
	Pages      int
	Status     string
	Error      string
}

// Duration returns how long the build ran.
func (b *Build) Duration() time.Duration {
	return b.FinishedAt.Sub(b.StartedAt)
}

// FromResult converts a finished build into a history record. result may be
// nil when the run failed before producing anything; buildErr is the error
// the run returned, if any.
func FromResult(result *models.BuildResult, input, output string, formats []string, started time.Time, buildErr error) *Build {
	b := &Build{
		StartedAt:  started,
		FinishedAt: time.Now(),
		Input:      input,
		Output:     output,
		Formats:    formats,
		Status:     StatusSuccess,
	}
	if result != nil {
		b.ID = result.ID
		b.Chapters = result.Chapters
		b.Images = result.Images
		b.Pages = result.Pages
		if result.Input != "" {
			b.Input = result.Input
		}
		if result.Output != "" {
			b.Output = result.Output
		}
	}
	if buildErr != nil {
		b.Status = StatusFailed
		b.Error = buildErr.Error()
	}
	return b
}

// Store manages the SQLite build history database
type Store struct {
	db     *sql.DB
	dbPath string
}

// NewStore opens (creating if needed) the history database at dbPath.
// ":memory:" opens a private in-memory database.
func NewStore(dbPath string) (*Store, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// A single connection keeps ":memory:" databases alive across calls.
	db.SetMaxOpenConns(1)

	for _, pragma := range []string{"PRAGMA busy_timeout=5000", "PRAGMA journal_mode=WAL"} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("set %s: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &Store{db: db, dbPath: dbPath}, nil
}

// Path returns the database path.
func (s *Store) Path() string {
	return s.dbPath
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Record inserts a build. A missing ID is filled with a new UUID.
func (s *Store) Record(ctx context.Context, b *Build) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	if b.Status == "" {
		b.Status = StatusSuccess
	}

	query := `INSERT INTO builds
		(id, started_at, finished_at, input, output, formats, chapters, images, pages, status, error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := s.db.ExecContext(ctx, query,
		b.ID,
		b.StartedAt.UTC().Format(time.RFC3339Nano),
		b.FinishedAt.UTC().Format(time.RFC3339Nano),
		b.Input,
		b.Output,
		strings.Join(b.Formats, ","),
		b.Chapters,
		b.Images,
		b.Pages,
		b.Status,
		b.Error,
	)
	if err != nil {
		return fmt.Errorf("insert build %s: %w", b.ID, err)
	}
	return nil
}

// Recent returns up to limit builds, most recent first. A limit <= 0
// returns every build.
func (s *Store) Recent(ctx context.Context, limit int) ([]*Build, error) {
	query := `SELECT id, started_at, finished_at, input, output, formats, chapters, images, pages, status, error
		FROM builds
		ORDER BY started_at DESC, rowid DESC`
	args := []interface{}{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query builds: %w", err)
	}
	defer rows.Close()

	var builds []*Build
	for rows.Next() {
		b := &Build{}
		var started, finished, formats string
		if err := rows.Scan(&b.ID, &started, &finished, &b.Input, &b.Output, &formats,
			&b.Chapters, &b.Images, &b.Pages, &b.Status, &b.Error); err != nil {
			return nil, fmt.Errorf("scan build: %w", err)
		}
		if b.StartedAt, err = time.Parse(time.RFC3339Nano, started); err != nil {
			return nil, fmt.Errorf("parse started_at of %s: %w", b.ID, err)
		}
		if b.FinishedAt, err = time.Parse(time.RFC3339Nano, finished); err != nil {
			return nil, fmt.Errorf("parse finished_at of %s: %w", b.ID, err)
		}
		if formats != "" {
			b.Formats = strings.Split(formats, ",")
		}
		builds = append(builds, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate builds: %w", err)
	}
	return builds, nil
}
