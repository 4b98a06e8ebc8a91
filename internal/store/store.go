// Package store provides optional PostgreSQL archival of hunt runs and their
// ranked results. The store is a convenience layer: a failed write never
// fails the run that produced the data.
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cliffordnwanna/JOB-HUNTER/internal/match"
)

// Store wraps a PostgreSQL connection pool.
type Store struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool and verifies it with a ping.
func Connect(ctx context.Context, databaseURL string) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, &StoreError{Message: "failed to connect to database", Cause: err}
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, &StoreError{Message: "failed to ping database", Cause: err}
	}

	return &Store{pool: pool}, nil
}

// Close closes the connection pool.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// EnsureSchema creates the archive tables when they do not exist yet.
func (s *Store) EnsureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS hunt_runs (
			id UUID PRIMARY KEY,
			query TEXT NOT NULL,
			scored INT NOT NULL DEFAULT 0,
			duplicates_merged INT NOT NULL DEFAULT 0,
			skipped INT NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE TABLE IF NOT EXISTS hunt_results (
			run_id UUID NOT NULL REFERENCES hunt_runs(id) ON DELETE CASCADE,
			posting_id TEXT NOT NULL,
			rank INT NOT NULL,
			title TEXT NOT NULL,
			company TEXT NOT NULL,
			location TEXT NOT NULL,
			source TEXT NOT NULL,
			url TEXT NOT NULL,
			posted_at TIMESTAMPTZ,
			composite_score DOUBLE PRECISION NOT NULL,
			skill_score DOUBLE PRECISION NOT NULL,
			semantic_score DOUBLE PRECISION NOT NULL,
			title_score DOUBLE PRECISION NOT NULL,
			location_score DOUBLE PRECISION NOT NULL,
			recency_score DOUBLE PRECISION NOT NULL,
			semantic_degraded BOOLEAN NOT NULL DEFAULT FALSE,
			PRIMARY KEY (run_id, posting_id)
		);`)
	if err != nil {
		return &StoreError{Message: "failed to ensure schema", Cause: err}
	}
	return nil
}

// SaveRun records one completed hunt run keyed by its diagnostics run ID.
func (s *Store) SaveRun(ctx context.Context, query string, diags *match.Diagnostics) (uuid.UUID, error) {
	id, err := parseRunID(diags)
	if err != nil {
		return uuid.Nil, err
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO hunt_runs (id, query, scored, duplicates_merged, skipped)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (id) DO UPDATE SET scored = $3, duplicates_merged = $4, skipped = $5`,
		id, query, diags.Scored, diags.DuplicatesMerged, diags.SkippedCount(),
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to save run: %w", err)
	}
	return id, nil
}

// SaveResults archives ranked results for a run. Re-archiving the same run
// overwrites the previous rows.
func (s *Store) SaveResults(ctx context.Context, runID uuid.UUID, results []*match.MatchResult) error {
	for i, res := range results {
		_, err := s.pool.Exec(ctx,
			`INSERT INTO hunt_results (
				run_id, posting_id, rank, title, company, location, source, url,
				posted_at, composite_score, skill_score, semantic_score,
				title_score, location_score, recency_score, semantic_degraded)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
			 ON CONFLICT (run_id, posting_id) DO UPDATE SET
				rank = $3, composite_score = $10, skill_score = $11,
				semantic_score = $12, title_score = $13, location_score = $14,
				recency_score = $15, semantic_degraded = $16`,
			resultArgs(runID, i+1, res)...,
		)
		if err != nil {
			return fmt.Errorf("failed to save result %s: %w", res.Posting.ID, err)
		}
	}
	return nil
}

// Run is one archived hunt run.
type Run struct {
	ID               uuid.UUID `json:"id"`
	Query            string    `json:"query"`
	Scored           int       `json:"scored"`
	DuplicatesMerged int       `json:"duplicates_merged"`
	Skipped          int       `json:"skipped"`
	CreatedAt        time.Time `json:"created_at"`
}

// ListRuns retrieves recent runs, newest first.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.pool.Query(ctx,
		`SELECT id, query, scored, duplicates_merged, skipped, created_at
		 FROM hunt_runs ORDER BY created_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		if err := rows.Scan(&run.ID, &run.Query, &run.Scored, &run.DuplicatesMerged, &run.Skipped, &run.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// GetRun retrieves one archived run, or nil when it does not exist.
func (s *Store) GetRun(ctx context.Context, runID uuid.UUID) (*Run, error) {
	var run Run
	err := s.pool.QueryRow(ctx,
		`SELECT id, query, scored, duplicates_merged, skipped, created_at
		 FROM hunt_runs WHERE id = $1`,
		runID,
	).Scan(&run.ID, &run.Query, &run.Scored, &run.DuplicatesMerged, &run.Skipped, &run.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return &run, nil
}

func parseRunID(diags *match.Diagnostics) (uuid.UUID, error) {
	if diags == nil {
		return uuid.Nil, fmt.Errorf("diagnostics are required to archive a run")
	}
	id, err := uuid.Parse(diags.RunID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid run id %q: %w", diags.RunID, err)
	}
	return id, nil
}

// resultArgs flattens a result into the positional arguments SaveResults
// binds. posted_at stays NULL for undated postings.
func resultArgs(runID uuid.UUID, rank int, res *match.MatchResult) []any {
	var postedAt *time.Time
	if res.Posting.PostedAt != nil {
		postedAt = res.Posting.PostedAt
	}
	return []any{
		runID, res.Posting.ID, rank,
		res.Posting.Title, res.Posting.Company, res.Posting.Location,
		string(res.Posting.Source), res.Posting.URL, postedAt,
		res.CompositeScore, res.SkillScore, res.SemanticScore,
		res.TitleScore, res.LocationScore, res.RecencyScore,
		res.SemanticDegraded,
	}
}
