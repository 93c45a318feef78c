package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// DefaultLimit is the history page size when the caller supplies no
// usable limit.
const DefaultLimit = 20

// Record is one persisted resolution attempt. Records are append-only;
// there is no update or delete.
type Record struct {
	ID                int64    `json:"id"`
	UserInput         string   `json:"user_input"`
	RecommendedMovies []string `json:"recommended_movies"`
	Timestamp         string   `json:"timestamp"`
}

// RecommendationLog implements the append-only log over sqlite.
type RecommendationLog struct {
	db *sql.DB
}

func NewRecommendationLog(db *sql.DB) *RecommendationLog {
	return &RecommendationLog{db: db}
}

// Append persists one resolution attempt and returns the assigned id.
// The title list is stored as a JSON-encoded array, the timestamp as
// RFC 3339 UTC.
func (l *RecommendationLog) Append(ctx context.Context, userInput string, movies []string, ts time.Time) (int64, error) {
	blob, err := json.Marshal(movies)
	if err != nil {
		return 0, fmt.Errorf("store: encode movies: %w", err)
	}
	res, err := l.db.ExecContext(ctx,
		"INSERT INTO recommendations (user_input, recommended_movies, timestamp) VALUES (?, ?, ?)",
		userInput, string(blob), ts.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return 0, fmt.Errorf("store: append recommendation: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("store: last insert id: %w", err)
	}
	return id, nil
}

// Recent returns up to limit records, newest first. A limit below 1 is
// coerced to DefaultLimit. A row whose stored title blob no longer
// parses yields an empty list for that row instead of failing the
// whole query.
func (l *RecommendationLog) Recent(ctx context.Context, limit int) ([]Record, error) {
	if limit < 1 {
		limit = DefaultLimit
	}
	rows, err := l.db.QueryContext(ctx,
		"SELECT id, user_input, recommended_movies, timestamp FROM recommendations ORDER BY id DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("store: list recommendations: %w", err)
	}
	defer rows.Close()

	records := make([]Record, 0, DefaultLimit)
	for rows.Next() {
		var (
			rec  Record
			blob string
		)
		if err := rows.Scan(&rec.ID, &rec.UserInput, &blob, &rec.Timestamp); err != nil {
			return nil, fmt.Errorf("store: scan recommendation: %w", err)
		}
		rec.RecommendedMovies = safeDecodeMovies(blob)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: iterate recommendations: %w", err)
	}
	return records, nil
}

func safeDecodeMovies(blob string) []string {
	var movies []string
	if err := json.Unmarshal([]byte(blob), &movies); err != nil || movies == nil {
		return []string{}
	}
	return movies
}
