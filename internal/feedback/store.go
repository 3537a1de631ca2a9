package feedback

import (
	"context"
	"crypto/rand"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/nguyentantai21042004/minutes-flow/internal/logger"
)

// DefaultRating is used when a submission carries no rating.
const DefaultRating = 3

var (
	ErrEmptyComment  = errors.New("feedback comment is empty")
	ErrInvalidRating = errors.New("rating must be between 1 and 5")
)

type implStore struct {
	db     *sql.DB
	logger logger.Logger
	now    func() time.Time
}

// Open opens (or creates) the feedback database at path.
func Open(path string, log logger.Logger) (Store, error) {
	db, err := openDB(path)
	if err != nil {
		return nil, err
	}
	return &implStore{db: db, logger: log, now: time.Now}, nil
}

func (s *implStore) Record(ctx context.Context, fb Feedback) (Feedback, error) {
	fb.Comment = strings.TrimSpace(fb.Comment)
	if fb.Comment == "" {
		s.logger.Warn(ctx, "User submitted feedback without a comment")
		return Feedback{}, ErrEmptyComment
	}
	if fb.Rating == 0 {
		fb.Rating = DefaultRating
	}
	if fb.Rating < 1 || fb.Rating > 5 {
		return Feedback{}, fmt.Errorf("%w: got %d", ErrInvalidRating, fb.Rating)
	}

	now := s.now()
	entropy := ulid.Monotonic(rand.Reader, 0)
	id, err := ulid.New(ulid.Timestamp(now), entropy)
	if err != nil {
		return Feedback{}, fmt.Errorf("generate id: %w", err)
	}
	fb.ID = id.String()
	fb.CreatedAt = now.UTC()

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO feedback (id, template, backend, comment, rating, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		fb.ID, fb.Template, fb.Backend, fb.Comment, fb.Rating, fb.CreatedAt.UnixMilli(),
	)
	if err != nil {
		return Feedback{}, fmt.Errorf("insert feedback: %w", err)
	}

	s.logger.Info(ctx, "User feedback: %s, Rating: %d", fb.Comment, fb.Rating)
	return fb, nil
}

// List returns the newest entries first. A non-positive limit returns everything.
func (s *implStore) List(ctx context.Context, limit int) ([]Feedback, error) {
	query := `SELECT id, template, backend, comment, rating, created_at FROM feedback ORDER BY created_at DESC, id DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query feedback: %w", err)
	}
	defer rows.Close()

	var out []Feedback
	for rows.Next() {
		var (
			fb      Feedback
			created int64
		)
		if err := rows.Scan(&fb.ID, &fb.Template, &fb.Backend, &fb.Comment, &fb.Rating, &created); err != nil {
			return nil, fmt.Errorf("scan feedback: %w", err)
		}
		fb.CreatedAt = time.UnixMilli(created).UTC()
		out = append(out, fb)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate feedback: %w", err)
	}
	return out, nil
}

func (s *implStore) Close() error {
	return s.db.Close()
}
