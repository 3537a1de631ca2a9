package feedback

import (
	"context"
	"time"
)

// Feedback is a user's rating of one generated summary.
type Feedback struct {
	ID        string    `json:"id"`
	Template  string    `json:"template"`
	Backend   string    `json:"backend"`
	Comment   string    `json:"comment"`
	Rating    int       `json:"rating"`
	CreatedAt time.Time `json:"created_at"`
}

// Store records and lists feedback.
type Store interface {
	Record(ctx context.Context, fb Feedback) (Feedback, error)
	List(ctx context.Context, limit int) ([]Feedback, error)
	Close() error
}
