package feedback

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyentantai21042004/minutes-flow/internal/logger"
)

func openTestStore(t *testing.T) *implStore {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "nested", "feedback.db"), logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st.(*implStore)
}

func TestRecord(t *testing.T) {
	st := openTestStore(t)

	fb, err := st.Record(context.Background(), Feedback{
		Template: "General Meeting",
		Backend:  "cloud",
		Comment:  "  Very accurate  ",
		Rating:   5,
	})
	require.NoError(t, err)
	assert.Len(t, fb.ID, 26)
	assert.Equal(t, "Very accurate", fb.Comment)
	assert.False(t, fb.CreatedAt.IsZero())
}

func TestRecordDefaultsRating(t *testing.T) {
	st := openTestStore(t)

	fb, err := st.Record(context.Background(), Feedback{Comment: "ok"})
	require.NoError(t, err)
	assert.Equal(t, DefaultRating, fb.Rating)
}

func TestRecordValidation(t *testing.T) {
	st := openTestStore(t)

	tests := []struct {
		name    string
		fb      Feedback
		wantErr error
	}{
		{"blank comment", Feedback{Comment: "  ", Rating: 4}, ErrEmptyComment},
		{"rating too high", Feedback{Comment: "x", Rating: 6}, ErrInvalidRating},
		{"negative rating", Feedback{Comment: "x", Rating: -1}, ErrInvalidRating},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := st.Record(context.Background(), tt.fb)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	all, err := st.List(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestListNewestFirst(t *testing.T) {
	st := openTestStore(t)
	base := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)
	tick := 0
	st.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}

	for _, c := range []string{"first", "second", "third"} {
		_, err := st.Record(context.Background(), Feedback{Comment: c, Rating: 4})
		require.NoError(t, err)
	}

	got, err := st.List(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "third", got[0].Comment)
	assert.Equal(t, "second", got[1].Comment)
	assert.Equal(t, base.Add(3*time.Minute), got[0].CreatedAt)
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feedback.db")

	st, err := Open(path, logger.Nop())
	require.NoError(t, err)
	_, err = st.Record(context.Background(), Feedback{Comment: "persisted", Rating: 2})
	require.NoError(t, err)
	require.NoError(t, st.Close())

	st, err = Open(path, logger.Nop())
	require.NoError(t, err)
	defer st.Close()

	got, err := st.List(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "persisted", got[0].Comment)
}
