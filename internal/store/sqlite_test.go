package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Roberto-info/CDA2-Demokratie-Challange/votes"
)

func ptr(v float64) *float64 { return &v }

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "artifacts.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "artifacts.db")

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.SaveRun("run-1", "overview", time.Now(), 10, 0))
	require.NoError(t, s.Close())

	// Reopening the same file must keep existing rows.
	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()

	var n int
	require.NoError(t, s.db.QueryRow(`SELECT COUNT(*) FROM run`).Scan(&n))
	assert.Equal(t, 1, n)
}

func TestSaveClassified(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.SaveRun("run-1", "overview", time.Now(), 2, 0))

	rows := []votes.Classified{
		{
			Referendum: votes.Referendum{
				ID:         "101",
				Date:       time.Date(1994, time.December, 4, 0, 0, 0, 0, time.UTC),
				TitleShort: "Krankenversicherung",
				Yes:        ptr(51.8),
			},
			Classification: votes.Classification{
				Societal: true,
				Matched:  []string{"krankenversicherung"},
			},
		},
		{
			Referendum: votes.Referendum{ID: "102"},
		},
	}
	require.NoError(t, s.SaveClassified("run-1", rows))

	var date, matched any
	var yes *float64
	var societal int
	require.NoError(t, s.db.QueryRow(
		`SELECT date, yesperc, societal, matched FROM referendum WHERE run_id = ? AND id = ?`,
		"run-1", "101",
	).Scan(&date, &yes, &societal, &matched))
	assert.Equal(t, "1994-12-04", date)
	require.NotNil(t, yes)
	assert.InDelta(t, 51.8, *yes, 1e-9)
	assert.Equal(t, 1, societal)
	assert.Equal(t, "krankenversicherung", matched)

	// Missing date and yes stay NULL, not zero values.
	require.NoError(t, s.db.QueryRow(
		`SELECT date, yesperc FROM referendum WHERE run_id = ? AND id = ?`,
		"run-1", "102",
	).Scan(&date, &yes))
	assert.Nil(t, date)
	assert.Nil(t, yes)
}

func TestSaveClassifiedDuplicateRunFails(t *testing.T) {
	s := openTestStore(t)
	rows := []votes.Classified{{Referendum: votes.Referendum{ID: "1"}}}

	require.NoError(t, s.SaveClassified("run-1", rows))
	assert.Error(t, s.SaveClassified("run-1", rows), "run and id form the primary key")
}

func TestSaveRanking(t *testing.T) {
	s := openTestStore(t)
	ranking := []votes.LiberalityScore{
		{Canton: "ge", Score: ptr(58.4), Count: 120},
		{Canton: "ai", Score: nil, Count: 0},
	}
	require.NoError(t, s.SaveRanking("run-1", ranking))

	var rank, count int
	var score *float64
	require.NoError(t, s.db.QueryRow(
		`SELECT rank, score, count FROM liberality WHERE run_id = ? AND canton = ?`,
		"run-1", "ge",
	).Scan(&rank, &score, &count))
	assert.Equal(t, 1, rank)
	require.NotNil(t, score)
	assert.InDelta(t, 58.4, *score, 1e-9)
	assert.Equal(t, 120, count)

	require.NoError(t, s.db.QueryRow(
		`SELECT rank, score FROM liberality WHERE run_id = ? AND canton = ?`,
		"run-1", "ai",
	).Scan(&rank, &score))
	assert.Equal(t, 2, rank)
	assert.Nil(t, score, "nil score stored as NULL")
}
