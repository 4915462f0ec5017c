package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s := New(filepath.Join(t.TempDir(), "test.db"))
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_UpsertPlayer(t *testing.T) {
	s := newTestStore(t)

	created, err := s.UpsertPlayer("p1", "Alice")
	require.NoError(t, err)
	assert.Equal(t, "p1", created.ID)
	assert.Equal(t, "Alice", created.Name)
	assert.Zero(t, created.BestScore)

	// Same id, same name: plain fetch, no duplicate row.
	again, err := s.UpsertPlayer("p1", "Alice")
	require.NoError(t, err)
	assert.Equal(t, created.ID, again.ID)

	all, err := s.Leaderboard(100)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestStore_UpsertPlayer_NameChangeForksIdentity(t *testing.T) {
	s := newTestStore(t)

	alice, err := s.UpsertPlayer("p1", "Alice")
	require.NoError(t, err)
	_, err = s.RecordScore("p1", 7)
	require.NoError(t, err)

	bob, err := s.UpsertPlayer("p1", "Bob")
	require.NoError(t, err)
	assert.NotEqual(t, alice.ID, bob.ID, "name change must mint a new identity")
	assert.Equal(t, "Bob", bob.Name)
	assert.Zero(t, bob.BestScore, "forked identity starts fresh")

	// The original identity and its history survive untouched.
	orig, err := s.GetPlayer("p1")
	require.NoError(t, err)
	assert.Equal(t, "Alice", orig.Name)
	assert.Equal(t, 7, orig.BestScore)
}

func TestStore_GetPlayer_NotFound(t *testing.T) {
	s := newTestStore(t)
	_, err := s.GetPlayer("ghost")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestStore_RecordScore(t *testing.T) {
	s := newTestStore(t)

	// Unknown playerId creates an implicit row with the default name.
	p, err := s.RecordScore("newcomer", 3)
	require.NoError(t, err)
	assert.Equal(t, "newcomer", p.ID)
	assert.Equal(t, DefaultPlayerName, p.Name)
	assert.Equal(t, 3, p.CurrentScore)
	assert.Equal(t, 3, p.BestScore)
	assert.Equal(t, 1, p.GamesPlayed)

	// A higher score raises the best.
	p, err = s.RecordScore("newcomer", 5)
	require.NoError(t, err)
	assert.Equal(t, 5, p.CurrentScore)
	assert.Equal(t, 5, p.BestScore)
	assert.Equal(t, 2, p.GamesPlayed)

	// A lower score updates current but leaves the best alone.
	p, err = s.RecordScore("newcomer", 1)
	require.NoError(t, err)
	assert.Equal(t, 1, p.CurrentScore)
	assert.Equal(t, 5, p.BestScore)
	assert.Equal(t, 3, p.GamesPlayed)
}

func TestStore_Leaderboard(t *testing.T) {
	s := newTestStore(t)

	for _, fixture := range []struct {
		id, name string
		score    int
	}{
		{"a", "Ada", 4},
		{"b", "Bea", 9},
		{"c", "Cal", 9},
		{"d", "Dee", 1},
	} {
		_, err := s.UpsertPlayer(fixture.id, fixture.name)
		require.NoError(t, err)
		_, err = s.RecordScore(fixture.id, fixture.score)
		require.NoError(t, err)
	}

	board, err := s.Leaderboard(3)
	require.NoError(t, err)
	require.Len(t, board, 3)
	// Best score descending, ties broken by name.
	assert.Equal(t, "Bea", board[0].Name)
	assert.Equal(t, "Cal", board[1].Name)
	assert.Equal(t, "Ada", board[2].Name)

	// A non-positive limit falls back to the default page size.
	board, err = s.Leaderboard(0)
	require.NoError(t, err)
	assert.Len(t, board, 4)
}

func TestStore_RecordMatchAndBestTimes(t *testing.T) {
	s := newTestStore(t)

	_, err := s.UpsertPlayer("a", "Ada")
	require.NoError(t, err)

	// Implicit player creation applies to matches too.
	rec, err := s.RecordMatch("b", "beginner", 42000)
	require.NoError(t, err)
	assert.Equal(t, "b", rec.PlayerID)
	implicit, err := s.GetPlayer("b")
	require.NoError(t, err)
	assert.Equal(t, DefaultPlayerName, implicit.Name)

	fixtures := []struct {
		player, difficulty string
		durationMs         int64
	}{
		{"a", "beginner", 60000},
		{"a", "beginner", 31000}, // Ada's best on beginner
		{"a", "expert", 95000},
		{"b", "beginner", 50000},
	}
	for _, f := range fixtures {
		_, err := s.RecordMatch(f.player, f.difficulty, f.durationMs)
		require.NoError(t, err)
	}

	// Unfiltered: one entry per player, fastest first, tagged with the
	// difficulty the best time was set on.
	entries, err := s.BestTimes("", 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, int64(31000), entries[0].BestMs)
	assert.Equal(t, "Ada", entries[0].PlayerName)
	assert.Equal(t, "beginner", entries[0].Difficulty)
	assert.Equal(t, int64(42000), entries[1].BestMs)

	// Filtered by difficulty.
	entries, err = s.BestTimes("expert", 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "expert", entries[0].Difficulty)
	assert.Equal(t, int64(95000), entries[0].BestMs)
}
