package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gauravc/numble/internal/session"
)

func record(id string) *session.Record {
	return &session.Record{
		ID:          id,
		Puzzle:      "1 + 2 = 3",
		CreatorID:   "alice",
		CurrentTurn: session.TurnCreator,
		GameStatus:  session.StatusInProgress,
		Guesses:     []session.Guess{},
		Version:     1,
	}
}

func TestMemoryCreateGet(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	require.NoError(t, m.Create(ctx, record("s1"), time.Now().Add(time.Hour)))

	got, err := m.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "alice", got.CreatorID)

	_, err = m.Get(ctx, "nope")
	assert.ErrorIs(t, err, session.ErrNotFound)
}

func TestMemoryGetReturnsCopy(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	require.NoError(t, m.Create(ctx, record("s1"), time.Now().Add(time.Hour)))

	got, _ := m.Get(ctx, "s1")
	got.CreatorID = "mallory"
	got.Guesses = append(got.Guesses, session.Guess{PlayerID: "mallory"})

	again, _ := m.Get(ctx, "s1")
	assert.Equal(t, "alice", again.CreatorID)
	assert.Empty(t, again.Guesses)
}

func TestMemoryUpdateCAS(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	require.NoError(t, m.Create(ctx, record("s1"), time.Now().Add(time.Hour)))

	a, _ := m.Get(ctx, "s1")
	b, _ := m.Get(ctx, "s1")

	a.OpponentID = "bob"
	require.NoError(t, m.Update(ctx, a))
	assert.Equal(t, int64(2), a.Version, "winner sees the bumped version")

	b.OpponentID = "carol"
	assert.ErrorIs(t, m.Update(ctx, b), session.ErrConflict)

	got, _ := m.Get(ctx, "s1")
	assert.Equal(t, "bob", got.OpponentID)
	assert.Equal(t, int64(2), got.Version)
}

func TestMemoryUpdateMissing(t *testing.T) {
	m := NewMemory()
	err := m.Update(context.Background(), record("ghost"))
	assert.ErrorIs(t, err, session.ErrNotFound)
}

func TestMemoryExpiry(t *testing.T) {
	now := time.Now()
	current := now
	m := NewMemoryWithClock(func() time.Time { return current })
	ctx := context.Background()

	require.NoError(t, m.Create(ctx, record("s1"), now.Add(time.Minute)))

	_, err := m.Get(ctx, "s1")
	require.NoError(t, err)

	current = now.Add(2 * time.Minute)
	_, err = m.Get(ctx, "s1")
	assert.ErrorIs(t, err, session.ErrNotFound)

	// Writes against an expired record are not-found as well.
	err = m.Update(ctx, record("s1"))
	assert.ErrorIs(t, err, session.ErrNotFound)
}
