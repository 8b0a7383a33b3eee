package rank_repo

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/sidhu69/live-room-chat/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRank(t *testing.T) RankRepoContract {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	return NewRankRepo(&state.AppState{Redis: rdb})
}

func TestIncrMessageCount_And_Top(t *testing.T) {
	repo := setupRank(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.Nil(t, repo.IncrMessageCount(ctx, "alice"))
	}
	require.Nil(t, repo.IncrMessageCount(ctx, "bob"))

	entries, appErr := repo.Top(ctx, 10)

	require.Nil(t, appErr)
	require.Len(t, entries, 2)
	assert.Equal(t, "alice", entries[0].UserID)
	assert.Equal(t, float64(3), entries[0].Score)
	assert.Equal(t, "bob", entries[1].UserID)
	assert.Equal(t, float64(1), entries[1].Score)
}

func TestTop_LimitApplies(t *testing.T) {
	repo := setupRank(t)
	ctx := context.Background()

	require.Nil(t, repo.IncrMessageCount(ctx, "a"))
	require.Nil(t, repo.IncrMessageCount(ctx, "b"))
	require.Nil(t, repo.IncrMessageCount(ctx, "c"))

	entries, appErr := repo.Top(ctx, 2)

	require.Nil(t, appErr)
	assert.Len(t, entries, 2)
}

func TestTop_EmptyLeaderboard(t *testing.T) {
	repo := setupRank(t)

	entries, appErr := repo.Top(context.Background(), 10)

	require.Nil(t, appErr)
	assert.Empty(t, entries)
}
