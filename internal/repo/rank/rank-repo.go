package rank_repo

import (
	"context"

	"github.com/redis/go-redis/v9"
	app_error "github.com/sidhu69/live-room-chat/internal/errors"
	"github.com/sidhu69/live-room-chat/state"
)

const leaderboardKey = "ranking:messages"

type Entry struct {
	UserID string
	Score  float64
}

type RankRepoContract interface {
	IncrMessageCount(ctx context.Context, userID string) *app_error.AppError
	Top(ctx context.Context, limit int) ([]Entry, *app_error.AppError)
}

// RankRepo keeps the message-count leaderboard in a Redis sorted set.
type RankRepo struct {
	AppState *state.AppState
}

func NewRankRepo(appState *state.AppState) RankRepoContract {
	return &RankRepo{
		AppState: appState,
	}
}

func (r *RankRepo) IncrMessageCount(ctx context.Context, userID string) *app_error.AppError {
	if err := r.AppState.Redis.ZIncrBy(ctx, leaderboardKey, 1, userID).Err(); err != nil {
		return app_error.Dependency("failed to update leaderboard", "redis")
	}
	return nil
}

func (r *RankRepo) Top(ctx context.Context, limit int) ([]Entry, *app_error.AppError) {
	if limit <= 0 {
		limit = 10
	}

	zs, err := r.AppState.Redis.ZRevRangeWithScores(ctx, leaderboardKey, 0, int64(limit-1)).Result()
	if err != nil && err != redis.Nil {
		return nil, app_error.Dependency("failed to read leaderboard", "redis")
	}

	entries := make([]Entry, 0, len(zs))
	for _, z := range zs {
		userID, ok := z.Member.(string)
		if !ok {
			continue
		}
		entries = append(entries, Entry{UserID: userID, Score: z.Score})
	}
	return entries, nil
}
