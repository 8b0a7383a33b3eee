package user_repo

import (
	"context"

	"github.com/sidhu69/live-room-chat/internal/entity"
	app_error "github.com/sidhu69/live-room-chat/internal/errors"
)

type UserRepoContract interface {
	CountUser(ctx context.Context, filter entity.UserFilter) (int64, *app_error.AppError)
	SaveUser(ctx context.Context, user entity.User) *app_error.AppError
	FindByEmail(ctx context.Context, email string) (*entity.User, *app_error.AppError)
	FindByID(ctx context.Context, userID string) (*entity.User, *app_error.AppError)
	FindByIDs(ctx context.Context, userIDs []string) ([]entity.User, *app_error.AppError)
	UpdateProfile(ctx context.Context, userID string, fields map[string]any) *app_error.AppError
}
