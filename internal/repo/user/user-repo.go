package user_repo

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"
	"github.com/sidhu69/live-room-chat/internal/entity"
	app_error "github.com/sidhu69/live-room-chat/internal/errors"
	"github.com/sidhu69/live-room-chat/state"
	"gorm.io/gorm"
)

type UserRepo struct {
	AppState *state.AppState
}

func NewUserRepo(appState *state.AppState) UserRepoContract {
	return &UserRepo{
		AppState: appState,
	}
}

func (r *UserRepo) CountUser(ctx context.Context, filter entity.UserFilter) (int64, *app_error.AppError) {
	var count int64
	query := r.AppState.DB.WithContext(ctx).Model(&entity.User{})

	if filter.Email != nil && filter.Username != nil {
		query = query.Where("email = ? OR username = ?", *filter.Email, *filter.Username)
	} else if filter.Email != nil {
		query = query.Where("email = ?", *filter.Email)
	} else if filter.Username != nil {
		query = query.Where("username = ?", *filter.Username)
	}

	if err := query.Count(&count).Error; err != nil {
		log.Error().Err(err).Msg("failed to count users")
		return 0, app_error.Dependency("failed to count users", "db-error")
	}
	return count, nil
}

func (r *UserRepo) SaveUser(ctx context.Context, user entity.User) *app_error.AppError {
	if err := r.AppState.DB.WithContext(ctx).Create(&user).Error; err != nil {
		log.Error().Err(err).Msg("failed to save user")
		return app_error.Dependency("failed to save user", "db-error")
	}
	return nil
}

func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, *app_error.AppError) {
	var user entity.User
	if err := r.AppState.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, app_error.NotFound("user not found", "email")
		}
		return nil, app_error.Dependency("failed to fetch user", "db-error")
	}
	return &user, nil
}

func (r *UserRepo) FindByID(ctx context.Context, userID string) (*entity.User, *app_error.AppError) {
	var user entity.User
	if err := r.AppState.DB.WithContext(ctx).Where("id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, app_error.NotFound("user not found", "user_id")
		}
		return nil, app_error.Dependency("failed to fetch user", "db-error")
	}
	return &user, nil
}

func (r *UserRepo) FindByIDs(ctx context.Context, userIDs []string) ([]entity.User, *app_error.AppError) {
	var users []entity.User
	if len(userIDs) == 0 {
		return users, nil
	}
	if err := r.AppState.DB.WithContext(ctx).Where("id IN ?", userIDs).Find(&users).Error; err != nil {
		return nil, app_error.Dependency("failed to fetch users", "db-error")
	}
	return users, nil
}

func (r *UserRepo) UpdateProfile(ctx context.Context, userID string, fields map[string]any) *app_error.AppError {
	if len(fields) == 0 {
		return nil
	}
	err := r.AppState.DB.WithContext(ctx).Model(&entity.User{}).
		Where("id = ?", userID).
		Updates(fields).Error
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("failed to update profile")
		return app_error.Dependency("failed to update profile", "db-error")
	}
	return nil
}
