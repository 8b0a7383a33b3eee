package user_service

import (
	"context"

	"github.com/sidhu69/live-room-chat/internal/dtos/user_dto"
	app_error "github.com/sidhu69/live-room-chat/internal/errors"
)

type UserServiceContract interface {
	Register(ctx context.Context, req user_dto.CreateUserRequest) (*user_dto.UserResponse, *app_error.AppError)
	Login(ctx context.Context, req user_dto.LoginRequest) (*user_dto.LoginResponse, string, *app_error.AppError)
	Refresh(ctx context.Context, refreshToken string) (*user_dto.LoginResponse, string, *app_error.AppError)
	GetProfile(ctx context.Context, userID string) (*user_dto.UserResponse, *app_error.AppError)
	UpdateProfile(ctx context.Context, userID string, req user_dto.UpdateProfileRequest) (*user_dto.UserResponse, *app_error.AppError)
}
