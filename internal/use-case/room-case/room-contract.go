package room_service

import (
	"context"

	"github.com/sidhu69/live-room-chat/internal/dtos/room_dto"
	app_error "github.com/sidhu69/live-room-chat/internal/errors"
)

type RoomServiceContract interface {
	CreateRoom(ctx context.Context, req room_dto.CreateRoomRequest, creatorID string) (*room_dto.RoomResponse, *app_error.AppError)
	JoinRoom(ctx context.Context, code, userID string) (*room_dto.JoinRoomResponse, *app_error.AppError)
	LeaveRoom(ctx context.Context, roomID, userID string) *app_error.AppError
	CleanupExpiredRooms(ctx context.Context) (*room_dto.CleanupResponse, *app_error.AppError)
	ListPublicRooms(ctx context.Context) ([]room_dto.RoomResponse, *app_error.AppError)
	SendMessage(ctx context.Context, roomID, senderID, content string) (*room_dto.MessageResponse, *app_error.AppError)
	GetMessages(ctx context.Context, req room_dto.GetMessagesRequest, roomID string) (*room_dto.GetMessagesResponse, *app_error.AppError)
	Ranking(ctx context.Context, limit int) ([]room_dto.RankEntry, *app_error.AppError)
}
