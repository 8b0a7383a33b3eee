package message_repo

import (
	"context"

	"github.com/sidhu69/live-room-chat/internal/entity"
	app_error "github.com/sidhu69/live-room-chat/internal/errors"
	"go.mongodb.org/mongo-driver/v2/bson"
)

type MessageRepoContract interface {
	Insert(ctx context.Context, roomID, senderID, content string) (bson.ObjectID, *app_error.AppError)
	ListByRoom(ctx context.Context, roomID string, limit int, beforeID *string) ([]*entity.Message, *app_error.AppError)
	DeleteByRoom(ctx context.Context, roomID string) *app_error.AppError
}
