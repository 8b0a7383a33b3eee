package dm_repo

import (
	"context"

	"github.com/sidhu69/live-room-chat/internal/entity"
	app_error "github.com/sidhu69/live-room-chat/internal/errors"
	"go.mongodb.org/mongo-driver/v2/bson"
)

type DMRepoContract interface {
	Insert(ctx context.Context, senderID, recipientID, content string) (bson.ObjectID, *app_error.AppError)
	ListConversation(ctx context.Context, userA, userB string, limit int, beforeID *string) ([]*entity.DirectMessage, *app_error.AppError)

	// CountBySender counts messages senderID has sent to recipientID.
	CountBySender(ctx context.Context, senderID, recipientID string) (int64, *app_error.AppError)

	// MarkRead stamps read_at on every unread message from senderID to
	// recipientID and returns how many it stamped.
	MarkRead(ctx context.Context, recipientID, senderID string) (int64, *app_error.AppError)
}
