package dm_service

import (
	"context"

	"github.com/sidhu69/live-room-chat/internal/dtos/dm_dto"
	app_error "github.com/sidhu69/live-room-chat/internal/errors"
)

type DMServiceContract interface {
	SendFriendRequest(ctx context.Context, requesterID, addresseeID string) (*dm_dto.ContactResponse, *app_error.AppError)
	RespondToRequest(ctx context.Context, userID string, contactID int64, status string) (*dm_dto.ContactResponse, *app_error.AppError)
	ListContacts(ctx context.Context, userID string) ([]dm_dto.ContactResponse, *app_error.AppError)
	ListPendingRequests(ctx context.Context, userID string) ([]dm_dto.ContactResponse, *app_error.AppError)

	SendDirectMessage(ctx context.Context, senderID, recipientID, content string) (*dm_dto.DirectMessageResponse, *app_error.AppError)
	GetConversation(ctx context.Context, userID, otherID string, req dm_dto.GetDirectMessagesRequest) (*dm_dto.ConversationResponse, *app_error.AppError)
}
