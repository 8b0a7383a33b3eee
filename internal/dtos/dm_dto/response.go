package dm_dto

import (
	"time"

	"github.com/sidhu69/live-room-chat/internal/entity"
)

// Direction of a contact edge from the viewer's side.
const (
	DirectionOutgoing = "outgoing"
	DirectionIncoming = "incoming"
)

type ContactResponse struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	Status    string    `json:"status"`
	Direction string    `json:"direction"`
	CreatedAt time.Time `json:"created_at"`
}

// NewContactResponse renders the edge from viewerID's perspective: UserID is
// always the other party.
func NewContactResponse(contact *entity.Contact, viewerID, username string) ContactResponse {
	otherID := contact.AddresseeID
	direction := DirectionOutgoing
	if contact.AddresseeID == viewerID {
		otherID = contact.RequesterID
		direction = DirectionIncoming
	}
	return ContactResponse{
		ID:        contact.ID,
		UserID:    otherID,
		Username:  username,
		Status:    contact.Status,
		Direction: direction,
		CreatedAt: contact.CreatedAt,
	}
}

type DirectMessageResponse struct {
	MessageID   string     `json:"message_id"`
	SenderID    string     `json:"sender_id"`
	RecipientID string     `json:"recipient_id"`
	Content     string     `json:"content"`
	ReadAt      *time.Time `json:"read_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

type ConversationResponse struct {
	UserID   string                  `json:"user_id"`
	Messages []DirectMessageResponse `json:"messages"`
}
