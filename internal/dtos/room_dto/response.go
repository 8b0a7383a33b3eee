package room_dto

import (
	"time"

	"github.com/sidhu69/live-room-chat/internal/entity"
)

type RoomResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Code          string    `json:"code"`
	IsPublic      bool      `json:"is_public"`
	CreatorID     string    `json:"creator_id"`
	ActiveMembers int       `json:"active_members"`
	MaxMembers    int       `json:"max_members"`
	LastActivity  time.Time `json:"last_activity"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func NewRoomResponse(room *entity.Room) RoomResponse {
	return RoomResponse{
		ID:            room.ID.String(),
		Name:          room.Name,
		Code:          room.Code,
		IsPublic:      room.IsPublic,
		CreatorID:     room.CreatorID,
		ActiveMembers: room.ActiveMembers,
		MaxMembers:    room.MaxMembers,
		LastActivity:  room.LastActivity,
		CreatedAt:     room.CreatedAt,
		UpdatedAt:     room.UpdatedAt,
	}
}

type JoinRoomResponse struct {
	AlreadyMember bool         `json:"already_member"`
	Room          RoomResponse `json:"room"`
}

type CleanupResponse struct {
	CleanedCount int           `json:"cleaned_count"`
	CleanedRooms []CleanedRoom `json:"cleaned_rooms"`
}

type CleanedRoom struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

type MessageResponse struct {
	MessageID string    `json:"message_id"`
	RoomID    string    `json:"room_id"`
	SenderID  string    `json:"sender_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type GetMessagesResponse struct {
	RoomID   string            `json:"room_id"`
	Messages []MessageResponse `json:"messages"`
}

type RankEntry struct {
	UserID   string  `json:"user_id"`
	Username string  `json:"username"`
	Score    float64 `json:"score"`
}
