package entity

import (
	"time"

	"github.com/google/uuid"
)

// Room is a joinable chat channel. ActiveMembers is a maintained counter of
// room_members rows with is_active = true; every mutation of it happens in
// the same transaction as the membership write.
type Room struct {
	ID            uuid.UUID `gorm:"primaryKey" json:"id"`
	Name          string    `gorm:"not null" json:"name"`
	Code          string    `gorm:"size:6;uniqueIndex;not null" json:"code"`
	IsPublic      bool      `gorm:"not null;default:true" json:"is_public"`
	CreatorID     string    `gorm:"not null" json:"creator_id"`
	ActiveMembers int       `gorm:"not null;default:0" json:"active_members"`
	MaxMembers    int       `gorm:"not null" json:"max_members"`
	LastActivity  time.Time `gorm:"not null" json:"last_activity"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// RoomMember holds at most one row per (room, user). Leaving flips IsActive
// instead of deleting, so a re-join reactivates the existing row.
type RoomMember struct {
	ID       int64     `gorm:"primaryKey" json:"id"`
	RoomID   string    `gorm:"not null;uniqueIndex:idx_room_user" json:"room_id"`
	UserID   string    `gorm:"not null;uniqueIndex:idx_room_user" json:"user_id"`
	IsActive bool      `gorm:"not null;default:true" json:"is_active"`
	JoinedAt time.Time `gorm:"autoCreateTime" json:"joined_at"`
}
