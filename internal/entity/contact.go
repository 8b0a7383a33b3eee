package entity

import "time"

// Contact statuses.
const (
	ContactPending  = "pending"
	ContactAccepted = "accepted"
	ContactRejected = "rejected"
)

// Contact is the edge between two users. RequesterID sent the friend
// request; only AddresseeID may accept or reject it. One row exists per
// pair regardless of direction.
type Contact struct {
	ID          int64     `gorm:"primaryKey" json:"id"`
	RequesterID string    `gorm:"not null;uniqueIndex:idx_contact_pair" json:"requester_id"`
	AddresseeID string    `gorm:"not null;uniqueIndex:idx_contact_pair" json:"addressee_id"`
	Status      string    `gorm:"not null;default:pending" json:"status"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
