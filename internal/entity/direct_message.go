package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type DirectMessage struct {
	ID          bson.ObjectID `bson:"_id,omitempty" json:"id"`
	SenderID    string        `bson:"sender_id" json:"sender_id"`
	RecipientID string        `bson:"recipient_id" json:"recipient_id"`
	Content     string        `bson:"content" json:"content"`
	ReadAt      *time.Time    `bson:"read_at,omitempty" json:"read_at,omitempty"`
	CreateAt    time.Time     `bson:"created_at" json:"created_at"`
}
