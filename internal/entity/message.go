package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type Message struct {
	ID       bson.ObjectID `bson:"_id,omitempty" json:"id"`
	RoomID   string        `bson:"room_id" json:"room_id"`
	SenderID string        `bson:"sender_id" json:"sender_id"`
	Content  string        `bson:"content" json:"content"`
	CreateAt time.Time     `bson:"created_at" json:"created_at"`
}
