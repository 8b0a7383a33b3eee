package message_repo

import (
	"context"
	"fmt"
	"time"

	"github.com/sidhu69/live-room-chat/internal/entity"
	app_error "github.com/sidhu69/live-room-chat/internal/errors"
	"github.com/sidhu69/live-room-chat/state"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const (
	databaseName   = "chat"
	collectionName = "room_messages"
)

type MessageRepo struct {
	AppState *state.AppState
}

func NewMessageRepo(appState *state.AppState) MessageRepoContract {
	return &MessageRepo{
		AppState: appState,
	}
}

func (r *MessageRepo) Insert(ctx context.Context, roomID, senderID, content string) (bson.ObjectID, *app_error.AppError) {
	collection := r.AppState.Mongo.Database(databaseName).Collection(collectionName)

	id := bson.NewObjectID()
	msg := entity.Message{
		ID:       id,
		RoomID:   roomID,
		SenderID: senderID,
		Content:  content,
		CreateAt: time.Now(),
	}

	if _, err := collection.InsertOne(ctx, msg); err != nil {
		return bson.NilObjectID, app_error.Dependency(fmt.Sprintf("failed to insert message: %v", err), "mongo")
	}

	return id, nil
}

func (r *MessageRepo) ListByRoom(ctx context.Context, roomID string, limit int, beforeID *string) ([]*entity.Message, *app_error.AppError) {
	collection := r.AppState.Mongo.Database(databaseName).Collection(collectionName)

	filter := bson.M{"room_id": roomID}

	// cursor pagination: only messages older than before_id
	if beforeID != nil {
		objID, err := bson.ObjectIDFromHex(*beforeID)
		if err != nil {
			return nil, app_error.Validation(fmt.Sprintf("error when trying to parse before_id: %v", err), "before_id")
		}
		filter["_id"] = bson.M{"$lt": objID}
	}

	cur, err := collection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: -1}}).SetLimit(int64(limit)))
	if err != nil {
		return nil, app_error.Dependency(fmt.Sprintf("failed to fetch messages: %v", err), "mongo")
	}
	defer cur.Close(ctx)

	var messages []*entity.Message
	if err := cur.All(ctx, &messages); err != nil {
		return nil, app_error.Dependency(fmt.Sprintf("failed to decode messages: %v", err), "mongo")
	}

	// reverse to ascending order (oldest to newest)
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}

	return messages, nil
}

func (r *MessageRepo) DeleteByRoom(ctx context.Context, roomID string) *app_error.AppError {
	collection := r.AppState.Mongo.Database(databaseName).Collection(collectionName)

	if _, err := collection.DeleteMany(ctx, bson.M{"room_id": roomID}); err != nil {
		return app_error.Dependency(fmt.Sprintf("failed to delete room messages: %v", err), "mongo")
	}
	return nil
}
