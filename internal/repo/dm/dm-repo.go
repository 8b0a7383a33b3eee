package dm_repo

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
	collectionName = "direct_messages"
)

type DMRepo struct {
	AppState *state.AppState
}

func NewDMRepo(appState *state.AppState) DMRepoContract {
	return &DMRepo{
		AppState: appState,
	}
}

func (r *DMRepo) Insert(ctx context.Context, senderID, recipientID, content string) (bson.ObjectID, *app_error.AppError) {
	collection := r.AppState.Mongo.Database(databaseName).Collection(collectionName)

	id := bson.NewObjectID()
	msg := entity.DirectMessage{
		ID:          id,
		SenderID:    senderID,
		RecipientID: recipientID,
		Content:     content,
		CreateAt:    time.Now(),
	}

	if _, err := collection.InsertOne(ctx, msg); err != nil {
		return bson.NilObjectID, app_error.Dependency(fmt.Sprintf("failed to insert direct message: %v", err), "mongo")
	}

	return id, nil
}

func (r *DMRepo) ListConversation(ctx context.Context, userA, userB string, limit int, beforeID *string) ([]*entity.DirectMessage, *app_error.AppError) {
	collection := r.AppState.Mongo.Database(databaseName).Collection(collectionName)

	filter := bson.M{"$or": bson.A{
		bson.M{"sender_id": userA, "recipient_id": userB},
		bson.M{"sender_id": userB, "recipient_id": userA},
	}}

	if beforeID != nil {
		objID, err := bson.ObjectIDFromHex(*beforeID)
		if err != nil {
			return nil, app_error.Validation(fmt.Sprintf("error when trying to parse before_id: %v", err), "before_id")
		}
		filter["_id"] = bson.M{"$lt": objID}
	}

	cur, err := collection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: -1}}).SetLimit(int64(limit)))
	if err != nil {
		return nil, app_error.Dependency(fmt.Sprintf("failed to fetch direct messages: %v", err), "mongo")
	}
	defer cur.Close(ctx)

	var messages []*entity.DirectMessage
	if err := cur.All(ctx, &messages); err != nil {
		return nil, app_error.Dependency(fmt.Sprintf("failed to decode direct messages: %v", err), "mongo")
	}

	// reverse to ascending order (oldest to newest)
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}

	return messages, nil
}

func (r *DMRepo) CountBySender(ctx context.Context, senderID, recipientID string) (int64, *app_error.AppError) {
	collection := r.AppState.Mongo.Database(databaseName).Collection(collectionName)

	count, err := collection.CountDocuments(ctx, bson.M{"sender_id": senderID, "recipient_id": recipientID})
	if err != nil {
		return 0, app_error.Dependency(fmt.Sprintf("failed to count direct messages: %v", err), "mongo")
	}
	return count, nil
}

func (r *DMRepo) MarkRead(ctx context.Context, recipientID, senderID string) (int64, *app_error.AppError) {
	collection := r.AppState.Mongo.Database(databaseName).Collection(collectionName)

	res, err := collection.UpdateMany(ctx,
		bson.M{"recipient_id": recipientID, "sender_id": senderID, "read_at": bson.M{"$exists": false}},
		bson.M{"$set": bson.M{"read_at": time.Now()}},
	)
	if err != nil {
		return 0, app_error.Dependency(fmt.Sprintf("failed to mark messages read: %v", err), "mongo")
	}
	return res.ModifiedCount, nil
}
