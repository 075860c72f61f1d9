// File: database/repository/conversation/conversationMongoCrud.go
package conversationRepo

import (
	"fmt"
	"time"

	"petcare/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// FindBySessionID retrieves the conversation for the given session id.
// Returns ErrNotFound when no conversation exists.
func (r *MongoConversationRepo) FindBySessionID(sessionID string) (*models.Conversation, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var conv models.Conversation
	if err := r.coll.FindOne(ctx, bson.M{"sessionId": sessionID}).Decode(&conv); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch conversation %s: %w", sessionID, err)
	}
	return &conv, nil
}

// Save upserts the conversation aggregate keyed by session id.
func (r *MongoConversationRepo) Save(conv *models.Conversation) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	if conv.CreatedAt.IsZero() {
		conv.CreatedAt = now
	}
	conv.UpdatedAt = now

	filter := bson.M{"sessionId": conv.SessionID}
	update := bson.M{"$set": conv}
	opts := options.Update().SetUpsert(true)

	if _, err := r.coll.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("failed to save conversation %s: %w", conv.SessionID, err)
	}
	return nil
}
