package notifications

import (
	"context"
	"fmt"
	"time"

	"pulsepad-backend/src/apperr"
	"pulsepad-backend/src/database"
	"pulsepad-backend/src/models"
	"pulsepad-backend/src/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Service struct {
	coll *mongo.Collection
}

func NewService(db *mongo.Database) *Service {
	return &Service{coll: db.Collection(database.NotificationsCollection)}
}

// Send stores one notification per user.
func (s *Service) Send(ctx context.Context, userIDs []primitive.ObjectID, title, message string) error {
	if len(userIDs) == 0 {
		return nil
	}
	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	now := time.Now()
	docs := make([]interface{}, 0, len(userIDs))
	for _, id := range userIDs {
		docs = append(docs, models.Notification{
			ID:        primitive.NewObjectID(),
			UserID:    id,
			Title:     title,
			Message:   message,
			CreatedAt: now,
		})
	}
	_, err := s.coll.InsertMany(ctx, docs)
	return err
}

// ListForUser returns the newest notifications first.
func (s *Service) ListForUser(ctx context.Context, userID string, unreadOnly bool) ([]models.Notification, error) {
	objID, err := utils.ToObjectID(userID)
	if err != nil {
		return nil, err
	}
	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	filter := bson.M{"userId": objID}
	if unreadOnly {
		filter["read"] = false
	}
	return database.FindAll[models.Notification](ctx, s.coll, filter,
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}).SetLimit(100))
}

func (s *Service) MarkRead(ctx context.Context, userID, id string) error {
	userObjID, err := utils.ToObjectID(userID)
	if err != nil {
		return err
	}
	objID, err := utils.ToObjectID(id)
	if err != nil {
		return err
	}
	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	res, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": objID, "userId": userObjID},
		bson.M{"$set": bson.M{"read": true}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("notification %s: %w", id, apperr.ErrNotFound)
	}
	return nil
}
