package auditlogs

import (
	"context"
	"time"

	"pulsepad-backend/src/database"
	"pulsepad-backend/src/logger"
	"pulsepad-backend/src/models"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Service struct {
	coll *mongo.Collection
	now  func() time.Time
}

func NewService(db *mongo.Database) *Service {
	return &Service{coll: db.Collection(database.AuditLogsCollection), now: time.Now}
}

// Record writes an audit entry. Failures are logged and never surface to the caller.
func (s *Service) Record(ctx context.Context, actor models.Actor, action, entity, entityID, details string) {
	ctx, cancel := database.WithTimeout(context.WithoutCancel(ctx))
	defer cancel()

	entry := models.AuditLog{
		ActorID:    actor.UserID,
		ActorEmail: actor.Email,
		Action:     action,
		Entity:     entity,
		EntityID:   entityID,
		Details:    details,
		RequestID:  actor.RequestID,
		CreatedAt:  s.now(),
	}
	if _, err := s.coll.InsertOne(ctx, entry); err != nil {
		logger.Log.Error("❌ Failed to write audit log",
			zap.String("action", action),
			zap.String("entity", entity),
			zap.String("entityId", entityID),
			zap.Error(err),
		)
	}
}

// Filter narrows List. Empty fields match everything.
type Filter struct {
	Entity  string `query:"entity"`
	Action  string `query:"action"`
	ActorID string `query:"actorId"`
}

func (s *Service) List(ctx context.Context, params models.PaginationParams, f Filter) ([]models.AuditLog, int64, error) {
	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	filter := database.SearchFilter(params.Search, "details", "actorEmail", "entityId")
	if f.Entity != "" {
		filter["entity"] = f.Entity
	}
	if f.Action != "" {
		filter["action"] = f.Action
	}
	if f.ActorID != "" {
		filter["actorId"] = f.ActorID
	}
	if params.SortBy == "" || params.SortBy == "_id" {
		params.SortBy = "createdAt"
		params.Order = "desc"
	}
	return database.FindPage[models.AuditLog](ctx, s.coll, filter, params)
}
