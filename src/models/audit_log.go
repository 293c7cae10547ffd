package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Audit actions.
const (
	ActionCreate      = "create"
	ActionUpdate      = "update"
	ActionDelete      = "delete"
	ActionAssign      = "assign"
	ActionValidate    = "validate"
	ActionForceScore  = "force_score"
	ActionLogin       = "login"
	ActionLoginFailed = "login_failed"
)

type AuditLog struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ActorID    string             `bson:"actorId" json:"actorId"`
	ActorEmail string             `bson:"actorEmail" json:"actorEmail"`
	Action     string             `bson:"action" json:"action"`
	Entity     string             `bson:"entity" json:"entity"`
	EntityID   string             `bson:"entityId" json:"entityId"`
	Details    string             `bson:"details,omitempty" json:"details,omitempty"`
	RequestID  string             `bson:"requestId,omitempty" json:"requestId,omitempty"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
}
