package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	EmployeeActive   = "active"
	EmployeeInactive = "inactive"
)

// Employee is a staff profile. Accounts live in User.
type Employee struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name       string             `bson:"name" json:"name"`
	Email      string             `bson:"email" json:"email"`
	Position   string             `bson:"position" json:"position"`
	Department string             `bson:"department" json:"department"`
	Skills     []string           `bson:"skills" json:"skills"`
	Status     string             `bson:"status" json:"status"`
	JoinedAt   time.Time          `bson:"joinedAt" json:"joinedAt"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt" json:"updatedAt"`
}

type EmployeeInput struct {
	Name       string    `json:"name" validate:"required,min=2"`
	Email      string    `json:"email" validate:"required,email"`
	Position   string    `json:"position" validate:"required"`
	Department string    `json:"department"`
	Skills     []string  `json:"skills"`
	Status     string    `json:"status" validate:"omitempty,oneof=active inactive"`
	JoinedAt   time.Time `json:"joinedAt"`
}
