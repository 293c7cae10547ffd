package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	TrainingPending    = "pending"
	TrainingInProgress = "in_progress"
	TrainingCompleted  = "completed"
)

type TrainingTask struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	EmployeeID  primitive.ObjectID `bson:"employeeId" json:"employeeId"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	DueDate     *time.Time         `bson:"dueDate,omitempty" json:"dueDate,omitempty"`
	Status      string             `bson:"status" json:"status"`
	CompletedAt *time.Time         `bson:"completedAt,omitempty" json:"completedAt,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

type TrainingTaskInput struct {
	EmployeeID  string     `json:"employeeId" validate:"required,len=24,hexadecimal"`
	Title       string     `json:"title" validate:"required"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"dueDate"`
	Status      string     `json:"status" validate:"omitempty,oneof=pending in_progress completed"`
}

type TrainingStatusInput struct {
	Status string `json:"status" validate:"required,oneof=pending in_progress completed"`
}
