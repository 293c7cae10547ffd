package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	ProjectPlanning  = "planning"
	ProjectActive    = "active"
	ProjectOnHold    = "on_hold"
	ProjectCompleted = "completed"
)

type Project struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name        string               `bson:"name" json:"name"`
	Description string               `bson:"description" json:"description"`
	Status      string               `bson:"status" json:"status"`
	ClientID    *primitive.ObjectID  `bson:"clientId,omitempty" json:"clientId,omitempty"`
	EmployeeIDs []primitive.ObjectID `bson:"employeeIds" json:"employeeIds"`
	StartDate   *time.Time           `bson:"startDate,omitempty" json:"startDate,omitempty"`
	EndDate     *time.Time           `bson:"endDate,omitempty" json:"endDate,omitempty"`
	Progress    int                  `bson:"progress" json:"progress"`
	CreatedAt   time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time            `bson:"updatedAt" json:"updatedAt"`
}

type ProjectInput struct {
	Name        string     `json:"name" validate:"required,min=2"`
	Description string     `json:"description"`
	Status      string     `json:"status" validate:"omitempty,oneof=planning active on_hold completed"`
	ClientID    string     `json:"clientId" validate:"omitempty,len=24,hexadecimal"`
	EmployeeIDs []string   `json:"employeeIds" validate:"dive,len=24,hexadecimal"`
	StartDate   *time.Time `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
	Progress    int        `json:"progress" validate:"gte=0,lte=100"`
}
