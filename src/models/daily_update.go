package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DailyUpdate is an employee's end-of-day status note.
type DailyUpdate struct {
	ID          primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	EmployeeID  primitive.ObjectID  `bson:"employeeId" json:"employeeId"`
	ProjectID   *primitive.ObjectID `bson:"projectId,omitempty" json:"projectId,omitempty"`
	Date        string              `bson:"date" json:"date"`
	Summary     string              `bson:"summary" json:"summary"`
	Blockers    string              `bson:"blockers" json:"blockers"`
	HoursWorked float64             `bson:"hoursWorked" json:"hoursWorked"`
	CreatedAt   time.Time           `bson:"createdAt" json:"createdAt"`
}

type DailyUpdateInput struct {
	ProjectID   string  `json:"projectId" validate:"omitempty,len=24,hexadecimal"`
	Summary     string  `json:"summary" validate:"required,min=3"`
	Blockers    string  `json:"blockers"`
	HoursWorked float64 `json:"hoursWorked" validate:"gte=0,lte=24"`
}
