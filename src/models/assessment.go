package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DailyAssessment status values. Transitions only move forward.
const (
	AssessmentAssigned  = "ASSIGNED"
	AssessmentSubmitted = "SUBMITTED"
	AssessmentValidated = "VALIDATED"
)

// DateLayout is the calendar-date format stored on daily records.
const DateLayout = "2006-01-02"

// ChecklistItem is one yes/no criterion of a template.
type ChecklistItem struct {
	ID     string `bson:"id" json:"id"`
	Text   string `bson:"text" json:"text" validate:"required"`
	Weight int    `bson:"weight" json:"weight" validate:"required,gte=1"`
}

type AssessmentTemplate struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Items     []ChecklistItem    `bson:"items" json:"items"`
	CreatedBy string             `bson:"createdBy,omitempty" json:"createdBy,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// TotalWeight sums the weight of every checklist item. Non-positive weights
// count as zero.
func (t *AssessmentTemplate) TotalWeight() int {
	total := 0
	for _, item := range t.Items {
		if item.Weight > 0 {
			total += item.Weight
		}
	}
	return total
}

// HasItem reports whether id names a checklist item of this template.
func (t *AssessmentTemplate) HasItem(id string) bool {
	for _, item := range t.Items {
		if item.ID == id {
			return true
		}
	}
	return false
}

type AssessmentTemplateInput struct {
	Name  string          `json:"name" validate:"required,min=2"`
	Items []ChecklistItem `json:"items" validate:"required,min=1,dive"`
}

// DailyAssessment is one (employee, template, date) record.
// FinalScore is set iff Status is VALIDATED.
type DailyAssessment struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	EmployeeID       primitive.ObjectID `bson:"employeeId" json:"employeeId"`
	TemplateID       primitive.ObjectID `bson:"templateId" json:"templateId"`
	Date             string             `bson:"date" json:"date"`
	Status           string             `bson:"status" json:"status"`
	Responses        map[string]bool    `bson:"responses" json:"responses"`
	AdminCorrections map[string]bool    `bson:"adminCorrections,omitempty" json:"adminCorrections,omitempty"`
	FinalScore       *float64           `bson:"finalScore,omitempty" json:"finalScore,omitempty"`
	SubmittedAt      *time.Time         `bson:"submittedAt,omitempty" json:"submittedAt,omitempty"`
	ValidatedAt      *time.Time         `bson:"validatedAt,omitempty" json:"validatedAt,omitempty"`
	ValidatedBy      string             `bson:"validatedBy,omitempty" json:"validatedBy,omitempty"`
	CreatedAt        time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time          `bson:"updatedAt" json:"updatedAt"`
}

type AssignAssessmentsInput struct {
	EmployeeIDs []string `json:"employeeIds" validate:"required,min=1,dive,len=24,hexadecimal"`
	TemplateIDs []string `json:"templateIds" validate:"required,min=1,dive,len=24,hexadecimal"`
}

type SubmitAssessmentInput struct {
	Responses map[string]bool `json:"responses" validate:"required"`
}

// ValidateAssessmentInput carries the admin's corrections. Status and
// FinalScore are accepted for compatibility with the dashboard payload but
// the server always recomputes them.
type ValidateAssessmentInput struct {
	Status           string          `json:"status"`
	AdminCorrections map[string]bool `json:"adminCorrections"`
	FinalScore       *float64        `json:"finalScore"`
}

// AssessmentWithTemplate pairs a record with the template it references.
type AssessmentWithTemplate struct {
	DailyAssessment `bson:",inline"`
	Template        *AssessmentTemplate `bson:"template,omitempty" json:"template,omitempty"`
}

// EmployeePerformance is one leaderboard row.
type EmployeePerformance struct {
	EmployeeID   string  `json:"employeeId"`
	EmployeeName string  `json:"employeeName,omitempty"`
	Average      float64 `json:"average"`
	Percentage   float64 `json:"percentage"`
	Count        int     `json:"count"`
}
