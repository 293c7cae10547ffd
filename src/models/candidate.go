package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Candidate stages, in hiring order.
const (
	StageApplied   = "applied"
	StageScreening = "screening"
	StageInterview = "interview"
	StageOffered   = "offered"
	StageHired     = "hired"
	StageRejected  = "rejected"
)

type Candidate struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Phone     string             `bson:"phone" json:"phone"`
	Position  string             `bson:"position" json:"position"`
	Stage     string             `bson:"stage" json:"stage"`
	Notes     string             `bson:"notes" json:"notes"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

type CandidateInput struct {
	Name     string `json:"name" validate:"required,min=2"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone"`
	Position string `json:"position" validate:"required"`
	Stage    string `json:"stage" validate:"omitempty,oneof=applied screening interview offered hired rejected"`
	Notes    string `json:"notes"`
}
