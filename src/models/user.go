package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
	RoleClient   = "client"
)

// User is an account that can sign in. Employees link to their profile via RefID.
type User struct {
	ID        primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Email     string              `bson:"email" json:"email"`
	Name      string              `bson:"name" json:"name"`
	Password  string              `bson:"password,omitempty" json:"-"`
	Role      string              `bson:"role" json:"role"`
	RefID     *primitive.ObjectID `bson:"refId,omitempty" json:"refId,omitempty"`
	Picture   string              `bson:"picture,omitempty" json:"picture,omitempty"`
	IsActive  bool                `bson:"isActive" json:"isActive"`
	LastLogin *time.Time          `bson:"lastLogin,omitempty" json:"lastLogin,omitempty"`
	CreatedAt time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time           `bson:"updatedAt" json:"updatedAt"`
}

type UserInput struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required,min=2"`
	Role     string `json:"role" validate:"required,oneof=admin employee client"`
	Password string `json:"password" validate:"omitempty,min=8"`
	RefID    string `json:"refId" validate:"omitempty,len=24,hexadecimal"`
	IsActive *bool  `json:"isActive"`
}
