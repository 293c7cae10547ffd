package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"pulsepad-backend/src/apperr"
	"pulsepad-backend/src/database"
	"pulsepad-backend/src/models"
	"pulsepad-backend/src/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"
)

type Service struct {
	coll *mongo.Collection
}

func NewService(db *mongo.Database) *Service {
	return &Service{coll: db.Collection(database.UsersCollection)}
}

func (s *Service) List(ctx context.Context, params models.PaginationParams, role string) ([]models.User, int64, error) {
	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	filter := database.SearchFilter(params.Search, "name", "email")
	if role != "" {
		filter["role"] = role
	}
	return database.FindPage[models.User](ctx, s.coll, filter, params)
}

func (s *Service) Get(ctx context.Context, id string) (*models.User, error) {
	objID, err := utils.ToObjectID(id)
	if err != nil {
		return nil, err
	}
	return s.findOne(ctx, bson.M{"_id": objID}, id)
}

func (s *Service) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return s.findOne(ctx, bson.M{"email": email}, email)
}

func (s *Service) findOne(ctx context.Context, filter bson.M, key string) (*models.User, error) {
	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	var u models.User
	err := s.coll.FindOne(ctx, filter).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("user %s: %w", key, apperr.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *Service) Create(ctx context.Context, in models.UserInput) (*models.User, error) {
	now := time.Now()
	u := &models.User{ID: primitive.NewObjectID(), IsActive: true, CreatedAt: now, UpdatedAt: now}
	if err := apply(u, in); err != nil {
		return nil, err
	}

	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()
	if _, err := s.coll.InsertOne(ctx, u); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("%w: user %s already exists", apperr.ErrConflict, u.Email)
		}
		return nil, err
	}
	return u, nil
}

func (s *Service) Update(ctx context.Context, id string, in models.UserInput) (*models.User, error) {
	u, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := apply(u, in); err != nil {
		return nil, err
	}
	u.UpdatedAt = time.Now()

	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()
	if _, err := s.coll.ReplaceOne(ctx, bson.M{"_id": u.ID}, u); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("%w: user %s already exists", apperr.ErrConflict, u.Email)
		}
		return nil, err
	}
	return u, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	objID, err := utils.ToObjectID(id)
	if err != nil {
		return err
	}
	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("user %s: %w", id, apperr.ErrNotFound)
	}
	return nil
}

// TouchLogin stamps lastLogin and refreshes profile fields from the identity provider.
func (s *Service) TouchLogin(ctx context.Context, id primitive.ObjectID, picture string) error {
	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	set := bson.M{"lastLogin": time.Now()}
	if picture != "" {
		set["picture"] = picture
	}
	_, err := s.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	return err
}

// Recipient is the account behind an employee profile.
type Recipient struct {
	UserID primitive.ObjectID
	Email  string
	Name   string
}

// RecipientsForEmployees resolves active accounts linked to the employee profiles.
func (s *Service) RecipientsForEmployees(ctx context.Context, employeeIDs []primitive.ObjectID) ([]Recipient, error) {
	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	list, err := database.FindAll[models.User](ctx, s.coll, bson.M{
		"refId":    bson.M{"$in": employeeIDs},
		"role":     models.RoleEmployee,
		"isActive": true,
	}, options.Find().SetProjection(bson.M{"email": 1, "name": 1}))
	if err != nil {
		return nil, err
	}
	out := make([]Recipient, 0, len(list))
	for _, u := range list {
		out = append(out, Recipient{UserID: u.ID, Email: u.Email, Name: u.Name})
	}
	return out, nil
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func apply(u *models.User, in models.UserInput) error {
	u.Email = strings.ToLower(strings.TrimSpace(in.Email))
	u.Name = strings.TrimSpace(in.Name)
	u.Role = in.Role
	if in.IsActive != nil {
		u.IsActive = *in.IsActive
	}

	u.RefID = nil
	if in.RefID != "" {
		refID, err := utils.ToObjectID(in.RefID)
		if err != nil {
			return err
		}
		u.RefID = &refID
	}
	if u.Role == models.RoleEmployee && u.RefID == nil {
		return fmt.Errorf("%w: employee accounts need refId", apperr.ErrInvalidInput)
	}

	if in.Password != "" {
		hashed, err := HashPassword(in.Password)
		if err != nil {
			return errors.New("failed to hash password")
		}
		u.Password = hashed
	}
	return nil
}
