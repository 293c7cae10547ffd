package employees

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
)

type Service struct {
	coll  *mongo.Collection
	users *mongo.Collection
}

func NewService(db *mongo.Database) *Service {
	return &Service{
		coll:  db.Collection(database.EmployeesCollection),
		users: db.Collection(database.UsersCollection),
	}
}

func (s *Service) List(ctx context.Context, params models.PaginationParams, status string) ([]models.Employee, int64, error) {
	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	filter := database.SearchFilter(params.Search, "name", "email", "position", "department")
	if status != "" {
		filter["status"] = status
	}
	return database.FindPage[models.Employee](ctx, s.coll, filter, params)
}

func (s *Service) Get(ctx context.Context, id string) (*models.Employee, error) {
	objID, err := utils.ToObjectID(id)
	if err != nil {
		return nil, err
	}
	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	var e models.Employee
	err = s.coll.FindOne(ctx, bson.M{"_id": objID}).Decode(&e)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("employee %s: %w", id, apperr.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *Service) Create(ctx context.Context, in models.EmployeeInput) (*models.Employee, error) {
	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	now := time.Now()
	e := &models.Employee{
		ID:        primitive.NewObjectID(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	apply(e, in)
	if e.JoinedAt.IsZero() {
		e.JoinedAt = now
	}

	if _, err := s.coll.InsertOne(ctx, e); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("%w: employee email %s already exists", apperr.ErrConflict, e.Email)
		}
		return nil, err
	}
	return e, nil
}

func (s *Service) Update(ctx context.Context, id string, in models.EmployeeInput) (*models.Employee, error) {
	e, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	apply(e, in)
	e.UpdatedAt = time.Now()
	if _, err := s.coll.ReplaceOne(ctx, bson.M{"_id": e.ID}, e); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("%w: employee email %s already exists", apperr.ErrConflict, e.Email)
		}
		return nil, err
	}

	// keep the linked account's display name in sync
	_, err = s.users.UpdateOne(ctx,
		bson.M{"refId": e.ID, "role": models.RoleEmployee},
		bson.M{"$set": bson.M{"name": e.Name, "updatedAt": e.UpdatedAt}},
	)
	return e, err
}

// Delete removes the profile and deactivates the linked account.
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
		return fmt.Errorf("employee %s: %w", id, apperr.ErrNotFound)
	}
	_, err = s.users.UpdateOne(ctx,
		bson.M{"refId": objID, "role": models.RoleEmployee},
		bson.M{"$set": bson.M{"isActive": false, "updatedAt": time.Now()}},
	)
	return err
}

// Names maps employee ids to display names.
func (s *Service) Names(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]string, error) {
	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	list, err := database.FindAll[models.Employee](ctx, s.coll, bson.M{"_id": bson.M{"$in": ids}},
		options.Find().SetProjection(bson.M{"name": 1}))
	if err != nil {
		return nil, err
	}
	out := make(map[primitive.ObjectID]string, len(list))
	for _, e := range list {
		out[e.ID] = e.Name
	}
	return out, nil
}

func apply(e *models.Employee, in models.EmployeeInput) {
	e.Name = strings.TrimSpace(in.Name)
	e.Email = strings.ToLower(strings.TrimSpace(in.Email))
	e.Position = in.Position
	e.Department = in.Department
	e.Skills = in.Skills
	if e.Skills == nil {
		e.Skills = []string{}
	}
	e.Status = in.Status
	if e.Status == "" {
		e.Status = models.EmployeeActive
	}
	if !in.JoinedAt.IsZero() {
		e.JoinedAt = in.JoinedAt
	}
}
