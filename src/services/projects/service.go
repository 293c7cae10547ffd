package projects

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
	coll *mongo.Collection
}

func NewService(db *mongo.Database) *Service {
	return &Service{coll: db.Collection(database.ProjectsCollection)}
}

func (s *Service) List(ctx context.Context, params models.PaginationParams, status string) ([]models.Project, int64, error) {
	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	filter := database.SearchFilter(params.Search, "name", "description")
	if status != "" {
		filter["status"] = status
	}
	return database.FindPage[models.Project](ctx, s.coll, filter, params)
}

func (s *Service) Get(ctx context.Context, id string) (*models.Project, error) {
	objID, err := utils.ToObjectID(id)
	if err != nil {
		return nil, err
	}
	return s.findOne(ctx, bson.M{"_id": objID}, id)
}

// GetForClient returns the project only if it belongs to clientID.
func (s *Service) GetForClient(ctx context.Context, clientID, id string) (*models.Project, error) {
	objID, err := utils.ToObjectID(id)
	if err != nil {
		return nil, err
	}
	clientObjID, err := utils.ToObjectID(clientID)
	if err != nil {
		return nil, err
	}
	return s.findOne(ctx, bson.M{"_id": objID, "clientId": clientObjID}, id)
}

func (s *Service) findOne(ctx context.Context, filter bson.M, id string) (*models.Project, error) {
	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	var p models.Project
	err := s.coll.FindOne(ctx, filter).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("project %s: %w", id, apperr.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ListForClient returns every project owned by the client user.
func (s *Service) ListForClient(ctx context.Context, clientID string) ([]models.Project, error) {
	objID, err := utils.ToObjectID(clientID)
	if err != nil {
		return nil, err
	}
	return s.listBy(ctx, bson.M{"clientId": objID})
}

// ListForEmployee returns every project the employee is staffed on.
func (s *Service) ListForEmployee(ctx context.Context, employeeID string) ([]models.Project, error) {
	objID, err := utils.ToObjectID(employeeID)
	if err != nil {
		return nil, err
	}
	return s.listBy(ctx, bson.M{"employeeIds": objID})
}

func (s *Service) listBy(ctx context.Context, filter bson.M) ([]models.Project, error) {
	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()
	return database.FindAll[models.Project](ctx, s.coll, filter,
		options.Find().SetSort(bson.D{{Key: "updatedAt", Value: -1}}))
}

func (s *Service) Create(ctx context.Context, in models.ProjectInput) (*models.Project, error) {
	now := time.Now()
	p := &models.Project{ID: primitive.NewObjectID(), CreatedAt: now}
	if err := apply(p, in); err != nil {
		return nil, err
	}
	p.UpdatedAt = now

	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()
	if _, err := s.coll.InsertOne(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) Update(ctx context.Context, id string, in models.ProjectInput) (*models.Project, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := apply(p, in); err != nil {
		return nil, err
	}
	p.UpdatedAt = time.Now()

	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()
	if _, err := s.coll.ReplaceOne(ctx, bson.M{"_id": p.ID}, p); err != nil {
		return nil, err
	}
	return p, nil
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
		return fmt.Errorf("project %s: %w", id, apperr.ErrNotFound)
	}
	return nil
}

func apply(p *models.Project, in models.ProjectInput) error {
	if in.StartDate != nil && in.EndDate != nil && in.EndDate.Before(*in.StartDate) {
		return fmt.Errorf("%w: endDate is before startDate", apperr.ErrInvalidInput)
	}
	employeeIDs, err := utils.ToObjectIDs(in.EmployeeIDs)
	if err != nil {
		return err
	}

	p.ClientID = nil
	if in.ClientID != "" {
		clientID, err := utils.ToObjectID(in.ClientID)
		if err != nil {
			return err
		}
		p.ClientID = &clientID
	}

	p.Name = strings.TrimSpace(in.Name)
	p.Description = in.Description
	p.Status = in.Status
	if p.Status == "" {
		p.Status = models.ProjectPlanning
	}
	p.EmployeeIDs = employeeIDs
	p.StartDate = in.StartDate
	p.EndDate = in.EndDate
	p.Progress = in.Progress
	if p.Status == models.ProjectCompleted {
		p.Progress = 100
	}
	return nil
}
