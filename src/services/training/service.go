package training

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
	now  func() time.Time
}

func NewService(db *mongo.Database) *Service {
	return &Service{coll: db.Collection(database.TrainingCollection), now: time.Now}
}

func (s *Service) List(ctx context.Context, params models.PaginationParams, employeeID, status string) ([]models.TrainingTask, int64, error) {
	filter := database.SearchFilter(params.Search, "title", "description")
	if employeeID != "" {
		objID, err := utils.ToObjectID(employeeID)
		if err != nil {
			return nil, 0, err
		}
		filter["employeeId"] = objID
	}
	if status != "" {
		filter["status"] = status
	}

	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()
	return database.FindPage[models.TrainingTask](ctx, s.coll, filter, params)
}

func (s *Service) ListForEmployee(ctx context.Context, employeeID string) ([]models.TrainingTask, error) {
	objID, err := utils.ToObjectID(employeeID)
	if err != nil {
		return nil, err
	}
	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()
	return database.FindAll[models.TrainingTask](ctx, s.coll, bson.M{"employeeId": objID},
		options.Find().SetSort(bson.D{{Key: "dueDate", Value: 1}, {Key: "_id", Value: 1}}))
}

func (s *Service) Get(ctx context.Context, id string) (*models.TrainingTask, error) {
	objID, err := utils.ToObjectID(id)
	if err != nil {
		return nil, err
	}
	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	var task models.TrainingTask
	err = s.coll.FindOne(ctx, bson.M{"_id": objID}).Decode(&task)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("training task %s: %w", id, apperr.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (s *Service) Create(ctx context.Context, in models.TrainingTaskInput) (*models.TrainingTask, error) {
	now := s.now()
	task := &models.TrainingTask{ID: primitive.NewObjectID(), Status: models.TrainingPending, CreatedAt: now}
	if err := s.apply(task, in); err != nil {
		return nil, err
	}

	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()
	if _, err := s.coll.InsertOne(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *Service) Update(ctx context.Context, id string, in models.TrainingTaskInput) (*models.TrainingTask, error) {
	task, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.apply(task, in); err != nil {
		return nil, err
	}
	return task, s.replace(ctx, task)
}

// UpdateStatus is the employee-facing progress update; only the assignee may call it.
func (s *Service) UpdateStatus(ctx context.Context, employeeID, id, status string) (*models.TrainingTask, error) {
	task, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if task.EmployeeID.Hex() != employeeID {
		return nil, fmt.Errorf("training task %s: %w", id, apperr.ErrNotFound)
	}
	s.setStatus(task, status)
	return task, s.replace(ctx, task)
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
		return fmt.Errorf("training task %s: %w", id, apperr.ErrNotFound)
	}
	return nil
}

func (s *Service) replace(ctx context.Context, task *models.TrainingTask) error {
	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()
	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": task.ID}, task)
	return err
}

func (s *Service) apply(task *models.TrainingTask, in models.TrainingTaskInput) error {
	employeeID, err := utils.ToObjectID(in.EmployeeID)
	if err != nil {
		return err
	}
	task.EmployeeID = employeeID
	task.Title = strings.TrimSpace(in.Title)
	task.Description = in.Description
	task.DueDate = in.DueDate
	if in.Status != "" {
		s.setStatus(task, in.Status)
	} else {
		task.UpdatedAt = s.now()
	}
	return nil
}

// setStatus keeps CompletedAt consistent with the status.
func (s *Service) setStatus(task *models.TrainingTask, status string) {
	now := s.now()
	if status == models.TrainingCompleted && task.Status != models.TrainingCompleted {
		task.CompletedAt = &now
	}
	if status != models.TrainingCompleted {
		task.CompletedAt = nil
	}
	task.Status = status
	task.UpdatedAt = now
}
