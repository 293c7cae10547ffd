package updates

import (
	"context"
	"strings"
	"time"

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
	return &Service{coll: db.Collection(database.UpdatesCollection), now: time.Now}
}

// Create records a status update for today on behalf of employeeID.
func (s *Service) Create(ctx context.Context, employeeID string, in models.DailyUpdateInput) (*models.DailyUpdate, error) {
	empID, err := utils.ToObjectID(employeeID)
	if err != nil {
		return nil, err
	}
	now := s.now()
	u := &models.DailyUpdate{
		ID:          primitive.NewObjectID(),
		EmployeeID:  empID,
		Date:        utils.Today(now),
		Summary:     strings.TrimSpace(in.Summary),
		Blockers:    strings.TrimSpace(in.Blockers),
		HoursWorked: in.HoursWorked,
		CreatedAt:   now,
	}
	if in.ProjectID != "" {
		projectID, err := utils.ToObjectID(in.ProjectID)
		if err != nil {
			return nil, err
		}
		u.ProjectID = &projectID
	}

	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()
	if _, err := s.coll.InsertOne(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *Service) ListForEmployee(ctx context.Context, employeeID string, limit int64) ([]models.DailyUpdate, error) {
	empID, err := utils.ToObjectID(employeeID)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 30
	}
	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()
	return database.FindAll[models.DailyUpdate](ctx, s.coll, bson.M{"employeeId": empID},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}).SetLimit(limit))
}

// Filter narrows the admin listing.
type Filter struct {
	EmployeeID string `query:"employeeId"`
	ProjectID  string `query:"projectId"`
	Date       string `query:"date"`
}

func (s *Service) List(ctx context.Context, params models.PaginationParams, f Filter) ([]models.DailyUpdate, int64, error) {
	filter := database.SearchFilter(params.Search, "summary", "blockers")
	if f.EmployeeID != "" {
		id, err := utils.ToObjectID(f.EmployeeID)
		if err != nil {
			return nil, 0, err
		}
		filter["employeeId"] = id
	}
	if f.ProjectID != "" {
		id, err := utils.ToObjectID(f.ProjectID)
		if err != nil {
			return nil, 0, err
		}
		filter["projectId"] = id
	}
	if f.Date != "" {
		filter["date"] = f.Date
	}
	if params.SortBy == "" || params.SortBy == "_id" {
		params.SortBy = "createdAt"
		params.Order = "desc"
	}

	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()
	return database.FindPage[models.DailyUpdate](ctx, s.coll, filter, params)
}
