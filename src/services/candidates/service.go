package candidates

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
)

// stageOrder ranks hiring stages; rejected can be reached from anywhere.
var stageOrder = map[string]int{
	models.StageApplied:   0,
	models.StageScreening: 1,
	models.StageInterview: 2,
	models.StageOffered:   3,
	models.StageHired:     4,
}

type Service struct {
	coll *mongo.Collection
}

func NewService(db *mongo.Database) *Service {
	return &Service{coll: db.Collection(database.CandidatesCollection)}
}

func (s *Service) List(ctx context.Context, params models.PaginationParams, stage string) ([]models.Candidate, int64, error) {
	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	filter := database.SearchFilter(params.Search, "name", "email", "position")
	if stage != "" {
		filter["stage"] = stage
	}
	return database.FindPage[models.Candidate](ctx, s.coll, filter, params)
}

func (s *Service) Get(ctx context.Context, id string) (*models.Candidate, error) {
	objID, err := utils.ToObjectID(id)
	if err != nil {
		return nil, err
	}
	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	var c models.Candidate
	err = s.coll.FindOne(ctx, bson.M{"_id": objID}).Decode(&c)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("candidate %s: %w", id, apperr.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *Service) Create(ctx context.Context, in models.CandidateInput) (*models.Candidate, error) {
	now := time.Now()
	c := &models.Candidate{ID: primitive.NewObjectID(), Stage: models.StageApplied, CreatedAt: now, UpdatedAt: now}
	apply(c, in)

	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()
	if _, err := s.coll.InsertOne(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) Update(ctx context.Context, id string, in models.CandidateInput) (*models.Candidate, error) {
	c, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Stage != "" && in.Stage != c.Stage {
		if err := CheckStageChange(c.Stage, in.Stage); err != nil {
			return nil, err
		}
	}
	apply(c, in)
	c.UpdatedAt = time.Now()

	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()
	if _, err := s.coll.ReplaceOne(ctx, bson.M{"_id": c.ID}, c); err != nil {
		return nil, err
	}
	return c, nil
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
		return fmt.Errorf("candidate %s: %w", id, apperr.ErrNotFound)
	}
	return nil
}

// CheckStageChange rejects moving a closed candidate (hired/rejected) or moving backwards.
func CheckStageChange(from, to string) error {
	if from == models.StageHired || from == models.StageRejected {
		return fmt.Errorf("%w: candidate is already %s", apperr.ErrConflict, from)
	}
	if to == models.StageRejected {
		return nil
	}
	if stageOrder[to] < stageOrder[from] {
		return fmt.Errorf("%w: cannot move candidate from %s back to %s", apperr.ErrConflict, from, to)
	}
	return nil
}

func apply(c *models.Candidate, in models.CandidateInput) {
	c.Name = strings.TrimSpace(in.Name)
	c.Email = strings.ToLower(strings.TrimSpace(in.Email))
	c.Phone = in.Phone
	c.Position = in.Position
	c.Notes = in.Notes
	if in.Stage != "" {
		c.Stage = in.Stage
	}
}
