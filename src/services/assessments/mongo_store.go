package assessments

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"pulsepad-backend/src/apperr"
	"pulsepad-backend/src/database"
	"pulsepad-backend/src/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore keeps templates and daily assessments in MongoDB.
type MongoStore struct {
	templates   *mongo.Collection
	assessments *mongo.Collection
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{
		templates:   db.Collection(database.TemplatesCollection),
		assessments: db.Collection(database.AssessmentsCollection),
	}
}

func (s *MongoStore) GetTemplate(ctx context.Context, id primitive.ObjectID) (*models.AssessmentTemplate, error) {
	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	var t models.AssessmentTemplate
	err := s.templates.FindOne(ctx, bson.M{"_id": id}).Decode(&t)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("template %s: %w", id.Hex(), apperr.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *MongoStore) ListTemplates(ctx context.Context) ([]models.AssessmentTemplate, error) {
	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	return database.FindAll[models.AssessmentTemplate](ctx, s.templates, bson.M{},
		options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
}

func (s *MongoStore) InsertTemplate(ctx context.Context, t *models.AssessmentTemplate) error {
	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	t.ID = primitive.NewObjectID()
	_, err := s.templates.InsertOne(ctx, t)
	return err
}

func (s *MongoStore) UpdateTemplate(ctx context.Context, t *models.AssessmentTemplate) error {
	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	res, err := s.templates.UpdateOne(ctx, bson.M{"_id": t.ID}, bson.M{"$set": bson.M{
		"name":      t.Name,
		"items":     t.Items,
		"updatedAt": t.UpdatedAt,
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("template %s: %w", t.ID.Hex(), apperr.ErrNotFound)
	}
	return nil
}

func (s *MongoStore) DeleteTemplate(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	res, err := s.templates.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("template %s: %w", id.Hex(), apperr.ErrNotFound)
	}
	return nil
}

func (s *MongoStore) GetAssessment(ctx context.Context, id primitive.ObjectID) (*models.DailyAssessment, error) {
	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	var a models.DailyAssessment
	err := s.assessments.FindOne(ctx, bson.M{"_id": id}).Decode(&a)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("assessment %s: %w", id.Hex(), apperr.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *MongoStore) AssessmentExists(ctx context.Context, employeeID, templateID primitive.ObjectID, date string) (bool, error) {
	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	n, err := s.assessments.CountDocuments(ctx, bson.M{
		"employeeId": employeeID,
		"templateId": templateID,
		"date":       date,
	}, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *MongoStore) InsertAssessment(ctx context.Context, a *models.DailyAssessment) error {
	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	a.ID = primitive.NewObjectID()
	_, err := s.assessments.InsertOne(ctx, a)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateAssessment
	}
	return err
}

func (s *MongoStore) UpdateAssessment(ctx context.Context, a *models.DailyAssessment) error {
	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	res, err := s.assessments.ReplaceOne(ctx, bson.M{"_id": a.ID}, a)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("assessment %s: %w", a.ID.Hex(), apperr.ErrNotFound)
	}
	return nil
}

func (s *MongoStore) DeleteAssessment(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	res, err := s.assessments.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("assessment %s: %w", id.Hex(), apperr.ErrNotFound)
	}
	return nil
}

func (s *MongoStore) ListAssessments(ctx context.Context, f AssessmentFilter) ([]models.DailyAssessment, error) {
	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	return database.FindAll[models.DailyAssessment](ctx, s.assessments, filterToBSON(f),
		options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "_id", Value: 1}}))
}

func (s *MongoStore) CountAssessments(ctx context.Context, f AssessmentFilter) (int64, error) {
	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	return s.assessments.CountDocuments(ctx, filterToBSON(f))
}

func filterToBSON(f AssessmentFilter) bson.M {
	filter := bson.M{}
	if f.EmployeeID != nil {
		filter["employeeId"] = *f.EmployeeID
	}
	if f.TemplateID != nil {
		filter["templateId"] = *f.TemplateID
	}
	if f.Date != "" {
		filter["date"] = f.Date
	} else if f.Month != "" {
		filter["date"] = bson.M{"$regex": "^" + regexp.QuoteMeta(f.Month)}
	}
	if len(f.Statuses) == 1 {
		filter["status"] = f.Statuses[0]
	} else if len(f.Statuses) > 1 {
		filter["status"] = bson.M{"$in": f.Statuses}
	}
	return filter
}
