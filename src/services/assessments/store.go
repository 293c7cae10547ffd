package assessments

import (
	"context"
	"errors"

	"pulsepad-backend/src/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrDuplicateAssessment is returned by Store.InsertAssessment when a record
// already exists for the same (employee, template, date).
var ErrDuplicateAssessment = errors.New("assessment already exists for this date")

// AssessmentFilter narrows ListAssessments/CountAssessments. Zero fields match all.
type AssessmentFilter struct {
	EmployeeID *primitive.ObjectID
	TemplateID *primitive.ObjectID
	Date       string
	Month      string // YYYY-MM prefix of Date
	Statuses   []string
}

// Store is the persistence the assessment workflow needs.
type Store interface {
	GetTemplate(ctx context.Context, id primitive.ObjectID) (*models.AssessmentTemplate, error)
	ListTemplates(ctx context.Context) ([]models.AssessmentTemplate, error)
	InsertTemplate(ctx context.Context, t *models.AssessmentTemplate) error
	UpdateTemplate(ctx context.Context, t *models.AssessmentTemplate) error
	DeleteTemplate(ctx context.Context, id primitive.ObjectID) error

	GetAssessment(ctx context.Context, id primitive.ObjectID) (*models.DailyAssessment, error)
	AssessmentExists(ctx context.Context, employeeID, templateID primitive.ObjectID, date string) (bool, error)
	InsertAssessment(ctx context.Context, a *models.DailyAssessment) error
	UpdateAssessment(ctx context.Context, a *models.DailyAssessment) error
	DeleteAssessment(ctx context.Context, id primitive.ObjectID) error
	ListAssessments(ctx context.Context, f AssessmentFilter) ([]models.DailyAssessment, error)
	CountAssessments(ctx context.Context, f AssessmentFilter) (int64, error)
}

// Notifier is told about workflow events. Implementations must not block.
type Notifier interface {
	AssessmentsAssigned(ctx context.Context, employeeIDs []primitive.ObjectID, date string)
	AssessmentValidated(ctx context.Context, a *models.DailyAssessment)
}

// Auditor records admin actions.
type Auditor interface {
	Record(ctx context.Context, actor models.Actor, action, entity, entityID, details string)
}

// EmployeeDirectory resolves display names for leaderboard rows.
type EmployeeDirectory interface {
	Names(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]string, error)
}

// LeaderboardCache stores computed leaderboards keyed by month and generation.
// Get reports the current generation even on a miss; Set only lands if that
// generation is still current, so a read racing an Invalidate never caches
// stale rows.
type LeaderboardCache interface {
	Get(ctx context.Context, month string) (rows []models.EmployeePerformance, gen int64, ok bool)
	Set(ctx context.Context, month string, gen int64, rows []models.EmployeePerformance)
	Invalidate(ctx context.Context)
}
