package assessments

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"pulsepad-backend/src/apperr"
	"pulsepad-backend/src/logger"
	"pulsepad-backend/src/models"
	"pulsepad-backend/src/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const entityAssessment = "dailyAssessment"
const entityTemplate = "assessmentTemplate"

// Service runs the daily assessment workflow: assignment, submission,
// validation and reporting.
type Service struct {
	store     Store
	notifier  Notifier
	auditor   Auditor
	directory EmployeeDirectory
	cache     LeaderboardCache
	now       func() time.Time
}

type Option func(*Service)

func WithNotifier(n Notifier) Option { return func(s *Service) { s.notifier = n } }

func WithAuditor(a Auditor) Option { return func(s *Service) { s.auditor = a } }

func WithDirectory(d EmployeeDirectory) Option { return func(s *Service) { s.directory = d } }

func WithCache(c LeaderboardCache) Option { return func(s *Service) { s.cache = c } }

// WithClock overrides time.Now, mostly for tests.
func WithClock(now func() time.Time) Option { return func(s *Service) { s.now = now } }

func NewService(store Store, opts ...Option) *Service {
	s := &Service{store: store, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// TodayOverview is what the admin dashboard loads.
type TodayOverview struct {
	Assessments []models.DailyAssessment    `json:"assessments"`
	Templates   []models.AssessmentTemplate `json:"templates"`
}

func (s *Service) Today(ctx context.Context) (*TodayOverview, error) {
	list, err := s.store.ListAssessments(ctx, AssessmentFilter{Date: utils.Today(s.now())})
	if err != nil {
		return nil, err
	}
	templates, err := s.store.ListTemplates(ctx)
	if err != nil {
		return nil, err
	}
	return &TodayOverview{Assessments: list, Templates: templates}, nil
}

// Assign creates today's record for every (employee, template) pair that does
// not have one yet and returns how many were created.
func (s *Service) Assign(ctx context.Context, actor models.Actor, in models.AssignAssessmentsInput) (int, error) {
	if len(in.EmployeeIDs) == 0 || len(in.TemplateIDs) == 0 {
		return 0, fmt.Errorf("%w: employeeIds and templateIds are required", apperr.ErrInvalidInput)
	}

	employeeIDs, err := utils.ToObjectIDs(dedupe(in.EmployeeIDs))
	if err != nil {
		return 0, err
	}
	templateIDs, err := utils.ToObjectIDs(dedupe(in.TemplateIDs))
	if err != nil {
		return 0, err
	}

	for _, id := range templateIDs {
		if _, err := s.store.GetTemplate(ctx, id); err != nil {
			return 0, err
		}
	}

	now := s.now()
	date := utils.Today(now)
	created := 0
	assigned := make([]primitive.ObjectID, 0, len(employeeIDs))

	for _, employeeID := range employeeIDs {
		gotOne := false
		for _, templateID := range templateIDs {
			exists, err := s.store.AssessmentExists(ctx, employeeID, templateID, date)
			if err != nil {
				return created, err
			}
			if exists {
				continue
			}

			a := &models.DailyAssessment{
				EmployeeID: employeeID,
				TemplateID: templateID,
				Date:       date,
				Status:     models.AssessmentAssigned,
				Responses:  map[string]bool{},
				CreatedAt:  now,
				UpdatedAt:  now,
			}
			err = s.store.InsertAssessment(ctx, a)
			if errors.Is(err, ErrDuplicateAssessment) {
				// lost a race with a concurrent assignment
				continue
			}
			if err != nil {
				return created, err
			}
			created++
			gotOne = true
		}
		if gotOne {
			assigned = append(assigned, employeeID)
		}
	}

	logger.Log.Info("✅ Assessments assigned",
		zap.Int("created", created),
		zap.Int("employees", len(employeeIDs)),
		zap.Int("templates", len(templateIDs)),
		zap.String("date", date),
	)

	if created > 0 {
		s.audit(ctx, actor, models.ActionAssign, entityAssessment, date,
			fmt.Sprintf("created %d assessment(s)", created))
		if s.notifier != nil {
			s.notifier.AssessmentsAssigned(ctx, assigned, date)
		}
	}
	return created, nil
}

// Get returns a record together with its template (nil when the template was deleted).
func (s *Service) Get(ctx context.Context, id string) (*models.AssessmentWithTemplate, error) {
	objID, err := utils.ToObjectID(id)
	if err != nil {
		return nil, err
	}
	a, err := s.store.GetAssessment(ctx, objID)
	if err != nil {
		return nil, err
	}
	out := &models.AssessmentWithTemplate{DailyAssessment: *a}
	t, err := s.store.GetTemplate(ctx, a.TemplateID)
	switch {
	case err == nil:
		out.Template = t
	case errors.Is(err, apperr.ErrNotFound):
	default:
		return nil, err
	}
	return out, nil
}

// GetForEmployee is Get restricted to the employee who owns the record.
func (s *Service) GetForEmployee(ctx context.Context, actor models.Actor, id string) (*models.AssessmentWithTemplate, error) {
	out, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if out.EmployeeID.Hex() != actor.RefID {
		return nil, fmt.Errorf("assessment %s: %w", id, apperr.ErrNotFound)
	}
	return out, nil
}

// ListForEmployee returns the employee's records, optionally for one date.
func (s *Service) ListForEmployee(ctx context.Context, employeeID, date string) ([]models.AssessmentWithTemplate, error) {
	objID, err := utils.ToObjectID(employeeID)
	if err != nil {
		return nil, err
	}
	if date != "" {
		if _, err := time.Parse(models.DateLayout, date); err != nil {
			return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", apperr.ErrInvalidInput)
		}
	}

	list, err := s.store.ListAssessments(ctx, AssessmentFilter{EmployeeID: &objID, Date: date})
	if err != nil {
		return nil, err
	}

	templates := map[primitive.ObjectID]*models.AssessmentTemplate{}
	out := make([]models.AssessmentWithTemplate, 0, len(list))
	for _, a := range list {
		t, ok := templates[a.TemplateID]
		if !ok {
			t, err = s.store.GetTemplate(ctx, a.TemplateID)
			if err != nil && !errors.Is(err, apperr.ErrNotFound) {
				return nil, err
			}
			templates[a.TemplateID] = t
		}
		out = append(out, models.AssessmentWithTemplate{DailyAssessment: a, Template: t})
	}
	return out, nil
}

// Submit stores the employee's answers and moves ASSIGNED → SUBMITTED.
// Items the employee leaves out are stored as false.
func (s *Service) Submit(ctx context.Context, actor models.Actor, id string, in models.SubmitAssessmentInput) (*models.DailyAssessment, error) {
	objID, err := utils.ToObjectID(id)
	if err != nil {
		return nil, err
	}
	a, err := s.store.GetAssessment(ctx, objID)
	if err != nil {
		return nil, err
	}
	if a.EmployeeID.Hex() != actor.RefID {
		return nil, fmt.Errorf("assessment %s: %w", id, apperr.ErrNotFound)
	}
	if a.Status != models.AssessmentAssigned {
		return nil, fmt.Errorf("%w: assessment is already %s", apperr.ErrConflict, a.Status)
	}

	t, err := s.store.GetTemplate(ctx, a.TemplateID)
	if err != nil {
		return nil, err
	}
	if err := checkItemKeys(t, in.Responses); err != nil {
		return nil, err
	}

	responses := make(map[string]bool, len(t.Items))
	for _, item := range t.Items {
		responses[item.ID] = in.Responses[item.ID]
	}

	now := s.now()
	a.Responses = responses
	a.Status = models.AssessmentSubmitted
	a.SubmittedAt = &now
	a.UpdatedAt = now
	if err := s.store.UpdateAssessment(ctx, a); err != nil {
		return nil, err
	}

	logger.Log.Info("✅ Assessment submitted", zap.String("assessmentId", id), zap.String("employeeId", actor.RefID))
	return a, nil
}

// Validate scores a record from the admin's corrections and moves it to
// VALIDATED. Items without a correction keep the employee's answer.
// Re-validating overwrites the previous corrections and score.
func (s *Service) Validate(ctx context.Context, actor models.Actor, id string, in models.ValidateAssessmentInput) (*models.DailyAssessment, error) {
	if in.Status != "" && !strings.EqualFold(in.Status, models.AssessmentValidated) {
		return nil, fmt.Errorf("%w: status can only be set to %s", apperr.ErrInvalidInput, models.AssessmentValidated)
	}
	return s.validate(ctx, actor, id, func(t *models.AssessmentTemplate) (map[string]bool, error) {
		if err := checkItemKeys(t, in.AdminCorrections); err != nil {
			return nil, err
		}
		return in.AdminCorrections, nil
	})
}

// ApproveAll validates with every checklist item marked correct.
func (s *Service) ApproveAll(ctx context.Context, actor models.Actor, id string) (*models.DailyAssessment, error) {
	return s.validate(ctx, actor, id, func(t *models.AssessmentTemplate) (map[string]bool, error) {
		return AllCorrect(t), nil
	})
}

func (s *Service) validate(ctx context.Context, actor models.Actor, id string, corrections func(*models.AssessmentTemplate) (map[string]bool, error)) (*models.DailyAssessment, error) {
	objID, err := utils.ToObjectID(id)
	if err != nil {
		return nil, err
	}
	a, err := s.store.GetAssessment(ctx, objID)
	if err != nil {
		return nil, err
	}
	t, err := s.store.GetTemplate(ctx, a.TemplateID)
	if err != nil {
		return nil, err
	}
	c, err := corrections(t)
	if err != nil {
		return nil, err
	}

	if a.Status == models.AssessmentAssigned {
		logger.Log.Warn("⚠️ Validating an assessment that was never submitted",
			zap.String("assessmentId", id),
			zap.String("adminId", actor.UserID),
		)
		s.audit(ctx, actor, models.ActionForceScore, entityAssessment, id, "validated without employee submission")
	}

	effective := EffectiveAnswers(t, a.Responses, c)
	score := ComputeScore(t, effective)

	now := s.now()
	a.Status = models.AssessmentValidated
	a.AdminCorrections = effective
	a.FinalScore = &score
	a.ValidatedAt = &now
	a.ValidatedBy = actor.UserID
	a.UpdatedAt = now
	if err := s.store.UpdateAssessment(ctx, a); err != nil {
		return nil, err
	}

	logger.Log.Info("✅ Assessment validated", zap.String("assessmentId", id), zap.Float64("finalScore", score))
	s.audit(ctx, actor, models.ActionValidate, entityAssessment, id, fmt.Sprintf("finalScore=%.4f", score))
	if s.cache != nil {
		s.cache.Invalidate(ctx)
	}
	if s.notifier != nil {
		s.notifier.AssessmentValidated(ctx, a)
	}
	return a, nil
}

func (s *Service) Delete(ctx context.Context, actor models.Actor, id string) error {
	objID, err := utils.ToObjectID(id)
	if err != nil {
		return err
	}
	if err := s.store.DeleteAssessment(ctx, objID); err != nil {
		return err
	}
	s.audit(ctx, actor, models.ActionDelete, entityAssessment, id, "")
	if s.cache != nil {
		s.cache.Invalidate(ctx)
	}
	return nil
}

// ---- templates ----

func (s *Service) ListTemplates(ctx context.Context) ([]models.AssessmentTemplate, error) {
	return s.store.ListTemplates(ctx)
}

func (s *Service) GetTemplate(ctx context.Context, id string) (*models.AssessmentTemplate, error) {
	objID, err := utils.ToObjectID(id)
	if err != nil {
		return nil, err
	}
	return s.store.GetTemplate(ctx, objID)
}

func (s *Service) CreateTemplate(ctx context.Context, actor models.Actor, in models.AssessmentTemplateInput) (*models.AssessmentTemplate, error) {
	items, err := normalizeItems(in.Items)
	if err != nil {
		return nil, err
	}
	now := s.now()
	t := &models.AssessmentTemplate{
		Name:      strings.TrimSpace(in.Name),
		Items:     items,
		CreatedBy: actor.UserID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.InsertTemplate(ctx, t); err != nil {
		return nil, err
	}
	s.audit(ctx, actor, models.ActionCreate, entityTemplate, t.ID.Hex(), t.Name)
	return t, nil
}

func (s *Service) UpdateTemplate(ctx context.Context, actor models.Actor, id string, in models.AssessmentTemplateInput) (*models.AssessmentTemplate, error) {
	objID, err := utils.ToObjectID(id)
	if err != nil {
		return nil, err
	}
	t, err := s.store.GetTemplate(ctx, objID)
	if err != nil {
		return nil, err
	}
	items, err := normalizeItems(carryItemIDs(t.Items, in.Items))
	if err != nil {
		return nil, err
	}
	if !sameItemIDs(t.Items, items) {
		open, err := s.store.CountAssessments(ctx, AssessmentFilter{
			TemplateID: &objID,
			Statuses:   []string{models.AssessmentAssigned, models.AssessmentSubmitted},
		})
		if err != nil {
			return nil, err
		}
		if open > 0 {
			return nil, fmt.Errorf("%w: template has %d open assessment(s); checklist items cannot be added or removed", apperr.ErrConflict, open)
		}
	}
	t.Name = strings.TrimSpace(in.Name)
	t.Items = items
	t.UpdatedAt = s.now()
	if err := s.store.UpdateTemplate(ctx, t); err != nil {
		return nil, err
	}
	s.audit(ctx, actor, models.ActionUpdate, entityTemplate, id, t.Name)
	return t, nil
}

// DeleteTemplate refuses while open (ASSIGNED/SUBMITTED) records still need the template.
func (s *Service) DeleteTemplate(ctx context.Context, actor models.Actor, id string) error {
	objID, err := utils.ToObjectID(id)
	if err != nil {
		return err
	}
	open, err := s.store.CountAssessments(ctx, AssessmentFilter{
		TemplateID: &objID,
		Statuses:   []string{models.AssessmentAssigned, models.AssessmentSubmitted},
	})
	if err != nil {
		return err
	}
	if open > 0 {
		return fmt.Errorf("%w: template has %d open assessment(s)", apperr.ErrConflict, open)
	}
	if err := s.store.DeleteTemplate(ctx, objID); err != nil {
		return err
	}
	s.audit(ctx, actor, models.ActionDelete, entityTemplate, id, "")
	return nil
}

func (s *Service) audit(ctx context.Context, actor models.Actor, action, entity, entityID, details string) {
	if s.auditor == nil {
		return
	}
	s.auditor.Record(ctx, actor, action, entity, entityID, details)
}

// normalizeItems trims text and assigns ids to new items. Ids must be unique.
func normalizeItems(items []models.ChecklistItem) ([]models.ChecklistItem, error) {
	out := make([]models.ChecklistItem, 0, len(items))
	seen := map[string]bool{}
	for _, item := range items {
		item.Text = strings.TrimSpace(item.Text)
		if item.Text == "" {
			return nil, fmt.Errorf("%w: checklist item text is required", apperr.ErrInvalidInput)
		}
		if item.Weight < 1 {
			return nil, fmt.Errorf("%w: checklist item weight must be at least 1", apperr.ErrInvalidInput)
		}
		if item.ID == "" {
			item.ID = uuid.NewString()
		}
		if seen[item.ID] {
			return nil, fmt.Errorf("%w: duplicate checklist item id %q", apperr.ErrInvalidInput, item.ID)
		}
		seen[item.ID] = true
		out = append(out, item)
	}
	return out, nil
}

// carryItemIDs gives incoming items without an id the id of the existing item
// with the same text, falling back to the item at the same position.
func carryItemIDs(existing, incoming []models.ChecklistItem) []models.ChecklistItem {
	claimed := map[string]bool{}
	for _, item := range incoming {
		if item.ID != "" {
			claimed[item.ID] = true
		}
	}
	byText := map[string]string{}
	for _, item := range existing {
		text := strings.TrimSpace(item.Text)
		if _, dup := byText[text]; !dup {
			byText[text] = item.ID
		}
	}

	out := make([]models.ChecklistItem, len(incoming))
	copy(out, incoming)
	for i := range out {
		if out[i].ID != "" {
			continue
		}
		if id, ok := byText[strings.TrimSpace(out[i].Text)]; ok && !claimed[id] {
			out[i].ID = id
			claimed[id] = true
		}
	}
	for i := range out {
		if out[i].ID != "" || i >= len(existing) {
			continue
		}
		if id := existing[i].ID; !claimed[id] {
			out[i].ID = id
			claimed[id] = true
		}
	}
	return out
}

func sameItemIDs(a, b []models.ChecklistItem) bool {
	if len(a) != len(b) {
		return false
	}
	ids := make(map[string]bool, len(a))
	for _, item := range a {
		ids[item.ID] = true
	}
	for _, item := range b {
		if !ids[item.ID] {
			return false
		}
	}
	return true
}

func checkItemKeys(t *models.AssessmentTemplate, answers map[string]bool) error {
	for key := range answers {
		if !t.HasItem(key) {
			return fmt.Errorf("%w: unknown checklist item %q", apperr.ErrInvalidInput, key)
		}
	}
	return nil
}

func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
