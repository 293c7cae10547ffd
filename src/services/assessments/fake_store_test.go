package assessments

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"pulsepad-backend/src/apperr"
	"pulsepad-backend/src/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeStore struct {
	mu          sync.Mutex
	templates   map[primitive.ObjectID]models.AssessmentTemplate
	assessments []models.DailyAssessment
	listCalls   int
	afterList   func()
}

func newFakeStore() *fakeStore {
	return &fakeStore{templates: map[primitive.ObjectID]models.AssessmentTemplate{}}
}

func (f *fakeStore) addTemplate(name string, weights ...int) models.AssessmentTemplate {
	t := models.AssessmentTemplate{ID: primitive.NewObjectID(), Name: name}
	for i, w := range weights {
		t.Items = append(t.Items, models.ChecklistItem{ID: fmt.Sprintf("item-%d", i+1), Text: fmt.Sprintf("Item %d", i+1), Weight: w})
	}
	f.templates[t.ID] = t
	return t
}

func (f *fakeStore) GetTemplate(_ context.Context, id primitive.ObjectID) (*models.AssessmentTemplate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.templates[id]
	if !ok {
		return nil, fmt.Errorf("template %s: %w", id.Hex(), apperr.ErrNotFound)
	}
	return &t, nil
}

func (f *fakeStore) ListTemplates(context.Context) ([]models.AssessmentTemplate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.AssessmentTemplate{}
	for _, t := range f.templates {
		out = append(out, t)
	}
	return out, nil
}

func (f *fakeStore) InsertTemplate(_ context.Context, t *models.AssessmentTemplate) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	t.ID = primitive.NewObjectID()
	f.templates[t.ID] = *t
	return nil
}

func (f *fakeStore) UpdateTemplate(_ context.Context, t *models.AssessmentTemplate) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.templates[t.ID]; !ok {
		return apperr.ErrNotFound
	}
	f.templates[t.ID] = *t
	return nil
}

func (f *fakeStore) DeleteTemplate(_ context.Context, id primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.templates[id]; !ok {
		return apperr.ErrNotFound
	}
	delete(f.templates, id)
	return nil
}

func (f *fakeStore) GetAssessment(_ context.Context, id primitive.ObjectID) (*models.DailyAssessment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.assessments {
		if a.ID == id {
			cp := a
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("assessment %s: %w", id.Hex(), apperr.ErrNotFound)
}

func (f *fakeStore) AssessmentExists(_ context.Context, employeeID, templateID primitive.ObjectID, date string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.assessments {
		if a.EmployeeID == employeeID && a.TemplateID == templateID && a.Date == date {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) InsertAssessment(_ context.Context, a *models.DailyAssessment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, b := range f.assessments {
		if a.EmployeeID == b.EmployeeID && a.TemplateID == b.TemplateID && a.Date == b.Date {
			return ErrDuplicateAssessment
		}
	}
	a.ID = primitive.NewObjectID()
	f.assessments = append(f.assessments, *a)
	return nil
}

func (f *fakeStore) UpdateAssessment(_ context.Context, a *models.DailyAssessment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.assessments {
		if f.assessments[i].ID == a.ID {
			f.assessments[i] = *a
			return nil
		}
	}
	return apperr.ErrNotFound
}

func (f *fakeStore) DeleteAssessment(_ context.Context, id primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.assessments {
		if f.assessments[i].ID == id {
			f.assessments = append(f.assessments[:i], f.assessments[i+1:]...)
			return nil
		}
	}
	return apperr.ErrNotFound
}

func (f *fakeStore) match(a models.DailyAssessment, flt AssessmentFilter) bool {
	if flt.EmployeeID != nil && a.EmployeeID != *flt.EmployeeID {
		return false
	}
	if flt.TemplateID != nil && a.TemplateID != *flt.TemplateID {
		return false
	}
	if flt.Date != "" && a.Date != flt.Date {
		return false
	}
	if flt.Date == "" && flt.Month != "" && !strings.HasPrefix(a.Date, flt.Month) {
		return false
	}
	if len(flt.Statuses) > 0 {
		found := false
		for _, s := range flt.Statuses {
			if a.Status == s {
				found = true
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func (f *fakeStore) ListAssessments(_ context.Context, flt AssessmentFilter) ([]models.DailyAssessment, error) {
	f.mu.Lock()
	f.listCalls++
	out := []models.DailyAssessment{}
	for _, a := range f.assessments {
		if f.match(a, flt) {
			out = append(out, a)
		}
	}
	hook := f.afterList
	f.mu.Unlock()

	if hook != nil {
		hook()
	}
	return out, nil
}

func (f *fakeStore) CountAssessments(ctx context.Context, flt AssessmentFilter) (int64, error) {
	list, err := f.ListAssessments(ctx, flt)
	return int64(len(list)), err
}

type recordingAuditor struct {
	actions []string
}

func (r *recordingAuditor) Record(_ context.Context, _ models.Actor, action, _, _, _ string) {
	r.actions = append(r.actions, action)
}

type recordingNotifier struct {
	assigned  [][]primitive.ObjectID
	validated []primitive.ObjectID
}

func (r *recordingNotifier) AssessmentsAssigned(_ context.Context, ids []primitive.ObjectID, _ string) {
	r.assigned = append(r.assigned, ids)
}

func (r *recordingNotifier) AssessmentValidated(_ context.Context, a *models.DailyAssessment) {
	r.validated = append(r.validated, a.ID)
}
