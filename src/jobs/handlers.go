package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"html/template"

	"pulsepad-backend/src/logger"
	"pulsepad-backend/src/services/users"

	"github.com/hibiken/asynq"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type RecipientResolver interface {
	RecipientsForEmployees(ctx context.Context, employeeIDs []primitive.ObjectID) ([]users.Recipient, error)
}

type NotificationSender interface {
	Send(ctx context.Context, userIDs []primitive.ObjectID, title, message string) error
}

// Handlers fan workflow events out to in-app notifications and, when SMTP is
// configured, e-mail.
type Handlers struct {
	recipients    RecipientResolver
	notifications NotificationSender
	mailer        MailSender
	dashboardURL  string
}

func NewHandlers(recipients RecipientResolver, notifications NotificationSender, mailer MailSender, baseURL string) *Handlers {
	return &Handlers{
		recipients:    recipients,
		notifications: notifications,
		mailer:        mailer,
		dashboardURL:  baseURL + "/employee/assessments",
	}
}

// Register binds every task type to its handler.
func (h *Handlers) Register(mux *asynq.ServeMux) {
	mux.HandleFunc(TypeNotifyAssigned, h.HandleNotifyAssigned)
	mux.HandleFunc(TypeNotifyValidated, h.HandleNotifyValidated)
}

func (h *Handlers) HandleNotifyAssigned(ctx context.Context, t *asynq.Task) error {
	var p NotifyAssignedPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}
	return h.notifyAssigned(ctx, p)
}

func (h *Handlers) notifyAssigned(ctx context.Context, p NotifyAssignedPayload) error {
	ids := make([]primitive.ObjectID, 0, len(p.EmployeeIDs))
	for _, id := range p.EmployeeIDs {
		objID, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			logger.Log.Warn("⚠️ Skipping invalid employee id", zap.String("employeeId", id))
			continue
		}
		ids = append(ids, objID)
	}
	if len(ids) == 0 {
		return nil
	}

	recipients, err := h.recipients.RecipientsForEmployees(ctx, ids)
	if err != nil {
		return err
	}
	if len(recipients) == 0 {
		logger.Log.Info("notify-assigned: no linked accounts, skip", zap.String("date", p.Date))
		return nil
	}

	userIDs := make([]primitive.ObjectID, 0, len(recipients))
	for _, r := range recipients {
		userIDs = append(userIDs, r.UserID)
	}
	if err := h.notifications.Send(ctx, userIDs, "New daily assessment",
		fmt.Sprintf("You have assessments to complete for %s.", p.Date)); err != nil {
		return err
	}

	for _, r := range recipients {
		h.mail(r, "New daily assessment - "+p.Date, assignedEmailTmpl,
			assignedEmailData{Name: r.Name, Date: p.Date, DashboardURL: h.dashboardURL})
	}
	logger.Log.Info("✅ Assignment notifications sent", zap.Int("recipients", len(recipients)))
	return nil
}

func (h *Handlers) HandleNotifyValidated(ctx context.Context, t *asynq.Task) error {
	var p NotifyValidatedPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}
	return h.notifyValidated(ctx, p)
}

func (h *Handlers) notifyValidated(ctx context.Context, p NotifyValidatedPayload) error {
	employeeID, err := primitive.ObjectIDFromHex(p.EmployeeID)
	if err != nil {
		logger.Log.Warn("⚠️ Payload has invalid employee id. Skipping task", zap.String("employeeId", p.EmployeeID))
		return nil
	}

	recipients, err := h.recipients.RecipientsForEmployees(ctx, []primitive.ObjectID{employeeID})
	if err != nil {
		return err
	}
	if len(recipients) == 0 {
		return nil
	}

	percent := formatPercent(p.FinalScore)
	userIDs := []primitive.ObjectID{recipients[0].UserID}
	if err := h.notifications.Send(ctx, userIDs, "Assessment reviewed",
		fmt.Sprintf("Your assessment for %s scored %s.", p.Date, percent)); err != nil {
		return err
	}

	r := recipients[0]
	h.mail(r, "Assessment reviewed - "+p.Date, validatedEmailTmpl,
		validatedEmailData{Name: r.Name, Date: p.Date, Percent: percent, DashboardURL: h.dashboardURL})
	return nil
}

// mail never fails the task; the in-app notification already went out.
func (h *Handlers) mail(r users.Recipient, subject string, tmpl *template.Template, data any) {
	if h.mailer == nil || r.Email == "" {
		return
	}
	body, err := render(tmpl, data)
	if err != nil {
		logger.Log.Error("❌ Failed to render e-mail", zap.Error(err))
		return
	}
	if err := h.mailer.Send(r.Email, subject, body); err != nil {
		logger.Log.Warn("⚠️ Failed to send e-mail", zap.String("to", r.Email), zap.Error(err))
	}
}
