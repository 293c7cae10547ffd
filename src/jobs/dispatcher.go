package jobs

import (
	"context"
	"errors"

	"pulsepad-backend/src/logger"
	"pulsepad-backend/src/models"

	"github.com/hibiken/asynq"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type Enqueuer interface {
	Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// Dispatcher turns assessment workflow events into notification tasks. Without
// a queue the handlers run in a background goroutine instead.
type Dispatcher struct {
	queue    Enqueuer
	handlers *Handlers
}

func NewDispatcher(queue Enqueuer, handlers *Handlers) *Dispatcher {
	return &Dispatcher{queue: queue, handlers: handlers}
}

func (d *Dispatcher) AssessmentsAssigned(ctx context.Context, employeeIDs []primitive.ObjectID, date string) {
	ids := make([]string, 0, len(employeeIDs))
	for _, id := range employeeIDs {
		ids = append(ids, id.Hex())
	}

	if d.queue == nil {
		p := NotifyAssignedPayload{EmployeeIDs: ids, Date: date}
		d.inline(ctx, TypeNotifyAssigned, func(ctx context.Context) error { return d.handlers.notifyAssigned(ctx, p) })
		return
	}

	task, err := NewNotifyAssignedTask(ids, date)
	if err != nil {
		logger.Log.Error("❌ Failed to build task", zap.String("type", TypeNotifyAssigned), zap.Error(err))
		return
	}
	d.enqueue(task)
}

func (d *Dispatcher) AssessmentValidated(ctx context.Context, a *models.DailyAssessment) {
	if a == nil || a.FinalScore == nil {
		return
	}
	p := NotifyValidatedPayload{
		AssessmentID: a.ID.Hex(),
		EmployeeID:   a.EmployeeID.Hex(),
		Date:         a.Date,
		FinalScore:   *a.FinalScore,
	}

	if d.queue == nil {
		d.inline(ctx, TypeNotifyValidated, func(ctx context.Context) error { return d.handlers.notifyValidated(ctx, p) })
		return
	}

	task, err := NewNotifyValidatedTask(p)
	if err != nil {
		logger.Log.Error("❌ Failed to build task", zap.String("type", TypeNotifyValidated), zap.Error(err))
		return
	}
	d.enqueue(task, asynq.TaskID(NotifyValidatedTaskID(p.AssessmentID, p.FinalScore)))
}

func (d *Dispatcher) enqueue(task *asynq.Task, opts ...asynq.Option) {
	info, err := d.queue.Enqueue(task, opts...)
	if errors.Is(err, asynq.ErrTaskIDConflict) {
		logger.Log.Info("notification already queued", zap.String("type", task.Type()))
		return
	}
	if err != nil {
		logger.Log.Error("❌ Failed to enqueue task", zap.String("type", task.Type()), zap.Error(err))
		return
	}
	logger.Log.Info("✅ Task enqueued", zap.String("type", task.Type()), zap.String("id", info.ID))
}

func (d *Dispatcher) inline(ctx context.Context, taskType string, run func(context.Context) error) {
	if d.handlers == nil {
		return
	}
	ctx = context.WithoutCancel(ctx)
	go func() {
		if err := run(ctx); err != nil {
			logger.Log.Error("❌ Inline notification failed", zap.String("type", taskType), zap.Error(err))
		}
	}()
}
