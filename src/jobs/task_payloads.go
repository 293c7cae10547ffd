package jobs

import (
	"encoding/json"
	"strings"

	"github.com/hibiken/asynq"
)

const (
	TypeNotifyAssigned  = "assessments:notify-assigned"
	TypeNotifyValidated = "assessments:notify-validated"
)

type NotifyAssignedPayload struct {
	EmployeeIDs []string `json:"employeeIds"`
	Date        string   `json:"date"`
}

type NotifyValidatedPayload struct {
	AssessmentID string  `json:"assessmentId"`
	EmployeeID   string  `json:"employeeId"`
	Date         string  `json:"date"`
	FinalScore   float64 `json:"finalScore"`
}

func NewNotifyAssignedTask(employeeIDs []string, date string) (*asynq.Task, error) {
	payload, err := json.Marshal(NotifyAssignedPayload{EmployeeIDs: employeeIDs, Date: strings.TrimSpace(date)})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeNotifyAssigned, payload, asynq.MaxRetry(5)), nil
}

func NewNotifyValidatedTask(p NotifyValidatedPayload) (*asynq.Task, error) {
	payload, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeNotifyValidated, payload, asynq.MaxRetry(5)), nil
}

// NotifyValidatedTaskID dedupes notifications when an admin re-validates quickly.
func NotifyValidatedTaskID(assessmentID string, score float64) string {
	return "notify-validated-" + strings.TrimSpace(assessmentID) + "-" + formatPercent(score)
}
