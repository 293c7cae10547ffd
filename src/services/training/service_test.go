package training

import (
	"testing"
	"time"

	"pulsepad-backend/src/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestSetStatusTracksCompletion(t *testing.T) {
	now := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)
	s := &Service{now: func() time.Time { return now }}
	task := &models.TrainingTask{Status: models.TrainingPending}

	s.setStatus(task, models.TrainingCompleted)
	require.NotNil(t, task.CompletedAt)
	assert.Equal(t, now, *task.CompletedAt)

	s.setStatus(task, models.TrainingInProgress)
	assert.Nil(t, task.CompletedAt)
	assert.Equal(t, models.TrainingInProgress, task.Status)
}

func TestApplyTrainingInput(t *testing.T) {
	s := &Service{now: time.Now}
	emp := primitive.NewObjectID()
	task := &models.TrainingTask{Status: models.TrainingPending}

	err := s.apply(task, models.TrainingTaskInput{EmployeeID: emp.Hex(), Title: "  Go basics "})

	require.NoError(t, err)
	assert.Equal(t, emp, task.EmployeeID)
	assert.Equal(t, "Go basics", task.Title)
	assert.Equal(t, models.TrainingPending, task.Status)

	err = s.apply(task, models.TrainingTaskInput{EmployeeID: "bad", Title: "x"})
	assert.Error(t, err)
}
