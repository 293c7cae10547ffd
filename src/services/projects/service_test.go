package projects

import (
	"testing"
	"time"

	"pulsepad-backend/src/apperr"
	"pulsepad-backend/src/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestApplyProjectInput(t *testing.T) {
	client := primitive.NewObjectID()
	emp := primitive.NewObjectID()
	var p models.Project

	err := apply(&p, models.ProjectInput{
		Name:        " Apollo ",
		ClientID:    client.Hex(),
		EmployeeIDs: []string{emp.Hex()},
		Progress:    40,
	})

	require.NoError(t, err)
	assert.Equal(t, "Apollo", p.Name)
	assert.Equal(t, models.ProjectPlanning, p.Status)
	require.NotNil(t, p.ClientID)
	assert.Equal(t, client, *p.ClientID)
	assert.Equal(t, []primitive.ObjectID{emp}, p.EmployeeIDs)
	assert.Equal(t, 40, p.Progress)
}

func TestApplyCompletedForcesFullProgress(t *testing.T) {
	var p models.Project
	require.NoError(t, apply(&p, models.ProjectInput{Name: "Done", Status: models.ProjectCompleted, Progress: 70}))
	assert.Equal(t, 100, p.Progress)
}

func TestApplyRejectsBadInput(t *testing.T) {
	start := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, -1)
	var p models.Project

	err := apply(&p, models.ProjectInput{Name: "Late", StartDate: &start, EndDate: &end})
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)

	err = apply(&p, models.ProjectInput{Name: "Bad", EmployeeIDs: []string{"zzz"}})
	assert.ErrorIs(t, err, apperr.ErrInvalidID)
}
