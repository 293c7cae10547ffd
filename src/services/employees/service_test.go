package employees

import (
	"testing"
	"time"

	"pulsepad-backend/src/models"

	"github.com/stretchr/testify/assert"
)

func TestApplyNormalizesInput(t *testing.T) {
	var e models.Employee
	apply(&e, models.EmployeeInput{
		Name:     "  Jordan Lee ",
		Email:    " Jordan.Lee@PulsePad.io",
		Position: "Engineer",
	})

	assert.Equal(t, "Jordan Lee", e.Name)
	assert.Equal(t, "jordan.lee@pulsepad.io", e.Email)
	assert.Equal(t, models.EmployeeActive, e.Status)
	assert.NotNil(t, e.Skills)
	assert.True(t, e.JoinedAt.IsZero())
}

func TestApplyKeepsJoinedAtUnlessProvided(t *testing.T) {
	joined := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	e := models.Employee{JoinedAt: joined}

	apply(&e, models.EmployeeInput{Name: "Sam", Email: "sam@x.io", Position: "QA", Status: models.EmployeeInactive})

	assert.Equal(t, joined, e.JoinedAt)
	assert.Equal(t, models.EmployeeInactive, e.Status)
}
