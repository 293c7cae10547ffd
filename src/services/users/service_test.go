package users

import (
	"testing"

	"pulsepad-backend/src/apperr"
	"pulsepad-backend/src/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

func TestApplyHashesPassword(t *testing.T) {
	ref := primitive.NewObjectID()
	u := &models.User{IsActive: true}

	err := apply(u, models.UserInput{
		Email:    " Alex@PulsePad.io ",
		Name:     "Alex",
		Role:     models.RoleEmployee,
		Password: "s3cret-pass",
		RefID:    ref.Hex(),
	})

	require.NoError(t, err)
	assert.Equal(t, "alex@pulsepad.io", u.Email)
	require.NotNil(t, u.RefID)
	assert.Equal(t, ref, *u.RefID)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("s3cret-pass")))
	assert.True(t, u.IsActive)
}

func TestApplyEmployeeNeedsProfile(t *testing.T) {
	err := apply(&models.User{}, models.UserInput{Email: "a@b.io", Name: "A B", Role: models.RoleEmployee})
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)
}

func TestApplyKeepsPasswordWhenBlank(t *testing.T) {
	u := &models.User{Password: "existing-hash"}
	inactive := false

	require.NoError(t, apply(u, models.UserInput{Email: "c@d.io", Name: "Client", Role: models.RoleClient, IsActive: &inactive}))

	assert.Equal(t, "existing-hash", u.Password)
	assert.False(t, u.IsActive)
	assert.Nil(t, u.RefID)
}
