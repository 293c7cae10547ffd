package auth

import (
	"context"
	"testing"
	"time"

	"pulsepad-backend/src/apperr"
	"pulsepad-backend/src/models"
	"pulsepad-backend/src/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/oauth2"
)

type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserStore) Get(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserStore) TouchLogin(ctx context.Context, id primitive.ObjectID, picture string) error {
	return m.Called(ctx, id, picture).Error(0)
}

type MockGoogle struct {
	mock.Mock
}

func (m *MockGoogle) ClientID() string {
	return "pulsepad-client"
}

func (m *MockGoogle) TokenInfo(ctx context.Context, accessToken string) (*GoogleTokenInfo, error) {
	args := m.Called(ctx, accessToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*GoogleTokenInfo), args.Error(1)
}

func (m *MockGoogle) AuthCodeURL(state string) string {
	return m.Called(state).String(0)
}

func (m *MockGoogle) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*oauth2.Token), args.Error(1)
}

func (m *MockGoogle) UserInfo(ctx context.Context, token *oauth2.Token) (*GoogleUserInfo, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*GoogleUserInfo), args.Error(1)
}

func hashed(t *testing.T, pw string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	ref := primitive.NewObjectID()
	user := &models.User{
		ID:       primitive.NewObjectID(),
		Email:    "employee@pulsepad.io",
		Role:     models.RoleEmployee,
		RefID:    &ref,
		IsActive: true,
		Password: hashed(t, "password123"),
	}

	t.Run("TestSuccessfulLogin", func(t *testing.T) {
		users := new(MockUserStore)
		users.On("GetByEmail", ctx, "employee@pulsepad.io").Return(user, nil)
		users.On("TouchLogin", ctx, user.ID, "").Return(nil)
		svc := NewService(users, nil, NewLoginLimiter(5), nil)

		res, err := svc.Login(ctx, "employee@pulsepad.io", "password123", "req-1")

		require.NoError(t, err)
		claims, err := utils.ParseJWT(res.Token)
		require.NoError(t, err)
		assert.Equal(t, user.ID.Hex(), claims.UserID)
		assert.Equal(t, models.RoleEmployee, claims.Role)
		assert.Equal(t, ref.Hex(), claims.RefID)
		users.AssertExpectations(t)
	})

	t.Run("TestLoginInvalidPassword", func(t *testing.T) {
		users := new(MockUserStore)
		users.On("GetByEmail", ctx, "employee@pulsepad.io").Return(user, nil)
		svc := NewService(users, nil, NewLoginLimiter(5), nil)

		res, err := svc.Login(ctx, "employee@pulsepad.io", "wrong", "")

		assert.ErrorIs(t, err, apperr.ErrUnauthorized)
		assert.Nil(t, res)
	})

	t.Run("TestLoginUnknownUser", func(t *testing.T) {
		users := new(MockUserStore)
		users.On("GetByEmail", ctx, "ghost@pulsepad.io").Return(nil, apperr.ErrNotFound)
		svc := NewService(users, nil, NewLoginLimiter(5), nil)

		_, err := svc.Login(ctx, "ghost@pulsepad.io", "password123", "")

		assert.ErrorIs(t, err, apperr.ErrUnauthorized)
	})

	t.Run("TestLoginEmptyFields", func(t *testing.T) {
		svc := NewService(new(MockUserStore), nil, nil, nil)

		_, err := svc.Login(ctx, "", "password123", "")
		assert.ErrorIs(t, err, apperr.ErrInvalidInput)

		_, err = svc.Login(ctx, "employee@pulsepad.io", "", "")
		assert.ErrorIs(t, err, apperr.ErrInvalidInput)
	})

	t.Run("TestLoginDisabledAccount", func(t *testing.T) {
		disabled := *user
		disabled.IsActive = false
		users := new(MockUserStore)
		users.On("GetByEmail", ctx, "employee@pulsepad.io").Return(&disabled, nil)
		svc := NewService(users, nil, nil, nil)

		_, err := svc.Login(ctx, "employee@pulsepad.io", "password123", "")

		assert.ErrorIs(t, err, apperr.ErrUnauthorized)
	})

	t.Run("TestLoginRateLimited", func(t *testing.T) {
		users := new(MockUserStore)
		users.On("GetByEmail", ctx, "employee@pulsepad.io").Return(user, nil)
		svc := NewService(users, nil, NewLoginLimiter(2), nil)

		for i := 0; i < 2; i++ {
			_, err := svc.Login(ctx, "employee@pulsepad.io", "wrong", "")
			assert.ErrorIs(t, err, apperr.ErrUnauthorized)
		}
		_, err := svc.Login(ctx, "employee@pulsepad.io", "password123", "")
		assert.ErrorIs(t, err, apperr.ErrRateLimited)
	})
}

func TestGoogleLogin(t *testing.T) {
	ctx := context.Background()
	user := &models.User{ID: primitive.NewObjectID(), Email: "admin@pulsepad.io", Role: models.RoleAdmin, IsActive: true}

	t.Run("TestAccessTokenCredential", func(t *testing.T) {
		google := new(MockGoogle)
		google.On("TokenInfo", ctx, "ya29.token").Return(&GoogleTokenInfo{Audience: "pulsepad-client"}, nil)
		google.On("UserInfo", ctx, mock.MatchedBy(func(tok *oauth2.Token) bool { return tok.AccessToken == "ya29.token" })).
			Return(&GoogleUserInfo{Email: "admin@pulsepad.io", VerifiedEmail: true, Picture: "https://img"}, nil)
		users := new(MockUserStore)
		users.On("GetByEmail", ctx, "admin@pulsepad.io").Return(user, nil)
		users.On("TouchLogin", ctx, user.ID, "https://img").Return(nil)
		svc := NewService(users, google, nil, nil)

		res, err := svc.GoogleLogin(ctx, GoogleCredential{Credential: "ya29.token"}, "")

		require.NoError(t, err)
		assert.NotEmpty(t, res.Token)
		assert.Equal(t, "https://img", res.User.Picture)
		google.AssertExpectations(t)
		users.AssertExpectations(t)
	})

	t.Run("TestAuthCodeCredential", func(t *testing.T) {
		tok := &oauth2.Token{AccessToken: "exchanged"}
		google := new(MockGoogle)
		google.On("Exchange", ctx, "auth-code").Return(tok, nil)
		google.On("UserInfo", ctx, tok).Return(&GoogleUserInfo{Email: "admin@pulsepad.io", VerifiedEmail: true}, nil)
		users := new(MockUserStore)
		users.On("GetByEmail", ctx, "admin@pulsepad.io").Return(user, nil)
		users.On("TouchLogin", ctx, user.ID, "").Return(nil)
		svc := NewService(users, google, nil, nil)

		state, err := utils.GenerateOAuthState()
		require.NoError(t, err)

		_, err = svc.GoogleLogin(ctx, GoogleCredential{Code: "auth-code", State: state}, "")

		require.NoError(t, err)
		google.AssertExpectations(t)
	})

	t.Run("TestAuthCodeRequiresState", func(t *testing.T) {
		google := new(MockGoogle)
		svc := NewService(new(MockUserStore), google, nil, nil)

		_, err := svc.GoogleLogin(ctx, GoogleCredential{Code: "auth-code"}, "")
		assert.ErrorIs(t, err, apperr.ErrUnauthorized)

		_, err = svc.GoogleLogin(ctx, GoogleCredential{Code: "auth-code", State: "forged"}, "")
		assert.ErrorIs(t, err, apperr.ErrUnauthorized)

		session, err := utils.GenerateJWT(user.ID.Hex(), user.Email, user.Role, "")
		require.NoError(t, err)
		_, err = svc.GoogleLogin(ctx, GoogleCredential{Code: "auth-code", State: session}, "")
		assert.ErrorIs(t, err, apperr.ErrUnauthorized)

		google.AssertNotCalled(t, "Exchange", mock.Anything, mock.Anything)
	})

	t.Run("TestAccessTokenForAnotherClient", func(t *testing.T) {
		google := new(MockGoogle)
		google.On("TokenInfo", ctx, "foreign.token").
			Return(&GoogleTokenInfo{Audience: "someone-else", AuthorizedParty: "someone-else", Email: "admin@pulsepad.io"}, nil)
		users := new(MockUserStore)
		svc := NewService(users, google, nil, nil)

		_, err := svc.GoogleLogin(ctx, GoogleCredential{Credential: "foreign.token"}, "")

		assert.ErrorIs(t, err, apperr.ErrUnauthorized)
		google.AssertNotCalled(t, "UserInfo", mock.Anything, mock.Anything)
		users.AssertNotCalled(t, "GetByEmail", mock.Anything, mock.Anything)
	})

	t.Run("TestAccessTokenAuthorizedPartyMatches", func(t *testing.T) {
		google := new(MockGoogle)
		google.On("TokenInfo", ctx, "azp.token").
			Return(&GoogleTokenInfo{Audience: "other-audience", AuthorizedParty: "pulsepad-client"}, nil)
		google.On("UserInfo", ctx, mock.Anything).Return(&GoogleUserInfo{Email: "admin@pulsepad.io", VerifiedEmail: true}, nil)
		users := new(MockUserStore)
		users.On("GetByEmail", ctx, "admin@pulsepad.io").Return(user, nil)
		users.On("TouchLogin", ctx, user.ID, "").Return(nil)
		svc := NewService(users, google, nil, nil)

		_, err := svc.GoogleLogin(ctx, GoogleCredential{Credential: "azp.token"}, "")

		require.NoError(t, err)
	})

	t.Run("TestUnregisteredEmail", func(t *testing.T) {
		google := new(MockGoogle)
		google.On("TokenInfo", ctx, "tok").Return(&GoogleTokenInfo{Audience: "pulsepad-client"}, nil)
		google.On("UserInfo", ctx, mock.Anything).Return(&GoogleUserInfo{Email: "new@gmail.com", VerifiedEmail: true}, nil)
		users := new(MockUserStore)
		users.On("GetByEmail", ctx, "new@gmail.com").Return(nil, apperr.ErrNotFound)
		svc := NewService(users, google, nil, nil)

		_, err := svc.GoogleLogin(ctx, GoogleCredential{Credential: "tok"}, "")

		assert.ErrorIs(t, err, apperr.ErrUnauthorized)
	})

	t.Run("TestMissingCredential", func(t *testing.T) {
		svc := NewService(new(MockUserStore), new(MockGoogle), nil, nil)
		_, err := svc.GoogleLogin(ctx, GoogleCredential{}, "")
		assert.ErrorIs(t, err, apperr.ErrInvalidInput)
	})
}

func TestVerifyRejectsDisabledAccount(t *testing.T) {
	ctx := context.Background()
	user := &models.User{ID: primitive.NewObjectID(), IsActive: false}
	users := new(MockUserStore)
	users.On("Get", ctx, user.ID.Hex()).Return(user, nil)
	svc := NewService(users, nil, nil, nil)

	_, err := svc.Verify(ctx, &utils.JWTClaims{UserID: user.ID.Hex()})

	assert.ErrorIs(t, err, apperr.ErrUnauthorized)
}

func TestLoginLimiterRefills(t *testing.T) {
	now := time.Date(2026, 10, 16, 8, 0, 0, 0, time.UTC)
	l := NewLoginLimiter(1)
	l.now = func() time.Time { return now }

	assert.True(t, l.Allow("A@x.io"))
	assert.False(t, l.Allow("a@x.io"))

	now = now.Add(61 * time.Second)
	assert.True(t, l.Allow("a@x.io"))
}

func TestGoogleAuthURL(t *testing.T) {
	google := new(MockGoogle)
	google.On("AuthCodeURL", mock.AnythingOfType("string")).
		Return("https://accounts.google.com/o/oauth2/auth?state=x")

	s := NewService(new(MockUserStore), google, nil, nil)
	url, state, err := s.GoogleAuthURL()
	require.NoError(t, err)
	assert.NoError(t, utils.VerifyOAuthState(state))
	assert.Contains(t, url, "accounts.google.com")
	google.AssertCalled(t, "AuthCodeURL", state)

	_, _, err = NewService(new(MockUserStore), nil, nil, nil).GoogleAuthURL()
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)
}
