package auth

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

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/oauth2"
)

// UserStore is what authentication needs from the users service.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Get(ctx context.Context, id string) (*models.User, error)
	TouchLogin(ctx context.Context, id primitive.ObjectID, picture string) error
}

type Auditor interface {
	Record(ctx context.Context, actor models.Actor, action, entity, entityID, details string)
}

type Service struct {
	users   UserStore
	google  GoogleIdentity
	limiter *LoginLimiter
	auditor Auditor
}

func NewService(users UserStore, google GoogleIdentity, limiter *LoginLimiter, auditor Auditor) *Service {
	return &Service{users: users, google: google, limiter: limiter, auditor: auditor}
}

// LoginResult is returned by every successful sign-in.
type LoginResult struct {
	Token     string       `json:"token"`
	ExpiresIn int          `json:"expiresIn"`
	User      *models.User `json:"user"`
}

var errInvalidCredentials = fmt.Errorf("%w: invalid credentials", apperr.ErrUnauthorized)

// Login authenticates with e-mail and password.
func (s *Service) Login(ctx context.Context, email, password, requestID string) (*LoginResult, error) {
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", apperr.ErrInvalidInput)
	}
	if s.limiter != nil && !s.limiter.Allow(email) {
		wait := s.limiter.RetryAfter(email).Round(time.Second)
		return nil, fmt.Errorf("%w: too many login attempts, retry in %s", apperr.ErrRateLimited, wait)
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			s.recordFailure(ctx, email, requestID)
			return nil, errInvalidCredentials
		}
		return nil, err
	}
	if user.Password == "" || bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		s.recordFailure(ctx, email, requestID)
		return nil, errInvalidCredentials
	}
	return s.issue(ctx, user, "", requestID)
}

// GoogleCredential is the body of POST /auth/google. Code and State come back
// from the redirect flow; Credential is an access token from the popup flow.
type GoogleCredential struct {
	Credential string `json:"credential"`
	Code       string `json:"code"`
	State      string `json:"state"`
}

// GoogleAuthURL returns the consent page for the redirect flow and the state
// the frontend should check on return.
func (s *Service) GoogleAuthURL() (url, state string, err error) {
	if s.google == nil {
		return "", "", fmt.Errorf("%w: google sign-in is not configured", apperr.ErrUnauthorized)
	}
	state, err = utils.GenerateOAuthState()
	if err != nil {
		return "", "", err
	}
	return s.google.AuthCodeURL(state), state, nil
}

// GoogleLogin exchanges a Google credential for a session token. Only accounts
// that already exist in PulsePad may sign in.
func (s *Service) GoogleLogin(ctx context.Context, in GoogleCredential, requestID string) (*LoginResult, error) {
	if s.google == nil {
		return nil, fmt.Errorf("%w: google sign-in is not configured", apperr.ErrUnauthorized)
	}

	var token *oauth2.Token
	switch {
	case in.Code != "":
		if err := utils.VerifyOAuthState(in.State); err != nil {
			logger.Log.Warn("⚠️ Google sign-in with bad state", zap.Error(err))
			return nil, fmt.Errorf("%w: invalid oauth state", apperr.ErrUnauthorized)
		}
		t, err := s.google.Exchange(ctx, in.Code)
		if err != nil {
			logger.Log.Warn("⚠️ Google token exchange failed", zap.Error(err))
			return nil, fmt.Errorf("%w: google token exchange failed", apperr.ErrUnauthorized)
		}
		token = t
	case in.Credential != "":
		if err := s.checkAudience(ctx, in.Credential); err != nil {
			return nil, err
		}
		token = &oauth2.Token{AccessToken: in.Credential, TokenType: "Bearer"}
	default:
		return nil, fmt.Errorf("%w: credential is required", apperr.ErrInvalidInput)
	}

	info, err := s.google.UserInfo(ctx, token)
	if err != nil {
		logger.Log.Warn("⚠️ Failed to get Google user info", zap.Error(err))
		return nil, fmt.Errorf("%w: google credential rejected", apperr.ErrUnauthorized)
	}
	if !info.VerifiedEmail {
		return nil, fmt.Errorf("%w: google e-mail is not verified", apperr.ErrUnauthorized)
	}

	user, err := s.users.GetByEmail(ctx, info.Email)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			s.recordFailure(ctx, info.Email, requestID)
			return nil, fmt.Errorf("%w: user is not registered, contact an administrator", apperr.ErrUnauthorized)
		}
		return nil, err
	}
	return s.issue(ctx, user, info.Picture, requestID)
}

// checkAudience rejects access tokens issued to another Google client.
func (s *Service) checkAudience(ctx context.Context, accessToken string) error {
	info, err := s.google.TokenInfo(ctx, accessToken)
	if err != nil {
		logger.Log.Warn("⚠️ Failed to get Google token info", zap.Error(err))
		return fmt.Errorf("%w: google credential rejected", apperr.ErrUnauthorized)
	}
	clientID := s.google.ClientID()
	if clientID == "" || (info.Audience != clientID && info.AuthorizedParty != clientID) {
		logger.Log.Warn("⚠️ Google token issued to another client",
			zap.String("aud", info.Audience),
			zap.String("azp", info.AuthorizedParty),
		)
		return fmt.Errorf("%w: google credential was not issued for this app", apperr.ErrUnauthorized)
	}
	return nil
}

// Verify reloads the account behind a token so role or status changes apply immediately.
func (s *Service) Verify(ctx context.Context, claims *utils.JWTClaims) (*models.User, error) {
	user, err := s.users.Get(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, fmt.Errorf("%w: account no longer exists", apperr.ErrUnauthorized)
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, fmt.Errorf("%w: account is disabled", apperr.ErrUnauthorized)
	}
	return user, nil
}

// Logout revokes the token until its natural expiry.
func (s *Service) Logout(ctx context.Context, claims *utils.JWTClaims) error {
	if claims.ExpiresAt == nil {
		return nil
	}
	return utils.BlacklistToken(ctx, claims.ID, time.Until(claims.ExpiresAt.Time))
}

func (s *Service) issue(ctx context.Context, user *models.User, picture, requestID string) (*LoginResult, error) {
	if !user.IsActive {
		return nil, fmt.Errorf("%w: account is disabled", apperr.ErrUnauthorized)
	}

	refID := ""
	if user.RefID != nil {
		refID = user.RefID.Hex()
	}
	token, err := utils.GenerateJWT(user.ID.Hex(), user.Email, user.Role, refID)
	if err != nil {
		return nil, fmt.Errorf("token generation failed: %w", err)
	}

	if err := s.users.TouchLogin(ctx, user.ID, picture); err != nil {
		logger.Log.Warn("⚠️ Failed to update last login", zap.String("userId", user.ID.Hex()), zap.Error(err))
	}
	now := time.Now()
	user.LastLogin = &now
	if picture != "" {
		user.Picture = picture
	}

	if s.auditor != nil {
		s.auditor.Record(ctx, models.Actor{UserID: user.ID.Hex(), Email: user.Email, Role: user.Role, RequestID: requestID},
			models.ActionLogin, "user", user.ID.Hex(), "")
	}
	logger.Log.Info("✅ User authenticated", zap.String("email", user.Email), zap.String("role", user.Role))

	return &LoginResult{
		Token:     token,
		ExpiresIn: int(utils.TokenTTL().Seconds()),
		User:      user,
	}, nil
}

func (s *Service) recordFailure(ctx context.Context, email, requestID string) {
	logger.Log.Warn("⚠️ Login failed", zap.String("email", strings.ToLower(email)))
	if s.auditor != nil {
		s.auditor.Record(ctx, models.Actor{Email: email, RequestID: requestID}, models.ActionLoginFailed, "user", "", "")
	}
}
