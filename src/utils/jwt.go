package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	jwtMu     sync.RWMutex
	jwtSecret = []byte(GenerateRandomString(64)) // per-process until ConfigureJWT
	jwtExpire = 24 * time.Hour
)

// ConfigureJWT sets the signing secret and token lifetime.
func ConfigureJWT(secret string, expire time.Duration) {
	jwtMu.Lock()
	defer jwtMu.Unlock()
	if secret != "" {
		jwtSecret = []byte(secret)
	}
	if expire > 0 {
		jwtExpire = expire
	}
}

func getJWTSecret() []byte {
	jwtMu.RLock()
	defer jwtMu.RUnlock()
	return jwtSecret
}

// TokenTTL is the lifetime of newly issued tokens.
func TokenTTL() time.Duration {
	jwtMu.RLock()
	defer jwtMu.RUnlock()
	return jwtExpire
}

type JWTClaims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	RefID  string `json:"refId,omitempty"`
	jwt.RegisteredClaims
}

func GenerateJWT(userID, email, role, refID string) (string, error) {
	now := time.Now()
	claims := JWTClaims{
		UserID: userID,
		Email:  email,
		Role:   role,
		RefID:  refID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL())),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(getJWTSecret())
}

func ParseJWT(tokenStr string) (*JWTClaims, error) {
	if tokenStr == "" {
		return nil, fmt.Errorf("empty token string")
	}

	token, err := jwt.ParseWithClaims(tokenStr, &JWTClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return getJWTSecret(), nil
	})
	if err != nil || token == nil {
		return nil, fmt.Errorf("token parsing failed: %w", err)
	}

	claims, ok := token.Claims.(*JWTClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}

	return claims, nil
}

const oauthStateTTL = 10 * time.Minute

// oauthStateKey keeps state tokens from ever parsing as session tokens.
func oauthStateKey() []byte {
	return append(append([]byte{}, getJWTSecret()...), []byte("|oauth-state")...)
}

// GenerateOAuthState returns a signed, short-lived state value for the Google
// redirect flow.
func GenerateOAuthState() (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		ID:        GenerateRandomString(24),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(oauthStateTTL)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(oauthStateKey())
}

// VerifyOAuthState checks a state value issued by GenerateOAuthState.
func VerifyOAuthState(state string) error {
	if state == "" {
		return fmt.Errorf("missing oauth state")
	}
	_, err := jwt.ParseWithClaims(state, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return oauthStateKey(), nil
	})
	if err != nil {
		return fmt.Errorf("invalid oauth state: %w", err)
	}
	return nil
}

// GenerateRandomString returns a hex string of the given length.
func GenerateRandomString(length int) string {
	bytes := make([]byte, (length+1)/2)
	if _, err := rand.Read(bytes); err != nil {
		return ""
	}
	return hex.EncodeToString(bytes)[:length]
}
