package middleware

import (
	"strings"

	"pulsepad-backend/src/logger"
	"pulsepad-backend/src/models"
	"pulsepad-backend/src/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	LocalClaims    = "claims"
	LocalUserID    = "userId"
	LocalEmail     = "email"
	LocalRole      = "role"
	LocalRefID     = "refId"
	LocalRequestID = "requestid"
)

func AuthJWT(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return utils.HandleError(c, fiber.StatusUnauthorized, "Missing or invalid Authorization header")
	}

	tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
	claims, err := utils.ParseJWT(tokenStr)
	if err != nil {
		return utils.HandleError(c, fiber.StatusUnauthorized, "Invalid or expired token")
	}

	revoked, err := utils.IsTokenBlacklisted(c.UserContext(), claims.ID)
	if err != nil {
		// Redis hiccups should not lock everyone out.
		logger.Log.Warn("⚠️ Blacklist check failed", zap.Error(err))
	}
	if revoked {
		return utils.HandleError(c, fiber.StatusUnauthorized, "Token has been revoked")
	}

	c.Locals(LocalClaims, claims)
	c.Locals(LocalUserID, claims.UserID)
	c.Locals(LocalEmail, claims.Email)
	c.Locals(LocalRole, claims.Role)
	c.Locals(LocalRefID, claims.RefID)

	return c.Next()
}

// RequireRoles lets through the listed roles. Admins always pass.
func RequireRoles(roles ...string) fiber.Handler {
	allowed := make(map[string]bool, len(roles)+1)
	for _, r := range roles {
		allowed[r] = true
	}
	allowed[models.RoleAdmin] = true

	return func(c *fiber.Ctx) error {
		role, _ := c.Locals(LocalRole).(string)
		if role == "" {
			return utils.HandleError(c, fiber.StatusUnauthorized, "Unauthorized")
		}
		if !allowed[role] {
			return utils.HandleError(c, fiber.StatusForbidden, "Insufficient permissions")
		}
		return c.Next()
	}
}

// Claims returns the token claims stored by AuthJWT.
func Claims(c *fiber.Ctx) *utils.JWTClaims {
	claims, _ := c.Locals(LocalClaims).(*utils.JWTClaims)
	return claims
}

// ActorFrom builds the actor for service calls from the request locals.
func ActorFrom(c *fiber.Ctx) models.Actor {
	str := func(key string) string {
		v, _ := c.Locals(key).(string)
		return v
	}
	return models.Actor{
		UserID:    str(LocalUserID),
		Email:     str(LocalEmail),
		Role:      str(LocalRole),
		RefID:     str(LocalRefID),
		RequestID: str(LocalRequestID),
	}
}
