package controllers

import (
	"context"

	"pulsepad-backend/src/middleware"
	"pulsepad-backend/src/models"
	"pulsepad-backend/src/services/auth"
	"pulsepad-backend/src/utils"

	"github.com/gofiber/fiber/v2"
)

type AuthService interface {
	Login(ctx context.Context, email, password, requestID string) (*auth.LoginResult, error)
	GoogleAuthURL() (url, state string, err error)
	GoogleLogin(ctx context.Context, in auth.GoogleCredential, requestID string) (*auth.LoginResult, error)
	Verify(ctx context.Context, claims *utils.JWTClaims) (*models.User, error)
	Logout(ctx context.Context, claims *utils.JWTClaims) error
}

type AuthController struct {
	svc AuthService
}

func NewAuthController(svc AuthService) *AuthController {
	return &AuthController{svc: svc}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Login godoc
// @Summary      Sign in with e-mail and password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  auth.LoginResult
// @Failure      401   {object}  models.ErrorResponse
// @Failure      429   {object}  models.ErrorResponse
// @Router       /auth/login [post]
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var req loginRequest
	if ok, err := utils.ParseAndValidate(c, &req); !ok {
		return err
	}
	res, err := ac.svc.Login(c.UserContext(), req.Email, req.Password, requestID(c))
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return c.JSON(res)
}

// GoogleURL godoc
// @Summary      Google consent page
// @Description  Redirect-flow entry point; the frontend posts the returned code together with state to /auth/google
// @Tags         auth
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /auth/google/url [get]
func (ac *AuthController) GoogleURL(c *fiber.Ctx) error {
	url, state, err := ac.svc.GoogleAuthURL()
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return c.JSON(fiber.Map{"url": url, "state": state})
}

// GoogleLogin godoc
// @Summary      Sign in with Google
// @Description  Accepts a Google access token (credential) or an authorization code (code). Only registered e-mails may sign in.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      auth.GoogleCredential  true  "Google credential"
// @Success      200   {object}  auth.LoginResult
// @Failure      401   {object}  models.ErrorResponse
// @Router       /auth/google [post]
func (ac *AuthController) GoogleLogin(c *fiber.Ctx) error {
	var in auth.GoogleCredential
	if err := c.BodyParser(&in); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid request format")
	}
	res, err := ac.svc.GoogleLogin(c.UserContext(), in, requestID(c))
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return c.JSON(res)
}

// Verify godoc
// @Summary      Check the current token
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  models.ErrorResponse
// @Router       /auth/verify [get]
func (ac *AuthController) Verify(c *fiber.Ctx) error {
	claims := middleware.Claims(c)
	if claims == nil {
		return utils.HandleError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	user, err := ac.svc.Verify(c.UserContext(), claims)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return c.JSON(fiber.Map{"valid": true, "user": user})
}

// Logout godoc
// @Summary      Revoke the current token
// @Tags         auth
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Router       /auth/logout [post]
func (ac *AuthController) Logout(c *fiber.Ctx) error {
	claims := middleware.Claims(c)
	if claims == nil {
		return utils.HandleError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	if err := ac.svc.Logout(c.UserContext(), claims); err != nil {
		return utils.HandleServiceError(c, err)
	}
	return c.JSON(message("Logout successful"))
}

func requestID(c *fiber.Ctx) string {
	id, _ := c.Locals(middleware.LocalRequestID).(string)
	return id
}
