package controllers

import (
	"context"

	"pulsepad-backend/src/middleware"
	"pulsepad-backend/src/models"
	"pulsepad-backend/src/utils"

	"github.com/gofiber/fiber/v2"
)

type UserService interface {
	List(ctx context.Context, params models.PaginationParams, role string) ([]models.User, int64, error)
	Get(ctx context.Context, id string) (*models.User, error)
	Create(ctx context.Context, in models.UserInput) (*models.User, error)
	Update(ctx context.Context, id string, in models.UserInput) (*models.User, error)
	Delete(ctx context.Context, id string) error
}

type UserController struct {
	svc     UserService
	auditor Auditor
}

func NewUserController(svc UserService, auditor Auditor) *UserController {
	return &UserController{svc: svc, auditor: auditor}
}

// List godoc
// @Summary      List user accounts
// @Tags         admin-users
// @Produce      json
// @Security     BearerAuth
// @Param        page    query  int     false  "Page number" default(1)
// @Param        limit   query  int     false  "Items per page" default(10)
// @Param        search  query  string  false  "Search name or e-mail"
// @Param        role    query  string  false  "admin, employee or client"
// @Success      200  {object}  models.PaginatedResponse
// @Router       /admin/users [get]
func (uc *UserController) List(c *fiber.Ctx) error {
	params := paginationFrom(c)
	list, total, err := uc.svc.List(c.UserContext(), params, c.Query("role"))
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return c.JSON(models.NewPaginatedResponse(list, total, params))
}

func (uc *UserController) Get(c *fiber.Ctx) error {
	u, err := uc.svc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return c.JSON(u)
}

// Create godoc
// @Summary      Create a user account
// @Description  Employee accounts must reference an employee profile through refId
// @Tags         admin-users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      models.UserInput  true  "Account"
// @Success      201   {object}  models.User
// @Failure      409   {object}  models.ErrorResponse
// @Router       /admin/users [post]
func (uc *UserController) Create(c *fiber.Ctx) error {
	var in models.UserInput
	if ok, err := utils.ParseAndValidate(c, &in); !ok {
		return err
	}
	u, err := uc.svc.Create(c.UserContext(), in)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	audit(c, uc.auditor, models.ActionCreate, "user", u.ID.Hex(), u.Email)
	return c.Status(fiber.StatusCreated).JSON(u)
}

func (uc *UserController) Update(c *fiber.Ctx) error {
	var in models.UserInput
	if ok, err := utils.ParseAndValidate(c, &in); !ok {
		return err
	}
	u, err := uc.svc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	audit(c, uc.auditor, models.ActionUpdate, "user", u.ID.Hex(), u.Role)
	return c.JSON(u)
}

func (uc *UserController) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == middleware.ActorFrom(c).UserID {
		return utils.HandleError(c, fiber.StatusConflict, "You cannot delete your own account")
	}
	if err := uc.svc.Delete(c.UserContext(), id); err != nil {
		return utils.HandleServiceError(c, err)
	}
	audit(c, uc.auditor, models.ActionDelete, "user", id, "")
	return c.JSON(message("User deleted successfully"))
}
