package controllers

import (
	"context"

	"pulsepad-backend/src/middleware"
	"pulsepad-backend/src/models"
	"pulsepad-backend/src/qrcode"
	"pulsepad-backend/src/utils"

	"github.com/gofiber/fiber/v2"
)

type ProjectService interface {
	List(ctx context.Context, params models.PaginationParams, status string) ([]models.Project, int64, error)
	Get(ctx context.Context, id string) (*models.Project, error)
	GetForClient(ctx context.Context, clientID, id string) (*models.Project, error)
	ListForClient(ctx context.Context, clientID string) ([]models.Project, error)
	ListForEmployee(ctx context.Context, employeeID string) ([]models.Project, error)
	Create(ctx context.Context, in models.ProjectInput) (*models.Project, error)
	Update(ctx context.Context, id string, in models.ProjectInput) (*models.Project, error)
	Delete(ctx context.Context, id string) error
}

type ProjectController struct {
	svc       ProjectService
	auditor   Auditor
	portalURL string
}

func NewProjectController(svc ProjectService, auditor Auditor, portalURL string) *ProjectController {
	return &ProjectController{svc: svc, auditor: auditor, portalURL: portalURL}
}

// List godoc
// @Summary      List projects
// @Tags         admin-projects
// @Produce      json
// @Security     BearerAuth
// @Param        page    query  int     false  "Page number" default(1)
// @Param        limit   query  int     false  "Items per page" default(10)
// @Param        search  query  string  false  "Search term"
// @Param        status  query  string  false  "planning, active, on_hold or completed"
// @Success      200  {object}  models.PaginatedResponse
// @Router       /admin/projects [get]
func (pc *ProjectController) List(c *fiber.Ctx) error {
	params := paginationFrom(c)
	list, total, err := pc.svc.List(c.UserContext(), params, c.Query("status"))
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return c.JSON(models.NewPaginatedResponse(list, total, params))
}

func (pc *ProjectController) Get(c *fiber.Ctx) error {
	p, err := pc.svc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return c.JSON(p)
}

// Create godoc
// @Summary      Create a project
// @Tags         admin-projects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      models.ProjectInput  true  "Project"
// @Success      201   {object}  models.Project
// @Router       /admin/projects [post]
func (pc *ProjectController) Create(c *fiber.Ctx) error {
	var in models.ProjectInput
	if ok, err := utils.ParseAndValidate(c, &in); !ok {
		return err
	}
	p, err := pc.svc.Create(c.UserContext(), in)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	audit(c, pc.auditor, models.ActionCreate, "project", p.ID.Hex(), p.Name)
	return c.Status(fiber.StatusCreated).JSON(p)
}

func (pc *ProjectController) Update(c *fiber.Ctx) error {
	var in models.ProjectInput
	if ok, err := utils.ParseAndValidate(c, &in); !ok {
		return err
	}
	p, err := pc.svc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	audit(c, pc.auditor, models.ActionUpdate, "project", p.ID.Hex(), p.Name)
	return c.JSON(p)
}

func (pc *ProjectController) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := pc.svc.Delete(c.UserContext(), id); err != nil {
		return utils.HandleServiceError(c, err)
	}
	audit(c, pc.auditor, models.ActionDelete, "project", id, "")
	return c.JSON(message("Project deleted successfully"))
}

// QRCode godoc
// @Summary      Share code for a project
// @Description  PNG QR code linking to the project's page in the client portal
// @Tags         admin-projects
// @Produce      png
// @Security     BearerAuth
// @Param        id    path   string  true   "Project ID"
// @Param        size  query  int     false  "Image size in pixels" default(256)
// @Success      200
// @Failure      404  {object}  models.ErrorResponse
// @Router       /admin/projects/{id}/qrcode [get]
func (pc *ProjectController) QRCode(c *fiber.Ctx) error {
	p, err := pc.svc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	png, err := qrcode.PNG(qrcode.ProjectLink(pc.portalURL, p.ID.Hex()), c.QueryInt("size", qrcode.DefaultSize))
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	c.Set(fiber.HeaderContentType, "image/png")
	return c.Send(png)
}

// ListMine godoc
// @Summary      Projects I am assigned to
// @Tags         employee
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  models.Project
// @Router       /employee/projects [get]
func (pc *ProjectController) ListMine(c *fiber.Ctx) error {
	actor := middleware.ActorFrom(c)
	if actor.RefID == "" {
		return c.JSON([]models.Project{})
	}
	list, err := pc.svc.ListForEmployee(c.UserContext(), actor.RefID)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return c.JSON(list)
}

// ListForClient godoc
// @Summary      My projects (client)
// @Tags         client
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  models.Project
// @Router       /client/projects [get]
func (pc *ProjectController) ListForClient(c *fiber.Ctx) error {
	list, err := pc.svc.ListForClient(c.UserContext(), middleware.ActorFrom(c).UserID)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return c.JSON(list)
}

// GetForClient godoc
// @Summary      One of my projects (client)
// @Tags         client
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Project ID"
// @Success      200  {object}  models.Project
// @Failure      404  {object}  models.ErrorResponse
// @Router       /client/projects/{id} [get]
func (pc *ProjectController) GetForClient(c *fiber.Ctx) error {
	p, err := pc.svc.GetForClient(c.UserContext(), middleware.ActorFrom(c).UserID, c.Params("id"))
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return c.JSON(p)
}
