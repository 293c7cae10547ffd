package controllers

import (
	"context"

	"pulsepad-backend/src/models"
	"pulsepad-backend/src/utils"

	"github.com/gofiber/fiber/v2"
)

type CandidateService interface {
	List(ctx context.Context, params models.PaginationParams, stage string) ([]models.Candidate, int64, error)
	Get(ctx context.Context, id string) (*models.Candidate, error)
	Create(ctx context.Context, in models.CandidateInput) (*models.Candidate, error)
	Update(ctx context.Context, id string, in models.CandidateInput) (*models.Candidate, error)
	Delete(ctx context.Context, id string) error
}

type CandidateController struct {
	svc     CandidateService
	auditor Auditor
}

func NewCandidateController(svc CandidateService, auditor Auditor) *CandidateController {
	return &CandidateController{svc: svc, auditor: auditor}
}

// List godoc
// @Summary      List hiring candidates
// @Tags         admin-candidates
// @Produce      json
// @Security     BearerAuth
// @Param        page    query  int     false  "Page number" default(1)
// @Param        limit   query  int     false  "Items per page" default(10)
// @Param        search  query  string  false  "Search term"
// @Param        stage   query  string  false  "Pipeline stage"
// @Success      200  {object}  models.PaginatedResponse
// @Router       /admin/candidates [get]
func (cc *CandidateController) List(c *fiber.Ctx) error {
	params := paginationFrom(c)
	list, total, err := cc.svc.List(c.UserContext(), params, c.Query("stage"))
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return c.JSON(models.NewPaginatedResponse(list, total, params))
}

func (cc *CandidateController) Get(c *fiber.Ctx) error {
	cand, err := cc.svc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return c.JSON(cand)
}

func (cc *CandidateController) Create(c *fiber.Ctx) error {
	var in models.CandidateInput
	if ok, err := utils.ParseAndValidate(c, &in); !ok {
		return err
	}
	cand, err := cc.svc.Create(c.UserContext(), in)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	audit(c, cc.auditor, models.ActionCreate, "candidate", cand.ID.Hex(), cand.Name)
	return c.Status(fiber.StatusCreated).JSON(cand)
}

// Update godoc
// @Summary      Update a candidate
// @Description  Closed candidates and backward stage moves are refused with 409
// @Tags         admin-candidates
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Candidate ID"
// @Param        body  body      models.CandidateInput  true  "Candidate"
// @Success      200   {object}  models.Candidate
// @Failure      409   {object}  models.ErrorResponse
// @Router       /admin/candidates/{id} [put]
func (cc *CandidateController) Update(c *fiber.Ctx) error {
	var in models.CandidateInput
	if ok, err := utils.ParseAndValidate(c, &in); !ok {
		return err
	}
	cand, err := cc.svc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	audit(c, cc.auditor, models.ActionUpdate, "candidate", cand.ID.Hex(), cand.Stage)
	return c.JSON(cand)
}

func (cc *CandidateController) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := cc.svc.Delete(c.UserContext(), id); err != nil {
		return utils.HandleServiceError(c, err)
	}
	audit(c, cc.auditor, models.ActionDelete, "candidate", id, "")
	return c.JSON(message("Candidate deleted successfully"))
}
