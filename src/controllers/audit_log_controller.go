package controllers

import (
	"context"

	"pulsepad-backend/src/models"
	"pulsepad-backend/src/services/auditlogs"
	"pulsepad-backend/src/utils"

	"github.com/gofiber/fiber/v2"
)

type AuditLogService interface {
	List(ctx context.Context, params models.PaginationParams, f auditlogs.Filter) ([]models.AuditLog, int64, error)
}

type AuditLogController struct {
	svc AuditLogService
}

func NewAuditLogController(svc AuditLogService) *AuditLogController {
	return &AuditLogController{svc: svc}
}

// List godoc
// @Summary      Audit trail
// @Tags         admin-audit
// @Produce      json
// @Security     BearerAuth
// @Param        page     query  int     false  "Page number" default(1)
// @Param        limit    query  int     false  "Items per page" default(10)
// @Param        entity   query  string  false  "Entity type"
// @Param        action   query  string  false  "Action"
// @Param        actorId  query  string  false  "Acting user"
// @Success      200  {object}  models.PaginatedResponse
// @Router       /admin/audit-logs [get]
func (ac *AuditLogController) List(c *fiber.Ctx) error {
	params := paginationFrom(c)
	if c.Query("sortBy") == "" {
		params.SortBy = "createdAt"
		params.Order = "desc"
	}
	var f auditlogs.Filter
	if err := c.QueryParser(&f); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid query parameters")
	}
	list, total, err := ac.svc.List(c.UserContext(), params, f)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return c.JSON(models.NewPaginatedResponse(list, total, params))
}
