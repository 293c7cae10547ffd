package controllers

import (
	"context"
	"strconv"

	"pulsepad-backend/src/middleware"
	"pulsepad-backend/src/models"

	"github.com/gofiber/fiber/v2"
)

// Auditor records admin actions that are not audited by the service layer.
type Auditor interface {
	Record(ctx context.Context, actor models.Actor, action, entity, entityID, details string)
}

// paginationFrom reads page, limit, search, sortBy and order from the query.
func paginationFrom(c *fiber.Ctx) models.PaginationParams {
	params := models.DefaultPagination()
	params.Page, _ = strconv.Atoi(c.Query("page", strconv.Itoa(params.Page)))
	params.Limit, _ = strconv.Atoi(c.Query("limit", strconv.Itoa(params.Limit)))
	params.Search = c.Query("search")
	params.SortBy = c.Query("sortBy", params.SortBy)
	params.Order = c.Query("order", params.Order)
	params.Normalize()
	return params
}

func audit(c *fiber.Ctx, a Auditor, action, entity, entityID, details string) {
	if a == nil {
		return
	}
	a.Record(c.UserContext(), middleware.ActorFrom(c), action, entity, entityID, details)
}

func message(msg string) fiber.Map {
	return fiber.Map{"message": msg}
}
