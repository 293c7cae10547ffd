package controllers

import (
	"context"

	"pulsepad-backend/src/middleware"
	"pulsepad-backend/src/models"
	"pulsepad-backend/src/utils"

	"github.com/gofiber/fiber/v2"
)

type NotificationService interface {
	ListForUser(ctx context.Context, userID string, unreadOnly bool) ([]models.Notification, error)
	MarkRead(ctx context.Context, userID, id string) error
}

type NotificationController struct {
	svc NotificationService
}

func NewNotificationController(svc NotificationService) *NotificationController {
	return &NotificationController{svc: svc}
}

// List godoc
// @Summary      My notifications
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Param        unread  query  bool  false  "Only unread"
// @Success      200  {array}  models.Notification
// @Router       /employee/notifications [get]
// @Router       /client/notifications [get]
func (nc *NotificationController) List(c *fiber.Ctx) error {
	list, err := nc.svc.ListForUser(c.UserContext(), middleware.ActorFrom(c).UserID, c.QueryBool("unread"))
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return c.JSON(list)
}

// MarkRead godoc
// @Summary      Mark a notification as read
// @Tags         notifications
// @Security     BearerAuth
// @Param        id   path  string  true  "Notification ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  models.ErrorResponse
// @Router       /employee/notifications/{id}/read [put]
func (nc *NotificationController) MarkRead(c *fiber.Ctx) error {
	if err := nc.svc.MarkRead(c.UserContext(), middleware.ActorFrom(c).UserID, c.Params("id")); err != nil {
		return utils.HandleServiceError(c, err)
	}
	return c.JSON(message("Notification marked as read"))
}
