package controllers

import (
	"pulsepad-backend/src/middleware"
	"pulsepad-backend/src/models"
	"pulsepad-backend/src/utils"

	"github.com/gofiber/fiber/v2"
)

// ListTemplates godoc
// @Summary      List assessment templates
// @Tags         admin-templates
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  models.AssessmentTemplate
// @Router       /admin/assessments/templates [get]
func (ac *AssessmentController) ListTemplates(c *fiber.Ctx) error {
	list, err := ac.svc.ListTemplates(c.UserContext())
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return c.JSON(list)
}

// GetTemplate godoc
// @Summary      Get an assessment template
// @Tags         admin-templates
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Template ID"
// @Success      200  {object}  models.AssessmentTemplate
// @Failure      404  {object}  models.ErrorResponse
// @Router       /admin/assessments/templates/{id} [get]
func (ac *AssessmentController) GetTemplate(c *fiber.Ctx) error {
	t, err := ac.svc.GetTemplate(c.UserContext(), c.Params("id"))
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return c.JSON(t)
}

// CreateTemplate godoc
// @Summary      Create an assessment template
// @Tags         admin-templates
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      models.AssessmentTemplateInput  true  "Template"
// @Success      201   {object}  models.AssessmentTemplate
// @Failure      400   {object}  models.ErrorResponse
// @Router       /admin/assessments/templates [post]
func (ac *AssessmentController) CreateTemplate(c *fiber.Ctx) error {
	var in models.AssessmentTemplateInput
	if ok, err := utils.ParseAndValidate(c, &in); !ok {
		return err
	}
	t, err := ac.svc.CreateTemplate(c.UserContext(), middleware.ActorFrom(c), in)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(t)
}

// UpdateTemplate godoc
// @Summary      Update an assessment template
// @Tags         admin-templates
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                          true  "Template ID"
// @Param        body  body      models.AssessmentTemplateInput  true  "Template"
// @Success      200   {object}  models.AssessmentTemplate
// @Failure      404   {object}  models.ErrorResponse
// @Router       /admin/assessments/templates/{id} [put]
func (ac *AssessmentController) UpdateTemplate(c *fiber.Ctx) error {
	var in models.AssessmentTemplateInput
	if ok, err := utils.ParseAndValidate(c, &in); !ok {
		return err
	}
	t, err := ac.svc.UpdateTemplate(c.UserContext(), middleware.ActorFrom(c), c.Params("id"), in)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return c.JSON(t)
}

// DeleteTemplate godoc
// @Summary      Delete an assessment template
// @Description  Refused with 409 while ASSIGNED or SUBMITTED records still use it
// @Tags         admin-templates
// @Security     BearerAuth
// @Param        id   path      string  true  "Template ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      409  {object}  models.ErrorResponse
// @Router       /admin/assessments/templates/{id} [delete]
func (ac *AssessmentController) DeleteTemplate(c *fiber.Ctx) error {
	if err := ac.svc.DeleteTemplate(c.UserContext(), middleware.ActorFrom(c), c.Params("id")); err != nil {
		return utils.HandleServiceError(c, err)
	}
	return c.JSON(message("Template deleted successfully"))
}
