package controllers

import (
	"context"

	"pulsepad-backend/src/models"
	"pulsepad-backend/src/utils"

	"github.com/gofiber/fiber/v2"
)

type EmployeeService interface {
	List(ctx context.Context, params models.PaginationParams, status string) ([]models.Employee, int64, error)
	Get(ctx context.Context, id string) (*models.Employee, error)
	Create(ctx context.Context, in models.EmployeeInput) (*models.Employee, error)
	Update(ctx context.Context, id string, in models.EmployeeInput) (*models.Employee, error)
	Delete(ctx context.Context, id string) error
}

type EmployeeController struct {
	svc     EmployeeService
	auditor Auditor
}

func NewEmployeeController(svc EmployeeService, auditor Auditor) *EmployeeController {
	return &EmployeeController{svc: svc, auditor: auditor}
}

// List godoc
// @Summary      List employees
// @Tags         admin-employees
// @Produce      json
// @Security     BearerAuth
// @Param        page    query  int     false  "Page number" default(1)
// @Param        limit   query  int     false  "Items per page" default(10)
// @Param        search  query  string  false  "Search name, e-mail, position or department"
// @Param        sortBy  query  string  false  "Sort field" default(_id)
// @Param        order   query  string  false  "asc or desc" default(asc)
// @Param        status  query  string  false  "active or inactive"
// @Success      200  {object}  models.PaginatedResponse
// @Router       /admin/employees [get]
func (ec *EmployeeController) List(c *fiber.Ctx) error {
	params := paginationFrom(c)
	list, total, err := ec.svc.List(c.UserContext(), params, c.Query("status"))
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return c.JSON(models.NewPaginatedResponse(list, total, params))
}

// Get godoc
// @Summary      Get an employee
// @Tags         admin-employees
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Employee ID"
// @Success      200  {object}  models.Employee
// @Failure      404  {object}  models.ErrorResponse
// @Router       /admin/employees/{id} [get]
func (ec *EmployeeController) Get(c *fiber.Ctx) error {
	e, err := ec.svc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return c.JSON(e)
}

// Create godoc
// @Summary      Create an employee
// @Tags         admin-employees
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      models.EmployeeInput  true  "Employee"
// @Success      201   {object}  models.Employee
// @Failure      400   {object}  models.ErrorResponse
// @Failure      409   {object}  models.ErrorResponse
// @Router       /admin/employees [post]
func (ec *EmployeeController) Create(c *fiber.Ctx) error {
	var in models.EmployeeInput
	if ok, err := utils.ParseAndValidate(c, &in); !ok {
		return err
	}
	e, err := ec.svc.Create(c.UserContext(), in)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	audit(c, ec.auditor, models.ActionCreate, "employee", e.ID.Hex(), e.Name)
	return c.Status(fiber.StatusCreated).JSON(e)
}

// Update godoc
// @Summary      Update an employee
// @Tags         admin-employees
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "Employee ID"
// @Param        body  body      models.EmployeeInput  true  "Employee"
// @Success      200   {object}  models.Employee
// @Router       /admin/employees/{id} [put]
func (ec *EmployeeController) Update(c *fiber.Ctx) error {
	var in models.EmployeeInput
	if ok, err := utils.ParseAndValidate(c, &in); !ok {
		return err
	}
	e, err := ec.svc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	audit(c, ec.auditor, models.ActionUpdate, "employee", e.ID.Hex(), e.Name)
	return c.JSON(e)
}

// Delete godoc
// @Summary      Delete an employee
// @Description  Also deactivates the linked user account
// @Tags         admin-employees
// @Security     BearerAuth
// @Param        id   path  string  true  "Employee ID"
// @Success      200  {object}  map[string]interface{}
// @Router       /admin/employees/{id} [delete]
func (ec *EmployeeController) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := ec.svc.Delete(c.UserContext(), id); err != nil {
		return utils.HandleServiceError(c, err)
	}
	audit(c, ec.auditor, models.ActionDelete, "employee", id, "")
	return c.JSON(message("Employee deleted successfully"))
}
