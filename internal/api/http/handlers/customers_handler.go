package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/redesmx/isp-backoffice/internal/api/dto"
	"github.com/redesmx/isp-backoffice/internal/auth"
	"github.com/redesmx/isp-backoffice/internal/domain"
	"github.com/redesmx/isp-backoffice/internal/service"
	apperrors "github.com/redesmx/isp-backoffice/pkg/util/errorutil"
)

// CustomersHandler manages customer and package catalog endpoints.
type CustomersHandler struct {
	service *service.CustomerService
}

// NewCustomersHandler constructs handler.
func NewCustomersHandler(customerService *service.CustomerService) *CustomersHandler {
	return &CustomersHandler{service: customerService}
}

// CreateCustomer POST /staff/customers.
func (h *CustomersHandler) CreateCustomer(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("staff required")
	}
	var req dto.CustomerRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("payload inválido", nil)
	}
	customer, err := h.service.CreateCustomer(c.Context(), principal.Staff, service.CustomerInput(req))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": customerResponse(customer)})
}

// UpdateCustomer PUT /staff/customers/:id.
func (h *CustomersHandler) UpdateCustomer(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("staff required")
	}
	var req dto.CustomerRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("payload inválido", nil)
	}
	customer, err := h.service.UpdateCustomer(c.Context(), principal.Staff, c.Params("id"), service.CustomerInput(req))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": customerResponse(customer)})
}

// GetCustomer GET /staff/customers/:id.
func (h *CustomersHandler) GetCustomer(c *fiber.Ctx) error {
	customer, err := h.service.GetCustomer(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": customerResponse(customer)})
}

// ListCustomers GET /staff/customers.
func (h *CustomersHandler) ListCustomers(c *fiber.Ctx) error {
	var search *string
	if term := c.Query("search"); term != "" {
		search = &term
	}
	page := parseInt(c.Query("page"), 1)
	pageSize := parseInt(c.Query("page_size"), 20)
	customers, err := h.service.ListCustomers(c.Context(), search, pageSize, (page-1)*pageSize)
	if err != nil {
		return err
	}
	items := make([]dto.CustomerResponse, 0, len(customers))
	for i := range customers {
		items = append(items, customerResponse(&customers[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// CreatePackage POST /staff/packages.
func (h *CustomersHandler) CreatePackage(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("staff required")
	}
	var req dto.CreatePackageRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("payload inválido", nil)
	}
	pkg, err := h.service.CreatePackage(c.Context(), principal.Staff, req.Name, req.SpeedMbps, req.MonthlyFee)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": packageResponse(pkg)})
}

func customerResponse(customer *domain.Customer) dto.CustomerResponse {
	return dto.CustomerResponse{
		ID:        customer.ID,
		Name:      customer.Name,
		Phone:     customer.Phone,
		Email:     customer.Email,
		Address:   customer.Address,
		Zone:      customer.Zone,
		CreatedAt: customer.CreatedAt,
	}
}
