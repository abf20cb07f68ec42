package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/redesmx/isp-backoffice/internal/api/dto"
	"github.com/redesmx/isp-backoffice/internal/auth"
	"github.com/redesmx/isp-backoffice/internal/domain"
	"github.com/redesmx/isp-backoffice/internal/repository"
	"github.com/redesmx/isp-backoffice/internal/service"
	apperrors "github.com/redesmx/isp-backoffice/pkg/util/errorutil"
)

// WorkOrdersHandler manages field task endpoints.
type WorkOrdersHandler struct {
	service *service.WorkOrderService
}

// NewWorkOrdersHandler constructs handler.
func NewWorkOrdersHandler(orderService *service.WorkOrderService) *WorkOrdersHandler {
	return &WorkOrdersHandler{service: orderService}
}

// CreateWorkOrder POST /staff/work-orders.
func (h *WorkOrdersHandler) CreateWorkOrder(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("staff required")
	}
	var req dto.CreateWorkOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("payload inválido", nil)
	}
	if req.ContractID == "" {
		return apperrors.NewValidationError("contract_id requerido", nil)
	}

	order, err := h.service.CreateWorkOrder(c.Context(), principal.Staff, service.WorkOrderCreateInput{
		ContractID:    req.ContractID,
		Type:          req.Type,
		Notes:         req.Notes,
		ScheduledDate: req.ScheduledDate,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": workOrderResponse(order)})
}

// GetWorkOrder GET /staff/work-orders/:id.
func (h *WorkOrdersHandler) GetWorkOrder(c *fiber.Ctx) error {
	order, err := h.service.GetWorkOrder(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": workOrderResponse(order)})
}

// ListWorkOrders GET /staff/work-orders.
func (h *WorkOrdersHandler) ListWorkOrders(c *fiber.Ctx) error {
	filter := repository.WorkOrderFilter{}
	if id := c.Query("contract_id"); id != "" {
		filter.ContractID = &id
	}
	if assignee := c.Query("assigned_to"); assignee != "" {
		filter.AssignedTo = &assignee
	}
	if statusStr := c.Query("status"); statusStr != "" {
		for _, part := range strings.Split(statusStr, ",") {
			filter.Statuses = append(filter.Statuses, domain.WorkOrderStatus(strings.TrimSpace(part)))
		}
	}
	if typeStr := c.Query("type"); typeStr != "" {
		for _, part := range strings.Split(typeStr, ",") {
			filter.Types = append(filter.Types, domain.WorkOrderType(strings.TrimSpace(part)))
		}
	}
	page := parseInt(c.Query("page"), 1)
	pageSize := parseInt(c.Query("page_size"), 20)
	filter.Offset = (page - 1) * pageSize
	filter.Limit = pageSize

	orders, err := h.service.ListWorkOrders(c.Context(), filter)
	if err != nil {
		return err
	}
	items := make([]dto.WorkOrderResponse, 0, len(orders))
	for i := range orders {
		items = append(items, workOrderResponse(&orders[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Assign POST /staff/work-orders/:id/assign.
func (h *WorkOrdersHandler) Assign(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("staff required")
	}
	var req dto.AssignWorkOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("payload inválido", nil)
	}
	if req.StaffID == "" {
		return apperrors.NewValidationError("staff_id requerido", nil)
	}
	order, err := h.service.AssignWorkOrder(c.Context(), principal.Staff, c.Params("id"), req.StaffID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": workOrderResponse(order)})
}

// Start POST /staff/work-orders/:id/start.
func (h *WorkOrdersHandler) Start(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("staff required")
	}
	order, err := h.service.StartWorkOrder(c.Context(), principal.Staff, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": workOrderResponse(order)})
}

// Complete POST /staff/work-orders/:id/complete.
func (h *WorkOrdersHandler) Complete(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("staff required")
	}
	var req dto.CompleteWorkOrderRequest
	_ = c.BodyParser(&req)
	order, err := h.service.CompleteWorkOrder(c.Context(), principal.Staff, c.Params("id"), req.Notes)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": workOrderResponse(order)})
}

// Cancel POST /staff/work-orders/:id/cancel.
func (h *WorkOrdersHandler) Cancel(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("staff required")
	}
	order, err := h.service.CancelWorkOrder(c.Context(), principal.Staff, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": workOrderResponse(order)})
}

func workOrderResponse(order *domain.WorkOrder) dto.WorkOrderResponse {
	return dto.WorkOrderResponse{
		ID:            order.ID,
		ContractID:    order.ContractID,
		Type:          order.Type,
		Status:        order.Status,
		Notes:         order.Notes,
		AssignedTo:    order.AssignedTo,
		ScheduledDate: order.ScheduledDate,
		CompletedDate: order.CompletedDate,
		CreatedAt:     order.CreatedAt,
	}
}
