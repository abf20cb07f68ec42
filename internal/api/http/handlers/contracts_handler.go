package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/redesmx/isp-backoffice/internal/api/dto"
	"github.com/redesmx/isp-backoffice/internal/auth"
	"github.com/redesmx/isp-backoffice/internal/domain"
	"github.com/redesmx/isp-backoffice/internal/service"
	apperrors "github.com/redesmx/isp-backoffice/pkg/util/errorutil"
)

// ContractsHandler manages service contract endpoints.
type ContractsHandler struct {
	service *service.ContractService
}

// NewContractsHandler constructs handler.
func NewContractsHandler(contractService *service.ContractService) *ContractsHandler {
	return &ContractsHandler{service: contractService}
}

// CreateContract POST /staff/contracts.
func (h *ContractsHandler) CreateContract(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("staff required")
	}
	var req dto.CreateContractRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("payload inválido", nil)
	}
	if req.CustomerID == "" || req.PackageID == "" {
		return apperrors.NewValidationError("customer_id y package_id son obligatorios", nil)
	}

	contract, order, err := h.service.CreateContract(c.Context(), principal.Staff, service.ContractCreateInput{
		CustomerID:    req.CustomerID,
		PackageID:     req.PackageID,
		PaymentDay:    req.PaymentDay,
		ScheduledDate: req.ScheduledDate,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": fiber.Map{
		"contract":           contractResponse(contract),
		"installation_order": workOrderResponse(order),
	}})
}

// GetContract GET /staff/contracts/:id.
func (h *ContractsHandler) GetContract(c *fiber.Ctx) error {
	contract, err := h.service.GetContract(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": contractResponse(contract)})
}

// ListContracts GET /staff/contracts.
func (h *ContractsHandler) ListContracts(c *fiber.Ctx) error {
	var customerID *string
	if id := c.Query("customer_id"); id != "" {
		customerID = &id
	}
	var statuses []domain.ContractStatus
	if statusStr := c.Query("status"); statusStr != "" {
		for _, part := range strings.Split(statusStr, ",") {
			statuses = append(statuses, domain.ContractStatus(strings.TrimSpace(part)))
		}
	}
	page := parseInt(c.Query("page"), 1)
	pageSize := parseInt(c.Query("page_size"), 20)
	contracts, err := h.service.ListContracts(c.Context(), customerID, statuses, pageSize, (page-1)*pageSize)
	if err != nil {
		return err
	}
	items := make([]dto.ContractResponse, 0, len(contracts))
	for i := range contracts {
		items = append(items, contractResponse(&contracts[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Activate POST /staff/contracts/:id/activate.
func (h *ContractsHandler) Activate(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("staff required")
	}
	contract, err := h.service.ActivateContract(c.Context(), principal.Staff, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": contractResponse(contract)})
}

// Suspend POST /staff/contracts/:id/suspend.
func (h *ContractsHandler) Suspend(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("staff required")
	}
	var req dto.SuspendContractRequest
	_ = c.BodyParser(&req)
	contract, err := h.service.SuspendContract(c.Context(), principal.Staff, c.Params("id"), req.Reason)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": contractResponse(contract)})
}

// Reactivate POST /staff/contracts/:id/reactivate.
func (h *ContractsHandler) Reactivate(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("staff required")
	}
	contract, err := h.service.ReactivateContract(c.Context(), principal.Staff, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": contractResponse(contract)})
}

// Cancel POST /staff/contracts/:id/cancel.
func (h *ContractsHandler) Cancel(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("staff required")
	}
	contract, err := h.service.CancelContract(c.Context(), principal.Staff, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": contractResponse(contract)})
}

func contractResponse(contract *domain.ServiceContract) dto.ContractResponse {
	return dto.ContractResponse{
		ID:              contract.ID,
		CustomerID:      contract.CustomerID,
		PackageID:       contract.PackageID,
		Status:          contract.Status,
		MonthlyFee:      contract.MonthlyFee,
		PaymentDay:      contract.PaymentDay,
		NextPaymentDate: contract.NextPaymentDate,
		InstalledAt:     contract.InstalledAt,
		CreatedAt:       contract.CreatedAt,
	}
}
