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

// PaymentsHandler manages payment endpoints.
type PaymentsHandler struct {
	service *service.PaymentService
}

// NewPaymentsHandler constructs handler.
func NewPaymentsHandler(paymentService *service.PaymentService) *PaymentsHandler {
	return &PaymentsHandler{service: paymentService}
}

// RecordPayment POST /staff/payments.
func (h *PaymentsHandler) RecordPayment(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("staff required")
	}
	var req dto.CreatePaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("payload inválido", nil)
	}
	if req.ContractID == "" {
		return apperrors.NewValidationError("contract_id requerido", nil)
	}

	payment, err := h.service.RecordPayment(c.Context(), principal.Staff, service.PaymentCreateInput{
		ContractID:  req.ContractID,
		Amount:      req.Amount,
		Method:      req.Method,
		Type:        req.Type,
		PeriodStart: req.PeriodStart,
		PeriodEnd:   req.PeriodEnd,
		Reference:   req.Reference,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": paymentResponse(payment)})
}

// GetPayment GET /staff/payments/:id.
func (h *PaymentsHandler) GetPayment(c *fiber.Ctx) error {
	payment, err := h.service.GetPayment(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": paymentResponse(payment)})
}

// ListPayments GET /staff/payments.
func (h *PaymentsHandler) ListPayments(c *fiber.Ctx) error {
	var contractID *string
	if id := c.Query("contract_id"); id != "" {
		contractID = &id
	}
	var statuses []domain.PaymentStatus
	if statusStr := c.Query("status"); statusStr != "" {
		for _, part := range strings.Split(statusStr, ",") {
			statuses = append(statuses, domain.PaymentStatus(strings.TrimSpace(part)))
		}
	}
	page := parseInt(c.Query("page"), 1)
	pageSize := parseInt(c.Query("page_size"), 20)
	payments, err := h.service.ListPayments(c.Context(), contractID, statuses, pageSize, (page-1)*pageSize)
	if err != nil {
		return err
	}
	items := make([]dto.PaymentResponse, 0, len(payments))
	for i := range payments {
		items = append(items, paymentResponse(&payments[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Approve POST /staff/payments/:id/approve.
func (h *PaymentsHandler) Approve(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("staff required")
	}
	payment, err := h.service.ApprovePayment(c.Context(), principal.Staff, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": paymentResponse(payment)})
}

// Reject POST /staff/payments/:id/reject.
func (h *PaymentsHandler) Reject(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("staff required")
	}
	var req dto.RejectPaymentRequest
	_ = c.BodyParser(&req)
	payment, err := h.service.RejectPayment(c.Context(), principal.Staff, c.Params("id"), req.Reason)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": paymentResponse(payment)})
}

// Cancel POST /staff/payments/:id/cancel.
func (h *PaymentsHandler) Cancel(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("staff required")
	}
	payment, err := h.service.CancelPayment(c.Context(), principal.Staff, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": paymentResponse(payment)})
}

// PaymentStatus GET /staff/contracts/:id/payment-status.
func (h *PaymentsHandler) PaymentStatus(c *fiber.Ctx) error {
	summary, err := h.service.PaymentStatusForContract(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.PaymentStatusResponse{
		ContractID:      summary.ContractID,
		NextPaymentDate: summary.NextPaymentDate,
		DaysUntilDue:    summary.DaysUntilDue,
		Tier:            summary.Tier,
		Message:         summary.Message,
	}})
}

func paymentResponse(payment *domain.Payment) dto.PaymentResponse {
	return dto.PaymentResponse{
		ID:          payment.ID,
		ContractID:  payment.ContractID,
		Amount:      payment.Amount,
		Method:      payment.Method,
		Type:        payment.Type,
		Status:      payment.Status,
		PeriodStart: payment.PeriodStart,
		PeriodEnd:   payment.PeriodEnd,
		Reference:   payment.Reference,
		CreatedAt:   payment.CreatedAt,
	}
}
