package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/redesmx/isp-backoffice/internal/api/dto"
	"github.com/redesmx/isp-backoffice/internal/domain"
	"github.com/redesmx/isp-backoffice/internal/service"
	apperrors "github.com/redesmx/isp-backoffice/pkg/util/errorutil"
)

// PublicHandler serves the anonymous endpoints of the customer-facing site:
// ticket submission, folio tracking and the coverage check.
type PublicHandler struct {
	tickets   *service.TicketService
	coverage  *service.CoverageService
	customers *service.CustomerService
}

// NewPublicHandler constructs handler.
func NewPublicHandler(tickets *service.TicketService, coverage *service.CoverageService, customers *service.CustomerService) *PublicHandler {
	return &PublicHandler{tickets: tickets, coverage: coverage, customers: customers}
}

// CreateTicket POST /public/tickets.
func (h *PublicHandler) CreateTicket(c *fiber.Ctx) error {
	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("payload inválido", nil)
	}
	if req.CustomerName == "" || req.Phone == "" {
		return apperrors.NewValidationError("customer_name y phone son obligatorios", nil)
	}

	ticket, err := h.tickets.CreateTicket(c.Context(), service.TicketCreateInput{
		Type:         req.Type,
		CustomerName: req.CustomerName,
		Phone:        req.Phone,
		Email:        req.Email,
		Address:      req.Address,
		Zone:         req.Zone,
		Description:  req.Description,
		Priority:     req.Priority,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": fiber.Map{
		"folio":  ticket.Folio,
		"status": ticket.Status,
	}})
}

// TrackTicket GET /public/tickets/:folio.
func (h *PublicHandler) TrackTicket(c *fiber.Ctx) error {
	ticket, err := h.tickets.TrackByFolio(c.Context(), c.Params("folio"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.TicketTrackingResponse{
		Folio:     ticket.Folio,
		Type:      ticket.Type,
		Status:    ticket.Status,
		Zone:      ticket.Zone,
		CreatedAt: ticket.CreatedAt,
		UpdatedAt: ticket.UpdatedAt,
		ClosedAt:  ticket.ClosedAt,
	}})
}

// CheckCoverage GET /public/coverage.
func (h *PublicHandler) CheckCoverage(c *fiber.Ctx) error {
	zone := strings.TrimSpace(c.Query("zone"))
	if zone == "" {
		return apperrors.NewValidationError("zone requerida", nil)
	}
	covered := h.coverage.HasCoverage(zone)
	message := "Zona sin cobertura por el momento"
	if covered {
		message = "Contamos con cobertura en tu zona"
	}
	return c.JSON(fiber.Map{"data": dto.CoverageResponse{
		Zone:    strings.ToLower(zone),
		Covered: covered,
		Message: message,
	}})
}

// ListPackages GET /public/packages.
func (h *PublicHandler) ListPackages(c *fiber.Ctx) error {
	packages, err := h.customers.ListPackages(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.PackageResponse, 0, len(packages))
	for _, pkg := range packages {
		items = append(items, packageResponse(&pkg))
	}
	return c.JSON(fiber.Map{"data": items})
}

func packageResponse(pkg *domain.ServicePackage) dto.PackageResponse {
	return dto.PackageResponse{
		ID:         pkg.ID,
		Name:       pkg.Name,
		SpeedMbps:  pkg.SpeedMbps,
		MonthlyFee: pkg.MonthlyFee,
	}
}
