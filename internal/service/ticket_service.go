package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/redesmx/isp-backoffice/internal/domain"
	"github.com/redesmx/isp-backoffice/internal/events"
	"github.com/redesmx/isp-backoffice/internal/lifecycle"
	"github.com/redesmx/isp-backoffice/internal/repository"
	apperrors "github.com/redesmx/isp-backoffice/pkg/util/errorutil"
)

// TicketService coordinates contract request and fault report workflows.
type TicketService struct {
	tickets    repository.TicketRepository
	staff      repository.StaffRepository
	zones      *CoverageService
	dispatcher events.Dispatcher
}

// TicketDependencies bundles collaborators for ticket service.
type TicketDependencies struct {
	TicketRepo repository.TicketRepository
	StaffRepo  repository.StaffRepository
	Coverage   *CoverageService
	Dispatcher events.Dispatcher
}

// TicketCreateInput describes a public ticket submission.
type TicketCreateInput struct {
	Type         domain.TicketType
	CustomerName string
	Phone        string
	Email        string
	Address      string
	Zone         string
	Description  string
	Priority     domain.TicketPriority
}

// TicketStaffFilter describes back-office listing filters.
type TicketStaffFilter struct {
	Type        *domain.TicketType
	Zone        *string
	AssignedTo  *string
	Statuses    []domain.TicketStatus
	Priorities  []domain.TicketPriority
	SearchTerm  *string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
	Limit       int
	Offset      int
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	return &TicketService{
		tickets:    deps.TicketRepo,
		staff:      deps.StaffRepo,
		zones:      deps.Coverage,
		dispatcher: deps.Dispatcher,
	}
}

// CreateTicket registers a ticket submitted through the public site. The
// caller is anonymous, so validation leans on the input alone.
func (s *TicketService) CreateTicket(ctx context.Context, input TicketCreateInput) (*domain.Ticket, error) {
	if input.Type != domain.TicketTypeContract && input.Type != domain.TicketTypeFault {
		return nil, apperrors.NewValidationError("tipo de ticket inválido", map[string]any{"type": input.Type})
	}
	name := strings.TrimSpace(input.CustomerName)
	phone := strings.TrimSpace(input.Phone)
	if name == "" || phone == "" {
		return nil, apperrors.NewValidationError("nombre y teléfono son obligatorios", nil)
	}
	zone := strings.ToLower(strings.TrimSpace(input.Zone))
	if s.zones != nil && input.Type == domain.TicketTypeContract && !s.zones.HasCoverage(zone) {
		return nil, apperrors.NewValidationError("la zona no cuenta con cobertura", map[string]any{"zone": zone})
	}

	ticket := &domain.Ticket{
		Folio:        generateFolio(),
		Type:         input.Type,
		CustomerName: name,
		Phone:        phone,
		Email:        strings.TrimSpace(input.Email),
		Address:      strings.TrimSpace(input.Address),
		Zone:         zone,
		Description:  strings.TrimSpace(input.Description),
		Status:       domain.TicketStatusNew,
		Priority:     input.Priority,
	}
	if ticket.Priority == "" {
		ticket.Priority = domain.TicketPriorityMedium
	}

	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketCreated,
		RecordID: ticket.ID,
		Payload: events.TicketCreatedPayload{
			Folio:        ticket.Folio,
			Type:         ticket.Type,
			Priority:     ticket.Priority,
			Zone:         ticket.Zone,
			ContactName:  ticket.CustomerName,
			ContactPhone: ticket.Phone,
		},
	})
	return ticket, nil
}

// TrackByFolio returns the ticket matching a customer-facing folio.
func (s *TicketService) TrackByFolio(ctx context.Context, folio string) (*domain.Ticket, error) {
	folio = strings.ToUpper(strings.TrimSpace(folio))
	if folio == "" {
		return nil, apperrors.NewValidationError("folio requerido", nil)
	}
	ticket, err := s.tickets.GetByFolio(ctx, folio)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return ticket, nil
}

// GetTicket fetches a ticket by id for back-office use.
func (s *TicketService) GetTicket(ctx context.Context, ticketID string) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return ticket, nil
}

// ListTickets returns tickets matching back-office filters.
func (s *TicketService) ListTickets(ctx context.Context, filter TicketStaffFilter) ([]domain.Ticket, error) {
	repoFilter := repository.TicketFilter{
		Type:        filter.Type,
		Zone:        filter.Zone,
		AssignedTo:  filter.AssignedTo,
		Statuses:    filter.Statuses,
		Priorities:  filter.Priorities,
		SearchTerm:  filter.SearchTerm,
		CreatedFrom: filter.CreatedFrom,
		CreatedTo:   filter.CreatedTo,
		Limit:       filter.Limit,
		Offset:      filter.Offset,
	}
	tickets, err := s.tickets.ListWithFilter(ctx, repoFilter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return tickets, nil
}

// UpdateStatus advances a ticket along its type's progression.
func (s *TicketService) UpdateStatus(ctx context.Context, staff *domain.StaffMember, ticketID string, newStatus domain.TicketStatus, comment string) (*domain.Ticket, error) {
	if staff == nil {
		return nil, apperrors.NewForbidden("staff required")
	}
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if err := lifecycle.ValidateTicketTransition(ticket, newStatus); err != nil {
		return nil, mapLifecycleError(err)
	}

	oldStatus := ticket.Status
	ticket.Status = newStatus
	if ticket.Terminal() {
		now := time.Now()
		ticket.ClosedAt = &now
	}

	if err := s.tickets.Update(ctx, ticket, &staff.ID); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketStatusChanged,
		RecordID: ticket.ID,
		StaffID:  &staff.ID,
		Payload: events.TicketStatusChangedPayload{
			Folio:     ticket.Folio,
			OldStatus: oldStatus,
			NewStatus: newStatus,
			Comment:   comment,
		},
	})
	return ticket, nil
}

// AssignTicket routes a ticket to a technician in its zone.
func (s *TicketService) AssignTicket(ctx context.Context, staff *domain.StaffMember, ticketID, assigneeID string) (*domain.Ticket, error) {
	if staff == nil {
		return nil, apperrors.NewForbidden("staff required")
	}
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if ticket.Terminal() {
		return nil, apperrors.NewConflict("no se puede asignar un ticket cerrado", nil)
	}
	assignee, err := s.staff.GetByID(ctx, assigneeID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if !assignee.Active {
		return nil, apperrors.NewValidationError("el técnico no está activo", nil)
	}
	if assignee.Zone != nil && *assignee.Zone != ticket.Zone {
		return nil, apperrors.NewValidationError("el técnico no atiende esa zona", map[string]any{
			"ticket_zone": ticket.Zone,
			"staff_zone":  *assignee.Zone,
		})
	}

	ticket.AssignedTo = &assignee.ID
	if err := s.tickets.Update(ctx, ticket, &staff.ID); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketAssigned,
		RecordID: ticket.ID,
		StaffID:  &staff.ID,
		Payload: events.TicketAssignedPayload{
			Folio:           ticket.Folio,
			AssigneeStaffID: ticket.AssignedTo,
		},
	})
	return ticket, nil
}

// UpdatePriority changes ticket priority.
func (s *TicketService) UpdatePriority(ctx context.Context, staff *domain.StaffMember, ticketID string, newPriority domain.TicketPriority) (*domain.Ticket, error) {
	if staff == nil {
		return nil, apperrors.NewForbidden("staff required")
	}
	switch newPriority {
	case domain.TicketPriorityLow, domain.TicketPriorityMedium, domain.TicketPriorityHigh, domain.TicketPriorityUrgent:
	default:
		return nil, apperrors.NewValidationError("prioridad inválida", map[string]any{"priority": newPriority})
	}
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if ticket.Terminal() {
		return nil, apperrors.NewConflict("no se puede cambiar la prioridad de un ticket cerrado", nil)
	}

	oldPriority := ticket.Priority
	ticket.Priority = newPriority
	if err := s.tickets.Update(ctx, ticket, &staff.ID); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketPriorityChanged,
		RecordID: ticket.ID,
		StaffID:  &staff.ID,
		Payload: events.TicketPriorityChangedPayload{
			Folio:       ticket.Folio,
			OldPriority: oldPriority,
			NewPriority: newPriority,
		},
	})
	return ticket, nil
}

func generateFolio() string {
	return "ISP-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}

func (s *TicketService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
