package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/redesmx/isp-backoffice/internal/domain"
	"github.com/redesmx/isp-backoffice/internal/events"
	"github.com/redesmx/isp-backoffice/internal/lifecycle"
	"github.com/redesmx/isp-backoffice/internal/repository"
	apperrors "github.com/redesmx/isp-backoffice/pkg/util/errorutil"
)

// WorkOrderService coordinates field task workflows.
type WorkOrderService struct {
	orders     repository.WorkOrderRepository
	contracts  repository.ContractRepository
	staff      repository.StaffRepository
	dispatcher events.Dispatcher
	now        func() time.Time
}

// WorkOrderDependencies bundles collaborators for work order service.
type WorkOrderDependencies struct {
	OrderRepo    repository.WorkOrderRepository
	ContractRepo repository.ContractRepository
	StaffRepo    repository.StaffRepository
	Dispatcher   events.Dispatcher
	Clock        func() time.Time
}

// WorkOrderCreateInput describes a new field task.
type WorkOrderCreateInput struct {
	ContractID    string
	Type          domain.WorkOrderType
	Notes         string
	ScheduledDate *time.Time
}

// NewWorkOrderService constructs the service.
func NewWorkOrderService(deps WorkOrderDependencies) *WorkOrderService {
	now := deps.Clock
	if now == nil {
		now = time.Now
	}
	return &WorkOrderService{
		orders:     deps.OrderRepo,
		contracts:  deps.ContractRepo,
		staff:      deps.StaffRepo,
		dispatcher: deps.Dispatcher,
		now:        now,
	}
}

// CreateWorkOrder opens a pending field task against a contract.
func (s *WorkOrderService) CreateWorkOrder(ctx context.Context, staff *domain.StaffMember, input WorkOrderCreateInput) (*domain.WorkOrder, error) {
	if staff == nil {
		return nil, apperrors.NewForbidden("staff required")
	}
	switch input.Type {
	case domain.WorkOrderTypeInstallation, domain.WorkOrderTypeMaintenance, domain.WorkOrderTypeRepair,
		domain.WorkOrderTypeReconnection, domain.WorkOrderTypeDisconnection:
	default:
		return nil, apperrors.NewValidationError("tipo de orden inválido", map[string]any{"type": input.Type})
	}
	contract, err := s.contracts.GetByID(ctx, input.ContractID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if contract.Status == domain.ContractStatusCancelled {
		return nil, apperrors.NewConflict("el contrato está cancelado", nil)
	}

	order := &domain.WorkOrder{
		ContractID:    contract.ID,
		Type:          input.Type,
		Status:        domain.WorkOrderStatusPending,
		Notes:         input.Notes,
		ScheduledDate: input.ScheduledDate,
	}
	if err := s.orders.Create(ctx, order, &staff.ID); err != nil {
		return nil, apperrors.MapError(err)
	}
	return order, nil
}

// GetWorkOrder fetches a work order by id.
func (s *WorkOrderService) GetWorkOrder(ctx context.Context, orderID string) (*domain.WorkOrder, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return order, nil
}

// ListWorkOrders returns work orders matching filters.
func (s *WorkOrderService) ListWorkOrders(ctx context.Context, filter repository.WorkOrderFilter) ([]domain.WorkOrder, error) {
	orders, err := s.orders.ListWithFilter(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return orders, nil
}

// AssignWorkOrder hands a pending order to a technician.
func (s *WorkOrderService) AssignWorkOrder(ctx context.Context, staff *domain.StaffMember, orderID, technicianID string) (*domain.WorkOrder, error) {
	if staff == nil {
		return nil, apperrors.NewForbidden("staff required")
	}
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	technician, err := s.staff.GetByID(ctx, technicianID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if technician.Role != domain.StaffRoleTechnician {
		return nil, apperrors.NewValidationError("solo técnicos pueden recibir órdenes de trabajo", map[string]any{"role": technician.Role})
	}
	if !technician.Active {
		return nil, apperrors.NewValidationError("el técnico no está activo", nil)
	}
	if err := lifecycle.ValidateWorkOrderTransition(order, domain.WorkOrderStatusAssigned); err != nil {
		return nil, mapLifecycleError(err)
	}

	order.Status = domain.WorkOrderStatusAssigned
	order.AssignedTo = &technician.ID
	if err := s.orders.Update(ctx, order, &staff.ID); err != nil {
		return nil, apperrors.MapError(err)
	}
	return order, nil
}

// StartWorkOrder marks an assigned order as in progress.
func (s *WorkOrderService) StartWorkOrder(ctx context.Context, staff *domain.StaffMember, orderID string) (*domain.WorkOrder, error) {
	return s.transition(ctx, staff, orderID, domain.WorkOrderStatusInProgress)
}

// CompleteWorkOrder closes an in-progress order, stamping the completion date.
func (s *WorkOrderService) CompleteWorkOrder(ctx context.Context, staff *domain.StaffMember, orderID, notes string) (*domain.WorkOrder, error) {
	if staff == nil {
		return nil, apperrors.NewForbidden("staff required")
	}
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if err := lifecycle.ValidateWorkOrderTransition(order, domain.WorkOrderStatusCompleted); err != nil {
		return nil, mapLifecycleError(err)
	}

	now := s.now()
	order.Status = domain.WorkOrderStatusCompleted
	order.CompletedDate = &now
	if notes != "" {
		order.Notes = notes
	}
	if err := s.orders.Update(ctx, order, &staff.ID); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventWorkOrderCompleted,
		RecordID: order.ID,
		StaffID:  &staff.ID,
		Payload: events.WorkOrderCompletedPayload{
			ContractID: order.ContractID,
			OrderType:  order.Type,
		},
	})
	return order, nil
}

// CancelWorkOrder voids a not-yet-completed order.
func (s *WorkOrderService) CancelWorkOrder(ctx context.Context, staff *domain.StaffMember, orderID string) (*domain.WorkOrder, error) {
	return s.transition(ctx, staff, orderID, domain.WorkOrderStatusCancelled)
}

func (s *WorkOrderService) transition(ctx context.Context, staff *domain.StaffMember, orderID string, newStatus domain.WorkOrderStatus) (*domain.WorkOrder, error) {
	if staff == nil {
		return nil, apperrors.NewForbidden("staff required")
	}
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if err := lifecycle.ValidateWorkOrderTransition(order, newStatus); err != nil {
		return nil, mapLifecycleError(err)
	}
	order.Status = newStatus
	if newStatus != domain.WorkOrderStatusCompleted {
		order.CompletedDate = nil
	}
	if err := s.orders.Update(ctx, order, &staff.ID); err != nil {
		return nil, apperrors.MapError(err)
	}
	return order, nil
}

func (s *WorkOrderService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = s.now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
