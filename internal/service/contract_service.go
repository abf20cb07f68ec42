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

// ContractService coordinates the service contract lifecycle.
type ContractService struct {
	contracts  repository.ContractRepository
	customers  repository.CustomerRepository
	packages   repository.PackageRepository
	orders     repository.WorkOrderRepository
	dispatcher events.Dispatcher
	now        func() time.Time
}

// ContractDependencies bundles collaborators for contract service.
type ContractDependencies struct {
	ContractRepo repository.ContractRepository
	CustomerRepo repository.CustomerRepository
	PackageRepo  repository.PackageRepository
	OrderRepo    repository.WorkOrderRepository
	Dispatcher   events.Dispatcher
	Clock        func() time.Time
}

// ContractCreateInput describes a new contract request.
type ContractCreateInput struct {
	CustomerID    string
	PackageID     string
	PaymentDay    int
	ScheduledDate *time.Time
}

// NewContractService constructs the service.
func NewContractService(deps ContractDependencies) *ContractService {
	now := deps.Clock
	if now == nil {
		now = time.Now
	}
	return &ContractService{
		contracts:  deps.ContractRepo,
		customers:  deps.CustomerRepo,
		packages:   deps.PackageRepo,
		orders:     deps.OrderRepo,
		dispatcher: deps.Dispatcher,
		now:        now,
	}
}

// CreateContract opens a contract in pending_installation and schedules the
// installation work order alongside it.
func (s *ContractService) CreateContract(ctx context.Context, staff *domain.StaffMember, input ContractCreateInput) (*domain.ServiceContract, *domain.WorkOrder, error) {
	if staff == nil {
		return nil, nil, apperrors.NewForbidden("staff required")
	}
	if input.PaymentDay < 1 || input.PaymentDay > 31 {
		return nil, nil, apperrors.NewValidationError("el día de pago debe estar entre 1 y 31", map[string]any{"payment_day": input.PaymentDay})
	}
	customer, err := s.customers.GetByID(ctx, input.CustomerID)
	if err != nil {
		return nil, nil, apperrors.MapError(err)
	}
	pkg, err := s.packages.GetByID(ctx, input.PackageID)
	if err != nil {
		return nil, nil, apperrors.MapError(err)
	}
	if !pkg.IsActive {
		return nil, nil, apperrors.NewValidationError("el paquete no está disponible", map[string]any{"package_id": pkg.ID})
	}

	contract := &domain.ServiceContract{
		CustomerID: customer.ID,
		PackageID:  pkg.ID,
		Status:     domain.ContractStatusPendingInstallation,
		MonthlyFee: pkg.MonthlyFee,
		PaymentDay: input.PaymentDay,
	}
	if err := s.contracts.Create(ctx, contract, &staff.ID); err != nil {
		return nil, nil, apperrors.MapError(err)
	}

	order := &domain.WorkOrder{
		ContractID:    contract.ID,
		Type:          domain.WorkOrderTypeInstallation,
		Status:        domain.WorkOrderStatusPending,
		ScheduledDate: input.ScheduledDate,
	}
	if err := s.orders.Create(ctx, order, &staff.ID); err != nil {
		return nil, nil, apperrors.MapError(err)
	}
	return contract, order, nil
}

// GetContract fetches a contract by id.
func (s *ContractService) GetContract(ctx context.Context, contractID string) (*domain.ServiceContract, error) {
	contract, err := s.contracts.GetByID(ctx, contractID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return contract, nil
}

// ListContracts returns contracts matching filters.
func (s *ContractService) ListContracts(ctx context.Context, customerID *string, statuses []domain.ContractStatus, limit, offset int) ([]domain.ServiceContract, error) {
	contracts, err := s.contracts.ListWithFilter(ctx, repository.ContractFilter{
		CustomerID: customerID,
		Statuses:   statuses,
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return contracts, nil
}

// ActivateContract moves a pending contract to active once its installation
// order is completed, setting the first billing date.
func (s *ContractService) ActivateContract(ctx context.Context, staff *domain.StaffMember, contractID string) (*domain.ServiceContract, error) {
	if staff == nil {
		return nil, apperrors.NewForbidden("staff required")
	}
	contract, err := s.contracts.GetByID(ctx, contractID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	orders, err := s.orders.ListByContract(ctx, contract.ID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if err := lifecycle.ValidateContractActivation(contract, orders); err != nil {
		return nil, mapLifecycleError(err)
	}

	now := s.now()
	next := lifecycle.NextPaymentDate(contract.PaymentDay, now)
	contract.Status = domain.ContractStatusActive
	contract.NextPaymentDate = &next
	contract.InstalledAt = &now
	if err := s.contracts.Update(ctx, contract, &staff.ID); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventContractActivated,
		RecordID: contract.ID,
		StaffID:  &staff.ID,
		Payload: events.ContractActivatedPayload{
			CustomerID:      contract.CustomerID,
			NextPaymentDate: next,
		},
	})
	return contract, nil
}

// SuspendContract pauses an active contract, usually for non-payment.
func (s *ContractService) SuspendContract(ctx context.Context, staff *domain.StaffMember, contractID, reason string) (*domain.ServiceContract, error) {
	contract, err := s.transition(ctx, staff, contractID, domain.ContractStatusSuspended)
	if err != nil {
		return nil, err
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventContractSuspended,
		RecordID: contract.ID,
		StaffID:  &staff.ID,
		Payload: events.ContractSuspendedPayload{
			CustomerID: contract.CustomerID,
			Reason:     reason,
		},
	})
	return contract, nil
}

// ReactivateContract restores a suspended contract, typically after a
// reconnection payment clears.
func (s *ContractService) ReactivateContract(ctx context.Context, staff *domain.StaffMember, contractID string) (*domain.ServiceContract, error) {
	if staff == nil {
		return nil, apperrors.NewForbidden("staff required")
	}
	contract, err := s.contracts.GetByID(ctx, contractID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if contract.Status != domain.ContractStatusSuspended {
		return nil, apperrors.NewConflict("solo contratos suspendidos pueden reactivarse", map[string]any{"status": contract.Status})
	}
	if err := lifecycle.ValidateContractTransition(contract, domain.ContractStatusActive); err != nil {
		return nil, mapLifecycleError(err)
	}

	next := lifecycle.NextPaymentDate(contract.PaymentDay, s.now())
	contract.Status = domain.ContractStatusActive
	contract.NextPaymentDate = &next
	if err := s.contracts.Update(ctx, contract, &staff.ID); err != nil {
		return nil, apperrors.MapError(err)
	}
	return contract, nil
}

// CancelContract terminates a contract permanently.
func (s *ContractService) CancelContract(ctx context.Context, staff *domain.StaffMember, contractID string) (*domain.ServiceContract, error) {
	return s.transition(ctx, staff, contractID, domain.ContractStatusCancelled)
}

func (s *ContractService) transition(ctx context.Context, staff *domain.StaffMember, contractID string, newStatus domain.ContractStatus) (*domain.ServiceContract, error) {
	if staff == nil {
		return nil, apperrors.NewForbidden("staff required")
	}
	contract, err := s.contracts.GetByID(ctx, contractID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if err := lifecycle.ValidateContractTransition(contract, newStatus); err != nil {
		return nil, mapLifecycleError(err)
	}
	contract.Status = newStatus
	if err := s.contracts.Update(ctx, contract, &staff.ID); err != nil {
		return nil, apperrors.MapError(err)
	}
	return contract, nil
}

func (s *ContractService) publishEvent(ctx context.Context, event events.Event) {
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
