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

// PaymentService coordinates payment capture and approval.
type PaymentService struct {
	payments   repository.PaymentRepository
	contracts  repository.ContractRepository
	dispatcher events.Dispatcher
	now        func() time.Time
}

// PaymentDependencies bundles collaborators for payment service.
type PaymentDependencies struct {
	PaymentRepo  repository.PaymentRepository
	ContractRepo repository.ContractRepository
	Dispatcher   events.Dispatcher
	Clock        func() time.Time
}

// PaymentCreateInput describes a payment being recorded.
type PaymentCreateInput struct {
	ContractID  string
	Amount      float64
	Method      domain.PaymentMethod
	Type        domain.PaymentType
	PeriodStart *time.Time
	PeriodEnd   *time.Time
	Reference   string
}

// PaymentStatusSummary is the urgency view for a contract's billing state.
type PaymentStatusSummary struct {
	ContractID      string
	NextPaymentDate *time.Time
	DaysUntilDue    int
	Tier            lifecycle.UrgencyTier
	Message         string
}

// NewPaymentService constructs the service.
func NewPaymentService(deps PaymentDependencies) *PaymentService {
	now := deps.Clock
	if now == nil {
		now = time.Now
	}
	return &PaymentService{
		payments:   deps.PaymentRepo,
		contracts:  deps.ContractRepo,
		dispatcher: deps.Dispatcher,
		now:        now,
	}
}

// RecordPayment captures a pending payment against a contract.
func (s *PaymentService) RecordPayment(ctx context.Context, staff *domain.StaffMember, input PaymentCreateInput) (*domain.Payment, error) {
	if staff == nil {
		return nil, apperrors.NewForbidden("staff required")
	}
	if input.Amount <= 0 {
		return nil, apperrors.NewValidationError("el monto debe ser mayor a cero", map[string]any{"amount": input.Amount})
	}
	switch input.Method {
	case domain.PaymentMethodCash, domain.PaymentMethodTransfer, domain.PaymentMethodCard, domain.PaymentMethodDeposit:
	default:
		return nil, apperrors.NewValidationError("método de pago inválido", map[string]any{"method": input.Method})
	}
	contract, err := s.contracts.GetByID(ctx, input.ContractID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if contract.Status == domain.ContractStatusCancelled {
		return nil, apperrors.NewConflict("no se pueden registrar pagos en un contrato cancelado", nil)
	}

	payment := &domain.Payment{
		ContractID:  contract.ID,
		Amount:      input.Amount,
		Method:      input.Method,
		Type:        input.Type,
		Status:      domain.PaymentStatusPending,
		PeriodStart: input.PeriodStart,
		PeriodEnd:   input.PeriodEnd,
		Reference:   strings.TrimSpace(input.Reference),
		RecordedBy:  &staff.ID,
	}
	if payment.Type == "" {
		payment.Type = domain.PaymentTypeMonthly
	}
	if err := s.payments.Create(ctx, payment, &staff.ID); err != nil {
		return nil, apperrors.MapError(err)
	}
	return payment, nil
}

// GetPayment fetches a payment by id.
func (s *PaymentService) GetPayment(ctx context.Context, paymentID string) (*domain.Payment, error) {
	payment, err := s.payments.GetByID(ctx, paymentID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return payment, nil
}

// ListPayments returns payments matching filters.
func (s *PaymentService) ListPayments(ctx context.Context, contractID *string, statuses []domain.PaymentStatus, limit, offset int) ([]domain.Payment, error) {
	payments, err := s.payments.ListWithFilter(ctx, repository.PaymentFilter{
		ContractID: contractID,
		Statuses:   statuses,
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return payments, nil
}

// ApprovePayment confirms a pending payment. Approving a monthly payment
// advances the contract's next payment date.
func (s *PaymentService) ApprovePayment(ctx context.Context, staff *domain.StaffMember, paymentID string) (*domain.Payment, error) {
	if staff == nil {
		return nil, apperrors.NewForbidden("staff required")
	}
	payment, err := s.payments.GetByID(ctx, paymentID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	contract, err := s.contracts.GetByID(ctx, payment.ContractID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	next, err := lifecycle.ValidatePaymentApproval(payment, contract, s.now())
	if err != nil {
		return nil, mapLifecycleError(err)
	}

	payment.Status = domain.PaymentStatusApproved
	if err := s.payments.Update(ctx, payment, &staff.ID); err != nil {
		return nil, apperrors.MapError(err)
	}

	if payment.Type == domain.PaymentTypeMonthly && contract.Status == domain.ContractStatusActive {
		contract.NextPaymentDate = &next
		if err := s.contracts.Update(ctx, contract, &staff.ID); err != nil {
			return nil, apperrors.MapError(err)
		}
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventPaymentApproved,
		RecordID: payment.ID,
		StaffID:  &staff.ID,
		Payload: events.PaymentApprovedPayload{
			ContractID:      contract.ID,
			Amount:          payment.Amount,
			NextPaymentDate: next,
		},
	})
	return payment, nil
}

// RejectPayment marks a pending payment as rejected.
func (s *PaymentService) RejectPayment(ctx context.Context, staff *domain.StaffMember, paymentID, reason string) (*domain.Payment, error) {
	payment, err := s.closePayment(ctx, staff, paymentID, domain.PaymentStatusRejected)
	if err != nil {
		return nil, err
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventPaymentRejected,
		RecordID: payment.ID,
		StaffID:  &staff.ID,
		Payload: events.PaymentRejectedPayload{
			ContractID: payment.ContractID,
			Amount:     payment.Amount,
			Reason:     reason,
		},
	})
	return payment, nil
}

// CancelPayment voids a pending payment, e.g. when recorded by mistake.
func (s *PaymentService) CancelPayment(ctx context.Context, staff *domain.StaffMember, paymentID string) (*domain.Payment, error) {
	return s.closePayment(ctx, staff, paymentID, domain.PaymentStatusCancelled)
}

func (s *PaymentService) closePayment(ctx context.Context, staff *domain.StaffMember, paymentID string, newStatus domain.PaymentStatus) (*domain.Payment, error) {
	if staff == nil {
		return nil, apperrors.NewForbidden("staff required")
	}
	payment, err := s.payments.GetByID(ctx, paymentID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if payment.Status != domain.PaymentStatusPending {
		return nil, apperrors.NewConflict("solo pagos pendientes pueden modificarse", map[string]any{"status": payment.Status})
	}
	payment.Status = newStatus
	if err := s.payments.Update(ctx, payment, &staff.ID); err != nil {
		return nil, apperrors.MapError(err)
	}
	return payment, nil
}

// PaymentStatusForContract computes the urgency summary shown next to a
// contract in the back office.
func (s *PaymentService) PaymentStatusForContract(ctx context.Context, contractID string) (*PaymentStatusSummary, error) {
	contract, err := s.contracts.GetByID(ctx, contractID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	summary := &PaymentStatusSummary{
		ContractID:      contract.ID,
		NextPaymentDate: contract.NextPaymentDate,
	}
	if contract.NextPaymentDate == nil {
		summary.Tier = lifecycle.UrgencyGood
		summary.Message = "Sin fecha de pago programada"
		return summary, nil
	}
	days := daysUntil(*contract.NextPaymentDate, s.now())
	urgency := lifecycle.ComputePaymentUrgency(days)
	summary.DaysUntilDue = days
	summary.Tier = urgency.Tier
	summary.Message = urgency.Message
	return summary, nil
}

// daysUntil counts whole calendar days from now to due, ignoring time of day.
func daysUntil(due, now time.Time) int {
	dueDay := time.Date(due.Year(), due.Month(), due.Day(), 0, 0, 0, 0, time.UTC)
	nowDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return int(dueDay.Sub(nowDay).Hours() / 24)
}

func (s *PaymentService) publishEvent(ctx context.Context, event events.Event) {
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
