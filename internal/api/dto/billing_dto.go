package dto

import (
	"time"

	"github.com/redesmx/isp-backoffice/internal/domain"
	"github.com/redesmx/isp-backoffice/internal/lifecycle"
)

// CreateContractRequest payload.
type CreateContractRequest struct {
	CustomerID    string     `json:"customer_id"`
	PackageID     string     `json:"package_id"`
	PaymentDay    int        `json:"payment_day"`
	ScheduledDate *time.Time `json:"scheduled_date,omitempty"`
}

// SuspendContractRequest payload.
type SuspendContractRequest struct {
	Reason string `json:"reason"`
}

// ContractResponse projection.
type ContractResponse struct {
	ID              string                `json:"id"`
	CustomerID      string                `json:"customer_id"`
	PackageID       string                `json:"package_id"`
	Status          domain.ContractStatus `json:"status"`
	MonthlyFee      float64               `json:"monthly_fee"`
	PaymentDay      int                   `json:"payment_day"`
	NextPaymentDate *time.Time            `json:"next_payment_date,omitempty"`
	InstalledAt     *time.Time            `json:"installed_at,omitempty"`
	CreatedAt       time.Time             `json:"created_at"`
}

// CreatePaymentRequest payload.
type CreatePaymentRequest struct {
	ContractID  string               `json:"contract_id"`
	Amount      float64              `json:"amount"`
	Method      domain.PaymentMethod `json:"method"`
	Type        domain.PaymentType   `json:"type"`
	PeriodStart *time.Time           `json:"period_start,omitempty"`
	PeriodEnd   *time.Time           `json:"period_end,omitempty"`
	Reference   string               `json:"reference"`
}

// RejectPaymentRequest payload.
type RejectPaymentRequest struct {
	Reason string `json:"reason"`
}

// PaymentResponse projection.
type PaymentResponse struct {
	ID          string               `json:"id"`
	ContractID  string               `json:"contract_id"`
	Amount      float64              `json:"amount"`
	Method      domain.PaymentMethod `json:"method"`
	Type        domain.PaymentType   `json:"type"`
	Status      domain.PaymentStatus `json:"status"`
	PeriodStart *time.Time           `json:"period_start,omitempty"`
	PeriodEnd   *time.Time           `json:"period_end,omitempty"`
	Reference   string               `json:"reference,omitempty"`
	CreatedAt   time.Time            `json:"created_at"`
}

// PaymentStatusResponse is the urgency view for a contract.
type PaymentStatusResponse struct {
	ContractID      string                `json:"contract_id"`
	NextPaymentDate *time.Time            `json:"next_payment_date,omitempty"`
	DaysUntilDue    int                   `json:"days_until_due"`
	Tier            lifecycle.UrgencyTier `json:"tier"`
	Message         string                `json:"message"`
}

// CreateWorkOrderRequest payload.
type CreateWorkOrderRequest struct {
	ContractID    string               `json:"contract_id"`
	Type          domain.WorkOrderType `json:"type"`
	Notes         string               `json:"notes"`
	ScheduledDate *time.Time           `json:"scheduled_date,omitempty"`
}

// AssignWorkOrderRequest payload.
type AssignWorkOrderRequest struct {
	StaffID string `json:"staff_id"`
}

// CompleteWorkOrderRequest payload.
type CompleteWorkOrderRequest struct {
	Notes string `json:"notes"`
}

// WorkOrderResponse projection.
type WorkOrderResponse struct {
	ID            string                 `json:"id"`
	ContractID    string                 `json:"contract_id"`
	Type          domain.WorkOrderType   `json:"type"`
	Status        domain.WorkOrderStatus `json:"status"`
	Notes         string                 `json:"notes,omitempty"`
	AssignedTo    *string                `json:"assigned_to,omitempty"`
	ScheduledDate *time.Time             `json:"scheduled_date,omitempty"`
	CompletedDate *time.Time             `json:"completed_date,omitempty"`
	CreatedAt     time.Time              `json:"created_at"`
}

// AuditLogResponse projection.
type AuditLogResponse struct {
	ID          string             `json:"id"`
	TableName   string             `json:"table_name"`
	RecordID    string             `json:"record_id"`
	Action      domain.AuditAction `json:"action"`
	OldData     map[string]any     `json:"old_data,omitempty"`
	NewData     map[string]any     `json:"new_data,omitempty"`
	PerformedBy *string            `json:"performed_by,omitempty"`
	PerformedAt time.Time          `json:"performed_at"`
}
