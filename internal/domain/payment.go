package domain

import "time"

// PaymentStatus enumerates payment lifecycle states.
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusApproved  PaymentStatus = "approved"
	PaymentStatusRejected  PaymentStatus = "rejected"
	PaymentStatusCancelled PaymentStatus = "cancelled"
)

// PaymentMethod enumerates how a payment was made.
type PaymentMethod string

const (
	PaymentMethodCash     PaymentMethod = "cash"
	PaymentMethodTransfer PaymentMethod = "transfer"
	PaymentMethodCard     PaymentMethod = "card"
	PaymentMethodDeposit  PaymentMethod = "deposit"
)

// PaymentType enumerates what a payment covers.
type PaymentType string

const (
	PaymentTypeMonthly      PaymentType = "monthly"
	PaymentTypeInstallation PaymentType = "installation"
	PaymentTypeReconnection PaymentType = "reconnection"
	PaymentTypeOther        PaymentType = "other"
)

// Payment belongs to exactly one service contract. Only approved payments may
// advance the contract's next payment date.
type Payment struct {
	ID          string
	ContractID  string
	Amount      float64
	Method      PaymentMethod
	Type        PaymentType
	Status      PaymentStatus
	PeriodStart *time.Time
	PeriodEnd   *time.Time
	Reference   string
	RecordedBy  *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
