package domain

import "time"

// ContractStatus enumerates service contract lifecycle states.
type ContractStatus string

const (
	ContractStatusPendingInstallation ContractStatus = "pending_installation"
	ContractStatusActive              ContractStatus = "active"
	ContractStatusSuspended           ContractStatus = "suspended"
	ContractStatusCancelled           ContractStatus = "cancelled"
)

// ServiceContract links a customer to a service package and owns the billing
// fields. NextPaymentDate is only meaningful while the contract is active.
type ServiceContract struct {
	ID              string
	CustomerID      string
	PackageID       string
	Status          ContractStatus
	MonthlyFee      float64
	PaymentDay      int
	NextPaymentDate *time.Time
	InstalledAt     *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
