package domain

import "time"

// WorkOrderStatus enumerates field task lifecycle states.
type WorkOrderStatus string

const (
	WorkOrderStatusPending    WorkOrderStatus = "pending"
	WorkOrderStatusAssigned   WorkOrderStatus = "assigned"
	WorkOrderStatusInProgress WorkOrderStatus = "in_progress"
	WorkOrderStatusCompleted  WorkOrderStatus = "completed"
	WorkOrderStatusCancelled  WorkOrderStatus = "cancelled"
)

// WorkOrderType enumerates kinds of field work.
type WorkOrderType string

const (
	WorkOrderTypeInstallation  WorkOrderType = "installation"
	WorkOrderTypeMaintenance   WorkOrderType = "maintenance"
	WorkOrderTypeRepair        WorkOrderType = "repair"
	WorkOrderTypeReconnection  WorkOrderType = "reconnection"
	WorkOrderTypeDisconnection WorkOrderType = "disconnection"
)

// WorkOrder is a scheduled field task tied to a contract. CompletedDate is
// set if and only if the order is completed.
type WorkOrder struct {
	ID            string
	ContractID    string
	Type          WorkOrderType
	Status        WorkOrderStatus
	Notes         string
	AssignedTo    *string
	ScheduledDate *time.Time
	CompletedDate *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
