package events

import (
	"time"

	"github.com/redesmx/isp-backoffice/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated         EventType = "ticket_created"
	EventTicketStatusChanged   EventType = "ticket_status_changed"
	EventTicketPriorityChanged EventType = "ticket_priority_changed"
	EventTicketAssigned        EventType = "ticket_assigned"
	EventContractActivated     EventType = "contract_activated"
	EventContractSuspended     EventType = "contract_suspended"
	EventPaymentApproved       EventType = "payment_approved"
	EventPaymentRejected       EventType = "payment_rejected"
	EventWorkOrderCompleted    EventType = "work_order_completed"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	RecordID  string      `json:"record_id"`
	StaffID   *string     `json:"staff_id,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	Folio        string                `json:"folio"`
	Type         domain.TicketType     `json:"type"`
	Priority     domain.TicketPriority `json:"priority"`
	Zone         string                `json:"zone"`
	ContactName  string                `json:"contact_name"`
	ContactPhone string                `json:"contact_phone"`
}

// TicketStatusChangedPayload payload.
type TicketStatusChangedPayload struct {
	Folio     string              `json:"folio"`
	OldStatus domain.TicketStatus `json:"old_status"`
	NewStatus domain.TicketStatus `json:"new_status"`
	Comment   string              `json:"comment,omitempty"`
}

// TicketPriorityChangedPayload payload.
type TicketPriorityChangedPayload struct {
	Folio       string                `json:"folio"`
	OldPriority domain.TicketPriority `json:"old_priority"`
	NewPriority domain.TicketPriority `json:"new_priority"`
}

// TicketAssignedPayload payload.
type TicketAssignedPayload struct {
	Folio           string  `json:"folio"`
	AssigneeStaffID *string `json:"assignee_staff_id,omitempty"`
}

// ContractActivatedPayload payload.
type ContractActivatedPayload struct {
	CustomerID      string    `json:"customer_id"`
	NextPaymentDate time.Time `json:"next_payment_date"`
}

// ContractSuspendedPayload payload.
type ContractSuspendedPayload struct {
	CustomerID string `json:"customer_id"`
	Reason     string `json:"reason,omitempty"`
}

// PaymentApprovedPayload payload.
type PaymentApprovedPayload struct {
	ContractID      string    `json:"contract_id"`
	Amount          float64   `json:"amount"`
	NextPaymentDate time.Time `json:"next_payment_date"`
}

// PaymentRejectedPayload payload.
type PaymentRejectedPayload struct {
	ContractID string `json:"contract_id"`
	Amount     float64 `json:"amount"`
	Reason     string  `json:"reason,omitempty"`
}

// WorkOrderCompletedPayload payload.
type WorkOrderCompletedPayload struct {
	ContractID string               `json:"contract_id"`
	OrderType  domain.WorkOrderType `json:"order_type"`
}
