package domain

import "time"

// TicketType distinguishes onboarding requests from fault reports.
type TicketType string

const (
	TicketTypeContract TicketType = "contract"
	TicketTypeFault    TicketType = "fault"
)

// TicketStatus enumerates lifecycle states for tickets. Which states are
// valid depends on the ticket type; the lifecycle package enforces that.
type TicketStatus string

const (
	// Shared states.
	TicketStatusNew       TicketStatus = "NEW"
	TicketStatusScheduled TicketStatus = "SCHEDULED"
	TicketStatusCancelled TicketStatus = "CANCELLED"

	// Contract-request progression.
	TicketStatusValidation TicketStatus = "VALIDATION"
	TicketStatusContacted  TicketStatus = "CONTACTED"
	TicketStatusInstalled  TicketStatus = "INSTALLED"

	// Fault-report progression.
	TicketStatusDiagnosis  TicketStatus = "DIAGNOSIS"
	TicketStatusInProgress TicketStatus = "IN_PROGRESS"
	TicketStatusResolved   TicketStatus = "RESOLVED"
)

// TicketPriority enumerates SLA urgency.
type TicketPriority string

const (
	TicketPriorityLow    TicketPriority = "LOW"
	TicketPriorityMedium TicketPriority = "MEDIUM"
	TicketPriorityHigh   TicketPriority = "HIGH"
	TicketPriorityUrgent TicketPriority = "URGENT"
)

// Ticket is the aggregate for contract requests and fault reports submitted
// through the public site. Folio is the customer-facing reference number.
type Ticket struct {
	ID           string
	Folio        string
	Type         TicketType
	CustomerName string
	Phone        string
	Email        string
	Address      string
	Zone         string
	Description  string
	Status       TicketStatus
	Priority     TicketPriority
	AssignedTo   *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	ClosedAt     *time.Time
}

// Terminal reports whether the ticket has reached an end state.
func (t *Ticket) Terminal() bool {
	switch t.Status {
	case TicketStatusInstalled, TicketStatusResolved, TicketStatusCancelled:
		return true
	}
	return false
}
