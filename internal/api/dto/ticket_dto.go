package dto

import (
	"time"

	"github.com/redesmx/isp-backoffice/internal/domain"
)

// CreateTicketRequest is the public submission payload.
type CreateTicketRequest struct {
	Type         domain.TicketType     `json:"type"`
	CustomerName string                `json:"customer_name"`
	Phone        string                `json:"phone"`
	Email        string                `json:"email"`
	Address      string                `json:"address"`
	Zone         string                `json:"zone"`
	Description  string                `json:"description"`
	Priority     domain.TicketPriority `json:"priority"`
}

// UpdateTicketStatusRequest advances a ticket along its progression.
type UpdateTicketStatusRequest struct {
	Status  domain.TicketStatus `json:"status"`
	Comment string              `json:"comment"`
}

// UpdateTicketPriorityRequest changes ticket priority.
type UpdateTicketPriorityRequest struct {
	Priority domain.TicketPriority `json:"priority"`
}

// AssignTicketRequest routes the ticket to a technician.
type AssignTicketRequest struct {
	StaffID string `json:"staff_id"`
}

// TicketSummary is the list-view projection.
type TicketSummary struct {
	ID         string                `json:"id"`
	Folio      string                `json:"folio"`
	Type       domain.TicketType     `json:"type"`
	Zone       string                `json:"zone"`
	Status     domain.TicketStatus   `json:"status"`
	Priority   domain.TicketPriority `json:"priority"`
	AssignedTo *string               `json:"assigned_to,omitempty"`
	CreatedAt  time.Time             `json:"created_at"`
	UpdatedAt  time.Time             `json:"updated_at"`
}

// TicketDetailResponse is the full back-office view.
type TicketDetailResponse struct {
	ID           string                `json:"id"`
	Folio        string                `json:"folio"`
	Type         domain.TicketType     `json:"type"`
	CustomerName string                `json:"customer_name"`
	Phone        string                `json:"phone"`
	Email        string                `json:"email,omitempty"`
	Address      string                `json:"address,omitempty"`
	Zone         string                `json:"zone"`
	Description  string                `json:"description,omitempty"`
	Status       domain.TicketStatus   `json:"status"`
	Priority     domain.TicketPriority `json:"priority"`
	AssignedTo   *string               `json:"assigned_to,omitempty"`
	CreatedAt    time.Time             `json:"created_at"`
	UpdatedAt    time.Time             `json:"updated_at"`
	ClosedAt     *time.Time            `json:"closed_at,omitempty"`
}

// TicketTrackingResponse is the anonymous tracking view. It omits contact
// details so a folio alone does not leak customer data.
type TicketTrackingResponse struct {
	Folio     string              `json:"folio"`
	Type      domain.TicketType   `json:"type"`
	Status    domain.TicketStatus `json:"status"`
	Zone      string              `json:"zone"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
	ClosedAt  *time.Time          `json:"closed_at,omitempty"`
}
