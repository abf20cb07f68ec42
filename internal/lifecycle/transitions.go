package lifecycle

import (
	"github.com/redesmx/isp-backoffice/internal/domain"
)

// Ordered progressions per ticket type. Cancellation is handled separately:
// it is reachable from any non-terminal state.
var contractTicketFlow = map[domain.TicketStatus]domain.TicketStatus{
	domain.TicketStatusNew:        domain.TicketStatusValidation,
	domain.TicketStatusValidation: domain.TicketStatusContacted,
	domain.TicketStatusContacted:  domain.TicketStatusScheduled,
	domain.TicketStatusScheduled:  domain.TicketStatusInstalled,
}

var faultTicketFlow = map[domain.TicketStatus]domain.TicketStatus{
	domain.TicketStatusNew:        domain.TicketStatusDiagnosis,
	domain.TicketStatusDiagnosis:  domain.TicketStatusScheduled,
	domain.TicketStatusScheduled:  domain.TicketStatusInProgress,
	domain.TicketStatusInProgress: domain.TicketStatusResolved,
}

var contractTicketTerminal = map[domain.TicketStatus]bool{
	domain.TicketStatusInstalled: true,
	domain.TicketStatusCancelled: true,
}

var faultTicketTerminal = map[domain.TicketStatus]bool{
	domain.TicketStatusResolved:  true,
	domain.TicketStatusCancelled: true,
}

func ticketStatusKnown(ticketType domain.TicketType, status domain.TicketStatus) bool {
	if status == domain.TicketStatusCancelled {
		return true
	}
	switch ticketType {
	case domain.TicketTypeContract:
		if _, ok := contractTicketFlow[status]; ok {
			return true
		}
		return status == domain.TicketStatusInstalled
	case domain.TicketTypeFault:
		if _, ok := faultTicketFlow[status]; ok {
			return true
		}
		return status == domain.TicketStatusResolved
	}
	return false
}

// ValidateTicketTransition checks that newStatus is reachable from the
// ticket's current status: either the next step in the type's ordered
// progression, or CANCELLED while the ticket is non-terminal.
func ValidateTicketTransition(ticket *domain.Ticket, newStatus domain.TicketStatus) error {
	var flow map[domain.TicketStatus]domain.TicketStatus
	var terminal map[domain.TicketStatus]bool

	switch ticket.Type {
	case domain.TicketTypeContract:
		flow, terminal = contractTicketFlow, contractTicketTerminal
	case domain.TicketTypeFault:
		flow, terminal = faultTicketFlow, faultTicketTerminal
	default:
		return newUnknownStatus("unknown ticket type %q", ticket.Type)
	}

	if !ticketStatusKnown(ticket.Type, ticket.Status) {
		return newUnknownStatus("ticket %s has unknown status %q", ticket.Folio, ticket.Status)
	}
	if !ticketStatusKnown(ticket.Type, newStatus) {
		return newUnknownStatus("status %q is not valid for %s tickets", newStatus, ticket.Type)
	}

	if newStatus == domain.TicketStatusCancelled {
		if terminal[ticket.Status] {
			return newInvalidTransition("cannot cancel a ticket in terminal status %q", ticket.Status)
		}
		return nil
	}

	if flow[ticket.Status] != newStatus {
		return newInvalidTransition("cannot move %s ticket from %q to %q", ticket.Type, ticket.Status, newStatus)
	}
	return nil
}

var contractTransitions = map[domain.ContractStatus][]domain.ContractStatus{
	domain.ContractStatusPendingInstallation: {domain.ContractStatusActive, domain.ContractStatusCancelled},
	domain.ContractStatusActive:              {domain.ContractStatusSuspended, domain.ContractStatusCancelled},
	domain.ContractStatusSuspended:           {domain.ContractStatusActive, domain.ContractStatusCancelled},
	domain.ContractStatusCancelled:           {},
}

// ValidateContractTransition checks an administrative contract status change
// (suspension, reconnection, cancellation). Activation has its own stricter
// check in ValidateContractActivation.
func ValidateContractTransition(contract *domain.ServiceContract, newStatus domain.ContractStatus) error {
	allowed, ok := contractTransitions[contract.Status]
	if !ok {
		return newUnknownStatus("contract has unknown status %q", contract.Status)
	}
	if _, known := contractTransitions[newStatus]; !known {
		return newUnknownStatus("unknown contract status %q", newStatus)
	}
	for _, candidate := range allowed {
		if candidate == newStatus {
			return nil
		}
	}
	return newInvalidTransition("cannot move contract from %q to %q", contract.Status, newStatus)
}

// ValidateContractActivation checks that the contract is awaiting installation
// and that a completed installation work order exists among orders.
func ValidateContractActivation(contract *domain.ServiceContract, orders []domain.WorkOrder) error {
	if contract.Status != domain.ContractStatusPendingInstallation {
		return newPreconditionFailed("contract is %q, expected %q", contract.Status, domain.ContractStatusPendingInstallation)
	}
	for _, order := range orders {
		if order.ContractID != contract.ID {
			continue
		}
		if order.Type == domain.WorkOrderTypeInstallation && order.Status == domain.WorkOrderStatusCompleted {
			return nil
		}
	}
	return newPreconditionFailed("no completed installation work order for contract")
}

var workOrderTransitions = map[domain.WorkOrderStatus][]domain.WorkOrderStatus{
	domain.WorkOrderStatusPending:    {domain.WorkOrderStatusAssigned, domain.WorkOrderStatusCancelled},
	domain.WorkOrderStatusAssigned:   {domain.WorkOrderStatusInProgress, domain.WorkOrderStatusCancelled},
	domain.WorkOrderStatusInProgress: {domain.WorkOrderStatusCompleted, domain.WorkOrderStatusCancelled},
	domain.WorkOrderStatusCompleted:  {},
	domain.WorkOrderStatusCancelled:  {},
}

// ValidateWorkOrderTransition checks a proposed work order status change.
func ValidateWorkOrderTransition(order *domain.WorkOrder, newStatus domain.WorkOrderStatus) error {
	allowed, ok := workOrderTransitions[order.Status]
	if !ok {
		return newUnknownStatus("work order has unknown status %q", order.Status)
	}
	if _, known := workOrderTransitions[newStatus]; !known {
		return newUnknownStatus("unknown work order status %q", newStatus)
	}
	for _, candidate := range allowed {
		if candidate == newStatus {
			return nil
		}
	}
	return newInvalidTransition("cannot move work order from %q to %q", order.Status, newStatus)
}
