package lifecycle

import (
	"fmt"
	"time"

	"github.com/redesmx/isp-backoffice/internal/domain"
)

// ValidatePaymentApproval checks that the payment is still pending and, on
// success, returns the contract's next payment date: the billing day in the
// month after now, clamped to the last day of shorter months.
func ValidatePaymentApproval(payment *domain.Payment, contract *domain.ServiceContract, now time.Time) (time.Time, error) {
	if payment.Status != domain.PaymentStatusPending {
		return time.Time{}, newPreconditionFailed("payment is %q, only pending payments can be approved", payment.Status)
	}
	if payment.ContractID != contract.ID {
		return time.Time{}, newPreconditionFailed("payment does not belong to contract")
	}
	if contract.PaymentDay < 1 || contract.PaymentDay > 31 {
		return time.Time{}, newPreconditionFailed("contract has invalid payment day %d", contract.PaymentDay)
	}
	return NextPaymentDate(contract.PaymentDay, now), nil
}

// NextPaymentDate returns the billing day in the calendar month following
// anchor. When the billing day exceeds the days in that month (e.g. day 31
// rolling into a 30-day month) it clamps to the month's last day.
func NextPaymentDate(paymentDay int, anchor time.Time) time.Time {
	year, month, _ := anchor.Date()
	// time.Date normalizes month overflow, so January handling is free.
	next := time.Date(year, month+1, 1, 0, 0, 0, 0, anchor.Location())
	day := paymentDay
	if last := daysInMonth(next.Year(), next.Month()); day > last {
		day = last
	}
	return time.Date(next.Year(), next.Month(), day, 0, 0, 0, 0, anchor.Location())
}

func daysInMonth(year int, month time.Month) int {
	// Day zero of the following month.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// UrgencyTier buckets how close a contract is to its payment due date.
type UrgencyTier string

const (
	UrgencyGood    UrgencyTier = "good"
	UrgencyWarning UrgencyTier = "warning"
	UrgencyOverdue UrgencyTier = "overdue"
)

// Urgency is a display-ready payment urgency summary.
type Urgency struct {
	Tier    UrgencyTier
	Message string
}

// ComputePaymentUrgency buckets daysUntilDue into a tier with a customer
// facing message. Total over all integers.
func ComputePaymentUrgency(daysUntilDue int) Urgency {
	switch {
	case daysUntilDue > 5:
		return Urgency{Tier: UrgencyGood, Message: "Al corriente"}
	case daysUntilDue > 0:
		if daysUntilDue == 1 {
			return Urgency{Tier: UrgencyWarning, Message: "1 día para vencer"}
		}
		return Urgency{Tier: UrgencyWarning, Message: fmt.Sprintf("%d días para vencer", daysUntilDue)}
	case daysUntilDue == 0:
		return Urgency{Tier: UrgencyOverdue, Message: "Vence hoy"}
	case daysUntilDue == -1:
		return Urgency{Tier: UrgencyOverdue, Message: "Vencido hace 1 día"}
	default:
		return Urgency{Tier: UrgencyOverdue, Message: fmt.Sprintf("Vencido hace %d días", -daysUntilDue)}
	}
}
