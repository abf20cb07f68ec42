package lifecycle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redesmx/isp-backoffice/internal/domain"
)

func TestValidatePaymentApproval(t *testing.T) {
	now := time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC)
	contract := &domain.ServiceContract{ID: "c-1", Status: domain.ContractStatusActive, PaymentDay: 15}

	t.Run("pending_payment_approved", func(t *testing.T) {
		payment := &domain.Payment{ID: "p-1", ContractID: "c-1", Status: domain.PaymentStatusPending}
		next, err := ValidatePaymentApproval(payment, contract, now)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, time.April, 15, 0, 0, 0, 0, time.UTC), next)
	})

	t.Run("already_approved_rejected", func(t *testing.T) {
		payment := &domain.Payment{ID: "p-1", ContractID: "c-1", Status: domain.PaymentStatusApproved}
		_, err := ValidatePaymentApproval(payment, contract, now)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, ReasonPreconditionFailed, verr.Reason)
	})

	t.Run("cancelled_rejected", func(t *testing.T) {
		payment := &domain.Payment{ID: "p-1", ContractID: "c-1", Status: domain.PaymentStatusCancelled}
		_, err := ValidatePaymentApproval(payment, contract, now)
		assert.Error(t, err)
	})

	t.Run("wrong_contract_rejected", func(t *testing.T) {
		payment := &domain.Payment{ID: "p-1", ContractID: "c-2", Status: domain.PaymentStatusPending}
		_, err := ValidatePaymentApproval(payment, contract, now)
		assert.Error(t, err)
	})

	t.Run("invalid_payment_day_rejected", func(t *testing.T) {
		bad := &domain.ServiceContract{ID: "c-1", Status: domain.ContractStatusActive, PaymentDay: 0}
		payment := &domain.Payment{ID: "p-1", ContractID: "c-1", Status: domain.PaymentStatusPending}
		_, err := ValidatePaymentApproval(payment, bad, now)
		assert.Error(t, err)
	})
}

func TestNextPaymentDate(t *testing.T) {
	testCases := []struct {
		name       string
		paymentDay int
		anchor     time.Time
		want       time.Time
	}{
		{
			name:       "plain_next_month",
			paymentDay: 10,
			anchor:     time.Date(2024, time.May, 3, 9, 30, 0, 0, time.UTC),
			want:       time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC),
		},
		{
			name:       "day_31_clamps_to_30_day_month",
			paymentDay: 31,
			anchor:     time.Date(2024, time.March, 20, 0, 0, 0, 0, time.UTC),
			want:       time.Date(2024, time.April, 30, 0, 0, 0, 0, time.UTC),
		},
		{
			name:       "day_31_clamps_to_leap_february",
			paymentDay: 31,
			anchor:     time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC),
			want:       time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC),
		},
		{
			name:       "day_30_clamps_to_non_leap_february",
			paymentDay: 30,
			anchor:     time.Date(2023, time.January, 31, 0, 0, 0, 0, time.UTC),
			want:       time.Date(2023, time.February, 28, 0, 0, 0, 0, time.UTC),
		},
		{
			name:       "december_rolls_into_january",
			paymentDay: 5,
			anchor:     time.Date(2024, time.December, 20, 0, 0, 0, 0, time.UTC),
			want:       time.Date(2025, time.January, 5, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, NextPaymentDate(tc.paymentDay, tc.anchor))
		})
	}
}

func TestComputePaymentUrgency(t *testing.T) {
	testCases := []struct {
		days        int
		wantTier    UrgencyTier
		wantMessage string
	}{
		{days: 30, wantTier: UrgencyGood, wantMessage: "Al corriente"},
		{days: 6, wantTier: UrgencyGood, wantMessage: "Al corriente"},
		{days: 5, wantTier: UrgencyWarning, wantMessage: "5 días para vencer"},
		{days: 1, wantTier: UrgencyWarning, wantMessage: "1 día para vencer"},
		{days: 0, wantTier: UrgencyOverdue, wantMessage: "Vence hoy"},
		{days: -1, wantTier: UrgencyOverdue, wantMessage: "Vencido hace 1 día"},
		{days: -3, wantTier: UrgencyOverdue, wantMessage: "Vencido hace 3 días"},
		{days: -90, wantTier: UrgencyOverdue, wantMessage: "Vencido hace 90 días"},
	}

	for _, tc := range testCases {
		got := ComputePaymentUrgency(tc.days)
		assert.Equal(t, tc.wantTier, got.Tier, "days=%d", tc.days)
		assert.Equal(t, tc.wantMessage, got.Message, "days=%d", tc.days)
	}
}
