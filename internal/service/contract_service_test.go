package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redesmx/isp-backoffice/internal/domain"
	apperrors "github.com/redesmx/isp-backoffice/pkg/util/errorutil"
)

func contractFixtures() (*fakeContractRepo, *fakeCustomerRepo, *fakePackageRepo, *fakeWorkOrderRepo) {
	customers := newFakeCustomerRepo(domain.Customer{ID: "customer-1", Name: "Ana", Phone: "55", Zone: "centro"})
	packages := newFakePackageRepo(domain.ServicePackage{ID: "package-1", Name: "Básico", SpeedMbps: 50, MonthlyFee: 350, IsActive: true})
	return newFakeContractRepo(), customers, packages, newFakeWorkOrderRepo()
}

func newContractServiceForTest(now time.Time) (*ContractService, *fakeContractRepo, *fakeWorkOrderRepo) {
	contracts, customers, packages, orders := contractFixtures()
	svc := NewContractService(ContractDependencies{
		ContractRepo: contracts,
		CustomerRepo: customers,
		PackageRepo:  packages,
		OrderRepo:    orders,
		Clock:        func() time.Time { return now },
	})
	return svc, contracts, orders
}

func TestCreateContract_OpensInstallationOrder(t *testing.T) {
	svc, _, orders := newContractServiceForTest(time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC))
	staff := operatorForTest()

	contract, order, err := svc.CreateContract(context.Background(), staff, ContractCreateInput{
		CustomerID: "customer-1",
		PackageID:  "package-1",
		PaymentDay: 15,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.ContractStatusPendingInstallation, contract.Status)
	assert.Equal(t, 350.0, contract.MonthlyFee)
	assert.Nil(t, contract.NextPaymentDate)

	require.NotNil(t, order)
	assert.Equal(t, contract.ID, order.ContractID)
	assert.Equal(t, domain.WorkOrderTypeInstallation, order.Type)
	assert.Equal(t, domain.WorkOrderStatusPending, order.Status)

	stored, err := orders.ListByContract(context.Background(), contract.ID)
	require.NoError(t, err)
	assert.Len(t, stored, 1)
}

func TestCreateContract_RejectsInvalidPaymentDay(t *testing.T) {
	svc, _, _ := newContractServiceForTest(time.Now())
	staff := operatorForTest()

	for _, day := range []int{0, 32, -1} {
		_, _, err := svc.CreateContract(context.Background(), staff, ContractCreateInput{
			CustomerID: "customer-1",
			PackageID:  "package-1",
			PaymentDay: day,
		})
		require.Error(t, err, "payment day %d", day)
	}
}

func TestActivateContract_RequiresCompletedInstallation(t *testing.T) {
	now := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)
	svc, _, orders := newContractServiceForTest(now)
	staff := operatorForTest()

	contract, order, err := svc.CreateContract(context.Background(), staff, ContractCreateInput{
		CustomerID: "customer-1",
		PackageID:  "package-1",
		PaymentDay: 15,
	})
	require.NoError(t, err)

	// Installation still pending.
	_, err = svc.ActivateContract(context.Background(), staff, contract.ID)
	require.Error(t, err)
	var domainErr *apperrors.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "CONFLICT", domainErr.Code)

	completed := now
	order.Status = domain.WorkOrderStatusCompleted
	order.CompletedDate = &completed
	require.NoError(t, orders.Update(context.Background(), order, nil))

	activated, err := svc.ActivateContract(context.Background(), staff, contract.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ContractStatusActive, activated.Status)
	require.NotNil(t, activated.NextPaymentDate)
	assert.Equal(t, time.Date(2026, time.April, 15, 0, 0, 0, 0, time.UTC), *activated.NextPaymentDate)
	require.NotNil(t, activated.InstalledAt)
}

func TestContractSuspendReactivateCancel(t *testing.T) {
	now := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)
	svc, contracts, _ := newContractServiceForTest(now)
	staff := operatorForTest()

	next := time.Date(2026, time.April, 15, 0, 0, 0, 0, time.UTC)
	contract := domain.ServiceContract{
		ID:              "contract-active",
		CustomerID:      "customer-1",
		PackageID:       "package-1",
		Status:          domain.ContractStatusActive,
		PaymentDay:      15,
		NextPaymentDate: &next,
	}
	contracts.contracts[contract.ID] = contract

	suspended, err := svc.SuspendContract(context.Background(), staff, contract.ID, "falta de pago")
	require.NoError(t, err)
	assert.Equal(t, domain.ContractStatusSuspended, suspended.Status)

	reactivated, err := svc.ReactivateContract(context.Background(), staff, contract.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ContractStatusActive, reactivated.Status)
	require.NotNil(t, reactivated.NextPaymentDate)

	cancelled, err := svc.CancelContract(context.Background(), staff, contract.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ContractStatusCancelled, cancelled.Status)

	// Terminal contracts reject further moves.
	_, err = svc.SuspendContract(context.Background(), staff, contract.ID, "")
	require.Error(t, err)
	_, err = svc.ReactivateContract(context.Background(), staff, contract.ID)
	require.Error(t, err)
}
