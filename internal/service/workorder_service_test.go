package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redesmx/isp-backoffice/internal/domain"
)

func newWorkOrderServiceForTest(now time.Time) (*WorkOrderService, *fakeWorkOrderRepo, *fakeStaffRepo) {
	norte := "norte"
	staffRepo := newFakeStaffRepo(
		domain.StaffMember{ID: "tech-1", Role: domain.StaffRoleTechnician, Zone: &norte, Active: true},
		domain.StaffMember{ID: "op-1", Role: domain.StaffRoleOperator, Active: true},
	)
	orders := newFakeWorkOrderRepo()
	contracts := newFakeContractRepo(domain.ServiceContract{
		ID:         "contract-1",
		CustomerID: "customer-1",
		PackageID:  "package-1",
		Status:     domain.ContractStatusPendingInstallation,
		PaymentDay: 15,
	})
	svc := NewWorkOrderService(WorkOrderDependencies{
		OrderRepo:    orders,
		ContractRepo: contracts,
		StaffRepo:    staffRepo,
		Clock:        func() time.Time { return now },
	})
	return svc, orders, staffRepo
}

func TestWorkOrderFullFlow(t *testing.T) {
	now := time.Date(2026, time.March, 12, 9, 0, 0, 0, time.UTC)
	svc, _, _ := newWorkOrderServiceForTest(now)
	staff := operatorForTest()

	order, err := svc.CreateWorkOrder(context.Background(), staff, WorkOrderCreateInput{
		ContractID: "contract-1",
		Type:       domain.WorkOrderTypeInstallation,
		Notes:      "instalación inicial",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.WorkOrderStatusPending, order.Status)
	assert.Nil(t, order.CompletedDate)

	assigned, err := svc.AssignWorkOrder(context.Background(), staff, order.ID, "tech-1")
	require.NoError(t, err)
	assert.Equal(t, domain.WorkOrderStatusAssigned, assigned.Status)

	started, err := svc.StartWorkOrder(context.Background(), staff, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.WorkOrderStatusInProgress, started.Status)

	completed, err := svc.CompleteWorkOrder(context.Background(), staff, order.ID, "equipo instalado")
	require.NoError(t, err)
	assert.Equal(t, domain.WorkOrderStatusCompleted, completed.Status)
	require.NotNil(t, completed.CompletedDate)
	assert.Equal(t, now, *completed.CompletedDate)
	assert.Equal(t, "equipo instalado", completed.Notes)

	// Completed orders are terminal.
	_, err = svc.CancelWorkOrder(context.Background(), staff, order.ID)
	require.Error(t, err)
}

func TestAssignWorkOrder_RequiresTechnician(t *testing.T) {
	now := time.Date(2026, time.March, 12, 9, 0, 0, 0, time.UTC)
	svc, _, _ := newWorkOrderServiceForTest(now)
	staff := operatorForTest()

	order, err := svc.CreateWorkOrder(context.Background(), staff, WorkOrderCreateInput{
		ContractID: "contract-1",
		Type:       domain.WorkOrderTypeRepair,
	})
	require.NoError(t, err)

	_, err = svc.AssignWorkOrder(context.Background(), staff, order.ID, "op-1")
	require.Error(t, err)
}

func TestWorkOrderSkipsAreRejected(t *testing.T) {
	now := time.Date(2026, time.March, 12, 9, 0, 0, 0, time.UTC)
	svc, _, _ := newWorkOrderServiceForTest(now)
	staff := operatorForTest()

	order, err := svc.CreateWorkOrder(context.Background(), staff, WorkOrderCreateInput{
		ContractID: "contract-1",
		Type:       domain.WorkOrderTypeMaintenance,
	})
	require.NoError(t, err)

	// Cannot start or complete before assignment.
	_, err = svc.StartWorkOrder(context.Background(), staff, order.ID)
	require.Error(t, err)
	_, err = svc.CompleteWorkOrder(context.Background(), staff, order.ID, "")
	require.Error(t, err)

	// But a pending order can still be cancelled.
	cancelled, err := svc.CancelWorkOrder(context.Background(), staff, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.WorkOrderStatusCancelled, cancelled.Status)
}
