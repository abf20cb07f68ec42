package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redesmx/isp-backoffice/internal/domain"
	apperrors "github.com/redesmx/isp-backoffice/pkg/util/errorutil"
)

func newTicketServiceForTest(staffRepo *fakeStaffRepo) (*TicketService, *fakeTicketRepo) {
	ticketRepo := newFakeTicketRepo()
	svc := NewTicketService(TicketDependencies{
		TicketRepo: ticketRepo,
		StaffRepo:  staffRepo,
		Coverage:   NewCoverageService([]string{"centro", "norte", "sur"}),
	})
	return svc, ticketRepo
}

func operatorForTest() *domain.StaffMember {
	return &domain.StaffMember{ID: "staff-op", Role: domain.StaffRoleOperator, Active: true}
}

func TestCreateTicket_AssignsFolioAndDefaults(t *testing.T) {
	svc, _ := newTicketServiceForTest(newFakeStaffRepo())

	ticket, err := svc.CreateTicket(context.Background(), TicketCreateInput{
		Type:         domain.TicketTypeFault,
		CustomerName: "  Juan Pérez ",
		Phone:        "5512345678",
		Zone:         "Centro",
		Description:  "sin señal",
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(ticket.Folio, "ISP-"))
	assert.Len(t, ticket.Folio, 12)
	assert.Equal(t, domain.TicketStatusNew, ticket.Status)
	assert.Equal(t, domain.TicketPriorityMedium, ticket.Priority)
	assert.Equal(t, "Juan Pérez", ticket.CustomerName)
	assert.Equal(t, "centro", ticket.Zone)
}

func TestCreateTicket_Validation(t *testing.T) {
	svc, _ := newTicketServiceForTest(newFakeStaffRepo())

	tests := []struct {
		name  string
		input TicketCreateInput
	}{
		{
			name:  "unknown type",
			input: TicketCreateInput{Type: "billing", CustomerName: "Ana", Phone: "55"},
		},
		{
			name:  "missing contact",
			input: TicketCreateInput{Type: domain.TicketTypeFault, CustomerName: "", Phone: ""},
		},
		{
			name:  "contract request outside coverage",
			input: TicketCreateInput{Type: domain.TicketTypeContract, CustomerName: "Ana", Phone: "55", Zone: "oriente"},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateTicket(context.Background(), tc.input)
			require.Error(t, err)
			var domainErr *apperrors.DomainError
			require.True(t, errors.As(err, &domainErr))
			assert.Equal(t, "VALIDATION_FAILED", domainErr.Code)
		})
	}
}

func TestTrackByFolio(t *testing.T) {
	svc, _ := newTicketServiceForTest(newFakeStaffRepo())
	created, err := svc.CreateTicket(context.Background(), TicketCreateInput{
		Type:         domain.TicketTypeFault,
		CustomerName: "Ana",
		Phone:        "55",
		Zone:         "sur",
	})
	require.NoError(t, err)

	found, err := svc.TrackByFolio(context.Background(), "  "+strings.ToLower(created.Folio)+" ")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	_, err = svc.TrackByFolio(context.Background(), "ISP-NOPE1234")
	require.Error(t, err)
	var domainErr *apperrors.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
}

func TestUpdateStatus_FollowsProgression(t *testing.T) {
	svc, _ := newTicketServiceForTest(newFakeStaffRepo())
	staff := operatorForTest()
	created, err := svc.CreateTicket(context.Background(), TicketCreateInput{
		Type:         domain.TicketTypeFault,
		CustomerName: "Ana",
		Phone:        "55",
		Zone:         "sur",
	})
	require.NoError(t, err)

	// A fault ticket cannot jump from NEW straight to RESOLVED.
	_, err = svc.UpdateStatus(context.Background(), staff, created.ID, domain.TicketStatusResolved, "")
	require.Error(t, err)
	var domainErr *apperrors.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "CONFLICT", domainErr.Code)

	for _, status := range []domain.TicketStatus{
		domain.TicketStatusDiagnosis,
		domain.TicketStatusScheduled,
		domain.TicketStatusInProgress,
		domain.TicketStatusResolved,
	} {
		ticket, err := svc.UpdateStatus(context.Background(), staff, created.ID, status, "")
		require.NoError(t, err)
		assert.Equal(t, status, ticket.Status)
	}

	resolved, err := svc.GetTicket(context.Background(), created.ID)
	require.NoError(t, err)
	require.NotNil(t, resolved.ClosedAt)
}

func TestAssignTicket_ZoneMatch(t *testing.T) {
	norte := "norte"
	sur := "sur"
	staffRepo := newFakeStaffRepo(
		domain.StaffMember{ID: "tech-norte", Role: domain.StaffRoleTechnician, Zone: &norte, Active: true},
		domain.StaffMember{ID: "tech-sur", Role: domain.StaffRoleTechnician, Zone: &sur, Active: true},
		domain.StaffMember{ID: "tech-idle", Role: domain.StaffRoleTechnician, Zone: &norte, Active: false},
	)
	svc, _ := newTicketServiceForTest(staffRepo)
	staff := operatorForTest()

	created, err := svc.CreateTicket(context.Background(), TicketCreateInput{
		Type:         domain.TicketTypeFault,
		CustomerName: "Ana",
		Phone:        "55",
		Zone:         "norte",
	})
	require.NoError(t, err)

	_, err = svc.AssignTicket(context.Background(), staff, created.ID, "tech-sur")
	require.Error(t, err)

	_, err = svc.AssignTicket(context.Background(), staff, created.ID, "tech-idle")
	require.Error(t, err)

	ticket, err := svc.AssignTicket(context.Background(), staff, created.ID, "tech-norte")
	require.NoError(t, err)
	require.NotNil(t, ticket.AssignedTo)
	assert.Equal(t, "tech-norte", *ticket.AssignedTo)
}

func TestUpdatePriority(t *testing.T) {
	svc, _ := newTicketServiceForTest(newFakeStaffRepo())
	staff := operatorForTest()
	created, err := svc.CreateTicket(context.Background(), TicketCreateInput{
		Type:         domain.TicketTypeFault,
		CustomerName: "Ana",
		Phone:        "55",
		Zone:         "sur",
	})
	require.NoError(t, err)

	ticket, err := svc.UpdatePriority(context.Background(), staff, created.ID, domain.TicketPriorityUrgent)
	require.NoError(t, err)
	assert.Equal(t, domain.TicketPriorityUrgent, ticket.Priority)

	_, err = svc.UpdatePriority(context.Background(), staff, created.ID, "EXTREME")
	require.Error(t, err)
}
