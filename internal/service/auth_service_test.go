package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redesmx/isp-backoffice/internal/auth"
	"github.com/redesmx/isp-backoffice/internal/config"
	"github.com/redesmx/isp-backoffice/internal/domain"
)

func newAuthServiceForTest(t *testing.T) (*AuthService, *fakeStaffRepo) {
	t.Helper()
	hash, err := auth.HashPassword("s3cret", 4)
	require.NoError(t, err)

	staffRepo := newFakeStaffRepo(
		domain.StaffMember{ID: "staff-1", Name: "Luisa", Email: "luisa@example.com", PasswordHash: hash, Role: domain.StaffRoleAdmin, Active: true},
		domain.StaffMember{ID: "staff-2", Name: "Raúl", Email: "raul@example.com", PasswordHash: hash, Role: domain.StaffRoleOperator, Active: false},
	)
	cfg := config.Config{Auth: config.AuthConfig{
		JWTSecret:             "test-secret",
		AccessTokenTTLMinutes: 15,
		BcryptCost:            4,
	}}
	return NewAuthService(cfg, staffRepo), staffRepo
}

func TestLoginStaff(t *testing.T) {
	svc, _ := newAuthServiceForTest(t)

	staff, token, exp, err := svc.LoginStaff(context.Background(), "luisa@example.com", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "staff-1", staff.ID)
	assert.NotEmpty(t, token)
	assert.False(t, exp.IsZero())

	claims, err := svc.TokenManager().ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "staff-1", claims.StaffID)
	assert.Equal(t, domain.StaffRoleAdmin, claims.Role)
}

func TestLoginStaff_Rejections(t *testing.T) {
	svc, _ := newAuthServiceForTest(t)

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"wrong password", "luisa@example.com", "nope"},
		{"unknown email", "ghost@example.com", "s3cret"},
		{"inactive account", "raul@example.com", "s3cret"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, _, _, err := svc.LoginStaff(context.Background(), tc.email, tc.password)
			require.Error(t, err)
		})
	}
}

func TestCreateStaff(t *testing.T) {
	svc, staffRepo := newAuthServiceForTest(t)
	admin, err := staffRepo.GetByID(context.Background(), "staff-1")
	require.NoError(t, err)

	zone := "norte"
	member, err := svc.CreateStaff(context.Background(), admin, "Paco", "paco@example.com", "p4ssword", domain.StaffRoleTechnician, &zone)
	require.NoError(t, err)
	assert.True(t, member.Active)
	assert.NotEqual(t, "p4ssword", member.PasswordHash)

	// Duplicate email.
	_, err = svc.CreateStaff(context.Background(), admin, "Otra", "paco@example.com", "xyz", domain.StaffRoleOperator, nil)
	require.Error(t, err)

	// Unknown role.
	_, err = svc.CreateStaff(context.Background(), admin, "Otra", "otra@example.com", "xyz", "MANAGER", nil)
	require.Error(t, err)
}

func TestChangePassword(t *testing.T) {
	svc, staffRepo := newAuthServiceForTest(t)

	require.Error(t, svc.ChangePassword(context.Background(), "staff-1", "wrong", "newpass"))
	require.NoError(t, svc.ChangePassword(context.Background(), "staff-1", "s3cret", "newpass"))

	updated, err := staffRepo.GetByID(context.Background(), "staff-1")
	require.NoError(t, err)
	require.NoError(t, auth.ComparePassword(updated.PasswordHash, "newpass"))
}
