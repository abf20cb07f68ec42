package service

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/redesmx/isp-backoffice/internal/auth"
	"github.com/redesmx/isp-backoffice/internal/config"
	"github.com/redesmx/isp-backoffice/internal/domain"
	"github.com/redesmx/isp-backoffice/internal/repository"
	apperrors "github.com/redesmx/isp-backoffice/pkg/util/errorutil"
)

// AuthService coordinates staff login and account management.
type AuthService struct {
	staff      repository.StaffRepository
	tokenMgr   *auth.TokenManager
	bcryptCost int
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, staffRepo repository.StaffRepository) *AuthService {
	return &AuthService{
		staff:      staffRepo,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// LoginStaff authenticates a staff member and returns a role-bearing token.
func (s *AuthService) LoginStaff(ctx context.Context, email, password string) (*domain.StaffMember, string, time.Time, error) {
	staff, err := s.staff.GetByEmail(ctx, email)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, "", time.Time{}, apperrors.NewUnauthorized("credenciales inválidas")
		}
		return nil, "", time.Time{}, apperrors.MapError(err)
	}
	if !staff.Active {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("cuenta deshabilitada")
	}
	if err := auth.ComparePassword(staff.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("credenciales inválidas")
	}
	token, exp, err := s.tokenMgr.GenerateToken(staff.ID, staff.Role)
	if err != nil {
		return nil, "", time.Time{}, apperrors.MapError(err)
	}
	return staff, token, exp, nil
}

// CreateStaff registers a staff account. Admin only; the handler enforces it.
func (s *AuthService) CreateStaff(ctx context.Context, actor *domain.StaffMember, name, email, password string, role domain.StaffRole, zone *string) (*domain.StaffMember, error) {
	if actor == nil {
		return nil, apperrors.NewForbidden("staff required")
	}
	switch role {
	case domain.StaffRoleAdmin, domain.StaffRoleOperator, domain.StaffRoleTechnician:
	default:
		return nil, apperrors.NewValidationError("rol inválido", map[string]any{"role": role})
	}
	if _, err := s.staff.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.NewConflict("el correo ya está registrado", nil)
	} else if err != pgx.ErrNoRows {
		return nil, apperrors.MapError(err)
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	member := &domain.StaffMember{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		Zone:         zone,
		Active:       true,
	}
	if err := s.staff.Create(ctx, member, &actor.ID); err != nil {
		return nil, apperrors.MapError(err)
	}
	return member, nil
}

// ChangePassword verifies the current password before storing the new hash.
func (s *AuthService) ChangePassword(ctx context.Context, staffID, currentPassword, newPassword string) error {
	member, err := s.staff.GetByID(ctx, staffID)
	if err != nil {
		return apperrors.MapError(err)
	}
	if err := auth.ComparePassword(member.PasswordHash, currentPassword); err != nil {
		return apperrors.NewUnauthorized("credenciales inválidas")
	}
	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return apperrors.MapError(err)
	}
	member.PasswordHash = hash
	if err := s.staff.Update(ctx, member, &member.ID); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}

// ListStaff returns active staff, optionally filtered by role and zone.
func (s *AuthService) ListStaff(ctx context.Context, role *domain.StaffRole, zone *string) ([]domain.StaffMember, error) {
	members, err := s.staff.List(ctx, role, zone)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return members, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
