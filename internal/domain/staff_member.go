package domain

import "time"

// StaffRole enumerates back-office operator roles.
type StaffRole string

const (
	StaffRoleAdmin      StaffRole = "ADMIN"
	StaffRoleOperator   StaffRole = "OPERATOR"
	StaffRoleTechnician StaffRole = "TECHNICIAN"
)

// StaffMember models a back-office operator, field technician or administrator.
type StaffMember struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         StaffRole
	Zone         *string
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
