package domain

import "time"

// Customer is a subscriber with at least one service contract.
type Customer struct {
	ID        string
	Name      string
	Phone     string
	Email     string
	Address   string
	Zone      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ServicePackage describes a sellable internet/TV plan.
type ServicePackage struct {
	ID         string
	Name       string
	SpeedMbps  int
	MonthlyFee float64
	IsActive   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
