package dto

import "time"

// CustomerRequest covers create and update payloads.
type CustomerRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
	Zone    string `json:"zone"`
}

// CustomerResponse projection.
type CustomerResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email,omitempty"`
	Address   string    `json:"address,omitempty"`
	Zone      string    `json:"zone"`
	CreatedAt time.Time `json:"created_at"`
}

// CreatePackageRequest payload.
type CreatePackageRequest struct {
	Name       string  `json:"name"`
	SpeedMbps  int     `json:"speed_mbps"`
	MonthlyFee float64 `json:"monthly_fee"`
}

// PackageResponse projection.
type PackageResponse struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	SpeedMbps  int     `json:"speed_mbps"`
	MonthlyFee float64 `json:"monthly_fee"`
}

// CoverageResponse answers the public coverage check.
type CoverageResponse struct {
	Zone    string `json:"zone"`
	Covered bool   `json:"covered"`
	Message string `json:"message"`
}
