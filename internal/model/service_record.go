package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ServiceRecord represents one maintenance event logged against a vehicle.
// Records have no standalone access path: every operation on them first
// resolves the owning vehicle through the caller's identity.
type ServiceRecord struct {
	ID            uint            `json:"id" gorm:"primaryKey"`
	ServiceDate   time.Time       `json:"service_date" gorm:"not null;index"`
	Mileage       int             `json:"mileage" gorm:"not null"`
	ServiceType   string          `json:"service_type" gorm:"size:100;not null;index"`
	Description   string          `json:"description,omitempty" gorm:"type:text"`
	Cost          decimal.Decimal `json:"cost" gorm:"type:decimal(20,2);not null"`
	InvoiceNumber string          `json:"invoice_number,omitempty" gorm:"size:100"`
	ServiceCenter string          `json:"service_center,omitempty" gorm:"size:255"`
	Warranty      string          `json:"warranty,omitempty" gorm:"size:255"`
	VehicleID     uint            `json:"vehicle_id" gorm:"not null;index"`
	Version       uint            `json:"version" gorm:"not null;default:1"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`

	// Relations
	Vehicle Vehicle `json:"-" gorm:"foreignKey:VehicleID"`
}
