package model

import "time"

// Vehicle represents a vehicle owned by a single user.
//
// UserID is assigned exactly once, from the authenticated caller at
// creation time. It is never bound from client input and never touched
// by updates. Version backs optimistic concurrency control.
type Vehicle struct {
	ID                 uint      `json:"id" gorm:"primaryKey"`
	Make               string    `json:"make" gorm:"size:100;not null"`
	Model              string    `json:"model" gorm:"size:100;not null"`
	RegistrationNumber string    `json:"registration_number" gorm:"size:20"`
	Year               int       `json:"year"`
	ChassisNumber      string    `json:"chassis_number" gorm:"size:17;not null"`
	EngineDisplacement int       `json:"engine_displacement" gorm:"not null"` // cm³
	PowerKW            int       `json:"power_kw" gorm:"not null"`
	UserID             string    `json:"user_id" gorm:"type:char(36);not null;index"`
	Version            uint      `json:"version" gorm:"not null;default:1"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`

	// Relations
	User           User            `json:"-" gorm:"foreignKey:UserID"`
	ServiceRecords []ServiceRecord `json:"-" gorm:"foreignKey:VehicleID;constraint:OnDelete:CASCADE"`
}
