package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents a registered owner identity.
type User struct {
	ID             string    `json:"id" gorm:"type:char(36);primaryKey"`
	FirstName      string    `json:"first_name" gorm:"size:50;not null"`
	LastName       string    `json:"last_name" gorm:"size:50;not null"`
	Email          string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash   string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	EmailConfirmed bool      `json:"email_confirmed" gorm:"default:false"`
	ConfirmToken   string    `json:"-" gorm:"size:36;index"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	// Relations
	Vehicles []Vehicle `json:"vehicles,omitempty" gorm:"foreignKey:UserID"`
}

// BeforeCreate sets UUID before creating the record.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return nil
}
