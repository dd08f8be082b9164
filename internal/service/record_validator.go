package service

import (
	"time"

	"github.com/shopspring/decimal"

	"autostats/internal/errors"
)

// ServiceRecordInput carries the client-settable service-record fields.
type ServiceRecordInput struct {
	ID            uint            `json:"id,omitempty"`
	VehicleID     uint            `json:"vehicle_id"`
	ServiceDate   time.Time       `json:"service_date"`
	Mileage       int             `json:"mileage"`
	ServiceType   string          `json:"service_type"`
	Description   string          `json:"description,omitempty"`
	Cost          decimal.Decimal `json:"cost"`
	InvoiceNumber string          `json:"invoice_number,omitempty"`
	ServiceCenter string          `json:"service_center,omitempty"`
	Warranty      string          `json:"warranty,omitempty"`
}

// ServiceRecordValidator validates service-record input.
type ServiceRecordValidator struct{}

// NewServiceRecordValidator creates a new service-record validator.
func NewServiceRecordValidator() *ServiceRecordValidator {
	return &ServiceRecordValidator{}
}

// Validate checks a record input and returns field-level errors, or nil
// when the input is valid. An unset vehicle id is a validation failure,
// not a lookup failure.
func (v *ServiceRecordValidator) Validate(input ServiceRecordInput) errors.ValidationErrors {
	var errs errors.ValidationErrors

	if input.VehicleID == 0 {
		errs = append(errs, errors.FieldError{Field: "vehicle_id", Message: "vehicle is required"})
	}
	if input.ServiceDate.IsZero() {
		errs = append(errs, errors.FieldError{Field: "service_date", Message: "service date is required"})
	}
	if input.Mileage < 0 {
		errs = append(errs, errors.FieldError{Field: "mileage", Message: "mileage must not be negative"})
	}
	if input.ServiceType == "" {
		errs = append(errs, errors.FieldError{Field: "service_type", Message: "service type is required"})
	}
	if input.Cost.IsNegative() {
		errs = append(errs, errors.FieldError{Field: "cost", Message: "cost must not be negative"})
	}

	return errs
}
