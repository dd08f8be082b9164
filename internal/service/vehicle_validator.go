package service

import (
	"regexp"

	"autostats/internal/errors"
)

var chassisNumberRegex = regexp.MustCompile(`^[A-Z0-9]{17}$`)

// VehicleInput carries the client-settable vehicle fields. The owning
// user is never part of the input.
type VehicleInput struct {
	Make               string `json:"make"`
	Model              string `json:"model"`
	RegistrationNumber string `json:"registration_number"`
	Year               int    `json:"year"`
	ChassisNumber      string `json:"chassis_number"`
	EngineDisplacement int    `json:"engine_displacement"`
	PowerKW            int    `json:"power_kw"`
}

// VehicleValidator validates vehicle input.
type VehicleValidator struct{}

// NewVehicleValidator creates a new vehicle validator.
func NewVehicleValidator() *VehicleValidator {
	return &VehicleValidator{}
}

// Validate checks a vehicle input and returns field-level errors, or nil
// when the input is valid. Nothing is written when validation fails.
func (v *VehicleValidator) Validate(input VehicleInput) errors.ValidationErrors {
	var errs errors.ValidationErrors

	if input.Make == "" {
		errs = append(errs, errors.FieldError{Field: "make", Message: "make is required"})
	}
	if input.Model == "" {
		errs = append(errs, errors.FieldError{Field: "model", Message: "model is required"})
	}
	if input.ChassisNumber == "" {
		errs = append(errs, errors.FieldError{Field: "chassis_number", Message: "chassis number is required"})
	} else if !chassisNumberRegex.MatchString(input.ChassisNumber) {
		errs = append(errs, errors.FieldError{
			Field:   "chassis_number",
			Message: "chassis number must be exactly 17 uppercase letters or digits",
		})
	}
	if input.EngineDisplacement < 1 || input.EngineDisplacement > 10000 {
		errs = append(errs, errors.FieldError{
			Field:   "engine_displacement",
			Message: "engine displacement must be between 1 and 10000 cm³",
		})
	}
	if input.PowerKW < 1 || input.PowerKW > 1000 {
		errs = append(errs, errors.FieldError{
			Field:   "power_kw",
			Message: "power must be between 1 and 1000 kW",
		})
	}

	return errs
}
