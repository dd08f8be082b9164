package service

import (
	"context"
	goerrors "errors"
	"fmt"

	"gorm.io/gorm"

	"autostats/internal/errors"
	"autostats/internal/model"
	"autostats/internal/repository"
)

// VehicleService handles vehicle operations scoped to their owner. Every
// operation takes the acting user id explicitly; none reads identity from
// ambient state.
type VehicleService interface {
	ListForUser(ctx context.Context, userID string) ([]model.Vehicle, error)
	// GetForUser is the ownership guard: it returns the vehicle only when
	// it exists and belongs to userID, and ErrVehicleNotFound otherwise.
	GetForUser(ctx context.Context, userID string, vehicleID uint) (*model.Vehicle, error)
	Create(ctx context.Context, userID string, input VehicleInput) (*model.Vehicle, error)
	Update(ctx context.Context, userID string, vehicleID uint, input VehicleInput) (*model.Vehicle, error)
	Delete(ctx context.Context, userID string, vehicleID uint) error
}

type vehicleService struct {
	vehicleRepo repository.VehicleRepository
	validator   *VehicleValidator
}

// NewVehicleService creates a new vehicle service.
func NewVehicleService(vehicleRepo repository.VehicleRepository) VehicleService {
	return &vehicleService{
		vehicleRepo: vehicleRepo,
		validator:   NewVehicleValidator(),
	}
}

func (s *vehicleService) ListForUser(ctx context.Context, userID string) ([]model.Vehicle, error) {
	return s.vehicleRepo.ListByUser(ctx, userID)
}

func (s *vehicleService) GetForUser(ctx context.Context, userID string, vehicleID uint) (*model.Vehicle, error) {
	vehicle, err := s.vehicleRepo.FindByIDAndUser(ctx, vehicleID, userID)
	if err != nil {
		if goerrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrVehicleNotFound
		}
		return nil, fmt.Errorf("find vehicle: %w", err)
	}
	return vehicle, nil
}

func (s *vehicleService) Create(ctx context.Context, userID string, input VehicleInput) (*model.Vehicle, error) {
	if errs := s.validator.Validate(input); errs != nil {
		return nil, errs
	}

	// UserID comes from the authenticated caller only. Anything the client
	// may have sent for it was never bound.
	vehicle := &model.Vehicle{
		Make:               input.Make,
		Model:              input.Model,
		RegistrationNumber: input.RegistrationNumber,
		Year:               input.Year,
		ChassisNumber:      input.ChassisNumber,
		EngineDisplacement: input.EngineDisplacement,
		PowerKW:            input.PowerKW,
		UserID:             userID,
		Version:            1,
	}

	if err := s.vehicleRepo.Create(ctx, vehicle); err != nil {
		return nil, fmt.Errorf("create vehicle: %w", err)
	}
	return vehicle, nil
}

func (s *vehicleService) Update(ctx context.Context, userID string, vehicleID uint, input VehicleInput) (*model.Vehicle, error) {
	vehicle, err := s.GetForUser(ctx, userID, vehicleID)
	if err != nil {
		return nil, err
	}

	if errs := s.validator.Validate(input); errs != nil {
		return nil, errs
	}

	vehicle.Make = input.Make
	vehicle.Model = input.Model
	vehicle.RegistrationNumber = input.RegistrationNumber
	vehicle.Year = input.Year
	vehicle.ChassisNumber = input.ChassisNumber
	vehicle.EngineDisplacement = input.EngineDisplacement
	vehicle.PowerKW = input.PowerKW

	updated, err := s.vehicleRepo.UpdateVersioned(ctx, vehicle)
	if err != nil {
		return nil, fmt.Errorf("update vehicle: %w", err)
	}
	if !updated {
		// The row vanished or moved on since we read it. Distinguish the
		// two so clients know whether a retry can help.
		exists, err := s.vehicleRepo.ExistsByID(ctx, vehicleID)
		if err != nil {
			return nil, fmt.Errorf("check vehicle existence: %w", err)
		}
		if !exists {
			return nil, errors.ErrVehicleNotFound
		}
		return nil, errors.ErrConcurrencyConflict
	}

	vehicle.Version++
	return vehicle, nil
}

func (s *vehicleService) Delete(ctx context.Context, userID string, vehicleID uint) error {
	vehicle, err := s.GetForUser(ctx, userID, vehicleID)
	if err != nil {
		return err
	}

	if err := s.vehicleRepo.DeleteWithRecords(ctx, vehicle.ID); err != nil {
		return fmt.Errorf("delete vehicle: %w", err)
	}
	return nil
}
