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

// ServiceRecordService handles service-record operations. Records are
// only reachable through their vehicle's owner: every operation resolves
// the owning vehicle against the acting user before touching a record.
type ServiceRecordService interface {
	// ListForVehicle returns the vehicle's records ordered by service date
	// descending, optionally filtered by exact service type, together with
	// the distinct service types present for the vehicle (ascending).
	ListForVehicle(ctx context.Context, userID string, vehicleID uint, serviceType string) ([]model.ServiceRecord, []string, error)
	Create(ctx context.Context, userID string, input ServiceRecordInput) (*model.ServiceRecord, error)
	Update(ctx context.Context, userID string, recordID uint, input ServiceRecordInput) (*model.ServiceRecord, error)
	// Delete removes a record and returns the id of the vehicle it
	// belonged to, so callers can redirect to the vehicle's listing.
	Delete(ctx context.Context, userID string, recordID uint) (uint, error)
}

type serviceRecordService struct {
	vehicleRepo repository.VehicleRepository
	recordRepo  repository.ServiceRecordRepository
	validator   *ServiceRecordValidator
}

// NewServiceRecordService creates a new service-record service.
func NewServiceRecordService(vehicleRepo repository.VehicleRepository, recordRepo repository.ServiceRecordRepository) ServiceRecordService {
	return &serviceRecordService{
		vehicleRepo: vehicleRepo,
		recordRepo:  recordRepo,
		validator:   NewServiceRecordValidator(),
	}
}

// guardVehicle resolves the vehicle for the acting user. A foreign or
// missing vehicle surfaces as the same not-found.
func (s *serviceRecordService) guardVehicle(ctx context.Context, userID string, vehicleID uint) (*model.Vehicle, error) {
	vehicle, err := s.vehicleRepo.FindByIDAndUser(ctx, vehicleID, userID)
	if err != nil {
		if goerrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrVehicleNotFound
		}
		return nil, fmt.Errorf("find vehicle: %w", err)
	}
	return vehicle, nil
}

func (s *serviceRecordService) ListForVehicle(ctx context.Context, userID string, vehicleID uint, serviceType string) ([]model.ServiceRecord, []string, error) {
	if _, err := s.guardVehicle(ctx, userID, vehicleID); err != nil {
		return nil, nil, err
	}

	records, err := s.recordRepo.ListByVehicle(ctx, vehicleID, serviceType)
	if err != nil {
		return nil, nil, fmt.Errorf("list records: %w", err)
	}

	types, err := s.recordRepo.DistinctTypes(ctx, vehicleID)
	if err != nil {
		return nil, nil, fmt.Errorf("list service types: %w", err)
	}

	return records, types, nil
}

func (s *serviceRecordService) Create(ctx context.Context, userID string, input ServiceRecordInput) (*model.ServiceRecord, error) {
	if errs := s.validator.Validate(input); errs != nil {
		return nil, errs
	}

	if _, err := s.guardVehicle(ctx, userID, input.VehicleID); err != nil {
		return nil, err
	}

	record := &model.ServiceRecord{
		ServiceDate:   input.ServiceDate,
		Mileage:       input.Mileage,
		ServiceType:   input.ServiceType,
		Description:   input.Description,
		Cost:          input.Cost,
		InvoiceNumber: input.InvoiceNumber,
		ServiceCenter: input.ServiceCenter,
		Warranty:      input.Warranty,
		VehicleID:     input.VehicleID,
		Version:       1,
	}

	if err := s.recordRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("create record: %w", err)
	}
	return record, nil
}

func (s *serviceRecordService) Update(ctx context.Context, userID string, recordID uint, input ServiceRecordInput) (*model.ServiceRecord, error) {
	if input.ID != 0 && input.ID != recordID {
		return nil, errors.ErrRecordIDMismatch
	}

	record, err := s.findOwnedRecord(ctx, userID, recordID)
	if err != nil {
		return nil, err
	}

	input.VehicleID = record.VehicleID // records never move between vehicles
	if errs := s.validator.Validate(input); errs != nil {
		return nil, errs
	}

	record.ServiceDate = input.ServiceDate
	record.Mileage = input.Mileage
	record.ServiceType = input.ServiceType
	record.Description = input.Description
	record.Cost = input.Cost
	record.InvoiceNumber = input.InvoiceNumber
	record.ServiceCenter = input.ServiceCenter
	record.Warranty = input.Warranty

	updated, err := s.recordRepo.UpdateVersioned(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("update record: %w", err)
	}
	if !updated {
		exists, err := s.recordRepo.ExistsByID(ctx, recordID)
		if err != nil {
			return nil, fmt.Errorf("check record existence: %w", err)
		}
		if !exists {
			return nil, errors.ErrRecordNotFound
		}
		return nil, errors.ErrConcurrencyConflict
	}

	record.Version++
	return record, nil
}

func (s *serviceRecordService) Delete(ctx context.Context, userID string, recordID uint) (uint, error) {
	record, err := s.findOwnedRecord(ctx, userID, recordID)
	if err != nil {
		return 0, err
	}

	if err := s.recordRepo.Delete(ctx, record.ID); err != nil {
		return 0, fmt.Errorf("delete record: %w", err)
	}
	return record.VehicleID, nil
}

// findOwnedRecord loads a record and verifies its vehicle belongs to the
// acting user. A record behind someone else's vehicle is reported as
// missing, same as a record that does not exist.
func (s *serviceRecordService) findOwnedRecord(ctx context.Context, userID string, recordID uint) (*model.ServiceRecord, error) {
	record, err := s.recordRepo.FindByID(ctx, recordID)
	if err != nil {
		if goerrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrRecordNotFound
		}
		return nil, fmt.Errorf("find record: %w", err)
	}

	if _, err := s.guardVehicle(ctx, userID, record.VehicleID); err != nil {
		if goerrors.Is(err, errors.ErrVehicleNotFound) {
			return nil, errors.ErrRecordNotFound
		}
		return nil, err
	}
	return record, nil
}
