package repository

import (
	"context"

	"gorm.io/gorm"

	"autostats/internal/model"
)

// VehicleRepository defines vehicle persistence operations. Reads that
// take a user id filter by both id and owner in a single query so that
// a foreign vehicle is indistinguishable from a missing one.
type VehicleRepository interface {
	Create(ctx context.Context, vehicle *model.Vehicle) error
	ListByUser(ctx context.Context, userID string) ([]model.Vehicle, error)
	FindByIDAndUser(ctx context.Context, id uint, userID string) (*model.Vehicle, error)
	ExistsByID(ctx context.Context, id uint) (bool, error)
	// UpdateVersioned writes the mutable fields guarded by the version the
	// caller read. Returns false when no row matched (deleted or modified
	// concurrently). UserID is never part of the update set.
	UpdateVersioned(ctx context.Context, vehicle *model.Vehicle) (bool, error)
	// DeleteWithRecords removes the vehicle and its service records in one
	// transaction. Either both succeed or neither is applied.
	DeleteWithRecords(ctx context.Context, id uint) error
}

type vehicleRepository struct {
	db *gorm.DB
}

// NewVehicleRepository builds a GORM-backed repository.
func NewVehicleRepository(db *gorm.DB) VehicleRepository {
	return &vehicleRepository{db: db}
}

func (r *vehicleRepository) Create(ctx context.Context, vehicle *model.Vehicle) error {
	return r.db.WithContext(ctx).Create(vehicle).Error
}

func (r *vehicleRepository) ListByUser(ctx context.Context, userID string) ([]model.Vehicle, error) {
	var vehicles []model.Vehicle
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Find(&vehicles).Error; err != nil {
		return nil, err
	}
	return vehicles, nil
}

func (r *vehicleRepository) FindByIDAndUser(ctx context.Context, id uint, userID string) (*model.Vehicle, error) {
	var vehicle model.Vehicle
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&vehicle).Error; err != nil {
		return nil, err
	}
	return &vehicle, nil
}

func (r *vehicleRepository) ExistsByID(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Vehicle{}).
		Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *vehicleRepository) UpdateVersioned(ctx context.Context, vehicle *model.Vehicle) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.Vehicle{}).
		Where("id = ? AND version = ?", vehicle.ID, vehicle.Version).
		Updates(map[string]interface{}{
			"make":                vehicle.Make,
			"model":               vehicle.Model,
			"registration_number": vehicle.RegistrationNumber,
			"year":                vehicle.Year,
			"chassis_number":      vehicle.ChassisNumber,
			"engine_displacement": vehicle.EngineDisplacement,
			"power_kw":            vehicle.PowerKW,
			"version":             vehicle.Version + 1,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *vehicleRepository) DeleteWithRecords(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("vehicle_id = ?", id).Delete(&model.ServiceRecord{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Vehicle{}, id).Error
	})
}
