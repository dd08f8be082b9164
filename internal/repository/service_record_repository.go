package repository

import (
	"context"

	"gorm.io/gorm"

	"autostats/internal/model"
)

// ServiceRecordRepository defines service-record persistence operations.
type ServiceRecordRepository interface {
	Create(ctx context.Context, record *model.ServiceRecord) error
	FindByID(ctx context.Context, id uint) (*model.ServiceRecord, error)
	ExistsByID(ctx context.Context, id uint) (bool, error)
	// ListByVehicle returns records for a vehicle ordered by service date
	// descending, optionally restricted to an exact service type.
	ListByVehicle(ctx context.Context, vehicleID uint, serviceType string) ([]model.ServiceRecord, error)
	// ListByVehicleChronological returns records ordered by service date
	// ascending, the order reports read in.
	ListByVehicleChronological(ctx context.Context, vehicleID uint) ([]model.ServiceRecord, error)
	// DistinctTypes returns the distinct service types present for a
	// vehicle in ascending lexical order.
	DistinctTypes(ctx context.Context, vehicleID uint) ([]string, error)
	// UpdateVersioned writes the mutable fields guarded by the version the
	// caller read. Returns false when no row matched.
	UpdateVersioned(ctx context.Context, record *model.ServiceRecord) (bool, error)
	Delete(ctx context.Context, id uint) error
}

type serviceRecordRepository struct {
	db *gorm.DB
}

// NewServiceRecordRepository builds a GORM-backed repository.
func NewServiceRecordRepository(db *gorm.DB) ServiceRecordRepository {
	return &serviceRecordRepository{db: db}
}

func (r *serviceRecordRepository) Create(ctx context.Context, record *model.ServiceRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *serviceRecordRepository) FindByID(ctx context.Context, id uint) (*model.ServiceRecord, error) {
	var record model.ServiceRecord
	if err := r.db.WithContext(ctx).First(&record, id).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *serviceRecordRepository) ExistsByID(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.ServiceRecord{}).
		Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *serviceRecordRepository) ListByVehicle(ctx context.Context, vehicleID uint, serviceType string) ([]model.ServiceRecord, error) {
	query := r.db.WithContext(ctx).Where("vehicle_id = ?", vehicleID)
	if serviceType != "" {
		query = query.Where("service_type = ?", serviceType)
	}

	var records []model.ServiceRecord
	if err := query.Order("service_date DESC").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (r *serviceRecordRepository) ListByVehicleChronological(ctx context.Context, vehicleID uint) ([]model.ServiceRecord, error) {
	var records []model.ServiceRecord
	if err := r.db.WithContext(ctx).
		Where("vehicle_id = ?", vehicleID).
		Order("service_date ASC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (r *serviceRecordRepository) DistinctTypes(ctx context.Context, vehicleID uint) ([]string, error) {
	var types []string
	if err := r.db.WithContext(ctx).Model(&model.ServiceRecord{}).
		Where("vehicle_id = ?", vehicleID).
		Distinct("service_type").
		Order("service_type ASC").
		Pluck("service_type", &types).Error; err != nil {
		return nil, err
	}
	return types, nil
}

func (r *serviceRecordRepository) UpdateVersioned(ctx context.Context, record *model.ServiceRecord) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.ServiceRecord{}).
		Where("id = ? AND version = ?", record.ID, record.Version).
		Updates(map[string]interface{}{
			"service_date":   record.ServiceDate,
			"mileage":        record.Mileage,
			"service_type":   record.ServiceType,
			"description":    record.Description,
			"cost":           record.Cost,
			"invoice_number": record.InvoiceNumber,
			"service_center": record.ServiceCenter,
			"warranty":       record.Warranty,
			"version":        record.Version + 1,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *serviceRecordRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.ServiceRecord{}, id).Error
}
