package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"autostats/internal/errors"
	"autostats/internal/model"
)

// MockServiceRecordRepository is a mock implementation of ServiceRecordRepository.
type MockServiceRecordRepository struct {
	mock.Mock
}

func (m *MockServiceRecordRepository) Create(ctx context.Context, record *model.ServiceRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockServiceRecordRepository) FindByID(ctx context.Context, id uint) (*model.ServiceRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ServiceRecord), args.Error(1)
}

func (m *MockServiceRecordRepository) ExistsByID(ctx context.Context, id uint) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockServiceRecordRepository) ListByVehicle(ctx context.Context, vehicleID uint, serviceType string) ([]model.ServiceRecord, error) {
	args := m.Called(ctx, vehicleID, serviceType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ServiceRecord), args.Error(1)
}

func (m *MockServiceRecordRepository) ListByVehicleChronological(ctx context.Context, vehicleID uint) ([]model.ServiceRecord, error) {
	args := m.Called(ctx, vehicleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ServiceRecord), args.Error(1)
}

func (m *MockServiceRecordRepository) DistinctTypes(ctx context.Context, vehicleID uint) ([]string, error) {
	args := m.Called(ctx, vehicleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockServiceRecordRepository) UpdateVersioned(ctx context.Context, record *model.ServiceRecord) (bool, error) {
	args := m.Called(ctx, record)
	return args.Bool(0), args.Error(1)
}

func (m *MockServiceRecordRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func ownedVehicle() *model.Vehicle {
	return &model.Vehicle{ID: 5, Make: "Toyota", Model: "Corolla", RegistrationNumber: "ABC123", UserID: "owner-1"}
}

func validRecordInput() ServiceRecordInput {
	return ServiceRecordInput{
		VehicleID:   5,
		ServiceDate: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
		Mileage:     50000,
		ServiceType: "Oil change",
		Cost:        decimal.RequireFromString("80.00"),
	}
}

func TestRecordService_ListForVehicle(t *testing.T) {
	newest := model.ServiceRecord{ID: 2, VehicleID: 5, ServiceType: "Tires",
		ServiceDate: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)}
	oldest := model.ServiceRecord{ID: 1, VehicleID: 5, ServiceType: "Oil change",
		ServiceDate: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)}

	mockVehicles := new(MockVehicleRepository)
	mockVehicles.On("FindByIDAndUser", mock.Anything, uint(5), "owner-1").Return(ownedVehicle(), nil)

	mockRecords := new(MockServiceRecordRepository)
	mockRecords.On("ListByVehicle", mock.Anything, uint(5), "").
		Return([]model.ServiceRecord{newest, oldest}, nil)
	mockRecords.On("DistinctTypes", mock.Anything, uint(5)).
		Return([]string{"Oil change", "Tires"}, nil)

	svc := NewServiceRecordService(mockVehicles, mockRecords)
	records, types, err := svc.ListForVehicle(context.Background(), "owner-1", 5, "")

	assert.NoError(t, err)
	// Listing view reads newest first
	assert.Equal(t, []model.ServiceRecord{newest, oldest}, records)
	assert.Equal(t, []string{"Oil change", "Tires"}, types)
	mockVehicles.AssertExpectations(t)
	mockRecords.AssertExpectations(t)
}

func TestRecordService_ListForVehicle_TypeFilter(t *testing.T) {
	tires := model.ServiceRecord{ID: 2, VehicleID: 5, ServiceType: "Tires",
		ServiceDate: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)}

	mockVehicles := new(MockVehicleRepository)
	mockVehicles.On("FindByIDAndUser", mock.Anything, uint(5), "owner-1").Return(ownedVehicle(), nil)

	mockRecords := new(MockServiceRecordRepository)
	mockRecords.On("ListByVehicle", mock.Anything, uint(5), "Tires").
		Return([]model.ServiceRecord{tires}, nil)
	mockRecords.On("DistinctTypes", mock.Anything, uint(5)).
		Return([]string{"Oil change", "Tires"}, nil)

	svc := NewServiceRecordService(mockVehicles, mockRecords)
	records, types, err := svc.ListForVehicle(context.Background(), "owner-1", 5, "Tires")

	assert.NoError(t, err)
	assert.Len(t, records, 1)
	assert.Equal(t, uint(2), records[0].ID)
	// The distinct set is not narrowed by the filter
	assert.Equal(t, []string{"Oil change", "Tires"}, types)
}

func TestRecordService_ListForVehicle_NotOwned(t *testing.T) {
	mockVehicles := new(MockVehicleRepository)
	mockVehicles.On("FindByIDAndUser", mock.Anything, uint(5), "intruder").
		Return(nil, gorm.ErrRecordNotFound)

	mockRecords := new(MockServiceRecordRepository)

	svc := NewServiceRecordService(mockVehicles, mockRecords)
	_, _, err := svc.ListForVehicle(context.Background(), "intruder", 5, "")

	assert.ErrorIs(t, err, errors.ErrVehicleNotFound)
	mockRecords.AssertNotCalled(t, "ListByVehicle", mock.Anything, mock.Anything, mock.Anything)
}

func TestRecordService_Create(t *testing.T) {
	tests := []struct {
		name         string
		mutate       func(*ServiceRecordInput)
		invalidField string
	}{
		{name: "valid input"},
		{
			name:         "unset vehicle id is a validation error",
			mutate:       func(in *ServiceRecordInput) { in.VehicleID = 0 },
			invalidField: "vehicle_id",
		},
		{
			name:         "missing date",
			mutate:       func(in *ServiceRecordInput) { in.ServiceDate = time.Time{} },
			invalidField: "service_date",
		},
		{
			name:         "missing service type",
			mutate:       func(in *ServiceRecordInput) { in.ServiceType = "" },
			invalidField: "service_type",
		},
		{
			name:         "negative cost",
			mutate:       func(in *ServiceRecordInput) { in.Cost = decimal.RequireFromString("-1") },
			invalidField: "cost",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockVehicles := new(MockVehicleRepository)
			mockRecords := new(MockServiceRecordRepository)

			input := validRecordInput()
			if tt.mutate != nil {
				tt.mutate(&input)
			}

			if tt.invalidField == "" {
				mockVehicles.On("FindByIDAndUser", mock.Anything, uint(5), "owner-1").Return(ownedVehicle(), nil)
				mockRecords.On("Create", mock.Anything, mock.AnythingOfType("*model.ServiceRecord")).Return(nil)
			}

			svc := NewServiceRecordService(mockVehicles, mockRecords)
			record, err := svc.Create(context.Background(), "owner-1", input)

			if tt.invalidField != "" {
				assert.Nil(t, record)
				ve, ok := errors.AsValidationErrors(err)
				assert.True(t, ok)
				assert.Equal(t, tt.invalidField, ve[0].Field)
				mockRecords.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, uint(5), record.VehicleID)
			}
		})
	}
}

func TestRecordService_Create_ForeignVehicle(t *testing.T) {
	mockVehicles := new(MockVehicleRepository)
	mockVehicles.On("FindByIDAndUser", mock.Anything, uint(5), "intruder").
		Return(nil, gorm.ErrRecordNotFound)
	mockRecords := new(MockServiceRecordRepository)

	svc := NewServiceRecordService(mockVehicles, mockRecords)
	record, err := svc.Create(context.Background(), "intruder", validRecordInput())

	assert.Nil(t, record)
	assert.ErrorIs(t, err, errors.ErrVehicleNotFound)
	mockRecords.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRecordService_Update_IDMismatch(t *testing.T) {
	mockVehicles := new(MockVehicleRepository)
	mockRecords := new(MockServiceRecordRepository)

	input := validRecordInput()
	input.ID = 8

	svc := NewServiceRecordService(mockVehicles, mockRecords)
	record, err := svc.Update(context.Background(), "owner-1", 9, input)

	assert.Nil(t, record)
	assert.ErrorIs(t, err, errors.ErrRecordIDMismatch)
	mockRecords.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestRecordService_Update_Conflict(t *testing.T) {
	existing := &model.ServiceRecord{ID: 9, VehicleID: 5, ServiceType: "Oil change",
		ServiceDate: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
		Cost:        decimal.RequireFromString("80.00"), Version: 1}

	mockVehicles := new(MockVehicleRepository)
	mockVehicles.On("FindByIDAndUser", mock.Anything, uint(5), "owner-1").Return(ownedVehicle(), nil)

	mockRecords := new(MockServiceRecordRepository)
	mockRecords.On("FindByID", mock.Anything, uint(9)).Return(existing, nil)
	mockRecords.On("UpdateVersioned", mock.Anything, mock.AnythingOfType("*model.ServiceRecord")).Return(false, nil)
	mockRecords.On("ExistsByID", mock.Anything, uint(9)).Return(true, nil)

	svc := NewServiceRecordService(mockVehicles, mockRecords)
	record, err := svc.Update(context.Background(), "owner-1", 9, validRecordInput())

	assert.Nil(t, record)
	assert.ErrorIs(t, err, errors.ErrConcurrencyConflict)
}

func TestRecordService_Delete(t *testing.T) {
	existing := &model.ServiceRecord{ID: 9, VehicleID: 5, Version: 1}

	mockVehicles := new(MockVehicleRepository)
	mockVehicles.On("FindByIDAndUser", mock.Anything, uint(5), "owner-1").Return(ownedVehicle(), nil)

	mockRecords := new(MockServiceRecordRepository)
	mockRecords.On("FindByID", mock.Anything, uint(9)).Return(existing, nil)
	mockRecords.On("Delete", mock.Anything, uint(9)).Return(nil)

	svc := NewServiceRecordService(mockVehicles, mockRecords)
	vehicleID, err := svc.Delete(context.Background(), "owner-1", 9)

	assert.NoError(t, err)
	// Parent vehicle id is reported back for redirects
	assert.Equal(t, uint(5), vehicleID)
	mockRecords.AssertExpectations(t)
}

func TestRecordService_Delete_MissingRecord(t *testing.T) {
	mockVehicles := new(MockVehicleRepository)
	mockRecords := new(MockServiceRecordRepository)
	mockRecords.On("FindByID", mock.Anything, uint(9)).Return(nil, gorm.ErrRecordNotFound)

	svc := NewServiceRecordService(mockVehicles, mockRecords)
	_, err := svc.Delete(context.Background(), "owner-1", 9)

	// Graceful not-found, not a hard lookup fault
	assert.ErrorIs(t, err, errors.ErrRecordNotFound)
	mockRecords.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestRecordService_Delete_ForeignVehicleRecord(t *testing.T) {
	existing := &model.ServiceRecord{ID: 9, VehicleID: 5, Version: 1}

	mockVehicles := new(MockVehicleRepository)
	mockVehicles.On("FindByIDAndUser", mock.Anything, uint(5), "intruder").
		Return(nil, gorm.ErrRecordNotFound)

	mockRecords := new(MockServiceRecordRepository)
	mockRecords.On("FindByID", mock.Anything, uint(9)).Return(existing, nil)

	svc := NewServiceRecordService(mockVehicles, mockRecords)
	_, err := svc.Delete(context.Background(), "intruder", 9)

	// A record behind someone else's vehicle looks exactly like a missing one
	assert.ErrorIs(t, err, errors.ErrRecordNotFound)
	mockRecords.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
