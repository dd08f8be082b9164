package repository

import (
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"autostats/internal/model"
)

// setupTestDB opens a fresh in-memory SQLite database with the schema
// migrated. The connection pool is pinned to one connection so every
// query sees the same in-memory database.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := db.AutoMigrate(&model.User{}, &model.Vehicle{}, &model.ServiceRecord{}); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB, id string) *model.User {
	t.Helper()
	user := &model.User{
		ID:           id,
		FirstName:    "Test",
		LastName:     "Driver",
		Email:        id + "@example.com",
		PasswordHash: "x",
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func seedVehicle(t *testing.T, db *gorm.DB, userID string, registration string) *model.Vehicle {
	t.Helper()
	vehicle := &model.Vehicle{
		Make:               "Toyota",
		Model:              "Corolla",
		RegistrationNumber: registration,
		Year:               2018,
		ChassisNumber:      "1HGCM82633A004352",
		EngineDisplacement: 1600,
		PowerKW:            90,
		UserID:             userID,
		Version:            1,
	}
	if err := db.Create(vehicle).Error; err != nil {
		t.Fatalf("seed vehicle: %v", err)
	}
	return vehicle
}

func seedRecord(t *testing.T, db *gorm.DB, vehicleID uint, serviceType string, date time.Time) *model.ServiceRecord {
	t.Helper()
	record := &model.ServiceRecord{
		ServiceDate: date,
		Mileage:     50000,
		ServiceType: serviceType,
		VehicleID:   vehicleID,
		Version:     1,
	}
	if err := db.Create(record).Error; err != nil {
		t.Fatalf("seed record: %v", err)
	}
	return record
}
