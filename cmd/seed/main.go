package main

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"autostats/internal/config"
	"autostats/internal/db"
	"autostats/internal/model"
	"autostats/internal/repository"
)

const (
	demoEmail    = "demo@autostats.local"
	demoPassword = "demo123"
)

func main() {
	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Vehicle{},
		&model.ServiceRecord{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)
	vehicleRepo := repository.NewVehicleRepository(gormDB)
	recordRepo := repository.NewServiceRecordRepository(gormDB)

	if _, err := userRepo.FindByEmail(ctx, demoEmail); err == nil {
		log.Printf("demo user %s already present, nothing to do", demoEmail)
		return
	} else if err != gorm.ErrRecordNotFound {
		log.Fatalf("check demo user: %v", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), 10)
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}

	user := &model.User{
		ID:             uuid.New().String(),
		FirstName:      "Demo",
		LastName:       "Driver",
		Email:          demoEmail,
		PasswordHash:   string(hash),
		EmailConfirmed: true,
	}
	if err := userRepo.Create(ctx, user); err != nil {
		log.Fatalf("create demo user: %v", err)
	}

	vehicle := &model.Vehicle{
		Make:               "Toyota",
		Model:              "Corolla",
		RegistrationNumber: "ABC123",
		Year:               2018,
		ChassisNumber:      "1HGCM82633A004352",
		EngineDisplacement: 1600,
		PowerKW:            90,
		UserID:             user.ID,
		Version:            1,
	}
	if err := vehicleRepo.Create(ctx, vehicle); err != nil {
		log.Fatalf("create demo vehicle: %v", err)
	}

	records := []model.ServiceRecord{
		{
			ServiceDate: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
			Mileage:     50000,
			ServiceType: "Oil change",
			Description: "Oil and filter replaced",
			Cost:        decimal.NewFromFloat(80.00),
			VehicleID:   vehicle.ID,
			Version:     1,
		},
		{
			ServiceDate:   time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
			Mileage:       52000,
			ServiceType:   "Tires",
			Description:   "Four new summer tires",
			Cost:          decimal.NewFromFloat(320.50),
			ServiceCenter: "City Tire Shop",
			VehicleID:     vehicle.ID,
			Version:       1,
		},
	}
	for i := range records {
		if err := recordRepo.Create(ctx, &records[i]); err != nil {
			log.Fatalf("create demo record: %v", err)
		}
	}

	log.Printf("seeded demo user %s (password %s) with vehicle %d and %d service records",
		demoEmail, demoPassword, vehicle.ID, len(records))
}
