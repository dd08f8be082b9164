package repository

import (
	"context"
	goerrors "errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"autostats/internal/model"
)

func TestVehicleRepository_ListByUser(t *testing.T) {
	db := setupTestDB(t)
	repo := NewVehicleRepository(db)
	ctx := context.Background()

	owner := seedUser(t, db, "owner-1")
	other := seedUser(t, db, "owner-2")
	seedVehicle(t, db, owner.ID, "ABC123")
	seedVehicle(t, db, owner.ID, "DEF456")
	seedVehicle(t, db, other.ID, "GHI789")

	vehicles, err := repo.ListByUser(ctx, owner.ID)

	assert.NoError(t, err)
	assert.Len(t, vehicles, 2)
	for _, v := range vehicles {
		assert.Equal(t, owner.ID, v.UserID)
	}
}

func TestVehicleRepository_FindByIDAndUser(t *testing.T) {
	db := setupTestDB(t)
	repo := NewVehicleRepository(db)
	ctx := context.Background()

	owner := seedUser(t, db, "owner-1")
	intruder := seedUser(t, db, "owner-2")
	vehicle := seedVehicle(t, db, owner.ID, "ABC123")

	found, err := repo.FindByIDAndUser(ctx, vehicle.ID, owner.ID)
	assert.NoError(t, err)
	assert.Equal(t, "ABC123", found.RegistrationNumber)

	// A foreign vehicle reads exactly like a missing one
	_, err = repo.FindByIDAndUser(ctx, vehicle.ID, intruder.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	_, err = repo.FindByIDAndUser(ctx, 9999, owner.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestVehicleRepository_UpdateVersioned(t *testing.T) {
	db := setupTestDB(t)
	repo := NewVehicleRepository(db)
	ctx := context.Background()

	owner := seedUser(t, db, "owner-1")
	vehicle := seedVehicle(t, db, owner.ID, "ABC123")

	vehicle.Make = "Honda"
	vehicle.Model = "Civic"
	updated, err := repo.UpdateVersioned(ctx, vehicle)
	assert.NoError(t, err)
	assert.True(t, updated)

	stored, err := repo.FindByIDAndUser(ctx, vehicle.ID, owner.ID)
	assert.NoError(t, err)
	assert.Equal(t, "Honda", stored.Make)
	assert.Equal(t, uint(2), stored.Version)
}

func TestVehicleRepository_UpdateVersioned_StaleVersion(t *testing.T) {
	db := setupTestDB(t)
	repo := NewVehicleRepository(db)
	ctx := context.Background()

	owner := seedUser(t, db, "owner-1")
	vehicle := seedVehicle(t, db, owner.ID, "ABC123")

	fresh := *vehicle
	updated, err := repo.UpdateVersioned(ctx, &fresh)
	assert.NoError(t, err)
	assert.True(t, updated)

	// Second writer still holds version 1
	stale := *vehicle
	stale.Make = "Mazda"
	updated, err = repo.UpdateVersioned(ctx, &stale)
	assert.NoError(t, err)
	assert.False(t, updated)

	stored, err := repo.FindByIDAndUser(ctx, vehicle.ID, owner.ID)
	assert.NoError(t, err)
	assert.NotEqual(t, "Mazda", stored.Make)
}

func TestVehicleRepository_UpdateVersioned_NeverMovesOwner(t *testing.T) {
	db := setupTestDB(t)
	repo := NewVehicleRepository(db)
	ctx := context.Background()

	owner := seedUser(t, db, "owner-1")
	seedUser(t, db, "owner-2")
	vehicle := seedVehicle(t, db, owner.ID, "ABC123")

	vehicle.UserID = "owner-2"
	updated, err := repo.UpdateVersioned(ctx, vehicle)
	assert.NoError(t, err)
	assert.True(t, updated)

	stored, err := repo.FindByIDAndUser(ctx, vehicle.ID, owner.ID)
	assert.NoError(t, err)
	assert.Equal(t, "owner-1", stored.UserID)
}

func TestVehicleRepository_DeleteWithRecords(t *testing.T) {
	db := setupTestDB(t)
	repo := NewVehicleRepository(db)
	recordRepo := NewServiceRecordRepository(db)
	ctx := context.Background()

	owner := seedUser(t, db, "owner-1")
	vehicle := seedVehicle(t, db, owner.ID, "ABC123")
	keep := seedVehicle(t, db, owner.ID, "DEF456")
	seedRecord(t, db, vehicle.ID, "Oil change", time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC))
	seedRecord(t, db, vehicle.ID, "Tires", time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC))
	kept := seedRecord(t, db, keep.ID, "Oil change", time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC))

	err := repo.DeleteWithRecords(ctx, vehicle.ID)
	assert.NoError(t, err)

	_, err = repo.FindByIDAndUser(ctx, vehicle.ID, owner.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	var count int64
	assert.NoError(t, db.Model(&model.ServiceRecord{}).
		Where("vehicle_id = ?", vehicle.ID).Count(&count).Error)
	assert.Zero(t, count)

	// The sibling vehicle and its history are untouched
	exists, err := recordRepo.ExistsByID(ctx, kept.ID)
	assert.NoError(t, err)
	assert.True(t, exists)
}

func TestVehicleRepository_DeleteWithRecords_RollsBackOnFailure(t *testing.T) {
	db := setupTestDB(t)
	repo := NewVehicleRepository(db)
	ctx := context.Background()

	owner := seedUser(t, db, "owner-1")
	vehicle := seedVehicle(t, db, owner.ID, "ABC123")
	seedRecord(t, db, vehicle.ID, "Oil change", time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC))
	seedRecord(t, db, vehicle.ID, "Tires", time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC))

	// Fail the second half of the compound delete: the records go first,
	// then the vehicle delete errors inside the same transaction.
	err := db.Callback().Delete().Before("gorm:delete").Register("fail_vehicle_delete", func(tx *gorm.DB) {
		if tx.Statement.Table == "vehicles" {
			tx.AddError(goerrors.New("forced delete failure"))
		}
	})
	assert.NoError(t, err)

	err = repo.DeleteWithRecords(ctx, vehicle.ID)
	assert.Error(t, err)

	// Nothing was applied: the vehicle and both records survive
	stored, err := repo.FindByIDAndUser(ctx, vehicle.ID, owner.ID)
	assert.NoError(t, err)
	assert.Equal(t, "ABC123", stored.RegistrationNumber)

	var count int64
	assert.NoError(t, db.Model(&model.ServiceRecord{}).
		Where("vehicle_id = ?", vehicle.ID).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}
