package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"microgreens-planner/internal/database"
	"microgreens-planner/internal/model"
)

// openTestDB spins up an in-memory sqlite database with the full schema
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared&_foreign_keys=1"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func seedCrop(t *testing.T, db *gorm.DB, name string) *model.CropType {
	t.Helper()
	crop := &model.CropType{
		Name:            name,
		GerminationDays: 3,
		BlackoutDays:    2,
		LightDays:       5,
		YieldGrams:      250,
		SeedingRate:     25,
	}
	require.NoError(t, NewCropRepository(db).Create(crop))
	return crop
}

func TestCropRepositoryCRUD(t *testing.T) {
	db := openTestDB(t)
	repo := NewCropRepository(db)

	crop := seedCrop(t, db, "Radish")
	assert.NotZero(t, crop.ID)

	got, err := repo.Get(crop.ID)
	require.NoError(t, err)
	assert.Equal(t, "Radish", got.Name)
	assert.Equal(t, 10, got.TotalGrowingDays())

	got.LightDays = 7
	require.NoError(t, repo.Update(got))
	updated, err := repo.Get(crop.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, updated.LightDays)

	require.NoError(t, repo.Delete(crop.ID))
	_, err = repo.Get(crop.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestCropRepositoryListOrdering(t *testing.T) {
	db := openTestDB(t)
	repo := NewCropRepository(db)

	seedCrop(t, db, "Sunflower")
	seedCrop(t, db, "Broccoli")
	seedCrop(t, db, "Pea Shoots")

	crops, err := repo.List()
	require.NoError(t, err)
	require.Len(t, crops, 3)
	assert.Equal(t, "Broccoli", crops[0].Name)
	assert.Equal(t, "Pea Shoots", crops[1].Name)
	assert.Equal(t, "Sunflower", crops[2].Name)
}

func TestTrayCreateDefaults(t *testing.T) {
	db := openTestDB(t)
	crop := seedCrop(t, db, "Radish")
	repo := NewTrayRepository(db)

	tray := &model.Tray{CropTypeID: crop.ID}
	require.NoError(t, repo.Create(tray))

	got, err := repo.Get(tray.ID)
	require.NoError(t, err)
	assert.Len(t, got.BatchCode, 36, "batch code must be a generated uuid")
	assert.Equal(t, model.StageSeed, got.Stage)
	assert.False(t, got.StartDate.IsZero())
	assert.Equal(t, got.StartDate.Unix(), got.PlantedAt.Unix())
	assert.Equal(t, "Radish", got.CropType.Name, "crop must be preloaded")
}

func TestTrayCreateKeepsExplicitValues(t *testing.T) {
	db := openTestDB(t)
	crop := seedCrop(t, db, "Radish")
	repo := NewTrayRepository(db)

	start := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	tray := &model.Tray{
		CropTypeID: crop.ID,
		BatchCode:  "batch-007",
		Stage:      model.StageBlackout,
		StartDate:  start,
		PlantedAt:  start.AddDate(0, 0, -3),
	}
	require.NoError(t, repo.Create(tray))

	got, err := repo.Get(tray.ID)
	require.NoError(t, err)
	assert.Equal(t, "batch-007", got.BatchCode)
	assert.Equal(t, model.StageBlackout, got.Stage)
	assert.Equal(t, start.Unix(), got.StartDate.Unix())
}

func TestTrayListActive(t *testing.T) {
	db := openTestDB(t)
	crop := seedCrop(t, db, "Radish")
	second := seedCrop(t, db, "Sunflower")
	repo := NewTrayRepository(db)

	stages := []model.Stage{
		model.StageSeed,
		model.StageGermination,
		model.StageHarvestReady,
		model.StageHarvested,
		model.StageCompost,
	}
	for i, stage := range stages {
		tray := &model.Tray{
			CropTypeID: crop.ID,
			Stage:      stage,
			StartDate:  time.Date(2026, 3, 1+i, 0, 0, 0, 0, time.UTC),
		}
		if stage == model.StageGermination {
			tray.SecondCropTypeID = &second.ID
		}
		require.NoError(t, repo.Create(tray))
	}

	all, err := repo.List()
	require.NoError(t, err)
	assert.Len(t, all, 5)

	active, err := repo.ListActive()
	require.NoError(t, err)
	require.Len(t, active, 3)
	for _, tray := range active {
		assert.NotEqual(t, model.StageHarvested, tray.Stage)
		assert.NotEqual(t, model.StageCompost, tray.Stage)
	}

	// ordered by stage start, oldest first
	assert.Equal(t, model.StageSeed, active[0].Stage)
	assert.True(t, active[1].HalfHalf())
	require.NotNil(t, active[1].SecondCropType)
	assert.Equal(t, "Sunflower", active[1].SecondCropType.Name, "second crop must be preloaded")
}

func TestOrderRepositoryPreloads(t *testing.T) {
	db := openTestDB(t)
	crop := seedCrop(t, db, "Pea Shoots")

	customerRepo := NewCustomerRepository(db)
	customer := &model.Customer{Name: "Green Fork Bistro", Contact: "orders@greenfork.example"}
	require.NoError(t, customerRepo.Create(customer))

	orderRepo := NewOrderRepository(db)
	require.NoError(t, orderRepo.Create(&model.RecurringOrder{
		CustomerID:  customer.ID,
		CropTypeID:  crop.ID,
		AmountGrams: 500,
		DueWeekday:  time.Friday,
	}))
	require.NoError(t, orderRepo.Create(&model.RecurringOrder{
		CustomerID:  customer.ID,
		CropTypeID:  crop.ID,
		AmountGrams: 300,
		DueWeekday:  time.Tuesday,
	}))

	orders, err := orderRepo.List()
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, time.Tuesday, orders[0].DueWeekday, "orders listed by weekday")
	assert.Equal(t, "Green Fork Bistro", orders[0].Customer.Name)
	assert.Equal(t, "Pea Shoots", orders[0].CropType.Name)

	got, err := customerRepo.Get(customer.ID)
	require.NoError(t, err)
	assert.Len(t, got.Orders, 2, "customer orders must be preloaded")

	require.NoError(t, orderRepo.Delete(orders[0].ID))
	remaining, err := orderRepo.List()
	require.NoError(t, err)
	assert.Len(t, remaining, 1)
}
