package repository

import (
	"fmt"
	"time"

	"microgreens-planner/internal/model"

	"gorm.io/gorm"
)

// SeedRepository handles database seeding operations
type SeedRepository struct {
	db *gorm.DB
}

// NewSeedRepository creates a new seed repository
func NewSeedRepository(db *gorm.DB) *SeedRepository {
	return &SeedRepository{db: db}
}

// SeedDatabase seeds the database with crop varieties, customers, trays
// in various stages and a few standing orders, so the schedule endpoints
// have something to show on a fresh install.
func (s *SeedRepository) SeedDatabase() error {
	if err := s.clearExistingData(); err != nil {
		return fmt.Errorf("failed to clear existing data: %w", err)
	}

	crops, err := s.createCrops()
	if err != nil {
		return fmt.Errorf("failed to create crop types: %w", err)
	}

	customers, err := s.createCustomers()
	if err != nil {
		return fmt.Errorf("failed to create customers: %w", err)
	}

	trays, err := s.createTrays(crops)
	if err != nil {
		return fmt.Errorf("failed to create trays: %w", err)
	}

	orders, err := s.createOrders(crops, customers)
	if err != nil {
		return fmt.Errorf("failed to create recurring orders: %w", err)
	}

	fmt.Printf("✓ Seeded database successfully:\n")
	fmt.Printf("  - Crop types: %d\n", len(crops))
	fmt.Printf("  - Customers: %d\n", len(customers))
	fmt.Printf("  - Trays: %d\n", len(trays))
	fmt.Printf("  - Recurring orders: %d\n", len(orders))

	return nil
}

// clearExistingData removes existing data
func (s *SeedRepository) clearExistingData() error {
	for _, table := range []string{"recurring_orders", "trays", "customers", "crop_types"} {
		if err := s.db.Exec("TRUNCATE TABLE " + table + " CASCADE").Error; err != nil {
			return err
		}
	}
	return nil
}

// createCrops creates a realistic set of microgreen varieties
func (s *SeedRepository) createCrops() ([]model.CropType, error) {
	crops := []model.CropType{
		{
			Name:            "Radish",
			SoakHours:       6,
			GerminationDays: 2,
			BlackoutDays:    2,
			LightDays:       4,
			YieldGrams:      280,
			SeedingRate:     30,
			SeedPackSmallGrams: 500, SeedPackSmallPrice: 7.50,
			SeedPackLargeGrams: 5000, SeedPackLargePrice: 48.00,
			RevenuePer100g: 5.50,
		},
		{
			Name:            "Pea Shoots",
			SoakHours:       12,
			GerminationDays: 3,
			BlackoutDays:    3,
			LightDays:       7,
			YieldGrams:      400,
			SeedingRate:     200,
			SeedPackSmallGrams: 1000, SeedPackSmallPrice: 6.00,
			SeedPackLargeGrams: 25000, SeedPackLargePrice: 90.00,
			RevenuePer100g: 4.00,
		},
		{
			Name:            "Sunflower",
			SoakHours:       8,
			GerminationDays: 2,
			BlackoutDays:    3,
			LightDays:       5,
			YieldGrams:      350,
			SeedingRate:     120,
			SeedPackSmallGrams: 1000, SeedPackSmallPrice: 8.00,
			RevenuePer100g: 6.00,
		},
		{
			Name:            "Broccoli",
			SoakHours:       0,
			GerminationDays: 3,
			BlackoutDays:    3,
			LightDays:       7,
			YieldGrams:      250,
			SeedingRate:     25,
			SeedPackSmallGrams: 250, SeedPackSmallPrice: 9.50,
			SeedPackLargeGrams: 2500, SeedPackLargePrice: 68.00,
			RevenuePer100g: 8.00,
		},
	}

	if err := s.db.Create(&crops).Error; err != nil {
		return nil, err
	}
	return crops, nil
}

// createCustomers creates sample customers
func (s *SeedRepository) createCustomers() ([]model.Customer, error) {
	customers := []model.Customer{
		{Name: "Green Fork Bistro", Contact: "orders@greenfork.example"},
		{Name: "Market Hall Stand 12", Contact: "+49 170 0000000"},
		{Name: "Luca's Deli", Contact: "luca@delis.example"},
	}

	if err := s.db.Create(&customers).Error; err != nil {
		return nil, err
	}
	return customers, nil
}

// createTrays creates trays spread over the growing stages, including one
// half-half tray, with stage start dates in the recent past so countdowns
// and transitions are live.
func (s *SeedRepository) createTrays(crops []model.CropType) ([]model.Tray, error) {
	now := time.Now()
	secondID := crops[2].ID

	trays := []model.Tray{
		{
			CropTypeID: crops[0].ID,
			Stage:      model.StageGermination,
			StartDate:  now.AddDate(0, 0, -1),
			PlantedAt:  now.AddDate(0, 0, -1),
			Location:   "Rack A1",
		},
		{
			CropTypeID: crops[1].ID,
			Stage:      model.StageBlackout,
			StartDate:  now.AddDate(0, 0, -2),
			PlantedAt:  now.AddDate(0, 0, -5),
			Location:   "Rack A2",
		},
		{
			CropTypeID:       crops[0].ID,
			SecondCropTypeID: &secondID,
			Stage:            model.StageLight,
			StartDate:        now.AddDate(0, 0, -3),
			PlantedAt:        now.AddDate(0, 0, -7),
			Location:         "Rack B1",
			Notes:            "half radish, half sunflower",
		},
		{
			CropTypeID: crops[2].ID,
			Stage:      model.StageSoak,
			StartDate:  now.Add(-2 * time.Hour),
			PlantedAt:  now.Add(-2 * time.Hour),
			Location:   "Soak station",
		},
		{
			CropTypeID: crops[1].ID,
			Stage:      model.StageHarvestReady,
			StartDate:  now.AddDate(0, 0, -8),
			PlantedAt:  now.AddDate(0, 0, -13),
			Location:   "Rack B2",
		},
	}

	if err := s.db.Create(&trays).Error; err != nil {
		return nil, err
	}
	return trays, nil
}

// createOrders creates standing weekly orders
func (s *SeedRepository) createOrders(crops []model.CropType, customers []model.Customer) ([]model.RecurringOrder, error) {
	orders := []model.RecurringOrder{
		{CustomerID: customers[0].ID, CropTypeID: crops[0].ID, AmountGrams: 500, DueWeekday: time.Friday},
		{CustomerID: customers[1].ID, CropTypeID: crops[1].ID, AmountGrams: 1000, DueWeekday: time.Saturday},
		{CustomerID: customers[2].ID, CropTypeID: crops[3].ID, AmountGrams: 300, DueWeekday: time.Wednesday},
	}

	if err := s.db.Create(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}
