package schedule

import (
	"math"
	"testing"
	"time"

	"microgreens-planner/internal/model"
)

// TestPlantWeekday tests the modulo-7 weekday back-projection
func TestPlantWeekday(t *testing.T) {
	tests := []struct {
		name     string
		harvest  time.Weekday
		total    int
		expected time.Weekday
	}{
		{name: "13-day cycle harvesting Friday plants Saturday", harvest: time.Friday, total: 13, expected: time.Saturday},
		{name: "7-day cycle plants on the harvest weekday", harvest: time.Monday, total: 7, expected: time.Monday},
		{name: "zero-length cycle plants on the harvest weekday", harvest: time.Wednesday, total: 0, expected: time.Wednesday},
		{name: "11-day cycle harvesting Sunday plants Wednesday", harvest: time.Sunday, total: 11, expected: time.Wednesday},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PlantWeekday(tt.harvest, tt.total); got != tt.expected {
				t.Errorf("PlantWeekday(%v, %d) = %v, expected %v", tt.harvest, tt.total, got, tt.expected)
			}
		})
	}
}

// TestPlantWeekdayPeriodicity verifies (plantWeekday + totalDays) mod 7
// always lands back on the harvest weekday.
func TestPlantWeekdayPeriodicity(t *testing.T) {
	for total := 0; total <= 28; total++ {
		for wd := time.Sunday; wd <= time.Saturday; wd++ {
			plant := PlantWeekday(wd, total)
			if back := time.Weekday((int(plant) + total) % 7); back != wd {
				t.Errorf("total=%d harvest=%v: plant=%v walks forward to %v", total, wd, plant, back)
			}
		}
	}
}

// TestPlanRecurring tests the weekly production planner
func TestPlanRecurring(t *testing.T) {
	now := time.Date(2026, 1, 6, 9, 0, 0, 0, time.UTC) // a Tuesday
	crop := &model.CropType{
		Name:            "Pea Shoots",
		GerminationDays: 3,
		BlackoutDays:    3,
		LightDays:       7, // total 13
		YieldGrams:      250,
		SeedingRate:     25,
		SeedPackSmallGrams: 500, SeedPackSmallPrice: 10,
		SeedPackLargeGrams: 1000, SeedPackLargePrice: 10,
		RevenuePer100g: 8,
	}

	plan := PlanRecurring(crop, 1000, time.Friday, now)
	if plan == nil {
		t.Fatal("expected a schedule, got nil")
	}

	if plan.TraysPerWeek != 4 {
		t.Errorf("TraysPerWeek = %d, expected 4", plan.TraysPerWeek)
	}
	if plan.TotalGrowingDays != 13 {
		t.Errorf("TotalGrowingDays = %d, expected 13", plan.TotalGrowingDays)
	}
	if plan.PlantWeekday != time.Saturday {
		t.Errorf("PlantWeekday = %v, expected Saturday", plan.PlantWeekday)
	}
	// plant Saturday + 3 germination days = Tuesday; + 3 blackout days = Friday
	if plan.BlackoutWeekday != time.Tuesday {
		t.Errorf("BlackoutWeekday = %v, expected Tuesday", plan.BlackoutWeekday)
	}
	if plan.LightWeekday != time.Friday {
		t.Errorf("LightWeekday = %v, expected Friday", plan.LightWeekday)
	}
	if plan.HarvestWeekday != time.Friday {
		t.Errorf("HarvestWeekday = %v, expected Friday", plan.HarvestWeekday)
	}
	if plan.ShelfTrays != 4 { // ceil(7/7) = 1 light batch
		t.Errorf("ShelfTrays = %d, expected 4", plan.ShelfTrays)
	}

	if plan.SeedGramsPerWeek != 100 {
		t.Errorf("SeedGramsPerWeek = %f, expected 100", plan.SeedGramsPerWeek)
	}
	// bulk pack: 10 EUR per 1000g -> 0.01 per gram
	if math.Abs(plan.SeedCostPerWeek-1.0) > 1e-9 {
		t.Errorf("SeedCostPerWeek = %f, expected 1.0", plan.SeedCostPerWeek)
	}
	if math.Abs(plan.RevenuePerWeek-80) > 1e-9 {
		t.Errorf("RevenuePerWeek = %f, expected 80", plan.RevenuePerWeek)
	}
	if math.Abs(plan.ProfitPerWeek-79) > 1e-9 {
		t.Errorf("ProfitPerWeek = %f, expected 79", plan.ProfitPerWeek)
	}

	if len(plan.UpcomingPlantings) != 4 {
		t.Fatalf("UpcomingPlantings length = %d, expected 4", len(plan.UpcomingPlantings))
	}
	firstPlant := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC) // next Saturday on or after the Tuesday
	for i, cycle := range plan.UpcomingPlantings {
		wantPlant := firstPlant.AddDate(0, 0, 7*i)
		if !cycle.PlantDate.Equal(wantPlant) {
			t.Errorf("planting %d = %v, expected %v", i, cycle.PlantDate, wantPlant)
		}
		if want := wantPlant.AddDate(0, 0, 13); !cycle.HarvestDate.Equal(want) {
			t.Errorf("harvest %d = %v, expected %v", i, cycle.HarvestDate, want)
		}
	}
}

// TestPlanRecurringDefaults tests fallbacks for unset crop data
func TestPlanRecurringDefaults(t *testing.T) {
	now := time.Date(2026, 1, 6, 9, 0, 0, 0, time.UTC)

	t.Run("zero yield is treated as one gram per tray", func(t *testing.T) {
		plan := PlanRecurring(&model.CropType{}, 10, time.Monday, now)
		if plan == nil {
			t.Fatal("expected a schedule, got nil")
		}
		if plan.TraysPerWeek != 10 {
			t.Errorf("TraysPerWeek = %d, expected 10", plan.TraysPerWeek)
		}
	})

	t.Run("no seed prices means zero cost", func(t *testing.T) {
		plan := PlanRecurring(&model.CropType{YieldGrams: 100, SeedingRate: 20}, 200, time.Monday, now)
		if plan == nil {
			t.Fatal("expected a schedule, got nil")
		}
		if plan.SeedCostPerWeek != 0 {
			t.Errorf("SeedCostPerWeek = %f, expected 0", plan.SeedCostPerWeek)
		}
	})

	t.Run("unset revenue defaults to 6 per 100g", func(t *testing.T) {
		plan := PlanRecurring(&model.CropType{YieldGrams: 100}, 200, time.Monday, now)
		if plan == nil {
			t.Fatal("expected a schedule, got nil")
		}
		if math.Abs(plan.RevenuePerWeek-12) > 1e-9 {
			t.Errorf("RevenuePerWeek = %f, expected 12", plan.RevenuePerWeek)
		}
	})

	t.Run("light stage over a week stacks shelf batches", func(t *testing.T) {
		plan := PlanRecurring(&model.CropType{YieldGrams: 250, LightDays: 8}, 500, time.Monday, now)
		if plan == nil {
			t.Fatal("expected a schedule, got nil")
		}
		if plan.ShelfTrays != 4 { // 2 trays x ceil(8/7) batches
			t.Errorf("ShelfTrays = %d, expected 4", plan.ShelfTrays)
		}
	})
}

// TestPlanRecurringInvalidTargets verifies malformed targets yield no plan
func TestPlanRecurringInvalidTargets(t *testing.T) {
	now := time.Now()
	crop := &model.CropType{YieldGrams: 250}

	if PlanRecurring(nil, 1000, time.Friday, now) != nil {
		t.Error("expected nil schedule for missing crop")
	}
	if PlanRecurring(crop, 0, time.Friday, now) != nil {
		t.Error("expected nil schedule for zero target")
	}
	if PlanRecurring(crop, -50, time.Friday, now) != nil {
		t.Error("expected nil schedule for negative target")
	}
	if PlanRecurring(crop, math.NaN(), time.Friday, now) != nil {
		t.Error("expected nil schedule for NaN target")
	}
}

// TestNextOccurrence tests the shared weekday walk
func TestNextOccurrence(t *testing.T) {
	tuesday := time.Date(2026, 1, 6, 15, 0, 0, 0, time.UTC)

	if got := NextOccurrence(tuesday, time.Tuesday); !got.Equal(time.Date(2026, 1, 6, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("same weekday must resolve to today, got %v", got)
	}
	if got := NextOccurrence(tuesday, time.Monday); !got.Equal(time.Date(2026, 1, 12, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("NextOccurrence Monday = %v, expected 2026-01-12", got)
	}
}
