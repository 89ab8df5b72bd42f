package schedule

import (
	"math"
	"time"

	"microgreens-planner/internal/model"
)

const (
	// defaultRevenuePer100g is assumed when a crop has no configured
	// revenue (EUR per 100g harvested).
	defaultRevenuePer100g = 6.0

	// upcomingPlantingCount is how many future planting dates a weekly
	// schedule projects.
	upcomingPlantingCount = 4
)

// PlannedCycle pairs one planting date with its projected harvest date
type PlannedCycle struct {
	PlantDate   time.Time `json:"plant_date"`
	HarvestDate time.Time `json:"harvest_date"`
}

// WeeklySchedule describes a standing weekly production routine for one
// crop: how many trays to sow per cycle, which weekdays the milestones
// fall on, how much shelf space the routine occupies at steady state,
// and the recurring financial estimates.
type WeeklySchedule struct {
	TraysPerWeek     int `json:"trays_per_week"`
	TotalGrowingDays int `json:"total_growing_days"`

	PlantWeekday    time.Weekday `json:"plant_weekday"`
	BlackoutWeekday time.Weekday `json:"blackout_weekday"`
	LightWeekday    time.Weekday `json:"light_weekday"`
	HarvestWeekday  time.Weekday `json:"harvest_weekday"`

	// ShelfTrays is the number of trays simultaneously occupying light
	// stage space if the routine runs indefinitely.
	ShelfTrays int `json:"shelf_trays"`

	SeedGramsPerWeek float64 `json:"seed_grams_per_week"`
	SeedCostPerWeek  float64 `json:"seed_cost_per_week"`
	RevenuePerWeek   float64 `json:"revenue_per_week"`
	ProfitPerWeek    float64 `json:"profit_per_week"`

	UpcomingPlantings []PlannedCycle `json:"upcoming_plantings"`
}

// PlantWeekday maps a desired harvest weekday to the weekday one must
// plant on, assuming the grow cycle repeats on a 7-day cadence regardless
// of its absolute day count. An 11-day cycle still produces a single
// well-defined weekly planting weekday.
func PlantWeekday(harvestWeekday time.Weekday, totalGrowingDays int) time.Weekday {
	return time.Weekday(((int(harvestWeekday)-totalGrowingDays%7)%7 + 7) % 7)
}

// NextOccurrence returns the first calendar day on or after from that
// falls on the given weekday.
func NextOccurrence(from time.Time, weekday time.Weekday) time.Time {
	day := dayOf(from)
	offset := (int(weekday) - int(day.Weekday()) + 7) % 7
	return day.AddDate(0, 0, offset)
}

// PlanRecurring computes the weekly production schedule needed to hit a
// weekly yield target with harvests landing on the desired weekday.
// Returns nil when the crop is missing or the target is not a positive
// number. Other input costs than seed are out of scope for the profit
// estimate.
func PlanRecurring(crop *model.CropType, weeklyTargetGrams float64, harvestWeekday time.Weekday, now time.Time) *WeeklySchedule {
	if crop == nil || math.IsNaN(weeklyTargetGrams) || weeklyTargetGrams <= 0 {
		return nil
	}

	yieldPerTray := crop.YieldGrams
	if yieldPerTray < 1 {
		yieldPerTray = 1
	}
	trays := int(math.Ceil(weeklyTargetGrams / yieldPerTray))

	total := crop.TotalGrowingDays()
	plantWd := PlantWeekday(harvestWeekday, total)
	blackoutWd := time.Weekday((int(plantWd) + crop.GerminationDays%7) % 7)
	lightWd := time.Weekday((int(plantWd) + (crop.GerminationDays+crop.BlackoutDays)%7) % 7)

	// Cycles whose light stage exceeds one week stack batches on the shelf
	lightBatches := int(math.Ceil(float64(crop.LightDays) / 7))

	seedGrams := float64(trays) * crop.SeedingRate
	seedCost := seedGrams * seedCostPerGram(*crop)

	revenuePer100 := crop.RevenuePer100g
	if revenuePer100 <= 0 {
		revenuePer100 = defaultRevenuePer100g
	}
	revenue := weeklyTargetGrams / 100 * revenuePer100

	first := NextOccurrence(now, plantWd)
	plantings := make([]PlannedCycle, 0, upcomingPlantingCount)
	for i := 0; i < upcomingPlantingCount; i++ {
		plant := first.AddDate(0, 0, 7*i)
		plantings = append(plantings, PlannedCycle{
			PlantDate:   plant,
			HarvestDate: plant.AddDate(0, 0, total),
		})
	}

	return &WeeklySchedule{
		TraysPerWeek:      trays,
		TotalGrowingDays:  total,
		PlantWeekday:      plantWd,
		BlackoutWeekday:   blackoutWd,
		LightWeekday:      lightWd,
		HarvestWeekday:    harvestWeekday,
		ShelfTrays:        lightBatches * trays,
		SeedGramsPerWeek:  seedGrams,
		SeedCostPerWeek:   seedCost,
		RevenuePerWeek:    revenue,
		ProfitPerWeek:     revenue - seedCost,
		UpcomingPlantings: plantings,
	}
}
