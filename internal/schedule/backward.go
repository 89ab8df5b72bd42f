package schedule

import (
	"time"

	"microgreens-planner/internal/model"
)

// HarvestPlan is a full planting schedule derived from a desired harvest
// date: when to plant and when each day-granular milestone falls.
type HarvestPlan struct {
	PlantDate          time.Time `json:"plant_date"`
	GerminationEndDate time.Time `json:"germination_end_date"`
	BlackoutEndDate    time.Time `json:"blackout_end_date"`
	HarvestDate        time.Time `json:"harvest_date"`
}

// PlanEvent works backward from a target harvest date through the crop's
// stage durations. It answers "if I wanted to harvest on date D, when
// would I need to have planted", independent of anything currently
// growing. All arithmetic is on whole calendar days; soak is excluded
// from the backward walk because it is hour-granular and typically
// same-day. A crop with all-zero durations plants on the harvest date
// itself. Returns nil when either input is missing.
func PlanEvent(crop *model.CropType, targetHarvestDate time.Time) *HarvestPlan {
	if crop == nil || targetHarvestDate.IsZero() {
		return nil
	}

	harvest := dayOf(targetHarvestDate)
	plant := harvest.AddDate(0, 0, -crop.TotalGrowingDays())
	germEnd := plant.AddDate(0, 0, crop.GerminationDays)
	blackoutEnd := germEnd.AddDate(0, 0, crop.BlackoutDays)

	return &HarvestPlan{
		PlantDate:          plant,
		GerminationEndDate: germEnd,
		BlackoutEndDate:    blackoutEnd,
		HarvestDate:        harvest,
	}
}
