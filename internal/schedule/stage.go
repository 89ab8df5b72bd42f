// Package schedule implements the growing-cycle scheduling and planning
// engine: stage duration lookup, time projection, the backward planner,
// the recurring weekly planner and the calendar task aggregator.
//
// Everything in this package is a pure, synchronous computation over
// in-memory snapshots of crop, tray and order records plus a caller
// supplied clock value. The package never performs I/O and never
// mutates the records it is handed.
package schedule

import (
	"fmt"
	"time"

	"microgreens-planner/internal/model"
)

const hoursPerDay = 24

// StageDurationHours returns how long the given stage lasts for the crop,
// in hours. Day-valued durations are converted to hours. Seed is always
// treated as instantaneous, and stages at or past HarvestReady have no
// next duration. An unrecognized stage is a programmer error and panics.
func StageDurationHours(stage model.Stage, crop model.CropType) float64 {
	switch stage {
	case model.StageSeed:
		return 0
	case model.StageSoak:
		return crop.SoakHours
	case model.StageGermination:
		return float64(crop.GerminationDays) * hoursPerDay
	case model.StageBlackout:
		return float64(crop.BlackoutDays) * hoursPerDay
	case model.StageLight:
		return float64(crop.LightDays) * hoursPerDay
	case model.StageHarvestReady, model.StageHarvested, model.StageCompost:
		return 0
	}
	panic(fmt.Sprintf("schedule: unknown stage %q", stage))
}

// StageDurationDays returns the whole-day duration of the calendar
// granular stages. Soak is hour-granular and reports 0 here.
func StageDurationDays(stage model.Stage, crop model.CropType) int {
	switch stage {
	case model.StageGermination:
		return crop.GerminationDays
	case model.StageBlackout:
		return crop.BlackoutDays
	case model.StageLight:
		return crop.LightDays
	}
	return 0
}

// dayOf truncates a timestamp to its calendar day. All day arithmetic in
// this package goes through AddDate on these values so that adding one
// day always lands on the next calendar date regardless of DST.
func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// sameDay reports whether two timestamps fall on the same calendar day
func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
