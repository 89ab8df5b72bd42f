package service

import (
	"errors"
	"time"

	"microgreens-planner/internal/repository"
	"microgreens-planner/internal/schedule"

	"gorm.io/gorm"
)

// ErrCropNotFound is returned when a referenced crop type does not exist
var ErrCropNotFound = errors.New("crop type not found")

// PlannerService answers date-driven and target-driven planning questions
// for a single crop type.
type PlannerService interface {
	// HarvestPlan works backward from a target harvest date to a full
	// planting schedule.
	HarvestPlan(cropID uint, targetHarvestDate time.Time) (*schedule.HarvestPlan, error)
	// WeeklyPlan computes the recurring production routine needed to hit
	// a weekly yield target on the desired harvest weekday.
	WeeklyPlan(cropID uint, targetGrams float64, harvestWeekday time.Weekday) (*schedule.WeeklySchedule, error)
}

// plannerService implements PlannerService
type plannerService struct {
	crops repository.CropRepository
}

// NewPlannerService creates a new planner service
func NewPlannerService(crops repository.CropRepository) PlannerService {
	return &plannerService{crops: crops}
}

func (s *plannerService) HarvestPlan(cropID uint, targetHarvestDate time.Time) (*schedule.HarvestPlan, error) {
	crop, err := s.crops.Get(cropID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCropNotFound
		}
		return nil, err
	}
	return schedule.PlanEvent(crop, targetHarvestDate), nil
}

func (s *plannerService) WeeklyPlan(cropID uint, targetGrams float64, harvestWeekday time.Weekday) (*schedule.WeeklySchedule, error) {
	crop, err := s.crops.Get(cropID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCropNotFound
		}
		return nil, err
	}
	return schedule.PlanRecurring(crop, targetGrams, harvestWeekday, time.Now()), nil
}
