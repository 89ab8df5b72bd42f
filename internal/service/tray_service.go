package service

import (
	"errors"
	"log/slog"
	"time"

	"microgreens-planner/internal/model"
	"microgreens-planner/internal/repository"

	"gorm.io/gorm"
)

var (
	// ErrTrayNotFound is returned when the tray does not exist
	ErrTrayNotFound = errors.New("tray not found")
	// ErrInvalidTransition is returned for any stage change outside the
	// fixed forward order (or composting a finished tray).
	ErrInvalidTransition = errors.New("invalid stage transition")
)

// TrayService owns every stage mutation. Advancing overwrites the tray's
// stage-start anchor; historical stage timestamps are not retained.
type TrayService interface {
	// Advance moves the tray one step forward through the growth
	// sequence and re-anchors its stage start to now.
	Advance(id uint) (*model.Tray, error)
	// Compost disposes of a tray from any active stage.
	Compost(id uint) (*model.Tray, error)
	// Harvest finishes a harvest-ready tray, recording the final yield
	// when one is given.
	Harvest(id uint, yieldGrams *float64) (*model.Tray, error)
}

// trayService implements TrayService
type trayService struct {
	trays  repository.TrayRepository
	logger *slog.Logger
}

// NewTrayService creates a new tray service
func NewTrayService(trays repository.TrayRepository, logger *slog.Logger) TrayService {
	return &trayService{trays: trays, logger: logger}
}

func (s *trayService) Advance(id uint) (*model.Tray, error) {
	tray, err := s.get(id)
	if err != nil {
		return nil, err
	}
	next, ok := tray.Stage.Next()
	if !ok {
		return nil, ErrInvalidTransition
	}

	tray.Stage = next
	tray.StartDate = time.Now()
	if err := s.trays.Update(tray); err != nil {
		return nil, err
	}

	s.logger.Info("tray advanced",
		"tray_id", tray.ID,
		"stage", tray.Stage,
	)
	return tray, nil
}

func (s *trayService) Compost(id uint) (*model.Tray, error) {
	tray, err := s.get(id)
	if err != nil {
		return nil, err
	}
	if !tray.Stage.CanCompost() {
		return nil, ErrInvalidTransition
	}

	tray.Stage = model.StageCompost
	tray.StartDate = time.Now()
	if err := s.trays.Update(tray); err != nil {
		return nil, err
	}

	s.logger.Info("tray composted", "tray_id", tray.ID)
	return tray, nil
}

func (s *trayService) Harvest(id uint, yieldGrams *float64) (*model.Tray, error) {
	tray, err := s.get(id)
	if err != nil {
		return nil, err
	}
	if tray.Stage != model.StageHarvestReady {
		return nil, ErrInvalidTransition
	}

	tray.Stage = model.StageHarvested
	tray.StartDate = time.Now()
	if yieldGrams != nil {
		tray.YieldGrams = yieldGrams
	}
	if err := s.trays.Update(tray); err != nil {
		return nil, err
	}

	s.logger.Info("tray harvested",
		"tray_id", tray.ID,
		"yield_grams", tray.YieldGrams,
	)
	return tray, nil
}

func (s *trayService) get(id uint) (*model.Tray, error) {
	tray, err := s.trays.Get(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTrayNotFound
		}
		return nil, err
	}
	return tray, nil
}
