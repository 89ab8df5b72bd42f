package service

import (
	"fmt"
	"log/slog"
	"time"

	"microgreens-planner/internal/repository"
	"microgreens-planner/internal/schedule"
)

// CalendarService builds the rolling multi-day task calendar from a
// fresh snapshot of the record store.
type CalendarService interface {
	Calendar(windowDays int) ([]schedule.DaySchedule, error)
}

// calendarService implements CalendarService
type calendarService struct {
	trays     repository.TrayRepository
	crops     repository.CropRepository
	customers repository.CustomerRepository
	orders    repository.OrderRepository
	alerts    schedule.AlertProvider
	logger    *slog.Logger
}

// NewCalendarService creates a new calendar service
func NewCalendarService(
	trays repository.TrayRepository,
	crops repository.CropRepository,
	customers repository.CustomerRepository,
	orders repository.OrderRepository,
	alerts schedule.AlertProvider,
	logger *slog.Logger,
) CalendarService {
	return &calendarService{
		trays:     trays,
		crops:     crops,
		customers: customers,
		orders:    orders,
		alerts:    alerts,
		logger:    logger,
	}
}

// Calendar snapshots all collections, captures a single now and hands
// everything to the pure aggregator. The engine holds no state between
// calls; callers re-invoke this on every refresh.
func (s *calendarService) Calendar(windowDays int) ([]schedule.DaySchedule, error) {
	trays, err := s.trays.ListActive()
	if err != nil {
		return nil, fmt.Errorf("failed to load active trays: %w", err)
	}
	crops, err := s.crops.List()
	if err != nil {
		return nil, fmt.Errorf("failed to load crop types: %w", err)
	}
	customers, err := s.customers.List()
	if err != nil {
		return nil, fmt.Errorf("failed to load customers: %w", err)
	}
	orders, err := s.orders.List()
	if err != nil {
		return nil, fmt.Errorf("failed to load recurring orders: %w", err)
	}

	return schedule.BuildCalendar(schedule.CalendarInput{
		Trays:      trays,
		Crops:      crops,
		Orders:     orders,
		Customers:  customers,
		Now:        time.Now(),
		WindowDays: windowDays,
		Alerts:     s.alerts,
		Logger:     s.logger,
	}), nil
}
