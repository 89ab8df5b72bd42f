package schedule

import (
	"fmt"
	"log/slog"
	"math"
	"time"

	"microgreens-planner/internal/model"
)

// AlertLevel classifies how pressing an alert is
type AlertLevel string

const (
	AlertUrgent  AlertLevel = "urgent"
	AlertWarning AlertLevel = "warning"
	AlertRoutine AlertLevel = "routine"
)

// Alert is an already-computed notice about one of today's trays,
// produced by an external provider. The aggregator treats its contents
// as opaque and does not second-guess the classification.
type Alert struct {
	Level   AlertLevel `json:"level"`
	Title   string     `json:"title"`
	Message string     `json:"message"`
	TrayID  *uint      `json:"tray_id,omitempty"`
}

// AlertProvider supplies today's most pressing tray issues. The
// aggregator delegates day-0 urgency to it and only computes future
// transitions itself.
type AlertProvider interface {
	TodayAlerts(trays []model.Tray, crops map[uint]model.CropType, now time.Time) []Alert
}

// TaskKind is the closed set of task categories a day can carry
type TaskKind string

const (
	TaskAlert           TaskKind = "alert"
	TaskStageTransition TaskKind = "stage_transition"
	TaskOrderDelivery   TaskKind = "order_delivery"
	TaskPlanting        TaskKind = "planting"
)

// Task is one actionable item on a day's schedule, tagged by Kind.
// Fields beyond Title/Detail are populated per kind: Level for alerts,
// Countdown and YieldGrams for stage transitions, CustomerName and
// AmountGrams for deliveries, TrayCount for plantings.
type Task struct {
	Kind   TaskKind   `json:"kind"`
	Title  string     `json:"title"`
	Detail string     `json:"detail,omitempty"`
	Level  AlertLevel `json:"level,omitempty"`

	TrayID   *uint  `json:"tray_id,omitempty"`
	CropName string `json:"crop_name,omitempty"`

	Countdown  *Countdown `json:"countdown,omitempty"`
	YieldGrams float64    `json:"yield_grams,omitempty"`

	CustomerName string  `json:"customer_name,omitempty"`
	AmountGrams  float64 `json:"amount_grams,omitempty"`

	TrayCount int `json:"tray_count,omitempty"`
}

// DaySchedule is the ordered task list for one calendar day
type DaySchedule struct {
	Date    time.Time    `json:"date"`
	Weekday time.Weekday `json:"weekday"`
	Tasks   []Task       `json:"tasks"`
}

// CalendarInput is the full snapshot a calendar build runs over. Now is
// captured once by the caller and reused for every comparison within the
// pass so two trays never see different wall-clock times.
type CalendarInput struct {
	Trays     []model.Tray
	Crops     []model.CropType
	Orders    []model.RecurringOrder
	Customers []model.Customer

	Now        time.Time
	WindowDays int

	Alerts AlertProvider
	Logger *slog.Logger
}

// BuildCalendar merges today's alerts, projected stage transitions,
// recurring order deliveries and reverse-engineered planting tasks into
// exactly WindowDays day schedules beginning at the current day.
//
// Within a day, tasks appear in insertion order: alerts, then stage
// transitions, then deliveries, then plantings. A fault while building a
// single day is logged and that day contributes a partial result instead
// of aborting the remaining days.
func BuildCalendar(in CalendarInput) []DaySchedule {
	if in.WindowDays <= 0 {
		return []DaySchedule{}
	}
	logger := in.Logger
	if logger == nil {
		logger = slog.Default()
	}

	crops := make(map[uint]model.CropType, len(in.Crops))
	for _, c := range in.Crops {
		crops[c.ID] = c
	}
	customers := make(map[uint]model.Customer, len(in.Customers))
	for _, c := range in.Customers {
		customers[c.ID] = c
	}

	today := dayOf(in.Now)
	days := make([]DaySchedule, 0, in.WindowDays)
	for i := 0; i < in.WindowDays; i++ {
		date := today.AddDate(0, 0, i)
		days = append(days, DaySchedule{
			Date:    date,
			Weekday: date.Weekday(),
			Tasks:   buildDayTasks(in, crops, customers, date, i, logger),
		})
	}
	return days
}

// buildDayTasks assembles one day's task list. The deferred recover
// keeps a single bad record from blanking the whole schedule; whatever
// was collected before the fault is kept.
func buildDayTasks(in CalendarInput, crops map[uint]model.CropType, customers map[uint]model.Customer, date time.Time, offset int, logger *slog.Logger) (tasks []Task) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("day schedule aggregation failed",
				"date", date.Format("2006-01-02"),
				"panic", r,
			)
		}
	}()

	tasks = []Task{}

	// Today's urgency is the alert provider's call, not ours. Track which
	// trays it flagged so their transitions are not shown twice under two
	// different treatments.
	alerted := make(map[uint]bool)
	if offset == 0 && in.Alerts != nil {
		for _, a := range in.Alerts.TodayAlerts(in.Trays, crops, in.Now) {
			tasks = append(tasks, Task{
				Kind:   TaskAlert,
				Title:  a.Title,
				Detail: a.Message,
				Level:  a.Level,
				TrayID: a.TrayID,
			})
			if a.TrayID != nil {
				alerted[*a.TrayID] = true
			}
		}
	}

	tasks = append(tasks, stageTransitionTasks(in, crops, date, offset, alerted)...)

	for _, order := range in.Orders {
		if order.DueWeekday != date.Weekday() {
			continue
		}
		crop, ok := crops[order.CropTypeID]
		if !ok {
			continue
		}
		customer, ok := customers[order.CustomerID]
		if !ok {
			continue
		}
		tasks = append(tasks, Task{
			Kind:         TaskOrderDelivery,
			Title:        fmt.Sprintf("Deliver %.0fg %s to %s", order.AmountGrams, crop.Name, customer.Name),
			CropName:     crop.Name,
			CustomerName: customer.Name,
			AmountGrams:  order.AmountGrams,
		})
	}

	for _, order := range in.Orders {
		crop, ok := crops[order.CropTypeID]
		if !ok {
			continue
		}
		if PlantWeekday(order.DueWeekday, crop.TotalGrowingDays()) != date.Weekday() {
			continue
		}
		yieldPerTray := crop.YieldGrams
		if yieldPerTray < 1 {
			yieldPerTray = 1
		}
		count := int(math.Ceil(order.AmountGrams / yieldPerTray))
		tasks = append(tasks, Task{
			Kind:      TaskPlanting,
			Title:     fmt.Sprintf("Plant %d trays of %s", count, crop.Name),
			CropName:  crop.Name,
			TrayCount: count,
		})
	}

	return tasks
}

// stageTransitionTasks emits a task for every active tray whose current
// day-granular stage ends on the rendered day. Soak transitions are
// never projected onto future days; their sub-day timing belongs to the
// day-0 alert provider.
func stageTransitionTasks(in CalendarInput, crops map[uint]model.CropType, date time.Time, offset int, alerted map[uint]bool) []Task {
	var tasks []Task
	for _, tray := range in.Trays {
		if !tray.Stage.Active() {
			continue
		}
		switch tray.Stage {
		case model.StageGermination, model.StageBlackout, model.StageLight:
		default:
			continue
		}
		crop, ok := crops[tray.CropTypeID]
		if !ok || tray.StartDate.IsZero() {
			continue
		}
		stageEnd := dayOf(tray.StartDate).AddDate(0, 0, StageDurationDays(tray.Stage, crop))
		if !sameDay(stageEnd, date) {
			continue
		}
		if offset == 0 && alerted[tray.ID] {
			continue
		}

		var second *model.CropType
		if tray.SecondCropTypeID != nil {
			if sc, ok := crops[*tray.SecondCropTypeID]; ok {
				second = &sc
			}
		}
		name := DisplayName(crop, second)
		countdown := TimeToNextStage(tray, crop, in.Now)
		trayID := tray.ID

		task := Task{
			Kind:      TaskStageTransition,
			TrayID:    &trayID,
			CropName:  name,
			Countdown: &countdown,
		}
		switch tray.Stage {
		case model.StageGermination:
			task.Title = fmt.Sprintf("Move %s to blackout", name)
		case model.StageBlackout:
			task.Title = fmt.Sprintf("Uncover %s", name)
		case model.StageLight:
			task.Title = fmt.Sprintf("Harvest %s", name)
			task.YieldGrams = ExpectedYield(crop, second)
		}
		tasks = append(tasks, task)
	}
	return tasks
}
