package service

import (
	"fmt"
	"log/slog"
	"time"

	"microgreens-planner/internal/model"
	"microgreens-planner/internal/schedule"
)

// dueSoonHours is how close a transition has to be before it is worth a
// warning on today's board.
const dueSoonHours = 12

// AlertService classifies today's active trays into urgent, warning and
// routine notices. The calendar aggregator consumes it through the
// schedule.AlertProvider interface and treats the classification as
// final.
type AlertService struct {
	logger *slog.Logger
}

// NewAlertService creates a new alert service
func NewAlertService(logger *slog.Logger) *AlertService {
	return &AlertService{logger: logger}
}

// TodayAlerts implements schedule.AlertProvider
func (s *AlertService) TodayAlerts(trays []model.Tray, crops map[uint]model.CropType, now time.Time) []schedule.Alert {
	var alerts []schedule.Alert

	for _, tray := range trays {
		if !tray.Stage.Active() {
			continue
		}
		crop, ok := crops[tray.CropTypeID]
		if !ok {
			// missing reference, skip silently per the aggregation contract
			continue
		}
		var second *model.CropType
		if tray.SecondCropTypeID != nil {
			if sc, ok := crops[*tray.SecondCropTypeID]; ok {
				second = &sc
			}
		}
		name := schedule.DisplayName(crop, second)
		trayID := tray.ID

		if tray.Stage == model.StageHarvestReady {
			alerts = append(alerts, schedule.Alert{
				Level:   schedule.AlertRoutine,
				Title:   fmt.Sprintf("%s ready to harvest", name),
				Message: locationNote(tray),
				TrayID:  &trayID,
			})
			continue
		}

		countdown := schedule.TimeToNextStage(tray, crop, now)
		switch {
		case !countdown.Valid:
			alerts = append(alerts, schedule.Alert{
				Level:   schedule.AlertWarning,
				Title:   fmt.Sprintf("Check %s", name),
				Message: "tray has no usable stage start date",
				TrayID:  &trayID,
			})
		case countdown.Overdue:
			alerts = append(alerts, schedule.Alert{
				Level:   schedule.AlertUrgent,
				Title:   fmt.Sprintf("%s overdue for next stage", name),
				Message: fmt.Sprintf("%s stage ended %.0fh ago%s", stageLabel(tray.Stage), -countdown.HoursRemaining, locationSuffix(tray)),
				TrayID:  &trayID,
			})
		case countdown.HoursRemaining <= dueSoonHours:
			alerts = append(alerts, schedule.Alert{
				Level:   schedule.AlertWarning,
				Title:   fmt.Sprintf("%s due for next stage in %s", name, countdown.Text),
				Message: locationNote(tray),
				TrayID:  &trayID,
			})
		}
	}

	if s.logger != nil && len(alerts) > 0 {
		s.logger.Info("tray alerts computed", "count", len(alerts))
	}
	return alerts
}

func stageLabel(stage model.Stage) string {
	switch stage {
	case model.StageSeed:
		return "seed"
	case model.StageSoak:
		return "soak"
	case model.StageGermination:
		return "germination"
	case model.StageBlackout:
		return "blackout"
	case model.StageLight:
		return "light"
	}
	return string(stage)
}

func locationNote(tray model.Tray) string {
	if tray.Location == "" {
		return ""
	}
	return "at " + tray.Location
}

func locationSuffix(tray model.Tray) string {
	if tray.Location == "" {
		return ""
	}
	return " (" + tray.Location + ")"
}
