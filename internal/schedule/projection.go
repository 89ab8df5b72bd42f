package schedule

import (
	"fmt"
	"time"

	"microgreens-planner/internal/model"
)

// Countdown describes the time remaining until a tray's next stage
// transition, formatted for display.
type Countdown struct {
	// Text is the human readable remaining time: "2d 5h", "5h", "34m",
	// "now", or a ready/overdue message.
	Text string `json:"text"`
	// Overdue is true once the configured stage duration has elapsed
	// without the tray being advanced.
	Overdue bool `json:"overdue"`
	// HoursRemaining is the signed distance to the transition in hours;
	// negative once overdue.
	HoursRemaining float64 `json:"hours_remaining"`
	// Valid is false when the tray's stage start timestamp is unusable
	// and no projection could be made.
	Valid bool `json:"valid"`
}

// TimeToNextStage computes the remaining time before the tray's current
// stage ends. It never fails: an unusable start timestamp yields an
// invalid Countdown and a tray that is already past its stage duration
// yields an overdue one. A stage with a configured duration of 0 is
// immediately overdue unless advanced promptly, which is expected.
func TimeToNextStage(tray model.Tray, crop model.CropType, now time.Time) Countdown {
	if tray.Stage == model.StageHarvestReady {
		return Countdown{Text: "ready to harvest", Valid: true}
	}
	if tray.Stage.Terminal() {
		return Countdown{Text: "finished", Valid: true}
	}
	if !tray.Stage.Valid() || tray.StartDate.IsZero() {
		return Countdown{Text: "unknown"}
	}

	duration := time.Duration(StageDurationHours(tray.Stage, crop) * float64(time.Hour))
	target := tray.StartDate.Add(duration)
	diff := target.Sub(now)

	if diff < 0 {
		overdueHours := -diff.Hours()
		return Countdown{
			Text:           fmt.Sprintf("%.0fh overdue", overdueHours),
			Overdue:        true,
			HoursRemaining: diff.Hours(),
			Valid:          true,
		}
	}

	return Countdown{
		Text:           formatRemaining(diff),
		HoursRemaining: diff.Hours(),
		Valid:          true,
	}
}

// formatRemaining renders a non-negative duration as days+hours when at
// least a day remains, hours or minutes below that, and "now" under the
// minute granularity.
func formatRemaining(d time.Duration) string {
	minutes := int(d.Minutes())
	days := minutes / (24 * 60)
	hours := (minutes % (24 * 60)) / 60
	mins := minutes % 60

	switch {
	case days > 0:
		return fmt.Sprintf("%dd %dh", days, hours)
	case hours > 0:
		return fmt.Sprintf("%dh", hours)
	case mins > 0:
		return fmt.Sprintf("%dm", mins)
	}
	return "now"
}

// TargetHarvestDate projects when the tray will be ready to harvest.
//
// Once a tray has finished growing the harvest date is fixed: the tray's
// last update timestamp is returned regardless of calling time. For a
// growing tray the projection is stage-relative, not plant-date-relative:
// it sums the full duration of the current stage and every stage after it
// up to (excluding) HarvestReady on top of the current stage's start.
// Correcting a stage start timestamp therefore re-bases the projection
// from the corrected point. Invalid timestamps fall back to now.
func TargetHarvestDate(tray model.Tray, crop model.CropType, now time.Time) time.Time {
	if tray.Stage.FinishedGrowing() {
		if tray.UpdatedAt.IsZero() {
			return now
		}
		return tray.UpdatedAt
	}
	if !tray.Stage.Valid() || tray.StartDate.IsZero() {
		return now
	}

	var hours float64
	counting := false
	for _, stage := range model.GrowthSequence {
		if stage == tray.Stage {
			counting = true
		}
		if stage == model.StageHarvestReady {
			break
		}
		if counting {
			hours += StageDurationHours(stage, crop)
		}
	}
	if !counting {
		return now
	}

	return tray.StartDate.Add(time.Duration(hours * float64(time.Hour)))
}
