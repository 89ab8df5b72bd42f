package schedule

import (
	"testing"
	"time"

	"microgreens-planner/internal/model"
)

var projectionCrop = model.CropType{
	SoakHours:       8,
	GerminationDays: 3,
	BlackoutDays:    2,
	LightDays:       7,
}

// TestTimeToNextStage tests countdown formatting and the overdue rules
func TestTimeToNextStage(t *testing.T) {
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		tray        model.Tray
		wantText    string
		wantOverdue bool
		wantValid   bool
	}{
		{
			name:      "harvest ready is ready now",
			tray:      model.Tray{Stage: model.StageHarvestReady, StartDate: now.AddDate(0, 0, -9)},
			wantText:  "ready to harvest",
			wantValid: true,
		},
		{
			name:     "missing start date is invalid, not fatal",
			tray:     model.Tray{Stage: model.StageBlackout},
			wantText: "unknown",
		},
		{
			name:      "days and hours remaining",
			tray:      model.Tray{Stage: model.StageLight, StartDate: now.Add(-100 * time.Hour)},
			wantText:  "2d 20h", // 168h light stage, 100h elapsed
			wantValid: true,
		},
		{
			name:      "hours remaining",
			tray:      model.Tray{Stage: model.StageLight, StartDate: now.Add(-163 * time.Hour)},
			wantText:  "5h",
			wantValid: true,
		},
		{
			name:      "minutes remaining",
			tray:      model.Tray{Stage: model.StageSoak, StartDate: now.Add(-7*time.Hour - 30*time.Minute)},
			wantText:  "30m",
			wantValid: true,
		},
		{
			name:      "under a minute is now",
			tray:      model.Tray{Stage: model.StageSoak, StartDate: now.Add(-8*time.Hour + 30*time.Second)},
			wantText:  "now",
			wantValid: true,
		},
		{
			name:        "overdue blackout",
			tray:        model.Tray{Stage: model.StageBlackout, StartDate: now.AddDate(0, 0, -3)},
			wantText:    "24h overdue",
			wantOverdue: true,
			wantValid:   true,
		},
		{
			name:        "instant stage is immediately overdue",
			tray:        model.Tray{Stage: model.StageSeed, StartDate: now.Add(-time.Hour)},
			wantText:    "1h overdue",
			wantOverdue: true,
			wantValid:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TimeToNextStage(tt.tray, projectionCrop, now)
			if got.Text != tt.wantText {
				t.Errorf("Text = %q, expected %q", got.Text, tt.wantText)
			}
			if got.Overdue != tt.wantOverdue {
				t.Errorf("Overdue = %v, expected %v", got.Overdue, tt.wantOverdue)
			}
			if got.Valid != tt.wantValid {
				t.Errorf("Valid = %v, expected %v", got.Valid, tt.wantValid)
			}
		})
	}
}

// TestOverdueBoundary verifies a tray whose stage duration elapses exactly
// now is not yet overdue, and is one second later.
func TestOverdueBoundary(t *testing.T) {
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	tray := model.Tray{Stage: model.StageBlackout, StartDate: now.Add(-48 * time.Hour)}

	at := TimeToNextStage(tray, projectionCrop, now)
	if at.Overdue {
		t.Error("tray must not be overdue at the exact transition instant")
	}
	if at.Text != "now" {
		t.Errorf("Text = %q, expected %q", at.Text, "now")
	}

	after := TimeToNextStage(tray, projectionCrop, now.Add(time.Second))
	if !after.Overdue {
		t.Error("tray must be overdue one second past the transition instant")
	}
}

// TestTargetHarvestDate tests the stage-relative harvest projection
func TestTargetHarvestDate(t *testing.T) {
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	t.Run("sums current and remaining stage durations", func(t *testing.T) {
		tray := model.Tray{Stage: model.StageGermination, StartDate: start}
		// germination 72h + blackout 48h + light 168h = 288h
		want := start.Add(288 * time.Hour)
		if got := TargetHarvestDate(tray, projectionCrop, now); !got.Equal(want) {
			t.Errorf("TargetHarvestDate = %v, expected %v", got, want)
		}
	})

	t.Run("re-bases from a corrected stage start", func(t *testing.T) {
		corrected := start.AddDate(0, 0, -1)
		tray := model.Tray{Stage: model.StageBlackout, StartDate: corrected}
		want := corrected.Add(216 * time.Hour) // blackout 48h + light 168h
		if got := TargetHarvestDate(tray, projectionCrop, now); !got.Equal(want) {
			t.Errorf("TargetHarvestDate = %v, expected %v", got, want)
		}
	})

	t.Run("harvest ready is fixed at the last update", func(t *testing.T) {
		updated := time.Date(2026, 2, 27, 15, 30, 0, 0, time.UTC)
		tray := model.Tray{Stage: model.StageHarvestReady, StartDate: start}
		tray.UpdatedAt = updated

		for _, at := range []time.Time{now, now.AddDate(0, 0, 5), now.AddDate(1, 0, 0)} {
			if got := TargetHarvestDate(tray, projectionCrop, at); !got.Equal(updated) {
				t.Errorf("TargetHarvestDate at %v = %v, expected fixed %v", at, got, updated)
			}
		}
	})

	t.Run("invalid start falls back to now", func(t *testing.T) {
		tray := model.Tray{Stage: model.StageLight}
		if got := TargetHarvestDate(tray, projectionCrop, now); !got.Equal(now) {
			t.Errorf("TargetHarvestDate = %v, expected fallback to now", got)
		}
	})
}

// TestOverdueScenario reproduces a blackout tray one day past its stage
func TestOverdueScenario(t *testing.T) {
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	tray := model.Tray{
		Stage:     model.StageBlackout,
		StartDate: now.AddDate(0, 0, -(projectionCrop.BlackoutDays + 1)),
	}
	if got := TimeToNextStage(tray, projectionCrop, now); !got.Overdue {
		t.Error("expected tray one day past its blackout duration to be overdue")
	}
}
