package model

// Stage represents one phase of the fixed growing sequence
type Stage string

const (
	StageSeed         Stage = "SEED"
	StageSoak         Stage = "SOAK"
	StageGermination  Stage = "GERMINATION"
	StageBlackout     Stage = "BLACKOUT"
	StageLight        Stage = "LIGHT"
	StageHarvestReady Stage = "HARVEST_READY"
	StageHarvested    Stage = "HARVESTED"
	StageCompost      Stage = "COMPOST"
)

// GrowthSequence is the fixed forward order of growing stages.
// Compost sits outside the sequence and is reachable from any active stage.
var GrowthSequence = []Stage{
	StageSeed,
	StageSoak,
	StageGermination,
	StageBlackout,
	StageLight,
	StageHarvestReady,
	StageHarvested,
}

// Valid reports whether s is one of the defined stage values
func (s Stage) Valid() bool {
	switch s {
	case StageSeed, StageSoak, StageGermination, StageBlackout, StageLight,
		StageHarvestReady, StageHarvested, StageCompost:
		return true
	}
	return false
}

// Terminal reports whether no further transition is possible
func (s Stage) Terminal() bool {
	return s == StageHarvested || s == StageCompost
}

// Active reports whether the tray still occupies production space.
// Harvested and composted trays are excluded from the active view.
func (s Stage) Active() bool {
	return s.Valid() && !s.Terminal()
}

// FinishedGrowing reports whether the grow cycle is complete.
// HarvestReady counts as finished for projection purposes even though
// the tray has not been harvested yet.
func (s Stage) FinishedGrowing() bool {
	return s == StageHarvestReady || s == StageHarvested
}

// Next returns the following stage in the growth sequence and whether
// a forward transition exists from s.
func (s Stage) Next() (Stage, bool) {
	for i, stage := range GrowthSequence {
		if stage == s && i+1 < len(GrowthSequence) {
			return GrowthSequence[i+1], true
		}
	}
	return "", false
}

// CanAdvance reports whether the tray may move from s to next.
// Only single forward steps through the sequence are allowed; no
// skipping and no going backward.
func (s Stage) CanAdvance(next Stage) bool {
	n, ok := s.Next()
	return ok && n == next
}

// CanCompost reports whether a tray in stage s may be disposed of
func (s Stage) CanCompost() bool {
	return s.Active()
}
