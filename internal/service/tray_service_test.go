package service

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"microgreens-planner/internal/model"
)

// fakeTrayRepo is an in-memory TrayRepository for service tests
type fakeTrayRepo struct {
	trays map[uint]model.Tray
}

func newFakeTrayRepo(trays ...model.Tray) *fakeTrayRepo {
	repo := &fakeTrayRepo{trays: make(map[uint]model.Tray)}
	for _, tray := range trays {
		repo.trays[tray.ID] = tray
	}
	return repo
}

func (r *fakeTrayRepo) List() ([]model.Tray, error) {
	var out []model.Tray
	for _, tray := range r.trays {
		out = append(out, tray)
	}
	return out, nil
}

func (r *fakeTrayRepo) ListActive() ([]model.Tray, error) {
	var out []model.Tray
	for _, tray := range r.trays {
		if tray.Stage.Active() {
			out = append(out, tray)
		}
	}
	return out, nil
}

func (r *fakeTrayRepo) Get(id uint) (*model.Tray, error) {
	tray, ok := r.trays[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &tray, nil
}

func (r *fakeTrayRepo) Create(tray *model.Tray) error {
	r.trays[tray.ID] = *tray
	return nil
}

func (r *fakeTrayRepo) Update(tray *model.Tray) error {
	r.trays[tray.ID] = *tray
	return nil
}

func (r *fakeTrayRepo) Delete(id uint) error {
	delete(r.trays, id)
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestTrayServiceAdvance(t *testing.T) {
	anchor := time.Date(2026, 2, 20, 8, 0, 0, 0, time.UTC)
	repo := newFakeTrayRepo(model.Tray{ID: 1, Stage: model.StageSeed, StartDate: anchor})
	svc := NewTrayService(repo, testLogger())

	before := time.Now()
	tray, err := svc.Advance(1)
	require.NoError(t, err)
	assert.Equal(t, model.StageSoak, tray.Stage)
	assert.False(t, tray.StartDate.Before(before), "stage start must be re-anchored to now")

	stored, err := repo.Get(1)
	require.NoError(t, err)
	assert.Equal(t, model.StageSoak, stored.Stage)
}

func TestTrayServiceAdvanceWalksFullSequence(t *testing.T) {
	repo := newFakeTrayRepo(model.Tray{ID: 1, Stage: model.StageSeed, StartDate: time.Now()})
	svc := NewTrayService(repo, testLogger())

	for _, want := range model.GrowthSequence[1:] {
		tray, err := svc.Advance(1)
		require.NoError(t, err)
		assert.Equal(t, want, tray.Stage)
	}

	// harvested is terminal
	_, err := svc.Advance(1)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestTrayServiceAdvanceNotFound(t *testing.T) {
	svc := NewTrayService(newFakeTrayRepo(), testLogger())
	_, err := svc.Advance(42)
	assert.ErrorIs(t, err, ErrTrayNotFound)
}

func TestTrayServiceCompost(t *testing.T) {
	repo := newFakeTrayRepo(
		model.Tray{ID: 1, Stage: model.StageLight, StartDate: time.Now()},
		model.Tray{ID: 2, Stage: model.StageHarvested, StartDate: time.Now()},
		model.Tray{ID: 3, Stage: model.StageCompost, StartDate: time.Now()},
	)
	svc := NewTrayService(repo, testLogger())

	tray, err := svc.Compost(1)
	require.NoError(t, err)
	assert.Equal(t, model.StageCompost, tray.Stage)

	_, err = svc.Compost(2)
	assert.ErrorIs(t, err, ErrInvalidTransition, "finished trays cannot be composted")
	_, err = svc.Compost(3)
	assert.ErrorIs(t, err, ErrInvalidTransition, "composting is not repeatable")
}

func TestTrayServiceHarvest(t *testing.T) {
	repo := newFakeTrayRepo(
		model.Tray{ID: 1, Stage: model.StageHarvestReady, StartDate: time.Now()},
		model.Tray{ID: 2, Stage: model.StageLight, StartDate: time.Now()},
	)
	svc := NewTrayService(repo, testLogger())

	grams := 265.0
	tray, err := svc.Harvest(1, &grams)
	require.NoError(t, err)
	assert.Equal(t, model.StageHarvested, tray.Stage)
	require.NotNil(t, tray.YieldGrams)
	assert.Equal(t, 265.0, *tray.YieldGrams)

	// harvesting is only legal from harvest-ready
	_, err = svc.Harvest(2, &grams)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestTrayServiceHarvestWithoutYield(t *testing.T) {
	repo := newFakeTrayRepo(model.Tray{ID: 1, Stage: model.StageHarvestReady, StartDate: time.Now()})
	svc := NewTrayService(repo, testLogger())

	tray, err := svc.Harvest(1, nil)
	require.NoError(t, err)
	assert.Equal(t, model.StageHarvested, tray.Stage)
	assert.Nil(t, tray.YieldGrams)
}
