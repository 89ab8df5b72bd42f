package repository

import (
	"microgreens-planner/internal/model"

	"gorm.io/gorm"
)

// TrayRepository defines the interface for tray record operations
type TrayRepository interface {
	List() ([]model.Tray, error)
	// ListActive returns trays still in production, excluding harvested
	// and composted ones.
	ListActive() ([]model.Tray, error)
	Get(id uint) (*model.Tray, error)
	Create(tray *model.Tray) error
	Update(tray *model.Tray) error
	Delete(id uint) error
}

// trayRepository implements TrayRepository
type trayRepository struct {
	db *gorm.DB
}

// NewTrayRepository creates a new tray repository
func NewTrayRepository(db *gorm.DB) TrayRepository {
	return &trayRepository{db: db}
}

func (r *trayRepository) List() ([]model.Tray, error) {
	var trays []model.Tray
	err := r.db.
		Preload("CropType").
		Preload("SecondCropType").
		Order("start_date ASC").
		Find(&trays).Error
	return trays, err
}

func (r *trayRepository) ListActive() ([]model.Tray, error) {
	var trays []model.Tray
	err := r.db.
		Preload("CropType").
		Preload("SecondCropType").
		Where("stage NOT IN ?", []model.Stage{model.StageHarvested, model.StageCompost}).
		Order("start_date ASC").
		Find(&trays).Error
	return trays, err
}

func (r *trayRepository) Get(id uint) (*model.Tray, error) {
	var tray model.Tray
	err := r.db.
		Preload("CropType").
		Preload("SecondCropType").
		First(&tray, id).Error
	if err != nil {
		return nil, err
	}
	return &tray, nil
}

func (r *trayRepository) Create(tray *model.Tray) error {
	return r.db.Create(tray).Error
}

func (r *trayRepository) Update(tray *model.Tray) error {
	return r.db.Save(tray).Error
}

func (r *trayRepository) Delete(id uint) error {
	return r.db.Delete(&model.Tray{}, id).Error
}
