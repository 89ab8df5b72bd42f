package repository

import (
	"microgreens-planner/internal/model"

	"gorm.io/gorm"
)

// CropRepository defines the interface for crop type record operations
type CropRepository interface {
	List() ([]model.CropType, error)
	Get(id uint) (*model.CropType, error)
	Create(crop *model.CropType) error
	Update(crop *model.CropType) error
	Delete(id uint) error
}

// cropRepository implements CropRepository
type cropRepository struct {
	db *gorm.DB
}

// NewCropRepository creates a new crop repository
func NewCropRepository(db *gorm.DB) CropRepository {
	return &cropRepository{db: db}
}

func (r *cropRepository) List() ([]model.CropType, error) {
	var crops []model.CropType
	err := r.db.Order("name ASC").Find(&crops).Error
	return crops, err
}

func (r *cropRepository) Get(id uint) (*model.CropType, error) {
	var crop model.CropType
	if err := r.db.First(&crop, id).Error; err != nil {
		return nil, err
	}
	return &crop, nil
}

func (r *cropRepository) Create(crop *model.CropType) error {
	return r.db.Create(crop).Error
}

func (r *cropRepository) Update(crop *model.CropType) error {
	return r.db.Save(crop).Error
}

func (r *cropRepository) Delete(id uint) error {
	return r.db.Delete(&model.CropType{}, id).Error
}
