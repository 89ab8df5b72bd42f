package controller

import (
	"errors"
	"log/slog"
	"net/http"

	"microgreens-planner/internal/model"
	"microgreens-planner/internal/repository"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CropController handles crop type CRUD requests
type CropController struct {
	crops  repository.CropRepository
	logger *slog.Logger
}

// NewCropController creates a new crop controller
func NewCropController(crops repository.CropRepository, logger *slog.Logger) *CropController {
	return &CropController{crops: crops, logger: logger}
}

// cropRequest is the payload for creating or updating a crop type
type cropRequest struct {
	Name               string  `json:"name" binding:"required"`
	SoakHours          float64 `json:"soak_hours"`
	GerminationDays    int     `json:"germination_days"`
	BlackoutDays       int     `json:"blackout_days"`
	LightDays          int     `json:"light_days"`
	YieldGrams         float64 `json:"yield_grams"`
	SeedingRate        float64 `json:"seeding_rate"`
	SeedPackSmallGrams float64 `json:"seed_pack_small_grams"`
	SeedPackSmallPrice float64 `json:"seed_pack_small_price"`
	SeedPackLargeGrams float64 `json:"seed_pack_large_grams"`
	SeedPackLargePrice float64 `json:"seed_pack_large_price"`
	RevenuePer100g     float64 `json:"revenue_per_100g"`
}

func (r cropRequest) validate() string {
	if r.SoakHours < 0 || r.GerminationDays < 0 || r.BlackoutDays < 0 || r.LightDays < 0 {
		return "stage durations must not be negative"
	}
	if r.YieldGrams < 0 || r.SeedingRate < 0 {
		return "yield and seeding rate must not be negative"
	}
	return ""
}

func (r cropRequest) apply(crop *model.CropType) {
	crop.Name = r.Name
	crop.SoakHours = r.SoakHours
	crop.GerminationDays = r.GerminationDays
	crop.BlackoutDays = r.BlackoutDays
	crop.LightDays = r.LightDays
	crop.YieldGrams = r.YieldGrams
	crop.SeedingRate = r.SeedingRate
	crop.SeedPackSmallGrams = r.SeedPackSmallGrams
	crop.SeedPackSmallPrice = r.SeedPackSmallPrice
	crop.SeedPackLargeGrams = r.SeedPackLargeGrams
	crop.SeedPackLargePrice = r.SeedPackLargePrice
	crop.RevenuePer100g = r.RevenuePer100g
}

// List handles GET /v1/crops
func (c *CropController) List(ctx *gin.Context) {
	crops, err := c.crops.List()
	if err != nil {
		c.logger.Error("failed to list crop types", "error", err.Error())
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal server error",
			"message": "Failed to list crop types",
		})
		return
	}
	ctx.JSON(http.StatusOK, crops)
}

// Get handles GET /v1/crops/:id
func (c *CropController) Get(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}
	crop, err := c.crops.Get(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{
				"error":   "Crop type not found",
				"message": "The requested crop type does not exist",
			})
			return
		}
		c.logger.Error("failed to get crop type", "crop_id", id, "error", err.Error())
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal server error",
			"message": "Failed to load crop type",
		})
		return
	}
	ctx.JSON(http.StatusOK, crop)
}

// Create handles POST /v1/crops
func (c *CropController) Create(ctx *gin.Context) {
	var req cropRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"message": err.Error(),
		})
		return
	}
	if msg := req.validate(); msg != "" {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid crop type",
			"message": msg,
		})
		return
	}

	var crop model.CropType
	req.apply(&crop)
	if err := c.crops.Create(&crop); err != nil {
		c.logger.Error("failed to create crop type", "error", err.Error())
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal server error",
			"message": "Failed to create crop type",
		})
		return
	}

	c.logger.Info("crop type created", "crop_id", crop.ID, "name", crop.Name)
	ctx.JSON(http.StatusCreated, crop)
}

// Update handles PUT /v1/crops/:id
func (c *CropController) Update(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}
	var req cropRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"message": err.Error(),
		})
		return
	}
	if msg := req.validate(); msg != "" {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid crop type",
			"message": msg,
		})
		return
	}

	crop, err := c.crops.Get(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{
				"error":   "Crop type not found",
				"message": "The requested crop type does not exist",
			})
			return
		}
		c.logger.Error("failed to load crop type", "crop_id", id, "error", err.Error())
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal server error",
			"message": "Failed to load crop type",
		})
		return
	}

	req.apply(crop)
	if err := c.crops.Update(crop); err != nil {
		c.logger.Error("failed to update crop type", "crop_id", id, "error", err.Error())
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal server error",
			"message": "Failed to update crop type",
		})
		return
	}
	ctx.JSON(http.StatusOK, crop)
}

// Delete handles DELETE /v1/crops/:id
func (c *CropController) Delete(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}
	if err := c.crops.Delete(id); err != nil {
		c.logger.Error("failed to delete crop type", "crop_id", id, "error", err.Error())
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal server error",
			"message": "Failed to delete crop type",
		})
		return
	}
	ctx.Status(http.StatusNoContent)
}
