package controller

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"microgreens-planner/internal/model"
	"microgreens-planner/internal/repository"
	"microgreens-planner/internal/schedule"
	"microgreens-planner/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// TrayController handles tray CRUD and stage mutation requests
type TrayController struct {
	trays   repository.TrayRepository
	crops   repository.CropRepository
	service service.TrayService
	logger  *slog.Logger
}

// NewTrayController creates a new tray controller
func NewTrayController(trays repository.TrayRepository, crops repository.CropRepository, svc service.TrayService, logger *slog.Logger) *TrayController {
	return &TrayController{
		trays:   trays,
		crops:   crops,
		service: svc,
		logger:  logger,
	}
}

// trayRequest is the payload for creating or updating a tray
type trayRequest struct {
	CropTypeID       uint         `json:"crop_type_id" binding:"required"`
	SecondCropTypeID *uint        `json:"second_crop_type_id"`
	Stage            *model.Stage `json:"stage"`
	StartDate        *time.Time   `json:"start_date"`
	Location         string       `json:"location"`
	Notes            string       `json:"notes"`
}

// trayView decorates a tray with its live projection data
type trayView struct {
	model.Tray
	Countdown         schedule.Countdown `json:"countdown"`
	TargetHarvestDate time.Time          `json:"target_harvest_date"`
	DisplayName       string             `json:"display_name"`
	ExpectedYield     float64            `json:"expected_yield"`
	SeedCost          float64            `json:"seed_cost"`
}

func newTrayView(tray model.Tray, now time.Time) trayView {
	return trayView{
		Tray:              tray,
		Countdown:         schedule.TimeToNextStage(tray, tray.CropType, now),
		TargetHarvestDate: schedule.TargetHarvestDate(tray, tray.CropType, now),
		DisplayName:       schedule.DisplayName(tray.CropType, tray.SecondCropType),
		ExpectedYield:     schedule.ExpectedYield(tray.CropType, tray.SecondCropType),
		SeedCost:          schedule.SeedCost(tray.CropType, tray.SecondCropType),
	}
}

// List handles GET /v1/trays
// Query parameters:
//   - active (optional): "true" restricts the list to trays still in production
func (c *TrayController) List(ctx *gin.Context) {
	var (
		trays []model.Tray
		err   error
	)
	if ctx.Query("active") == "true" {
		trays, err = c.trays.ListActive()
	} else {
		trays, err = c.trays.List()
	}
	if err != nil {
		c.logger.Error("failed to list trays", "error", err.Error())
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal server error",
			"message": "Failed to list trays",
		})
		return
	}

	// One clock reading for the whole listing keeps countdowns consistent
	now := time.Now()
	views := make([]trayView, 0, len(trays))
	for _, tray := range trays {
		views = append(views, newTrayView(tray, now))
	}
	ctx.JSON(http.StatusOK, views)
}

// Get handles GET /v1/trays/:id
func (c *TrayController) Get(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}
	tray, err := c.trays.Get(id)
	if err != nil {
		c.respondTrayLookupError(ctx, id, err)
		return
	}
	ctx.JSON(http.StatusOK, newTrayView(*tray, time.Now()))
}

// Create handles POST /v1/trays
func (c *TrayController) Create(ctx *gin.Context) {
	var req trayRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"message": err.Error(),
		})
		return
	}
	if req.Stage != nil && !req.Stage.Valid() {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid stage",
			"message": "stage is not one of the defined growing stages",
		})
		return
	}
	if _, err := c.crops.Get(req.CropTypeID); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid crop_type_id",
			"message": "The referenced crop type does not exist",
		})
		return
	}
	if req.SecondCropTypeID != nil {
		if _, err := c.crops.Get(*req.SecondCropTypeID); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{
				"error":   "Invalid second_crop_type_id",
				"message": "The referenced crop type does not exist",
			})
			return
		}
	}

	tray := model.Tray{
		CropTypeID:       req.CropTypeID,
		SecondCropTypeID: req.SecondCropTypeID,
		Location:         req.Location,
		Notes:            req.Notes,
	}
	if req.Stage != nil {
		tray.Stage = *req.Stage
	}
	if req.StartDate != nil {
		tray.StartDate = *req.StartDate
	}

	if err := c.trays.Create(&tray); err != nil {
		c.logger.Error("failed to create tray", "error", err.Error())
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal server error",
			"message": "Failed to create tray",
		})
		return
	}

	c.logger.Info("tray created",
		"tray_id", tray.ID,
		"crop_type_id", tray.CropTypeID,
		"stage", tray.Stage,
	)
	created, err := c.trays.Get(tray.ID)
	if err != nil {
		ctx.JSON(http.StatusCreated, tray)
		return
	}
	ctx.JSON(http.StatusCreated, newTrayView(*created, time.Now()))
}

// Update handles PUT /v1/trays/:id. The stage itself cannot be edited
// here; stage changes go through the advance/compost/harvest endpoints.
// Correcting the start date re-bases the harvest projection from the
// corrected point.
func (c *TrayController) Update(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}
	var req struct {
		StartDate *time.Time `json:"start_date"`
		Location  *string    `json:"location"`
		Notes     *string    `json:"notes"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"message": err.Error(),
		})
		return
	}

	tray, err := c.trays.Get(id)
	if err != nil {
		c.respondTrayLookupError(ctx, id, err)
		return
	}

	if req.StartDate != nil {
		tray.StartDate = *req.StartDate
	}
	if req.Location != nil {
		tray.Location = *req.Location
	}
	if req.Notes != nil {
		tray.Notes = *req.Notes
	}

	if err := c.trays.Update(tray); err != nil {
		c.logger.Error("failed to update tray", "tray_id", id, "error", err.Error())
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal server error",
			"message": "Failed to update tray",
		})
		return
	}
	ctx.JSON(http.StatusOK, newTrayView(*tray, time.Now()))
}

// Advance handles POST /v1/trays/:id/advance
func (c *TrayController) Advance(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}
	tray, err := c.service.Advance(id)
	if err != nil {
		c.respondMutationError(ctx, id, err)
		return
	}
	ctx.JSON(http.StatusOK, newTrayView(*tray, time.Now()))
}

// Compost handles POST /v1/trays/:id/compost
func (c *TrayController) Compost(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}
	tray, err := c.service.Compost(id)
	if err != nil {
		c.respondMutationError(ctx, id, err)
		return
	}
	ctx.JSON(http.StatusOK, newTrayView(*tray, time.Now()))
}

// Harvest handles POST /v1/trays/:id/harvest
func (c *TrayController) Harvest(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}
	var req struct {
		YieldGrams *float64 `json:"yield_grams"`
	}
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{
				"error":   "Invalid request body",
				"message": err.Error(),
			})
			return
		}
	}
	tray, err := c.service.Harvest(id, req.YieldGrams)
	if err != nil {
		c.respondMutationError(ctx, id, err)
		return
	}
	ctx.JSON(http.StatusOK, newTrayView(*tray, time.Now()))
}

// Delete handles DELETE /v1/trays/:id
func (c *TrayController) Delete(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}
	if err := c.trays.Delete(id); err != nil {
		c.logger.Error("failed to delete tray", "tray_id", id, "error", err.Error())
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal server error",
			"message": "Failed to delete tray",
		})
		return
	}
	ctx.Status(http.StatusNoContent)
}

func (c *TrayController) respondTrayLookupError(ctx *gin.Context, id uint, err error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		ctx.JSON(http.StatusNotFound, gin.H{
			"error":   "Tray not found",
			"message": "The requested tray does not exist",
		})
		return
	}
	c.logger.Error("failed to load tray", "tray_id", id, "error", err.Error())
	ctx.JSON(http.StatusInternalServerError, gin.H{
		"error":   "Internal server error",
		"message": "Failed to load tray",
	})
}

func (c *TrayController) respondMutationError(ctx *gin.Context, id uint, err error) {
	switch {
	case errors.Is(err, service.ErrTrayNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{
			"error":   "Tray not found",
			"message": "The requested tray does not exist",
		})
	case errors.Is(err, service.ErrInvalidTransition):
		ctx.JSON(http.StatusConflict, gin.H{
			"error":   "Invalid stage transition",
			"message": "Only forward transitions through the growing sequence are allowed",
		})
	default:
		c.logger.Error("tray mutation failed", "tray_id", id, "error", err.Error())
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal server error",
			"message": "Failed to update tray",
		})
	}
}
