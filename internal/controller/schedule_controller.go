package controller

import (
	"errors"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"time"

	"microgreens-planner/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	defaultWindowDays = 7
	maxWindowDays     = 31
)

// ScheduleController handles planning and calendar HTTP requests
type ScheduleController struct {
	planner  service.PlannerService
	calendar service.CalendarService
	logger   *slog.Logger
}

// NewScheduleController creates a new schedule controller
func NewScheduleController(planner service.PlannerService, calendar service.CalendarService, logger *slog.Logger) *ScheduleController {
	return &ScheduleController{
		planner:  planner,
		calendar: calendar,
		logger:   logger,
	}
}

// GetCalendar handles GET /v1/schedule
// Query parameters:
//   - days (optional): window length in calendar days, default 7, max 31
func (c *ScheduleController) GetCalendar(ctx *gin.Context) {
	startTime := time.Now()

	days := defaultWindowDays
	if daysStr := ctx.Query("days"); daysStr != "" {
		parsed, err := strconv.Atoi(daysStr)
		if err != nil || parsed < 1 {
			ctx.JSON(http.StatusBadRequest, gin.H{
				"error":   "Invalid days",
				"message": "days must be a positive integer",
			})
			return
		}
		days = parsed
	}
	if days > maxWindowDays {
		days = maxWindowDays
	}

	schedule, err := c.calendar.Calendar(days)
	if err != nil {
		c.logger.Error("failed to build calendar",
			"days", days,
			"error", err.Error(),
			"latency_ms", time.Since(startTime).Milliseconds(),
		)
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal server error",
			"message": "Failed to build schedule",
		})
		return
	}

	c.logger.Info("calendar request completed",
		"days", days,
		"latency_ms", time.Since(startTime).Milliseconds(),
	)
	ctx.JSON(http.StatusOK, gin.H{"days": schedule})
}

// GetHarvestPlan handles GET /v1/crops/:id/harvest-plan
// Query parameters:
//   - harvest_date (required): target harvest date in ISO 8601 format
func (c *ScheduleController) GetHarvestPlan(ctx *gin.Context) {
	cropID, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	dateStr := ctx.Query("harvest_date")
	if dateStr == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Missing required parameter",
			"message": "harvest_date is required",
		})
		return
	}
	target, err := parseISO8601Date(dateStr)
	if err != nil {
		c.logger.Warn("invalid harvest_date",
			"harvest_date", dateStr,
			"crop_id", cropID,
			"error", err.Error(),
		)
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid harvest_date",
			"message": "harvest_date must be in ISO 8601 format (RFC3339 or YYYY-MM-DD)",
		})
		return
	}

	plan, err := c.planner.HarvestPlan(cropID, target)
	if err != nil {
		c.respondPlannerError(ctx, cropID, err)
		return
	}
	if plan == nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "No plan",
			"message": "A planting schedule could not be derived from the given inputs",
		})
		return
	}

	ctx.JSON(http.StatusOK, plan)
}

// GetWeeklyPlan handles GET /v1/crops/:id/weekly-plan
// Query parameters:
//   - target_grams (required): weekly yield target in grams
//   - harvest_weekday (required): desired harvest weekday, 0 (Sunday) to 6
func (c *ScheduleController) GetWeeklyPlan(ctx *gin.Context) {
	cropID, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	gramsStr := ctx.Query("target_grams")
	grams, err := strconv.ParseFloat(gramsStr, 64)
	if err != nil || math.IsNaN(grams) || grams <= 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid target_grams",
			"message": "target_grams must be a positive number",
		})
		return
	}

	weekdayStr := ctx.Query("harvest_weekday")
	weekday, err := strconv.Atoi(weekdayStr)
	if err != nil || weekday < 0 || weekday > 6 {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid harvest_weekday",
			"message": "harvest_weekday must be an integer between 0 (Sunday) and 6 (Saturday)",
		})
		return
	}

	plan, err := c.planner.WeeklyPlan(cropID, grams, time.Weekday(weekday))
	if err != nil {
		c.respondPlannerError(ctx, cropID, err)
		return
	}
	if plan == nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "No plan",
			"message": "A weekly schedule could not be derived from the given inputs",
		})
		return
	}

	ctx.JSON(http.StatusOK, plan)
}

func (c *ScheduleController) respondPlannerError(ctx *gin.Context, cropID uint, err error) {
	if errors.Is(err, service.ErrCropNotFound) {
		ctx.JSON(http.StatusNotFound, gin.H{
			"error":   "Crop type not found",
			"message": "The referenced crop type does not exist",
		})
		return
	}
	c.logger.Error("planner request failed",
		"crop_id", cropID,
		"error", err.Error(),
	)
	ctx.JSON(http.StatusInternalServerError, gin.H{
		"error":   "Internal server error",
		"message": "Failed to compute plan",
	})
}

// parseIDParam parses the :id path parameter, writing the error response
// itself when the value is unusable.
func parseIDParam(ctx *gin.Context) (uint, bool) {
	idStr := ctx.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid id",
			"message": "id must be a valid unsigned integer",
		})
		return 0, false
	}
	return uint(id), true
}
