package controller

import (
	"errors"
	"log/slog"
	"math"
	"net/http"
	"time"

	"microgreens-planner/internal/model"
	"microgreens-planner/internal/repository"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// OrderController handles recurring order requests. Orders are created
// and deleted directly by the operator, never generated.
type OrderController struct {
	orders    repository.OrderRepository
	customers repository.CustomerRepository
	crops     repository.CropRepository
	logger    *slog.Logger
}

// NewOrderController creates a new recurring order controller
func NewOrderController(orders repository.OrderRepository, customers repository.CustomerRepository, crops repository.CropRepository, logger *slog.Logger) *OrderController {
	return &OrderController{
		orders:    orders,
		customers: customers,
		crops:     crops,
		logger:    logger,
	}
}

// orderRequest is the payload for creating a recurring order
type orderRequest struct {
	CustomerID  uint    `json:"customer_id" binding:"required"`
	CropTypeID  uint    `json:"crop_type_id" binding:"required"`
	AmountGrams float64 `json:"amount_grams"`
	DueWeekday  int     `json:"due_weekday"`
}

// List handles GET /v1/orders
func (c *OrderController) List(ctx *gin.Context) {
	orders, err := c.orders.List()
	if err != nil {
		c.logger.Error("failed to list recurring orders", "error", err.Error())
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal server error",
			"message": "Failed to list recurring orders",
		})
		return
	}
	ctx.JSON(http.StatusOK, orders)
}

// Get handles GET /v1/orders/:id
func (c *OrderController) Get(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}
	order, err := c.orders.Get(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{
				"error":   "Order not found",
				"message": "The requested recurring order does not exist",
			})
			return
		}
		c.logger.Error("failed to get recurring order", "order_id", id, "error", err.Error())
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal server error",
			"message": "Failed to load recurring order",
		})
		return
	}
	ctx.JSON(http.StatusOK, order)
}

// Create handles POST /v1/orders
func (c *OrderController) Create(ctx *gin.Context) {
	var req orderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"message": err.Error(),
		})
		return
	}
	if math.IsNaN(req.AmountGrams) || req.AmountGrams <= 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid amount_grams",
			"message": "amount_grams must be a positive number",
		})
		return
	}
	if req.DueWeekday < 0 || req.DueWeekday > 6 {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid due_weekday",
			"message": "due_weekday must be an integer between 0 (Sunday) and 6 (Saturday)",
		})
		return
	}
	if _, err := c.customers.Get(req.CustomerID); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid customer_id",
			"message": "The referenced customer does not exist",
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

	order := model.RecurringOrder{
		CustomerID:  req.CustomerID,
		CropTypeID:  req.CropTypeID,
		AmountGrams: req.AmountGrams,
		DueWeekday:  time.Weekday(req.DueWeekday),
	}
	if err := c.orders.Create(&order); err != nil {
		c.logger.Error("failed to create recurring order", "error", err.Error())
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal server error",
			"message": "Failed to create recurring order",
		})
		return
	}

	c.logger.Info("recurring order created",
		"order_id", order.ID,
		"customer_id", order.CustomerID,
		"crop_type_id", order.CropTypeID,
		"due_weekday", order.DueWeekday,
	)
	ctx.JSON(http.StatusCreated, order)
}

// Delete handles DELETE /v1/orders/:id
func (c *OrderController) Delete(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}
	if err := c.orders.Delete(id); err != nil {
		c.logger.Error("failed to delete recurring order", "order_id", id, "error", err.Error())
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal server error",
			"message": "Failed to delete recurring order",
		})
		return
	}
	ctx.Status(http.StatusNoContent)
}
