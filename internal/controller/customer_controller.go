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

// CustomerController handles customer CRUD requests
type CustomerController struct {
	customers repository.CustomerRepository
	logger    *slog.Logger
}

// NewCustomerController creates a new customer controller
func NewCustomerController(customers repository.CustomerRepository, logger *slog.Logger) *CustomerController {
	return &CustomerController{customers: customers, logger: logger}
}

// customerRequest is the payload for creating or updating a customer
type customerRequest struct {
	Name    string `json:"name" binding:"required"`
	Contact string `json:"contact"`
	Notes   string `json:"notes"`
}

// List handles GET /v1/customers
func (c *CustomerController) List(ctx *gin.Context) {
	customers, err := c.customers.List()
	if err != nil {
		c.logger.Error("failed to list customers", "error", err.Error())
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal server error",
			"message": "Failed to list customers",
		})
		return
	}
	ctx.JSON(http.StatusOK, customers)
}

// Get handles GET /v1/customers/:id
func (c *CustomerController) Get(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}
	customer, err := c.customers.Get(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{
				"error":   "Customer not found",
				"message": "The requested customer does not exist",
			})
			return
		}
		c.logger.Error("failed to get customer", "customer_id", id, "error", err.Error())
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal server error",
			"message": "Failed to load customer",
		})
		return
	}
	ctx.JSON(http.StatusOK, customer)
}

// Create handles POST /v1/customers
func (c *CustomerController) Create(ctx *gin.Context) {
	var req customerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"message": err.Error(),
		})
		return
	}

	customer := model.Customer{
		Name:    req.Name,
		Contact: req.Contact,
		Notes:   req.Notes,
	}
	if err := c.customers.Create(&customer); err != nil {
		c.logger.Error("failed to create customer", "error", err.Error())
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal server error",
			"message": "Failed to create customer",
		})
		return
	}

	c.logger.Info("customer created", "customer_id", customer.ID, "name", customer.Name)
	ctx.JSON(http.StatusCreated, customer)
}

// Update handles PUT /v1/customers/:id
func (c *CustomerController) Update(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}
	var req customerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"message": err.Error(),
		})
		return
	}

	customer, err := c.customers.Get(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{
				"error":   "Customer not found",
				"message": "The requested customer does not exist",
			})
			return
		}
		c.logger.Error("failed to load customer", "customer_id", id, "error", err.Error())
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal server error",
			"message": "Failed to load customer",
		})
		return
	}

	customer.Name = req.Name
	customer.Contact = req.Contact
	customer.Notes = req.Notes
	if err := c.customers.Update(customer); err != nil {
		c.logger.Error("failed to update customer", "customer_id", id, "error", err.Error())
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal server error",
			"message": "Failed to update customer",
		})
		return
	}
	ctx.JSON(http.StatusOK, customer)
}

// Delete handles DELETE /v1/customers/:id
func (c *CustomerController) Delete(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}
	if err := c.customers.Delete(id); err != nil {
		c.logger.Error("failed to delete customer", "customer_id", id, "error", err.Error())
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal server error",
			"message": "Failed to delete customer",
		})
		return
	}
	ctx.Status(http.StatusNoContent)
}
