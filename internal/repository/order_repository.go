package repository

import (
	"microgreens-planner/internal/model"

	"gorm.io/gorm"
)

// CustomerRepository defines the interface for customer record operations
type CustomerRepository interface {
	List() ([]model.Customer, error)
	Get(id uint) (*model.Customer, error)
	Create(customer *model.Customer) error
	Update(customer *model.Customer) error
	Delete(id uint) error
}

// customerRepository implements CustomerRepository
type customerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository creates a new customer repository
func NewCustomerRepository(db *gorm.DB) CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) List() ([]model.Customer, error) {
	var customers []model.Customer
	err := r.db.Order("name ASC").Find(&customers).Error
	return customers, err
}

func (r *customerRepository) Get(id uint) (*model.Customer, error) {
	var customer model.Customer
	if err := r.db.Preload("Orders").First(&customer, id).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *customerRepository) Create(customer *model.Customer) error {
	return r.db.Create(customer).Error
}

func (r *customerRepository) Update(customer *model.Customer) error {
	return r.db.Save(customer).Error
}

func (r *customerRepository) Delete(id uint) error {
	return r.db.Delete(&model.Customer{}, id).Error
}

// OrderRepository defines the interface for recurring order operations
type OrderRepository interface {
	List() ([]model.RecurringOrder, error)
	Get(id uint) (*model.RecurringOrder, error)
	Create(order *model.RecurringOrder) error
	Delete(id uint) error
}

// orderRepository implements OrderRepository
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates a new recurring order repository
func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) List() ([]model.RecurringOrder, error) {
	var orders []model.RecurringOrder
	err := r.db.
		Preload("Customer").
		Preload("CropType").
		Order("due_weekday ASC").
		Find(&orders).Error
	return orders, err
}

func (r *orderRepository) Get(id uint) (*model.RecurringOrder, error) {
	var order model.RecurringOrder
	err := r.db.
		Preload("Customer").
		Preload("CropType").
		First(&order, id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) Create(order *model.RecurringOrder) error {
	return r.db.Create(order).Error
}

func (r *orderRepository) Delete(id uint) error {
	return r.db.Delete(&model.RecurringOrder{}, id).Error
}
