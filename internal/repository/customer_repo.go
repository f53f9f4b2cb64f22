package repository

import (
	"stockpro-backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CustomerRepository interface {
	Create(customer *model.Customer) error
	FindByID(id uuid.UUID) (*model.Customer, error)
	FindByDocument(document string) (*model.Customer, error)
	// Search matches a partial name or document for POS autocompletion.
	Search(term string, limit int) ([]model.Customer, error)
}

type customerRepo struct {
	db *gorm.DB
}

func NewCustomerRepo(db *gorm.DB) CustomerRepository {
	return &customerRepo{db}
}

func (r *customerRepo) Create(customer *model.Customer) error {
	return r.db.Create(customer).Error
}

func (r *customerRepo) FindByID(id uuid.UUID) (*model.Customer, error) {
	var customer model.Customer
	err := r.db.First(&customer, "id = ?", id).Error
	return &customer, err
}

func (r *customerRepo) FindByDocument(document string) (*model.Customer, error) {
	var customer model.Customer
	err := r.db.First(&customer, "document = ?", document).Error
	return &customer, err
}

func (r *customerRepo) Search(term string, limit int) ([]model.Customer, error) {
	var customers []model.Customer
	err := r.db.Where("full_name ILIKE ? OR document ILIKE ?", "%"+term+"%", "%"+term+"%").
		Order("full_name ASC").
		Limit(limit).
		Find(&customers).Error
	return customers, err
}
