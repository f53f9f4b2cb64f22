package repository

import (
	"stockpro-backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PaymentMethodRepository interface {
	Create(method *model.PaymentMethod) error
	FindAll() ([]model.PaymentMethod, error)
	FindActive() ([]model.PaymentMethod, error)
	FindByID(id uuid.UUID) (*model.PaymentMethod, error)
	FindByIDs(ids []uuid.UUID) ([]model.PaymentMethod, error)
	ToggleActive(id uuid.UUID, updatedBy string) error
}

type paymentMethodRepo struct {
	db *gorm.DB
}

func NewPaymentMethodRepo(db *gorm.DB) PaymentMethodRepository {
	return &paymentMethodRepo{db}
}

func (r *paymentMethodRepo) Create(method *model.PaymentMethod) error {
	return r.db.Create(method).Error
}

func (r *paymentMethodRepo) FindAll() ([]model.PaymentMethod, error) {
	var methods []model.PaymentMethod
	err := r.db.Order("name ASC").Find(&methods).Error
	return methods, err
}

func (r *paymentMethodRepo) FindActive() ([]model.PaymentMethod, error) {
	var methods []model.PaymentMethod
	err := r.db.Where("is_active = ?", true).Order("name ASC").Find(&methods).Error
	return methods, err
}

func (r *paymentMethodRepo) FindByID(id uuid.UUID) (*model.PaymentMethod, error) {
	var method model.PaymentMethod
	err := r.db.First(&method, "id = ?", id).Error
	return &method, err
}

func (r *paymentMethodRepo) FindByIDs(ids []uuid.UUID) ([]model.PaymentMethod, error) {
	var methods []model.PaymentMethod
	err := r.db.Where("id IN ?", ids).Order("name ASC").Find(&methods).Error
	return methods, err
}

func (r *paymentMethodRepo) ToggleActive(id uuid.UUID, updatedBy string) error {
	return r.db.Model(&model.PaymentMethod{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_active":  gorm.Expr("NOT is_active"),
			"updated_by": updatedBy,
		}).Error
}
