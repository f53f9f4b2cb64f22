package repository

import (
	"stockpro-backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ClosingRepository interface {
	// Create and CreateDetails run inside the closing transaction so the
	// header, its details and the sale stamps commit or roll back together.
	Create(tx *gorm.DB, closing *model.CashClosing) error
	CreateDetails(tx *gorm.DB, details []model.ClosingDetail) error

	FindByID(id uuid.UUID) (*model.CashClosing, error)
	FindAll() ([]model.CashClosing, error)
}

type closingRepo struct {
	db *gorm.DB
}

func NewClosingRepo(db *gorm.DB) ClosingRepository {
	return &closingRepo{db}
}

func (r *closingRepo) Create(tx *gorm.DB, closing *model.CashClosing) error {
	return tx.Create(closing).Error
}

func (r *closingRepo) CreateDetails(tx *gorm.DB, details []model.ClosingDetail) error {
	return tx.Create(&details).Error
}

func (r *closingRepo) FindByID(id uuid.UUID) (*model.CashClosing, error) {
	var closing model.CashClosing
	err := r.db.Preload("User").
		Preload("Details").Preload("Details.PaymentMethod").
		Preload("Sales").Preload("Sales.PaymentMethod").Preload("Sales.Seller").
		First(&closing, "id = ?", id).Error
	return &closing, err
}

func (r *closingRepo) FindAll() ([]model.CashClosing, error) {
	var closings []model.CashClosing
	err := r.db.Preload("User").
		Preload("Details").Preload("Details.PaymentMethod").
		Order("created_at DESC").
		Find(&closings).Error
	return closings, err
}
