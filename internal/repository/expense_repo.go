package repository

import (
	"time"

	"stockpro-backend/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ExpenseRepository interface {
	Create(expense *model.Expense) error
	FindBetween(start, end time.Time) ([]model.Expense, error)
	SumBetween(start, end time.Time) (decimal.Decimal, error)
	Delete(id uuid.UUID) error

	CreateCategory(category *model.ExpenseCategory) error
	FindAllCategories() ([]model.ExpenseCategory, error)
}

type expenseRepo struct {
	db *gorm.DB
}

func NewExpenseRepo(db *gorm.DB) ExpenseRepository {
	return &expenseRepo{db}
}

func (r *expenseRepo) Create(expense *model.Expense) error {
	return r.db.Create(expense).Error
}

// FindBetween filters by accounting date, not creation date, so expenses
// land in the period they belong to.
func (r *expenseRepo) FindBetween(start, end time.Time) ([]model.Expense, error) {
	var expenses []model.Expense
	err := r.db.Preload("Category").Preload("RecordedBy").
		Where("accounting_date BETWEEN ? AND ?", start, end).
		Order("accounting_date DESC").
		Find(&expenses).Error
	return expenses, err
}

func (r *expenseRepo) SumBetween(start, end time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.Model(&model.Expense{}).
		Where("accounting_date BETWEEN ? AND ?", start, end).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	return total, err
}

func (r *expenseRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&model.Expense{}, "id = ?", id).Error
}

func (r *expenseRepo) CreateCategory(category *model.ExpenseCategory) error {
	return r.db.Create(category).Error
}

func (r *expenseRepo) FindAllCategories() ([]model.ExpenseCategory, error) {
	var categories []model.ExpenseCategory
	err := r.db.Order("name ASC").Find(&categories).Error
	return categories, err
}
