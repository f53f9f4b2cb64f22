package service

import (
	"errors"
	"time"

	"stockpro-backend/internal/model"
	"stockpro-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// FinancialSummary is the profitability picture for a period. Cost of goods
// comes from the cost snapshots frozen on each sale line, so figures stay
// stable even as purchase prices move.
type FinancialSummary struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`

	Revenue     decimal.Decimal `json:"revenue"`
	Tickets     int64           `json:"tickets"`
	CostOfGoods decimal.Decimal `json:"cost_of_goods"`
	GrossProfit decimal.Decimal `json:"gross_profit"`
	Expenses    decimal.Decimal `json:"expenses"`
	NetProfit   decimal.Decimal `json:"net_profit"`

	RevenueByDay []repository.DailyRevenue  `json:"revenue_by_day"`
	TopProducts  []repository.ProductRevenue `json:"top_products"`
}

type RecordExpenseRequest struct {
	CategoryID     *uuid.UUID      `json:"category_id,omitempty"`
	Amount         decimal.Decimal `json:"amount"`
	Description    string          `json:"description"`
	AccountingDate time.Time       `json:"accounting_date"`
}

type FinanceService interface {
	Summary(start, end time.Time) (*FinancialSummary, error)
	RecordExpense(req *RecordExpenseRequest, userID uuid.UUID) (*model.Expense, error)
	ListExpenses(start, end time.Time) ([]model.Expense, error)
	DeleteExpense(id uuid.UUID) error
	CreateExpenseCategory(category *model.ExpenseCategory, userID string) error
	ListExpenseCategories() ([]model.ExpenseCategory, error)
}

type financeService struct {
	saleRepo    repository.SaleRepository
	expenseRepo repository.ExpenseRepository
}

func NewFinanceService(saleRepo repository.SaleRepository, expenseRepo repository.ExpenseRepository) FinanceService {
	return &financeService{saleRepo: saleRepo, expenseRepo: expenseRepo}
}

func (s *financeService) Summary(start, end time.Time) (*FinancialSummary, error) {
	revenue, tickets, err := s.saleRepo.TotalsBetween(start, end)
	if err != nil {
		return nil, err
	}
	cogs, err := s.saleRepo.CostOfGoodsBetween(start, end)
	if err != nil {
		return nil, err
	}
	expenses, err := s.expenseRepo.SumBetween(start, end)
	if err != nil {
		return nil, err
	}
	byDay, err := s.saleRepo.RevenueByDay(start, end)
	if err != nil {
		return nil, err
	}
	top, err := s.saleRepo.TopProducts(start, end, 10)
	if err != nil {
		return nil, err
	}

	gross := revenue.Sub(cogs)
	return &FinancialSummary{
		Start:        start,
		End:          end,
		Revenue:      revenue,
		Tickets:      tickets,
		CostOfGoods:  cogs,
		GrossProfit:  gross,
		Expenses:     expenses,
		NetProfit:    gross.Sub(expenses),
		RevenueByDay: byDay,
		TopProducts:  top,
	}, nil
}

func (s *financeService) RecordExpense(req *RecordExpenseRequest, userID uuid.UUID) (*model.Expense, error) {
	if !req.Amount.IsPositive() {
		return nil, &ValidationError{Field: "amount", Reason: "must be greater than zero"}
	}
	if req.AccountingDate.IsZero() {
		req.AccountingDate = time.Now()
	}

	expense := &model.Expense{
		CategoryID:     req.CategoryID,
		RecordedByID:   userID,
		Amount:         req.Amount,
		Description:    req.Description,
		AccountingDate: req.AccountingDate,
	}
	expense.CreatedBy = userID.String()
	expense.UpdatedBy = userID.String()

	if err := s.expenseRepo.Create(expense); err != nil {
		return nil, err
	}
	return expense, nil
}

func (s *financeService) ListExpenses(start, end time.Time) ([]model.Expense, error) {
	return s.expenseRepo.FindBetween(start, end)
}

func (s *financeService) DeleteExpense(id uuid.UUID) error {
	return s.expenseRepo.Delete(id)
}

func (s *financeService) CreateExpenseCategory(category *model.ExpenseCategory, userID string) error {
	if category.Name == "" {
		return &ValidationError{Field: "name", Reason: "is required"}
	}
	category.CreatedBy = userID
	category.UpdatedBy = userID
	err := s.expenseRepo.CreateCategory(category)
	if err != nil && errors.Is(err, gorm.ErrDuplicatedKey) {
		return &ValidationError{Field: "name", Reason: "already exists"}
	}
	return err
}

func (s *financeService) ListExpenseCategories() ([]model.ExpenseCategory, error) {
	return s.expenseRepo.FindAllCategories()
}
