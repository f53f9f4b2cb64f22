package service

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
)

// ReportService renders the stock and finance reports as spreadsheets, the
// format the back office actually opens them in.
type ReportService interface {
	StockReport() (*excelize.File, error)
	FinanceReport(start, end time.Time) (*excelize.File, error)
}

type reportService struct {
	inventory InventoryService
	finance   FinanceService
}

func NewReportService(inventory InventoryService, finance FinanceService) ReportService {
	return &reportService{inventory: inventory, finance: finance}
}

func setHeaderRow(f *excelize.File, sheet string, headers []string) error {
	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, cell, cell, style); err != nil {
			return err
		}
	}
	return nil
}

func (s *reportService) StockReport() (*excelize.File, error) {
	products, err := s.inventory.ListProducts(false)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	sheet := "Stock"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Name", "Brand", "Category", "Unit", "Stock Total", "Minimum Stock", "Sale Price", "Active"}
	if err := setHeaderRow(f, sheet, headers); err != nil {
		return nil, err
	}

	for i, product := range products {
		row := i + 2
		brand, category, unit := "N/A", "N/A", ""
		if product.Brand != nil {
			brand = product.Brand.Name
		}
		if product.Category != nil {
			category = product.Category.Name
		}
		if product.Unit != nil {
			unit = product.Unit.Abbreviation
		}
		values := []interface{}{
			product.Name,
			brand,
			category,
			unit,
			product.StockTotal.InexactFloat64(),
			product.MinimumStock.InexactFloat64(),
			product.SalePrice.InexactFloat64(),
			product.IsActive,
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, err
			}
		}
	}
	return f, nil
}

func (s *reportService) FinanceReport(start, end time.Time) (*excelize.File, error) {
	summary, err := s.finance.Summary(start, end)
	if err != nil {
		return nil, err
	}
	expenses, err := s.finance.ListExpenses(start, end)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	sheet := "Summary"
	f.SetSheetName("Sheet1", sheet)

	rows := [][]interface{}{
		{"Period", fmt.Sprintf("%s to %s", start.Format("2006-01-02"), end.Format("2006-01-02"))},
		{"Revenue", summary.Revenue.InexactFloat64()},
		{"Tickets", summary.Tickets},
		{"Cost of Goods", summary.CostOfGoods.InexactFloat64()},
		{"Gross Profit", summary.GrossProfit.InexactFloat64()},
		{"Operating Expenses", summary.Expenses.InexactFloat64()},
		{"Net Profit", summary.NetProfit.InexactFloat64()},
	}
	for i, row := range rows {
		for col, value := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, i+1)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, err
			}
		}
	}

	expenseSheet := "Expenses"
	if _, err := f.NewSheet(expenseSheet); err != nil {
		return nil, err
	}
	if err := setHeaderRow(f, expenseSheet, []string{"Date", "Category", "Amount", "Description"}); err != nil {
		return nil, err
	}
	for i, expense := range expenses {
		row := i + 2
		category := "Uncategorized"
		if expense.Category != nil {
			category = expense.Category.Name
		}
		values := []interface{}{
			expense.AccountingDate.Format("2006-01-02"),
			category,
			expense.Amount.InexactFloat64(),
			expense.Description,
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(expenseSheet, cell, value); err != nil {
				return nil, err
			}
		}
	}

	return f, nil
}
