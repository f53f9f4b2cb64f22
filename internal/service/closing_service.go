package service

import (
	"sort"
	"strings"

	"stockpro-backend/internal/model"
	"stockpro-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CloseRegisterRequest carries the physical count. Counts is keyed by
// payment method ID; values arrive as the raw strings typed into the count
// form, since cashiers write "1234,50" as often as "1234.50".
type CloseRegisterRequest struct {
	Counts map[string]string `json:"counts"`
	Notes  string            `json:"notes"`
}

// PendingPreview is the advisory snapshot shown before closing. It is never
// the basis of the closing itself; the engine recomputes everything under
// lock at commit time, because sales keep arriving between the look and the
// commit.
type PendingPreview struct {
	Total     decimal.Decimal            `json:"total"`
	Tickets   int64                      `json:"tickets"`
	Breakdown []repository.MethodSubtotal `json:"breakdown"`
}

type ClosingService interface {
	PreviewPending() (*PendingPreview, error)
	CloseRegister(req *CloseRegisterRequest, userID uuid.UUID) (*model.CashClosing, error)
	History() ([]model.CashClosing, error)
	GetClosing(id uuid.UUID) (*model.CashClosing, error)
}

type closingService struct {
	saleRepo    repository.SaleRepository
	closingRepo repository.ClosingRepository
	methodRepo  repository.PaymentMethodRepository
	db          *gorm.DB
}

func NewClosingService(
	saleRepo repository.SaleRepository,
	closingRepo repository.ClosingRepository,
	methodRepo repository.PaymentMethodRepository,
	db *gorm.DB,
) ClosingService {
	return &closingService{
		saleRepo:    saleRepo,
		closingRepo: closingRepo,
		methodRepo:  methodRepo,
		db:          db,
	}
}

func (s *closingService) PreviewPending() (*PendingPreview, error) {
	breakdown, err := s.saleRepo.PendingByMethod()
	if err != nil {
		return nil, err
	}
	preview := &PendingPreview{Total: decimal.Zero, Breakdown: breakdown}
	for _, sub := range breakdown {
		preview.Total = preview.Total.Add(sub.Subtotal)
		preview.Tickets += sub.Tickets
	}
	return preview, nil
}

// parseCountedAmount normalizes one submitted cash count. Blank means zero
// (the cashier left the field empty); a comma decimal separator is accepted
// and rewritten; anything else unparseable is an error.
func parseCountedAmount(raw string) (decimal.Decimal, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return decimal.Zero, nil
	}
	normalized := strings.ReplaceAll(trimmed, ",", ".")
	return decimal.NewFromString(normalized)
}

// sumPendingByMethod recomputes the authoritative totals from the locked
// sales themselves.
func sumPendingByMethod(sales []model.Sale) (decimal.Decimal, map[uuid.UUID]decimal.Decimal) {
	total := decimal.Zero
	byMethod := make(map[uuid.UUID]decimal.Decimal)
	for _, sale := range sales {
		total = total.Add(sale.Total)
		byMethod[sale.PaymentMethodID] = byMethod[sale.PaymentMethodID].Add(sale.Total)
	}
	return total, byMethod
}

// stageDetails builds one ClosingDetail per payment method that had pending
// sales, parsing that method's counted amount. Methods are processed in
// name order so detail rows come out deterministic.
func stageDetails(byMethod map[uuid.UUID]decimal.Decimal, methods []model.PaymentMethod, counts map[string]string) ([]model.ClosingDetail, decimal.Decimal, error) {
	ordered := make([]model.PaymentMethod, len(methods))
	copy(ordered, methods)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Name < ordered[j].Name })

	countedTotal := decimal.Zero
	details := make([]model.ClosingDetail, 0, len(ordered))
	for _, method := range ordered {
		system, ok := byMethod[method.ID]
		if !ok {
			continue
		}
		raw := counts[method.ID.String()]
		counted, err := parseCountedAmount(raw)
		if err != nil {
			return nil, decimal.Zero, &CountedAmountError{Method: method.Name, Value: raw}
		}
		countedTotal = countedTotal.Add(counted)
		details = append(details, model.ClosingDetail{
			PaymentMethodID: method.ID,
			SystemAmount:    system,
			CountedAmount:   counted,
			Variance:        counted.Sub(system),
		})
	}
	return details, countedTotal, nil
}

// CloseRegister settles every pending sale into a new immutable closing, or
// leaves everything pending. Stock is never touched here.
func (s *closingService) CloseRegister(req *CloseRegisterRequest, userID uuid.UUID) (*model.CashClosing, error) {
	var closingID uuid.UUID

	err := s.db.Transaction(func(tx *gorm.DB) error {
		// Lock first. Any sale committed after this point stays pending
		// and belongs to the next closing.
		pending, err := s.saleRepo.LockPending(tx)
		if err != nil {
			return err
		}
		if len(pending) == 0 {
			return ErrNothingToClose
		}

		systemTotal, byMethod := sumPendingByMethod(pending)

		methodIDs := make([]uuid.UUID, 0, len(byMethod))
		for id := range byMethod {
			methodIDs = append(methodIDs, id)
		}
		methods, err := s.methodRepo.FindByIDs(methodIDs)
		if err != nil {
			return err
		}

		details, countedTotal, err := stageDetails(byMethod, methods, req.Counts)
		if err != nil {
			return err
		}

		closing := &model.CashClosing{
			UserID:       userID,
			SystemTotal:  systemTotal,
			CountedTotal: countedTotal,
			Variance:     countedTotal.Sub(systemTotal),
			Notes:        req.Notes,
		}
		closing.CreatedBy = userID.String()
		closing.UpdatedBy = userID.String()
		if err := s.closingRepo.Create(tx, closing); err != nil {
			return err
		}

		for i := range details {
			details[i].ClosingID = closing.ID
			details[i].CreatedBy = userID.String()
			details[i].UpdatedBy = userID.String()
		}
		if err := s.closingRepo.CreateDetails(tx, details); err != nil {
			return err
		}

		saleIDs := make([]uuid.UUID, len(pending))
		for i, sale := range pending {
			saleIDs[i] = sale.ID
		}
		if err := s.saleRepo.AssignClosing(tx, saleIDs, closing.ID); err != nil {
			return err
		}

		closingID = closing.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.closingRepo.FindByID(closingID)
}

func (s *closingService) History() ([]model.CashClosing, error) {
	return s.closingRepo.FindAll()
}

func (s *closingService) GetClosing(id uuid.UUID) (*model.CashClosing, error) {
	return s.closingRepo.FindByID(id)
}
