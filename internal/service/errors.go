package service

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Error definitions
var (
	ErrProductNotFound       = errors.New("product not found")
	ErrBatchNotFound         = errors.New("batch not found")
	ErrBrandNotFound         = errors.New("brand not found")
	ErrCategoryNotFound      = errors.New("category not found")
	ErrCustomerNotFound      = errors.New("customer not found")
	ErrPaymentMethodNotFound = errors.New("payment method not found")
	ErrPaymentMethodInactive = errors.New("payment method is not active")
	ErrBarcodeTaken          = errors.New("barcode already assigned to another product")
	ErrDocumentTaken         = errors.New("customer document already registered")

	// ErrNothingToClose is the recognized no-op outcome of a closing with
	// zero pending sales. It is not a failure: nothing was attempted.
	ErrNothingToClose = errors.New("no pending sales to close")
)

// InsufficientStockError reports a checkout line that asks for more than the
// product's batches hold. Carries the quantities so the caller can show an
// actionable message.
type InsufficientStockError struct {
	ProductName string
	Requested   decimal.Decimal
	Available   decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s: requested %s, available %s",
		e.ProductName, e.Requested, e.Available)
}

// CountedAmountError reports a physical cash count that could not be parsed
// as a number, naming the offending payment method. It aborts the whole
// closing.
type CountedAmountError struct {
	Method string
	Value  string
}

func (e *CountedAmountError) Error() string {
	return fmt.Sprintf("invalid counted amount %q for %s: use digits and a decimal point", e.Value, e.Method)
}

// ValidationError carries the first field that failed request validation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: field '%s' %s", e.Field, e.Reason)
}
