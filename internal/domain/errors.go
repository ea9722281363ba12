package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Errores de dominio (sin dependencias de infraestructura).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrInvalidState       = errors.New("operación no permitida en el estado actual")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrPaymentMismatch    = errors.New("el total de pagos no coincide con el total de la venta")
)

// Códigos legibles por máquina expuestos en las respuestas de error.
const (
	CodeInvalidRequest    = "INVALID_REQUEST"
	CodeNotFound          = "NOT_FOUND"
	CodeInsufficientStock = "INSUFFICIENT_STOCK"
	CodePaymentMismatch   = "PAYMENT_MISMATCH"
	CodeInvalidState      = "INVALID_STATE"
	CodeConflict          = "CONFLICT"
	CodeUnauthorized      = "UNAUTHORIZED"
	CodeForbidden         = "FORBIDDEN"
	CodeInternal          = "INTERNAL"
)

// InsufficientStockError identifica el producto cuya cantidad solicitada supera el stock.
type InsufficientStockError struct {
	ProductID   string
	ProductName string
	Requested   int
	Available   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para el producto %q: solicitado %d, disponible %d",
		e.ProductName, e.Requested, e.Available)
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// PaymentMismatchError lleva ambos montos para que el cliente pueda explicar la diferencia.
type PaymentMismatchError struct {
	PaymentTotal decimal.Decimal
	SaleTotal    decimal.Decimal
}

func (e *PaymentMismatchError) Error() string {
	return fmt.Sprintf("el total de pagos (%s) no coincide con el total de la venta (%s)",
		e.PaymentTotal.String(), e.SaleTotal.String())
}

func (e *PaymentMismatchError) Unwrap() error { return ErrPaymentMismatch }

// InvalidStateError describe por qué la operación no aplica al estado actual.
type InvalidStateError struct {
	Reason string
}

func (e *InvalidStateError) Error() string { return e.Reason }

func (e *InvalidStateError) Unwrap() error { return ErrInvalidState }

// NewInvalidState construye un ErrInvalidState con mensaje propio.
func NewInvalidState(reason string) error {
	return &InvalidStateError{Reason: reason}
}

// Code devuelve el código de la taxonomía para err. Errores desconocidos son INTERNAL.
func Code(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidInput):
		return CodeInvalidRequest
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrUserNotFound):
		return CodeNotFound
	case errors.Is(err, ErrInsufficientStock):
		return CodeInsufficientStock
	case errors.Is(err, ErrPaymentMismatch):
		return CodePaymentMismatch
	case errors.Is(err, ErrInvalidState):
		return CodeInvalidState
	case errors.Is(err, ErrDuplicate), errors.Is(err, ErrEmailAlreadyExists):
		return CodeConflict
	case errors.Is(err, ErrUnauthorized):
		return CodeUnauthorized
	case errors.Is(err, ErrForbidden):
		return CodeForbidden
	default:
		return CodeInternal
	}
}
