package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleStatus estado de una venta.
type SaleStatus string

// Estados de venta.
const (
	SaleStatusPending   SaleStatus = "pending"
	SaleStatusCompleted SaleStatus = "completed"
	SaleStatusCancelled SaleStatus = "cancelled"
)

// Valid indica si s es un estado conocido.
func (s SaleStatus) Valid() bool {
	switch s {
	case SaleStatusPending, SaleStatusCompleted, SaleStatusCancelled:
		return true
	}
	return false
}

// PaymentType medio de pago.
type PaymentType string

// Medios de pago aceptados.
const (
	PaymentCash     PaymentType = "cash"
	PaymentCredit   PaymentType = "credit"
	PaymentDebit    PaymentType = "debit"
	PaymentTransfer PaymentType = "transfer"
	PaymentOther    PaymentType = "other"
)

// Valid indica si t es un medio de pago conocido.
func (t PaymentType) Valid() bool {
	switch t {
	case PaymentCash, PaymentCredit, PaymentDebit, PaymentTransfer, PaymentOther:
		return true
	}
	return false
}

// SaleItem línea embebida en la venta. ProductName y UnitPrice son una foto al momento de vender.
type SaleItem struct {
	ProductID   string
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
	Subtotal    decimal.Decimal
}

// PaymentMethod pago embebido en la venta.
type PaymentMethod struct {
	Type      PaymentType
	Amount    decimal.Decimal
	Reference string
}

// Sale venta a un cliente. Es dueña exclusiva de sus líneas y pagos.
type Sale struct {
	ID             string
	ClientID       string
	Items          []SaleItem
	PaymentMethods []PaymentMethod
	Total          decimal.Decimal
	Status         SaleStatus
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// SaleFilter filtros para listar ventas. Fechas nil no filtran.
type SaleFilter struct {
	ClientID  string
	Status    SaleStatus
	StartDate *time.Time
	EndDate   *time.Time
	Limit     int
	Offset    int
}
