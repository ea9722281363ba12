package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PriceHistory registro inmutable de un cambio de costo/precio.
// CostBefore y PriceBefore son nil en el primer registro del producto.
type PriceHistory struct {
	ID          string
	ProductID   string
	Date        time.Time
	CostBefore  *decimal.Decimal
	CostAfter   decimal.Decimal
	PriceBefore *decimal.Decimal
	PriceAfter  decimal.Decimal
	Reason      string
	UserID      string
}
