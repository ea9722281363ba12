package sales

import (
	"github.com/npochettino/sales-management-api/internal/domain"
	"github.com/npochettino/sales-management-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// PaymentTolerance diferencia absoluta admitida entre pagos y total (redondeo de clientes en float).
var PaymentTolerance = decimal.New(1, -2)

// LineSubtotal precio unitario × cantidad, sin redondeo.
func LineSubtotal(unitPrice decimal.Decimal, quantity int) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
}

// ItemsTotal suma de los subtotales de las líneas.
func ItemsTotal(items []entity.SaleItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Subtotal)
	}
	return total
}

// PaymentsTotal suma de los montos de los pagos.
func PaymentsTotal(payments []entity.PaymentMethod) decimal.Decimal {
	total := decimal.Zero
	for _, p := range payments {
		total = total.Add(p.Amount)
	}
	return total
}

// ReconcilePayments exige |Σ pagos − total| ≤ PaymentTolerance.
func ReconcilePayments(payments []entity.PaymentMethod, total decimal.Decimal) error {
	paid := PaymentsTotal(payments)
	if paid.Sub(total).Abs().GreaterThan(PaymentTolerance) {
		return &domain.PaymentMismatchError{PaymentTotal: paid, SaleTotal: total}
	}
	return nil
}
