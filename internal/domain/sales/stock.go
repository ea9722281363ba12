package sales

import (
	"github.com/npochettino/sales-management-api/internal/domain"
	"github.com/npochettino/sales-management-api/internal/domain/entity"
)

// StockTracker lleva el stock restante por producto mientras se validan las líneas de una venta.
// Las líneas repetidas del mismo producto se validan en orden contra lo que dejaron las anteriores,
// lo que equivale a validar la suma.
type StockTracker struct {
	remaining map[string]int
}

// NewStockTracker crea un tracker vacío.
func NewStockTracker() *StockTracker {
	return &StockTracker{remaining: make(map[string]int)}
}

// Reserve descuenta quantity del stock restante de p o devuelve InsufficientStockError.
func (t *StockTracker) Reserve(p *entity.Product, quantity int) error {
	available, ok := t.remaining[p.ID]
	if !ok {
		available = p.Stock
	}
	if quantity > available {
		return &domain.InsufficientStockError{
			ProductID:   p.ID,
			ProductName: p.Name,
			Requested:   quantity,
			Available:   available,
		}
	}
	t.remaining[p.ID] = available - quantity
	return nil
}

// Remaining stock restante de productID tras las reservas (ok=false si no se reservó nada).
func (t *StockTracker) Remaining(productID string) (int, bool) {
	n, ok := t.remaining[productID]
	return n, ok
}
