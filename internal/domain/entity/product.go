package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto vendible.
// Stock nunca es negativo; solo lo modifican las ventas (alta/baja) y la edición bloqueada del producto.
type Product struct {
	ID           string
	Name         string
	Description  string
	Cost         decimal.Decimal // costo unitario de adquisición
	Price        decimal.Decimal // precio unitario de venta
	Stock        int
	CategoryID   string
	CategoryName string // desnormalizado; se actualiza al renombrar la categoría
	ImageURL     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PriceSnapshot costo y precio de un producto en un instante dado.
type PriceSnapshot struct {
	Cost  decimal.Decimal
	Price decimal.Decimal
}

// Prices devuelve el costo y precio actuales del producto.
func (p *Product) Prices() PriceSnapshot {
	return PriceSnapshot{Cost: p.Cost, Price: p.Price}
}

// ProductFilter filtros para listar productos.
type ProductFilter struct {
	CategoryID string
	InStock    bool
	Limit      int
	Offset     int
}
