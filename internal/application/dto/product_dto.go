package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	Name        string          `json:"name" validate:"required,min=1,max=200"`
	Description string          `json:"description" validate:"max=2000"`
	Cost        decimal.Decimal `json:"cost"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock" validate:"min=0"`
	CategoryID  string          `json:"categoryId"`
	ImageURL    string          `json:"imageUrl" validate:"omitempty,url"`
}

// UpdateProductRequest actualización parcial. PriceChangeReason se guarda en el historial si cambia costo o precio.
type UpdateProductRequest struct {
	Name              *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Description       *string          `json:"description" validate:"omitempty,max=2000"`
	Cost              *decimal.Decimal `json:"cost"`
	Price             *decimal.Decimal `json:"price"`
	Stock             *int             `json:"stock" validate:"omitempty,min=0"`
	CategoryID        *string          `json:"categoryId"`
	ImageURL          *string          `json:"imageUrl" validate:"omitempty,url"`
	PriceChangeReason string           `json:"priceChangeReason" validate:"max=500"`
}

// ListProductsRequest filtros de GET /api/products.
type ListProductsRequest struct {
	CategoryID string `query:"category"`
	InStock    bool   `query:"inStock"`
	PageRequest
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Cost         decimal.Decimal `json:"cost"`
	Price        decimal.Decimal `json:"price"`
	Stock        int             `json:"stock"`
	CategoryID   string          `json:"categoryId,omitempty"`
	CategoryName string          `json:"categoryName,omitempty"`
	ImageURL     string          `json:"imageUrl,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// PriceHistoryResponse un registro del historial de precios.
type PriceHistoryResponse struct {
	ID          string           `json:"id"`
	ProductID   string           `json:"productId"`
	Date        time.Time        `json:"date"`
	CostBefore  *decimal.Decimal `json:"costBefore"`
	CostAfter   decimal.Decimal  `json:"costAfter"`
	PriceBefore *decimal.Decimal `json:"priceBefore"`
	PriceAfter  decimal.Decimal  `json:"priceAfter"`
	Reason      string           `json:"reason,omitempty"`
	UserID      string           `json:"userId,omitempty"`
}
